package schema

import (
	"sort"

	"github.com/agilira/go-errors"
)

// ErrCodeSchemaInvalid marks a RecordEncoding/CompleteEncoding that
// violates one of the invariants in §3 of the specification (wrong
// quantifier in a list, duplicate or zero field id, unsorted fields,
// out-of-range record dependency).
const ErrCodeSchemaInvalid errors.ErrorCode = "REX_SCHEMA_INVALID"

// RecordEncoding is the encoding description of a single record type.
//
// Required fields carry no id/size/count prefix on the wire, so they
// are walked positionally by both engines; Optional and Repeated fields
// are merged against a sorted id stream by the decoder. Both lists are
// enforced ascending by ID at construction — load-bearing for
// OptRepFields, and simply consistent (writer and reader always share
// the same RecordEncoding value) for ReqFields.
type RecordEncoding struct {
	// Name is descriptive only; not present on the wire.
	Name string

	// ReqFields holds every Required field, sorted ascending by ID.
	ReqFields []FieldEncoding

	// OptRepFields holds every Optional/Repeated field, sorted
	// ascending by ID.
	OptRepFields []FieldEncoding
}

// NewRecordEncoding builds a RecordEncoding from unordered field lists,
// sorting both ReqFields and OptRepFields by ID and validating every
// invariant from §3: every ReqFields entry is Required, every
// OptRepFields entry is Optional or Repeated, and no FieldID is zero or
// duplicated within the record.
func NewRecordEncoding(name string, reqFields, optRepFields []FieldEncoding) (RecordEncoding, error) {
	rec := RecordEncoding{
		Name:         name,
		ReqFields:    append([]FieldEncoding(nil), reqFields...),
		OptRepFields: append([]FieldEncoding(nil), optRepFields...),
	}

	sort.SliceStable(rec.ReqFields, func(i, j int) bool {
		return rec.ReqFields[i].ID < rec.ReqFields[j].ID
	})
	sort.SliceStable(rec.OptRepFields, func(i, j int) bool {
		return rec.OptRepFields[i].ID < rec.OptRepFields[j].ID
	})

	if err := rec.validate(); err != nil {
		return RecordEncoding{}, err
	}

	return rec, nil
}

func (r RecordEncoding) validate() error {
	seen := make(map[FieldID]struct{}, len(r.ReqFields)+len(r.OptRepFields))

	var lastReqID FieldID
	for i, f := range r.ReqFields {
		if f.Quant != Required {
			return errors.New(ErrCodeSchemaInvalid, "required field list contains a non-Required field").
				WithContext("record", r.Name).
				WithContext("field", f.Name).
				WithContext("quant", f.Quant.String())
		}
		if i > 0 && f.ID < lastReqID {
			return errors.New(ErrCodeSchemaInvalid, "required fields are not sorted by id").
				WithContext("record", r.Name).
				WithContext("field", f.Name)
		}
		lastReqID = f.ID
		if err := r.checkFieldID(f, seen); err != nil {
			return err
		}
	}

	var lastOptRepID FieldID
	for i, f := range r.OptRepFields {
		if f.Quant != Optional && f.Quant != Repeated {
			return errors.New(ErrCodeSchemaInvalid, "optional/repeated field list contains a Required field").
				WithContext("record", r.Name).
				WithContext("field", f.Name)
		}
		if i > 0 && f.ID < lastOptRepID {
			return errors.New(ErrCodeSchemaInvalid, "optional/repeated fields are not sorted by id").
				WithContext("record", r.Name).
				WithContext("field", f.Name)
		}
		lastOptRepID = f.ID
		if err := r.checkFieldID(f, seen); err != nil {
			return err
		}
	}

	return nil
}

func (r RecordEncoding) checkFieldID(f FieldEncoding, seen map[FieldID]struct{}) error {
	if f.ID == 0 {
		return errors.New(ErrCodeSchemaInvalid, "field id 0 is reserved as the record terminator").
			WithContext("record", r.Name).
			WithContext("field", f.Name)
	}
	if _, dup := seen[f.ID]; dup {
		return errors.New(ErrCodeSchemaInvalid, "duplicate field id within record").
			WithContext("record", r.Name).
			WithContext("field", f.Name).
			WithContext("id", uint64(f.ID))
	}
	seen[f.ID] = struct{}{}
	return nil
}
