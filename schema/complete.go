package schema

import "github.com/agilira/go-errors"

// CompleteEncoding provides everything necessary to encode or decode a
// particular record type, and every record type it transitively
// references.
type CompleteEncoding struct {
	// Target is the top-level record type being (de)coded.
	Target RecordEncoding

	// Depends holds the RecordEncoding for every type a field of Target
	// (or of any entry in Depends) can reference via Type.Record(k):
	// Depends[k] is that encoding. Dependencies are referenced by index
	// only; the slice may describe a cyclic graph (a record may depend
	// on itself, directly or transitively).
	Depends []RecordEncoding
}

// NewCompleteEncoding validates that Target and every entry of Depends
// only reference record types that actually exist in Depends, returning
// ErrCodeSchemaInvalid otherwise.
func NewCompleteEncoding(target RecordEncoding, depends []RecordEncoding) (CompleteEncoding, error) {
	ce := CompleteEncoding{Target: target, Depends: append([]RecordEncoding(nil), depends...)}

	if err := ce.checkRecord(ce.Target); err != nil {
		return CompleteEncoding{}, err
	}
	for _, dep := range ce.Depends {
		if err := ce.checkRecord(dep); err != nil {
			return CompleteEncoding{}, err
		}
	}

	return ce, nil
}

func (ce CompleteEncoding) checkRecord(rec RecordEncoding) error {
	all := make([]FieldEncoding, 0, len(rec.ReqFields)+len(rec.OptRepFields))
	all = append(all, rec.ReqFields...)
	all = append(all, rec.OptRepFields...)

	for _, f := range all {
		idx, isRec := f.Typ.IsRecord()
		if !isRec {
			continue
		}
		if idx < 0 || idx >= len(ce.Depends) {
			return errors.New(ErrCodeSchemaInvalid, "field references an out-of-range record dependency").
				WithContext("record", rec.Name).
				WithContext("field", f.Name).
				WithContext("depIndex", idx).
				WithContext("numDepends", len(ce.Depends))
		}
	}

	return nil
}

// RecordAt resolves a Record(index) Type against this CompleteEncoding's
// Depends slice.
func (ce CompleteEncoding) RecordAt(index int) (RecordEncoding, bool) {
	if index < 0 || index >= len(ce.Depends) {
		return RecordEncoding{}, false
	}
	return ce.Depends[index], true
}
