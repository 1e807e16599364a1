package encoder

import (
	"github.com/agilira/go-errors"

	"github.com/rexcodec/rex/schema"
)

// Error codes specific to the encode/decode engines. EOF, BadBool, Utf8
// and IO are raised by the wire package and simply propagate through
// here unchanged.
const (
	ErrCodeEncodingInvalid   errors.ErrorCode = "REX_ENCODING_INVALID"
	ErrCodeFieldTypeMismatch errors.ErrorCode = "REX_FIELD_TYPE_MISMATCH"
)

func errEncodingInvalid(record, field string, reason string) error {
	return errors.New(ErrCodeEncodingInvalid, reason).
		WithContext("record", record).
		WithContext("field", field)
}

func errFieldTypeMismatch(record string, f schema.FieldEncoding, got string) error {
	return errors.New(ErrCodeFieldTypeMismatch, "primitive value did not match the field's declared type").
		WithContext("record", record).
		WithContext("field", f.Name).
		WithContext("id", uint64(f.ID)).
		WithContext("wantType", f.Typ.String()).
		WithContext("gotKind", got)
}
