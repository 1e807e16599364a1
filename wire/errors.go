package wire

import "github.com/agilira/go-errors"

// Error codes for the byte-codec layer. The encode and decode engines
// in package encoder propagate errors carrying these codes unchanged,
// per §7 of the specification.
const (
	ErrCodeEOF     errors.ErrorCode = "REX_EOF"
	ErrCodeBadBool errors.ErrorCode = "REX_BAD_BOOL"
	ErrCodeUtf8    errors.ErrorCode = "REX_UTF8"
	ErrCodeIO      errors.ErrorCode = "REX_IO"
)

// ErrEOF builds an EOF error, optionally wrapping an underlying cause.
func ErrEOF(cause error) error {
	if cause == nil {
		return errors.New(ErrCodeEOF, "unexpected end of stream while decoding a record")
	}
	return errors.Wrap(cause, ErrCodeEOF, "unexpected end of stream while decoding a record")
}

// ErrBadBool builds a BadBool error for the offending byte value.
func ErrBadBool(got byte) error {
	return errors.New(ErrCodeBadBool, "boolean byte was neither 0x00 nor 0xFF").
		WithContext("byte", got)
}

// ErrUtf8 wraps a UTF-8 validation failure on a decoded String payload.
func ErrUtf8(cause error) error {
	return errors.Wrap(cause, ErrCodeUtf8, "string payload is not valid UTF-8")
}

// ErrIO wraps a passthrough I/O failure from the underlying source/sink.
func ErrIO(cause error) error {
	return errors.Wrap(cause, ErrCodeIO, "I/O error in codec source/sink")
}
