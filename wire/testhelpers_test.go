package wire

import "github.com/agilira/go-errors"

func errorsHasCode(err error, code errors.ErrorCode) bool {
	return errors.HasCode(err, code)
}
