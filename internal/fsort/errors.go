package fsort

import "errors"

// Error kinds surfaced to the CLI front end. All are fatal; nothing is
// retried or recovered.
var (
	ErrArg           = errors.New("argument error")
	ErrIO            = errors.New("io error")
	ErrInput         = errors.New("input error")
	ErrConfig        = errors.New("config error")
	ErrOversizedLine = errors.New("line exceeds region size")
)
