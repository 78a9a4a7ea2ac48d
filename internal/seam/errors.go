package seam

import "errors"

// ErrInvalidArgument is the only error kind the package returns. Every failure
// is a precondition violation by the caller; details are wrapped around it,
// so test with errors.Is.
var ErrInvalidArgument = errors.New("seam: invalid argument")
