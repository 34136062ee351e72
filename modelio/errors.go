package modelio

import "errors"

// ErrVersionMismatch indicates Load read a version tag that does not
// match the version this build of modelio writes.
var ErrVersionMismatch = errors.New("modelio: version mismatch")
