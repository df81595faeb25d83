package domain

import "errors"

// ErrConnection is returned when the store cannot be reached or the
// connection is lost mid-run.
var ErrConnection = errors.New("store connection failed")

// ErrWriteConflict is returned when a write violates a unique key or another
// store constraint.
var ErrWriteConflict = errors.New("write conflict")

// ErrValidation is returned when a data source yields a malformed record.
var ErrValidation = errors.New("invalid record")
