package store

import "errors"

// corruptArtifactError reports an artifact that is missing, unreadable or undecodable.
type corruptArtifactError struct {
	path string
	err  error
}

func (e *corruptArtifactError) Error() string { return "corrupt artifact " + e.path + ": " + e.err.Error() }
func (e *corruptArtifactError) Unwrap() error { return e.err }

// ErrCorruptArtifact constructs a corrupt artifact error.
func ErrCorruptArtifact(path string, err error) error {
	return &corruptArtifactError{path: path, err: err}
}

// IsCorruptArtifact reports whether err (or anything it wraps) is a corrupt artifact error.
func IsCorruptArtifact(err error) bool {
	var e *corruptArtifactError
	return errors.As(err, &e)
}

// writeFailureError reports an I/O failure while saving an artifact.
type writeFailureError struct {
	path string
	err  error
}

func (e *writeFailureError) Error() string { return "write artifact " + e.path + ": " + e.err.Error() }
func (e *writeFailureError) Unwrap() error { return e.err }

// ErrWriteFailure constructs a write failure error.
func ErrWriteFailure(path string, err error) error {
	return &writeFailureError{path: path, err: err}
}

// IsWriteFailure reports whether err (or anything it wraps) is a write failure.
func IsWriteFailure(err error) bool {
	var e *writeFailureError
	return errors.As(err, &e)
}
