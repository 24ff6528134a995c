package training

import (
	"errors"
	"fmt"
)

// trainingDataError signals a missing, empty or unparsable dataset.
type trainingDataError struct {
	path string
	err  error
}

func (e *trainingDataError) Error() string { return fmt.Sprintf("training data %s: %v", e.path, e.err) }
func (e *trainingDataError) Unwrap() error { return e.err }

// ErrTrainingData constructs a trainingDataError.
func ErrTrainingData(path string, err error) error { return &trainingDataError{path: path, err: err} }

// IsTrainingData reports whether err indicates bad input data.
func IsTrainingData(err error) bool {
	var e *trainingDataError
	return errors.As(err, &e)
}

// trainingFailureError signals that fitting a model failed.
type trainingFailureError struct {
	stage string
	err   error
}

func (e *trainingFailureError) Error() string { return fmt.Sprintf("training %s: %v", e.stage, e.err) }
func (e *trainingFailureError) Unwrap() error { return e.err }

// ErrTrainingFailure constructs a trainingFailureError.
func ErrTrainingFailure(stage string, err error) error {
	return &trainingFailureError{stage: stage, err: err}
}

// IsTrainingFailure reports whether err came from a model fit.
func IsTrainingFailure(err error) bool {
	var e *trainingFailureError
	return errors.As(err, &e)
}

// busyError signals that another training run holds the lock.
type busyError struct{ lock string }

func (e *busyError) Error() string { return "training already in progress (" + e.lock + ")" }

// ErrBusy constructs a busyError for the given lock path.
func ErrBusy(lock string) error { return &busyError{lock: lock} }

// IsBusy reports whether err indicates a concurrent training run.
func IsBusy(err error) bool {
	var e *busyError
	return errors.As(err, &e)
}

// reloadAfterTrainError signals that artifacts were written but could not be
// published. They stay on disk for a later reload.
type reloadAfterTrainError struct{ err error }

func (e *reloadAfterTrainError) Error() string {
	return "artifacts written but reload failed: " + e.err.Error()
}
func (e *reloadAfterTrainError) Unwrap() error { return e.err }

// ErrReloadAfterTrain constructs a reloadAfterTrainError.
func ErrReloadAfterTrain(err error) error { return &reloadAfterTrainError{err: err} }

// IsReloadAfterTrain reports whether err indicates a failed post-train reload.
func IsReloadAfterTrain(err error) bool {
	var e *reloadAfterTrainError
	return errors.As(err, &e)
}
