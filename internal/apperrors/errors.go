package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned when the classifier is invoked before a
	// model artifact has been loaded.
	ErrNotLoaded = errors.New("model is not loaded")

	// ErrEmptyInput is returned for blank or whitespace-only text.
	ErrEmptyInput = errors.New("input text cannot be empty")

	// ErrNotFound is returned by store lookups on unknown prediction ids.
	ErrNotFound = errors.New("prediction not found")

	// ErrPredictionFailed marks classifier failures wrapped by
	// PredictionFailed. Discriminate with errors.Is.
	ErrPredictionFailed = errors.New("prediction failed")
)

// PredictionFailed wraps an underlying classifier error so callers can both
// match ErrPredictionFailed and read the cause.
func PredictionFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrPredictionFailed, err)
}
