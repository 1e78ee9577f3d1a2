package service

import (
	"errors"
	"fmt"
)

// Kelas error yang dipetakan controller ke status HTTP (errors.Is).
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrAlreadyCompleted  = errors.New("exam already completed")
	ErrPartiallyRecorded = errors.New("session recorded but result not saved")
)

var (
	ErrExamNotFound    = fmt.Errorf("exam %w", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("exam session %w", ErrNotFound)
	ErrNotSessionOwner = fmt.Errorf("session belongs to another user: %w", ErrForbidden)

	// Dua pesan berbeda untuk start vs submit, tetap satu kelas error.
	ErrResultExistsOnStart  = fmt.Errorf("result exists on start: %w", ErrAlreadyCompleted)
	ErrResultExistsOnSubmit = fmt.Errorf("result exists on submit: %w", ErrAlreadyCompleted)
)

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
