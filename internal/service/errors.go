package service

import (
	"errors"
	"fmt"

	"jobsheet-service/internal/store"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	// ErrCompanyChoiceRequired asks the caller whether an unknown company
	// should get a profile before the record is created.
	ErrCompanyChoiceRequired = errors.New("company not found: choose whether to create a profile")
)

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// notFound maps a missing document onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
