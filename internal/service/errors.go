package service

import "errors"

var (
	ErrInvestigatorExists = errors.New("investigator already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidKeyword     = errors.New("invalid keyword pattern")
)

// FieldError names the required request field that was absent.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return e.Field + " is required"
}

func (e *FieldError) Is(target error) bool {
	return target == ErrMissingField
}
