package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrNoValidFields      = errors.New("no valid fields to update")
	ErrQuoteConverted     = errors.New("converted quote cannot be deleted")
	ErrPaymentLocked      = errors.New("order is finalized, payment cannot change")
	ErrAlreadyPaid        = errors.New("order is already paid")
	ErrRateLimited        = errors.New("too many upload attempts")
	ErrUploadRejected     = errors.New("upload rejected")
)

// UploadRejectedError describes why an uploaded file failed security validation.
type UploadRejectedError struct {
	Category string
	Reason   string
}

func (e *UploadRejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUploadRejected.Error(), e.Reason)
}

// Is reports the error as ErrUploadRejected.
func (e *UploadRejectedError) Is(target error) bool {
	return target == ErrUploadRejected
}

// Invalid wraps ErrInvalidInput with a client facing message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
