package usecase

import (
	"errors"
	"fmt"

	"sauna-booking/pkg/utils"
)

// Typed results of the lifecycle operations. Handlers map these with
// errors.Is; none of them is an internal failure.
var (
	ErrValidation         = errors.New("validation failed")
	ErrClosedDate         = errors.New("shop is closed on this date")
	ErrSlotUnavailable    = errors.New("slot is not available")
	ErrInvalidToken       = errors.New("invalid confirmation token")
	ErrExpired            = errors.New("confirmation window has expired")
	ErrVerificationFailed = errors.New("verification failed")
	ErrAlreadyCancelled   = errors.New("reservation is already cancelled")
	ErrNotFound           = errors.New("reservation not found")
)

func validationError(errs map[string]string) error {
	return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
}

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
