package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned by Engine.Toggle when the selected
	// typology is already placed on TotalQuantity locations.
	ErrCapacityExceeded = errors.New("typology capacity exceeded")
	// ErrNoTypologySelected is returned by Engine.Toggle before SelectTypology.
	ErrNoTypologySelected = errors.New("no typology selected")
	// ErrConfirmationDeclined is returned by DeleteFloor when the caller says no.
	ErrConfirmationDeclined = errors.New("deletion not confirmed")
)

// ValidationError is reported before the store is contacted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err was raised locally without a store call.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
