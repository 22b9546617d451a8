package booking

import (
	"errors"
	"fmt"
)

// Error codes for the engine's failure taxonomy. Validation failures carry a
// user-facing, rule-specific message; external-service failures never surface
// here (they degrade, see create.go and assignment.go).
const (
	CodeOutOfServiceArea       = "outOfServiceArea"
	CodeMissingSchedule        = "missingSchedule"
	CodeSlotUnavailable        = "slotUnavailable"
	CodeInvalidPromoCode       = "invalidPromoCode"
	CodeCleanerUnavailable     = "cleanerUnavailable"
	CodeBookingNotFound        = "bookingNotFound"
	CodeCleanerNotFound        = "cleanerNotFound"
	CodeInvalidStateTransition = "invalidStateTransition"
)

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewBookingError(code, msg string) error {
	return &BookingError{Code: code, Message: msg}
}

// CodeOf extracts the engine error code, or "" for foreign errors.
func CodeOf(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
