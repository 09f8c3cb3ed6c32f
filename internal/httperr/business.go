package httperr

import "errors"

// Business error codes used across the booking domain.
const (
	CodeInvalidInput    = "invalid_input"
	CodeBookingInPast   = "booking_in_past"
	CodeInactiveService = "inactive_service"
	CodeInactiveGroomer = "inactive_groomer"
	CodeTimeConflict    = "time_conflict"
	CodeOutsideSlots    = "outside_slot_hours"
	CodeDailyLimit      = "daily_limit_reached"
	CodeInvalidState    = "invalid_state"
	CodeNotFound        = "not_found"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode returns the code carried by a business error, or "" when the
// error is an infrastructure failure.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
