package httperr

import "errors"

// Reason codes for rejected requests. Handlers map these to HTTP statuses;
// the engine never retries any of them.
const (
	CodeNotFound            = "not_found"
	CodeForbidden           = "forbidden"
	CodeInvalidState        = "invalid_state"
	CodeSlotTaken           = "slot_taken"
	CodeNotAWorkingDay      = "not_a_working_day"
	CodeOutsideWorkingHours = "outside_working_hours"
	CodeDuringBreak         = "during_break"
	CodeBarberConflict      = "barber_conflict"
	CodeClientConflict      = "client_conflict"
	CodeInvalidServices     = "invalid_services"
	CodeInvalidTimeFormat   = "invalid_time_format"
	CodeInvalidTimeRange    = "invalid_time_range"
	CodeInvalidDate         = "invalid_date"
	CodePastDate            = "past_date"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrBusinessMsg attaches a human-readable reason to the code.
func ErrBusinessMsg(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness extracts a BusinessError if err carries one.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
