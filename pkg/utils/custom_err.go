package utils

import "errors"

var (
	ErrLocationMissing             = errors.New("location missing")
	ErrLocationUnresolved          = errors.New("location unresolved")
	ErrNoValidLocation             = errors.New("no valid location")
	ErrMalformedStructuredResponse = errors.New("malformed structured response")
	ErrProviderUnavailable         = errors.New("provider unavailable")
	ErrEmptyPayload                = errors.New("empty provider payload")
	ErrRequestCancelled            = errors.New("request cancelled")
	ErrSessionNotFound             = errors.New("session not found")
	ErrSessionBusy                 = errors.New("session has a request in flight")
	ErrInvalidTripRequest          = errors.New("invalid trip request")
	ErrTripNotFound                = errors.New("trip not found")
	ErrDatabaseError               = errors.New("database error")
)

// MalformedStructuredResponseError keeps the raw generated text for diagnostics.
type MalformedStructuredResponseError struct {
	Raw   string
	Cause error
}

func (e *MalformedStructuredResponseError) Error() string {
	if e.Cause != nil {
		return ErrMalformedStructuredResponse.Error() + ": " + e.Cause.Error()
	}
	return ErrMalformedStructuredResponse.Error()
}

func (e *MalformedStructuredResponseError) Is(target error) bool {
	return target == ErrMalformedStructuredResponse
}

func (e *MalformedStructuredResponseError) Unwrap() error {
	return e.Cause
}
