package errors

import (
	"errors"
	"net/http"
)

// a classified failure produced by services and rendered by Respond
type Error struct {
	Kind    Kind
	Reason  string
	Message string

	// overrides the status derived from Kind/Reason when non-zero
	Status int

	Err error
}

func New(kind Kind, reason, message string) *Error {
	return &Error{Kind: kind, Reason: reason, Message: message}
}

func Wrap(kind Kind, reason, message string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// returns a copy answering with the given status
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}

	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindQuota:
		return http.StatusForbidden
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindUpstream:
		switch e.Reason {
		case ReasonUpstreamRateLimited:
			return http.StatusTooManyRequests
		case ReasonUpstreamQuotaExhausted:
			return http.StatusPaymentRequired
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// extracts an *Error from the chain
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}

// reports whether err carries the given reason
func HasReason(err error, reason string) bool {
	appErr, ok := As(err)
	return ok && appErr.Reason == reason
}
