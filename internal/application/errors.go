package application

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

var (
	// ErrUnauthorized is returned when no valid login session backs the request.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrForbidden is returned when the principal's role may not perform the operation.
	ErrForbidden = errors.New("application: forbidden")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrInvalidCredentials is returned when a login identifier or password does not match.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrSessionExpired is returned when a login session is past its expiry.
	ErrSessionExpired = errors.New("application: session expired")
	// ErrSessionRevoked is returned when a login session was logged out.
	ErrSessionRevoked = errors.New("application: session revoked")
)

const internalErrorMessage = "Internal server error"

// ValidationError is a caller-facing input problem. Message is shown verbatim.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return v.Message
}

// Failure is the error every service operation returns. Status is the HTTP
// status the failure maps to and Message is safe to show to callers.
type Failure struct {
	Status  int
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f == nil {
		return ""
	}
	if f.Err == nil {
		return f.Message
	}
	return fmt.Sprintf("%s: %v", f.Message, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure converts err into a *Failure. notFound is the message used when err
// reports a missing resource.
func AsFailure(err error, notFound string) *Failure {
	if err == nil {
		return nil
	}

	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return &Failure{Status: http.StatusBadRequest, Message: vErr.Message, Err: err}
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, persistence.ErrNotFound):
		if notFound == "" {
			notFound = "Not found"
		}
		return &Failure{Status: http.StatusNotFound, Message: notFound, Err: err}
	case errors.Is(err, ErrInvalidCredentials):
		return &Failure{Status: http.StatusUnauthorized, Message: "Invalid credentials", Err: err}
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrSessionExpired), errors.Is(err, ErrSessionRevoked):
		return &Failure{Status: http.StatusUnauthorized, Message: "Unauthorized", Err: err}
	case errors.Is(err, ErrForbidden):
		return &Failure{Status: http.StatusForbidden, Message: "Forbidden", Err: err}
	}
	return &Failure{Status: http.StatusInternalServerError, Message: internalErrorMessage, Err: err}
}

// fail is used by services in their deferred blocks so nil stays a nil error
// interface.
func fail(err error, notFound string) error {
	if err == nil {
		return nil
	}
	return AsFailure(err, notFound)
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func isComputationError(err error) bool {
	return errors.Is(err, scheduler.ErrMalformedRow) || errors.Is(err, scheduler.ErrUnknownSlotCode)
}
