package apperrors

import "fmt"

// NotFoundError indicates the requested resource does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFound creates a NotFoundError.
func NewNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// ForbiddenError indicates the requester does not own the resource.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// NewForbidden creates a ForbiddenError.
func NewForbidden(format string, args ...interface{}) *ForbiddenError {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}

// IsForbidden reports whether err is a ForbiddenError.
func IsForbidden(err error) bool {
	_, ok := err.(*ForbiddenError)
	return ok
}

// InvalidInputError indicates a semantically invalid request: an empty cart,
// unresolved product ids, an amount mismatch, or a transition the current
// order status does not allow.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// NewInvalidInput creates an InvalidInputError.
func NewInvalidInput(format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	_, ok := err.(*InvalidInputError)
	return ok
}

// ConflictError indicates the operation lost a race with a concurrent update,
// e.g. confirming an order that is no longer PENDING.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflict creates a ConflictError.
func NewConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	_, ok := err.(*ConflictError)
	return ok
}

// UpstreamRejectedError indicates the payment provider declined or errored.
// Message carries the provider's own diagnostic text.
type UpstreamRejectedError struct {
	Message string
}

func (e *UpstreamRejectedError) Error() string {
	return e.Message
}

// NewUpstreamRejected creates an UpstreamRejectedError carrying the provider message.
func NewUpstreamRejected(format string, args ...interface{}) *UpstreamRejectedError {
	return &UpstreamRejectedError{Message: fmt.Sprintf(format, args...)}
}

// IsUpstreamRejected reports whether err is an UpstreamRejectedError.
func IsUpstreamRejected(err error) bool {
	_, ok := err.(*UpstreamRejectedError)
	return ok
}

// GatewayUnavailableError indicates the payment provider could not be reached
// or timed out. Unlike UpstreamRejectedError, the payment may be retried.
type GatewayUnavailableError struct {
	Message string
	Cause   error
}

func (e *GatewayUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GatewayUnavailableError) Unwrap() error {
	return e.Cause
}

// NewGatewayUnavailable creates a GatewayUnavailableError wrapping cause.
func NewGatewayUnavailable(message string, cause error) *GatewayUnavailableError {
	return &GatewayUnavailableError{Message: message, Cause: cause}
}

// IsGatewayUnavailable reports whether err is a GatewayUnavailableError.
func IsGatewayUnavailable(err error) bool {
	_, ok := err.(*GatewayUnavailableError)
	return ok
}
