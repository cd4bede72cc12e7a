package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for each error category. They are returned by Unwrap()
// so callers can classify errors with errors.Is without depending on the
// concrete struct types.
var (
	ErrValueIsRequired        = errors.New("value is required")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrObjectNotFound         = errors.New("object not found")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrConcurrencyConflict    = errors.New("concurrency conflict")
	ErrNotAuthorized          = errors.New("not authorized")
	ErrExternalService        = errors.New("external service failure")
)

// sanitize collapses newlines so multi-line values cannot break log lines
// or inject fake log records.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// ValueIsRequiredError indicates that a mandatory value was not provided.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing required value.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing required value
// with the underlying cause attached.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates that a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for an invalid value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for an invalid value
// with the underlying cause attached.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a value lies outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates an error for a value outside [min, max].
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates an error for a value outside
// [min, max] with the underlying cause attached.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError indicates that a requested object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error for a missing object.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an error for a missing object
// with the underlying cause attached.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidStateTransitionError indicates an order status change that the
// transition table does not permit from the current status.
type InvalidStateTransitionError struct {
	From  string
	To    string
	Cause error
}

// NewInvalidStateTransitionError creates an error for a forbidden status transition.
func NewInvalidStateTransitionError(from, to string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{From: from, To: to}
}

// NewInvalidStateTransitionErrorWithCause creates an error for a forbidden
// status transition with the underlying cause attached.
func NewInvalidStateTransitionErrorWithCause(from, to string, cause error) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidStateTransitionError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s -> %s (cause: %s)",
			ErrInvalidStateTransition, e.From, e.To, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidStateTransition, e.From, e.To))
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// ConcurrencyConflictError indicates that a conditional update found the
// record in a different status than expected, i.e. another writer committed
// a transition first.
type ConcurrencyConflictError struct {
	ID             any
	ExpectedStatus string
	Cause          error
}

// NewConcurrencyConflictError creates an error for a lost compare-and-set race.
func NewConcurrencyConflictError(id any, expectedStatus string) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ID: id, ExpectedStatus: expectedStatus}
}

// NewConcurrencyConflictErrorWithCause creates an error for a lost
// compare-and-set race with the underlying cause attached.
func NewConcurrencyConflictErrorWithCause(id any, expectedStatus string, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ID: id, ExpectedStatus: expectedStatus, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: order %s no longer in status %s (cause: %s)",
			ErrConcurrencyConflict, e.ID, e.ExpectedStatus, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: order %s no longer in status %s",
		ErrConcurrencyConflict, e.ID, e.ExpectedStatus))
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// NotAuthorizedError indicates that the acting role is not allowed to
// perform the requested operation.
type NotAuthorizedError struct {
	Role      string
	Operation string
	Cause     error
}

// NewNotAuthorizedError creates an error for an operation the role may not perform.
func NewNotAuthorizedError(role, operation string) *NotAuthorizedError {
	return &NotAuthorizedError{Role: role, Operation: operation}
}

// NewNotAuthorizedErrorWithCause creates an error for an operation the role
// may not perform with the underlying cause attached.
func NewNotAuthorizedErrorWithCause(role, operation string, cause error) *NotAuthorizedError {
	return &NotAuthorizedError{Role: role, Operation: operation, Cause: cause}
}

func (e *NotAuthorizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: role %s cannot %s (cause: %s)",
			ErrNotAuthorized, e.Role, e.Operation, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: role %s cannot %s", ErrNotAuthorized, e.Role, e.Operation))
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// ExternalServiceError indicates a failure of an outbound collaborator
// (email sender, receipt issuer, event broker). These errors are logged by
// the caller and never invalidate an already committed state transition.
type ExternalServiceError struct {
	Service string
	Cause   error
}

// NewExternalServiceError creates an error for a failed collaborator call.
func NewExternalServiceError(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Cause: cause}
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrExternalService, e.Service, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrExternalService, e.Service))
}

func (e *ExternalServiceError) Unwrap() error {
	return ErrExternalService
}
