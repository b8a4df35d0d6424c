// ABOUTME: Custom error types for the core business logic
// ABOUTME: Models the failure taxonomy of conversion, mail, storage and browser calls

package errors

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by key-value backends when a key was never
// written, was deleted or has expired.
var ErrKeyNotFound = errors.New("key not found")

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents missing or malformed input detected before any
// network call is made.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents a non-success HTTP response from a remote API.
// Message carries the remote error message when the API supplied one.
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// MalformedResponseError represents a remote response with an unexpected shape
type MalformedResponseError struct {
	API    string
	Reason string
}

// Error implements the error interface
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %s", e.API, e.Reason)
}

// TransportError represents a network failure before any response was received
type TransportError struct {
	API string
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error calling %s: %v", e.API, e.Err)
}

// Unwrap returns the underlying network error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// PersistenceError represents a failure of a storage backend
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s failed for %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying backend error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// AuthError represents a missing or rejected bearer token. It is recoverable:
// the caller should re-authenticate and retry the action.
type AuthError struct {
	Message string
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return "authentication required: " + e.Message
}

// ConflictError represents an action rejected because another one is in flight
type ConflictError struct {
	Message string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return "conflict: " + e.Message
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsMalformedResponse checks if an error is a MalformedResponseError
func IsMalformedResponse(err error) bool {
	var malformedErr *MalformedResponseError
	return errors.As(err, &malformedErr)
}

// IsTransport checks if an error is a TransportError
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// IsPersistence checks if an error is a PersistenceError
func IsPersistence(err error) bool {
	var persistenceErr *PersistenceError
	return errors.As(err, &persistenceErr)
}

// IsAuth checks if an error is an AuthError
func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsKeyNotFound checks if an error reports a key-value miss
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
