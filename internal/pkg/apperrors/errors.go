package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound       = errors.New("resource not found")
	ErrReviewNotFound = errors.New("review not found")

	// Session errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLoginRequired      = errors.New("login required")
	ErrPermissionDenied   = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Gateway errors
	ErrUnavailable = errors.New("backend unavailable")

	// Directory errors
	ErrNoPendingDelete = errors.New("no delete pending confirmation")
)

// GenericMessage is the fallback shown when a remote failure carries no
// usable message of its own.
const GenericMessage = "Something went wrong"

// ValidationError is a local, pre-network failure. It blocks submission
// and is never sent over the wire.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match ErrValidationFailed
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RemoteError is a non-2xx response from the backend, carrying whatever
// messages its error payload supplied.
type RemoteError struct {
	StatusCode int
	Messages   []string
	Err        error
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	return e.FirstMessage()
}

// Unwrap implements errors.Unwrap
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// FirstMessage returns the first server-provided message, or the
// generic fallback when the payload carried none.
func (e *RemoteError) FirstMessage() string {
	for _, m := range e.Messages {
		if m != "" {
			return m
		}
	}
	return GenericMessage
}

// NewRemoteError creates a RemoteError wrapping a sentinel
func NewRemoteError(status int, messages []string, err error) *RemoteError {
	return &RemoteError{StatusCode: status, Messages: messages, Err: err}
}

// UserMessage extracts the message to surface for any failure reaching
// the user: validation text, the first remote message, or the generic
// fallback for plain transport errors.
func UserMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var rErr *RemoteError
	if errors.As(err, &rErr) {
		return rErr.FirstMessage()
	}
	return GenericMessage
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
