package domain

import (
	"errors"
	"fmt"
)

// Error codes for the client-side error taxonomy.
const (
	CodeNetwork    = 1 // no response received (connectivity)
	CodeAPI        = 2 // server responded with a non-2xx status
	CodeValidation = 3 // client-side validation failure, never reached the network
	CodePending    = 4 // a mutation for the same entity is already in flight
	CodeSession    = 5 // no usable session (missing or expired token)
	CodeInternal   = 6
)

// AppError represents a client error with a code, message, and optional detail.
type AppError struct {
	Code    int               `json:"code"`
	Status  int               `json:"status,omitempty"` // HTTP status, set for CodeAPI
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"` // per-field detail, set for CodeValidation
	Err     error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined errors.
//
// To check whether an error matches one of these categories, use the
// corresponding helper function (IsNetwork, IsAPI, etc.) instead of
// errors.Is. The helpers use errors.As with error-code comparison, so
// they correctly match any *AppError carrying the same code, including
// freshly constructed and wrapped instances, whereas errors.Is only
// matches by pointer identity with the specific sentinel below.
var (
	ErrNetwork   = &AppError{Code: CodeNetwork, Message: "network unreachable"}
	ErrPending   = &AppError{Code: CodePending, Message: "mutation already in flight"}
	ErrNoSession = &AppError{Code: CodeSession, Message: "no active session"}
	ErrInternal  = &AppError{Code: CodeInternal, Message: "internal error"}
)

// NewAppError creates a new AppError with the given code, message, and wrapped error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewNetworkError wraps a transport failure where no response was received.
func NewNetworkError(err error) *AppError {
	return &AppError{Code: CodeNetwork, Message: "network unreachable", Err: err}
}

// NewAPIError creates an error for a non-2xx server response. message is the
// server-provided message when the error body carried one, empty otherwise.
func NewAPIError(status int, message string) *AppError {
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &AppError{Code: CodeAPI, Status: status, Message: message}
}

// NewValidationError creates a client-side validation error with optional
// per-field detail keyed by the field's JSON name.
func NewValidationError(message string, fields map[string]string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Fields: fields}
}

// IsNetwork reports whether err is or wraps an AppError with CodeNetwork.
func IsNetwork(err error) bool {
	return hasCode(err, CodeNetwork)
}

// IsAPI reports whether err is or wraps an AppError with CodeAPI.
func IsAPI(err error) bool {
	return hasCode(err, CodeAPI)
}

// IsValidation reports whether err is or wraps an AppError with CodeValidation.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsPending reports whether err is or wraps an AppError with CodePending.
func IsPending(err error) bool {
	return hasCode(err, CodePending)
}

// IsSession reports whether err is or wraps an AppError with CodeSession.
func IsSession(err error) bool {
	return hasCode(err, CodeSession)
}

// APIStatus returns the HTTP status carried by an API error, or 0 when err
// is not an API error.
func APIStatus(err error) int {
	var appErr *AppError
	if err != nil && errors.As(err, &appErr) && appErr.Code == CodeAPI {
		return appErr.Status
	}
	return 0
}

// hasCode checks whether err is or wraps an *AppError with the given code.
func hasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
