package dto

import "time"

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the web shell
const (
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeLoginRequired      ErrorCode = "AUTH_002"
	ErrorCodeForbidden          ErrorCode = "AUTH_003"

	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeNoPendingDelete  ErrorCode = "RES_002"

	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	ErrorCodeInternalServer ErrorCode = "SRV_001"
	ErrorCodeBackendFailure ErrorCode = "SRV_002"
)

// ErrorDetail carries the user-facing error information
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// APIResponse is the standard envelope for every web-shell response
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data, Timestamp: time.Now()}
}

// NewErrorResponse wraps an error detail in a failure envelope
func NewErrorResponse(code ErrorCode, message string) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     &ErrorDetail{Code: code, Message: message},
		Timestamp: time.Now(),
	}
}
