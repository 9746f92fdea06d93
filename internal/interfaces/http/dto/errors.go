package dto

import "net/http"

// Error code constants shared between domain errors and the wire format.

// Input error codes
const (
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeValidationFailed is used when request binding validation fails
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	// ErrCodeEmailTaken is used when signing up with a registered email
	ErrCodeEmailTaken = "EMAIL_TAKEN"
	// ErrCodeUploadRejected is used when an uploaded file fails validation
	ErrCodeUploadRejected = "UPLOAD_REJECTED"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeInvalidCredentials is used when login fails, for any reason
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found or owned by someone else
	ErrCodeNotFound = "NOT_FOUND"
)

// Server error codes
const (
	// ErrCodeUploadFailed is used when storing a valid file fails
	ErrCodeUploadFailed = "UPLOAD_FAILED"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Input errors -> 400 Bad Request
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeValidationFailed: http.StatusBadRequest,
	ErrCodeEmailTaken:       http.StatusBadRequest,
	ErrCodeUploadRejected:   http.StatusBadRequest,

	// Auth errors -> 401 Unauthorized
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,

	// Resource errors -> 404 Not Found
	ErrCodeNotFound: http.StatusNotFound,

	// Server errors -> 500 Internal Server Error
	ErrCodeUploadFailed: http.StatusInternalServerError,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
