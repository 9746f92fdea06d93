package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrEmailTaken         = NewDomainError("EMAIL_TAKEN", "Email is already registered")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrUploadRejected     = NewDomainError("UPLOAD_REJECTED", "File was rejected")
	ErrUploadFailed       = NewDomainError("UPLOAD_FAILED", "File upload failed")
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "Internal error")
)
