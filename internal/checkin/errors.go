package checkin

import "errors"

// ErrorCode identifies a failure class in the check-in pipeline.
type ErrorCode string

const (
	CodeInsecureContext  ErrorCode = "INSECURE_CONTEXT"
	CodeUnsupported      ErrorCode = "UNSUPPORTED"
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	CodeUnavailable      ErrorCode = "UNAVAILABLE"
	CodeTimeout          ErrorCode = "TIMEOUT"
	CodeUploadFailed     ErrorCode = "UPLOAD_FAILED"
	CodeSaveFailed       ErrorCode = "SAVE_FAILED"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
)

// Error is the single error type surfaced by the pipeline. Message is meant
// for the user as-is, no stack detail.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError builds a coded pipeline error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError keeps the underlying cause reachable via errors.Unwrap.
func WrapError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the pipeline code from err, walking wrapped errors.
// Errors without a code report CodeUnavailable, the generic retryable class.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnavailable
}

// Retryable reports whether a location failure may escalate to the next
// tier. Only a permission denial is terminal.
func Retryable(err error) bool {
	return CodeOf(err) != CodePermissionDenied
}
