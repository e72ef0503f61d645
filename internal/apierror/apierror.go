package apierror

import (
	"fmt"
	"net/http"
)

// Error types per the API contract.
const (
	TypeInvalidRequest  = "invalid_request"
	TypeProcessingError = "processing_error"
)

// Error codes.
const (
	CodeMissingAuthorization = "missing_authorization"
	CodeInvalidAPIVersion    = "invalid_api_version"
	CodeInvalid              = "invalid"
	CodeNotFound             = "not_found"
	CodeInvalidStatus        = "invalid_status"
	CodeNotCancelable        = "session_not_cancelable"
	CodeInvalidCard          = "invalid_card"
	CodeInvalidAllowance     = "invalid_allowance"
	CodeInternal             = "internal_error"
)

// Error is the single error shape returned to callers. Param is set only for
// payload validation failures and points at the offending field.
type Error struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s (%s): %s [param=%s]", e.Type, e.Code, e.Message, e.Param)
	}
	return fmt.Sprintf("%s (%s): %s", e.Type, e.Code, e.Message)
}

// HTTPStatus maps the taxonomy onto response status codes.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeMissingAuthorization:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidStatus:
		return http.StatusConflict
	case CodeNotCancelable:
		return http.StatusMethodNotAllowed
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Invalid reports a generic payload validation failure. param may be empty.
func Invalid(param, format string, args ...interface{}) *Error {
	return &Error{
		Type:    TypeInvalidRequest,
		Code:    CodeInvalid,
		Message: fmt.Sprintf(format, args...),
		Param:   param,
	}
}

// NotFound reports an unknown record id.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Type: TypeInvalidRequest, Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidStatus reports an operation that is illegal for the record's current status.
func InvalidStatus(format string, args ...interface{}) *Error {
	return &Error{Type: TypeInvalidRequest, Code: CodeInvalidStatus, Message: fmt.Sprintf(format, args...)}
}

// NotCancelable reports cancellation of a session already in a terminal state.
// Distinct from InvalidStatus: a repeated cancel is a different caller mistake
// than an out-of-order update, and clients key off the difference.
func NotCancelable(format string, args ...interface{}) *Error {
	return &Error{Type: TypeInvalidRequest, Code: CodeNotCancelable, Message: fmt.Sprintf(format, args...)}
}

// InvalidCard reports an unsupported payment method type.
func InvalidCard(format string, args ...interface{}) *Error {
	return &Error{Type: TypeInvalidRequest, Code: CodeInvalidCard, Message: fmt.Sprintf(format, args...)}
}

// InvalidAllowance reports an unsupported allowance reason.
func InvalidAllowance(format string, args ...interface{}) *Error {
	return &Error{Type: TypeInvalidRequest, Code: CodeInvalidAllowance, Message: fmt.Sprintf(format, args...)}
}

// MissingAuthorization reports an absent bearer credential.
func MissingAuthorization() *Error {
	return &Error{Type: TypeInvalidRequest, Code: CodeMissingAuthorization, Message: "missing or malformed Authorization header"}
}

// InvalidAPIVersion reports an API-Version header mismatch.
func InvalidAPIVersion(got, want string) *Error {
	return &Error{
		Type:    TypeInvalidRequest,
		Code:    CodeInvalidAPIVersion,
		Message: fmt.Sprintf("unsupported API version %q, expected %q", got, want),
	}
}

// Internal wraps an unexpected failure. The underlying error is never exposed
// to the caller; it stays reachable through Unwrap for logging at the
// operation boundary.
func Internal(err error) *Error {
	return &Error{Type: TypeProcessingError, Code: CodeInternal, Message: "an unexpected error occurred", cause: err}
}

func (e *Error) Unwrap() error { return e.cause }

// From coerces any error into the taxonomy: known *Error values pass through,
// everything else becomes an internal processing error.
func From(err error) *Error {
	if ae, ok := err.(*Error); ok {
		return ae
	}
	return Internal(err)
}
