package errors

import (
	"fmt"
	"net/http"
)

// Kind classifies an application error so callers can react without
// string-matching messages.
type Kind string

const (
	KindValidation        Kind = "ValidationError"
	KindInvalidReferences Kind = "InvalidReferences"
	KindMediaValidation   Kind = "MediaValidationError"
	KindUploadFailed      Kind = "UploadFailed"
	KindDependencyInUse   Kind = "DependencyInUse"
	KindNotFound          Kind = "NotFound"
	KindDependencyTimeout Kind = "DependencyTimeout"
	KindInternal          Kind = "Internal"
)

// Error represents an application error
type Error struct {
	Kind    Kind     `json:"kind"`
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
	Err     error    `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(kind Kind, code int, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports malformed input. The caller must correct the payload.
func Validation(message string) *Error {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

// InvalidReferences reports reference fields that do not resolve to an
// existing taxonomy document. Fields carries every failing field name.
func InvalidReferences(fields []string) *Error {
	return &Error{
		Kind:    KindInvalidReferences,
		Code:    http.StatusBadRequest,
		Message: "one or more referenced entities do not exist",
		Fields:  fields,
	}
}

// MediaValidation reports an attached file that fails its slot's size or
// extension limits.
func MediaValidation(message string) *Error {
	return New(KindMediaValidation, http.StatusBadRequest, message, nil)
}

// UploadFailed reports an asset store upload that could not complete. It is
// retryable from the caller's side; the service performs no automatic retry.
func UploadFailed(err error) *Error {
	return New(KindUploadFailed, http.StatusBadGateway, "asset upload failed", err)
}

// DependencyInUse reports a delete refused because dependents still
// reference the entity. dependent names the referencing kind.
func DependencyInUse(kind, dependent string) *Error {
	return New(KindDependencyInUse, http.StatusBadRequest,
		fmt.Sprintf("cannot delete: %s is in use by one or more %s records", kind, dependent), nil)
}

// NotFound reports a missing document.
func NotFound(what string) *Error {
	return New(KindNotFound, http.StatusNotFound, what+" not found", nil)
}

// DependencyTimeout reports a collaborator call that exceeded its deadline.
func DependencyTimeout(err error) *Error {
	return New(KindDependencyTimeout, http.StatusGatewayTimeout, "dependency timed out", err)
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return New(KindInternal, http.StatusInternalServerError, "internal server error", err)
}

// AsError returns err as an *Error, wrapping unknown errors as Internal.
func AsError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return Internal(err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
