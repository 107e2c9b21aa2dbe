package apierr

import "net/http"

// Error is a failure shaped for the HTTP edge. Message is safe to show a
// client; Cause is kept for logs and errors.Is/As only.
type Error struct {
	Status  int
	Code    string
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Message != "":
		return e.Message
	case e.Cause != nil:
		return e.Cause.Error()
	case e.Code != "":
		return e.Code
	default:
		return http.StatusText(e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func (e *Error) WithCause(err error) *Error {
	out := *e
	out.Cause = err
	return &out
}

// BadRequest reports a body that could not be decoded; the decoder's message is shown.
func BadRequest(err error) *Error {
	msg := "invalid request body"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Status: http.StatusBadRequest, Code: "invalid_request", Message: msg, Cause: err}
}

func Validation(field string, cause error) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "validation_failed", Field: field, Message: cause.Error(), Cause: cause}
}

func Unauthorized() *Error {
	return New(http.StatusUnauthorized, "unauthorized", "missing or invalid token")
}

func Forbidden() *Error {
	return New(http.StatusForbidden, "forbidden", "forbidden")
}

func NotFound(what string) *Error {
	return New(http.StatusNotFound, "not_found", what+" not found")
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, "conflict", message)
}

func Internal(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal error", Cause: cause}
}
