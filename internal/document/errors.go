package document

import (
	"errors"
	"fmt"
)

// Error codes shared by the loader, the query engine and the dispatcher.
const (
	ENOTFOUND        = "not_found"
	EPARSE           = "parse_error"
	ENOTLOADED       = "not_loaded"
	EUNKNOWNTOOL     = "unknown_tool"
	EUNKNOWNRESOURCE = "unknown_resource"
	EINVALID         = "invalid_argument"
	EOUTOFRANGE      = "out_of_range"
)

// Error is a categorized application error.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf returns an *Error with the given code and formatted message.
func Errorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error with the given code that wraps cause.
func Wrap(code string, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: cause}
}

// ErrorCode returns the code of the first *Error in err's chain, or "" if none.
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ErrorMessage returns the human-readable message of the first *Error in
// err's chain. Other errors return their Error() text.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
