package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an application error carrying an HTTP status code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Validation is a 400 for missing or malformed input.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// NotFound is a 404 for an unknown resource id.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// Unauthorized is a 401 for bad credentials or a missing token.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

// Conflict is a 409 for duplicate-resource conditions.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

// Internal is a 500 wrapping an unexpected failure.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "Server error", err)
}

// Respond writes err as a JSON response. Non-application errors become
// an internal error; the wrapped cause is never leaked to the caller.
func Respond(c *gin.Context, err error) {
	appErr, ok := err.(*Error)
	if !ok {
		appErr = Internal(err)
	}
	c.JSON(appErr.Code, gin.H{"message": appErr.Message})
}
