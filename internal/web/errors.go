package web

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an HTTP-facing failure. Handlers return it to pick the status and
// the message shown on the notice page.
type Error struct {
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

var (
	ErrNotFound       = &Error{Code: http.StatusNotFound, Title: "Not Found", Message: "The requested page does not exist."}
	ErrUserNotFound   = &Error{Code: http.StatusNotFound, Title: "Not Found", Message: "No user with that id."}
	ErrBadRequest     = &Error{Code: http.StatusBadRequest, Title: "Bad Request", Message: "The request could not be understood."}
	ErrInternalServer = &Error{Code: http.StatusInternalServerError, Title: "Internal Server Error", Message: "Something went wrong."}
	ErrUnavailable    = &Error{Code: http.StatusServiceUnavailable, Title: "Service Unavailable", Message: "The user store is unreachable."}
)

// GetStatus maps err to an HTTP status. Unknown errors are 500.
func GetStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}

// publicError returns the *Error to show the client. Internal details of
// unknown errors are never exposed.
func publicError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternalServer
}
