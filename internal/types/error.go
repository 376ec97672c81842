package types

import (
	"fmt"
	"net/http"
)

// CustomError is a handler failure the global error handler renders with
// its own status code and type.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewError builds a CustomError with a formatted message
func NewError(code int, errorType, format string, args ...any) *CustomError {
	return &CustomError{Code: code, Message: fmt.Sprintf(format, args...), Type: errorType}
}

// BadRequest is a 400 for malformed or invalid input
func BadRequest(errorType, format string, args ...any) *CustomError {
	return NewError(http.StatusBadRequest, errorType, format, args...)
}

// Unprocessable is a 422 for well formed uploads whose content cannot be used
func Unprocessable(errorType, format string, args ...any) *CustomError {
	return NewError(http.StatusUnprocessableEntity, errorType, format, args...)
}
