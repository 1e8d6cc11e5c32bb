package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrNotLoggedIn        = errors.New("you are not logged in, please log in to get access")
	ErrUserGone           = errors.New("the user belonging to this token no longer exists")
	ErrPasswordChanged    = errors.New("password was recently changed, please log in again")
	ErrForbiddenRole      = errors.New("you do not have permission to perform this action")

	ErrTokenInvalid = errors.New("invalid token, please log in again")
	ErrTokenExpired = errors.New("token has expired, please log in again")
)

// AppError is an operational error: an anticipated failure whose status code
// and message are safe to return to the client as-is.
type AppError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status derives the envelope status class from the code: client faults are
// "fail", server faults are "error".
func (e *AppError) Status() string {
	if e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError {
		return "fail"
	}
	return "error"
}

func New(statusCode int, message string) *AppError {
	return &AppError{StatusCode: statusCode, Message: message}
}

func Wrap(statusCode int, message string, err error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

func Internal(message string) *AppError {
	return New(http.StatusInternalServerError, message)
}
