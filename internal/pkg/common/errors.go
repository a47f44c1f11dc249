package common

import (
	"errors"
	"net/http"
)

// ErrorResponse API error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CustomError carries an error code and the HTTP status it maps to.
type CustomError struct {
	Code    string
	Message string
	Err     error
	Status  int
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches any CustomError with the same code.
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// NewError creates a CustomError.
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Wrap returns a copy of e carrying err as its cause.
func (e *CustomError) Wrap(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// AsCustomError extracts a CustomError from err, or nil.
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}

const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeMissingInput     = "MISSING_INPUT"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeBodyTooLarge     = "BODY_TOO_LARGE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

var (
	ErrInvalidRequest   = NewError(ErrCodeInvalidRequest, "invalid request body", http.StatusBadRequest, nil)
	ErrMissingInput     = NewError(ErrCodeMissingInput, "provide imageBase64 or a non-empty pantryOverride", http.StatusBadRequest, nil)
	ErrMethodNotAllowed = NewError(ErrCodeMethodNotAllowed, "method not allowed", http.StatusMethodNotAllowed, nil)
	ErrTooManyRequests  = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)
	ErrBodyTooLarge     = NewError(ErrCodeBodyTooLarge, "request body too large", http.StatusRequestEntityTooLarge, nil)
	ErrInternalError    = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)

	ErrInvalidImage     = NewError("INVALID_IMAGE", "invalid image data", http.StatusBadRequest, nil)
	ErrInvalidImageSize = NewError("INVALID_IMAGE_SIZE", "image exceeds size limit", http.StatusBadRequest, nil)
)
