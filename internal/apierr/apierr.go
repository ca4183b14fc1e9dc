package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound            = "not_found"
	CodeValidationFailed    = "validation_failed"
	CodeUnsupportedFileType = "unsupported_file_type"
	CodeFileTooLarge        = "file_too_large"
	CodeStorageWriteFailed  = "storage_write_failed"
	CodeUnauthorized        = "unauthorized"
	CodeInternal            = "internal"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(entity string) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s not found", entity))
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeValidationFailed, fmt.Errorf(format, args...))
}

func UnsupportedFileType(ext string) *Error {
	return New(http.StatusBadRequest, CodeUnsupportedFileType, fmt.Errorf("unsupported file type %q", ext))
}

func FileTooLarge(limitBytes int64) *Error {
	return New(http.StatusRequestEntityTooLarge, CodeFileTooLarge, fmt.Errorf("file exceeds the %d byte limit", limitBytes))
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf(format, args...))
}

func StorageWrite(err error) *Error {
	return New(http.StatusInternalServerError, CodeStorageWriteFailed, fmt.Errorf("saving file: %w", err))
}

// From maps any error onto an *Error, defaulting to a 500.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return New(http.StatusInternalServerError, CodeInternal, err)
}
