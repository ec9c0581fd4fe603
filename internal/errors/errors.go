package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain error carrying a machine-readable code.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code to an underlying error.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// HTTPStatus maps domain codes to HTTP status codes for the web UI.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeProviderAuth:
		return http.StatusBadGateway
	case CodeProviderRateLimited:
		return http.StatusServiceUnavailable
	case CodeProviderUnavailable, CodeProviderEmptyReply:
		return http.StatusBadGateway
	case CodeNotFound:
		return http.StatusNotFound
	case CodeSessionEmptyID, CodeTurnEmptySpeaker, CodeParticipantNotFound:
		return http.StatusBadRequest
	case CodeStorageUnavailable, CodeTurnSequenceGap:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
