package engine

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a workflow or collaborator failure.
type ErrorCode string

const (
	ErrValidation       ErrorCode = "VALIDATION"        // 400: missing required input
	ErrInvalidReference ErrorCode = "INVALID_REFERENCE" // 400: no video id in reference
	ErrNoTranscript     ErrorCode = "NO_TRANSCRIPT"     // 412: operation needs a transcript
	ErrNoContent        ErrorCode = "NO_CONTENT"        // 412: operation needs content
	ErrAuthRequired     ErrorCode = "AUTH_REQUIRED"     // 401: no user identity
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrTranscript       ErrorCode = "TRANSCRIPT_FAILED" // 502: transcript source failed
	ErrGeneration       ErrorCode = "GENERATION_FAILED" // 502: AI call failed
	ErrAnalysis         ErrorCode = "ANALYSIS_FAILED"   // 502
	ErrSearch           ErrorCode = "SEARCH_FAILED"     // 502
	ErrSave             ErrorCode = "SAVE_FAILED"       // 502: persist call failed
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// Error is a typed failure with a human-readable message. Collaborator
// failures always surface to the caller; nothing is silently swallowed.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error // wrapped collaborator error, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a typed error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to a collaborator error.
// A nil err returns nil.
func Wrap(code ErrorCode, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf extracts the ErrorCode from err, or ErrInternal for untyped errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// HTTPStatus maps an error code to an HTTP response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrValidation, ErrInvalidReference:
		return 400
	case ErrAuthRequired:
		return 401
	case ErrNotFound:
		return 404
	case ErrNoTranscript, ErrNoContent:
		return 412
	case ErrTranscript, ErrGeneration, ErrAnalysis, ErrSearch, ErrSave:
		return 502
	default:
		return 500
	}
}
