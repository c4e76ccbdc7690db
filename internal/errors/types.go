package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// CodedError defines the base interface for all testgen errors
type CodedError interface {
	error
	ErrorCode() ErrorCode
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// Generation error types
	GenerationErrorCode
	TemplateErrorCode
	FileSystemErrorCode

	// Collaborator error types
	ConfigurationErrorCode
	VCSErrorCode
	WatchErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case GenerationErrorCode:
		return "GenerationError"
	case TemplateErrorCode:
		return "TemplateError"
	case FileSystemErrorCode:
		return "FileSystemError"
	case ConfigurationErrorCode:
		return "ConfigurationError"
	case VCSErrorCode:
		return "VCSError"
	case WatchErrorCode:
		return "WatchError"
	default:
		return "UnknownError"
	}
}

// BaseError provides a common implementation of the CodedError interface
type BaseError struct {
	Code        ErrorCode              // type of error
	Message     string                 // error message
	Cause       error                  // underlying error cause
	ContextData map[string]interface{} // additional context information
	Hints       []string               // helpful suggestions for fixing the error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Context returns the error context data
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithContext adds context data to the error
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestions adds helpful suggestions
func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a new BaseError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Hints:   make([]string, 0),
	}
}

// HasCode reports whether any error in the chain is a CodedError with the given code
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var coded CodedError
		if !stderrors.As(err, &coded) {
			return false
		}
		if coded.ErrorCode() == code {
			return true
		}
		err = coded.Unwrap()
	}
	return false
}

// IsFileSystemError reports whether err came from a failed file system operation
func IsFileSystemError(err error) bool {
	return HasCode(err, FileSystemErrorCode)
}

// AllSuggestions collects suggestions from every CodedError in the chain plus any
// hints attached with WithHint
func AllSuggestions(err error) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for cur := err; cur != nil; {
		var coded CodedError
		if !stderrors.As(cur, &coded) {
			break
		}
		for _, s := range coded.Suggestions() {
			add(s)
		}
		cur = coded.Unwrap()
	}
	for _, h := range GetAllHints(err) {
		add(h)
	}
	return out
}
