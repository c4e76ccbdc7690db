package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Common error wrapping patterns used throughout the codebase

// WrapWithOperation wraps an error with an operation context
func WrapWithOperation(operation, item string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s %s", operation, item)
	return Wrap(UnknownErrorCode, message, cause)
}

// WrapGenerateError wraps an error with a "failed to generate" message
func WrapGenerateError(item string, cause error) *BaseError {
	message := fmt.Sprintf("failed to generate %s", item)
	return Wrap(GenerationErrorCode, message, cause).
		WithContext("target", item)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName).
		WithContext("operation", operation)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapVCSError wraps version-control errors
func WrapVCSError(operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s", operation)
	return Wrap(VCSErrorCode, message, cause).
		WithContext("operation", operation)
}

// WrapWatchError wraps directory watcher errors
func WrapWatchError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s '%s'", operation, path)
	return Wrap(WatchErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// ConfigurationError creates a configuration error
func ConfigurationError(configType, message string) *BaseError {
	fullMessage := fmt.Sprintf("configuration error in '%s': %s", configType, message)
	return New(ConfigurationErrorCode, fullMessage).
		WithContext("config_type", configType)
}

// Re-exports of github.com/cockroachdb/errors for ad-hoc errors with stack traces and hints.
var (
	NewSentinel = crdb.New
	Errorf      = crdb.Newf
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	GetAllHints = crdb.GetAllHints

	Is = crdb.Is
	As = crdb.As
)

var (
	// ErrEmptyPath is returned when an operation receives an empty path
	ErrEmptyPath = NewSentinel("path cannot be empty")

	// ErrNotRepository is returned when a path is not inside a git repository
	ErrNotRepository = NewSentinel("not a git repository")
)
