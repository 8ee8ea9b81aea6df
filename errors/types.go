package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies one failure condition across the CLI, so the
// error handler can pick exit codes and follow-up hints by code rather
// than by message text.
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"
	ErrCodeConfigLegacy     ErrorCode = "CONFIG_LEGACY_FORMAT"

	// Manifest errors
	ErrCodeManifestNotFound   ErrorCode = "MANIFEST_NOT_FOUND"
	ErrCodeManifestInvalid    ErrorCode = "MANIFEST_INVALID"
	ErrCodeManifestValidation ErrorCode = "MANIFEST_VALIDATION"

	// Schema errors
	ErrCodeSchemaValidation ErrorCode = "SCHEMA_VALIDATION"
	ErrCodeSchemaGeneration ErrorCode = "SCHEMA_GENERATION"

	// Pattern errors
	ErrCodeRegexInvalid ErrorCode = "REGEX_INVALID"

	// Migration errors
	ErrCodeMigrationFailed ErrorCode = "MIGRATION_FAILED"

	// Settings errors
	ErrCodeSettingsInvalid ErrorCode = "SETTINGS_INVALID"

	// Daemon errors
	ErrCodeDaemonNotRunning     ErrorCode = "DAEMON_NOT_RUNNING"
	ErrCodeDaemonAlreadyRunning ErrorCode = "DAEMON_ALREADY_RUNNING"
	ErrCodeDaemonUnreachable    ErrorCode = "DAEMON_UNREACHABLE"

	// General errors
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	ErrCodeWriteFailed      ErrorCode = "WRITE_FAILED"
)

// HookError is the structured error the CLI surfaces: a code, a
// message, and free-form details for the handler to render.
type HookError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *HookError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *HookError) Unwrap() error {
	return e.Cause
}

// WithDetail attaches one detail and returns the error for chaining.
func (e *HookError) WithDetail(key string, value interface{}) *HookError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

// ToJSON renders the error for the verbose error report.
func (e *HookError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New builds a HookError with the given code.
func New(code ErrorCode, message string) *HookError {
	return &HookError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code ErrorCode, message string) *HookError {
	return &HookError{Code: code, Message: message, Cause: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code ErrorCode) bool {
	return code != "" && GetCode(err) == code
}

// GetCode returns the code of the outermost HookError in err's chain,
// or the empty string when there is none.
func GetCode(err error) ErrorCode {
	var hookErr *HookError
	if stderrors.As(err, &hookErr) {
		return hookErr.Code
	}
	return ""
}
