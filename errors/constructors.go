package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *HookError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(path string, err error) *HookError {
	return Wrap(err, ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", path)).
		WithDetail("path", path)
}

// ConfigLegacyFormat reports the pre-2016 list-at-top-level layout, which
// needs `migrate-config` before it can be loaded.
func ConfigLegacyFormat(path string) *HookError {
	return New(ErrCodeConfigLegacy,
		fmt.Sprintf("%s uses the legacy top-level list format; run `hookcfg migrate-config` to update it", path)).
		WithDetail("path", path)
}

// ManifestNotFound creates a hook manifest not found error
func ManifestNotFound(path string) *HookError {
	return New(ErrCodeManifestNotFound, fmt.Sprintf("hook manifest not found: %s", path)).
		WithDetail("path", path)
}

// ManifestInvalid creates an invalid hook manifest error
func ManifestInvalid(path string, err error) *HookError {
	return Wrap(err, ErrCodeManifestInvalid, fmt.Sprintf("invalid hook manifest: %s", path)).
		WithDetail("path", path)
}

// RegexInvalid reports a file-selection pattern that does not compile.
func RegexInvalid(field, pattern string, err error) *HookError {
	return Wrap(err, ErrCodeRegexInvalid,
		fmt.Sprintf("invalid regular expression for %s: %q", field, pattern)).
		WithDetail("field", field).
		WithDetail("pattern", pattern)
}

// MigrationFailed creates a migration failure error
func MigrationFailed(path string, err error) *HookError {
	return Wrap(err, ErrCodeMigrationFailed, fmt.Sprintf("failed to migrate %s", path)).
		WithDetail("path", path)
}

// DaemonNotRunning creates a daemon not running error
func DaemonNotRunning() *HookError {
	return New(ErrCodeDaemonNotRunning, "the watch daemon is not running")
}

// DaemonAlreadyRunning creates a daemon already running error
func DaemonAlreadyRunning(pid int) *HookError {
	return New(ErrCodeDaemonAlreadyRunning,
		fmt.Sprintf("the watch daemon is already running (PID %d)", pid)).
		WithDetail("pid", pid)
}

// WriteFailed creates a file write failure error
func WriteFailed(path string, err error) *HookError {
	return Wrap(err, ErrCodeWriteFailed, fmt.Sprintf("failed to write %s", path)).
		WithDetail("path", path)
}
