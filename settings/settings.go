// Package settings loads the hookcfg tool's own configuration file.
//
// This is distinct from the pre-commit configuration being validated: the
// settings file controls the tool (theme, logging, discovery ignores, watch
// behavior), lives under the XDG config dir, and may be written in YAML or
// TOML. A project can override individual fields with a .hookcfg.yaml file
// at its root.
package settings

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Settings is the root of the hookcfg settings file.
type Settings struct {
	// Theme selects the color theme for CLI and TUI output.
	Theme string `yaml:"theme,omitempty" toml:"theme,omitempty"`

	// Color controls colored output: "auto" (default), "always", or "never".
	Color string `yaml:"color,omitempty" toml:"color,omitempty"`

	// Icons selects the icon set for TUI output: "nerd" (default) or "ascii".
	Icons string `yaml:"icons,omitempty" toml:"icons,omitempty"`

	// Ignore adds discovery ignore patterns on top of the built-in ones.
	// Patterns use .gitignore-style syntax.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Watch configures the watch daemon.
	Watch WatchSettings `yaml:"watch,omitempty" toml:"watch,omitempty"`

	// Extensions holds sections owned by other packages (e.g. "logging").
	// They are decoded on demand via UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline" toml:"-"`
}

// WatchSettings configures the watch daemon and the file watcher.
type WatchSettings struct {
	// Roots are the directories the daemon scans for pre-commit files.
	// Defaults to the daemon's working directory.
	Roots []string `yaml:"roots,omitempty" toml:"roots,omitempty"`

	// Debounce is how long to wait after a file event before revalidating,
	// as a Go duration string. Defaults to 500ms.
	Debounce string `yaml:"debounce,omitempty" toml:"debounce,omitempty"`

	// Poll is the interval between full rescans, as a Go duration string.
	// Defaults to 30s.
	Poll string `yaml:"poll,omitempty" toml:"poll,omitempty"`
}

// DebounceDuration returns the parsed debounce window.
func (w WatchSettings) DebounceDuration() time.Duration {
	if d, err := time.ParseDuration(w.Debounce); err == nil && d > 0 {
		return d
	}
	return 500 * time.Millisecond
}

// PollDuration returns the parsed rescan interval.
func (w WatchSettings) PollDuration() time.Duration {
	if d, err := time.ParseDuration(w.Poll); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		Theme: "default",
		Color: "auto",
	}
}

// UnmarshalExtension decodes the extension section stored under key into
// target. It is not an error if the key is absent; target keeps its zero
// value in that case.
func (s *Settings) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := s.Extensions[key]
	if !ok {
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
