package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setFakeHome points every path lookup at a temp directory so tests never
// touch the real settings file.
func setFakeHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOOKCFG_HOME", tmpDir)
	return tmpDir
}

func writeGlobalSettings(t *testing.T, root, name, content string) {
	t.Helper()
	configDir := filepath.Join(root, "config", "hookcfg")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaultWithoutFile(t *testing.T) {
	setFakeHome(t)

	// Run from a directory with no project override.
	cwd := t.TempDir()
	origWd, _ := os.Getwd()
	defer os.Chdir(origWd)
	if err := os.Chdir(cwd); err != nil {
		t.Fatal(err)
	}

	s, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault without any file should not error: %v", err)
	}

	if s.Theme != "default" {
		t.Errorf("Expected theme 'default', got '%s'", s.Theme)
	}
	if s.Color != "auto" {
		t.Errorf("Expected color 'auto', got '%s'", s.Color)
	}
}

func TestLoadYAMLSettings(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
theme: dark
color: never
ignore:
  - "build/**"
  - "*.generated.yaml"

watch:
  roots:
    - /src/repos
  debounce: 2s

logging:
  default_level: debug
`
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if s.Theme != "dark" {
		t.Errorf("Expected theme 'dark', got '%s'", s.Theme)
	}
	if s.Color != "never" {
		t.Errorf("Expected color 'never', got '%s'", s.Color)
	}
	if len(s.Ignore) != 2 || s.Ignore[0] != "build/**" {
		t.Errorf("Expected 2 ignore patterns, got %v", s.Ignore)
	}
	if len(s.Watch.Roots) != 1 || s.Watch.Roots[0] != "/src/repos" {
		t.Errorf("Expected watch root '/src/repos', got %v", s.Watch.Roots)
	}
	if s.Watch.DebounceDuration() != 2*time.Second {
		t.Errorf("Expected debounce 2s, got %v", s.Watch.DebounceDuration())
	}

	// The logging section lands in Extensions, not a typed field.
	var logCfg struct {
		DefaultLevel string `yaml:"default_level"`
	}
	if err := s.UnmarshalExtension("logging", &logCfg); err != nil {
		t.Fatalf("Failed to unmarshal logging extension: %v", err)
	}
	if logCfg.DefaultLevel != "debug" {
		t.Errorf("Expected default_level 'debug', got '%s'", logCfg.DefaultLevel)
	}
}

func TestLoadTOMLSettings(t *testing.T) {
	tmpDir := t.TempDir()
	content := `theme = "light"
ignore = ["vendor/**"]

[watch]
poll = "1m"

[logging]
default_level = "warn"
`
	path := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load TOML settings: %v", err)
	}

	if s.Theme != "light" {
		t.Errorf("Expected theme 'light', got '%s'", s.Theme)
	}
	if len(s.Ignore) != 1 || s.Ignore[0] != "vendor/**" {
		t.Errorf("Expected ignore ['vendor/**'], got %v", s.Ignore)
	}
	if s.Watch.PollDuration() != time.Minute {
		t.Errorf("Expected poll 1m, got %v", s.Watch.PollDuration())
	}

	var logCfg struct {
		DefaultLevel string `yaml:"default_level"`
	}
	if err := s.UnmarshalExtension("logging", &logCfg); err != nil {
		t.Fatalf("Failed to unmarshal logging extension from TOML: %v", err)
	}
	if logCfg.DefaultLevel != "warn" {
		t.Errorf("Expected default_level 'warn', got '%s'", logCfg.DefaultLevel)
	}
}

func TestLoadInvalidSettings(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte("theme: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed settings file")
	}
}

// TestGlobalAndProjectMerge tests the two-level merge: the global file
// provides defaults and a project .hookcfg.yaml overrides individual fields.
func TestGlobalAndProjectMerge(t *testing.T) {
	root := setFakeHome(t)

	writeGlobalSettings(t, root, "config.yaml", `
theme: dark
ignore:
  - "node_modules/**"

logging:
  default_level: info
  format:
    timestamp_format: "15:04:05"
`)

	projectDir := t.TempDir()
	projectOverride := `
theme: light

logging:
  default_level: debug
`
	if err := os.WriteFile(filepath.Join(projectDir, OverrideFileName), []byte(projectOverride), 0644); err != nil {
		t.Fatal(err)
	}

	origWd, _ := os.Getwd()
	defer os.Chdir(origWd)
	if err := os.Chdir(projectDir); err != nil {
		t.Fatal(err)
	}

	s, err := LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load merged settings: %v", err)
	}

	// Theme comes from the project override.
	if s.Theme != "light" {
		t.Errorf("Expected theme 'light' from project, got '%s'", s.Theme)
	}
	// Ignore comes from the global file.
	if len(s.Ignore) != 1 || s.Ignore[0] != "node_modules/**" {
		t.Errorf("Expected ignore from global file, got %v", s.Ignore)
	}

	// Extension sections merge per key: default_level from the project,
	// format from the global file.
	var logCfg struct {
		DefaultLevel string `yaml:"default_level"`
		Format       struct {
			TimestampFormat string `yaml:"timestamp_format"`
		} `yaml:"format"`
	}
	if err := s.UnmarshalExtension("logging", &logCfg); err != nil {
		t.Fatalf("Failed to unmarshal logging extension: %v", err)
	}
	if logCfg.DefaultLevel != "debug" {
		t.Errorf("Expected default_level 'debug' from project, got '%s'", logCfg.DefaultLevel)
	}
	if logCfg.Format.TimestampFormat != "15:04:05" {
		t.Errorf("Expected timestamp_format from global file, got '%s'", logCfg.Format.TimestampFormat)
	}
}

func TestFindProjectOverrideWalksUpward(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, OverrideFileName), []byte("theme: dark\n"), 0644); err != nil {
		t.Fatal(err)
	}

	nested := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found := FindProjectOverride(nested)
	if found != filepath.Join(tmpDir, OverrideFileName) {
		t.Errorf("Expected override found at %s, got %s", tmpDir, found)
	}

	// A directory tree with no override returns empty.
	if found := FindProjectOverride(t.TempDir()); found != "" {
		t.Errorf("Expected no override, got %s", found)
	}
}

func TestWatchDurationDefaults(t *testing.T) {
	var w WatchSettings
	if w.DebounceDuration() != 500*time.Millisecond {
		t.Errorf("Expected default debounce 500ms, got %v", w.DebounceDuration())
	}
	if w.PollDuration() != 30*time.Second {
		t.Errorf("Expected default poll 30s, got %v", w.PollDuration())
	}

	w.Debounce = "not-a-duration"
	if w.DebounceDuration() != 500*time.Millisecond {
		t.Errorf("Expected fallback debounce for bad value, got %v", w.DebounceDuration())
	}
}

func TestMergeSettingsExtensionMaps(t *testing.T) {
	base := &Settings{
		Theme: "default",
		Extensions: map[string]interface{}{
			"logging": map[string]interface{}{
				"default_level": "info",
				"stderr":        "auto",
			},
		},
	}
	override := &Settings{
		Extensions: map[string]interface{}{
			"logging": map[string]interface{}{
				"default_level": "trace",
			},
		},
	}

	merged := mergeSettings(base, override)

	logging, ok := merged.Extensions["logging"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected merged logging extension to be a map")
	}
	if logging["default_level"] != "trace" {
		t.Errorf("Expected default_level 'trace' from override, got %v", logging["default_level"])
	}
	if logging["stderr"] != "auto" {
		t.Errorf("Expected stderr 'auto' preserved from base, got %v", logging["stderr"])
	}
	if merged.Theme != "default" {
		t.Errorf("Expected base theme preserved, got '%s'", merged.Theme)
	}
}
