package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hooktools/core/errors"
)

const validConfig = `
repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.6.0
    hooks:
      - id: trailing-whitespace
      - id: end-of-file-fixer
        exclude: ^testdata/
  - repo: local
    hooks:
      - id: go-vet
        name: go vet
        entry: go vet ./...
        language: system
        types: [go]
        pass_filenames: false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".pre-commit-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, validConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load valid config: %v", err)
	}

	if len(cfg.Repos) != 2 {
		t.Fatalf("Expected 2 repos, got %d", len(cfg.Repos))
	}
	if cfg.Repos[0].Kind() != RepoKindRemote {
		t.Errorf("Expected first repo to be remote, got %s", cfg.Repos[0].Kind())
	}
	if !cfg.Repos[1].IsLocal() {
		t.Error("Expected second repo to be local")
	}

	// Defaults were applied during load.
	hook := cfg.Repos[0].Hooks[0]
	if hook.Name != "trailing-whitespace" {
		t.Errorf("Expected hook name to default to id, got '%s'", hook.Name)
	}
	if len(hook.Stages) == 0 {
		t.Error("Expected hook stages to inherit the default stages")
	}

	local := cfg.Repos[1].Hooks[0]
	if local.ShouldPassFilenames() {
		t.Error("Expected pass_filenames: false to be honored")
	}
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ".pre-commit-config.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	if errors.GetCode(err) != errors.ErrCodeConfigNotFound {
		t.Errorf("Expected CONFIG_NOT_FOUND, got %s", errors.GetCode(err))
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "repos: [unterminated\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for malformed YAML")
	}
	if errors.GetCode(err) != errors.ErrCodeConfigInvalid {
		t.Errorf("Expected CONFIG_INVALID, got %s", errors.GetCode(err))
	}
}

func TestLoadLegacyListFormat(t *testing.T) {
	legacy := `
- repo: https://github.com/pre-commit/pre-commit-hooks
  sha: v0.4.0
  hooks:
    - id: trailing-whitespace
`
	path := writeConfig(t, legacy)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for legacy top-level list format")
	}
	if errors.GetCode(err) != errors.ErrCodeConfigLegacy {
		t.Errorf("Expected CONFIG_LEGACY_FORMAT, got %s", errors.GetCode(err))
	}
	if !strings.Contains(err.Error(), "migrate-config") {
		t.Errorf("Expected migration hint in error, got: %v", err)
	}
}

func TestCheckUnknownKey(t *testing.T) {
	content := `
repos:
  - repo: local
    hooks:
      - id: fmt
        entry: gofmt -l
        language: system
        filez: ^src/
`
	path := writeConfig(t, content)

	cfg, result, err := Check(path)
	if err != nil {
		t.Fatalf("Check should collect schema violations, not fail: %v", err)
	}
	if result.Valid() {
		t.Fatal("Expected schema violations for unknown hook key")
	}
	joined := ""
	for _, issue := range result.Errors {
		joined += issue.String() + "\n"
	}
	if !strings.Contains(joined, "additionalProperties") && !strings.Contains(joined, "filez") {
		t.Errorf("Expected unknown-key violation, got:\n%s", joined)
	}
	if cfg == nil {
		t.Error("Expected best-effort config alongside schema violations")
	}
}

func TestCheckCollectsAllSemanticErrors(t *testing.T) {
	content := `
repos:
  - repo: https://github.com/psf/black
    hooks:
      - id: black
        language: brainfuck
        files: "("
  - repo: meta
    hooks:
      - id: not-a-meta-hook
`
	path := writeConfig(t, content)

	_, result, err := Check(path)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(result.Errors) < 4 {
		t.Fatalf("Expected at least 4 errors (missing rev, bad language, bad regex, bad meta id), got %d: %v",
			len(result.Errors), result.Errors)
	}
}

func TestLoadFoldsValidationErrors(t *testing.T) {
	content := `
repos:
  - repo: https://github.com/psf/black
    hooks:
      - id: black
`
	path := writeConfig(t, content)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected validation error for missing rev")
	}
	if errors.GetCode(err) != errors.ErrCodeConfigValidation {
		t.Errorf("Expected CONFIG_VALIDATION, got %s", errors.GetCode(err))
	}
	hookErr, ok := err.(*errors.HookError)
	if !ok {
		t.Fatalf("Expected *errors.HookError, got %T", err)
	}
	if hookErr.Details["errors"] == nil {
		t.Error("Expected error details to carry the issue list")
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".pre-commit-config.yaml")
	if err := os.WriteFile(configPath, []byte(validConfig), 0644); err != nil {
		t.Fatal(err)
	}

	nested := filepath.Join(tmpDir, "internal", "pkg")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfigFile(nested)
	if err != nil {
		t.Fatalf("Expected config found from nested dir: %v", err)
	}
	if found != configPath {
		t.Errorf("Expected %s, got %s", configPath, found)
	}
}

func TestFindConfigFileYmlFallback(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".pre-commit-config.yml")
	if err := os.WriteFile(configPath, []byte(validConfig), 0644); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfigFile(tmpDir)
	if err != nil {
		t.Fatalf("Expected .yml fallback found: %v", err)
	}
	if found != configPath {
		t.Errorf("Expected %s, got %s", configPath, found)
	}
}
