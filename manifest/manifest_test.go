package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hooktools/core/config"
	"github.com/hooktools/core/errors"
)

const validManifest = `- id: go-vet
  name: go vet
  entry: go vet ./...
  language: system
  types: [go]
  pass_filenames: false
- id: trailing-whitespace
  name: Trim trailing whitespace
  entry: trailing-whitespace-fixer
  language: python
  stages: [pre-commit, pre-push]
`

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".pre-commit-hooks.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}
	return path
}

func TestLoadValidManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), validManifest)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(m) != 2 {
		t.Fatalf("Expected 2 hooks, got %d", len(m))
	}

	vet := m[0]
	if vet.ID != "go-vet" || vet.Entry != "go vet ./..." || vet.Language != "system" {
		t.Errorf("First hook decoded incorrectly: %+v", vet)
	}
	if vet.ShouldPassFilenames() {
		t.Error("Expected pass_filenames: false to be honored")
	}
	if m[1].ShouldPassFilenames() != true {
		t.Error("Expected pass_filenames to default to true")
	}
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ".pre-commit-hooks.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing manifest")
	}
	if errors.GetCode(err) != errors.ErrCodeManifestNotFound {
		t.Errorf("Expected MANIFEST_NOT_FOUND, got %s", errors.GetCode(err))
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "- id: x\n  name: [unclosed\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for malformed YAML")
	}
	if errors.GetCode(err) != errors.ErrCodeManifestInvalid {
		t.Errorf("Expected MANIFEST_INVALID, got %s", errors.GetCode(err))
	}
}

func TestCheckRejectsMappingDocument(t *testing.T) {
	// A repository that ships its configuration file under the manifest
	// name is the common mistake here.
	path := writeManifest(t, t.TempDir(), "repos:\n- repo: local\n  hooks: []\n")

	_, result, err := Check(path)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if result.Valid() {
		t.Fatal("Expected schema violations for a mapping document")
	}
	joined := joinIssues(result.Errors)
	if !strings.Contains(joined, "array") {
		t.Errorf("Expected a type violation mentioning 'array', got: %s", joined)
	}
}

func TestCheckRejectsAlias(t *testing.T) {
	content := `- id: go-vet
  name: go vet
  entry: go vet ./...
  language: system
  alias: vet
`
	_, result, err := CheckBytes([]byte(content), ".pre-commit-hooks.yaml")
	if err != nil {
		t.Fatalf("CheckBytes failed: %v", err)
	}
	if result.Valid() {
		t.Fatal("Expected a violation for the alias key; only configuration hooks may set it")
	}
	joined := joinIssues(result.Errors)
	if !strings.Contains(joined, "additionalProperties") {
		t.Errorf("Expected an additionalProperties violation, got: %s", joined)
	}
}

func TestCheckReportsMissingRequiredFields(t *testing.T) {
	content := `- id: incomplete
  name: Incomplete hook
`
	_, result, err := CheckBytes([]byte(content), ".pre-commit-hooks.yaml")
	if err != nil {
		t.Fatalf("CheckBytes failed: %v", err)
	}
	if result.Valid() {
		t.Fatal("Expected violations for missing entry and language")
	}
	joined := joinIssues(result.Errors)
	if !strings.Contains(joined, "entry") || !strings.Contains(joined, "language") {
		t.Errorf("Expected violations naming entry and language, got: %s", joined)
	}
}

func TestCheckCollectsAllSemanticErrors(t *testing.T) {
	content := `- id: broken
  name: Broken hook
  entry: broken
  language: klingon
  files: "("
  stages: [sideways]
  types: ["", go]
  minimum_pre_commit_version: latest
`
	m, result, err := CheckBytes([]byte(content), ".pre-commit-hooks.yaml")
	if err != nil {
		t.Fatalf("CheckBytes failed: %v", err)
	}
	if m == nil {
		t.Fatal("Expected the decoded manifest alongside the findings")
	}
	if len(result.Errors) < 5 {
		t.Errorf("Expected at least 5 errors, got %d: %s", len(result.Errors), joinIssues(result.Errors))
	}
	joined := joinIssues(result.Errors)
	for _, want := range []string{"klingon", "regular expression", "sideways", "type tags", "latest"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected an error mentioning %q, got: %s", want, joined)
		}
	}
}

func TestLoadFoldsValidationErrors(t *testing.T) {
	content := `- id: broken
  name: Broken hook
  entry: broken
  language: klingon
`
	_, err := LoadBytes([]byte(content), ".pre-commit-hooks.yaml")
	if err == nil {
		t.Fatal("Expected a validation error")
	}
	if errors.GetCode(err) != errors.ErrCodeManifestValidation {
		t.Errorf("Expected MANIFEST_VALIDATION, got %s", errors.GetCode(err))
	}

	hookErr, ok := err.(*errors.HookError)
	if !ok {
		t.Fatalf("Expected *errors.HookError, got %T", err)
	}
	messages, ok := hookErr.Details["errors"].([]string)
	if !ok || len(messages) == 0 {
		t.Errorf("Expected the folded error to carry the issue list, got %v", hookErr.Details)
	}
}

func TestApplyDefaultsNormalizesLegacyStages(t *testing.T) {
	m := Manifest{
		{ID: "fix", Name: "Fix", Entry: "fix", Language: "python", Stages: []string{"commit", "push"}},
	}

	warnings := m.ApplyDefaults()

	if len(warnings) != 2 {
		t.Fatalf("Expected 2 deprecation warnings, got %d: %v", len(warnings), warnings)
	}
	if m[0].Stages[0] != "pre-commit" || m[0].Stages[1] != "pre-push" {
		t.Errorf("Expected legacy stages to be rewritten, got %v", m[0].Stages)
	}
	if !strings.Contains(warnings[0], "legacy stage name 'commit'") {
		t.Errorf("Unexpected warning text: %s", warnings[0])
	}
}

func TestValidateDuplicateIDWarning(t *testing.T) {
	m := Manifest{
		{ID: "fix", Name: "Fix", Entry: "fix", Language: "python"},
		{ID: "fix", Name: "Fix again", Entry: "fix", Language: "python"},
	}

	result := m.Validate()

	if !result.Valid() {
		t.Fatalf("Expected no errors, got: %s", joinIssues(result.Errors))
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0].Message, "more than once") {
		t.Errorf("Expected a duplicate id warning, got %v", result.Warnings)
	}
}

func TestManifestLookupHelpers(t *testing.T) {
	m, err := LoadBytes([]byte(validManifest), ".pre-commit-hooks.yaml")
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}

	if hook := m.ByID("go-vet"); hook == nil || hook.Name != "go vet" {
		t.Errorf("ByID(go-vet) = %+v", hook)
	}
	if hook := m.ByID("no-such-hook"); hook != nil {
		t.Errorf("Expected nil for unknown id, got %+v", hook)
	}

	ids := m.IDs()
	if len(ids) != 2 || ids[0] != "go-vet" || ids[1] != "trailing-whitespace" {
		t.Errorf("Unexpected ids: %v", ids)
	}
}

func TestFindManifestFile(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, validManifest)

	nested := filepath.Join(root, "hooks", "python")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}

	found, err := FindManifestFile(nested)
	if err != nil {
		t.Fatalf("FindManifestFile failed: %v", err)
	}
	if found != filepath.Join(root, ".pre-commit-hooks.yaml") {
		t.Errorf("Expected manifest at repository root, got %s", found)
	}
}

func TestFindManifestFileMissing(t *testing.T) {
	_, err := FindManifestFile(t.TempDir())
	if err == nil {
		t.Fatal("Expected error when no manifest exists")
	}
	if errors.GetCode(err) != errors.ErrCodeManifestNotFound {
		t.Errorf("Expected MANIFEST_NOT_FOUND, got %s", errors.GetCode(err))
	}
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	if err != nil {
		t.Fatalf("GenerateSchema failed: %v", err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("Generated schema is not valid JSON: %v", err)
	}

	if schema["type"] != "array" {
		t.Errorf("Expected an array schema, got type %v", schema["type"])
	}

	items, ok := schema["items"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected items to be a schema object, got %T", schema["items"])
	}

	required, ok := items["required"].([]interface{})
	if !ok {
		t.Fatalf("Expected required list on the hook schema, got %T", items["required"])
	}
	for _, field := range []string{"id", "name", "entry", "language"} {
		found := false
		for _, r := range required {
			if r == field {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected %s to be required, got %v", field, required)
		}
	}

	properties, ok := items["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected properties on the hook schema, got %T", items["properties"])
	}
	if _, ok := properties["alias"]; ok {
		t.Error("Manifest hooks must not accept alias")
	}
}

func joinIssues(issues []config.Issue) string {
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}
