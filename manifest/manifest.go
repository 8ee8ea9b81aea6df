// Package manifest loads and validates .pre-commit-hooks.yaml, the file a
// hook repository ships to describe the hooks it provides. The manifest is
// a top-level list; unlike configuration hooks, every entry must fully
// define itself: id, name, entry, and language are required.
package manifest

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

//go:generate go run ../tools/schema-generator/

// Hook is one entry in a hook repository's manifest.
type Hook struct {
	ID       string `yaml:"id" jsonschema:"required,description=Identifier of the hook"`
	Name     string `yaml:"name" jsonschema:"required,description=Display name"`
	Entry    string `yaml:"entry" jsonschema:"required,description=Executable the hook runs"`
	Language string `yaml:"language" jsonschema:"required,description=Language the hook is written in"`

	Files        string   `yaml:"files,omitempty" jsonschema:"description=File include pattern (Python regular expression)"`
	Exclude      string   `yaml:"exclude,omitempty" jsonschema:"description=File exclude pattern (Python regular expression)"`
	Types        []string `yaml:"types,omitempty" jsonschema:"description=File type tags that must all match"`
	TypesOr      []string `yaml:"types_or,omitempty" jsonschema:"description=File type tags of which at least one must match"`
	ExcludeTypes []string `yaml:"exclude_types,omitempty" jsonschema:"description=File type tags that must not match"`

	Args   []string `yaml:"args,omitempty" jsonschema:"description=Extra arguments passed to the hook entry"`
	Stages []string `yaml:"stages,omitempty" jsonschema:"description=Stages the hook runs in (empty means all)"`

	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty" jsonschema:"description=Extra packages installed into the hook environment"`

	AlwaysRun bool   `yaml:"always_run,omitempty" jsonschema:"description=Run even when no files match"`
	Verbose   bool   `yaml:"verbose,omitempty" jsonschema:"description=Print hook output even on success"`
	LogFile   string `yaml:"log_file,omitempty" jsonschema:"description=File the hook output is appended to"`

	LanguageVersion string `yaml:"language_version,omitempty" jsonschema:"description=Language version the hook environment uses"`

	// PassFilenames defaults to true; a pointer distinguishes an explicit
	// false from the field being omitted.
	PassFilenames *bool `yaml:"pass_filenames,omitempty" jsonschema:"description=Pass matched file names to the hook entry (default: true)"`

	FailFast      bool `yaml:"fail_fast,omitempty" jsonschema:"description=Stop running remaining hooks after this hook fails"`
	RequireSerial bool `yaml:"require_serial,omitempty" jsonschema:"description=Run without parallelism"`

	Description             string `yaml:"description,omitempty" jsonschema:"description=Human-readable description of the hook"`
	MinimumPreCommitVersion string `yaml:"minimum_pre_commit_version,omitempty" jsonschema:"description=Minimum runner version required by this hook"`
}

// ShouldPassFilenames resolves the pass_filenames default.
func (h *Hook) ShouldPassFilenames() bool {
	if h.PassFilenames == nil {
		return true
	}
	return *h.PassFilenames
}

// Manifest is the hook list a repository publishes.
type Manifest []Hook

// ByID returns the hook with the given id, or nil when absent.
func (m Manifest) ByID(id string) *Hook {
	for i := range m {
		if m[i].ID == id {
			return &m[i]
		}
	}
	return nil
}

// IDs returns the hook ids in manifest order.
func (m Manifest) IDs() []string {
	ids := make([]string, len(m))
	for i := range m {
		ids[i] = m[i].ID
	}
	return ids
}

// GenerateSchema reflects the manifest format into a JSON Schema: an array
// of fully-specified hook entries.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	hookSchema := r.Reflect(&Hook{})
	hookSchema.Version = ""

	schema := &jsonschema.Schema{
		Version:     "http://json-schema.org/draft-07/schema#",
		Title:       "pre-commit hook manifest",
		Description: "Schema for .pre-commit-hooks.yaml",
		Type:        "array",
		Items:       hookSchema,
	}

	return json.MarshalIndent(schema, "", "  ")
}
