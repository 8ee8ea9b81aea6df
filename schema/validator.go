// Package schema validates raw pre-commit documents against the embedded
// JSON Schemas before typed decoding. The schemas own structure and typing
// (unknown keys, wrong types, missing required fields); vocabulary and
// cross-field rules live in the config and manifest packages.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.embedded.schema.json
var configSchemaData []byte

//go:embed hooks.embedded.schema.json
var hooksSchemaData []byte

// ConfigSchema returns the embedded JSON Schema for .pre-commit-config.yaml.
func ConfigSchema() []byte { return configSchemaData }

// ManifestSchema returns the embedded JSON Schema for .pre-commit-hooks.yaml.
func ManifestSchema() []byte { return hooksSchemaData }

// Validator validates documents against one of the embedded JSON Schemas.
type Validator struct {
	schema *jsonschema.Schema
}

// NewConfigValidator loads the .pre-commit-config.yaml schema.
func NewConfigValidator() (*Validator, error) {
	return newValidator("pre-commit-config.json", configSchemaData)
}

// NewManifestValidator loads the .pre-commit-hooks.yaml schema.
func NewManifestValidator() (*Validator, error) {
	return newValidator("pre-commit-hooks.json", hooksSchemaData)
}

func newValidator(name string, data []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("failed to register embedded schema %s: %w", name, err)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("embedded schema %s does not compile: %w", name, err)
	}

	return &Validator{schema: schema}, nil
}

// Validate validates a document against the schema. The document may be a
// raw decoded value (map/slice tree) or any value that marshals to JSON.
func (v *Validator) Validate(doc interface{}) error {
	violations, err := v.Violations(doc)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return fmt.Errorf("schema validation failed:\n%s", strings.Join(violations, "\n"))
	}
	return nil
}

// Violations returns one message per schema violation, empty when the
// document is valid. The error return covers documents that cannot be
// brought into JSON form at all.
func (v *Validator) Violations(doc interface{}) ([]string, error) {
	// Round-trip through JSON so YAML-decoded values (and typed structs)
	// become the plain map/slice tree the schema library expects.
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document for validation: %w", err)
	}

	var tree interface{}
	if err := json.Unmarshal(jsonData, &tree); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document for validation: %w", err)
	}

	err = v.schema.Validate(tree)
	if err == nil {
		return nil, nil
	}
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	messages := leafMessages(validationErr, nil)
	if len(messages) == 0 {
		messages = append(messages, validationErr.Message)
	}
	return messages, nil
}

// leafMessages walks the cause tree and returns one message per leaf
// violation, each prefixed with the instance location it applies to.
func leafMessages(err *jsonschema.ValidationError, messages []string) []string {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return append(messages, fmt.Sprintf("%s: %s", location, err.Message))
	}
	for _, cause := range err.Causes {
		messages = leafMessages(cause, messages)
	}
	return messages
}
