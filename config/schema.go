package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects Config into a JSON Schema. The curated schemas
// embedded in the schema package stay authoritative for validation; the
// reflected copy exists so drift between the Go types and the curated
// schema shows up when the schema-generator tool is run.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// The configuration format has no extension mechanism, so unknown
		// keys are rejected outright.
		AllowAdditionalProperties: false,
		// Inline struct definitions instead of emitting $ref, so the
		// schema stands alone.
		ExpandedStruct: true,
		// Property names come from the yaml tags, not the Go names.
		FieldNameTag: "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "pre-commit configuration"
	schema.Description = "Schema for .pre-commit-config.yaml"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
