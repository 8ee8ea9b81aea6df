package logging

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects Config into a JSON Schema for the `logging`
// section of the settings file. Settings stay forward compatible, so
// unknown keys are allowed and no field is required.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "hookcfg logging settings"
	schema.Description = "Schema for the logging section of the hookcfg settings file."
	schema.Required = nil

	return json.MarshalIndent(schema, "", "  ")
}
