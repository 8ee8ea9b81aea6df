package schema

// CanonicalURLs maps the pre-commit file names to the published schema URLs
// on SchemaStore. Editors with a YAML language server pick these up for
// completion and inline validation; the embedded schemas in this package
// stay authoritative for hookcfg itself.
var CanonicalURLs = map[string]string{
	".pre-commit-config.yaml": "https://json.schemastore.org/pre-commit-config.json",
	".pre-commit-hooks.yaml":  "https://json.schemastore.org/pre-commit-hooks.json",
}
