// The schema-generator tool reflects the config and manifest Go types
// into JSON Schemas and writes them next to the curated schemas the
// validator embeds. The curated schemas stay authoritative; diffing them
// against the generated copies shows where the Go types and the schemas
// have drifted apart. It also emits the schema for the logging section
// of the settings file, which has no curated counterpart.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hooktools/core/config"
	"github.com/hooktools/core/logging"
	"github.com/hooktools/core/manifest"
)

func main() {
	root, err := moduleRoot()
	if err != nil {
		log.Fatalf("Error locating module root: %v", err)
	}
	outputDir := filepath.Join(root, "schema")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	write := func(name string, generate func() ([]byte, error)) {
		data, err := generate()
		if err != nil {
			log.Fatalf("Error generating %s: %v", name, err)
		}
		path := filepath.Join(outputDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			log.Fatalf("Error writing %s: %v", path, err)
		}
		log.Printf("Wrote %s", path)
	}

	write("config.generated.schema.json", config.GenerateSchema)
	write("hooks.generated.schema.json", manifest.GenerateSchema)
	write("logging.generated.schema.json", logging.GenerateSchema)
}

// moduleRoot walks up from the working directory to the directory that
// holds go.mod, so the tool lands its output in the same place whether it
// runs from the repository root or through go:generate.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod found above %s", dir)
		}
		dir = parent
	}
}
