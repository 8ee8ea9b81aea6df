package config

import (
	"os"
	"path/filepath"

	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/logging"
	"github.com/hooktools/core/schema"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Load reads, validates, and resolves a configuration file. Validation
// problems are folded into a single structured error; callers that want
// the full issue list use Check instead.
func Load(path string) (*Config, error) {
	cfg, result, err := Check(path)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadBytes is Load for configuration already in memory. The path is used
// only in messages.
func LoadBytes(data []byte, path string) (*Config, error) {
	cfg, result, err := CheckBytes(data, path)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Check runs the full pipeline on a configuration file and returns every
// issue found. The error return covers problems that prevent checking at
// all: a missing file, unreadable bytes, YAML that does not parse, or the
// pre-repos legacy layout. Schema and semantic findings land in the Result.
func Check(path string) (*Config, *Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.ConfigNotFound(path)
		}
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}
	return CheckBytes(data, path)
}

// CheckBytes is Check for configuration already in memory.
func CheckBytes(data []byte, path string) (*Config, *Result, error) {
	logger := logging.NewLogger("config")
	logger.WithField("path", path).Debug("Checking pre-commit configuration")

	// The pre-repos layout put the repository list at the top level of the
	// document. Catch it before schema validation so the user gets a
	// migration hint instead of a type error.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, errors.ConfigInvalid(path, err)
	}
	if isLegacyListFormat(&doc) {
		return nil, nil, errors.ConfigLegacyFormat(path)
	}

	var raw interface{}
	if doc.Kind != 0 {
		if err := doc.Decode(&raw); err != nil {
			return nil, nil, errors.ConfigInvalid(path, err)
		}
	}

	validator, err := schema.NewConfigValidator()
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to load embedded config schema")
	}
	violations, err := validator.Violations(raw)
	if err != nil {
		return nil, nil, errors.ConfigInvalid(path, err)
	}
	if len(violations) > 0 {
		logger.WithField("violations", len(violations)).Debug("Schema validation failed")
		result := &Result{}
		for _, v := range violations {
			result.Errors = append(result.Errors, Issue{Message: v})
		}
		// Best-effort typed decode so callers still get structure to show.
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, result, nil
		}
		return &cfg, result, nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, errors.ConfigInvalid(path, err)
	}

	warnings := cfg.ApplyDefaults()
	result := cfg.Validate()
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, Issue{Message: w})
	}

	logger.WithFields(logrus.Fields{
		"repos":    len(cfg.Repos),
		"errors":   len(result.Errors),
		"warnings": len(result.Warnings),
	}).Debug("Configuration checked")

	return &cfg, result, nil
}

// isLegacyListFormat reports whether the document root is a sequence,
// the layout used before the repos key was introduced.
func isLegacyListFormat(doc *yaml.Node) bool {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return false
	}
	return doc.Content[0].Kind == yaml.SequenceNode
}

// FindConfigFile searches for a pre-commit configuration file starting at
// startDir and walking up to the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}
