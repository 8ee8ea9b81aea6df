package manifest

import (
	"os"
	"path/filepath"

	"github.com/hooktools/core/config"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/logging"
	"github.com/hooktools/core/schema"
	"gopkg.in/yaml.v3"
)

// Load reads, validates, and resolves a hook manifest. Validation problems
// are folded into a single structured error; callers that want the full
// issue list use Check instead.
func Load(path string) (Manifest, error) {
	m, result, err := Check(path)
	if err != nil {
		return nil, err
	}
	if err := foldResult(result); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadBytes is Load for a manifest already in memory.
func LoadBytes(data []byte, path string) (Manifest, error) {
	m, result, err := CheckBytes(data, path)
	if err != nil {
		return nil, err
	}
	if err := foldResult(result); err != nil {
		return nil, err
	}
	return m, nil
}

// Check runs the full pipeline on a manifest file and returns every issue
// found. The error return covers problems that prevent checking at all.
func Check(path string) (Manifest, *config.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.ManifestNotFound(path)
		}
		return nil, nil, errors.Wrap(err, errors.ErrCodeManifestInvalid, "failed to read hook manifest").
			WithDetail("path", path)
	}
	return CheckBytes(data, path)
}

// CheckBytes is Check for a manifest already in memory.
func CheckBytes(data []byte, path string) (Manifest, *config.Result, error) {
	logger := logging.NewLogger("manifest")
	logger.WithField("path", path).Debug("Checking hook manifest")

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.ManifestInvalid(path, err)
	}

	validator, err := schema.NewManifestValidator()
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to load embedded manifest schema")
	}
	violations, err := validator.Violations(raw)
	if err != nil {
		return nil, nil, errors.ManifestInvalid(path, err)
	}
	if len(violations) > 0 {
		result := &config.Result{}
		for _, v := range violations {
			result.Errors = append(result.Errors, config.Issue{Message: v})
		}
		var m Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, result, nil
		}
		return m, result, nil
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, nil, errors.ManifestInvalid(path, err)
	}

	warnings := m.ApplyDefaults()
	result := m.Validate()
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, config.Issue{Message: w})
	}

	logger.WithField("hooks", len(m)).Debug("Hook manifest checked")

	return m, result, nil
}

// FindManifestFile searches for a hook manifest starting at startDir and
// walking up to the filesystem root.
func FindManifestFile(startDir string) (string, error) {
	dir := startDir
	for {
		path := filepath.Join(dir, config.ManifestFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ManifestNotFound(startDir).WithDetail("searchPath", startDir)
}
