package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/pkg/paths"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// OverrideFileName is the per-project settings override, searched upward
// from the working directory.
const OverrideFileName = ".hookcfg.yaml"

// globalFileNames are tried in order inside the XDG config dir.
var globalFileNames = []string{"config.yaml", "config.yml", "config.toml"}

// Load reads a single settings file. The format is chosen by extension:
// .toml is decoded as TOML, everything else as YAML.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeSettingsInvalid,
				fmt.Sprintf("settings file not found: %s", path))
		}
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid,
			fmt.Sprintf("failed to read settings file: %s", path))
	}

	s, err := parse(data, strings.EqualFold(filepath.Ext(path), ".toml"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid,
			fmt.Sprintf("failed to parse settings file: %s", path)).
			WithDetail("path", path)
	}
	return s, nil
}

// LoadDefault loads the global settings file and applies a project override
// when one exists. A missing settings file is not an error; defaults are
// returned.
func LoadDefault() (*Settings, error) {
	merged := Default()

	if globalPath := findGlobalFile(); globalPath != "" {
		global, err := Load(globalPath)
		if err != nil {
			return nil, err
		}
		merged = mergeSettings(merged, global)
	}

	if cwd, err := os.Getwd(); err == nil {
		if overridePath := FindProjectOverride(cwd); overridePath != "" {
			override, err := Load(overridePath)
			if err != nil {
				return nil, err
			}
			merged = mergeSettings(merged, override)
		}
	}

	return merged, nil
}

// IsGlobalSettingsFile reports whether name is one of the file names
// LoadDefault considers inside the config dir. The daemon uses it to
// pick settings changes out of directory events.
func IsGlobalSettingsFile(name string) bool {
	for _, candidate := range globalFileNames {
		if name == candidate {
			return true
		}
	}
	return false
}

// findGlobalFile returns the first existing settings file in the config dir.
func findGlobalFile() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	for _, name := range globalFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// FindProjectOverride walks upward from startDir looking for a project
// settings override. The search stops at the filesystem root or the user's
// home directory, whichever comes first.
func FindProjectOverride(startDir string) string {
	home, _ := os.UserHomeDir()

	dir := startDir
	for {
		candidate := filepath.Join(dir, OverrideFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		if dir == home {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// parse decodes settings bytes. YAML fills Extensions via the inline map;
// TOML is decoded into a generic map first so unknown sections land in
// Extensions the same way.
func parse(data []byte, isTOML bool) (*Settings, error) {
	if !isTOML {
		var s Settings
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return &s, nil
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var s Settings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &s,
		TagName: "yaml",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	// Anything that is not a typed field becomes an extension section.
	known := map[string]bool{"theme": true, "color": true, "icons": true, "ignore": true, "watch": true}
	for key, value := range raw {
		if known[key] {
			continue
		}
		if s.Extensions == nil {
			s.Extensions = make(map[string]interface{})
		}
		s.Extensions[key] = value
	}

	return &s, nil
}
