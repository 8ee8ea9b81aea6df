package daemon

import (
	"os"
	"time"

	"github.com/hooktools/core/config"
	"github.com/hooktools/core/manifest"
	"github.com/hooktools/core/pkg/discover"
	"github.com/hooktools/core/state"
)

// ValidateFile runs the full check pipeline on one file and condenses the
// outcome into a FileState. Errors that prevent checking at all (unreadable
// file, malformed YAML) surface as a single error entry.
func ValidateFile(path string, kind discover.FileKind) *state.FileState {
	fs := &state.FileState{
		Path:        path,
		Kind:        string(kind),
		ValidatedAt: time.Now(),
	}
	if info, err := os.Stat(path); err == nil {
		fs.ModifiedAt = info.ModTime()
	}

	switch kind {
	case discover.KindManifest:
		m, result, err := manifest.Check(path)
		if err != nil {
			fs.Errors = []string{err.Error()}
			return fs
		}
		fs.Hooks = len(m)
		fs.Errors = issueStrings(result.Errors)
		fs.Warnings = issueStrings(result.Warnings)
		fs.Valid = result.Valid()

	default:
		cfg, result, err := config.Check(path)
		if err != nil {
			fs.Errors = []string{err.Error()}
			return fs
		}
		if cfg != nil {
			fs.Repos = len(cfg.Repos)
			for _, repo := range cfg.Repos {
				fs.Hooks += len(repo.Hooks)
			}
		}
		fs.Errors = issueStrings(result.Errors)
		fs.Warnings = issueStrings(result.Warnings)
		fs.Valid = result.Valid()
	}

	return fs
}

// CollectOnce scans the roots and validates everything found, returning
// config and manifest states keyed by path.
func CollectOnce(service *discover.Service, roots []string) (map[string]*state.FileState, map[string]*state.FileState, error) {
	findings, err := service.Discover(roots)
	if err != nil {
		return nil, nil, err
	}

	configs := make(map[string]*state.FileState)
	manifests := make(map[string]*state.FileState)
	for _, f := range findings {
		fs := ValidateFile(f.Path, f.Kind)
		if f.Kind == discover.KindManifest {
			manifests[f.Path] = fs
		} else {
			configs[f.Path] = fs
		}
	}
	return configs, manifests, nil
}

func issueStrings(issues []config.Issue) []string {
	if len(issues) == 0 {
		return nil
	}
	result := make([]string, len(issues))
	for i, issue := range issues {
		result[i] = issue.String()
	}
	return result
}
