// Package discover scans directory trees for hook configuration and
// manifest files.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hooktools/core/config"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/pkg/profiling"
	"github.com/hooktools/core/util/pathutil"
	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"
)

// FileKind classifies a discovered file.
type FileKind string

const (
	// KindConfig is a project configuration (.pre-commit-config.yaml).
	KindConfig FileKind = "config"
	// KindManifest is a hook repository manifest (.pre-commit-hooks.yaml).
	KindManifest FileKind = "manifest"
)

// Finding is one file located during a scan.
type Finding struct {
	Path string   `json:"path"`
	Kind FileKind `json:"kind"`
	Root string   `json:"root"`
}

// builtinIgnores lists directory trees never worth scanning: VCS internals,
// dependency and cache directories, and virtualenvs.
var builtinIgnores = []string{
	"**/.git",
	"**/.hg",
	"**/.svn",
	"**/node_modules",
	"**/vendor",
	"**/.venv",
	"**/venv",
	"**/.tox",
	"**/__pycache__",
	"**/.mypy_cache",
	"**/.ruff_cache",
	"**/.cache",
}

// Service scans the filesystem for hook configuration and manifest files.
type Service struct {
	logger  *logrus.Logger
	matcher *patternmatcher.PatternMatcher
}

// NewService creates a discovery service. Extra ignore patterns extend the
// built-in set; they use dockerignore syntax and match against paths
// relative to each scan root.
func NewService(logger *logrus.Logger, extraIgnores []string) (*Service, error) {
	patterns := make([]string, 0, len(builtinIgnores)+len(extraIgnores))
	patterns = append(patterns, builtinIgnores...)
	patterns = append(patterns, extraIgnores...)

	matcher, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid ignore pattern").
			WithDetail("patterns", extraIgnores)
	}

	return &Service{logger: logger, matcher: matcher}, nil
}

// Discover scans every root in parallel and returns the findings sorted by
// path. Roots may use ~ and environment variables; overlapping roots yield
// each file once.
func (s *Service) Discover(roots []string) ([]Finding, error) {
	defer profiling.Start("discover.Discover").Stop()

	var wg sync.WaitGroup
	resultsChan := make(chan []Finding, len(roots))

	for _, root := range roots {
		absRoot, err := pathutil.Expand(root)
		if err != nil {
			s.logger.Warnf("Could not resolve scan root '%s': %v", root, err)
			continue
		}

		wg.Add(1)
		go func(root string) {
			defer wg.Done()
			findings, err := s.scanRoot(root)
			if err != nil {
				s.logger.Warnf("Error walking scan root '%s': %v", root, err)
			}
			resultsChan <- findings
		}(absRoot)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	seen := make(map[string]bool)
	var all []Finding
	for findings := range resultsChan {
		for _, f := range findings {
			if !seen[f.Path] {
				all = append(all, f)
				seen[f.Path] = true
			}
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Path < all[j].Path })

	s.logger.WithFields(logrus.Fields{
		"roots":    len(roots),
		"findings": len(all),
	}).Debug("Discovery scan complete")

	return all, nil
}

func (s *Service) scanRoot(root string) ([]Finding, error) {
	var findings []Finding

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}

		ignored, matchErr := s.matcher.MatchesOrParentMatches(filepath.ToSlash(rel))
		if matchErr != nil {
			return matchErr
		}
		if ignored {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if kind, ok := Classify(d.Name()); ok {
			findings = append(findings, Finding{Path: path, Kind: kind, Root: root})
		}
		return nil
	})

	return findings, err
}

// Classify maps a file name to the kind of hook file it is.
func Classify(name string) (FileKind, bool) {
	for _, candidate := range config.ConfigFileNames {
		if name == candidate {
			return KindConfig, true
		}
	}
	if name == config.ManifestFileName {
		return KindManifest, true
	}
	return "", false
}
