// Package migrate rewrites legacy configuration layouts into the current
// format. The transforms are textual: comments, key ordering, and quoting
// survive untouched, so a migrated file diffs minimally.
package migrate

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/logging"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ChangeKind identifies one of the supported transforms.
type ChangeKind string

const (
	// ChangeWrapRepos wraps a top-level hook list in a repos key.
	ChangeWrapRepos ChangeKind = "wrap-repos"
	// ChangeShaToRev renames sha keys to rev.
	ChangeShaToRev ChangeKind = "sha-to-rev"
)

// Change describes one transform Migrate applied.
type Change struct {
	Kind        ChangeKind `json:"kind"`
	Description string     `json:"description"`
}

// shaKeyRegex matches an indented sha key at the start of a line. Anchoring
// on the newline keeps sha inside string values untouched.
var shaKeyRegex = regexp.MustCompile(`(\n\s+)sha:`)

// Migrate applies every known transform to the file contents and reports
// what changed. Contents that are already current come back unchanged with
// an empty change list.
func Migrate(contents string) (string, []Change) {
	var changes []Change

	if isListDocument(contents) {
		contents = wrapTopLevelList(contents)
		changes = append(changes, Change{
			Kind:        ChangeWrapRepos,
			Description: "wrapped the top-level hook list in a repos key",
		})
	}

	if n := len(shaKeyRegex.FindAllStringIndex(contents, -1)); n > 0 {
		contents = shaKeyRegex.ReplaceAllString(contents, "${1}rev:")
		changes = append(changes, Change{
			Kind:        ChangeShaToRev,
			Description: fmt.Sprintf("renamed %d sha key(s) to rev", n),
		})
	}

	return contents, changes
}

// MigrateFile migrates a configuration file in place. The replace is atomic
// and durable; a dry run reports the changes and leaves the file alone.
func MigrateFile(path string, dryRun bool) ([]Change, error) {
	logger := logging.NewLogger("migrate")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read configuration file").
			WithDetail("path", path)
	}

	var probe interface{}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, errors.ConfigInvalid(path, err)
	}

	migrated, changes := Migrate(string(data))
	if len(changes) == 0 {
		logger.WithField("path", path).Debug("Configuration is already migrated")
		return nil, nil
	}

	if dryRun {
		logger.WithFields(logrus.Fields{
			"path":    path,
			"changes": len(changes),
		}).Debug("Dry run, leaving file untouched")
		return changes, nil
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithExistingPermissions())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to stage migrated configuration").
			WithDetail("path", path)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := io.WriteString(pending, migrated); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to write migrated configuration").
			WithDetail("path", path)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to replace configuration file").
			WithDetail("path", path)
	}

	logger.WithFields(logrus.Fields{
		"path":    path,
		"changes": len(changes),
	}).Info("Configuration migrated")

	return changes, nil
}

// isListDocument reports whether the document root is a YAML sequence, the
// layout that predates the repos key.
func isListDocument(contents string) bool {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(contents), &doc); err != nil {
		return false
	}
	return len(doc.Content) > 0 && doc.Content[0].Kind == yaml.SequenceNode
}

// wrapTopLevelList inserts a repos key between the file header and the hook
// list. Directives, comments, and blank lines stay above the new key. The
// unindented form is preferred; when the result would not parse (flow-style
// lists at column zero), the body is indented instead.
func wrapTopLevelList(contents string) string {
	lines := strings.SplitAfter(contents, "\n")

	i := 0
	for i < len(lines) && isHeaderLine(lines[i]) {
		i++
	}

	header := strings.Join(lines[:i], "")
	rest := strings.Join(lines[i:], "")

	trial := header + "repos:\n" + rest
	if parsesAsYAML(trial) {
		return trial
	}
	return header + "repos:\n" + indentBody(rest)
}

func isHeaderLine(line string) bool {
	return strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "---") ||
		strings.TrimSpace(line) == ""
}

func parsesAsYAML(contents string) bool {
	var probe interface{}
	return yaml.Unmarshal([]byte(contents), &probe) == nil
}

func indentBody(text string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if strings.TrimSpace(line) != "" {
			b.WriteString("    ")
		}
		b.WriteString(line)
	}
	return b.String()
}
