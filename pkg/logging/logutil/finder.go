// Package logutil locates the tool's own log files. The logging package
// writes one date-stamped file per component under the state directory;
// the logs command uses this package to find the right one to show.
package logutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindComponentLogFile returns the most recent log file for a component
// in dir. An empty component matches every file. Files with content are
// preferred over empty ones so a freshly rotated file does not hide the
// logs the user is after.
func FindComponentLogFile(dir, component string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("could not read log directory %s: %w", dir, err)
	}

	prefix := ""
	if component != "" {
		prefix = component + "-"
	}

	var latestFile os.FileInfo
	var latestPath string
	var latestNonEmptyFile os.FileInfo
	var latestNonEmptyPath string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if prefix != "" && !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latestFile == nil || info.ModTime().After(latestFile.ModTime()) {
			latestFile = info
			latestPath = filepath.Join(dir, entry.Name())
		}
		if info.Size() > 0 {
			if latestNonEmptyFile == nil || info.ModTime().After(latestNonEmptyFile.ModTime()) {
				latestNonEmptyFile = info
				latestNonEmptyPath = filepath.Join(dir, entry.Name())
			}
		}
	}

	if latestNonEmptyFile != nil {
		return latestNonEmptyPath, nil
	}
	if latestFile == nil {
		if component != "" {
			return "", fmt.Errorf("no log files for component %q in %s", component, dir)
		}
		return "", fmt.Errorf("no log files found in %s", dir)
	}
	return latestPath, nil
}

// FindLatestLogFile returns the most recent log file in dir regardless of
// component.
func FindLatestLogFile(dir string) (string, error) {
	return FindComponentLogFile(dir, "")
}

// Components lists the component names that have log files in dir,
// sorted by file order, one entry per component.
func Components(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read log directory %s: %w", dir, err)
	}

	seen := make(map[string]bool)
	var components []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := componentFromFileName(entry.Name())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		components = append(components, name)
	}
	return components, nil
}

// componentFromFileName strips the -YYYY-MM-DD.log suffix the logging
// package appends. Names that do not follow the pattern yield "".
func componentFromFileName(name string) string {
	name = strings.TrimSuffix(name, ".log")
	if len(name) <= len("-2006-01-02") {
		return ""
	}
	datePart := name[len(name)-len("2006-01-02"):]
	if datePart[4] != '-' || datePart[7] != '-' {
		return ""
	}
	return strings.TrimSuffix(name[:len(name)-len("2006-01-02")], "-")
}
