package manifest

import (
	"fmt"
	"regexp"

	"github.com/hooktools/core/config"
	"github.com/hooktools/core/errors"
)

var versionRegex = regexp.MustCompile(`^\d+(\.\d+)*$`)

// ApplyDefaults rewrites legacy stage aliases in place and returns one
// deprecation warning per rewrite. Manifest hooks have no other derived
// values: name, entry, and language must be written out.
func (m Manifest) ApplyDefaults() []string {
	var warnings []string
	for i := range m {
		hook := &m[i]
		for j, stage := range hook.Stages {
			current, legacy := config.NormalizeStage(stage)
			if legacy {
				warnings = append(warnings, fmt.Sprintf(
					"hook '%s' uses legacy stage name '%s'; use '%s' instead", hook.ID, stage, current))
			}
			hook.Stages[j] = current
		}
	}
	return warnings
}

// Validate checks every semantic rule and collects all findings.
func (m Manifest) Validate() *config.Result {
	result := &config.Result{}

	seen := make(map[string]bool)
	for i := range m {
		hook := &m[i]
		path := fmt.Sprintf("[%d]", i)

		validateHook(result, hook, path)

		if hook.ID != "" {
			if seen[hook.ID] {
				result.AddWarning(path,
					"hook id '%s' is defined more than once; consumers resolve the first entry", hook.ID)
			}
			seen[hook.ID] = true
		}
	}

	return result
}

func validateHook(result *config.Result, hook *Hook, path string) {
	requireString(result, path+".id", "id", hook.ID)
	requireString(result, path+".name", "name", hook.Name)
	requireString(result, path+".entry", "entry", hook.Entry)

	if hook.Language == "" {
		result.AddError(path+".language", "language is required")
	} else if !config.IsLanguage(hook.Language) {
		result.AddError(path+".language", "unknown language '%s'", hook.Language)
	}

	for _, stage := range hook.Stages {
		if normalized, _ := config.NormalizeStage(stage); !config.IsStage(normalized) {
			result.AddError(path+".stages", "unknown stage '%s'", stage)
		}
	}

	checkRegex(result, path+".files", hook.Files)
	checkRegex(result, path+".exclude", hook.Exclude)

	checkTypeTags(result, path+".types", hook.Types)
	checkTypeTags(result, path+".types_or", hook.TypesOr)
	checkTypeTags(result, path+".exclude_types", hook.ExcludeTypes)

	if hook.MinimumPreCommitVersion != "" && !versionRegex.MatchString(hook.MinimumPreCommitVersion) {
		result.AddError(path+".minimum_pre_commit_version",
			"'%s' is not a valid version", hook.MinimumPreCommitVersion)
	}
}

func requireString(result *config.Result, path, field, value string) {
	if value == "" {
		result.AddError(path, "%s is required", field)
	}
}

func checkRegex(result *config.Result, path, pattern string) {
	if pattern == "" {
		return
	}
	if _, err := regexp.Compile(pattern); err != nil {
		result.AddError(path, "invalid regular expression: %v", err)
	}
}

func checkTypeTags(result *config.Result, path string, tags []string) {
	for _, tag := range tags {
		if tag == "" {
			result.AddError(path, "file type tags must be non-empty strings")
			return
		}
	}
}

// foldResult converts a non-empty error list into a single structured
// manifest validation error.
func foldResult(result *config.Result) error {
	if result.Valid() {
		return nil
	}

	messages := make([]string, len(result.Errors))
	for i, issue := range result.Errors {
		messages[i] = issue.String()
	}

	err := errors.New(errors.ErrCodeManifestValidation,
		fmt.Sprintf("hook manifest has %d validation error(s)", len(result.Errors))).
		WithDetail("errors", messages)

	if len(result.Warnings) > 0 {
		warnings := make([]string, len(result.Warnings))
		for i, issue := range result.Warnings {
			warnings[i] = issue.String()
		}
		err = err.WithDetail("warnings", warnings)
	}

	return err
}
