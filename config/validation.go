package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hooktools/core/errors"
)

var (
	commitHashRegex = regexp.MustCompile(`^[a-fA-F0-9]+$`)
	versionRegex    = regexp.MustCompile(`^\d+(\.\d+)*$`)
)

// Issue is a single validation finding. Path locates it inside the
// document when known; schema findings carry their location inside the
// message instead.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Result collects everything a validation run found. Errors make the
// configuration invalid; warnings do not.
type Result struct {
	Errors   []Issue
	Warnings []Issue
}

// Valid reports whether the run found no errors.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// AddError records an error finding at the given document path.
func (r *Result) AddError(path, format string, args ...interface{}) {
	r.Errors = append(r.Errors, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// AddWarning records a warning finding at the given document path.
func (r *Result) AddWarning(path, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Err folds the errors into a single structured error, nil when valid.
// Warnings ride along in the details.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}

	messages := make([]string, len(r.Errors))
	for i, issue := range r.Errors {
		messages[i] = issue.String()
	}

	err := errors.New(errors.ErrCodeConfigValidation,
		fmt.Sprintf("configuration has %d validation error(s)", len(r.Errors))).
		WithDetail("errors", messages)

	if len(r.Warnings) > 0 {
		warnings := make([]string, len(r.Warnings))
		for i, issue := range r.Warnings {
			warnings[i] = issue.String()
		}
		err = err.WithDetail("warnings", warnings)
	}

	return err
}

// Validate checks every semantic rule and collects all findings instead of
// stopping at the first. Structural problems (unknown keys, wrong types)
// are the schema layer's job and are assumed to be handled already.
func (c *Config) Validate() *Result {
	result := &Result{}

	if len(c.Repos) == 0 {
		result.AddError("repos", "must list at least one repository")
	}

	checkRegex(result, "files", c.Files)
	checkRegex(result, "exclude", c.Exclude)

	for _, hookType := range c.DefaultInstallHookTypes {
		if !IsHookType(hookType) {
			result.AddError("default_install_hook_types",
				"unknown hook type '%s' (valid: %s)", hookType, strings.Join(HookTypes, ", "))
		}
	}

	for _, stage := range c.DefaultStages {
		if normalized, _ := NormalizeStage(stage); !IsStage(normalized) {
			result.AddError("default_stages",
				"unknown stage '%s' (valid: %s)", stage, strings.Join(Stages, ", "))
		}
	}

	for language := range c.DefaultLanguageVersion {
		if !IsLanguage(language) {
			result.AddError("default_language_version", "unknown language '%s'", language)
		}
	}

	checkVersion(result, "minimum_pre_commit_version", c.MinimumPreCommitVersion)

	for i := range c.Repos {
		validateRepo(result, &c.Repos[i], i)
	}

	return result
}

func validateRepo(result *Result, repo *Repo, index int) {
	path := fmt.Sprintf("repos[%d]", index)

	if repo.Repo == "" {
		result.AddError(path+".repo", "repository is required")
		return
	}

	if repo.Sha != "" {
		result.AddError(path, "uses 'sha', which was renamed to 'rev'; run `hookcfg migrate-config` to update the file")
	}

	switch repo.Kind() {
	case RepoKindRemote:
		if repo.Rev == "" {
			result.AddError(path+".rev", "rev is required for remote repository '%s'", repo.Repo)
		} else if looksMutable(repo.Rev) {
			result.AddWarning(path+".rev",
				"'%s' appears to be a mutable reference (moving tag or branch); pin an immutable rev", repo.Rev)
		}
	case RepoKindLocal, RepoKindMeta:
		if repo.Rev != "" {
			result.AddError(path+".rev", "rev must not be set for %s repositories", repo.Repo)
		}
	}

	if len(repo.Hooks) == 0 {
		result.AddWarning(path+".hooks", "repository '%s' lists no hooks", repo.Repo)
	}

	seen := make(map[string]bool)
	for j := range repo.Hooks {
		hook := &repo.Hooks[j]
		hookPath := fmt.Sprintf("%s.hooks[%d]", path, j)

		validateHook(result, hook, hookPath, repo.Kind())

		key := hook.ID + "\x00" + hook.Alias
		if seen[key] && hook.ID != "" {
			result.AddWarning(hookPath, "hook '%s' is listed multiple times in this repository", hook.ID)
		}
		seen[key] = true
	}
}

func validateHook(result *Result, hook *Hook, path string, kind RepoKind) {
	if hook.ID == "" {
		result.AddError(path+".id", "id is required")
	}

	if kind == RepoKindMeta && hook.ID != "" && !IsMetaHookID(hook.ID) {
		result.AddError(path+".id",
			"unknown meta hook '%s' (valid: %s)", hook.ID, strings.Join(MetaHookIDs, ", "))
	}

	if kind == RepoKindLocal {
		if hook.Entry == "" {
			result.AddError(path+".entry", "entry is required for hooks in a local repository")
		}
		if hook.Language == "" {
			result.AddError(path+".language", "language is required for hooks in a local repository")
		}
	}

	if hook.Language != "" && !IsLanguage(hook.Language) {
		result.AddError(path+".language",
			"unknown language '%s' (valid: %s)", hook.Language, strings.Join(Languages, ", "))
	}

	for _, stage := range hook.Stages {
		if normalized, _ := NormalizeStage(stage); !IsStage(normalized) {
			result.AddError(path+".stages",
				"unknown stage '%s' (valid: %s)", stage, strings.Join(Stages, ", "))
		}
	}

	checkRegex(result, path+".files", hook.Files)
	checkRegex(result, path+".exclude", hook.Exclude)

	checkTypeTags(result, path+".types", hook.Types)
	checkTypeTags(result, path+".types_or", hook.TypesOr)
	checkTypeTags(result, path+".exclude_types", hook.ExcludeTypes)

	checkVersion(result, path+".minimum_pre_commit_version", hook.MinimumPreCommitVersion)
}

func checkRegex(result *Result, path, pattern string) {
	if pattern == "" {
		return
	}
	if _, err := regexp.Compile(pattern); err != nil {
		result.AddError(path, "invalid regular expression: %v", err)
	}
}

func checkTypeTags(result *Result, path string, tags []string) {
	for _, tag := range tags {
		if tag == "" {
			result.AddError(path, "file type tags must be non-empty strings")
			return
		}
	}
}

func checkVersion(result *Result, path, version string) {
	if version == "" {
		return
	}
	if !versionRegex.MatchString(version) {
		result.AddError(path, "'%s' is not a valid version", version)
	}
}

// looksMutable reports whether a rev looks like a branch or moving tag
// rather than a pinned revision. A rev containing a dot (version tags) or
// made of hex digits (commit hashes) is treated as pinned.
func looksMutable(rev string) bool {
	return !strings.Contains(rev, ".") && !commitHashRegex.MatchString(rev)
}
