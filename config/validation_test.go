package config

import (
	"strings"
	"testing"
)

func TestValidateSemanticRules(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		errorMsg string
	}{
		{
			name:     "empty repos",
			config:   &Config{},
			errorMsg: "at least one repository",
		},
		{
			name: "remote repo missing rev",
			config: &Config{
				Repos: []Repo{
					{Repo: "https://github.com/psf/black", Hooks: []Hook{{ID: "black"}}},
				},
			},
			errorMsg: "rev is required",
		},
		{
			name: "rev on local repo",
			config: &Config{
				Repos: []Repo{
					{Repo: "local", Rev: "v1.0.0", Hooks: []Hook{{ID: "fmt", Entry: "gofmt", Language: "system"}}},
				},
			},
			errorMsg: "rev must not be set",
		},
		{
			name: "legacy sha key",
			config: &Config{
				Repos: []Repo{
					{Repo: "https://github.com/psf/black", Sha: "abc123f", Hooks: []Hook{{ID: "black"}}},
				},
			},
			errorMsg: "renamed to 'rev'",
		},
		{
			name: "unknown meta hook",
			config: &Config{
				Repos: []Repo{
					{Repo: "meta", Hooks: []Hook{{ID: "does-not-exist"}}},
				},
			},
			errorMsg: "unknown meta hook",
		},
		{
			name: "local hook missing entry",
			config: &Config{
				Repos: []Repo{
					{Repo: "local", Hooks: []Hook{{ID: "fmt", Language: "system"}}},
				},
			},
			errorMsg: "entry is required",
		},
		{
			name: "local hook missing language",
			config: &Config{
				Repos: []Repo{
					{Repo: "local", Hooks: []Hook{{ID: "fmt", Entry: "gofmt"}}},
				},
			},
			errorMsg: "language is required",
		},
		{
			name: "unknown language",
			config: &Config{
				Repos: []Repo{
					{Repo: "local", Hooks: []Hook{{ID: "fmt", Entry: "x", Language: "cobol"}}},
				},
			},
			errorMsg: "unknown language 'cobol'",
		},
		{
			name: "unknown stage",
			config: &Config{
				Repos: []Repo{
					{Repo: "local", Hooks: []Hook{{ID: "fmt", Entry: "x", Language: "system", Stages: []string{"sideways"}}}},
				},
			},
			errorMsg: "unknown stage 'sideways'",
		},
		{
			name: "bad hook files regex",
			config: &Config{
				Repos: []Repo{
					{Repo: "local", Hooks: []Hook{{ID: "fmt", Entry: "x", Language: "system", Files: "("}}},
				},
			},
			errorMsg: "invalid regular expression",
		},
		{
			name: "bad top-level exclude regex",
			config: &Config{
				Exclude: "[",
				Repos: []Repo{
					{Repo: "local", Hooks: []Hook{{ID: "fmt", Entry: "x", Language: "system"}}},
				},
			},
			errorMsg: "invalid regular expression",
		},
		{
			name: "empty type tag",
			config: &Config{
				Repos: []Repo{
					{Repo: "local", Hooks: []Hook{{ID: "fmt", Entry: "x", Language: "system", Types: []string{"go", ""}}}},
				},
			},
			errorMsg: "non-empty strings",
		},
		{
			name: "unknown default install hook type",
			config: &Config{
				DefaultInstallHookTypes: []string{"pre-lunch"},
				Repos: []Repo{
					{Repo: "local", Hooks: []Hook{{ID: "fmt", Entry: "x", Language: "system"}}},
				},
			},
			errorMsg: "unknown hook type 'pre-lunch'",
		},
		{
			name: "unknown default language version language",
			config: &Config{
				DefaultLanguageVersion: map[string]string{"klingon": "1.0"},
				Repos: []Repo{
					{Repo: "local", Hooks: []Hook{{ID: "fmt", Entry: "x", Language: "system"}}},
				},
			},
			errorMsg: "unknown language 'klingon'",
		},
		{
			name: "malformed minimum version",
			config: &Config{
				MinimumPreCommitVersion: "latest",
				Repos: []Repo{
					{Repo: "local", Hooks: []Hook{{ID: "fmt", Entry: "x", Language: "system"}}},
				},
			},
			errorMsg: "not a valid version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.Validate()
			if result.Valid() {
				t.Fatal("expected validation errors but got none")
			}
			joined := make([]string, len(result.Errors))
			for i, issue := range result.Errors {
				joined[i] = issue.String()
			}
			all := strings.Join(joined, "\n")
			if !strings.Contains(all, tt.errorMsg) {
				t.Errorf("expected error containing '%s', got:\n%s", tt.errorMsg, all)
			}
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		warnMsg string
	}{
		{
			name: "mutable rev",
			config: &Config{
				Repos: []Repo{
					{Repo: "https://github.com/psf/black", Rev: "main", Hooks: []Hook{{ID: "black"}}},
				},
			},
			warnMsg: "mutable reference",
		},
		{
			name: "empty hooks list",
			config: &Config{
				Repos: []Repo{
					{Repo: "https://github.com/psf/black", Rev: "24.3.0"},
				},
			},
			warnMsg: "lists no hooks",
		},
		{
			name: "duplicate hook entries",
			config: &Config{
				Repos: []Repo{
					{Repo: "local", Hooks: []Hook{
						{ID: "fmt", Entry: "x", Language: "system"},
						{ID: "fmt", Entry: "x", Language: "system"},
					}},
				},
			},
			warnMsg: "listed multiple times",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.Validate()
			if !result.Valid() {
				t.Fatalf("expected only warnings, got errors: %v", result.Errors)
			}
			joined := make([]string, len(result.Warnings))
			for i, issue := range result.Warnings {
				joined[i] = issue.String()
			}
			all := strings.Join(joined, "\n")
			if !strings.Contains(all, tt.warnMsg) {
				t.Errorf("expected warning containing '%s', got:\n%s", tt.warnMsg, all)
			}
		})
	}
}

func TestValidateAcceptsPinnedRevs(t *testing.T) {
	revs := []string{"v4.6.0", "24.3.0", "a1b2c3d4e5f6", "1.0"}
	for _, rev := range revs {
		cfg := &Config{
			Repos: []Repo{
				{Repo: "https://github.com/psf/black", Rev: rev, Hooks: []Hook{{ID: "black"}}},
			},
		}
		result := cfg.Validate()
		if !result.Valid() {
			t.Errorf("rev %q: expected valid, got %v", rev, result.Errors)
		}
		if len(result.Warnings) != 0 {
			t.Errorf("rev %q: expected no warnings, got %v", rev, result.Warnings)
		}
	}
}

func TestValidateDuplicateWithDistinctAliases(t *testing.T) {
	// The same hook id with different aliases is a legitimate pattern for
	// running a hook twice with different arguments.
	cfg := &Config{
		Repos: []Repo{
			{Repo: "local", Hooks: []Hook{
				{ID: "pylint", Alias: "pylint-errors", Entry: "pylint -E", Language: "system"},
				{ID: "pylint", Alias: "pylint-full", Entry: "pylint", Language: "system"},
			}},
		},
	}
	result := cfg.Validate()
	if len(result.Warnings) != 0 {
		t.Errorf("expected no duplicate warning for distinct aliases, got %v", result.Warnings)
	}
}

func TestResultErr(t *testing.T) {
	result := &Result{}
	if result.Err() != nil {
		t.Error("expected nil error for clean result")
	}

	result.AddError("repos[0]", "something is wrong")
	result.AddWarning("repos[1]", "something is odd")

	err := result.Err()
	if err == nil {
		t.Fatal("expected error for result with errors")
	}
	if !strings.Contains(err.Error(), "1 validation error") {
		t.Errorf("expected error count in message, got: %v", err)
	}
}
