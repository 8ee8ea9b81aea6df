package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDecodeFullConfig(t *testing.T) {
	content := `
default_install_hook_types: [pre-commit, commit-msg]
default_language_version:
  python: python3.12
default_stages: [pre-commit]
files: ^src/
exclude: ^vendor/
fail_fast: true
minimum_pre_commit_version: "3.2.0"
repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.6.0
    hooks:
      - id: trailing-whitespace
        alias: whitespace
        args: [--markdown-linebreak-ext=md]
        stages: [pre-commit, pre-push]
  - repo: local
    hooks:
      - id: lint
        name: run linter
        entry: make lint
        language: system
        types_or: [go, proto]
        exclude_types: [markdown]
        additional_dependencies: [toolchain@1]
        always_run: true
        verbose: true
        log_file: lint.log
        pass_filenames: false
        require_serial: true
        description: Runs the repo linter
ci:
  autoupdate_schedule: weekly
  skip: [lint]
`
	var cfg Config
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		t.Fatal(err)
	}

	if !cfg.FailFast {
		t.Error("Expected fail_fast true")
	}
	if cfg.MinimumPreCommitVersion != "3.2.0" {
		t.Errorf("Expected minimum version 3.2.0, got %s", cfg.MinimumPreCommitVersion)
	}
	if cfg.DefaultLanguageVersion["python"] != "python3.12" {
		t.Errorf("Expected python default version, got %v", cfg.DefaultLanguageVersion)
	}

	remote := cfg.Repos[0]
	if remote.Kind() != RepoKindRemote || remote.Rev != "v4.6.0" {
		t.Errorf("Expected remote repo with rev, got %s / %s", remote.Kind(), remote.Rev)
	}
	hook := remote.Hooks[0]
	if hook.Alias != "whitespace" || hook.RunName() != "whitespace" {
		t.Errorf("Expected alias to drive RunName, got '%s'", hook.RunName())
	}
	if len(hook.Args) != 1 || hook.Args[0] != "--markdown-linebreak-ext=md" {
		t.Errorf("Expected args decoded, got %v", hook.Args)
	}

	local := cfg.Repos[1].Hooks[0]
	if local.RunName() != "lint" {
		t.Errorf("Expected id to drive RunName without alias, got '%s'", local.RunName())
	}
	if local.ShouldPassFilenames() {
		t.Error("Expected pass_filenames false")
	}
	if !local.AlwaysRun || !local.Verbose || !local.RequireSerial {
		t.Error("Expected boolean hook flags decoded")
	}
	if len(local.TypesOr) != 2 || local.ExcludeTypes[0] != "markdown" {
		t.Errorf("Expected type tag lists decoded, got %v / %v", local.TypesOr, local.ExcludeTypes)
	}

	if cfg.CI["autoupdate_schedule"] != "weekly" {
		t.Errorf("Expected ci block passed through, got %v", cfg.CI)
	}
}

func TestPassFilenamesDefault(t *testing.T) {
	var unset Hook
	if !unset.ShouldPassFilenames() {
		t.Error("Expected pass_filenames to default to true")
	}

	explicit := true
	set := Hook{PassFilenames: &explicit}
	if !set.ShouldPassFilenames() {
		t.Error("Expected explicit true to be honored")
	}
}

func TestRepoKinds(t *testing.T) {
	tests := []struct {
		repo string
		kind RepoKind
	}{
		{"https://github.com/psf/black", RepoKindRemote},
		{"git@github.com:psf/black", RepoKindRemote},
		{"local", RepoKindLocal},
		{"meta", RepoKindMeta},
	}

	for _, tt := range tests {
		r := Repo{Repo: tt.repo}
		if r.Kind() != tt.kind {
			t.Errorf("Repo %q: expected kind %s, got %s", tt.repo, tt.kind, r.Kind())
		}
	}
}
