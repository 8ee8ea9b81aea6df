package config

// SampleConfig is the starter configuration `hookcfg sample-config`
// prints. It passes validation as-is and points at the hooks most
// projects start with.
const SampleConfig = `# See https://pre-commit.com for more information
# See https://pre-commit.com/hooks.html for more hooks
repos:
-   repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v5.0.0
    hooks:
    -   id: trailing-whitespace
    -   id: end-of-file-fixer
    -   id: check-yaml
    -   id: check-added-large-files
`
