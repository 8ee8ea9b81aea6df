package config

//go:generate go run ../tools/schema-generator/

// Config represents a .pre-commit-config.yaml file.
type Config struct {
	Repos []Repo `yaml:"repos" jsonschema:"required,description=Repositories providing hooks"`

	DefaultInstallHookTypes []string          `yaml:"default_install_hook_types,omitempty" jsonschema:"description=Hook types installed by default (default: [pre-commit])"`
	DefaultLanguageVersion  map[string]string `yaml:"default_language_version,omitempty" jsonschema:"description=Language version to use per language when a hook does not pin one"`
	DefaultStages           []string          `yaml:"default_stages,omitempty" jsonschema:"description=Stages hooks run in when a hook does not set its own (default: all stages)"`

	Files   string `yaml:"files,omitempty" jsonschema:"description=Global file include pattern (Python regular expression)"`
	Exclude string `yaml:"exclude,omitempty" jsonschema:"description=Global file exclude pattern (Python regular expression)"`

	FailFast                bool   `yaml:"fail_fast,omitempty" jsonschema:"description=Stop running hooks after the first failure"`
	MinimumPreCommitVersion string `yaml:"minimum_pre_commit_version,omitempty" jsonschema:"description=Minimum runner version required by this configuration"`

	// CI carries the pre-commit.ci service settings. The block is owned by
	// that service and passed through unvalidated; UnmarshalCI decodes it
	// into a typed struct on demand.
	CI map[string]interface{} `yaml:"ci,omitempty" jsonschema:"description=Settings for the pre-commit.ci service (passed through)"`
}

// Repo is one entry in the repos list. The repo field selects between a
// remote clone URL and the local and meta sentinels.
type Repo struct {
	Repo string `yaml:"repo" jsonschema:"required,description=Clone URL of the hook repository, or 'local' or 'meta'"`
	Rev  string `yaml:"rev,omitempty" jsonschema:"description=Revision to clone (required for remote repositories)"`
	Sha  string `yaml:"sha,omitempty" jsonschema:"description=Deprecated spelling of rev,deprecated=true"`

	Hooks []Hook `yaml:"hooks" jsonschema:"required,description=Hooks to use from this repository"`
}

// RepoKind classifies a repos entry.
type RepoKind string

const (
	RepoKindRemote RepoKind = "remote"
	RepoKindLocal  RepoKind = "local"
	RepoKindMeta   RepoKind = "meta"
)

// Kind classifies the repository by its repo field.
func (r *Repo) Kind() RepoKind {
	switch r.Repo {
	case LocalRepo:
		return RepoKindLocal
	case MetaRepo:
		return RepoKindMeta
	default:
		return RepoKindRemote
	}
}

// IsLocal reports whether this is a local repository.
func (r *Repo) IsLocal() bool { return r.Repo == LocalRepo }

// IsMeta reports whether this is the built-in meta repository.
func (r *Repo) IsMeta() bool { return r.Repo == MetaRepo }

// Hook configures a single hook. For remote repositories every field except
// id overrides the hook's manifest definition; for local repositories the
// hook is defined entirely here, so entry and language are required.
type Hook struct {
	ID    string `yaml:"id" jsonschema:"required,description=Identifier of the hook"`
	Alias string `yaml:"alias,omitempty" jsonschema:"description=Additional identifier for running the hook by name"`
	Name  string `yaml:"name,omitempty" jsonschema:"description=Display name (defaults to the id)"`

	Entry    string `yaml:"entry,omitempty" jsonschema:"description=Executable the hook runs"`
	Language string `yaml:"language,omitempty" jsonschema:"description=Language the hook is written in"`

	Files        string   `yaml:"files,omitempty" jsonschema:"description=File include pattern (Python regular expression)"`
	Exclude      string   `yaml:"exclude,omitempty" jsonschema:"description=File exclude pattern (Python regular expression)"`
	Types        []string `yaml:"types,omitempty" jsonschema:"description=File type tags that must all match"`
	TypesOr      []string `yaml:"types_or,omitempty" jsonschema:"description=File type tags of which at least one must match"`
	ExcludeTypes []string `yaml:"exclude_types,omitempty" jsonschema:"description=File type tags that must not match"`

	Args   []string `yaml:"args,omitempty" jsonschema:"description=Extra arguments passed to the hook entry"`
	Stages []string `yaml:"stages,omitempty" jsonschema:"description=Stages the hook runs in (defaults to default_stages)"`

	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty" jsonschema:"description=Extra packages installed into the hook environment"`

	AlwaysRun bool   `yaml:"always_run,omitempty" jsonschema:"description=Run even when no files match"`
	Verbose   bool   `yaml:"verbose,omitempty" jsonschema:"description=Print hook output even on success"`
	LogFile   string `yaml:"log_file,omitempty" jsonschema:"description=File the hook output is appended to"`

	LanguageVersion string `yaml:"language_version,omitempty" jsonschema:"description=Language version the hook environment uses"`

	// PassFilenames defaults to true; a pointer distinguishes an explicit
	// false from the field being omitted.
	PassFilenames *bool `yaml:"pass_filenames,omitempty" jsonschema:"description=Pass matched file names to the hook entry (default: true)"`

	FailFast      bool `yaml:"fail_fast,omitempty" jsonschema:"description=Stop running remaining hooks after this hook fails"`
	RequireSerial bool `yaml:"require_serial,omitempty" jsonschema:"description=Run without parallelism"`

	Description             string `yaml:"description,omitempty" jsonschema:"description=Human-readable description of the hook"`
	MinimumPreCommitVersion string `yaml:"minimum_pre_commit_version,omitempty" jsonschema:"description=Minimum runner version required by this hook"`
}

// RunName is the identifier the hook answers to on the command line: the
// alias when one is set, otherwise the id.
func (h *Hook) RunName() string {
	if h.Alias != "" {
		return h.Alias
	}
	return h.ID
}

// ShouldPassFilenames resolves the pass_filenames default.
func (h *Hook) ShouldPassFilenames() bool {
	if h.PassFilenames == nil {
		return true
	}
	return *h.PassFilenames
}
