package config

// ConfigFileNames are the file names recognized as pre-commit configuration,
// in lookup order.
var ConfigFileNames = []string{
	".pre-commit-config.yaml",
	".pre-commit-config.yml",
}

// ManifestFileName is the hook manifest file shipped by hook repositories.
const ManifestFileName = ".pre-commit-hooks.yaml"

// Sentinel repo values. Anything else in a repo field is treated as a
// remote clone URL.
const (
	LocalRepo = "local"
	MetaRepo  = "meta"
)

// Languages lists every language a hook may declare. The runner is
// responsible for knowing how to set each one up; the configuration layer
// only checks membership.
var Languages = []string{
	"conda",
	"coursier",
	"dart",
	"docker",
	"docker_image",
	"dotnet",
	"fail",
	"golang",
	"haskell",
	"julia",
	"lua",
	"node",
	"perl",
	"pygrep",
	"python",
	"r",
	"ruby",
	"rust",
	"script",
	"swift",
	"system",
}

// HookTypes lists the git hook entry points an installation may target.
var HookTypes = []string{
	"commit-msg",
	"post-checkout",
	"post-commit",
	"post-merge",
	"post-rewrite",
	"pre-commit",
	"pre-merge-commit",
	"pre-push",
	"pre-rebase",
	"prepare-commit-msg",
}

// Stages lists the values valid in stages and default_stages. It is the
// hook types plus "manual".
var Stages = append(append([]string{}, HookTypes...), "manual")

// MetaHookIDs lists the hooks provided by the built-in meta repository.
var MetaHookIDs = []string{
	"check-hooks-apply",
	"check-useless-excludes",
	"identity",
}

// legacyStageAliases maps stage names accepted before the hook-type rename
// to their current spelling. They still parse but produce a deprecation
// warning.
var legacyStageAliases = map[string]string{
	"commit":       "pre-commit",
	"merge-commit": "pre-merge-commit",
	"push":         "pre-push",
}

var (
	languageSet   = toSet(Languages)
	hookTypeSet   = toSet(HookTypes)
	stageSet      = toSet(Stages)
	metaHookIDSet = toSet(MetaHookIDs)
)

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// IsLanguage reports whether name is a known hook language.
func IsLanguage(name string) bool {
	return languageSet[name]
}

// IsHookType reports whether name is a known git hook type.
func IsHookType(name string) bool {
	return hookTypeSet[name]
}

// IsStage reports whether name is a valid stage, including "manual".
// Legacy aliases are not stages; NormalizeStage resolves them first.
func IsStage(name string) bool {
	return stageSet[name]
}

// IsMetaHookID reports whether id names a built-in meta hook.
func IsMetaHookID(id string) bool {
	return metaHookIDSet[id]
}

// NormalizeStage resolves a legacy stage alias to its current name.
// The second return is true when the input was a legacy alias.
func NormalizeStage(name string) (string, bool) {
	if current, ok := legacyStageAliases[name]; ok {
		return current, true
	}
	return name, false
}
