package logging

// Config is the `logging` section of the hookcfg settings file.
type Config struct {
	// Level is the minimum level to emit: debug, info, warn or error.
	// HOOKCFG_LOG_LEVEL overrides it.
	Level string `yaml:"level"`

	// ReportCaller adds file, line and function to every entry.
	// HOOKCFG_LOG_CALLER=true enables it per run.
	ReportCaller bool `yaml:"report_caller"`

	File   FileConfig   `yaml:"file"`
	Format FormatConfig `yaml:"format"`
}

// FileConfig configures the log file sink. When disabled, entries still
// land in the default per-component file under the state directory.
type FileConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	// Format is "text" (default) or "json".
	Format string `yaml:"format,omitempty"`
}

// FormatConfig shapes the text output of TextFormatter.
type FormatConfig struct {
	// Preset selects the overall shape: "default" (full text lines),
	// "simple" (no timestamp or component) or "json".
	Preset string `yaml:"preset"`

	DisableTimestamp bool `yaml:"disable_timestamp"`
	DisableComponent bool `yaml:"disable_component"`

	// StructuredToStderr is "auto" (default), "always" or "never".
	StructuredToStderr string `yaml:"structured_to_stderr"`
}
