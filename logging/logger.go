package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/hooktools/core/pkg/paths"
	"github.com/hooktools/core/settings"
	"github.com/hooktools/core/util/pathutil"
)

// Loggers are cached per component so every subsystem shares one
// configured instance.
var (
	mu      sync.Mutex
	loggers = map[string]*logrus.Entry{}
)

// NewLogger returns the logger for a component, configuring it on first
// use. Configuration comes from the `logging` section of the settings
// file; HOOKCFG_LOG_LEVEL and HOOKCFG_LOG_CALLER take priority over it.
func NewLogger(component string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()
	if entry, ok := loggers[component]; ok {
		return entry
	}

	cfg := loadConfig()
	lg := logrus.New()
	lg.SetLevel(cfg.level())
	lg.SetReportCaller(cfg.reportCaller())
	lg.SetFormatter(cfg.Format.formatter())
	lg.SetOutput(buildOutput(cfg, component, lg))

	entry := lg.WithField("component", component)
	loggers[component] = entry
	return entry
}

// loadConfig reads the logging section of the settings file. A missing
// file or malformed section falls back to the zero Config.
func loadConfig() Config {
	var cfg Config
	st, err := settings.LoadDefault()
	if err != nil || st == nil {
		return cfg
	}
	if err := st.UnmarshalExtension("logging", &cfg); err != nil {
		logrus.Warnf("ignoring malformed logging settings: %v", err)
	}
	return cfg
}

func (c Config) level() logrus.Level {
	name := c.Level
	if env := os.Getenv("HOOKCFG_LOG_LEVEL"); env != "" {
		name = env
	}
	if level, err := logrus.ParseLevel(name); err == nil {
		return level
	}
	return logrus.InfoLevel
}

func (c Config) reportCaller() bool {
	return c.ReportCaller || os.Getenv("HOOKCFG_LOG_CALLER") == "true"
}

func (f FormatConfig) formatter() logrus.Formatter {
	switch f.Preset {
	case "json":
		return &logrus.JSONFormatter{}
	case "simple":
		return &TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}}
	}
	return &TextFormatter{Config: f}
}

// buildOutput assembles the sinks for a component: the log file plus,
// depending on the structured_to_stderr mode, stderr. Without any sink
// the logger stays silent rather than spilling into interactive output.
func buildOutput(cfg Config, component string, lg *logrus.Logger) io.Writer {
	var sinks []io.Writer
	if w := fileSink(cfg, component, lg); w != nil {
		sinks = append(sinks, w)
	}
	if stderrEnabled(cfg.Format.StructuredToStderr, lg.GetLevel()) {
		sinks = append(sinks, os.Stderr)
	}
	switch len(sinks) {
	case 0:
		return io.Discard
	case 1:
		return sinks[0]
	}
	return io.MultiWriter(sinks...)
}

// fileSink opens the configured log file, or the default
// <state>/logs/<component>-<date>.log when no file sink is configured.
// Failures only warn when the user asked for the file explicitly.
func fileSink(cfg Config, component string, lg *logrus.Logger) io.Writer {
	var path string
	if cfg.File.Enabled && cfg.File.Path != "" {
		path = cfg.File.Path
		if expanded, err := pathutil.Expand(path); err == nil {
			path = expanded
		}
	} else if dir := paths.LogsDir(); dir != "" {
		name := fmt.Sprintf("%s-%s.log", component, time.Now().Format("2006-01-02"))
		path = filepath.Join(dir, name)
	}
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		if cfg.File.Enabled {
			lg.Warnf("create log directory: %v", err)
		}
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		if cfg.File.Enabled {
			lg.Warnf("open log file: %v", err)
		}
		return nil
	}
	return file
}

// stderrEnabled decides whether structured logs also go to stderr. The
// default "auto" mode shows them while debugging or when stderr is not
// a terminal (piped output, CI) and stays quiet during interactive use.
func stderrEnabled(mode string, level logrus.Level) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	debug := os.Getenv("HOOKCFG_DEBUG") == "1" || level == logrus.DebugLevel
	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return debug || !tty
}
