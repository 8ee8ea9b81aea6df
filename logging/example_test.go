package logging_test

import (
	"github.com/hooktools/core/logging"
	"github.com/sirupsen/logrus"
)

func ExampleNewLogger() {
	log := logging.NewLogger("my-component")

	log.Debug("Debug information")
	log.Info("Starting process")
	log.Warn("Resource usage high")
	log.Error("Connection failed")

	// Structured fields end up as key=value pairs (or JSON keys).
	log.WithFields(logrus.Fields{
		"config": ".pre-commit-config.yaml",
		"hooks":  7,
	}).Info("Configuration validated")

	log.WithField("file", "/path/to/file.txt").Info("Processing file")
}

func ExampleNewLogger_configuration() {
	// The logging block of the hookcfg settings file controls every
	// logger in the process:
	//
	// logging:
	//   level: debug
	//   report_caller: true       # adds file:line to each entry
	//   file:
	//     enabled: true
	//     path: /var/log/hookcfg/app.log
	//   format:
	//     preset: json
	//
	// HOOKCFG_LOG_LEVEL and HOOKCFG_LOG_CALLER override the file.

	log := logging.NewLogger("configured-app")
	log.Info("This will respect the configuration")
}

func ExampleNewLogger_multipleComponents() {
	// One logger per subsystem, all sharing the same configuration.
	// The component name becomes a tag on every entry.
	validatorLog := logging.NewLogger("validator")
	daemonLog := logging.NewLogger("hookcfgd")
	watcherLog := logging.NewLogger("watcher")

	validatorLog.Info("Validated 3 configuration files")
	daemonLog.Info("Listening on unix socket")
	watcherLog.Warn("Debounce window extended")

	// [INFO] [validator] Validated 3 configuration files
	// [INFO] [hookcfgd] Listening on unix socket
	// [WARN] [watcher] Debounce window extended
}
