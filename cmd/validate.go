package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hooktools/core/cli"
	"github.com/hooktools/core/config"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/manifest"
	"github.com/hooktools/core/pkg/discover"
	"github.com/hooktools/core/settings"
	"github.com/hooktools/core/tui/theme"
	"github.com/hooktools/core/util/pathutil"
)

// fileReport is the result of validating one file, shaped for --json output.
type fileReport struct {
	Path     string   `json:"path"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewValidateCmd creates the `validate` command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate pre-commit configuration files",
		Long: `Validate one or more .pre-commit-config.yaml files against the published
schema and the semantic rules the schema cannot express (stage names,
language names, regular expressions, mutable revs).

With no arguments the configuration is looked up from the current
directory upward. Use --all to validate every configuration discovered
under the configured roots.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, discover.KindConfig)
		},
	}

	cmd.Flags().Bool("all", false, "Validate every configuration file under the configured roots")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress per-file output; the exit status carries the result")
	return cmd
}

// NewValidateHooksCmd creates the `validate-hooks` command.
func NewValidateHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-hooks [file...]",
		Short: "Validate pre-commit hook manifests",
		Long: `Validate one or more .pre-commit-hooks.yaml manifests, the files hook
repositories publish to describe the hooks they provide.

With no arguments the manifest is looked up from the current directory
upward. Use --all to validate every manifest discovered under the
configured roots.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, discover.KindManifest)
		},
	}

	cmd.Flags().Bool("all", false, "Validate every manifest under the configured roots")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress per-file output; the exit status carries the result")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string, kind discover.FileKind) error {
	opts := cli.GetOptions(cmd)
	all, _ := cmd.Flags().GetBool("all")
	quiet, _ := cmd.Flags().GetBool("quiet")

	targets, err := resolveTargets(cmd, args, kind, all)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		if !quiet && !opts.JSONOutput {
			fmt.Printf("No %s files found.\n", kind)
		}
		return nil
	}

	check := checkConfigFile
	if kind == discover.KindManifest {
		check = checkManifestFile
	}

	// Single explicit target: let hard failures (missing file, legacy
	// layout) surface as structured errors so the handler can suggest
	// the right follow-up command.
	if len(targets) == 1 && !all {
		report, err := check(targets[0])
		if err != nil {
			return err
		}
		if !quiet {
			printReport(report, opts.JSONOutput)
		}
		if !report.Valid {
			return invalidError(kind)
		}
		return nil
	}

	useProgress := all && !quiet && !opts.JSONOutput && isatty.IsTerminal(os.Stdout.Fd())
	var reporter *cli.ProgressReporter
	if useProgress {
		reporter = cli.NewProgressReporter()
	}

	reports := make([]fileReport, 0, len(targets))
	for _, path := range targets {
		if reporter != nil {
			reporter.Update(path, "checking")
		}
		report, err := check(path)
		if err != nil {
			report = fileReport{Path: path, Errors: []string{errorMessage(err)}}
		}
		reports = append(reports, report)
		if reporter != nil {
			status := "valid"
			if !report.Valid {
				status = "invalid"
			}
			reporter.Update(path, status)
		}
	}
	if reporter != nil {
		reporter.Done()
	}

	invalid := 0
	for _, report := range reports {
		if !report.Valid {
			invalid++
		}
	}

	switch {
	case opts.JSONOutput:
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode reports")
		}
		fmt.Println(string(data))
	case quiet:
		// Exit status only.
	case reporter != nil:
		// The progress view already listed every file; repeat only the
		// findings for the ones that failed.
		for _, report := range reports {
			if !report.Valid {
				fmt.Println()
				printReport(report, false)
			}
		}
	default:
		for _, report := range reports {
			printReport(report, false)
		}
		fmt.Printf("\n%d of %d files valid\n", len(reports)-invalid, len(reports))
	}

	if invalid > 0 {
		return invalidError(kind)
	}
	return nil
}

// resolveTargets works out which files to validate from the arguments,
// the --all flag, and the file lookup rules.
func resolveTargets(cmd *cobra.Command, args []string, kind discover.FileKind, all bool) ([]string, error) {
	if all {
		if len(args) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--all does not take file arguments")
		}

		s, err := settings.LoadDefault()
		if err != nil {
			s = settings.Default()
		}
		roots := s.Watch.Roots
		if len(roots) == 0 {
			roots = []string{"."}
		}

		service, err := discover.NewService(cli.GetLogger(cmd), s.Ignore)
		if err != nil {
			return nil, err
		}
		findings, err := service.Discover(roots)
		if err != nil {
			return nil, err
		}

		var targets []string
		for _, finding := range findings {
			if finding.Kind == kind {
				targets = append(targets, finding.Path)
			}
		}
		return targets, nil
	}

	if len(args) > 0 {
		return dedupeTargets(args), nil
	}

	if kind == discover.KindConfig {
		if opts := cli.GetOptions(cmd); opts.ConfigFile != "" {
			return []string{opts.ConfigFile}, nil
		}
		path, err := config.FindConfigFile(".")
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	path, err := manifest.FindManifestFile(".")
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// dedupeTargets drops arguments naming a file already in the list under
// another spelling (relative vs absolute, via a symlink, or differently
// cased on case-insensitive filesystems). The first spelling wins.
func dedupeTargets(args []string) []string {
	seen := make(map[string]struct{}, len(args))
	targets := make([]string, 0, len(args))
	for _, arg := range args {
		key, err := pathutil.NormalizeForLookup(arg)
		if err != nil {
			key = arg
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		targets = append(targets, arg)
	}
	return targets
}

func checkConfigFile(path string) (fileReport, error) {
	_, result, err := config.Check(path)
	if err != nil {
		return fileReport{Path: path}, err
	}
	return fileReport{
		Path:     path,
		Valid:    result.Valid(),
		Errors:   issueMessages(result.Errors),
		Warnings: issueMessages(result.Warnings),
	}, nil
}

func checkManifestFile(path string) (fileReport, error) {
	_, result, err := manifest.Check(path)
	if err != nil {
		return fileReport{Path: path}, err
	}
	return fileReport{
		Path:     path,
		Valid:    result.Valid(),
		Errors:   issueMessages(result.Errors),
		Warnings: issueMessages(result.Warnings),
	}, nil
}

func printReport(report fileReport, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(data))
		return
	}

	t := theme.DefaultTheme
	if report.Valid {
		fmt.Printf("%s %s is valid\n", t.Success.Render("✓"), report.Path)
	} else {
		fmt.Printf("%s %s\n", t.Error.Render("✗"), report.Path)
		for _, msg := range report.Errors {
			fmt.Printf("  %s\n", msg)
		}
	}
	for _, msg := range report.Warnings {
		fmt.Printf("  %s %s\n", t.Warning.Render("warning:"), msg)
	}
}

func issueMessages(issues []config.Issue) []string {
	if len(issues) == 0 {
		return nil
	}
	messages := make([]string, len(issues))
	for i, issue := range issues {
		messages[i] = issue.String()
	}
	return messages
}

func invalidError(kind discover.FileKind) error {
	if kind == discover.KindManifest {
		return errors.New(errors.ErrCodeManifestValidation, "one or more manifests failed validation")
	}
	return errors.New(errors.ErrCodeConfigValidation, "one or more files failed validation")
}

// errorMessage extracts the human part of an error, dropping the machine
// code prefix structured errors carry.
func errorMessage(err error) string {
	if hookErr, ok := err.(*errors.HookError); ok {
		msg := hookErr.Message
		if hookErr.Cause != nil {
			msg += ": " + hookErr.Cause.Error()
		}
		return msg
	}
	return err.Error()
}
