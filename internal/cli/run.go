package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deb822/internal/logging"
	"github.com/yaklabco/deb822/pkg/config"
	"github.com/yaklabco/deb822/pkg/reporter"
	"github.com/yaklabco/deb822/pkg/runner"
)

// runFlags are shared by commands that process many files.
type runFlags struct {
	format    string
	jobs      int
	patterns  []string
	exclude   []string
	follow    bool
	noContext bool
	compact   bool
	strict    bool
	indent    string
	separator string
	eol       string
}

func formatNames() []string {
	var names []string
	for _, f := range reporter.Formats() {
		names = append(names, f.String())
	}
	return names
}

// addRunFlags registers the multi-file flags. Flags that only make sense for
// commands that write files are added when editing is true.
func addRunFlags(cmd *cobra.Command, cfg *config.Config, flags *runFlags, editing bool) {
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: "+strings.Join(formatNames(), ", "))
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.patterns, "pattern", nil, "file name globs selected when walking directories")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat syntax errors as failures")

	if !editing {
		return
	}
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show changes without writing them")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation")
	cmd.Flags().StringVar(&flags.indent, "indent", "", "indentation of new continuation lines")
	cmd.Flags().StringVar(&flags.separator, "separator", "", "text written after the colon of new fields")
	cmd.Flags().StringVar(&flags.eol, "line-ending", "", "line ending of new lines: auto, lf, crlf")
}

// apply copies flag values into the flag layer of the configuration.
func (f *runFlags) apply(cfg *config.Config) {
	cfg.Strict = f.strict
	cfg.Style.Indent = f.indent
	cfg.Style.Separator = f.separator
	cfg.Style.LineEnding = config.LineEnding(f.eol)
	if f.format == string(config.FormatText) || f.format == string(config.FormatJSON) {
		cfg.Format = config.OutputFormat(f.format)
	}
}

// runPlan describes one multi-file invocation.
type runPlan struct {
	task      runner.Task
	exit      func(cfg *config.Config) ExitOptions
	format    reporter.Format
	showDiffs bool
}

// runFiles loads configuration, runs task over the files named by args and
// reports the result.
func runFiles(cmd *cobra.Command, args []string, flagCfg *config.Config, flags *runFlags, plan runPlan) error {
	logger := logging.FromContext(commandContext(cmd))
	flags.apply(flagCfg)

	cfg, workDir, err := loadConfig(cmd, flagCfg)
	if err != nil {
		return err
	}

	format := plan.format
	if format == "" {
		format, err = reporter.ParseFormat(flags.format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		if !cmd.Flags().Changed("format") && cfg.Format != "" {
			format = reporter.Format(cfg.Format)
		}
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Patterns:       flags.patterns,
		ExcludeGlobs:   flags.exclude,
		FollowSymlinks: flags.follow,
		Jobs:           flags.jobs,
		Config:         cfg,
	}

	logger.Debug("starting run",
		"paths", runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		"jobs", runOpts.Jobs,
	)

	result, err := runner.New(runner.NewPipeline(plan.task)).Run(commandContext(cmd), runOpts)
	if err != nil {
		return errors.Join(errors.New("run failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowContext: !flags.noContext,
		ShowSummary: true,
		ShowDiffs:   plan.showDiffs || cfg.DryRun,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(commandContext(cmd), result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	exitOpts := ExitOptions{FailOnSyntaxErrors: cfg.Strict}
	if plan.exit != nil {
		exitOpts = plan.exit(cfg)
	}
	if ExitCodeFromResult(result, exitOpts) != ExitSuccess {
		return ErrProblemsFound
	}
	return nil
}
