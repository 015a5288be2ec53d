package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lucasnoah/typegate/internal/checkerconf"
	"github.com/lucasnoah/typegate/internal/checks"
	"github.com/lucasnoah/typegate/internal/collect"
	"github.com/lucasnoah/typegate/internal/config"
	"github.com/lucasnoah/typegate/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newCommandRunner is swapped out in tests.
var newCommandRunner = func() checks.CommandRunner { return &checks.ExecRunner{} }

var runCmd = &cobra.Command{
	Use:   "run [paths...]",
	Short: "Type check collected files and report one result per file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyRunFlags(cmd, cfg)
		if err := validateConfig(cfg); err != nil {
			return err
		}

		if !checkingEnabled(cfg) {
			fmt.Fprintln(cmd.OutOrStdout(),
				"Type checking is not enabled; pass --mypy, --mypy-files or --mypy-ignore-missing-imports.")
			return nil
		}

		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		started := time.Now()
		session, err := newSession(cfg, dir, args)
		if err != nil {
			return err
		}

		var warnings []checks.Warning
		if cfg.Checker.FilesFromConfig && len(session.Items()) > 0 {
			warnings = checkerConfigWarnings(cfg, dir)
		}

		// Progress goes to stderr when stdout carries JSON.
		progressOut := cmd.OutOrStdout()
		if cfg.Report.Format == "json" {
			progressOut = cmd.ErrOrStderr()
		}
		terminal := report.NewTerminal(progressOut, useColor(progressOut))

		if err := session.Run(cmd.Context(), terminal); err != nil {
			return err
		}
		sum := session.Summarize(session.Outcomes(), warnings)

		if cfg.Report.Format == "json" {
			out, err := sum.JSON()
			if err != nil {
				return fmt.Errorf("encode summary: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		} else {
			terminal.Summary(sum, time.Since(started))
		}

		if cfg.Report.Output != "" {
			if err := report.WriteSummary(cfg.Report.Output, sum); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
		}

		if !sum.Passed {
			cmd.SilenceUsage = true
			return fmt.Errorf("%d of %d checks failed", sum.Failed, len(sum.Items))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("mypy", false, "run mypy on collected files")
	runCmd.Flags().Bool("mypy-files", false,
		"do not pass collected files to mypy; use the files configured in mypy's own config")
	runCmd.Flags().Bool("mypy-ignore-missing-imports", false,
		"suppress error messages about imports that cannot be resolved")
	runCmd.Flags().String("format", "", "output format: text or json (default from config)")
	runCmd.Flags().String("output", "", "also write the JSON report to this file")
}

// applyRunFlags lets command-line flags override the loaded config.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetBool("mypy"); v {
		cfg.Checker.Enabled = true
	}
	if v, _ := cmd.Flags().GetBool("mypy-files"); v {
		cfg.Checker.FilesFromConfig = true
	}
	if v, _ := cmd.Flags().GetBool("mypy-ignore-missing-imports"); v {
		cfg.Checker.IgnoreMissingImports = true
	}
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		cfg.Report.Format = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Report.Output = v
	}
}

// checkingEnabled reports whether any of the enabling switches is on.
func checkingEnabled(cfg *config.Config) bool {
	c := cfg.Checker
	return c.Enabled || c.FilesFromConfig || c.IgnoreMissingImports
}

func validateConfig(cfg *config.Config) error {
	errs := config.Validate(cfg)
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// newSession collects files under dir and wraps them in a checker session.
func newSession(cfg *config.Config, dir string, paths []string) (*checks.Session, error) {
	files, err := collect.Files(dir, paths, collect.Options{
		Extensions: cfg.Collect.Extensions,
		Exclude:    append(append([]string{}, config.DefaultExclude...), cfg.Collect.Exclude...),
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("collected files", zap.Int("count", len(files)), zap.Strings("paths", paths))

	runner := checks.NewRunner(newCommandRunner(), logger)
	return runner.NewSession(checks.SessionOpts{
		Preset:               cfg.Checker.Preset,
		Command:              strings.Fields(cfg.Checker.Command),
		Args:                 cfg.Checker.Args,
		IgnoreMissingImports: cfg.Checker.IgnoreMissingImports,
		FilesFromConfig:      cfg.Checker.FilesFromConfig,
		Dir:                  dir,
	}, files)
}

// checkerConfigWarnings inspects the checker's own configuration, which owns
// file selection when collected files are not passed along.
func checkerConfigWarnings(cfg *config.Config, dir string) []checks.Warning {
	if cfg.Checker.Preset != "mypy" {
		return nil
	}
	conf, ok, err := checkerconf.Discover(dir)
	if err != nil {
		logger.Warn("reading mypy configuration", zap.Error(err))
		return []checks.Warning{{Message: fmt.Sprintf("could not read mypy configuration: %v", err)}}
	}
	if !ok {
		return []checks.Warning{{
			Message: "--mypy-files was given but no mypy configuration was found; mypy may have nothing to check.",
		}}
	}
	logger.Info("using mypy configuration", zap.String("path", conf.Path), zap.Strings("files", conf.Files))
	if len(conf.Files) == 0 {
		return []checks.Warning{{
			Message: fmt.Sprintf("--mypy-files was given but %s does not set files; mypy may have nothing to check.", conf.Path),
		}}
	}
	return nil
}
