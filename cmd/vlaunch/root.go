// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the vlaunch CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"vlaunch/internal/config"
	"vlaunch/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables diagnostic logging
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// noPause skips the ENTER acknowledgment on exit (for CI and scripting)
	noPause bool

	// rootCmd represents the base command; plain `vlaunch` runs the launch sequence.
	rootCmd = &cobra.Command{
		Use:   "vlaunch",
		Short: "A fail-fast launcher for virtualenv-backed Python applications",
		Long: TitleStyle.Render("vlaunch") + SubtitleStyle.Render(" - a fail-fast launcher for virtualenv-backed Python applications") + `

vlaunch runs from the directory it is installed in: it activates the
project's virtual environment (venv_py310 by default), runs the entry
point (app.py by default) under the venv interpreter, and exits with the
exit code of whichever stage failed first, or 0.

The working directory present before launching is always restored, and
every exit branch waits for ENTER so the console stays readable.

` + SubtitleStyle.Render("Configuration:") + `
  Optional ` + CmdStyle.Render("vlaunch.cue") + ` file next to the binary or in the platform
  config directory. Defaults reproduce the stock behavior exactly.`,
		Args: cobra.NoArgs,
		RunE: runLaunch,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is vlaunch.cue next to the binary or in the platform config dir)")
	rootCmd.PersistentFlags().BoolVar(&noPause, "no-pause", false, "exit without waiting for ENTER")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	// fang.Execute provides the styled help/version output; the version is
	// passed via fang.WithVersion since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads the config file and environment variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		// Config problems must never stop the launch; warn and fall back to defaults.
		renderIssuePanel(os.Stderr, issue.ConfigLoadFailedId, config.ColorSchemeAuto)
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay renders an error for the terminal, surfacing
// ActionableError suggestions when present.
func formatErrorForDisplay(err error, verbose bool) string {
	var actionable *issue.ActionableError
	if errors.As(err, &actionable) {
		return actionable.Format(verbose)
	}
	return err.Error()
}
