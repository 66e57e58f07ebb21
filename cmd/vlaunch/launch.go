// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"vlaunch/internal/config"
	"vlaunch/internal/issue"
	"vlaunch/internal/launcher"
	"vlaunch/internal/venv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// runLaunch executes the launch sequence and maps its result onto the
// process exit code.
func runLaunch(cmd *cobra.Command, _ []string) error {
	cfg := config.Get()

	baseDir := cfg.BaseDir
	if baseDir == "" {
		dir, err := launcher.DefaultBaseDir()
		if err != nil {
			return err
		}
		baseDir = dir
	}

	session := &launcher.Session{
		Context:     cmd.Context(),
		BaseDir:     baseDir,
		VenvDir:     cfg.VenvDir.String(),
		EntryPoint:  cfg.EntryPoint.String(),
		Interpreter: cfg.Interpreter,
		Pause:       cfg.Pause && !noPause,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		Logger:      newLogger(verbose),
	}

	result := launcher.New().Run(session)

	if result.Error != nil {
		renderIssuePanel(os.Stderr, issueFor(result.Error), cfg.UI.ColorScheme)
		fmt.Fprintf(os.Stderr, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(result.Error, verbose))
		return &ExitError{Code: result.ExitCode, Err: result.Error}
	}

	if !result.ExitCode.IsSuccess() {
		renderIssuePanel(os.Stderr, issue.ScriptFailedId, cfg.UI.ColorScheme)
		if verbose {
			fmt.Fprintf(os.Stdout, "%s Entry point exited with code %s\n",
				WarningStyle.Render("!"), result.ExitCode)
		}
		return &ExitError{Code: result.ExitCode}
	}

	return nil
}

// issueFor maps a launch failure onto its issue-catalog entry.
func issueFor(err error) issue.Id {
	switch {
	case errors.Is(err, venv.ErrVenvNotFound), errors.Is(err, venv.ErrInvalidLayout):
		return issue.VenvNotFoundId
	case errors.Is(err, venv.ErrInterpreterNotFound):
		return issue.InterpreterNotFoundId
	case errors.Is(err, launcher.ErrExecutionFailed):
		return issue.ScriptFailedId
	default:
		return issue.ActivationFailedId
	}
}

// renderIssuePanel writes the remediation panel for id to w. Panels are
// best-effort; rendering problems never mask the launch outcome.
func renderIssuePanel(w io.Writer, id issue.Id, scheme config.ColorScheme) {
	found := issue.Get(id)
	if found == nil {
		return
	}
	rendered, err := found.Render(glamourStyle(scheme))
	if err != nil {
		return
	}
	fmt.Fprint(w, rendered)
}

// glamourStyle maps the configured color scheme onto a glamour style path.
func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// newLogger builds the session logger. Status lines stay on stdout per
// the launcher's console contract; diagnostics go to stderr.
func newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "vlaunch",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}
