// Package cli implements the todo command line on cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/ui"
)

// BuildInfo is stamped at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// usageError marks errors that exit with status 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error {
	return usageError{fmt.Errorf(format, a...)}
}

// errHelpShown means usage was already printed.
var errHelpShown = errors.New("help shown")

type rootOptions struct {
	configPath string
	theme      string
	noColor    bool
}

// Execute runs args and returns the exit code: 0 ok, 1 error, 2 usage.
func Execute(ctx context.Context, info BuildInfo, args []string) int {
	root := newRootCmd(info)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errHelpShown):
		return 2
	}
	ui.Fail(err.Error())
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintln(ui.Err, ui.C(ui.Current().Muted, "Run `todo --help` for usage."))
		return 2
	}
	return 1
}

func newRootCmd(info BuildInfo) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "todo",
		Short:         "A to-do list for the terminal",
		Long:          "todo keeps a list of tasks with deadlines. Free-text input can be structured by Gemini when an API key is configured.",
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.SetColorForcing(false, opts.noColor)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errHelpShown
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("todo {{.Version}} (commit %s, built %s)\n", info.Commit, info.Date))
	root.SetOut(ui.Out)
	root.SetErr(ui.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default: ./config/config.yaml, ./config.yaml or the user config dir)")
	pf.StringVar(&opts.theme, "theme", "", "color theme: dark, light or mono")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newDoneCmd(opts),
		newRemoveCmd(opts),
		newMoveCmd(opts),
		newUrgentCmd(opts),
		newTUICmd(opts),
		newAuthCmd(),
	)
	return root
}

// exactArgs is cobra.ExactArgs reported as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{fmt.Errorf("%s: %w", cmd.Name(), err)}
		}
		return nil
	}
}
