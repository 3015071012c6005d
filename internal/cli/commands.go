package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/notify"
	"github.com/Makepad-fr/todolist/internal/tasklist"
	"github.com/Makepad-fr/todolist/internal/tui"
	"github.com/Makepad-fr/todolist/internal/ui"
)

func cliApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	return openApp(cmd.Context(), opts, appOptions{sink: ui.Notifier()})
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		f     model.Fields
		useAI bool
	)
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Long: `Add a task. With --ai the title is sent to Gemini, which fills in the
description, day, date and time it can find. Flags are used for anything it
leaves out, and for everything when the request fails.`,
		Example: `  todo add "Buy milk"
  todo add Essay --date 2025-11-03 --time 09:00
  todo add --ai "dentist tomorrow at 2pm"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.Title = strings.Join(args, " ")
			if strings.TrimSpace(f.Title) == "" {
				return usagef("add: empty title")
			}
			a, err := cliApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if !useAI {
				_, err := a.sess.Add(cmd.Context(), f)
				return fieldError(err)
			}
			if !a.parser.Available() {
				ui.Info("AI parsing is off: enable ai.enabled and run `todo auth login`")
			}
			_, err = a.sess.AddParsed(cmd.Context(), a.parser, f)
			return fieldError(err)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.Description, "desc", "", "description")
	fl.StringVar(&f.Day, "day", "", "day label, e.g. Monday")
	fl.StringVar(&f.Date, "date", "", "deadline date ("+model.DateLayout+")")
	fl.StringVar(&f.Time, "time", "", "deadline time (HH:MM)")
	fl.BoolVar(&useAI, "ai", false, "structure the title with Gemini")
	return cmd
}

// fieldError reports invalid input as a usage error.
func fieldError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrEmptyTitle),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrInvalidTime):
		return usageError{err}
	}
	return err
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		filter string
		group  bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fl, err := tasklist.ParseFilter(filter)
			if err != nil {
				return usageError{err}
			}
			a, err := cliApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ui.Panel(listLines(a.sess.Tasks(), a.sess.View(fl), group, time.Now()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "all, active or completed")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "group output by pending/done")
	return cmd
}

// positionCmd builds done and rm, which act on one 1-based position in the
// filtered view.
func positionCmd(opts *rootOptions, use, short string, act func(*app, *cobra.Command, string)) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   use + " <index>",
		Short: short,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fl, err := tasklist.ParseFilter(filter)
			if err != nil {
				return usageError{err}
			}
			a, err := cliApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := resolve(a.sess.View(fl), use, args[0])
			if err != nil {
				return err
			}
			act(a, cmd, id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "view the index refers to: all, active or completed")
	return cmd
}

func newDoneCmd(opts *rootOptions) *cobra.Command {
	return positionCmd(opts, "done", "Toggle completion of a task", func(a *app, cmd *cobra.Command, id string) {
		a.sess.Toggle(cmd.Context(), id)
	})
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return positionCmd(opts, "rm", "Remove a task", func(a *app, cmd *cobra.Command, id string) {
		a.sess.Remove(cmd.Context(), id)
	})
}

func newMoveCmd(opts *rootOptions) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:     "mv <from> <to>",
		Short:   "Move a task to another position",
		Example: "  todo mv 3 1",
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fl, err := tasklist.ParseFilter(filter)
			if err != nil {
				return usageError{err}
			}
			a, err := cliApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			v := a.sess.View(fl)
			from, err := position(v, "mv", args[0])
			if err != nil {
				return err
			}
			to, err := position(v, "mv", args[1])
			if err != nil {
				return err
			}
			if from == to {
				return nil
			}
			return a.sess.Reorder(cmd.Context(), moveWithin(a.sess.Tasks(), v, from, to))
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "view the indexes refer to: all, active or completed")
	return cmd
}

// moveWithin returns the ids of c with the view entry at from moved to to.
// Tasks outside the view keep their slots.
func moveWithin(c tasklist.Collection, v tasklist.View, from, to int) []string {
	viewIDs := make([]string, v.Len())
	for i := range viewIDs {
		viewIDs[i] = v.ID(i)
	}
	moved := viewIDs[from]
	viewIDs = slices.Delete(viewIDs, from, from+1)
	viewIDs = slices.Insert(viewIDs, to, moved)

	ids := tasklist.IDs(c)
	for i, id := range viewIDs {
		ids[v.Underlying(i)] = id
	}
	return ids
}

func newUrgentCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "urgent",
		Short: "Show incomplete tasks due within the hour or overdue",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cliApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			alerts := a.sess.Urgent()
			if len(alerts) == 0 {
				ui.OK("nothing due within the hour")
				return nil
			}
			for _, al := range alerts {
				ui.Warn(fmt.Sprintf("%s: %s", al.Task.Title, al.Remaining.Text))
			}
			return nil
		},
	}
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := &notify.Recorder{}
			a, err := openApp(cmd.Context(), opts, appOptions{sink: rec, logToFile: true})
			if err != nil {
				return err
			}
			defer a.Close()

			alerts := notify.Log(a.log)
			if a.cfg.UI.Sound {
				alerts = notify.Multi(alerts, notify.Bell(ui.Err))
			}
			theme := a.cfg.UI.Theme
			if opts.theme != "" {
				theme = opts.theme
			}
			return tui.Run(cmd.Context(), tui.Options{
				Session: a.sess,
				Parser:  a.parser,
				Notices: rec,
				Alerts:  alerts,
				Theme:   theme,
				Tick:    a.cfg.UI.Tick,
			})
		},
	}
}

// resolve maps a 1-based position in v to a task id.
func resolve(v tasklist.View, cmd, arg string) (string, error) {
	i, err := position(v, cmd, arg)
	if err != nil {
		return "", err
	}
	return v.ID(i), nil
}

func position(v tasklist.View, cmd, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usagef("%s: not a number: %s", cmd, arg)
	}
	if n < 1 || n > v.Len() {
		return 0, usagef("index out of range: have %d, got %d (run `todo ls` to see valid indexes)", v.Len(), n)
	}
	return n - 1, nil
}
