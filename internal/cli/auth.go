package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/auth"
	"github.com/Makepad-fr/todolist/internal/ui"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the Gemini API key",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errHelpShown
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "login",
			Short: "Store an API key (read from stdin)",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprint(cmd.OutOrStdout(), "Paste your Gemini API key: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && strings.TrimSpace(line) == "" {
					return fmt.Errorf("read key: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout())
				if err := credentials().Set(line); err != nil {
					return fmt.Errorf("save key: %w", err)
				}
				ui.OK("logged in")
				return nil
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Delete the stored API key",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, args []string) error {
				store := credentials()
				if c, _ := store.Get(); c != nil && c.Source == "env" {
					ui.OK("key is provided by " + auth.EnvKey + " (nothing to delete)")
					return nil
				}
				if err := store.Delete(); err != nil {
					return fmt.Errorf("logout: %w", err)
				}
				ui.OK("logged out")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show where the API key comes from",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := credentials().Get()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if c == nil {
					ui.Info("not logged in")
					fmt.Fprintln(out, "Run: todo auth login")
					return nil
				}
				fmt.Fprintf(out, "source: %s\n", c.Source)
				fmt.Fprintf(out, "key: %s\n", c.Masked())
				if !c.CreatedAt.IsZero() {
					fmt.Fprintf(out, "saved: %s\n", c.CreatedAt.Format("2006-01-02 15:04"))
				}
				fmt.Fprintf(out, "env override: %s\n", auth.EnvKey)
				return nil
			},
		},
	)
	return cmd
}
