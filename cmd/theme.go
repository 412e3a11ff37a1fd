package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faaadelmr/noted/internal/theme"
)

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "List or switch color themes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List themes; * marks the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store.Load()
			if err != nil {
				return err
			}
			current := theme.Resolve(a.themeID(st)).ID
			for _, t := range theme.All() {
				mark := " "
				if t.ID == current {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-14s %s\n", mark, t.ID, t.Name)
			}
			return nil
		},
	}, &cobra.Command{
		Use:   "set <theme>",
		Short: "Switch theme by id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := theme.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown theme %q (see `noted theme ls`)", args[0])
			}
			return a.store.SaveTheme(t.ID)
		},
	})
	return cmd
}
