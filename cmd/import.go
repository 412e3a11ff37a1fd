package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import notes from a browser localStorage export",
		Long: `Reads a JSON object of localStorage keys to string values, as exported
from the browser version, and replaces the stored notes, active note and
theme. Older note formats are migrated on the way in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			st, err := a.store.Import(f)
			if err != nil {
				return err
			}
			lines := 0
			for _, n := range st.Notes.Notes {
				lines += len(n.Lines)
			}
			a.log.Info("imported", "file", args[0], "notes", len(st.Notes.Notes), "lines", lines)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d notes (%d lines)\n", len(st.Notes.Notes), lines)
			return nil
		},
	}
}
