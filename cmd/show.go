package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		format  string
		all     bool
		showIDs bool
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "show [note]",
		Short: "Print a note (the active one by default)",
		Example: `  noted show
  noted show 2 --format markdown
  noted show --all --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store.Load()
			if err != nil {
				return err
			}
			r, err := a.renderer(format, showIDs, noColor, a.themeID(st))
			if err != nil {
				return err
			}

			var out string
			switch {
			case all:
				out, err = r.RenderCollection(st.Notes)
			case len(args) == 1:
				n, rerr := resolveNote(st.Notes, args[0])
				if rerr != nil {
					return rerr
				}
				out, err = r.RenderNote(n, n.ID == st.Notes.ActiveID)
			default:
				n, _ := st.Notes.Active()
				out, err = r.RenderNote(n, true)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "default", "output format: default|plain|markdown|json|yaml")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "print every note")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "show note and line ids")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	return cmd
}
