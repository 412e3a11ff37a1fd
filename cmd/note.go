package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faaadelmr/noted/internal/theme"
	"github.com/faaadelmr/noted/internal/utils"
)

func newNoteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "List, create, rename, select and delete notes",
	}
	cmd.AddCommand(newNoteLsCmd(a), newNoteNewCmd(a), newNoteRmCmd(a), newNoteRenameCmd(a), newNoteUseCmd(a))
	return cmd
}

func newNoteLsCmd(a *app) *cobra.Command {
	var (
		format  string
		showIDs bool
		noColor bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List notes; * marks the active one",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store.Load()
			if err != nil {
				return err
			}
			r, err := a.renderer(format, showIDs, noColor, a.themeID(st))
			if err != nil {
				return err
			}
			out, err := r.RenderList(st.Notes)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "default", "output format: default|json|yaml")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "show note ids")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	return cmd
}

func newNoteNewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new [title]",
		Short: "Create a note and make it active",
		Example: `  noted note new
  noted note new Groceries`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			n := s.mgr.CreateNote()
			if title := strings.Join(args, " "); title != "" {
				if err := s.mgr.RenameNote(n.ID, title); err != nil {
					return err
				}
			}
			if err := s.finish(nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.ID)
			return nil
		},
	}
}

func newNoteRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <note>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			n, err := resolveNote(s.mgr.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if err := s.finish(s.mgr.RemoveNote(n.ID)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %q\n", n.Title)
			return nil
		},
	}
}

func newNoteRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <note> <title>",
		Short: "Rename a note; an empty title becomes Untitled",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			n, err := resolveNote(s.mgr.Snapshot(), args[0])
			if err != nil {
				return err
			}
			return s.finish(s.mgr.RenameNote(n.ID, strings.Join(args[1:], " ")))
		},
	}
}

func newNoteUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <note>",
		Short: "Make a note the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			n, err := resolveNote(s.mgr.Snapshot(), args[0])
			if err != nil {
				return err
			}
			return s.finish(s.mgr.SetActive(n.ID))
		},
	}
}

// renderer builds the output renderer shared by ls and show.
func (a *app) renderer(format string, showIDs, noColor bool, themeID string) (*utils.Renderer, error) {
	f, err := utils.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	rc := utils.DefaultRenderConfig()
	rc.Format = f
	rc.ShowIDs = showIDs
	rc.Theme = theme.Resolve(themeID).ID
	if noColor {
		rc.Color = false
	}
	return utils.NewRenderer(rc), nil
}
