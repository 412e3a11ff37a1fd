package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faaadelmr/noted/internal/clipboard"
	"github.com/faaadelmr/noted/internal/notes"
	"github.com/faaadelmr/noted/internal/notify"
)

func newLineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "line",
		Short: "Edit the lines of a note",
		Long: `Lines are addressed by id or by 1-based position.

Examples:
  noted line add 1 "buy milk"
  noted line add Groceries-id "Fruit" --heading --after 2
  noted line set 1 3 "buy oat milk"
  noted line style 1 1 --heading
  noted line mv 1 3 1
  noted line copy 1 2`,
	}
	cmd.AddCommand(
		newLineAddCmd(a),
		newLineSetCmd(a),
		newLineStyleCmd(a),
		newLineRmCmd(a),
		newLineMvCmd(a),
		newLineCopyCmd(a),
	)
	return cmd
}

func newLineAddCmd(a *app) *cobra.Command {
	var (
		after   string
		heading bool
	)
	cmd := &cobra.Command{
		Use:   "add <note> [text]",
		Short: "Add a line at the end, or after --after",
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
			afterID := ""
			if after != "" {
				i, err := resolveLine(n, after)
				if err != nil {
					return err
				}
				afterID = n.Lines[i].ID
			}
			l, err := s.mgr.InsertLine(n.ID, afterID)
			if err != nil {
				return err
			}
			if text := strings.Join(args[1:], " "); text != "" {
				if err := s.mgr.EditLineText(n.ID, l.ID, text); err != nil {
					return err
				}
			}
			if heading {
				if err := s.mgr.SetLineStyle(n.ID, l.ID, notes.StyleHeading); err != nil {
					return err
				}
			}
			if err := s.finish(nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), l.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&after, "after", "", "insert after this line (id or position)")
	cmd.Flags().BoolVar(&heading, "heading", false, "style the new line as a heading")
	return cmd
}

func newLineSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <note> <line> <text>",
		Short: "Replace a line's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, n, i, err := a.openLine(args[0], args[1])
			if err != nil {
				return err
			}
			return s.finish(s.mgr.EditLineText(n.ID, n.Lines[i].ID, strings.Join(args[2:], " ")))
		},
	}
}

func newLineStyleCmd(a *app) *cobra.Command {
	var heading, normal bool
	cmd := &cobra.Command{
		Use:   "style <note> <line>",
		Short: "Set a line's style; toggles when no flag is given",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, n, i, err := a.openLine(args[0], args[1])
			if err != nil {
				return err
			}
			id := n.Lines[i].ID
			switch {
			case heading:
				err = s.mgr.SetLineStyle(n.ID, id, notes.StyleHeading)
			case normal:
				err = s.mgr.SetLineStyle(n.ID, id, notes.StyleNormal)
			default:
				var style notes.Style
				style, err = s.mgr.ToggleLineStyle(n.ID, id)
				if err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), style)
				}
			}
			return s.finish(err)
		},
	}
	cmd.Flags().BoolVar(&heading, "heading", false, "make the line a heading")
	cmd.Flags().BoolVar(&normal, "normal", false, "make the line normal text")
	cmd.MarkFlagsMutuallyExclusive("heading", "normal")
	return cmd
}

func newLineRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <note> <line>",
		Aliases: []string{"delete"},
		Short:   "Delete a line; a note's only line is replaced by a blank one",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, n, i, err := a.openLine(args[0], args[1])
			if err != nil {
				return err
			}
			_, err = s.mgr.RemoveLine(n.ID, n.Lines[i].ID)
			return s.finish(err)
		},
	}
}

func newLineMvCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <note> <from> <to>",
		Short: "Move a line to another position (1-based)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, n, from, err := a.openLine(args[0], args[1])
			if err != nil {
				return err
			}
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("target position %q: %w", args[2], err)
			}
			return s.finish(s.mgr.ReorderLines(n.ID, from, to-1))
		},
	}
}

func newLineCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <note> <line>",
		Short: "Copy a line's text to the clipboard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store.Load()
			if err != nil {
				return err
			}
			n, err := resolveNote(st.Notes, args[0])
			if err != nil {
				return err
			}
			i, err := resolveLine(n, args[1])
			if err != nil {
				return err
			}
			nt := notify.New(a.cfg.Notifications.Desktop)
			if err := clipboard.New(a.cfg.Clipboard.OSC52).Copy(n.Lines[i].Text); err != nil {
				_ = nt.Publish(notify.CopyFailed(err))
				return err
			}
			_ = nt.Publish(notify.Copied())
			return nil
		},
	}
}

// openLine loads a session and resolves a note and line reference.
func (a *app) openLine(noteRef, lineRef string) (*session, notes.Note, int, error) {
	s, err := a.open()
	if err != nil {
		return nil, notes.Note{}, -1, err
	}
	n, err := resolveNote(s.mgr.Snapshot(), noteRef)
	if err != nil {
		return nil, notes.Note{}, -1, err
	}
	i, err := resolveLine(n, lineRef)
	if err != nil {
		return nil, notes.Note{}, -1, err
	}
	return s, n, i, nil
}
