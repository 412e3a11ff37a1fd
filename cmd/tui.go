package cmd

import (
	"github.com/spf13/cobra"

	"github.com/faaadelmr/noted/internal/clipboard"
	nlog "github.com/faaadelmr/noted/internal/log"
	"github.com/faaadelmr/noted/internal/notes"
	"github.com/faaadelmr/noted/internal/notify"
	"github.com/faaadelmr/noted/internal/ui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen editor (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
}

func (a *app) runTUI(cmd *cobra.Command) error {
	st, err := a.store.Load()
	if err != nil {
		return err
	}
	mgr := notes.NewManager(st.Notes, notes.WithLogger(nlog.With("notes")))
	return ui.Run(cmd.Context(), ui.Deps{
		Config:    a.cfg,
		Store:     a.store,
		Manager:   mgr,
		Theme:     a.themeID(st),
		Clipboard: clipboard.New(a.cfg.Clipboard.OSC52),
		Notifier:  notify.New(a.cfg.Notifications.Desktop),
		Log:       nlog.With("ui"),
	})
}
