package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/faaadelmr/noted/internal/config"
	nlog "github.com/faaadelmr/noted/internal/log"
	"github.com/faaadelmr/noted/internal/notes"
	"github.com/faaadelmr/noted/internal/store"
)

// app is what PersistentPreRunE sets up for every subcommand. execute
// releases it once the command returns, failed or not.
type app struct {
	cfgPath   string
	storePath string
	driver    string

	cfg       config.Config
	log       *slog.Logger
	logCloser io.Closer
	store     *store.Store
}

// skipStore marks commands that run without opening the store.
const skipStore = "skip-store"

// Execute runs the CLI; SIGINT/SIGTERM cancel the command context.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	root, a := newRootCmd()
	return a.execute(ctx, root)
}

// execute runs root and then closes the store and log file. Cobra skips
// post-run hooks when RunE fails, so this is not a PersistentPostRunE.
func (a *app) execute(ctx context.Context, root *cobra.Command) (err error) {
	defer func() {
		if cerr := a.teardown(); err == nil {
			err = cerr
		}
	}()
	return root.ExecuteContext(ctx)
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "noted",
		Short: "Tab-based notes in your terminal",
		Long: `noted keeps a set of named notes, each an ordered list of lines.
Run without arguments to open the full-screen editor.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&a.storePath, "store", "", "store file, overrides store.path")
	root.PersistentFlags().StringVar(&a.driver, "driver", "", "store driver: sqlite|json (default from config, or from the --store extension)")

	root.AddCommand(
		newTUICmd(a),
		newNoteCmd(a),
		newLineCmd(a),
		newShowCmd(a),
		newThemeCmd(a),
		newImportCmd(a),
		newVersionCmd(),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.storePath != "" {
		cfg.Store.Path = a.storePath
		if a.driver == "" && strings.EqualFold(filepath.Ext(a.storePath), ".json") {
			cfg.Store.Driver = "json"
		}
	}
	if a.driver != "" {
		cfg.Store.Driver = strings.ToLower(a.driver)
	}
	a.cfg = cfg

	// the TUI owns the terminal, so only plain CLI commands log to stderr
	a.log, a.logCloser = nlog.Init(nlog.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Stderr: !isTUI(cmd),
	})

	if cmd.Annotations[skipStore] == "true" {
		return nil
	}
	kv, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store %s: %w", cfg.Store.Path, err)
	}
	a.store = store.New(kv, nlog.With("store"))
	a.log.Debug("store opened", "driver", cfg.Store.Driver, "path", cfg.Store.Path)
	return nil
}

func (a *app) teardown() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
	return err
}

func isTUI(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}

// session is one loaded collection whose mutations are saved as they
// happen, through the manager's subscription.
type session struct {
	state   store.State
	mgr     *notes.Manager
	saveErr error
}

func (a *app) open() (*session, error) {
	st, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	s := &session{state: st}
	s.mgr = notes.NewManager(st.Notes, notes.WithLogger(nlog.With("notes")))
	s.mgr.Subscribe(func(c notes.Collection) {
		if err := a.store.SaveCollection(c); err != nil && s.saveErr == nil {
			s.saveErr = err
		}
	})
	return s, nil
}

// finish reports err, or the first save failure when err is nil.
func (s *session) finish(err error) error {
	if err != nil {
		return err
	}
	return s.saveErr
}

func (a *app) themeID(st store.State) string {
	if st.Theme != "" {
		return st.Theme
	}
	return a.cfg.Theme
}
