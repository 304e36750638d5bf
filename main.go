package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/sift/internal/app"
	"github.com/llehouerou/sift/internal/config"
	"github.com/llehouerou/sift/internal/errmsg"
	"github.com/llehouerou/sift/internal/icons"
	"github.com/llehouerou/sift/internal/lister"
	"github.com/llehouerou/sift/internal/logging"
	"github.com/llehouerou/sift/internal/mpris"
	"github.com/llehouerou/sift/internal/notify"
	"github.com/llehouerou/sift/internal/player"
	"github.com/llehouerou/sift/internal/stderr"
	"github.com/llehouerou/sift/internal/store"
	"github.com/llehouerou/sift/internal/triage"
)

const usage = `Usage:
  sift [--config PATH] [FOLDER | FILE...]
  sift apply [--config PATH] [--write-tags] [--dry-run]

With no arguments the current folder is opened.
apply moves every file marked trash or keep to its configured folder.
`

func main() {
	var err error
	if len(os.Args) > 1 && os.Args[1] == "apply" {
		err = runApply(os.Args[2:])
	} else {
		err = runBrowse(os.Args[1:])
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	cfgPath := fs.String("config", "", "config file to use instead of the default locations")
	return fs, cfgPath
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	return cfg, nil
}

// setupLogging opens the log file. Failure is not fatal: logs are dropped.
func setupLogging(cfg *config.Config) io.Closer {
	closer, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
		logging.Discard()
		return io.NopCloser(nil)
	}
	return closer
}

// closeStore writes pending marks and reports a failure on the terminal.
func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpMarkSave, err))
	}
}

func runBrowse(args []string) error {
	fs, cfgPath := newFlagSet("sift")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}

	logs := setupLogging(cfg)
	defer logs.Close()
	icons.Init(cfg.Icons)

	entries := fs.Args()
	if len(entries) == 0 {
		entries = []string{"."}
	}
	paths, err := lister.ParseDrop(strings.Join(entries, "\n"))
	if err != nil {
		return errmsg.Wrap(errmsg.OpFolderLoad, err)
	}

	// The audio stack writes to fd 2 behind the terminal UI.
	if err := stderr.Start(nil); err != nil {
		log.Warn().Err(err).Msg("stderr capture")
	}
	defer stderr.Stop()

	st, err := store.Open()
	if err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	defer closeStore(st)

	deps := app.Deps{
		Config:  cfg,
		Backend: player.NewBeep(),
		Store:   st,
		Paths:   paths,
	}

	if cfg.NotificationsEnabled() {
		n, err := notify.New()
		if err != nil {
			log.Warn().Err(err).Msg("notifications unavailable")
		} else {
			np := notify.NewNowPlaying(n)
			defer np.Dismiss()
			deps.Announcer = np
		}
	}

	var bridge app.Bridge
	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(&bridge)
		if err != nil {
			log.Warn().Err(err).Msg("mpris unavailable")
		} else {
			defer adapter.Close()
			deps.Status = adapter
		}
	}

	m, err := app.New(deps)
	if err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	bridge.Attach(p)

	log.Info().Int("tracks", len(paths)).Msg("starting")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func runApply(args []string) error {
	fs, cfgPath := newFlagSet("sift apply")
	writeTags := fs.Bool("write-tags", false, "store rating and tags in each file before moving it")
	dryRun := fs.Bool("dry-run", false, "print what would be moved without touching files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}

	logs := setupLogging(cfg)
	defer logs.Close()

	st, err := store.Open()
	if err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	defer closeStore(st)

	recs, err := st.Marked()
	if err != nil {
		return errmsg.Wrap(errmsg.OpTriageApply, err)
	}
	if len(recs) == 0 {
		fmt.Println("Nothing to apply.")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sorter := triage.New(cfg.TrashDir, cfg.KeepDir)
	rep, err := sorter.Apply(ctx, recs, triage.Options{
		WriteTags: *writeTags || cfg.WriteTags,
		DryRun:    *dryRun,
	})

	for _, res := range rep.Results {
		if res.Err != nil {
			fmt.Println(errmsg.FormatWith(errmsg.OpFileMove, res.Record.Path, res.Err))
			continue
		}
		fmt.Printf("%s -> %s\n", res.Record.Path, res.Dest)
		if *dryRun {
			continue
		}
		if ferr := st.Forget(res.Record.Path); ferr != nil {
			log.Warn().Err(ferr).Str("path", res.Record.Path).Msg("forget moved file")
		}
	}
	if err != nil {
		return errmsg.Wrap(errmsg.OpTriageApply, err)
	}

	failed := len(rep.Failed())
	if *dryRun {
		fmt.Printf("%d files would be moved.\n", rep.Moved())
	} else {
		fmt.Printf("%d files moved.\n", rep.Moved())
	}
	if failed > 0 {
		return fmt.Errorf("%d files failed", failed)
	}
	return nil
}
