package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/personpad/internal/config"
	"github.com/dbsmedya/personpad/internal/database"
	"github.com/dbsmedya/personpad/internal/display"
	"github.com/dbsmedya/personpad/internal/loader"
	"github.com/dbsmedya/personpad/internal/logger"
	"github.com/dbsmedya/personpad/internal/script"
	"github.com/dbsmedya/personpad/internal/session"
	"github.com/dbsmedya/personpad/internal/types"
)

// app bundles what every data command needs.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	session *session.Session
	printer *display.Printer
	db      *database.Manager
}

// loadConfig reads the config file, applies CLI overrides and validates the
// result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOptional(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	o := GetCLIOverrides()
	overrides := config.Overrides{
		LogLevel:    o.LogLevel,
		LogFormat:   o.LogFormat,
		DataFile:    o.DataFile,
		NoColor:     o.NoColor,
		EchoConsole: o.EchoConsole,
	}
	if o.MaxDepth >= 0 {
		depth := o.MaxDepth
		overrides.MaxDepth = &depth
	}
	cfg.ApplyOverrides(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newApp builds the session and printer for cmd without loading records.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	sess := session.New(cfg, log)
	sess.Runner().SetObserver(func(from, to script.State) {
		log.Debugw("Runner state changed", "from", from.String(), "to", to.String())
	})

	return &app{
		cfg:     cfg,
		log:     log,
		session: sess,
		printer: display.New(cmd.OutOrStdout(), cfg.Output),
	}, nil
}

// openApp is newApp followed by loading the configured source.
func openApp(cmd *cobra.Command) (*app, error) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := a.load(cmd, ""); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

// load reads records into the session. An empty path uses the configured
// source; otherwise path names a JSON file ("-" for stdin).
func (a *app) load(cmd *cobra.Command, path string) (types.LoadStats, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if path == "" && a.cfg.Data.Source == "mysql" {
		var stop context.CancelFunc
		ctx, stop = database.WithSignalCancel(ctx, func(sig os.Signal) {
			a.log.Warnw("Interrupted, abandoning document query", "signal", sig.String())
		})
		defer stop()
	}

	src, err := a.source(ctx, path)
	if err != nil {
		return types.LoadStats{}, err
	}
	if fs, ok := src.(*loader.FileSource); ok {
		fs.Stdin = cmd.InOrStdin()
	}

	stats, err := loader.Load(ctx, src, a.session)
	if err != nil {
		return stats, err
	}

	a.log.WithSource(stats.Source).Infow("Records loaded",
		"records", stats.Records,
		"bytes", stats.Bytes,
		"duration", stats.Duration)
	return stats, nil
}

func (a *app) source(ctx context.Context, path string) (loader.Source, error) {
	if path != "" {
		return loader.NewFileSource(path), nil
	}

	var fetcher loader.DocumentFetcher
	if a.cfg.Data.Source == "mysql" {
		if a.db == nil {
			db := database.NewManager(&a.cfg.Source)
			if err := db.Connect(ctx); err != nil {
				return nil, fmt.Errorf("failed to connect to source database: %w", err)
			}
			a.log.WithFields(map[string]interface{}{
				"host":     a.cfg.Source.Host,
				"port":     a.cfg.Source.Port,
				"database": a.cfg.Source.Database,
			}).Infow("Connected to source database")
			a.db = db
		}
		fetcher = a.db
	}
	return loader.NewSource(a.cfg, fetcher)
}

// selectRecord makes index active unless it is -1, the flag default that
// keeps the current selection.
func (a *app) selectRecord(index int) error {
	if index == -1 {
		return nil
	}
	_, err := a.session.Select(index)
	return err
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warnw("Failed to close database", "error", err)
		}
	}
	_ = a.log.Sync()
}
