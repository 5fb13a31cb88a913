// Cruise offer update runner.
//
// Usage:
//
//	update run [--adults 2 --adults 3] [--replicate] [--verbose]
//	update push
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"cruise-monitor/internal/handler/middleware"
	"cruise-monitor/internal/infra/catalog"
	"cruise-monitor/internal/infra/replicate"
	"cruise-monitor/internal/infra/snapshotstore"
	"cruise-monitor/internal/infra/telegram"
	"cruise-monitor/internal/pkg/clock"
	"cruise-monitor/internal/pkg/config"
	"cruise-monitor/internal/pkg/errs"
	"cruise-monitor/internal/usecase/commands"
)

func main() {
	app := &cli.App{
		Name:  "update",
		Usage: "Poll the cruise catalog, enrich changed offers and persist snapshots",
		Commands: []*cli.Command{
			runCommand(),
			pushCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run one update pass per party size",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:    "adults",
				Aliases: []string{"a"},
				Value:   cli.NewIntSlice(2),
				Usage:   "Party sizes to update",
			},
			&cli.BoolFlag{
				Name:  "replicate",
				Usage: "Push updated records to the mirror host afterwards",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log per-journey progress",
			},
		},
		Action: func(c *cli.Context) error {
			deps, err := buildDeps(c.Bool("verbose"))
			if err != nil {
				return err
			}

			var failed bool
			for _, adults := range c.IntSlice("adults") {
				result, err := deps.update.Run(c.Context, adults)
				if err != nil {
					if errs.Is(err, commands.ErrUpdateInProgress) {
						deps.logger.Warn("skipping, another run is active", "adults", adults)
						continue
					}
					deps.logger.Error("update run failed", "adults", adults, "error", err)
					failed = true
					continue
				}
				fmt.Printf("adults=%d total=%d new=%d detail=%d failed=%d events=%d notified=%d full_scan=%v elapsed=%s\n",
					result.Adults, result.Total, result.NewOffers, result.DetailFetched,
					result.DetailFailed, result.Events, result.Notified, result.FullScan, result.Elapsed)
			}

			if c.Bool("replicate") || deps.cfg.Replicate.Enabled {
				if err := pushSnapshots(c.Context, deps); err != nil {
					deps.logger.Error("replication push failed", "error", err)
				}
			}

			if failed {
				return errs.New("at least one update run failed")
			}
			return nil
		},
	}
}

func pushCommand() *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "Mirror the stored snapshot records without running an update",
		Action: func(c *cli.Context) error {
			deps, err := buildDeps(false)
			if err != nil {
				return err
			}
			return pushSnapshots(c.Context, deps)
		},
	}
}

type deps struct {
	cfg    config.Config
	logger *slog.Logger
	store  *snapshotstore.Store
	update commands.UpdateCommands
}

func buildDeps(verbose bool) (*deps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	store, err := snapshotstore.New(cfg.Cache, logger)
	if err != nil {
		return nil, err
	}
	client, err := catalog.NewClient(cfg.Catalog, store, logger)
	if err != nil {
		return nil, err
	}

	var notifier commands.Notifier
	if cfg.Notify.TelegramEnabled && cfg.Notify.TelegramBotToken != "" {
		notifier, err = telegram.NewNotifier(cfg.Notify, logger)
		if err != nil {
			return nil, err
		}
	} else {
		notifier = telegram.NewNopNotifier()
	}
	sender := commands.NewEventSender(notifier, cfg.Notify, cfg.Cache.Currency, logger)

	return &deps{
		cfg:    cfg,
		logger: logger,
		store:  store,
		update: commands.NewUpdateUseCase(store, client, client, sender, cfg, clock.NewRealClock(), logger),
	}, nil
}

func pushSnapshots(ctx context.Context, d *deps) error {
	if d.cfg.Replicate.BaseURL == "" || d.cfg.Replicate.Secret == "" {
		return errs.New("replication target not configured")
	}
	return replicate.NewUploader(d.cfg.Replicate, d.store, d.logger).UploadAll(ctx)
}
