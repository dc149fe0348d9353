package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/asep96/OSRS-GrandExchange-App/internal/application/service/ingest"
	"github.com/asep96/OSRS-GrandExchange-App/internal/config"
	"github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/broker"
	infracatalog "github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/catalog"
	"github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/postgres"
	infraprices "github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/prices"
	"github.com/asep96/OSRS-GrandExchange-App/internal/infrastructure/wiki"
	"github.com/asep96/OSRS-GrandExchange-App/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_ = godotenv.Load()

	app := &cli.App{
		Name:  "refresh",
		Usage: "load Grand Exchange prices and catalog data into the cache store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "prices",
				Usage: "refresh the latest price of every item",
				Action: withService(func(ctx context.Context, svc *ingest.Service, log logrus.FieldLogger) error {
					n, err := svc.RefreshLatestPrices(ctx)
					if err != nil {
						return err
					}
					log.WithField("rows", n).Info("latest prices refreshed")
					return nil
				}),
			},
			{
				Name:  "snapshots",
				Usage: "refresh the 5m, 1h and 24h window snapshots",
				Action: withService(func(ctx context.Context, svc *ingest.Service, log logrus.FieldLogger) error {
					n, err := svc.RefreshIntervalSnapshots(ctx)
					if err != nil {
						return err
					}
					log.WithField("rows", n).Info("interval snapshots refreshed")
					return nil
				}),
			},
			{
				Name:  "mapping",
				Usage: "refresh the item catalog",
				Action: withService(func(ctx context.Context, svc *ingest.Service, log logrus.FieldLogger) error {
					n, err := svc.RefreshMapping(ctx)
					if err != nil {
						return err
					}
					log.WithField("rows", n).Info("catalog refreshed")
					return nil
				}),
			},
			{
				Name:  "all",
				Usage: "refresh the catalog, then prices and snapshots",
				Action: withService(func(ctx context.Context, svc *ingest.Service, log logrus.FieldLogger) error {
					entries, err := svc.RefreshMapping(ctx)
					if err != nil {
						return err
					}
					result, err := svc.RefreshMarket(ctx)
					if err != nil {
						return err
					}
					log.WithFields(logrus.Fields{
						"catalog":   entries,
						"prices":    result.Prices,
						"snapshots": result.Snapshots,
					}).Info("full refresh finished")
					return nil
				}),
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type refreshFunc func(ctx context.Context, svc *ingest.Service, log logrus.FieldLogger) error

// withService wires an ingest service for a single command run.
func withService(fn refreshFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		logger := logging.New(c.String("log-level"))

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		pool, err := postgres.NewPool(c.Context, cfg.Postgres.DSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(c.Context, pool); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}

		source, err := wiki.NewClient(cfg.Wiki)
		if err != nil {
			return fmt.Errorf("init prices api client: %w", err)
		}

		opts := []ingest.Option{ingest.WithLogger(logger)}
		if cfg.RabbitMQ.URL != "" {
			publisher, err := broker.DialPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.RefreshExchange, logger)
			if err != nil {
				return fmt.Errorf("init refresh publisher: %w", err)
			}
			defer publisher.Close()
			opts = append(opts, ingest.WithNotifier(publisher))
		}

		svc := ingest.NewService(source, infraprices.NewRepository(pool), infracatalog.NewRepository(pool), opts...)
		return fn(c.Context, svc, logger.WithField("command", c.Command.Name))
	}
}
