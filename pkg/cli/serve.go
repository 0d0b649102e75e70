package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/residuum/pkg/cli/config"
	httpctrl "github.com/secmon-lab/residuum/pkg/controller/http"
	"github.com/secmon-lab/residuum/pkg/service/ingest"
	"github.com/secmon-lab/residuum/pkg/usecase"
	"github.com/secmon-lab/residuum/pkg/utils/logging"
	"github.com/secmon-lab/residuum/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func preloadRegister(ctx context.Context, uc *usecase.UseCases, path string) (int, error) {
	r, err := ingest.Open(ctx, path)
	if err != nil {
		return 0, err
	}
	defer safe.Close(ctx, r)

	records, err := ingest.ParseCSV(r)
	if err != nil {
		return 0, err
	}

	imported, err := uc.Record.ImportRecords(ctx, records)
	if err != nil {
		return 0, err
	}
	return len(imported), nil
}

func cmdServe() *cli.Command {
	var addr string
	var preload string
	var catalogCfg config.Catalog
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RESIDUUM_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "preload",
			Usage:       "Register CSV to import on startup (local file or gs://bucket/object)",
			Sources:     cli.EnvVars("RESIDUUM_PRELOAD"),
			Destination: &preload,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load risk catalog")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			var ucOpts []usecase.Option
			if catalog != nil {
				ucOpts = append(ucOpts, usecase.WithCatalog(catalog))
				logging.Default().Info("Risk catalog loaded",
					"units", len(catalog.Units), "risks", len(catalog.Risks))
			}

			uc := usecase.New(repo, ucOpts...)

			if preload != "" {
				n, err := preloadRegister(ctx, uc, preload)
				if err != nil {
					return goerr.Wrap(err, "failed to preload register", goerr.V("preload", preload))
				}
				logging.Default().Info("Preloaded register", "preload", preload, "records", n)
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Shut down on SIGINT/SIGTERM
			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(sigCtx)
			eg.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})
			eg.Go(func() error {
				<-egCtx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := eg.Wait(); err != nil {
				return err
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
