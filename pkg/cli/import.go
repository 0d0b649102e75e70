package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/residuum/pkg/cli/config"
	"github.com/secmon-lab/residuum/pkg/service/ingest"
	"github.com/secmon-lab/residuum/pkg/usecase"
	"github.com/secmon-lab/residuum/pkg/utils/logging"
	"github.com/secmon-lab/residuum/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdImport() *cli.Command {
	var input string
	var catalogCfg config.Catalog
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Register CSV path (local file or gs://bucket/object)",
			Required:    true,
			Sources:     cli.EnvVars("RESIDUUM_INPUT"),
			Destination: &input,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "import",
		Usage:   "Import a risk register CSV into the repository",
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

			r, err := ingest.Open(ctx, input)
			if err != nil {
				return goerr.Wrap(err, "failed to open register source", goerr.V("input", input))
			}
			defer safe.Close(ctx, r)

			records, err := ingest.ParseCSV(r)
			if err != nil {
				return goerr.Wrap(err, "failed to parse register CSV", goerr.V("input", input))
			}

			var ucOpts []usecase.Option
			if catalog != nil {
				ucOpts = append(ucOpts, usecase.WithCatalog(catalog))
			}
			uc := usecase.New(repo, ucOpts...)

			imported, err := uc.Record.ImportRecords(ctx, records)
			if err != nil {
				return goerr.Wrap(err, "failed to import records")
			}

			logging.Default().Info("Imported register", "input", input, "records", len(imported))
			return nil
		},
	}
}
