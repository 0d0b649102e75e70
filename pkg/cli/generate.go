package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/residuum/pkg/cli/config"
	"github.com/secmon-lab/residuum/pkg/service/ingest"
	"github.com/secmon-lab/residuum/pkg/service/synth"
	"github.com/secmon-lab/residuum/pkg/utils/logging"
	"github.com/secmon-lab/residuum/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdGenerate() *cli.Command {
	var output string
	var count int
	var seed int
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output CSV path (default: stdout)",
			Sources:     cli.EnvVars("RESIDUUM_OUTPUT"),
			Destination: &output,
		},
		&cli.IntFlag{
			Name:        "count",
			Aliases:     []string{"n"},
			Usage:       "Number of records to generate",
			Value:       100,
			Sources:     cli.EnvVars("RESIDUUM_COUNT"),
			Destination: &count,
		},
		&cli.IntFlag{
			Name:        "seed",
			Usage:       "Random seed (same seed and catalog produce the same register)",
			Value:       1,
			Sources:     cli.EnvVars("RESIDUUM_SEED"),
			Destination: &seed,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "generate",
		Usage:   "Generate a synthetic risk register CSV from a catalog",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load risk catalog")
			}

			gen, err := synth.New(catalog, int64(seed))
			if err != nil {
				return goerr.Wrap(err, "failed to create generator")
			}

			records, err := gen.Generate(count)
			if err != nil {
				return goerr.Wrap(err, "failed to generate records")
			}

			w := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return goerr.Wrap(err, "failed to create output file", goerr.V("output", output))
				}
				defer safe.Close(ctx, f)
				w = f
			}

			if err := ingest.WriteCSV(w, records); err != nil {
				return goerr.Wrap(err, "failed to write register CSV")
			}

			if output != "" {
				logging.Default().Info("Generated register", "output", output, "records", len(records))
			}
			return nil
		},
	}
}
