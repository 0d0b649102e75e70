package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/residuum/pkg/cli/config"
	"github.com/secmon-lab/residuum/pkg/domain/model"
	"github.com/secmon-lab/residuum/pkg/domain/types"
	"github.com/secmon-lab/residuum/pkg/service/ingest"
	"github.com/secmon-lab/residuum/pkg/usecase"
	"github.com/secmon-lab/residuum/pkg/utils/logging"
	"github.com/secmon-lab/residuum/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdWhatIf() *cli.Command {
	var input string
	var units []string
	var riskNames []string
	var control string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Register CSV to evaluate instead of the repository (local file or gs://bucket/object)",
			Sources:     cli.EnvVars("RESIDUUM_INPUT"),
			Destination: &input,
		},
		&cli.StringSliceFlag{
			Name:        "unit",
			Usage:       "Limit the override to records in this business unit (repeatable)",
			Sources:     cli.EnvVars("RESIDUUM_WHATIF_UNIT"),
			Destination: &units,
		},
		&cli.StringSliceFlag{
			Name:        "risk",
			Usage:       "Limit the override to records with this risk name (repeatable)",
			Sources:     cli.EnvVars("RESIDUUM_WHATIF_RISK"),
			Destination: &riskNames,
		},
		&cli.StringFlag{
			Name:        "control",
			Usage:       "Control effectiveness to assume for matched records (Ineffective, Partially Effective, Effective)",
			Sources:     cli.EnvVars("RESIDUUM_WHATIF_CONTROL"),
			Destination: &control,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "whatif",
		Usage:   "Evaluate a scoped control-effectiveness override without persisting it",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var override types.ControlRating
			if control != "" {
				parsed, err := types.ParseControlRating(control)
				if err != nil {
					return goerr.Wrap(err, "invalid control rating")
				}
				override = parsed
			}

			scope := model.Scope{Units: units, RiskNames: riskNames}

			result, err := runWhatIf(ctx, repoCfg, input, scope, override)
			if err != nil {
				return err
			}

			printWhatIf(os.Stdout, scope, override, result)
			return nil
		},
	}
}

func runWhatIf(ctx context.Context, repoCfg config.Repository, input string, scope model.Scope, override types.ControlRating) (*usecase.AdjustmentResult, error) {
	if input != "" {
		r, err := ingest.Open(ctx, input)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open register source", goerr.V("input", input))
		}
		defer safe.Close(ctx, r)

		records, err := ingest.ParseCSV(r)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse register CSV", goerr.V("input", input))
		}

		before, err := model.ApplyAdjustment(records, model.Scope{}, "")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to evaluate baseline")
		}
		after, err := model.ApplyAdjustment(records, scope, override)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to apply adjustment")
		}

		return &usecase.AdjustmentResult{
			Records: after,
			Before:  model.Summarize(before),
			After:   model.Summarize(after),
		}, nil
	}

	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize repository")
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logging.Default().Error("failed to close repository", "error", err.Error())
		}
	}()

	uc := usecase.New(repo)
	return uc.Assessment.WhatIf(ctx, scope, override)
}

var bandColors = map[types.ResidualBand]*color.Color{
	types.ResidualLow:    color.New(color.FgGreen),
	types.ResidualMedium: color.New(color.FgYellow),
	types.ResidualHigh:   color.New(color.FgRed, color.Bold),
}

func printWhatIf(w *os.File, scope model.Scope, override types.ControlRating, result *usecase.AdjustmentResult) {
	bold := color.New(color.Bold)

	if scope.IsEmpty() {
		_, _ = bold.Fprintln(w, "Scope: all records")
	} else {
		_, _ = bold.Fprintf(w, "Scope: units=%v risks=%v\n", scope.Units, scope.RiskNames)
	}
	if override != "" {
		_, _ = bold.Fprintf(w, "Override: control rating = %s\n", override)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "%-8s %8s %8s %12s\n", "Band", "Before", "After", "Loss events")
	for _, band := range types.AllResidualBands() {
		before := result.Before.Bands[band]
		after := result.After.Bands[band]

		// Pad before coloring so ANSI escapes don't skew column widths.
		label := fmt.Sprintf("%-8s", band.String())
		if c, ok := bandColors[band]; ok {
			label = c.Sprint(label)
		}
		delta := ""
		if diff := after.Records - before.Records; diff != 0 {
			delta = fmt.Sprintf(" (%+d)", diff)
		}
		_, _ = fmt.Fprintf(w, "%s %8d %8d%s %11.1f\n",
			label, before.Records, after.Records, delta, after.LossEvents)
	}
	_, _ = fmt.Fprintf(w, "\nTotal records: %d\n", result.After.Total)
}
