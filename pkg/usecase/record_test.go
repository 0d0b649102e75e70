package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/residuum/pkg/domain/model"
	"github.com/secmon-lab/residuum/pkg/domain/model/config"
	"github.com/secmon-lab/residuum/pkg/domain/types"
	"github.com/secmon-lab/residuum/pkg/repository/memory"
	"github.com/secmon-lab/residuum/pkg/usecase"
)

func newRecord(id, unit, name string, inherent types.InherentRating, control types.ControlRating) *model.RiskRecord {
	return &model.RiskRecord{
		ID:           types.RecordID(id),
		BusinessUnit: unit,
		RiskName:     name,
		Inherent:     inherent,
		ControlType:  types.ControlTypePreventative,
		Control:      control,
		LossEvents:   5,
		AssessedAt:   time.Date(2025, 11, 4, 9, 0, 0, 0, time.UTC),
	}
}

func TestRecordUseCase_CreateRecord(t *testing.T) {
	t.Run("create evaluates derived fields", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		created, err := uc.Record.CreateRecord(ctx, newRecord("R-0001", "Payments", "Transaction Fraud", types.InherentHigh, types.ControlIneffective))
		gt.NoError(t, err).Required()

		gt.Number(t, created.InherentScore).Equal(3)
		gt.Number(t, created.ControlScore).Equal(1)
		gt.Number(t, created.CombinedScore).Equal(6)
		gt.Value(t, created.ResidualBand).Equal(types.ResidualHigh)
	})

	t.Run("create rejects invalid rating", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		rec := newRecord("R-0001", "Payments", "Transaction Fraud", "Severe", types.ControlEffective)
		_, err := uc.Record.CreateRecord(ctx, rec)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidRating))
	})

	t.Run("create validates against catalog when present", func(t *testing.T) {
		repo := memory.New()
		catalog := &config.Catalog{
			Units: []config.BusinessUnit{{Name: "Payments"}},
			Risks: []config.CatalogRisk{{Name: "Transaction Fraud", ControlType: "Preventative"}},
		}
		uc := usecase.New(repo, usecase.WithCatalog(catalog))
		ctx := context.Background()

		_, err := uc.Record.CreateRecord(ctx, newRecord("R-0001", "Payments", "Transaction Fraud", types.InherentLow, types.ControlEffective))
		gt.NoError(t, err)

		_, err = uc.Record.CreateRecord(ctx, newRecord("R-0002", "Treasury", "Transaction Fraud", types.InherentLow, types.ControlEffective))
		gt.True(t, errors.Is(err, usecase.ErrUnknownUnit))

		_, err = uc.Record.CreateRecord(ctx, newRecord("R-0003", "Payments", "Alien Invasion", types.InherentLow, types.ControlEffective))
		gt.True(t, errors.Is(err, usecase.ErrUnknownRisk))
	})
}

func TestRecordUseCase_ImportRecords(t *testing.T) {
	t.Run("import stores whole batch evaluated", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		batch := []*model.RiskRecord{
			newRecord("R-0001", "Payments", "Transaction Fraud", types.InherentHigh, types.ControlIneffective),
			newRecord("R-0002", "Trading", "Model Error", types.InherentLow, types.ControlEffective),
		}

		imported, err := uc.Record.ImportRecords(ctx, batch)
		gt.NoError(t, err).Required()
		gt.Array(t, imported).Length(2)

		stored := gt.R1(uc.Record.ListRecords(ctx)).NoError(t)
		gt.Array(t, stored).Length(2)
		for _, rec := range stored {
			if rec.CombinedScore < 2 || rec.CombinedScore > 6 {
				t.Errorf("stored record %s has unevaluated combined score %d", rec.ID, rec.CombinedScore)
			}
		}
	})

	t.Run("import fails fast on duplicate IDs in batch", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		batch := []*model.RiskRecord{
			newRecord("R-0001", "Payments", "Transaction Fraud", types.InherentHigh, types.ControlIneffective),
			newRecord("R-0001", "Trading", "Model Error", types.InherentLow, types.ControlEffective),
		}

		_, err := uc.Record.ImportRecords(ctx, batch)
		gt.Error(t, err)

		stored := gt.R1(uc.Record.ListRecords(ctx)).NoError(t)
		gt.Array(t, stored).Length(0)
	})

	t.Run("import fails fast on invalid row", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		batch := []*model.RiskRecord{
			newRecord("R-0001", "Payments", "Transaction Fraud", types.InherentHigh, types.ControlIneffective),
			newRecord("R-0002", "Trading", "Model Error", types.InherentLow, "broken"),
		}

		_, err := uc.Record.ImportRecords(ctx, batch)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidRating))

		stored := gt.R1(uc.Record.ListRecords(ctx)).NoError(t)
		gt.Array(t, stored).Length(0)
	})
}

func TestRecordUseCase_UpdateRecord(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	created := gt.R1(uc.Record.CreateRecord(ctx, newRecord("R-0001", "Payments", "Transaction Fraud", types.InherentHigh, types.ControlIneffective))).NoError(t)
	gt.Value(t, created.ResidualBand).Equal(types.ResidualHigh)

	created.Control = types.ControlEffective
	updated := gt.R1(uc.Record.UpdateRecord(ctx, created)).NoError(t)
	gt.Number(t, updated.CombinedScore).Equal(4)
	gt.Value(t, updated.ResidualBand).Equal(types.ResidualMedium)
}

func TestRecordUseCase_DeleteRecord(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	gt.R1(uc.Record.CreateRecord(ctx, newRecord("R-0001", "Payments", "Transaction Fraud", types.InherentHigh, types.ControlIneffective))).NoError(t)
	gt.NoError(t, uc.Record.DeleteRecord(ctx, "R-0001"))

	_, err := uc.Record.GetRecord(ctx, "R-0001")
	gt.Error(t, err)
}
