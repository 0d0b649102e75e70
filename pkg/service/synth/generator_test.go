package synth_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/residuum/pkg/domain/model/config"
	"github.com/secmon-lab/residuum/pkg/domain/types"
	"github.com/secmon-lab/residuum/pkg/service/synth"
)

func testCatalog() *config.Catalog {
	return &config.Catalog{
		Units: []config.BusinessUnit{
			{Name: "Payments"},
			{Name: "Trading"},
			{Name: "Retail"},
		},
		Risks: []config.CatalogRisk{
			{Name: "Transaction Fraud", ControlType: "Preventative"},
			{Name: "Settlement Failure", ControlType: "Detective"},
			{Name: "Model Error", ControlType: ""},
		},
	}
}

func TestGenerator_Generate(t *testing.T) {
	now := time.Date(2025, 11, 4, 9, 0, 0, 0, time.UTC)
	gen := gt.R1(synth.New(testCatalog(), 42, synth.WithNow(now))).NoError(t)

	records := gt.R1(gen.Generate(50)).NoError(t)
	gt.Array(t, records).Length(50)

	ids := make(map[types.RecordID]bool)
	for _, rec := range records {
		gt.NoError(t, rec.Validate())
		if ids[rec.ID] {
			t.Errorf("duplicate generated ID %s", rec.ID)
		}
		ids[rec.ID] = true

		if rec.AssessedAt.After(now) {
			t.Errorf("assessment timestamp %v after reference time", rec.AssessedAt)
		}
		if rec.LossEvents < 0 {
			t.Errorf("negative loss events %f", rec.LossEvents)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	now := time.Date(2025, 11, 4, 9, 0, 0, 0, time.UTC)

	gen1 := gt.R1(synth.New(testCatalog(), 7, synth.WithNow(now))).NoError(t)
	gen2 := gt.R1(synth.New(testCatalog(), 7, synth.WithNow(now))).NoError(t)

	records1 := gt.R1(gen1.Generate(10)).NoError(t)
	records2 := gt.R1(gen2.Generate(10)).NoError(t)

	for i := range records1 {
		gt.Value(t, *records1[i]).Equal(*records2[i])
	}
}

func TestGenerator_EmptyCatalog(t *testing.T) {
	_, err := synth.New(&config.Catalog{}, 1)
	gt.Error(t, err)

	_, err = synth.New(nil, 1)
	gt.Error(t, err)
}

func TestGenerator_CatalogControlType(t *testing.T) {
	catalog := &config.Catalog{
		Units: []config.BusinessUnit{{Name: "Payments"}},
		Risks: []config.CatalogRisk{{Name: "Transaction Fraud", ControlType: "Preventative"}},
	}
	gen := gt.R1(synth.New(catalog, 3)).NoError(t)

	records := gt.R1(gen.Generate(20)).NoError(t)
	for _, rec := range records {
		gt.Value(t, rec.ControlType).Equal(types.ControlTypePreventative)
	}
}
