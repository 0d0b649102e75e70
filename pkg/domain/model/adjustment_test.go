package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/residuum/pkg/domain/model"
	"github.com/secmon-lab/residuum/pkg/domain/types"
)

func testRegister() []*model.RiskRecord {
	assessed := time.Date(2025, 11, 4, 9, 0, 0, 0, time.UTC)
	return []*model.RiskRecord{
		{
			ID:           "R-0001",
			BusinessUnit: "Payments",
			RiskName:     "Transaction Fraud",
			Inherent:     types.InherentHigh,
			ControlType:  types.ControlTypePreventative,
			Control:      types.ControlIneffective,
			LossEvents:   12,
			AssessedAt:   assessed,
		},
		{
			ID:           "R-0002",
			BusinessUnit: "Payments",
			RiskName:     "Settlement Failure",
			Inherent:     types.InherentMedium,
			ControlType:  types.ControlTypeDetective,
			Control:      types.ControlPartiallyEffective,
			LossEvents:   4,
			AssessedAt:   assessed,
		},
		{
			ID:           "R-0003",
			BusinessUnit: "Trading",
			RiskName:     "Transaction Fraud",
			Inherent:     types.InherentLow,
			ControlType:  types.ControlTypePreventative,
			Control:      types.ControlEffective,
			LossEvents:   1,
			AssessedAt:   assessed,
		},
		{
			ID:           "R-0004",
			BusinessUnit: "Trading",
			RiskName:     "Model Error",
			Inherent:     types.InherentHigh,
			ControlType:  types.ControlTypeDetective,
			Control:      types.ControlEffective,
			LossEvents:   2,
			AssessedAt:   assessed,
		},
	}
}

func TestApplyAdjustment_IdentityReevaluation(t *testing.T) {
	records := testRegister()

	derived := gt.R1(model.ApplyAdjustment(records, model.Scope{}, "")).NoError(t)
	gt.Array(t, derived).Length(len(records))

	for i, out := range derived {
		ev := gt.R1(model.Evaluate(records[i].Inherent, records[i].Control)).NoError(t)
		gt.Value(t, out.Control).Equal(records[i].Control)
		gt.Number(t, out.InherentScore).Equal(ev.InherentScore)
		gt.Number(t, out.ControlScore).Equal(ev.ControlScore)
		gt.Number(t, out.CombinedScore).Equal(ev.CombinedScore)
		gt.Value(t, out.ResidualBand).Equal(ev.Band)
	}
}

func TestApplyAdjustment_ScopedOverride(t *testing.T) {
	records := testRegister()

	scope := model.Scope{Units: []string{"Payments"}}
	derived := gt.R1(model.ApplyAdjustment(records, scope, types.ControlEffective)).NoError(t)

	// Selected records carry the override
	gt.Value(t, derived[0].Control).Equal(types.ControlEffective)
	gt.Value(t, derived[1].Control).Equal(types.ControlEffective)
	gt.Value(t, derived[0].ResidualBand).Equal(types.ResidualMedium) // High + Effective -> 4
	gt.Value(t, derived[1].ResidualBand).Equal(types.ResidualLow)    // Medium + Effective -> 3

	// Unselected records keep their own ratings
	gt.Value(t, derived[2].Control).Equal(types.ControlEffective)
	gt.Value(t, derived[3].Control).Equal(types.ControlEffective)

	// Inputs are never mutated
	gt.Value(t, records[0].Control).Equal(types.ControlIneffective)
	gt.Value(t, records[1].Control).Equal(types.ControlPartiallyEffective)
	gt.Number(t, records[0].CombinedScore).Equal(0)
}

func TestApplyAdjustment_BothDimensions(t *testing.T) {
	records := testRegister()

	scope := model.Scope{
		Units:     []string{"Payments", "Trading"},
		RiskNames: []string{"Transaction Fraud"},
	}
	derived := gt.R1(model.ApplyAdjustment(records, scope, types.ControlIneffective)).NoError(t)

	gt.Value(t, derived[0].Control).Equal(types.ControlIneffective)
	gt.Value(t, derived[2].Control).Equal(types.ControlIneffective)
	gt.Value(t, derived[2].ResidualBand).Equal(types.ResidualMedium) // Low + Ineffective -> 4

	// Records outside the name filter are untouched
	gt.Value(t, derived[1].Control).Equal(types.ControlPartiallyEffective)
	gt.Value(t, derived[3].Control).Equal(types.ControlEffective)
}

func TestApplyAdjustment_ZeroMatchScope(t *testing.T) {
	records := testRegister()

	scope := model.Scope{Units: []string{"Treasury"}}
	derived := gt.R1(model.ApplyAdjustment(records, scope, types.ControlIneffective)).NoError(t)

	baseline := gt.R1(model.ApplyAdjustment(records, model.Scope{}, "")).NoError(t)
	for i := range derived {
		gt.Value(t, *derived[i]).Equal(*baseline[i])
	}
}

func TestApplyAdjustment_NoopOverrideIdempotence(t *testing.T) {
	records := testRegister()
	for _, rec := range records {
		rec.Control = types.ControlPartiallyEffective
	}

	derived := gt.R1(model.ApplyAdjustment(records, model.Scope{}, types.ControlPartiallyEffective)).NoError(t)
	baseline := gt.R1(model.ApplyAdjustment(records, model.Scope{}, "")).NoError(t)

	for i := range derived {
		gt.Value(t, *derived[i]).Equal(*baseline[i])
	}
}

func TestApplyAdjustment_InvalidOverride(t *testing.T) {
	records := testRegister()

	_, err := model.ApplyAdjustment(records, model.Scope{}, "Very Effective")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrInvalidRating))

	// Fail-fast: no record was touched
	for _, rec := range records {
		gt.Number(t, rec.CombinedScore).Equal(0)
	}
}

func TestApplyAdjustment_EmptyCollection(t *testing.T) {
	derived := gt.R1(model.ApplyAdjustment(nil, model.Scope{}, types.ControlEffective)).NoError(t)
	gt.Array(t, derived).Length(0)
}
