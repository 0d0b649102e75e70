package usecase

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/residuum/pkg/domain/interfaces"
	"github.com/secmon-lab/residuum/pkg/domain/model"
	"github.com/secmon-lab/residuum/pkg/domain/types"
)

type AssessmentUseCase struct {
	repo interfaces.Repository
}

func NewAssessmentUseCase(repo interfaces.Repository) *AssessmentUseCase {
	return &AssessmentUseCase{
		repo: repo,
	}
}

// AdjustmentResult is the outcome of a what-if pass: the derived records and
// the before/after summaries the presentation layer renders side by side.
type AdjustmentResult struct {
	Records []*model.RiskRecord
	Before  *model.Summary
	After   *model.Summary
}

// ReevaluateAll returns the register with every derived field freshly
// computed. The stored records are not modified.
func (uc *AssessmentUseCase) ReevaluateAll(ctx context.Context) ([]*model.RiskRecord, error) {
	records, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	derived, err := model.ApplyAdjustment(records, model.Scope{}, "")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to re-evaluate register")
	}

	return derived, nil
}

// WhatIf applies a scoped control-effectiveness override to a snapshot of the
// register and returns the derived records with before/after summaries. The
// result is never persisted; each call works from a fresh snapshot.
func (uc *AssessmentUseCase) WhatIf(ctx context.Context, scope model.Scope, override types.ControlRating) (*AdjustmentResult, error) {
	records, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	before, err := model.ApplyAdjustment(records, model.Scope{}, "")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to evaluate baseline")
	}

	after, err := model.ApplyAdjustment(records, scope, override)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to apply adjustment")
	}

	return &AdjustmentResult{
		Records: after,
		Before:  model.Summarize(before),
		After:   model.Summarize(after),
	}, nil
}

// Summary evaluates the register and aggregates it per band and unit
func (uc *AssessmentUseCase) Summary(ctx context.Context) (*model.Summary, error) {
	derived, err := uc.ReevaluateAll(ctx)
	if err != nil {
		return nil, err
	}

	return model.Summarize(derived), nil
}

// snapshot lists the register in stable ID order so repeated calls over the
// same data return records in the same positions.
func (uc *AssessmentUseCase) snapshot(ctx context.Context) ([]*model.RiskRecord, error) {
	records, err := uc.repo.Record().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list records")
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})

	return records, nil
}
