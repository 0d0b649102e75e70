package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/residuum/pkg/domain/types"
)

// RiskRecord is one assessed risk instance in an operational-risk register.
// The rating fields are source data; the score and band fields are cached
// results of the last evaluation and are never authoritative.
type RiskRecord struct {
	ID           types.RecordID
	BusinessUnit string
	RiskName     string
	Inherent     types.InherentRating
	ControlType  types.ControlType
	Control      types.ControlRating
	LossEvents   float64
	AssessedAt   time.Time

	// Derived fields, populated by Reevaluate
	InherentScore int
	ControlScore  int
	CombinedScore int
	ResidualBand  types.ResidualBand
}

// Validate checks the source fields of the record. Derived fields are not
// validated here; they are owned by Reevaluate.
func (r *RiskRecord) Validate() error {
	if err := r.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid record ID")
	}
	if r.BusinessUnit == "" {
		return goerr.New("business unit is required", goerr.V("id", r.ID))
	}
	if r.RiskName == "" {
		return goerr.New("risk name is required", goerr.V("id", r.ID))
	}
	if !r.Inherent.IsValid() {
		return goerr.Wrap(types.ErrInvalidRating, "invalid inherent rating", goerr.V("id", r.ID), goerr.V(types.RatingKey, r.Inherent.String()))
	}
	if !r.ControlType.IsValid() {
		return goerr.Wrap(types.ErrInvalidRating, "invalid control type", goerr.V("id", r.ID), goerr.V(types.RatingKey, r.ControlType.String()))
	}
	if !r.Control.IsValid() {
		return goerr.Wrap(types.ErrInvalidRating, "invalid control rating", goerr.V("id", r.ID), goerr.V(types.RatingKey, r.Control.String()))
	}
	if r.LossEvents < 0 {
		return goerr.New("loss events cannot be negative", goerr.V("id", r.ID), goerr.V("loss_events", r.LossEvents))
	}
	return nil
}

// Reevaluate recomputes every derived field from the record's own ratings.
// All four fields are always written together so the record never carries a
// stale field next to a fresh one.
func (r *RiskRecord) Reevaluate() error {
	ev, err := Evaluate(r.Inherent, r.Control)
	if err != nil {
		return goerr.Wrap(err, "failed to evaluate record", goerr.V("id", r.ID))
	}
	r.InherentScore = ev.InherentScore
	r.ControlScore = ev.ControlScore
	r.CombinedScore = ev.CombinedScore
	r.ResidualBand = ev.Band
	return nil
}

// Clone returns a deep copy of the record
func (r *RiskRecord) Clone() *RiskRecord {
	c := *r
	return &c
}
