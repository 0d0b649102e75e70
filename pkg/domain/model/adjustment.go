package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/residuum/pkg/domain/types"
)

// ApplyAdjustment returns a derived collection in which every record selected
// by the scope carries the override control rating and every record, selected
// or not, carries freshly computed derived fields. The input records are
// never mutated; the originals stay available for before/after comparison.
//
// An empty override means no override: the call degrades to a pure
// re-evaluation pass. A scope that selects zero records is a valid, successful
// input and yields the same result. A non-empty override that is not a valid
// control rating fails with ErrInvalidRating before any record is touched.
func ApplyAdjustment(records []*RiskRecord, scope Scope, override types.ControlRating) ([]*RiskRecord, error) {
	if override != "" && !override.IsValid() {
		return nil, goerr.Wrap(types.ErrInvalidRating, "invalid override control rating", goerr.V(types.RatingKey, override.String()))
	}

	derived := make([]*RiskRecord, 0, len(records))
	for _, rec := range records {
		out := rec.Clone()
		if override != "" && scope.Matches(rec) {
			out.Control = override
		}
		if err := out.Reevaluate(); err != nil {
			return nil, err
		}
		derived = append(derived, out)
	}

	return derived, nil
}
