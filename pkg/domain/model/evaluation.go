package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/residuum/pkg/domain/types"
)

// Evaluation holds every derived value of a single residual-risk evaluation.
// The four fields are always produced together; partial evaluation is not a
// supported mode.
type Evaluation struct {
	InherentScore int
	ControlScore  int
	CombinedScore int
	Band          types.ResidualBand
}

// CombinedScore combines an inherent score and a control score into a single
// residual score: inherent + (4 - control). A weaker control (lower control
// score) pushes the combined score up; a stronger one pulls it down. With
// valid inputs the result is always in {2..6}.
func CombinedScore(inherentScore, controlScore int) (int, error) {
	if inherentScore < 1 || inherentScore > 3 {
		return 0, goerr.Wrap(types.ErrScoreOutOfRange, "inherent score outside scale", goerr.V(types.ScoreKey, inherentScore))
	}
	if controlScore < 1 || controlScore > 3 {
		return 0, goerr.Wrap(types.ErrScoreOutOfRange, "control score outside scale", goerr.V(types.ScoreKey, controlScore))
	}
	return inherentScore + (4 - controlScore), nil
}

// Classify maps a combined score to its residual-risk band: 2,3 are Low,
// 4,5 are Medium, 6 is High. A score outside {2..6} is unreachable from valid
// encoder output, so failure here signals an internal-consistency defect.
func Classify(combined int) (types.ResidualBand, error) {
	switch combined {
	case 2, 3:
		return types.ResidualLow, nil
	case 4, 5:
		return types.ResidualMedium, nil
	case 6:
		return types.ResidualHigh, nil
	default:
		return "", goerr.Wrap(types.ErrScoreOutOfRange, "combined score outside band table", goerr.V(types.ScoreKey, combined))
	}
}

// Evaluate encodes both categorical ratings, combines the scores and
// classifies the result. It is the single entry point used to populate the
// derived fields of a record.
func Evaluate(inherent types.InherentRating, control types.ControlRating) (*Evaluation, error) {
	inherentScore, err := inherent.Score()
	if err != nil {
		return nil, err
	}

	controlScore, err := control.Score()
	if err != nil {
		return nil, err
	}

	combined, err := CombinedScore(inherentScore, controlScore)
	if err != nil {
		return nil, err
	}

	band, err := Classify(combined)
	if err != nil {
		return nil, err
	}

	return &Evaluation{
		InherentScore: inherentScore,
		ControlScore:  controlScore,
		CombinedScore: combined,
		Band:          band,
	}, nil
}
