package types

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for rating vocabulary and score domain violations
var (
	// ErrInvalidRating indicates a categorical value outside its fixed
	// enumeration. It is never coerced to a default score.
	ErrInvalidRating = goerr.New("invalid rating")

	// ErrScoreOutOfRange indicates an ordinal or combined score outside its
	// expected domain. This is a data-integrity defect, not bad user input.
	ErrScoreOutOfRange = goerr.New("score out of range")
)

// Context keys for error values
const (
	RatingKey = "rating"
	ScoreKey  = "score"
)
