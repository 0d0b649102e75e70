package types

import "github.com/m-mizutani/goerr/v2"

// InherentRating represents the inherent-risk rating of a record, the risk
// level before any mitigating control is considered.
type InherentRating string

const (
	InherentLow    InherentRating = "Low"
	InherentMedium InherentRating = "Medium"
	InherentHigh   InherentRating = "High"
)

// AllInherentRatings returns all valid inherent-risk ratings in scale order
func AllInherentRatings() []InherentRating {
	return []InherentRating{
		InherentLow,
		InherentMedium,
		InherentHigh,
	}
}

// IsValid checks if the inherent rating is one of the fixed enumeration.
// Matching is exact and case-sensitive.
func (r InherentRating) IsValid() bool {
	switch r {
	case InherentLow, InherentMedium, InherentHigh:
		return true
	default:
		return false
	}
}

// Score returns the ordinal score of the rating (Low=1, Medium=2, High=3).
// An unrecognized label fails with ErrInvalidRating rather than falling back
// to a default score.
func (r InherentRating) Score() (int, error) {
	switch r {
	case InherentLow:
		return 1, nil
	case InherentMedium:
		return 2, nil
	case InherentHigh:
		return 3, nil
	default:
		return 0, goerr.Wrap(ErrInvalidRating, "unknown inherent rating", goerr.V(RatingKey, string(r)))
	}
}

// String returns the string representation of the inherent rating
func (r InherentRating) String() string {
	return string(r)
}

// ParseInherentRating parses a string into an InherentRating
func ParseInherentRating(s string) (InherentRating, error) {
	r := InherentRating(s)
	if !r.IsValid() {
		return "", goerr.Wrap(ErrInvalidRating, "unknown inherent rating", goerr.V(RatingKey, s))
	}
	return r, nil
}
