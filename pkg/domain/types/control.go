package types

import "github.com/m-mizutani/goerr/v2"

// ControlRating represents the control-effectiveness rating of a record, the
// qualitative assessment of how well a mitigating control performs.
type ControlRating string

const (
	ControlIneffective        ControlRating = "Ineffective"
	ControlPartiallyEffective ControlRating = "Partially Effective"
	ControlEffective          ControlRating = "Effective"
)

// AllControlRatings returns all valid control-effectiveness ratings in scale order
func AllControlRatings() []ControlRating {
	return []ControlRating{
		ControlIneffective,
		ControlPartiallyEffective,
		ControlEffective,
	}
}

// IsValid checks if the control rating is one of the fixed enumeration.
// Matching is exact and case-sensitive.
func (r ControlRating) IsValid() bool {
	switch r {
	case ControlIneffective, ControlPartiallyEffective, ControlEffective:
		return true
	default:
		return false
	}
}

// Score returns the ordinal score of the rating (Ineffective=1, Partially
// Effective=2, Effective=3). An unrecognized label fails with
// ErrInvalidRating.
func (r ControlRating) Score() (int, error) {
	switch r {
	case ControlIneffective:
		return 1, nil
	case ControlPartiallyEffective:
		return 2, nil
	case ControlEffective:
		return 3, nil
	default:
		return 0, goerr.Wrap(ErrInvalidRating, "unknown control rating", goerr.V(RatingKey, string(r)))
	}
}

// String returns the string representation of the control rating
func (r ControlRating) String() string {
	return string(r)
}

// ParseControlRating parses a string into a ControlRating
func ParseControlRating(s string) (ControlRating, error) {
	r := ControlRating(s)
	if !r.IsValid() {
		return "", goerr.Wrap(ErrInvalidRating, "unknown control rating", goerr.V(RatingKey, s))
	}
	return r, nil
}

// ControlType represents the kind of mitigating control attached to a record.
// It is descriptive only and does not participate in scoring.
type ControlType string

const (
	ControlTypePreventative ControlType = "Preventative"
	ControlTypeDetective    ControlType = "Detective"
)

// AllControlTypes returns all valid control types
func AllControlTypes() []ControlType {
	return []ControlType{
		ControlTypePreventative,
		ControlTypeDetective,
	}
}

// IsValid checks if the control type is valid
func (t ControlType) IsValid() bool {
	switch t {
	case ControlTypePreventative, ControlTypeDetective:
		return true
	default:
		return false
	}
}

// String returns the string representation of the control type
func (t ControlType) String() string {
	return string(t)
}

// ParseControlType parses a string into a ControlType
func ParseControlType(s string) (ControlType, error) {
	t := ControlType(s)
	if !t.IsValid() {
		return "", goerr.Wrap(ErrInvalidRating, "unknown control type", goerr.V(RatingKey, s))
	}
	return t, nil
}
