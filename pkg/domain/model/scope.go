package model

// Scope is the selection predicate of a what-if adjustment. Each dimension is
// an optional label set: an empty set imposes no constraint on that
// dimension, so the zero value selects every record. A record is selected iff
// it matches every present dimension.
type Scope struct {
	Units     []string
	RiskNames []string
}

// IsEmpty reports whether the scope constrains nothing
func (s Scope) IsEmpty() bool {
	return len(s.Units) == 0 && len(s.RiskNames) == 0
}

// Matches reports whether the record is selected by the scope
func (s Scope) Matches(r *RiskRecord) bool {
	if len(s.Units) > 0 && !contains(s.Units, r.BusinessUnit) {
		return false
	}
	if len(s.RiskNames) > 0 && !contains(s.RiskNames, r.RiskName) {
		return false
	}
	return true
}

func contains(labels []string, v string) bool {
	for _, l := range labels {
		if l == v {
			return true
		}
	}
	return false
}
