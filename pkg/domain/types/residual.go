package types

// ResidualBand represents the qualitative residual-risk classification of a
// record. It is produced only by evaluation from a combined score and is
// never assigned directly.
type ResidualBand string

const (
	ResidualLow    ResidualBand = "Low"
	ResidualMedium ResidualBand = "Medium"
	ResidualHigh   ResidualBand = "High"
)

// AllResidualBands returns all residual-risk bands in ascending order
func AllResidualBands() []ResidualBand {
	return []ResidualBand{
		ResidualLow,
		ResidualMedium,
		ResidualHigh,
	}
}

// IsValid checks if the residual band is valid
func (b ResidualBand) IsValid() bool {
	switch b {
	case ResidualLow, ResidualMedium, ResidualHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the residual band
func (b ResidualBand) String() string {
	return string(b)
}
