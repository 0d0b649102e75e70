package model

import "github.com/secmon-lab/residuum/pkg/domain/types"

// BandCount aggregates record counts and observed loss frequency for one
// residual-risk band.
type BandCount struct {
	Records    int
	LossEvents float64
}

// Summary aggregates an evaluated record collection for presentation: record
// counts per band, and per business unit broken down by band. Records must
// already carry fresh derived fields; Summarize does not re-evaluate.
type Summary struct {
	Total  int
	Bands  map[types.ResidualBand]BandCount
	ByUnit map[string]map[types.ResidualBand]int
}

// Summarize builds a Summary over an evaluated record collection
func Summarize(records []*RiskRecord) *Summary {
	s := &Summary{
		Total:  len(records),
		Bands:  make(map[types.ResidualBand]BandCount),
		ByUnit: make(map[string]map[types.ResidualBand]int),
	}

	for _, b := range types.AllResidualBands() {
		s.Bands[b] = BandCount{}
	}

	for _, rec := range records {
		bc := s.Bands[rec.ResidualBand]
		bc.Records++
		bc.LossEvents += rec.LossEvents
		s.Bands[rec.ResidualBand] = bc

		unit, ok := s.ByUnit[rec.BusinessUnit]
		if !ok {
			unit = make(map[types.ResidualBand]int)
			s.ByUnit[rec.BusinessUnit] = unit
		}
		unit[rec.ResidualBand]++
	}

	return s
}
