package synth

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/residuum/pkg/domain/model"
	"github.com/secmon-lab/residuum/pkg/domain/model/config"
	"github.com/secmon-lab/residuum/pkg/domain/types"
)

// Generator produces synthetic register records drawn from a catalog, for
// demos and tests. The same seed always yields the same register.
type Generator struct {
	catalog *config.Catalog
	rnd     *rand.Rand
	now     time.Time
}

type Option func(*Generator)

// WithNow fixes the reference time used for assessment timestamps
func WithNow(now time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func New(catalog *config.Catalog, seed int64, opts ...Option) (*Generator, error) {
	if catalog == nil || len(catalog.Units) == 0 || len(catalog.Risks) == 0 {
		return nil, goerr.New("catalog must define at least one unit and one risk")
	}

	g := &Generator{
		catalog: catalog,
		rnd:     rand.New(rand.NewSource(seed)),
		now:     time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Generate returns n validated source records. Derived fields are left unset;
// scoring them belongs to the evaluation core.
func (g *Generator) Generate(n int) ([]*model.RiskRecord, error) {
	inherents := types.AllInherentRatings()
	controls := types.AllControlRatings()
	controlTypes := types.AllControlTypes()

	records := make([]*model.RiskRecord, 0, n)
	for i := 0; i < n; i++ {
		unit := g.catalog.Units[g.rnd.Intn(len(g.catalog.Units))]
		risk := g.catalog.Risks[g.rnd.Intn(len(g.catalog.Risks))]

		controlType, err := types.ParseControlType(risk.ControlType)
		if err != nil {
			controlType = controlTypes[g.rnd.Intn(len(controlTypes))]
		}

		id, err := uuid.NewRandomFromReader(g.rnd)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to generate record ID")
		}

		record := &model.RiskRecord{
			ID:           types.RecordID(fmt.Sprintf("R-%s", id.String()[:8])),
			BusinessUnit: unit.Name,
			RiskName:     risk.Name,
			Inherent:     inherents[g.rnd.Intn(len(inherents))],
			ControlType:  controlType,
			Control:      controls[g.rnd.Intn(len(controls))],
			LossEvents:   float64(g.rnd.Intn(20)) + g.rnd.Float64(),
			AssessedAt:   g.now.AddDate(0, 0, -g.rnd.Intn(365)),
		}

		if err := record.Validate(); err != nil {
			return nil, goerr.Wrap(err, "generated invalid record")
		}
		records = append(records, record)
	}

	return records, nil
}
