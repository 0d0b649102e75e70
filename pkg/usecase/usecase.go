package usecase

import (
	"github.com/secmon-lab/residuum/pkg/domain/interfaces"
	"github.com/secmon-lab/residuum/pkg/domain/model/config"
)

type UseCases struct {
	repo    interfaces.Repository
	catalog *config.Catalog

	Record     *RecordUseCase
	Assessment *AssessmentUseCase
}

type Option func(*UseCases)

// WithCatalog enables register-catalog validation on import and create
func WithCatalog(catalog *config.Catalog) Option {
	return func(uc *UseCases) {
		uc.catalog = catalog
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Record = NewRecordUseCase(repo, uc.catalog)
	uc.Assessment = NewAssessmentUseCase(repo)

	return uc
}
