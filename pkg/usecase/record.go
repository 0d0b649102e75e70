package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/residuum/pkg/domain/interfaces"
	"github.com/secmon-lab/residuum/pkg/domain/model"
	"github.com/secmon-lab/residuum/pkg/domain/model/config"
	"github.com/secmon-lab/residuum/pkg/domain/types"
)

type RecordUseCase struct {
	repo    interfaces.Repository
	catalog *config.Catalog
}

func NewRecordUseCase(repo interfaces.Repository, catalog *config.Catalog) *RecordUseCase {
	return &RecordUseCase{
		repo:    repo,
		catalog: catalog,
	}
}

// CreateRecord validates the record, evaluates its derived fields and stores
// it. The stored scores are a cache of this evaluation, never source data.
func (uc *RecordUseCase) CreateRecord(ctx context.Context, record *model.RiskRecord) (*model.RiskRecord, error) {
	if err := record.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid record")
	}
	if err := uc.validateLabels(record); err != nil {
		return nil, err
	}

	stored := record.Clone()
	if err := stored.Reevaluate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Record().Create(ctx, stored)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create record")
	}

	return created, nil
}

// ImportRecords validates and evaluates a whole batch before any record is
// stored, so a bad row cannot leave a partially imported register.
func (uc *RecordUseCase) ImportRecords(ctx context.Context, records []*model.RiskRecord) ([]*model.RiskRecord, error) {
	seen := make(map[types.RecordID]bool, len(records))
	evaluated := make([]*model.RiskRecord, 0, len(records))

	for _, record := range records {
		if err := record.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid record in batch")
		}
		if err := uc.validateLabels(record); err != nil {
			return nil, err
		}
		if seen[record.ID] {
			return nil, goerr.New("duplicate record ID in batch", goerr.V(RecordIDKey, record.ID))
		}
		seen[record.ID] = true

		stored := record.Clone()
		if err := stored.Reevaluate(); err != nil {
			return nil, err
		}
		evaluated = append(evaluated, stored)
	}

	imported := make([]*model.RiskRecord, 0, len(evaluated))
	for _, record := range evaluated {
		created, err := uc.repo.Record().Create(ctx, record)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to import record", goerr.V(RecordIDKey, record.ID))
		}
		imported = append(imported, created)
	}

	return imported, nil
}

func (uc *RecordUseCase) GetRecord(ctx context.Context, id types.RecordID) (*model.RiskRecord, error) {
	record, err := uc.repo.Record().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get record", goerr.V(RecordIDKey, id))
	}

	return record, nil
}

func (uc *RecordUseCase) ListRecords(ctx context.Context) ([]*model.RiskRecord, error) {
	records, err := uc.repo.Record().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list records")
	}

	return records, nil
}

// UpdateRecord validates and re-evaluates the record before storing it
func (uc *RecordUseCase) UpdateRecord(ctx context.Context, record *model.RiskRecord) (*model.RiskRecord, error) {
	if err := record.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid record")
	}
	if err := uc.validateLabels(record); err != nil {
		return nil, err
	}

	stored := record.Clone()
	if err := stored.Reevaluate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Record().Update(ctx, stored)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update record", goerr.V(RecordIDKey, record.ID))
	}

	return updated, nil
}

func (uc *RecordUseCase) DeleteRecord(ctx context.Context, id types.RecordID) error {
	if err := uc.repo.Record().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete record", goerr.V(RecordIDKey, id))
	}

	return nil
}

// validateLabels checks unit and risk labels against the register catalog.
// Without a catalog any label is accepted.
func (uc *RecordUseCase) validateLabels(record *model.RiskRecord) error {
	if uc.catalog == nil {
		return nil
	}

	if !uc.catalog.HasUnit(record.BusinessUnit) {
		return goerr.Wrap(ErrUnknownUnit, "record references unknown unit", goerr.V(UnitKey, record.BusinessUnit), goerr.V(RecordIDKey, record.ID))
	}
	if !uc.catalog.HasRisk(record.RiskName) {
		return goerr.Wrap(ErrUnknownRisk, "record references unknown risk", goerr.V(RiskNameKey, record.RiskName), goerr.V(RecordIDKey, record.ID))
	}

	return nil
}
