package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/residuum/pkg/domain/model"
	"github.com/secmon-lab/residuum/pkg/domain/types"
)

type recordRepository struct {
	mu      sync.RWMutex
	records map[types.RecordID]*model.RiskRecord
}

func newRecordRepository() *recordRepository {
	return &recordRepository{
		records: make(map[types.RecordID]*model.RiskRecord),
	}
}

func (r *recordRepository) Create(ctx context.Context, record *model.RiskRecord) (*model.RiskRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := record.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid record ID")
	}
	if _, exists := r.records[record.ID]; exists {
		return nil, goerr.Wrap(ErrDuplicateID, "record already exists", goerr.V("id", record.ID))
	}

	created := record.Clone()
	r.records[created.ID] = created

	return created.Clone(), nil
}

func (r *recordRepository) Get(ctx context.Context, id types.RecordID) (*model.RiskRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "record not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return record.Clone(), nil
}

func (r *recordRepository) List(ctx context.Context) ([]*model.RiskRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*model.RiskRecord, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record.Clone())
	}

	return records, nil
}

func (r *recordRepository) Update(ctx context.Context, record *model.RiskRecord) (*model.RiskRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "record not found", goerr.V("id", record.ID))
	}

	updated := record.Clone()
	r.records[updated.ID] = updated

	return updated.Clone(), nil
}

func (r *recordRepository) Delete(ctx context.Context, id types.RecordID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return goerr.Wrap(ErrNotFound, "record not found", goerr.V("id", id))
	}

	delete(r.records, id)
	return nil
}
