package interfaces

import (
	"context"

	"github.com/secmon-lab/residuum/pkg/domain/model"
	"github.com/secmon-lab/residuum/pkg/domain/types"
)

type RecordRepository interface {
	// Create stores a new record. The record ID is caller-supplied and must
	// be unique across the register; a duplicate fails with ErrDuplicateID.
	Create(ctx context.Context, record *model.RiskRecord) (*model.RiskRecord, error)

	// Get retrieves a record by ID
	Get(ctx context.Context, id types.RecordID) (*model.RiskRecord, error)

	// List retrieves all records in the register
	List(ctx context.Context) ([]*model.RiskRecord, error)

	// Update replaces an existing record
	Update(ctx context.Context, record *model.RiskRecord) (*model.RiskRecord, error)

	// Delete removes a record by ID
	Delete(ctx context.Context, id types.RecordID) error
}
