package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/residuum/pkg/domain/model"
	"github.com/secmon-lab/residuum/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type recordDocument struct {
	ID            string    `firestore:"id"`
	BusinessUnit  string    `firestore:"business_unit"`
	RiskName      string    `firestore:"risk_name"`
	Inherent      string    `firestore:"inherent_rating"`
	ControlType   string    `firestore:"control_type"`
	Control       string    `firestore:"control_rating"`
	LossEvents    float64   `firestore:"loss_events"`
	AssessedAt    time.Time `firestore:"assessed_at"`
	InherentScore int       `firestore:"inherent_score"`
	ControlScore  int       `firestore:"control_score"`
	CombinedScore int       `firestore:"combined_score"`
	ResidualBand  string    `firestore:"residual_band"`
}

func toDocument(r *model.RiskRecord) *recordDocument {
	return &recordDocument{
		ID:            r.ID.String(),
		BusinessUnit:  r.BusinessUnit,
		RiskName:      r.RiskName,
		Inherent:      r.Inherent.String(),
		ControlType:   r.ControlType.String(),
		Control:       r.Control.String(),
		LossEvents:    r.LossEvents,
		AssessedAt:    r.AssessedAt,
		InherentScore: r.InherentScore,
		ControlScore:  r.ControlScore,
		CombinedScore: r.CombinedScore,
		ResidualBand:  r.ResidualBand.String(),
	}
}

func (d *recordDocument) toModel() *model.RiskRecord {
	return &model.RiskRecord{
		ID:            types.RecordID(d.ID),
		BusinessUnit:  d.BusinessUnit,
		RiskName:      d.RiskName,
		Inherent:      types.InherentRating(d.Inherent),
		ControlType:   types.ControlType(d.ControlType),
		Control:       types.ControlRating(d.Control),
		LossEvents:    d.LossEvents,
		AssessedAt:    d.AssessedAt,
		InherentScore: d.InherentScore,
		ControlScore:  d.ControlScore,
		CombinedScore: d.CombinedScore,
		ResidualBand:  types.ResidualBand(d.ResidualBand),
	}
}

type recordRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRecordRepository(client *firestore.Client) *recordRepository {
	return &recordRepository{
		client: client,
	}
}

func (r *recordRepository) recordsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_records"
	}
	return "records"
}

func (r *recordRepository) Create(ctx context.Context, record *model.RiskRecord) (*model.RiskRecord, error) {
	if err := record.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid record ID")
	}

	docRef := r.client.Collection(r.recordsCollection()).Doc(record.ID.String())

	// Create fails when the document already exists, enforcing ID uniqueness
	if _, err := docRef.Create(ctx, toDocument(record)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrDuplicateID, "record already exists", goerr.V("id", record.ID))
		}
		return nil, goerr.Wrap(err, "failed to create record", goerr.V("id", record.ID))
	}

	return record.Clone(), nil
}

func (r *recordRepository) Get(ctx context.Context, id types.RecordID) (*model.RiskRecord, error) {
	docRef := r.client.Collection(r.recordsCollection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "record not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get record", goerr.V("id", id))
	}

	var recordDoc recordDocument
	if err := doc.DataTo(&recordDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal record", goerr.V("id", id))
	}

	return recordDoc.toModel(), nil
}

func (r *recordRepository) List(ctx context.Context) ([]*model.RiskRecord, error) {
	iter := r.client.Collection(r.recordsCollection()).Documents(ctx)
	defer iter.Stop()

	var records []*model.RiskRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate records")
		}

		var recordDoc recordDocument
		if err := doc.DataTo(&recordDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal record")
		}

		records = append(records, recordDoc.toModel())
	}

	return records, nil
}

func (r *recordRepository) Update(ctx context.Context, record *model.RiskRecord) (*model.RiskRecord, error) {
	docRef := r.client.Collection(r.recordsCollection()).Doc(record.ID.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "record not found", goerr.V("id", record.ID))
		}
		return nil, goerr.Wrap(err, "failed to get record", goerr.V("id", record.ID))
	}

	if _, err := docRef.Set(ctx, toDocument(record)); err != nil {
		return nil, goerr.Wrap(err, "failed to update record", goerr.V("id", record.ID))
	}

	return record.Clone(), nil
}

func (r *recordRepository) Delete(ctx context.Context, id types.RecordID) error {
	docRef := r.client.Collection(r.recordsCollection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "record not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get record", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete record", goerr.V("id", id))
	}

	return nil
}
