package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/acadly/timetable-api/internal/models"
)

// BatchRepository reads student cohorts; batch management lives elsewhere.
type BatchRepository struct {
	db *sqlx.DB
}

// NewBatchRepository constructs a batch repository.
func NewBatchRepository(db *sqlx.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// FindByID loads a batch by id. The engine uses the batch's department to
// scope holiday and exam-period lookups.
func (r *BatchRepository) FindByID(ctx context.Context, id string) (*models.Batch, error) {
	const query = `SELECT id, name, department_id, created_at FROM batches WHERE id = $1`
	var batch models.Batch
	if err := r.db.GetContext(ctx, &batch, query, id); err != nil {
		return nil, err
	}
	return &batch, nil
}
