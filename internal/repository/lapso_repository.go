package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/boleta-api/internal/models"
)

// LapsoRepository manages grading-period records.
type LapsoRepository struct {
	db *sqlx.DB
}

// NewLapsoRepository constructs a LapsoRepository.
func NewLapsoRepository(db *sqlx.DB) *LapsoRepository {
	return &LapsoRepository{db: db}
}

// FindByID fetches a lapso by ID.
func (r *LapsoRepository) FindByID(ctx context.Context, id string) (*models.Lapso, error) {
	query := `SELECT id, name, start_date, end_date, active, created_at, updated_at
        FROM lapsos WHERE id = $1`
	var lapso models.Lapso
	if err := r.db.GetContext(ctx, &lapso, query, id); err != nil {
		return nil, err
	}
	return &lapso, nil
}
