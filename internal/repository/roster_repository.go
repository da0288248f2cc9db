package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/boleta-api/internal/models"
)

// RosterRepository fetches the roster records behind the supplementary
// display names on a boleta.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository constructs a RosterRepository.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// FindStudent fetches a student row.
func (r *RosterRepository) FindStudent(ctx context.Context, id string) (*models.Student, error) {
	query := `SELECT id, full_name, classroom_id, parent_id, school_id FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindClassroom fetches a classroom row.
func (r *RosterRepository) FindClassroom(ctx context.Context, id string) (*models.Classroom, error) {
	query := `SELECT id, display_name, teacher_id, shift FROM classrooms WHERE id = $1`
	var classroom models.Classroom
	if err := r.db.GetContext(ctx, &classroom, query, id); err != nil {
		return nil, err
	}
	return &classroom, nil
}

// FindPersonName resolves the display name of a user or parent record.
func (r *RosterRepository) FindPersonName(ctx context.Context, id string) (string, error) {
	query := `SELECT full_name FROM persons WHERE id = $1`
	var name string
	if err := r.db.GetContext(ctx, &name, query, id); err != nil {
		return "", err
	}
	return name, nil
}
