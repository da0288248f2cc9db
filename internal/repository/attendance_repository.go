package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/boleta-api/internal/models"
)

// AttendanceRepository aggregates per-student attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Aggregate counts attendance records per category for one student within
// the date range of a lapso. A student with no records yields all zeros,
// not an error.
func (r *AttendanceRepository) Aggregate(ctx context.Context, studentID, lapsoID string) (models.AttendanceCounts, error) {
	query := `SELECT
        COUNT(*) FILTER (WHERE a.status = 'PRESENT') AS present,
        COUNT(*) FILTER (WHERE a.status = 'LATE') AS late,
        COUNT(*) FILTER (WHERE a.status = 'ABSENT') AS absent,
        COUNT(*) FILTER (WHERE a.status = 'JUSTIFIED') AS justified_absent
        FROM attendances a
        JOIN lapsos l ON l.id = $2
        WHERE a.student_id = $1 AND a.date BETWEEN l.start_date AND l.end_date`
	var counts models.AttendanceCounts
	if err := r.db.GetContext(ctx, &counts, query, studentID, lapsoID); err != nil {
		return models.AttendanceCounts{}, fmt.Errorf("aggregate attendance: %w", err)
	}
	return counts, nil
}
