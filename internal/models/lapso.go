package models

import "time"

// Lapso is a grading period with a start and end date.
type Lapso struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Snapshot copies the lapso fields by value for embedding in a payload.
func (l *Lapso) Snapshot() LapsoSnapshot {
	return LapsoSnapshot{
		ID:        l.ID,
		Name:      l.Name,
		StartDate: l.StartDate.UTC().Format("2006-01-02"),
		EndDate:   l.EndDate.UTC().Format("2006-01-02"),
	}
}
