package models

import "time"

// CertificateStatus is the approval state of a stored boleta.
type CertificateStatus string

const (
	StatusPending   CertificateStatus = "PENDING"
	StatusConfirmed CertificateStatus = "CONFIRMED"
	StatusRejected  CertificateStatus = "REJECTED"
)

// Valid returns true when the status is a supported value.
func (s CertificateStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected:
		return true
	default:
		return false
	}
}

// Certificate is the generic certificate record the boleta subsystem rides
// on. Content holds the encoded status tag plus JSON payload; the remaining
// fields are pass-through for the printed signatory block.
type Certificate struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	LapsoID        string    `db:"lapso_id" json:"lapso_id"`
	SchoolID       string    `db:"school_id" json:"school_id"`
	UserID         string    `db:"user_id" json:"user_id"`
	SignatoryName  string    `db:"signatory_name" json:"signatory_name"`
	SignatoryTitle string    `db:"signatory_title" json:"signatory_title"`
	IssueDate      time.Time `db:"issue_date" json:"issue_date"`
	Content        string    `db:"content" json:"content"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// CertificateFilter scopes certificate listing for the review queue.
type CertificateFilter struct {
	Status    CertificateStatus
	LapsoID   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// CertificateListItem extends the record with student metadata for the
// review queue.
type CertificateListItem struct {
	Certificate
	StudentName string `db:"student_name" json:"student_name"`
}
