package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/boleta-api/internal/models"
)

// CertificateRepository manages persistence for certificate records.
type CertificateRepository struct {
	db *sqlx.DB
}

// NewCertificateRepository constructs a CertificateRepository.
func NewCertificateRepository(db *sqlx.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

const certificateColumns = `c.id, c.student_id, c.lapso_id, c.school_id, c.user_id,
        c.signatory_name, c.signatory_title, c.issue_date, c.content, c.created_at, c.updated_at`

// FindByStudentAndLapso fetches the single certificate a student holds for
// a lapso, the newest one when historical duplicates exist.
func (r *CertificateRepository) FindByStudentAndLapso(ctx context.Context, studentID, lapsoID string) (*models.Certificate, error) {
	query := fmt.Sprintf(`SELECT %s FROM certificates c
        WHERE c.student_id = $1 AND c.lapso_id = $2
        ORDER BY c.updated_at DESC LIMIT 1`, certificateColumns)
	var cert models.Certificate
	if err := r.db.GetContext(ctx, &cert, query, studentID, lapsoID); err != nil {
		return nil, err
	}
	return &cert, nil
}

// Create inserts a new certificate.
func (r *CertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	now := time.Now().UTC()
	cert.CreatedAt = now
	cert.UpdatedAt = now
	query := `INSERT INTO certificates (id, student_id, lapso_id, school_id, user_id,
        signatory_name, signatory_title, issue_date, content, created_at, updated_at)
        VALUES (:id, :student_id, :lapso_id, :school_id, :user_id,
        :signatory_name, :signatory_title, :issue_date, :content, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, cert); err != nil {
		return fmt.Errorf("create certificate: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns of a certificate.
func (r *CertificateRepository) Update(ctx context.Context, cert *models.Certificate) error {
	cert.UpdatedAt = time.Now().UTC()
	query := `UPDATE certificates SET content = :content, signatory_name = :signatory_name,
        signatory_title = :signatory_title, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, cert); err != nil {
		return fmt.Errorf("update certificate: %w", err)
	}
	return nil
}

// List returns certificates matching the filter, joined with the student
// name for the review queue.
func (r *CertificateRepository) List(ctx context.Context, filter models.CertificateFilter) ([]models.CertificateListItem, int, error) {
	base := "FROM certificates c JOIN students s ON s.id = c.student_id"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.LapsoID != "" {
		conditions = append(conditions, fmt.Sprintf("c.lapso_id = $%d", len(args)+1))
		args = append(args, filter.LapsoID)
	}
	if filter.Status != "" {
		// The status tag lives at position 0 of the content string;
		// PENDING rows carry no tag and start with the JSON brace.
		switch filter.Status {
		case models.StatusConfirmed, models.StatusRejected:
			conditions = append(conditions, fmt.Sprintf("c.content LIKE $%d", len(args)+1))
			args = append(args, string(filter.Status)+"%")
		case models.StatusPending:
			conditions = append(conditions, "c.content NOT LIKE 'CONFIRMED%' AND c.content NOT LIKE 'REJECTED%'")
		}
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"student_name": "s.full_name",
		"updated_at":   "c.updated_at",
		"issue_date":   "c.issue_date",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "c.updated_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s, s.full_name AS student_name
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, certificateColumns, base, column, order, size, offset)

	var items []models.CertificateListItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list certificates: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count certificates: %w", err)
	}
	return items, total, nil
}
