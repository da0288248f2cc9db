package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/boleta-api/internal/dto"
	"github.com/noah-isme/boleta-api/internal/models"
	"github.com/noah-isme/boleta-api/internal/rubric"
	"github.com/noah-isme/boleta-api/pkg/config"
	appErrors "github.com/noah-isme/boleta-api/pkg/errors"
)

type certificateRepository interface {
	FindByStudentAndLapso(ctx context.Context, studentID, lapsoID string) (*models.Certificate, error)
	Create(ctx context.Context, cert *models.Certificate) error
	Update(ctx context.Context, cert *models.Certificate) error
	List(ctx context.Context, filter models.CertificateFilter) ([]models.CertificateListItem, int, error)
}

type attendanceAggregateRepository interface {
	Aggregate(ctx context.Context, studentID, lapsoID string) (AttendanceInput, error)
}

type lapsoRepository interface {
	FindByID(ctx context.Context, id string) (*models.Lapso, error)
}

type rosterProvider interface {
	StudentClassroom(ctx context.Context, studentID string) *models.Classroom
	Supplementary(ctx context.Context, studentID string) models.SupplementaryInfo
}

type reviewerNotifier interface {
	NotifyRole(ctx context.Context, roleID, title, content string)
}

type documentRenderer interface {
	Render(doc *models.BoletaDocument) ([]byte, error)
}

// BoletaService orchestrates loading, saving, reviewing and rendering of
// descriptive report cards.
type BoletaService struct {
	certs      certificateRepository
	attendance attendanceAggregateRepository
	lapsos     lapsoRepository
	roster     rosterProvider
	notifier   reviewerNotifier
	codec      *ContentCodec
	renderer   documentRenderer
	validator  *validator.Validate
	metrics    *MetricsService
	logger     *zap.Logger
	cfg        config.BoletaConfig
}

// NewBoletaService constructs the boleta service.
func NewBoletaService(
	certs certificateRepository,
	attendance attendanceAggregateRepository,
	lapsos lapsoRepository,
	roster rosterProvider,
	notifier reviewerNotifier,
	renderer documentRenderer,
	validate *validator.Validate,
	metrics *MetricsService,
	logger *zap.Logger,
	cfg config.BoletaConfig,
) *BoletaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if err := dto.RegisterValidators(validate); err != nil {
		logger.Warn("failed to register boleta validators", zap.Error(err))
	}
	return &BoletaService{
		certs:      certs,
		attendance: attendance,
		lapsos:     lapsos,
		roster:     roster,
		notifier:   notifier,
		codec:      NewContentCodec(logger),
		renderer:   renderer,
		validator:  validate,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
	}
}

// LoadForEdit assembles the editing view for a (student, lapso) pair,
// creating a blank payload when no certificate exists yet.
func (s *BoletaService) LoadForEdit(ctx context.Context, studentID, lapsoID string) (*dto.BoletaEditView, error) {
	lapso, err := s.lapsos.FindByID(ctx, lapsoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lapso no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch lapso")
	}

	view := &dto.BoletaEditView{Status: models.StatusPending, Payload: &models.BoletaPayload{}}

	cert, err := s.certs.FindByStudentAndLapso(ctx, studentID, lapsoID)
	switch {
	case err == nil:
		status, payload := s.codec.Decode(cert.Content)
		if cert.Content != "" && payload.Empty() {
			s.metrics.RecordDecodeFailure()
			view.Warnings = append(view.Warnings, "el contenido guardado no pudo leerse, se muestra una boleta en blanco")
		}
		payload.Marks = MigrateLegacyMarks(payload.Level, payload.Marks)
		view.CertificateID = cert.ID
		view.Status = status
		view.Payload = payload
	case errors.Is(err, sql.ErrNoRows):
		// First visit: blank boleta, created on save.
	default:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch certificate")
	}

	view.Suggestion = s.classify(ctx, studentID)
	if !view.Suggestion.Determined && view.Suggestion.Reason != "" {
		view.Warnings = append(view.Warnings, view.Suggestion.Reason)
	}

	level := view.Payload.Level
	if level == "" && view.Suggestion.Determined {
		level = models.AcademicLevel(view.Suggestion.Level)
	}
	if entry, ok := rubric.Lookup(level); ok {
		view.Rubric = entry
		view.Options = level.Options()
	}

	input := s.fetchAttendance(ctx, studentID, lapsoID, view)
	view.DiasHabilesPrefill = PrefillDiasHabiles(view.Payload.DiasHabiles, lapso.StartDate, lapso.EndDate)
	view.Attendance = ResolveAttendance(input, view.DiasHabilesPrefill)

	view.Supplementary = s.roster.Supplementary(ctx, studentID)

	return view, nil
}

// Save validates, composes and persists a boleta, applying the approval
// state machine. Create and update are the same operation keyed by the
// certificate id; the last write wins.
func (s *BoletaService) Save(ctx context.Context, studentID, lapsoID string, req dto.SaveBoletaRequest, actor *models.JWTClaims) (*dto.SaveBoletaResponse, error) {
	if req.Level == "" {
		return nil, appErrors.ErrMissingLevel
	}
	if lapsoID == "" {
		return nil, appErrors.ErrMissingLapso
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid boleta payload")
	}

	level := models.AcademicLevel(req.Level)
	marks, err := convertMarks(level, req.Marks)
	if err != nil {
		return nil, err
	}

	lapso, err := s.lapsos.FindByID(ctx, lapsoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrMissingLapso
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch lapso")
	}

	var (
		cert       *models.Certificate
		prevStatus = models.StatusPending
		previous   *models.BoletaPayload
	)
	existing, err := s.certs.FindByStudentAndLapso(ctx, studentID, lapsoID)
	switch {
	case err == nil:
		cert = existing
		prevStatus, previous = s.codec.Decode(existing.Content)
		if previous.Empty() {
			previous = nil
		}
	case errors.Is(err, sql.ErrNoRows):
	default:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch certificate")
	}

	input, aggErr := s.attendance.Aggregate(ctx, studentID, lapsoID)
	if aggErr != nil {
		s.logger.Warn("attendance aggregate unavailable on save", zap.Error(aggErr))
	}
	diasHabiles := PrefillDiasHabiles(req.DiasHabiles, lapso.StartDate, lapso.EndDate)

	payload := Compose(ComposeInput{
		Level:                  level,
		Lapso:                  lapso.Snapshot(),
		Shift:                  req.Shift,
		Marks:                  marks,
		SectionRecommendations: req.SectionRecommendations,
		PerformanceFeatures:    req.PerformanceFeatures,
		WorkHabits:             req.WorkHabits,
		TeacherRecommendations: req.TeacherRecommendations,
		SecondaryTeacher:       convertSecondaryTeacher(req.SecondaryTeacher),
		ManualAttendance:       req.ManualAttendance,
		ManualAbsences:         req.ManualAbsences,
		DiasHabiles:            diasHabiles,
		Attendance:             ResolveAttendance(input, diasHabiles),
		SchoolName:             s.cfg.SchoolName,
		EditorID:               actor.UserID,
		Previous:               previous,
	})

	decision := DecideOnSave(actor.Role, prevStatus, cert == nil)
	content, err := s.codec.Encode(decision.Status, &payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode boleta")
	}

	now := time.Now().UTC()
	if cert == nil {
		cert = &models.Certificate{
			ID:        uuid.NewString(),
			StudentID: studentID,
			LapsoID:   lapsoID,
			UserID:    actor.UserID,
			IssueDate: now,
		}
		cert.Content = content
		applySignatory(cert, req)
		if err := s.certs.Create(ctx, cert); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo guardar la boleta")
		}
	} else {
		cert.Content = content
		applySignatory(cert, req)
		if err := s.certs.Update(ctx, cert); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar la boleta")
		}
	}

	s.metrics.RecordSave(string(decision.Status))

	if decision.Notify {
		s.notifyReviewers(ctx, cert, &payload)
	}

	return &dto.SaveBoletaResponse{CertificateID: cert.ID, Status: decision.Status}, nil
}

// Review applies an explicit reviewer decision to a stored boleta.
func (s *BoletaService) Review(ctx context.Context, studentID, lapsoID string, action ReviewAction, actor *models.JWTClaims) (*dto.SaveBoletaResponse, error) {
	status, err := DecideOnReview(actor.Role, action)
	if err != nil {
		return nil, err
	}

	cert, err := s.certs.FindByStudentAndLapso(ctx, studentID, lapsoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "boleta no encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch certificate")
	}

	_, payload := s.codec.Decode(cert.Content)
	content, err := s.codec.Encode(status, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode boleta")
	}
	cert.Content = content
	if err := s.certs.Update(ctx, cert); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo actualizar la boleta")
	}

	return &dto.SaveBoletaResponse{CertificateID: cert.ID, Status: status}, nil
}

// Document reconstructs the printable document model for a stored boleta.
func (s *BoletaService) Document(ctx context.Context, studentID, lapsoID string) (*models.BoletaDocument, models.SupplementaryInfo, error) {
	cert, err := s.certs.FindByStudentAndLapso(ctx, studentID, lapsoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.SupplementaryInfo{}, appErrors.Clone(appErrors.ErrNotFound, "boleta no encontrada")
		}
		return nil, models.SupplementaryInfo{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch certificate")
	}

	status, payload := s.codec.Decode(cert.Content)
	payload.Marks = MigrateLegacyMarks(payload.Level, payload.Marks)

	info := s.roster.Supplementary(ctx, studentID)
	doc, err := Paginate(payload, info, cert.SignatoryName, cert.SignatoryTitle)
	if err != nil {
		return nil, info, err
	}
	doc.Status = status
	return doc, info, nil
}

// RenderPDF renders the composed document through the PDF exporter.
func (s *BoletaService) RenderPDF(ctx context.Context, studentID, lapsoID string) ([]byte, error) {
	if !s.cfg.PDFEnabled {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "la exportación PDF está deshabilitada")
	}
	doc, _, err := s.Document(ctx, studentID, lapsoID)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := s.renderer.Render(doc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	s.metrics.ObservePDFRender(time.Since(start))
	return out, nil
}

// ListQueue returns the review queue for privileged users.
func (s *BoletaService) ListQueue(ctx context.Context, filter models.CertificateFilter) ([]dto.CertificateQueueItem, *models.Pagination, error) {
	rows, total, err := s.certs.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list certificates")
	}

	items := make([]dto.CertificateQueueItem, 0, len(rows))
	for _, row := range rows {
		status, payload := s.codec.Decode(row.Content)
		items = append(items, dto.CertificateQueueItem{
			CertificateID: row.ID,
			StudentID:     row.StudentID,
			StudentName:   row.StudentName,
			LapsoID:       row.LapsoID,
			Status:        status,
			Level:         string(payload.Level),
			UpdatedAt:     row.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return items, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Classify exposes the level classifier for ad-hoc UI use.
func (s *BoletaService) Classify(salon string) dto.LevelSuggestion {
	suggestion := ClassifyLevel(salon)
	s.recordClassification(suggestion)
	return dto.LevelSuggestion{
		Level:      string(suggestion.Level),
		Determined: suggestion.Determined,
		Reason:     suggestion.Reason,
	}
}

func (s *BoletaService) classify(ctx context.Context, studentID string) dto.LevelSuggestion {
	classroom := s.roster.StudentClassroom(ctx, studentID)
	if classroom == nil {
		suggestion := ClassifyLevel("")
		s.recordClassification(suggestion)
		return dto.LevelSuggestion{Reason: suggestion.Reason}
	}
	suggestion := ClassifyLevel(classroom.DisplayName)
	s.recordClassification(suggestion)
	return dto.LevelSuggestion{
		Level:      string(suggestion.Level),
		Determined: suggestion.Determined,
		Reason:     suggestion.Reason,
	}
}

func (s *BoletaService) recordClassification(suggestion LevelSuggestion) {
	switch suggestion.Reason {
	case ReasonTagMatch:
		s.metrics.RecordClassification("tag")
	case ReasonPatternMatch:
		s.metrics.RecordClassification("pattern")
	default:
		s.metrics.RecordClassification("undetermined")
	}
}

func (s *BoletaService) fetchAttendance(ctx context.Context, studentID, lapsoID string, view *dto.BoletaEditView) AttendanceInput {
	input, err := s.attendance.Aggregate(ctx, studentID, lapsoID)
	if err != nil {
		s.logger.Warn("attendance aggregate unavailable",
			zap.String("student_id", studentID),
			zap.String("lapso_id", lapsoID),
			zap.Error(err),
		)
		view.Warnings = append(view.Warnings, "no se pudo consultar la asistencia, se muestran valores en cero")
		return AttendanceInput{}
	}
	return input
}

func (s *BoletaService) notifyReviewers(ctx context.Context, cert *models.Certificate, payload *models.BoletaPayload) {
	info := s.roster.Supplementary(ctx, cert.StudentID)
	title := "Boleta pendiente por revisión"
	content := fmt.Sprintf("La boleta de %s (%s) requiere revisión: %s/%s/%s",
		info.StudentName, payload.Level, s.cfg.DeepLinkBaseURL, cert.StudentID, cert.LapsoID)
	s.notifier.NotifyRole(ctx, s.cfg.ReviewerRoleID, title, content)
}

func applySignatory(cert *models.Certificate, req dto.SaveBoletaRequest) {
	if req.SignatoryName != "" {
		cert.SignatoryName = req.SignatoryName
	}
	if req.SignatoryTitle != "" {
		cert.SignatoryTitle = req.SignatoryTitle
	}
}

func convertMarks(level models.AcademicLevel, raw map[string]string) (map[string]models.GradingOption, error) {
	marks := make(map[string]models.GradingOption, len(raw))
	for key, value := range raw {
		if value == "" {
			// Absence of evidence stays absent; blank cells are never
			// stored.
			continue
		}
		opt := models.GradingOption(value)
		if level.IsPrimary() && opt == models.OptionSinEvidencias {
			// Clients editing an old record may echo the legacy fourth
			// label back on re-save; rewrite it like the load path does.
			opt = models.OptionConAyuda
		}
		if !level.ValidOption(opt) {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("la opción %q no es válida para el nivel %q", value, level))
		}
		marks[key] = opt
	}
	return marks, nil
}

func convertSecondaryTeacher(req *dto.SecondaryTeacherRequest) *models.SecondaryTeacher {
	if req == nil {
		return nil
	}
	return &models.SecondaryTeacher{Name: req.Name, IDPrefix: req.IDPrefix, IDNumber: req.IDNumber}
}
