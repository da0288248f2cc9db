package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/boleta-api/internal/dto"
	"github.com/noah-isme/boleta-api/internal/models"
	"github.com/noah-isme/boleta-api/pkg/config"
	appErrors "github.com/noah-isme/boleta-api/pkg/errors"
)

type fakeCertificateRepo struct {
	byStudent map[string]*models.Certificate
	created   []*models.Certificate
	updated   []*models.Certificate
	listRows  []models.CertificateListItem
	listTotal int
}

func (r *fakeCertificateRepo) FindByStudentAndLapso(_ context.Context, studentID, lapsoID string) (*models.Certificate, error) {
	cert, ok := r.byStudent[studentID+"/"+lapsoID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return cert, nil
}

func (r *fakeCertificateRepo) Create(_ context.Context, cert *models.Certificate) error {
	r.created = append(r.created, cert)
	return nil
}

func (r *fakeCertificateRepo) Update(_ context.Context, cert *models.Certificate) error {
	r.updated = append(r.updated, cert)
	return nil
}

func (r *fakeCertificateRepo) List(_ context.Context, _ models.CertificateFilter) ([]models.CertificateListItem, int, error) {
	return r.listRows, r.listTotal, nil
}

type fakeAttendanceRepo struct {
	input AttendanceInput
	err   error
}

func (r *fakeAttendanceRepo) Aggregate(_ context.Context, _, _ string) (AttendanceInput, error) {
	return r.input, r.err
}

type fakeLapsoRepo struct {
	lapso *models.Lapso
}

func (r *fakeLapsoRepo) FindByID(_ context.Context, id string) (*models.Lapso, error) {
	if r.lapso == nil || r.lapso.ID != id {
		return nil, sql.ErrNoRows
	}
	return r.lapso, nil
}

type fakeRoster struct {
	classroom *models.Classroom
	info      models.SupplementaryInfo
}

func (r *fakeRoster) StudentClassroom(_ context.Context, _ string) *models.Classroom {
	return r.classroom
}

func (r *fakeRoster) Supplementary(_ context.Context, _ string) models.SupplementaryInfo {
	return r.info
}

type fakeNotifier struct {
	calls []string
}

func (n *fakeNotifier) NotifyRole(_ context.Context, roleID, title, content string) {
	n.calls = append(n.calls, roleID+"|"+title+"|"+content)
}

type fakeRenderer struct {
	out []byte
	err error
}

func (r *fakeRenderer) Render(_ *models.BoletaDocument) ([]byte, error) {
	return r.out, r.err
}

func testLapso() *models.Lapso {
	return &models.Lapso{
		ID:        "lapso-1",
		Name:      "Primer Lapso",
		StartDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC),
	}
}

func newTestBoletaService(certs *fakeCertificateRepo, roster *fakeRoster, notifier *fakeNotifier) *BoletaService {
	return NewBoletaService(
		certs,
		&fakeAttendanceRepo{input: AttendanceInput{Present: 4, Absent: 1}},
		&fakeLapsoRepo{lapso: testLapso()},
		roster,
		notifier,
		&fakeRenderer{out: []byte("%PDF")},
		nil,
		nil,
		zap.NewNop(),
		config.BoletaConfig{
			SchoolName:      "U.E. Simón Rodríguez",
			ReviewerRoleID:  "control-de-estudios",
			DeepLinkBaseURL: "https://sma.example/boletas",
			PDFEnabled:      true,
		},
	)
}

func teacherClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "teacher-1", Role: models.RoleTeacher}
}

func adminClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
}

func TestSaveByTeacherCreatesPendingAndNotifiesOnce(t *testing.T) {
	certs := &fakeCertificateRepo{byStudent: map[string]*models.Certificate{}}
	roster := &fakeRoster{info: models.SupplementaryInfo{StudentName: "Ana Pérez"}}
	notifier := &fakeNotifier{}
	svc := newTestBoletaService(certs, roster, notifier)

	resp, err := svc.Save(context.Background(), "student-1", "lapso-1", dto.SaveBoletaRequest{
		Level: string(models.LevelSala2),
		Marks: map[string]string{"0-0": string(models.OptionConsolidado)},
	}, teacherClaims())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, resp.Status)
	require.Len(t, certs.created, 1)
	assert.Empty(t, certs.updated)
	require.Len(t, notifier.calls, 1)
	assert.Contains(t, notifier.calls[0], "control-de-estudios")
	assert.Contains(t, notifier.calls[0], "Ana Pérez")
	assert.Contains(t, notifier.calls[0], "https://sma.example/boletas/student-1/lapso-1")

	// PENDING content carries no status tag.
	assert.Equal(t, byte('{'), certs.created[0].Content[0])
}

func TestSaveByPrivilegedRoleConfirmsWithoutNotification(t *testing.T) {
	certs := &fakeCertificateRepo{byStudent: map[string]*models.Certificate{}}
	notifier := &fakeNotifier{}
	svc := newTestBoletaService(certs, &fakeRoster{}, notifier)

	resp, err := svc.Save(context.Background(), "student-1", "lapso-1", dto.SaveBoletaRequest{
		Level: string(models.LevelPrimerGrado),
	}, adminClaims())
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, resp.Status)
	assert.Empty(t, notifier.calls)
	require.Len(t, certs.created, 1)
	assert.True(t, len(certs.created[0].Content) > len("CONFIRMED"))
	assert.Equal(t, "CONFIRMED", certs.created[0].Content[:len("CONFIRMED")])
}

func TestSaveByPrivilegedRoleOverRejectedKeepsRejected(t *testing.T) {
	codec := NewContentCodec(zap.NewNop())
	content, err := codec.Encode(models.StatusRejected, &models.BoletaPayload{
		Level:     models.LevelPrimerGrado,
		CreatorID: "teacher-1",
	})
	require.NoError(t, err)

	cert := &models.Certificate{ID: "cert-1", StudentID: "student-1", LapsoID: "lapso-1", Content: content}
	certs := &fakeCertificateRepo{byStudent: map[string]*models.Certificate{"student-1/lapso-1": cert}}
	notifier := &fakeNotifier{}
	svc := newTestBoletaService(certs, &fakeRoster{}, notifier)

	resp, err := svc.Save(context.Background(), "student-1", "lapso-1", dto.SaveBoletaRequest{
		Level: string(models.LevelPrimerGrado),
	}, adminClaims())
	require.NoError(t, err)

	// The edit does not override the explicit reviewer decision.
	assert.Equal(t, models.StatusRejected, resp.Status)
	assert.Empty(t, notifier.calls)
	require.Len(t, certs.updated, 1)
	status, _ := codec.Decode(certs.updated[0].Content)
	assert.Equal(t, models.StatusRejected, status)
}

func TestSaveOfConfirmedBoletaByTeacherRevertsToPending(t *testing.T) {
	codec := NewContentCodec(zap.NewNop())
	content, err := codec.Encode(models.StatusConfirmed, &models.BoletaPayload{
		Level:     models.LevelSala1,
		CreatorID: "original-author",
	})
	require.NoError(t, err)

	cert := &models.Certificate{ID: "cert-1", StudentID: "student-1", LapsoID: "lapso-1", Content: content}
	certs := &fakeCertificateRepo{byStudent: map[string]*models.Certificate{"student-1/lapso-1": cert}}
	notifier := &fakeNotifier{}
	svc := newTestBoletaService(certs, &fakeRoster{}, notifier)

	resp, err := svc.Save(context.Background(), "student-1", "lapso-1", dto.SaveBoletaRequest{
		Level: string(models.LevelSala1),
	}, teacherClaims())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, resp.Status)
	require.Len(t, certs.updated, 1)
	require.Len(t, notifier.calls, 1)

	// The original creator survives the edit.
	_, payload := codec.Decode(certs.updated[0].Content)
	assert.Equal(t, "original-author", payload.CreatorID)
}

func TestSaveRequiresLevelAndLapso(t *testing.T) {
	svc := newTestBoletaService(&fakeCertificateRepo{}, &fakeRoster{}, &fakeNotifier{})

	_, err := svc.Save(context.Background(), "student-1", "lapso-1", dto.SaveBoletaRequest{}, teacherClaims())
	assert.ErrorIs(t, err, appErrors.ErrMissingLevel)

	_, err = svc.Save(context.Background(), "student-1", "", dto.SaveBoletaRequest{
		Level: string(models.LevelSala1),
	}, teacherClaims())
	assert.ErrorIs(t, err, appErrors.ErrMissingLapso)
}

func TestSaveRejectsOptionOutsideLevelFamily(t *testing.T) {
	svc := newTestBoletaService(&fakeCertificateRepo{byStudent: map[string]*models.Certificate{}}, &fakeRoster{}, &fakeNotifier{})

	_, err := svc.Save(context.Background(), "student-1", "lapso-1", dto.SaveBoletaRequest{
		Level: string(models.LevelSala2),
		Marks: map[string]string{"0-0": string(models.OptionConAyuda)},
	}, teacherClaims())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSaveMigratesLegacyMarkOnPrimaryResave(t *testing.T) {
	certs := &fakeCertificateRepo{byStudent: map[string]*models.Certificate{}}
	svc := newTestBoletaService(certs, &fakeRoster{}, &fakeNotifier{})

	// A client that loaded an old record may echo the legacy label back.
	_, err := svc.Save(context.Background(), "student-1", "lapso-1", dto.SaveBoletaRequest{
		Level: string(models.LevelPrimerGrado),
		Marks: map[string]string{"0-0": string(models.OptionSinEvidencias)},
	}, teacherClaims())
	require.NoError(t, err)

	require.Len(t, certs.created, 1)
	codec := NewContentCodec(zap.NewNop())
	_, payload := codec.Decode(certs.created[0].Content)
	assert.Equal(t, models.OptionConAyuda, payload.Marks["0-0"])
	assert.NotContains(t, certs.created[0].Content, string(models.OptionSinEvidencias))
}

func TestLoadForEditReturnsBlankViewWhenNoCertificate(t *testing.T) {
	roster := &fakeRoster{
		classroom: &models.Classroom{ID: "c1", DisplayName: "Aula Roja"},
		info:      models.SupplementaryInfo{StudentName: "Ana Pérez", TeacherName: "N/A"},
	}
	svc := newTestBoletaService(&fakeCertificateRepo{byStudent: map[string]*models.Certificate{}}, roster, &fakeNotifier{})

	view, err := svc.LoadForEdit(context.Background(), "student-1", "lapso-1")
	require.NoError(t, err)

	assert.Empty(t, view.CertificateID)
	assert.Equal(t, models.StatusPending, view.Status)
	assert.True(t, view.Payload.Empty())
	assert.False(t, view.Suggestion.Determined)
	assert.NotEmpty(t, view.Warnings)
	assert.Equal(t, "5", view.DiasHabilesPrefill)
	assert.Equal(t, "Ana Pérez", view.Supplementary.StudentName)
}

func TestLoadForEditDecodesAndSuggestsLevelFromClassroom(t *testing.T) {
	codec := NewContentCodec(zap.NewNop())
	content, err := codec.Encode(models.StatusConfirmed, &models.BoletaPayload{
		Level: models.LevelSegundoGrado,
		Marks: map[string]models.GradingOption{"0-0": models.OptionSinEvidencias},
	})
	require.NoError(t, err)

	cert := &models.Certificate{ID: "cert-1", Content: content}
	certs := &fakeCertificateRepo{byStudent: map[string]*models.Certificate{"student-1/lapso-1": cert}}
	roster := &fakeRoster{classroom: &models.Classroom{ID: "c1", DisplayName: "[Segundo Grado] Sección A"}}
	svc := newTestBoletaService(certs, roster, &fakeNotifier{})

	view, err := svc.LoadForEdit(context.Background(), "student-1", "lapso-1")
	require.NoError(t, err)

	assert.Equal(t, "cert-1", view.CertificateID)
	assert.Equal(t, models.StatusConfirmed, view.Status)
	assert.True(t, view.Suggestion.Determined)
	assert.Equal(t, string(models.LevelSegundoGrado), view.Suggestion.Level)
	require.NotNil(t, view.Rubric)
	assert.Len(t, view.Options, 4)

	// Legacy primary marks are rewritten on load.
	assert.Equal(t, models.OptionConAyuda, view.Payload.Marks["0-0"])
}

func TestLoadForEditUnknownLapso(t *testing.T) {
	svc := newTestBoletaService(&fakeCertificateRepo{}, &fakeRoster{}, &fakeNotifier{})

	_, err := svc.LoadForEdit(context.Background(), "student-1", "missing")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestReviewConfirmRewritesContentTag(t *testing.T) {
	codec := NewContentCodec(zap.NewNop())
	content, err := codec.Encode(models.StatusPending, &models.BoletaPayload{Level: models.LevelSala3})
	require.NoError(t, err)

	cert := &models.Certificate{ID: "cert-1", StudentID: "student-1", LapsoID: "lapso-1", Content: content}
	certs := &fakeCertificateRepo{byStudent: map[string]*models.Certificate{"student-1/lapso-1": cert}}
	svc := newTestBoletaService(certs, &fakeRoster{}, &fakeNotifier{})

	resp, err := svc.Review(context.Background(), "student-1", "lapso-1", ReviewConfirm, adminClaims())
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, resp.Status)
	require.Len(t, certs.updated, 1)
	status, payload := codec.Decode(certs.updated[0].Content)
	assert.Equal(t, models.StatusConfirmed, status)
	assert.Equal(t, models.LevelSala3, payload.Level)
}

func TestReviewForbiddenForTeacher(t *testing.T) {
	svc := newTestBoletaService(&fakeCertificateRepo{}, &fakeRoster{}, &fakeNotifier{})

	_, err := svc.Review(context.Background(), "student-1", "lapso-1", ReviewReject, teacherClaims())
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestDocumentAttachesStoredStatus(t *testing.T) {
	codec := NewContentCodec(zap.NewNop())
	content, err := codec.Encode(models.StatusRejected, &models.BoletaPayload{Level: models.LevelSala1})
	require.NoError(t, err)

	cert := &models.Certificate{ID: "cert-1", Content: content, SignatoryName: "Prof. Díaz"}
	certs := &fakeCertificateRepo{byStudent: map[string]*models.Certificate{"student-1/lapso-1": cert}}
	svc := newTestBoletaService(certs, &fakeRoster{info: models.SupplementaryInfo{StudentName: "Ana"}}, &fakeNotifier{})

	doc, info, err := svc.Document(context.Background(), "student-1", "lapso-1")
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, doc.Status)
	assert.Len(t, doc.Pages, 2)
	assert.Equal(t, "Ana", info.StudentName)
}

func TestRenderPDFDisabled(t *testing.T) {
	svc := newTestBoletaService(&fakeCertificateRepo{}, &fakeRoster{}, &fakeNotifier{})
	svc.cfg.PDFEnabled = false

	_, err := svc.RenderPDF(context.Background(), "student-1", "lapso-1")
	require.Error(t, err)
}

func TestListQueueDecodesRowStatus(t *testing.T) {
	codec := NewContentCodec(zap.NewNop())
	content, err := codec.Encode(models.StatusPending, &models.BoletaPayload{Level: models.LevelSala2})
	require.NoError(t, err)

	certs := &fakeCertificateRepo{
		listRows: []models.CertificateListItem{{
			Certificate: models.Certificate{ID: "cert-1", StudentID: "student-1", LapsoID: "lapso-1", Content: content},
			StudentName: "Ana Pérez",
		}},
		listTotal: 1,
	}
	svc := newTestBoletaService(certs, &fakeRoster{}, &fakeNotifier{})

	items, page, err := svc.ListQueue(context.Background(), models.CertificateFilter{Page: 0, PageSize: 0})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, models.StatusPending, items[0].Status)
	assert.Equal(t, string(models.LevelSala2), items[0].Level)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 1, page.TotalCount)
}

func TestClassifyRecordsNothingWithoutMetrics(t *testing.T) {
	svc := newTestBoletaService(&fakeCertificateRepo{}, &fakeRoster{}, &fakeNotifier{})

	suggestion := svc.Classify("[Sala 1] Grupo B")
	assert.True(t, suggestion.Determined)
	assert.Equal(t, "Sala 1", suggestion.Level)
}
