package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/boleta-api/internal/dto"
	"github.com/noah-isme/boleta-api/internal/middleware"
	"github.com/noah-isme/boleta-api/internal/models"
	"github.com/noah-isme/boleta-api/internal/service"
	appErrors "github.com/noah-isme/boleta-api/pkg/errors"
)

type boletaServiceMock struct {
	view      *dto.BoletaEditView
	saveResp  *dto.SaveBoletaResponse
	saveErr   error
	queue     []dto.CertificateQueueItem
	savedWith *models.JWTClaims
}

func (m *boletaServiceMock) LoadForEdit(ctx context.Context, studentID, lapsoID string) (*dto.BoletaEditView, error) {
	if m.view == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "boleta no encontrada")
	}
	return m.view, nil
}

func (m *boletaServiceMock) Save(ctx context.Context, studentID, lapsoID string, req dto.SaveBoletaRequest, actor *models.JWTClaims) (*dto.SaveBoletaResponse, error) {
	m.savedWith = actor
	return m.saveResp, m.saveErr
}

func (m *boletaServiceMock) Review(ctx context.Context, studentID, lapsoID string, action service.ReviewAction, actor *models.JWTClaims) (*dto.SaveBoletaResponse, error) {
	if !actor.Role.CanConfirmBoletas() {
		return nil, appErrors.ErrForbidden
	}
	return &dto.SaveBoletaResponse{CertificateID: "cert-1", Status: models.StatusConfirmed}, nil
}

func (m *boletaServiceMock) Document(ctx context.Context, studentID, lapsoID string) (*models.BoletaDocument, models.SupplementaryInfo, error) {
	return &models.BoletaDocument{Level: models.LevelSala1}, models.SupplementaryInfo{}, nil
}

func (m *boletaServiceMock) RenderPDF(ctx context.Context, studentID, lapsoID string) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func (m *boletaServiceMock) ListQueue(ctx context.Context, filter models.CertificateFilter) ([]dto.CertificateQueueItem, *models.Pagination, error) {
	return m.queue, &models.Pagination{Page: 1, PageSize: 20, TotalCount: len(m.queue)}, nil
}

func (m *boletaServiceMock) Classify(salon string) dto.LevelSuggestion {
	return dto.LevelSuggestion{Level: "Sala 1", Determined: true}
}

func testClaims(role models.UserRole) *models.JWTClaims {
	return &models.JWTClaims{UserID: "user-1", Role: role}
}

func TestBoletaHandlerLoadNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBoletaHandler(&boletaServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/boletas/student-1/lapsos/lapso-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "studentId", Value: "student-1"}, {Key: "lapsoId", Value: "lapso-1"}}

	handler.Load(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBoletaHandlerSavePassesClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &boletaServiceMock{saveResp: &dto.SaveBoletaResponse{CertificateID: "cert-1", Status: models.StatusPending}}
	handler := NewBoletaHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{"nivel":"Sala 1"}`)
	req, _ := http.NewRequest(http.MethodPut, "/boletas/student-1/lapsos/lapso-1", body)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "studentId", Value: "student-1"}, {Key: "lapsoId", Value: "lapso-1"}}
	c.Set(middleware.ContextUserKey, testClaims(models.RoleTeacher))

	handler.Save(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mock.savedWith)
	assert.Equal(t, models.RoleTeacher, mock.savedWith.Role)
	assert.Contains(t, w.Body.String(), "cert-1")
}

func TestBoletaHandlerSaveWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBoletaHandler(&boletaServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{"nivel":"Sala 1"}`)
	req, _ := http.NewRequest(http.MethodPut, "/boletas/student-1/lapsos/lapso-1", body)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Save(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBoletaHandlerSaveInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBoletaHandler(&boletaServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{"nivel":`)
	req, _ := http.NewRequest(http.MethodPut, "/boletas/student-1/lapsos/lapso-1", body)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, testClaims(models.RoleTeacher))

	handler.Save(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoletaHandlerReviewForbiddenForTeacher(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBoletaHandler(&boletaServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{"action":"confirm"}`)
	req, _ := http.NewRequest(http.MethodPost, "/boletas/student-1/lapsos/lapso-1/review", body)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "studentId", Value: "student-1"}, {Key: "lapsoId", Value: "lapso-1"}}
	c.Set(middleware.ContextUserKey, testClaims(models.RoleTeacher))

	handler.Review(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestBoletaHandlerPDFSetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBoletaHandler(&boletaServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/boletas/student-1/lapsos/lapso-1/pdf", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "studentId", Value: "student-1"}, {Key: "lapsoId", Value: "lapso-1"}}

	handler.PDF(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "boleta_student-1_lapso-1.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestBoletaHandlerQueueCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &boletaServiceMock{queue: []dto.CertificateQueueItem{{
		CertificateID: "cert-1",
		StudentID:     "student-1",
		StudentName:   "Ana Pérez",
		LapsoID:       "lapso-1",
		Status:        models.StatusPending,
		Level:         "Sala 2",
	}}}
	handler := NewBoletaHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/boletas/queue?format=csv", nil)
	c.Request = req

	handler.Queue(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Ana Pérez")
	assert.Contains(t, w.Body.String(), "certificate_id")
}

func TestBoletaHandlerClassify(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBoletaHandler(&boletaServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/levels/classification?salon=Sala+1+A", nil)
	c.Request = req

	handler.Classify(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sala 1")
}
