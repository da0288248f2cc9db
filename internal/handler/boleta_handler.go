package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/boleta-api/internal/dto"
	"github.com/noah-isme/boleta-api/internal/middleware"
	"github.com/noah-isme/boleta-api/internal/models"
	"github.com/noah-isme/boleta-api/internal/service"
	appErrors "github.com/noah-isme/boleta-api/pkg/errors"
	"github.com/noah-isme/boleta-api/pkg/export"
	"github.com/noah-isme/boleta-api/pkg/response"
)

type boletaService interface {
	LoadForEdit(ctx context.Context, studentID, lapsoID string) (*dto.BoletaEditView, error)
	Save(ctx context.Context, studentID, lapsoID string, req dto.SaveBoletaRequest, actor *models.JWTClaims) (*dto.SaveBoletaResponse, error)
	Review(ctx context.Context, studentID, lapsoID string, action service.ReviewAction, actor *models.JWTClaims) (*dto.SaveBoletaResponse, error)
	Document(ctx context.Context, studentID, lapsoID string) (*models.BoletaDocument, models.SupplementaryInfo, error)
	RenderPDF(ctx context.Context, studentID, lapsoID string) ([]byte, error)
	ListQueue(ctx context.Context, filter models.CertificateFilter) ([]dto.CertificateQueueItem, *models.Pagination, error)
	Classify(salon string) dto.LevelSuggestion
}

// BoletaHandler exposes the boleta endpoints.
type BoletaHandler struct {
	boletas boletaService
	csv     *export.CSVExporter
}

// NewBoletaHandler constructs handler.
func NewBoletaHandler(boletas boletaService) *BoletaHandler {
	return &BoletaHandler{boletas: boletas, csv: export.NewCSVExporter()}
}

// Load godoc
// @Summary Load boleta for editing
// @Tags Boletas
// @Produce json
// @Param studentId path string true "Student ID"
// @Param lapsoId path string true "Lapso ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /boletas/{studentId}/lapsos/{lapsoId} [get]
func (h *BoletaHandler) Load(c *gin.Context) {
	view, err := h.boletas.LoadForEdit(c.Request.Context(), c.Param("studentId"), c.Param("lapsoId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Save godoc
// @Summary Save boleta
// @Tags Boletas
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Param lapsoId path string true "Lapso ID"
// @Param payload body dto.SaveBoletaRequest true "Boleta payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /boletas/{studentId}/lapsos/{lapsoId} [put]
func (h *BoletaHandler) Save(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SaveBoletaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid boleta payload"))
		return
	}

	res, err := h.boletas.Save(c.Request.Context(), c.Param("studentId"), c.Param("lapsoId"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Review godoc
// @Summary Confirm or reject a boleta
// @Tags Boletas
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Param lapsoId path string true "Lapso ID"
// @Param payload body dto.ReviewRequest true "Review decision"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /boletas/{studentId}/lapsos/{lapsoId}/review [post]
func (h *BoletaHandler) Review(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	res, err := h.boletas.Review(c.Request.Context(), c.Param("studentId"), c.Param("lapsoId"), service.ReviewAction(req.Action), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Document godoc
// @Summary Get the printable document model
// @Tags Boletas
// @Produce json
// @Param studentId path string true "Student ID"
// @Param lapsoId path string true "Lapso ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /boletas/{studentId}/lapsos/{lapsoId}/document [get]
func (h *BoletaHandler) Document(c *gin.Context) {
	doc, _, err := h.boletas.Document(c.Request.Context(), c.Param("studentId"), c.Param("lapsoId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc, nil)
}

// PDF godoc
// @Summary Download the boleta as PDF
// @Tags Boletas
// @Produce application/pdf
// @Param studentId path string true "Student ID"
// @Param lapsoId path string true "Lapso ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /boletas/{studentId}/lapsos/{lapsoId}/pdf [get]
func (h *BoletaHandler) PDF(c *gin.Context) {
	out, err := h.boletas.RenderPDF(c.Request.Context(), c.Param("studentId"), c.Param("lapsoId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("boleta_%s_%s.pdf", c.Param("studentId"), c.Param("lapsoId"))
	response.File(c, filename, "application/pdf", out)
}

// Queue godoc
// @Summary List the review queue
// @Tags Boletas
// @Produce json
// @Param status query string false "Filter by status"
// @Param lapsoId query string false "Filter by lapso"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Param format query string false "Set to csv for a CSV download"
// @Success 200 {object} response.Envelope
// @Router /boletas/queue [get]
func (h *BoletaHandler) Queue(c *gin.Context) {
	filter := models.CertificateFilter{
		Status:    models.CertificateStatus(c.Query("status")),
		LapsoID:   c.Query("lapsoId"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("pageSize", "20")); err == nil {
		filter.PageSize = size
	}

	items, pagination, err := h.boletas.ListQueue(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("format") == "csv" {
		h.renderQueueCSV(c, items)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Classify godoc
// @Summary Suggest an academic level from a classroom name
// @Tags Boletas
// @Produce json
// @Param salon query string true "Classroom display name"
// @Success 200 {object} response.Envelope
// @Router /levels/classification [get]
func (h *BoletaHandler) Classify(c *gin.Context) {
	suggestion := h.boletas.Classify(c.Query("salon"))
	response.JSON(c, http.StatusOK, suggestion, nil)
}

func (h *BoletaHandler) renderQueueCSV(c *gin.Context, items []dto.CertificateQueueItem) {
	dataset := export.Dataset{
		Headers: []string{"certificate_id", "student_id", "student_name", "lapso_id", "status", "level", "updated_at"},
	}
	for _, item := range items {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"certificate_id": item.CertificateID,
			"student_id":     item.StudentID,
			"student_name":   item.StudentName,
			"lapso_id":       item.LapsoID,
			"status":         string(item.Status),
			"level":          item.Level,
			"updated_at":     item.UpdatedAt,
		})
	}

	out, err := h.csv.Render(dataset)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("boletas_%s.csv", time.Now().UTC().Format("20060102"))
	response.File(c, filename, "text/csv", out)
}
