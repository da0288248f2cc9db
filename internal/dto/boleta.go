package dto

import (
	"github.com/noah-isme/boleta-api/internal/models"
	"github.com/noah-isme/boleta-api/internal/rubric"
)

// LevelSuggestion mirrors the classifier output for API consumers.
type LevelSuggestion struct {
	Level      string `json:"level,omitempty"`
	Determined bool   `json:"determined"`
	Reason     string `json:"reason"`
}

// SecondaryTeacherRequest carries the optional auxiliary teacher block.
type SecondaryTeacherRequest struct {
	Name     string `json:"nombre" validate:"required,max=120"`
	IDPrefix string `json:"cedulaPrefijo" validate:"required,oneof=V E"`
	IDNumber string `json:"cedulaNumero" validate:"required,numeric,max=10"`
}

// SaveBoletaRequest is the save payload for a (student, lapso) pair.
type SaveBoletaRequest struct {
	Level string `json:"nivel" validate:"required,academic_level"`
	Shift string `json:"turno" validate:"omitempty,oneof=Mañana Tarde"`

	Marks map[string]string `json:"indicadores" validate:"omitempty,dive,omitempty,grading_option"`

	SectionRecommendations map[int]string           `json:"recomendaciones" validate:"omitempty,dive,max=250"`
	PerformanceFeatures    string                   `json:"rasgos" validate:"max=250"`
	WorkHabits             string                   `json:"habitosTrabajo" validate:"max=250"`
	TeacherRecommendations string                   `json:"recomendacionesDocente" validate:"max=250"`
	SecondaryTeacher       *SecondaryTeacherRequest `json:"docenteAuxiliar"`

	ManualAttendance string `json:"asistenciasManual" validate:"max=50"`
	ManualAbsences   string `json:"inasistenciasManual" validate:"max=50"`
	DiasHabiles      string `json:"diasHabiles" validate:"max=10"`

	// Certificate pass-through fields.
	SignatoryName  string `json:"signatoryName" validate:"max=120"`
	SignatoryTitle string `json:"signatoryTitle" validate:"max=120"`
}

// SaveBoletaResponse reports the persisted state after a save.
type SaveBoletaResponse struct {
	CertificateID string                   `json:"certificate_id"`
	Status        models.CertificateStatus `json:"status"`
}

// ReviewRequest carries an explicit reviewer decision.
type ReviewRequest struct {
	Action string `json:"action" validate:"required,oneof=confirm reject"`
}

// BoletaEditView is everything the editing form needs for a (student,
// lapso) pair.
type BoletaEditView struct {
	CertificateID string                   `json:"certificate_id,omitempty"`
	Status        models.CertificateStatus `json:"status"`
	Payload       *models.BoletaPayload    `json:"payload"`

	Suggestion LevelSuggestion `json:"level_suggestion"`

	Rubric  *rubric.Entry          `json:"rubric,omitempty"`
	Options []models.GradingOption `json:"options,omitempty"`

	Attendance         models.AttendanceSnapshot `json:"attendance"`
	DiasHabilesPrefill string                    `json:"dias_habiles_prefill"`

	Supplementary models.SupplementaryInfo `json:"supplementary"`

	Warnings []string `json:"warnings,omitempty"`
}

// CertificateQueueItem is a review-queue row.
type CertificateQueueItem struct {
	CertificateID string                   `json:"certificate_id"`
	StudentID     string                   `json:"student_id"`
	StudentName   string                   `json:"student_name"`
	LapsoID       string                   `json:"lapso_id"`
	Status        models.CertificateStatus `json:"status"`
	Level         string                   `json:"level"`
	UpdatedAt     string                   `json:"updated_at"`
}
