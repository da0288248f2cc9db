package models

import (
	"fmt"
	"strings"
)

// AcademicLevel identifies the grade a boleta is issued for. The three
// "Sala" levels form the early-childhood family; the six "Grado" levels
// form the primary family.
type AcademicLevel string

const (
	LevelSala1 AcademicLevel = "Sala 1"
	LevelSala2 AcademicLevel = "Sala 2"
	LevelSala3 AcademicLevel = "Sala 3"

	LevelPrimerGrado  AcademicLevel = "Primer Grado"
	LevelSegundoGrado AcademicLevel = "Segundo Grado"
	LevelTercerGrado  AcademicLevel = "Tercer Grado"
	LevelCuartoGrado  AcademicLevel = "Cuarto Grado"
	LevelQuintoGrado  AcademicLevel = "Quinto Grado"
	LevelSextoGrado   AcademicLevel = "Sexto Grado"
)

// primaryMarker is the token that distinguishes the primary family.
const primaryMarker = "Grado"

// AllLevels lists every supported level in catalog order.
func AllLevels() []AcademicLevel {
	return []AcademicLevel{
		LevelSala1, LevelSala2, LevelSala3,
		LevelPrimerGrado, LevelSegundoGrado, LevelTercerGrado,
		LevelCuartoGrado, LevelQuintoGrado, LevelSextoGrado,
	}
}

// IsPrimary reports whether the level belongs to the primary-grade family.
// The decision depends only on the marker token, not on a catalog lookup,
// so levels written verbatim from classroom tags behave consistently.
func (l AcademicLevel) IsPrimary() bool {
	return strings.Contains(string(l), primaryMarker)
}

// Valid returns true when the level is one of the nine catalog levels.
func (l AcademicLevel) Valid() bool {
	for _, known := range AllLevels() {
		if known == l {
			return true
		}
	}
	return false
}

// GradingOption is a single value of the four-option rubric scale.
type GradingOption string

const (
	OptionConsolidado GradingOption = "Consolidado"
	OptionEnProceso   GradingOption = "En proceso"
	OptionIniciado    GradingOption = "Iniciado"

	// Family-dependent fourth option.
	OptionConAyuda      GradingOption = "Con Ayuda"
	OptionSinEvidencias GradingOption = "Sin Evidencias"
)

// Options returns the four-valued grading scale for the level. The first
// three members never vary; the fourth depends on the level family.
func (l AcademicLevel) Options() []GradingOption {
	fourth := OptionSinEvidencias
	if l.IsPrimary() {
		fourth = OptionConAyuda
	}
	return []GradingOption{OptionConsolidado, OptionEnProceso, OptionIniciado, fourth}
}

// ValidOption reports whether the option belongs to the level's scale.
func (l AcademicLevel) ValidOption(opt GradingOption) bool {
	for _, o := range l.Options() {
		if o == opt {
			return true
		}
	}
	return false
}

// MarkKey builds the indicator-mark map key for a section/indicator pair.
func MarkKey(sectionIdx, indicatorIdx int) string {
	return fmt.Sprintf("%d-%d", sectionIdx, indicatorIdx)
}

// ParseMarkKey splits a mark key back into its indices. The second return
// value is false when the key is malformed.
func ParseMarkKey(key string) (sectionIdx, indicatorIdx int, ok bool) {
	if _, err := fmt.Sscanf(key, "%d-%d", &sectionIdx, &indicatorIdx); err != nil {
		return 0, 0, false
	}
	if sectionIdx < 0 || indicatorIdx < 0 {
		return 0, 0, false
	}
	return sectionIdx, indicatorIdx, true
}

// LapsoSnapshot is the grading-period state captured inside a payload at
// save time. It is a copy, never a live reference; later edits to the
// lapso record do not change stored boletas.
type LapsoSnapshot struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	StartDate string `json:"inicio"`
	EndDate   string `json:"fin"`
}

// AttendanceCounts is the raw per-category aggregate from the attendance
// records of one (student, lapso) pair.
type AttendanceCounts struct {
	Present         int `db:"present" json:"present"`
	Late            int `db:"late" json:"late"`
	Absent          int `db:"absent" json:"absent"`
	JustifiedAbsent int `db:"justified_absent" json:"justified_absent"`
}

// AttendanceSnapshot is the reconciled attendance block stored in a payload.
type AttendanceSnapshot struct {
	Present         int     `json:"asistencias"`
	Late            int     `json:"retardos"`
	Absent          int     `json:"inasistencias"`
	JustifiedAbsent int     `json:"inasistenciasJustificadas"`
	Attended        int     `json:"diasAsistidos"`
	NotAttended     int     `json:"diasNoAsistidos"`
	Total           int     `json:"totalDias"`
	AttendanceRate  float64 `json:"porcentajeAsistencia"`
	AbsenceRate     float64 `json:"porcentajeInasistencia"`
}

// SecondaryTeacher identifies the optional auxiliary teacher printed on
// primary-grade boletas.
type SecondaryTeacher struct {
	Name     string `json:"nombre"`
	IDPrefix string `json:"cedulaPrefijo"`
	IDNumber string `json:"cedulaNumero"`
}

// BoletaPayload is the full JSON document embedded in a certificate's
// content field.
type BoletaPayload struct {
	Level AcademicLevel `json:"nivel"`
	Lapso LapsoSnapshot `json:"lapso"`
	Shift string        `json:"turno"`

	// Marks are keyed "{sectionIdx}-{indicatorIdx}". A missing key means
	// no evidence was recorded and renders as a blank cell.
	Marks map[string]GradingOption `json:"indicadores"`

	// SectionRecommendations holds per-section free text, keyed by section
	// index (early-childhood only).
	SectionRecommendations map[int]string `json:"recomendaciones,omitempty"`

	// Early-childhood level-wide free text.
	PerformanceFeatures string `json:"rasgos,omitempty"`

	// Primary level-wide free text.
	WorkHabits             string            `json:"habitosTrabajo,omitempty"`
	TeacherRecommendations string            `json:"recomendacionesDocente,omitempty"`
	SecondaryTeacher       *SecondaryTeacher `json:"docenteAuxiliar,omitempty"`

	// Manual attendance strings are display-only overrides. They never
	// feed the attendance formulas.
	ManualAttendance string `json:"asistenciasManual,omitempty"`
	ManualAbsences   string `json:"inasistenciasManual,omitempty"`

	// DiasHabiles is the stored business-day override. Kept as a string
	// because the legacy data holds both numbers and free text.
	DiasHabiles string `json:"diasHabiles,omitempty"`

	Attendance AttendanceSnapshot `json:"asistencia"`

	SchoolName string `json:"plantel"`

	// CreatorID records the original author. Once set it is preserved
	// across subsequent edits by other users.
	CreatorID string `json:"creadorId"`
}

// Empty reports whether the payload carries no meaningful data, which is
// the recovery value after a decode failure.
func (p *BoletaPayload) Empty() bool {
	return p == nil || (p.Level == "" && len(p.Marks) == 0 && p.CreatorID == "")
}
