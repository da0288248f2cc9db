package service

import (
	"github.com/noah-isme/boleta-api/internal/models"
)

// freeTextLimit caps every free-text field on the boleta.
const freeTextLimit = 250

// ComposeInput gathers everything the composer folds into a payload.
type ComposeInput struct {
	Level models.AcademicLevel
	Lapso models.LapsoSnapshot
	Shift string

	Marks map[string]models.GradingOption

	SectionRecommendations map[int]string
	PerformanceFeatures    string
	WorkHabits             string
	TeacherRecommendations string
	SecondaryTeacher       *models.SecondaryTeacher

	ManualAttendance string
	ManualAbsences   string
	DiasHabiles      string

	Attendance models.AttendanceSnapshot

	SchoolName string
	EditorID   string

	// Previous is the decoded payload when this save edits an existing
	// certificate, nil on first save.
	Previous *models.BoletaPayload
}

// Compose builds the payload stored inside a certificate. Pure function:
// it selects the free-text field set for the level family, preserves the
// original creator on edits, copies the lapso by value and applies the
// legacy mark migration for loaded primary payloads.
func Compose(in ComposeInput) models.BoletaPayload {
	marks := copyMarks(in.Marks)
	if in.Previous != nil {
		// The legacy rewrite applies only when editing a loaded payload,
		// never on first creation.
		marks = MigrateLegacyMarks(in.Level, marks)
	}

	payload := models.BoletaPayload{
		Level:            in.Level,
		Lapso:            in.Lapso,
		Shift:            in.Shift,
		Marks:            marks,
		ManualAttendance: in.ManualAttendance,
		ManualAbsences:   in.ManualAbsences,
		DiasHabiles:      in.DiasHabiles,
		Attendance:       in.Attendance,
		SchoolName:       in.SchoolName,
		CreatorID:        in.EditorID,
	}

	if in.Previous != nil && in.Previous.CreatorID != "" {
		payload.CreatorID = in.Previous.CreatorID
	}

	if in.Level.IsPrimary() {
		payload.WorkHabits = clampText(in.WorkHabits)
		payload.TeacherRecommendations = clampText(in.TeacherRecommendations)
		if in.SecondaryTeacher != nil && in.SecondaryTeacher.Name != "" {
			st := *in.SecondaryTeacher
			payload.SecondaryTeacher = &st
		}
	} else {
		payload.PerformanceFeatures = clampText(in.PerformanceFeatures)
		if len(in.SectionRecommendations) > 0 {
			recs := make(map[int]string, len(in.SectionRecommendations))
			for idx, text := range in.SectionRecommendations {
				recs[idx] = clampText(text)
			}
			payload.SectionRecommendations = recs
		}
	}

	return payload
}

// MigrateLegacyMarks rewrites the legacy early-childhood fourth label to
// the primary-family label on primary-level payloads. Idempotent, safe
// to apply on every load, and never applied to non-primary levels.
func MigrateLegacyMarks(level models.AcademicLevel, marks map[string]models.GradingOption) map[string]models.GradingOption {
	if marks == nil {
		return map[string]models.GradingOption{}
	}
	out := make(map[string]models.GradingOption, len(marks))
	for key, mark := range marks {
		if level.IsPrimary() && mark == models.OptionSinEvidencias {
			mark = models.OptionConAyuda
		}
		out[key] = mark
	}
	return out
}

func copyMarks(marks map[string]models.GradingOption) map[string]models.GradingOption {
	out := make(map[string]models.GradingOption, len(marks))
	for key, mark := range marks {
		out[key] = mark
	}
	return out
}

func clampText(text string) string {
	runes := []rune(text)
	if len(runes) <= freeTextLimit {
		return text
	}
	return string(runes[:freeTextLimit])
}
