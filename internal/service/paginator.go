package service

import (
	"fmt"

	"github.com/noah-isme/boleta-api/internal/models"
	"github.com/noah-isme/boleta-api/internal/rubric"

	appErrors "github.com/noah-isme/boleta-api/pkg/errors"
)

// Free-text titles as printed.
const (
	titlePerformanceFeatures    = "Rasgos Relevantes de la Actuación del Niño o Niña"
	titleSectionRecommendations = "Recomendaciones"
	titleWorkHabits             = "Hábitos de Trabajo"
	titleTeacherRecommendations = "Recomendaciones del Docente"
	documentTitle               = "Boleta Informativa"
)

// caColumnLabel is the printed header of the fourth primary column. The
// editing rubric offers four options, but the primary print table marks
// only the first three; this column stays blank as observed in the
// legacy layouts.
const caColumnLabel = "C.A."

// Paginate splits a composed payload into physical pages. The split is a
// hard layout contract per level family: early-childhood always yields
// exactly two pages over the catalog's two sections, primary always
// yields a single page with every section. A catalog entry that violates
// the family's section count is an explicit error, never a silent
// adaptation.
func Paginate(payload *models.BoletaPayload, info models.SupplementaryInfo, signatoryName, signatoryTitle string) (*models.BoletaDocument, error) {
	entry, ok := rubric.Lookup(payload.Level)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no hay rúbrica para el nivel %q", payload.Level))
	}

	if payload.Level.IsPrimary() {
		return paginatePrimary(payload, entry, info, signatoryName, signatoryTitle)
	}
	return paginateEarly(payload, entry, info, signatoryName, signatoryTitle)
}

func paginateEarly(payload *models.BoletaPayload, entry *rubric.Entry, info models.SupplementaryInfo, signatoryName, signatoryTitle string) (*models.BoletaDocument, error) {
	if len(entry.Sections) != 2 {
		return nil, appErrors.Clone(appErrors.ErrLayoutContract,
			fmt.Sprintf("el nivel %q tiene %d secciones, el formato inicial requiere 2", payload.Level, len(entry.Sections)))
	}

	pageOne := models.BoletaPage{
		Number: 1,
		Blocks: []models.PageBlock{
			headerBlock(payload),
			{
				Type: models.BlockStudentInfo,
				StudentInfo: &models.StudentInfoBlock{
					StudentName:      info.StudentName,
					ClassroomName:    info.ClassroomName,
					TeacherName:      info.TeacherName,
					ParentName:       info.ParentName,
					Attendance:       payload.Attendance,
					ManualAttendance: payload.ManualAttendance,
					ManualAbsences:   payload.ManualAbsences,
					DiasHabiles:      payload.DiasHabiles,
				},
			},
			sectionBlock(payload, entry, 0),
			{
				Type:     models.BlockFreeText,
				FreeText: &models.FreeTextBlock{Title: titlePerformanceFeatures, Text: payload.PerformanceFeatures},
			},
		},
	}

	pageTwo := models.BoletaPage{
		Number: 2,
		Blocks: []models.PageBlock{
			sectionBlock(payload, entry, 1),
		},
	}
	for idx, section := range entry.Sections {
		if section.HasRecommendations {
			pageTwo.Blocks = append(pageTwo.Blocks, models.PageBlock{
				Type:     models.BlockFreeText,
				FreeText: &models.FreeTextBlock{Title: titleSectionRecommendations, Text: payload.SectionRecommendations[idx]},
			})
		}
	}
	pageTwo.Blocks = append(pageTwo.Blocks, signatureBlock(info, signatoryName, signatoryTitle))

	return &models.BoletaDocument{
		Level: payload.Level,
		Pages: []models.BoletaPage{pageOne, pageTwo},
	}, nil
}

func paginatePrimary(payload *models.BoletaPayload, entry *rubric.Entry, info models.SupplementaryInfo, signatoryName, signatoryTitle string) (*models.BoletaDocument, error) {
	if len(entry.Sections) == 0 {
		return nil, appErrors.Clone(appErrors.ErrLayoutContract,
			fmt.Sprintf("el nivel %q no tiene secciones en el catálogo", payload.Level))
	}

	page := models.BoletaPage{Number: 1}
	page.Blocks = append(page.Blocks, headerBlock(payload))
	page.Blocks = append(page.Blocks, models.PageBlock{
		Type: models.BlockAttendanceLine,
		AttendanceLine: &models.AttendanceLineBlock{
			Attendance:       payload.Attendance,
			ManualAttendance: payload.ManualAttendance,
			ManualAbsences:   payload.ManualAbsences,
		},
	})
	for idx := range entry.Sections {
		page.Blocks = append(page.Blocks, sectionBlock(payload, entry, idx))
	}
	page.Blocks = append(page.Blocks, models.PageBlock{
		Type:     models.BlockFreeText,
		FreeText: &models.FreeTextBlock{Title: titleWorkHabits, Text: payload.WorkHabits},
	})
	page.Blocks = append(page.Blocks, models.PageBlock{
		Type:     models.BlockFreeText,
		FreeText: &models.FreeTextBlock{Title: titleTeacherRecommendations, Text: payload.TeacherRecommendations},
	})
	if payload.SecondaryTeacher != nil {
		page.Blocks = append(page.Blocks, models.PageBlock{
			Type: models.BlockSecondaryTeacher,
			SecondaryTeacher: &models.SecondaryTeacherBlock{
				Name:     payload.SecondaryTeacher.Name,
				IDPrefix: payload.SecondaryTeacher.IDPrefix,
				IDNumber: payload.SecondaryTeacher.IDNumber,
			},
		})
	}
	page.Blocks = append(page.Blocks, signatureBlock(info, signatoryName, signatoryTitle))

	return &models.BoletaDocument{
		Level: payload.Level,
		Pages: []models.BoletaPage{page},
	}, nil
}

func headerBlock(payload *models.BoletaPayload) models.PageBlock {
	return models.PageBlock{
		Type: models.BlockHeader,
		Header: &models.HeaderBlock{
			SchoolName: payload.SchoolName,
			Title:      documentTitle,
			Level:      string(payload.Level),
			LapsoName:  payload.Lapso.Name,
			Shift:      payload.Shift,
		},
	}
}

// sectionBlock builds one printed rubric table. Marks whose key points
// outside the catalog entry are skipped silently.
func sectionBlock(payload *models.BoletaPayload, entry *rubric.Entry, sectionIdx int) models.PageBlock {
	section := entry.Sections[sectionIdx]
	options := payload.Level.Options()

	columns := make([]string, len(options))
	for i, opt := range options {
		columns[i] = string(opt)
	}
	markable := len(options)
	if payload.Level.IsPrimary() {
		columns[len(columns)-1] = caColumnLabel
		markable = len(options) - 1
	}

	rows := make([]models.IndicatorRow, len(section.Indicators))
	for i, indicator := range section.Indicators {
		row := models.IndicatorRow{Text: indicator.Text}
		if mark, ok := payload.Marks[models.MarkKey(sectionIdx, i)]; ok {
			row.Mark = mark
		}
		rows[i] = row
	}

	return models.PageBlock{
		Type: models.BlockSectionTable,
		Section: &models.SectionTableBlock{
			Title:           section.Title,
			Columns:         columns,
			MarkableColumns: markable,
			Rows:            rows,
			Options:         options,
		},
	}
}

func signatureBlock(info models.SupplementaryInfo, signatoryName, signatoryTitle string) models.PageBlock {
	return models.PageBlock{
		Type: models.BlockSignatures,
		Signatures: &models.SignatureBlock{
			TeacherName:    info.TeacherName,
			SignatoryName:  signatoryName,
			SignatoryTitle: signatoryTitle,
			ParentName:     info.ParentName,
		},
	}
}
