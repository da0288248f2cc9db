package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/boleta-api/internal/models"
	"github.com/noah-isme/boleta-api/internal/rubric"
)

func testInfo() models.SupplementaryInfo {
	return models.SupplementaryInfo{
		StudentName:   "Ana Gómez",
		ClassroomName: "Sala 2 Grupo A",
		TeacherName:   "Carmen Díaz",
		ParentName:    "Luis Gómez",
	}
}

func TestPaginateEarlyChildhoodExactlyTwoPages(t *testing.T) {
	for _, level := range []models.AcademicLevel{models.LevelSala1, models.LevelSala2, models.LevelSala3} {
		payload := &models.BoletaPayload{
			Level:                  level,
			PerformanceFeatures:    "Rasgos",
			SectionRecommendations: map[int]string{1: "Recomendación"},
		}
		doc, err := Paginate(payload, testInfo(), "Dir. Rodríguez", "Directora")
		require.NoError(t, err, string(level))
		require.Len(t, doc.Pages, 2, string(level))

		pageOne := doc.Pages[0]
		require.Len(t, pageOne.Blocks, 4)
		assert.Equal(t, models.BlockHeader, pageOne.Blocks[0].Type)
		assert.Equal(t, models.BlockStudentInfo, pageOne.Blocks[1].Type)
		assert.Equal(t, models.BlockSectionTable, pageOne.Blocks[2].Type)
		assert.Equal(t, models.BlockFreeText, pageOne.Blocks[3].Type)
		assert.Equal(t, "Rasgos", pageOne.Blocks[3].FreeText.Text)

		pageTwo := doc.Pages[1]
		require.Len(t, pageTwo.Blocks, 3)
		assert.Equal(t, models.BlockSectionTable, pageTwo.Blocks[0].Type)
		assert.Equal(t, models.BlockFreeText, pageTwo.Blocks[1].Type)
		assert.Equal(t, "Recomendación", pageTwo.Blocks[1].FreeText.Text)
		assert.Equal(t, models.BlockSignatures, pageTwo.Blocks[2].Type)
	}
}

func TestPaginatePrimarySinglePageWithAllSections(t *testing.T) {
	for _, level := range models.AllLevels() {
		if !level.IsPrimary() {
			continue
		}
		payload := &models.BoletaPayload{
			Level:      level,
			WorkHabits: "Orden",
			SecondaryTeacher: &models.SecondaryTeacher{
				Name: "María Pérez", IDPrefix: "V", IDNumber: "12345678",
			},
		}
		doc, err := Paginate(payload, testInfo(), "Dir. Rodríguez", "Directora")
		require.NoError(t, err, string(level))
		require.Len(t, doc.Pages, 1, string(level))

		entry, ok := rubric.Lookup(level)
		require.True(t, ok)
		sections := 0
		for _, block := range doc.Pages[0].Blocks {
			if block.Type == models.BlockSectionTable {
				sections++
			}
		}
		assert.Equal(t, len(entry.Sections), sections, string(level))
	}
}

func TestPaginatePrimaryCAColumnNeverMarkable(t *testing.T) {
	payload := &models.BoletaPayload{
		Level: models.LevelSegundoGrado,
		Marks: map[string]models.GradingOption{
			"0-0": models.OptionConsolidado,
			"0-1": models.OptionConAyuda,
		},
	}
	doc, err := Paginate(payload, testInfo(), "", "")
	require.NoError(t, err)

	var table *models.SectionTableBlock
	for _, block := range doc.Pages[0].Blocks {
		if block.Type == models.BlockSectionTable {
			table = block.Section
			break
		}
	}
	require.NotNil(t, table)
	assert.Equal(t, "C.A.", table.Columns[3])
	assert.Equal(t, 3, table.MarkableColumns)
	assert.Equal(t, 0, table.ColumnIndex(models.OptionConsolidado))
	// A "Con Ayuda" mark is retained in the data but occupies no printed
	// column.
	assert.Equal(t, models.OptionConAyuda, table.Rows[1].Mark)
	assert.Equal(t, -1, table.ColumnIndex(models.OptionConAyuda))
}

func TestPaginateEarlyAllColumnsMarkable(t *testing.T) {
	payload := &models.BoletaPayload{Level: models.LevelSala1}
	doc, err := Paginate(payload, testInfo(), "", "")
	require.NoError(t, err)

	table := doc.Pages[0].Blocks[2].Section
	require.NotNil(t, table)
	assert.Equal(t, 4, table.MarkableColumns)
	assert.Equal(t, 3, table.ColumnIndex(models.OptionSinEvidencias))
}

func TestPaginateIgnoresOutOfRangeMarks(t *testing.T) {
	payload := &models.BoletaPayload{
		Level: models.LevelSala1,
		Marks: map[string]models.GradingOption{
			"7-9": models.OptionConsolidado,
			"0-0": models.OptionIniciado,
		},
	}
	doc, err := Paginate(payload, testInfo(), "", "")
	require.NoError(t, err)

	table := doc.Pages[0].Blocks[2].Section
	assert.Equal(t, models.OptionIniciado, table.Rows[0].Mark)
	for _, row := range table.Rows[1:] {
		assert.Empty(t, row.Mark)
	}
}

func TestPaginateUnknownLevel(t *testing.T) {
	payload := &models.BoletaPayload{Level: models.AcademicLevel("Aula Roja")}
	_, err := Paginate(payload, testInfo(), "", "")
	assert.Error(t, err)
}

func TestPaginateBlankMarksStayBlank(t *testing.T) {
	// Absence of a mark renders as a blank cell, never inferred.
	payload := &models.BoletaPayload{Level: models.LevelSextoGrado}
	doc, err := Paginate(payload, testInfo(), "", "")
	require.NoError(t, err)
	for _, block := range doc.Pages[0].Blocks {
		if block.Type != models.BlockSectionTable {
			continue
		}
		for _, row := range block.Section.Rows {
			assert.Empty(t, row.Mark)
		}
	}
}
