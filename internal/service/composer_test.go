package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/boleta-api/internal/models"
)

func TestComposeSelectsFamilyFreeText(t *testing.T) {
	early := Compose(ComposeInput{
		Level:                  models.LevelSala2,
		PerformanceFeatures:    "Rasgos del niño",
		WorkHabits:             "debe quedar vacío",
		TeacherRecommendations: "debe quedar vacío",
		SectionRecommendations: map[int]string{1: "Reforzar motricidad fina"},
		EditorID:               "user-1",
	})
	assert.Equal(t, "Rasgos del niño", early.PerformanceFeatures)
	assert.Empty(t, early.WorkHabits)
	assert.Empty(t, early.TeacherRecommendations)
	assert.Equal(t, "Reforzar motricidad fina", early.SectionRecommendations[1])

	primary := Compose(ComposeInput{
		Level:                  models.LevelTercerGrado,
		PerformanceFeatures:    "debe quedar vacío",
		WorkHabits:             "Trabaja con orden",
		TeacherRecommendations: "Leer a diario",
		SectionRecommendations: map[int]string{0: "debe quedar vacío"},
		EditorID:               "user-1",
	})
	assert.Empty(t, primary.PerformanceFeatures)
	assert.Empty(t, primary.SectionRecommendations)
	assert.Equal(t, "Trabaja con orden", primary.WorkHabits)
	assert.Equal(t, "Leer a diario", primary.TeacherRecommendations)
}

func TestComposeClampsFreeTextAt250(t *testing.T) {
	long := strings.Repeat("á", 300)
	got := Compose(ComposeInput{Level: models.LevelQuintoGrado, WorkHabits: long, EditorID: "u"})
	assert.Equal(t, 250, len([]rune(got.WorkHabits)))
}

func TestComposePreservesCreatorOnEdit(t *testing.T) {
	previous := &models.BoletaPayload{CreatorID: "original-author"}
	got := Compose(ComposeInput{Level: models.LevelSala1, EditorID: "later-editor", Previous: previous})
	assert.Equal(t, "original-author", got.CreatorID)
}

func TestComposeSetsCreatorOnFirstSave(t *testing.T) {
	got := Compose(ComposeInput{Level: models.LevelSala1, EditorID: "first-author"})
	assert.Equal(t, "first-author", got.CreatorID)
}

func TestComposeCopiesLapsoByValue(t *testing.T) {
	lapso := models.LapsoSnapshot{ID: "l1", Name: "Primer Lapso", StartDate: "2024-09-16", EndDate: "2024-12-13"}
	got := Compose(ComposeInput{Level: models.LevelSala1, Lapso: lapso, EditorID: "u"})
	lapso.Name = "changed after compose"
	assert.Equal(t, "Primer Lapso", got.Lapso.Name)
}

func TestComposeSecondaryTeacherOnlyForPrimary(t *testing.T) {
	st := &models.SecondaryTeacher{Name: "María Pérez", IDPrefix: "V", IDNumber: "12345678"}

	primary := Compose(ComposeInput{Level: models.LevelSextoGrado, SecondaryTeacher: st, EditorID: "u"})
	require.NotNil(t, primary.SecondaryTeacher)
	assert.Equal(t, "María Pérez", primary.SecondaryTeacher.Name)

	early := Compose(ComposeInput{Level: models.LevelSala3, SecondaryTeacher: st, EditorID: "u"})
	assert.Nil(t, early.SecondaryTeacher)
}

func TestMigrateLegacyMarksRewritesPrimaryOnly(t *testing.T) {
	marks := map[string]models.GradingOption{
		"0-0": models.OptionSinEvidencias,
		"0-1": models.OptionConsolidado,
	}

	migrated := MigrateLegacyMarks(models.LevelSegundoGrado, marks)
	assert.Equal(t, models.OptionConAyuda, migrated["0-0"])
	assert.Equal(t, models.OptionConsolidado, migrated["0-1"])

	// Idempotent.
	twice := MigrateLegacyMarks(models.LevelSegundoGrado, migrated)
	assert.Equal(t, migrated, twice)

	// Never applied to early-childhood levels.
	early := MigrateLegacyMarks(models.LevelSala2, marks)
	assert.Equal(t, models.OptionSinEvidencias, early["0-0"])
}

func TestComposeAppliesMigrationOnlyWhenEditingLoadedPayload(t *testing.T) {
	marks := map[string]models.GradingOption{"0-0": models.OptionSinEvidencias}

	fresh := Compose(ComposeInput{Level: models.LevelPrimerGrado, Marks: marks, EditorID: "u"})
	assert.Equal(t, models.OptionSinEvidencias, fresh.Marks["0-0"])

	edited := Compose(ComposeInput{
		Level:    models.LevelPrimerGrado,
		Marks:    marks,
		EditorID: "u",
		Previous: &models.BoletaPayload{CreatorID: "u"},
	})
	assert.Equal(t, models.OptionConAyuda, edited.Marks["0-0"])
}
