package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRenderStartsWithBOM(t *testing.T) {
	out, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"student_name", "level"},
		Rows: []map[string]string{
			{"student_name": "Ana Pérez", "level": "Sala 2"},
		},
	})
	require.NoError(t, err)

	require.True(t, len(out) > 3)
	assert.Equal(t, utf8BOM, out[:3])
	assert.Contains(t, string(out), "student_name,level")
	assert.Contains(t, string(out), "Ana Pérez,Sala 2")
}

func TestCSVExporterRenderFillsMissingCells(t *testing.T) {
	out, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"student_id", "status"},
		Rows:    []map[string]string{{"student_id": "student-1"}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "student-1,")
}

func TestCSVExporterRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}
