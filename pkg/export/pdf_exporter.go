package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/boleta-api/internal/models"
)

// PDFExporter renders a composed boleta document, one gofpdf page per
// document page.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render walks the document blocks in order and lays them out on A4
// portrait pages.
func (e *PDFExporter) Render(doc *models.BoletaDocument) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("pdf requires at least one page")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 14, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, block := range page.Blocks {
			switch block.Type {
			case models.BlockHeader:
				e.renderHeader(pdf, tr, block.Header)
			case models.BlockStudentInfo:
				e.renderStudentInfo(pdf, tr, block.StudentInfo)
			case models.BlockAttendanceLine:
				e.renderAttendanceLine(pdf, tr, block.AttendanceLine)
			case models.BlockSectionTable:
				e.renderSection(pdf, tr, block.Section)
			case models.BlockFreeText:
				e.renderFreeText(pdf, tr, block.FreeText)
			case models.BlockSecondaryTeacher:
				e.renderSecondaryTeacher(pdf, tr, block.SecondaryTeacher)
			case models.BlockSignatures:
				e.renderSignatures(pdf, tr, block.Signatures)
			}
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) renderHeader(pdf *gofpdf.Fpdf, tr func(string) string, h *models.HeaderBlock) {
	if h == nil {
		return
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, tr(strings.ToUpper(h.SchoolName)), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, tr(h.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	line := fmt.Sprintf("%s - %s", h.Level, h.LapsoName)
	if h.Shift != "" {
		line = fmt.Sprintf("%s - Turno %s", line, h.Shift)
	}
	pdf.CellFormat(0, 6, tr(line), "", 1, "C", false, 0, "")
	pdf.Ln(3)
}

func (e *PDFExporter) renderStudentInfo(pdf *gofpdf.Fpdf, tr func(string) string, b *models.StudentInfoBlock) {
	if b == nil {
		return
	}
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr("Alumno(a): "+b.StudentName), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, tr("Salón: "+b.ClassroomName), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, tr("Docente: "+b.TeacherName), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, tr("Representante: "+b.ParentName), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, tr(e.attendanceLine(b.Attendance, b.ManualAttendance, b.ManualAbsences, b.DiasHabiles)), "", 1, "", false, 0, "")
	pdf.Ln(2)
}

func (e *PDFExporter) renderAttendanceLine(pdf *gofpdf.Fpdf, tr func(string) string, b *models.AttendanceLineBlock) {
	if b == nil {
		return
	}
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(e.attendanceLine(b.Attendance, b.ManualAttendance, b.ManualAbsences, "")), "", 1, "", false, 0, "")
	pdf.Ln(2)
}

func (e *PDFExporter) attendanceLine(a models.AttendanceSnapshot, manualAttendance, manualAbsences, diasHabiles string) string {
	attended := fmt.Sprintf("%d", a.Attended)
	absent := fmt.Sprintf("%d", a.NotAttended)
	// Manual strings print verbatim when the editor filled them in.
	if manualAttendance != "" {
		attended = manualAttendance
	}
	if manualAbsences != "" {
		absent = manualAbsences
	}
	line := fmt.Sprintf("Asistencias: %s   Inasistencias: %s", attended, absent)
	if diasHabiles != "" {
		line = fmt.Sprintf("%s   Días hábiles: %s", line, diasHabiles)
	}
	return line
}

func (e *PDFExporter) renderSection(pdf *gofpdf.Fpdf, tr func(string) string, b *models.SectionTableBlock) {
	if b == nil {
		return
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 7, tr(b.Title), "", 1, "L", false, 0, "")

	const indicatorWidth = 96.0
	optionWidth := (186.0 - indicatorWidth) / float64(len(b.Columns))

	pdf.SetFont("Arial", "B", 7)
	pdf.CellFormat(indicatorWidth, 10, tr("Indicadores"), "1", 0, "C", false, 0, "")
	for _, column := range b.Columns {
		pdf.CellFormat(optionWidth, 10, tr(column), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range b.Rows {
		marked := b.ColumnIndex(row.Mark)
		pdf.CellFormat(indicatorWidth, 7, tr(row.Text), "1", 0, "", false, 0, "")
		for i := range b.Columns {
			cell := ""
			if i == marked {
				cell = "X"
			}
			pdf.CellFormat(optionWidth, 7, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}

func (e *PDFExporter) renderFreeText(pdf *gofpdf.Fpdf, tr func(string) string, b *models.FreeTextBlock) {
	if b == nil {
		return
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 7, tr(b.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, tr(b.Text), "1", "L", false)
	pdf.Ln(3)
}

func (e *PDFExporter) renderSecondaryTeacher(pdf *gofpdf.Fpdf, tr func(string) string, b *models.SecondaryTeacherBlock) {
	if b == nil {
		return
	}
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Docente Auxiliar: %s  C.I. %s-%s", b.Name, b.IDPrefix, b.IDNumber)), "", 1, "", false, 0, "")
	pdf.Ln(2)
}

func (e *PDFExporter) renderSignatures(pdf *gofpdf.Fpdf, tr func(string) string, b *models.SignatureBlock) {
	if b == nil {
		return
	}
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 9)
	width := 62.0
	names := []string{b.TeacherName, b.SignatoryName, b.ParentName}
	titles := []string{"Docente", b.SignatoryTitle, "Representante"}
	for _, name := range names {
		pdf.CellFormat(width, 5, tr(name), "T", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	for _, title := range titles {
		pdf.CellFormat(width, 5, tr(title), "", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}
