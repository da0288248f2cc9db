package models

// BlockType identifies a fragment of a printable boleta page.
type BlockType string

const (
	BlockHeader           BlockType = "header"
	BlockStudentInfo      BlockType = "student_info"
	BlockAttendanceLine   BlockType = "attendance_line"
	BlockSectionTable     BlockType = "section_table"
	BlockFreeText         BlockType = "free_text"
	BlockSecondaryTeacher BlockType = "secondary_teacher"
	BlockSignatures       BlockType = "signatures"
)

// HeaderBlock opens a printed boleta.
type HeaderBlock struct {
	SchoolName string `json:"school_name"`
	Title      string `json:"title"`
	Level      string `json:"level"`
	LapsoName  string `json:"lapso_name"`
	Shift      string `json:"shift"`
}

// StudentInfoBlock carries identity plus the attendance box printed on
// early-childhood page one.
type StudentInfoBlock struct {
	StudentName   string             `json:"student_name"`
	ClassroomName string             `json:"classroom_name"`
	TeacherName   string             `json:"teacher_name"`
	ParentName    string             `json:"parent_name"`
	Attendance    AttendanceSnapshot `json:"attendance"`
	// Manual strings are rendered verbatim when present; they are never
	// reconciled with the snapshot.
	ManualAttendance string `json:"manual_attendance,omitempty"`
	ManualAbsences   string `json:"manual_absences,omitempty"`
	DiasHabiles      string `json:"dias_habiles,omitempty"`
}

// AttendanceLineBlock is the one-line attendance summary on primary pages.
type AttendanceLineBlock struct {
	Attendance       AttendanceSnapshot `json:"attendance"`
	ManualAttendance string             `json:"manual_attendance,omitempty"`
	ManualAbsences   string             `json:"manual_absences,omitempty"`
}

// IndicatorRow is a single printed rubric row.
type IndicatorRow struct {
	Text string        `json:"text"`
	Mark GradingOption `json:"mark,omitempty"`
}

// SectionTableBlock is one rubric table. Columns lists the printed column
// labels in order; only the first MarkableColumns ever receive a check.
type SectionTableBlock struct {
	Title           string          `json:"title"`
	Columns         []string        `json:"columns"`
	MarkableColumns int             `json:"markable_columns"`
	Rows            []IndicatorRow  `json:"rows"`
	Options         []GradingOption `json:"options"`
}

// ColumnIndex maps a mark to its printed column, or -1 when the mark does
// not occupy a markable column (blank cell, or the always-empty C.A.
// column on primary tables).
func (b *SectionTableBlock) ColumnIndex(mark GradingOption) int {
	if mark == "" {
		return -1
	}
	for i, opt := range b.Options {
		if opt == mark {
			if i >= b.MarkableColumns {
				return -1
			}
			return i
		}
	}
	return -1
}

// FreeTextBlock is a titled free-text area.
type FreeTextBlock struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// SecondaryTeacherBlock prints the auxiliary teacher identity.
type SecondaryTeacherBlock struct {
	Name     string `json:"name"`
	IDPrefix string `json:"id_prefix"`
	IDNumber string `json:"id_number"`
}

// SignatureBlock closes a boleta.
type SignatureBlock struct {
	TeacherName    string `json:"teacher_name"`
	SignatoryName  string `json:"signatory_name"`
	SignatoryTitle string `json:"signatory_title"`
	ParentName     string `json:"parent_name"`
}

// PageBlock is a tagged union of printable fragments.
type PageBlock struct {
	Type             BlockType              `json:"type"`
	Header           *HeaderBlock           `json:"header,omitempty"`
	StudentInfo      *StudentInfoBlock      `json:"student_info,omitempty"`
	AttendanceLine   *AttendanceLineBlock   `json:"attendance_line,omitempty"`
	Section          *SectionTableBlock     `json:"section,omitempty"`
	FreeText         *FreeTextBlock         `json:"free_text,omitempty"`
	SecondaryTeacher *SecondaryTeacherBlock `json:"secondary_teacher,omitempty"`
	Signatures       *SignatureBlock        `json:"signatures,omitempty"`
}

// BoletaPage is one physical page of the composed document.
type BoletaPage struct {
	Number int         `json:"number"`
	Blocks []PageBlock `json:"blocks"`
}

// BoletaDocument is the layout-ready document model consumed by the print
// surface.
type BoletaDocument struct {
	Level  AcademicLevel     `json:"level"`
	Status CertificateStatus `json:"status"`
	Pages  []BoletaPage      `json:"pages"`
}
