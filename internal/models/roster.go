package models

// Student is the roster row consulted when composing a boleta.
type Student struct {
	ID          string  `db:"id" json:"id"`
	FullName    string  `db:"full_name" json:"full_name"`
	ClassroomID *string `db:"classroom_id" json:"classroom_id,omitempty"`
	ParentID    *string `db:"parent_id" json:"parent_id,omitempty"`
	SchoolID    string  `db:"school_id" json:"school_id"`
}

// Classroom is the salón a student is enrolled in. DisplayName drives the
// academic-level classification.
type Classroom struct {
	ID          string  `db:"id" json:"id"`
	DisplayName string  `db:"display_name" json:"display_name"`
	TeacherID   *string `db:"teacher_id" json:"teacher_id,omitempty"`
	Shift       string  `db:"shift" json:"shift"`
}

// SupplementaryInfo carries the display names fetched purely for
// rendering. Every field degrades independently to a placeholder.
type SupplementaryInfo struct {
	StudentName   string `json:"student_name"`
	ClassroomName string `json:"classroom_name"`
	TeacherName   string `json:"teacher_name"`
	ParentName    string `json:"parent_name"`
}
