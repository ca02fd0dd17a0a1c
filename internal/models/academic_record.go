package models

import "time"

// AcademicRecord is one student's realised grade against an assignment.
type AcademicRecord struct {
	ID                 string     `db:"id" json:"id"`
	StudentID          string     `db:"student_id" json:"student_id"`
	TeacherID          string     `db:"teacher_id" json:"teacher_id"`
	SubjectID          string     `db:"subject_id" json:"subject_id"`
	ClassID            string     `db:"class_id" json:"class_id"`
	TermID             string     `db:"term_id" json:"term_id"`
	AssignmentID       *string    `db:"assignment_id" json:"assignment_id,omitempty"`
	Score              float64    `db:"score" json:"score"`
	MaxScore           float64    `db:"max_score" json:"max_score"`
	Grade              string     `db:"grade" json:"grade"`
	Percentage         float64    `db:"percentage" json:"percentage"`
	GPA                float64    `db:"gpa" json:"gpa"`
	Comments           *string    `db:"comments" json:"comments,omitempty"`
	Feedback           *string    `db:"feedback" json:"feedback,omitempty"`
	IsLate             bool       `db:"is_late" json:"is_late"`
	LatePenaltyApplied float64    `db:"late_penalty_applied" json:"late_penalty_applied"`
	ResubmissionCount  int        `db:"resubmission_count" json:"resubmission_count"`
	IsActive           bool       `db:"is_active" json:"is_active"`
	IsPublished        bool       `db:"is_published" json:"is_published"`
	PublishedAt        *time.Time `db:"published_at" json:"published_at,omitempty"`
	GradedAt           time.Time  `db:"graded_at" json:"graded_at"`
	RecordedAt         time.Time  `db:"recorded_at" json:"recorded_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// AcademicRecordDetail enriches a record with display data of its relations.
type AcademicRecordDetail struct {
	AcademicRecord
	StudentName     string  `db:"student_name" json:"student_name"`
	StudentNIS      string  `db:"student_nis" json:"student_nis"`
	SubjectName     string  `db:"subject_name" json:"subject_name"`
	ClassName       string  `db:"class_name" json:"class_name"`
	TermName        string  `db:"term_name" json:"term_name"`
	AssignmentTitle *string `db:"assignment_title" json:"assignment_title,omitempty"`
}

// AcademicRecordKey is the identity tuple that makes two submissions the same record.
type AcademicRecordKey struct {
	StudentID    string
	AssignmentID string
	SubjectID    string
	ClassID      string
	TermID       string
}

// AcademicRecordFilter scopes record listings.
type AcademicRecordFilter struct {
	TeacherID    string
	ClassID      string
	SubjectID    string
	TermID       string
	AssignmentID string
}
