package models

import (
	"time"

	"github.com/lib/pq"
)

// AssignmentType enumerates the kinds of gradable work.
type AssignmentType string

const (
	AssignmentTypeTest      AssignmentType = "test"
	AssignmentTypeQuiz      AssignmentType = "quiz"
	AssignmentTypeHomework  AssignmentType = "homework"
	AssignmentTypeProject   AssignmentType = "project"
	AssignmentTypeExam      AssignmentType = "exam"
	AssignmentTypeClasswork AssignmentType = "classwork"
)

// Valid returns true when the type is supported.
func (t AssignmentType) Valid() bool {
	switch t {
	case AssignmentTypeTest, AssignmentTypeQuiz, AssignmentTypeHomework, AssignmentTypeProject, AssignmentTypeExam, AssignmentTypeClasswork:
		return true
	default:
		return false
	}
}

// AssignmentCategory classifies the assessment purpose.
type AssignmentCategory string

const (
	AssignmentCategoryFormative  AssignmentCategory = "formative"
	AssignmentCategorySummative  AssignmentCategory = "summative"
	AssignmentCategoryDiagnostic AssignmentCategory = "diagnostic"
)

// Valid returns true when the category is supported.
func (c AssignmentCategory) Valid() bool {
	switch c {
	case AssignmentCategoryFormative, AssignmentCategorySummative, AssignmentCategoryDiagnostic:
		return true
	default:
		return false
	}
}

// Default policy values applied when a teacher omits them.
const (
	DefaultAllowLateSubmission = true
	DefaultLatePenalty         = 0
	DefaultAllowResubmission   = false
	DefaultMaxResubmissions    = 0
	DefaultIsGroupAssignment   = false
	DefaultGroupSize           = 2
)

// Assignment is a gradable unit of work owned by a single teacher.
type Assignment struct {
	ID                  string             `db:"id" json:"id"`
	Title               string             `db:"title" json:"title"`
	Description         *string            `db:"description" json:"description,omitempty"`
	SubjectID           string             `db:"subject_id" json:"subject_id"`
	ClassID             string             `db:"class_id" json:"class_id"`
	TermID              string             `db:"term_id" json:"term_id"`
	TeacherID           string             `db:"teacher_id" json:"teacher_id"`
	DueDate             time.Time          `db:"due_date" json:"due_date"`
	MaxScore            float64            `db:"max_score" json:"max_score"`
	Weight              float64            `db:"weight" json:"weight"`
	Type                AssignmentType     `db:"type" json:"type"`
	Category            AssignmentCategory `db:"category" json:"category"`
	AllowLateSubmission bool               `db:"allow_late_submission" json:"allow_late_submission"`
	LatePenalty         float64            `db:"late_penalty" json:"late_penalty"`
	AllowResubmission   bool               `db:"allow_resubmission" json:"allow_resubmission"`
	MaxResubmissions    int                `db:"max_resubmissions" json:"max_resubmissions"`
	IsGroupAssignment   bool               `db:"is_group_assignment" json:"is_group_assignment"`
	GroupSize           int                `db:"group_size" json:"group_size"`
	Instructions        *string            `db:"instructions" json:"instructions,omitempty"`
	LearningObjectives  pq.StringArray     `db:"learning_objectives" json:"learning_objectives"`
	Tags                pq.StringArray     `db:"tags" json:"tags"`
	CreatedAt           time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `db:"updated_at" json:"updated_at"`
}

// AssignmentDetail joins display names of the scoped subject, class and term.
type AssignmentDetail struct {
	Assignment
	SubjectName string `db:"subject_name" json:"subject_name"`
	ClassName   string `db:"class_name" json:"class_name"`
	TermName    string `db:"term_name" json:"term_name"`
}

// AssignmentFilter scopes assignment listings. TeacherID is always set by the service.
type AssignmentFilter struct {
	TeacherID string
	ClassID   string
	SubjectID string
	TermID    string
}
