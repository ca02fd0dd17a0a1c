package dto

import "github.com/noah-isme/sma-gradebook-api/internal/models"

// GradeEntry is one student's score inside a batch submission.
type GradeEntry struct {
	StudentID string  `json:"student_id" validate:"required"`
	Score     float64 `json:"score" validate:"gte=0"`
	Comments  *string `json:"comments"`
	Feedback  *string `json:"feedback"`
	IsLate    bool    `json:"is_late"`
}

// SubmitGradesRequest is the payload for POST /grades.
type SubmitGradesRequest struct {
	AssignmentID string       `json:"assignment_id" validate:"required"`
	SubjectID    string       `json:"subject_id" validate:"required"`
	ClassID      string       `json:"class_id" validate:"required"`
	TermID       string       `json:"term_id" validate:"required"`
	Grades       []GradeEntry `json:"grades" validate:"required,min=1,dive"`
}

// GradeSubmissionFailure reports an entry that could not be applied.
type GradeSubmissionFailure struct {
	StudentID string `json:"student_id"`
	Reason    string `json:"reason"`
}

// GradeSubmissionResult is the per-entry outcome of a batch submission. Entries are
// applied independently so Records and Failures may both be non-empty.
type GradeSubmissionResult struct {
	Records  []models.AcademicRecordDetail `json:"records"`
	Failures []GradeSubmissionFailure      `json:"failures,omitempty"`
}

// UpdateGradeRequest is the payload for PUT /grades/:id.
type UpdateGradeRequest struct {
	Score    *float64 `json:"score" validate:"omitempty,gte=0"`
	Comments *string  `json:"comments"`
	Feedback *string  `json:"feedback"`
	IsLate   *bool    `json:"is_late"`
}

// PublishGradesRequest toggles visibility of an assignment's grades.
type PublishGradesRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
}

// PublishGradesResult reports how many records changed state.
type PublishGradesResult struct {
	AssignmentID string `json:"assignment_id"`
	Published    bool   `json:"published"`
	Affected     int64  `json:"affected"`
}

// GradeListQuery filters GET /grades.
type GradeListQuery struct {
	ClassID      string `form:"classId"`
	SubjectID    string `form:"subjectId"`
	TermID       string `form:"termId"`
	AssignmentID string `form:"assignmentId"`
}
