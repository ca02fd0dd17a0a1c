package dto

import "github.com/noah-isme/sma-gradebook-api/internal/models"

// CreateAssignmentRequest is the payload for POST /assignments. Policy fields are
// pointers so omitted values fall back to the assignment defaults.
type CreateAssignmentRequest struct {
	Title               string                    `json:"title" validate:"required,max=200"`
	Description         *string                   `json:"description"`
	SubjectID           string                    `json:"subject_id" validate:"required"`
	ClassID             string                    `json:"class_id" validate:"required"`
	TermID              string                    `json:"term_id" validate:"required"`
	DueDate             string                    `json:"due_date" validate:"required"`
	MaxScore            float64                   `json:"max_score" validate:"gt=0"`
	Weight              float64                   `json:"weight" validate:"gte=0,lte=100"`
	Type                models.AssignmentType     `json:"type" validate:"required,assignment_type"`
	Category            models.AssignmentCategory `json:"category" validate:"required,assignment_category"`
	AllowLateSubmission *bool                     `json:"allow_late_submission"`
	LatePenalty         *float64                  `json:"late_penalty" validate:"omitempty,gte=0,lte=100"`
	AllowResubmission   *bool                     `json:"allow_resubmission"`
	MaxResubmissions    *int                      `json:"max_resubmissions" validate:"omitempty,gte=0"`
	IsGroupAssignment   *bool                     `json:"is_group_assignment"`
	GroupSize           *int                      `json:"group_size" validate:"omitempty,gte=2"`
	Instructions        *string                   `json:"instructions"`
	LearningObjectives  []string                  `json:"learning_objectives"`
	Tags                []string                  `json:"tags"`
}

// UpdateAssignmentRequest is the partial payload for PUT /assignments/:id.
type UpdateAssignmentRequest struct {
	Title               *string                    `json:"title" validate:"omitempty,min=1,max=200"`
	Description         *string                    `json:"description"`
	DueDate             *string                    `json:"due_date"`
	MaxScore            *float64                   `json:"max_score" validate:"omitempty,gt=0"`
	Weight              *float64                   `json:"weight" validate:"omitempty,gte=0,lte=100"`
	Type                *models.AssignmentType     `json:"type" validate:"omitempty,assignment_type"`
	Category            *models.AssignmentCategory `json:"category" validate:"omitempty,assignment_category"`
	AllowLateSubmission *bool                      `json:"allow_late_submission"`
	LatePenalty         *float64                   `json:"late_penalty" validate:"omitempty,gte=0,lte=100"`
	AllowResubmission   *bool                      `json:"allow_resubmission"`
	MaxResubmissions    *int                       `json:"max_resubmissions" validate:"omitempty,gte=0"`
	IsGroupAssignment   *bool                      `json:"is_group_assignment"`
	GroupSize           *int                       `json:"group_size" validate:"omitempty,gte=2"`
	Instructions        *string                    `json:"instructions"`
	LearningObjectives  []string                   `json:"learning_objectives"`
	Tags                []string                   `json:"tags"`
}

// AssignmentListQuery filters GET /assignments.
type AssignmentListQuery struct {
	ClassID   string `form:"classId"`
	SubjectID string `form:"subjectId"`
	TermID    string `form:"termId"`
}
