package dto

import "time"

// GradebookOverview aggregates a teacher's assignments and grading progress.
type GradebookOverview struct {
	TeacherID          string             `json:"teacher_id"`
	TotalAssignments   int                `json:"total_assignments"`
	TotalGrades        int                `json:"total_grades"`
	PendingGrades      int                `json:"pending_grades"`
	AveragePerformance float64            `json:"average_performance"`
	Classes            []ClassPerformance `json:"classes"`
	RecentAssignments  []RecentAssignment `json:"recent_assignments"`
}

// ClassPerformance summarises one class/subject the teacher is assigned to.
type ClassPerformance struct {
	ClassID         string  `json:"class_id"`
	ClassName       string  `json:"class_name"`
	SubjectID       string  `json:"subject_id"`
	SubjectName     string  `json:"subject_name"`
	StudentCount    int     `json:"student_count"`
	AssignmentCount int     `json:"assignment_count"`
	AverageScore    float64 `json:"average_score"`
}

// RecentAssignment shows grading progress of a recently created assignment.
type RecentAssignment struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	ClassID        string    `json:"class_id"`
	SubjectID      string    `json:"subject_id"`
	DueDate        time.Time `json:"due_date"`
	CreatedAt      time.Time `json:"created_at"`
	GradedStudents int       `json:"graded_students"`
	TotalStudents  int       `json:"total_students"`
}

// GradebookExportQuery selects the assignment and format for GET /grades/export.
type GradebookExportQuery struct {
	AssignmentID string `form:"assignmentId" validate:"required"`
	Format       string `form:"format" validate:"omitempty,oneof=csv pdf"`
}
