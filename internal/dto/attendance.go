package dto

import (
	"time"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
)

// CreateAttendanceRequest is the payload for POST /attendance/records.
type CreateAttendanceRequest struct {
	StudentID string                  `json:"student_id" validate:"required"`
	ClassID   string                  `json:"class_id" validate:"required"`
	TermID    string                  `json:"term_id" validate:"required"`
	Date      string                  `json:"date" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,attendance_status"`
	Reason    *string                 `json:"reason"`
}

// BulkAttendanceItem is one student's entry in a bulk request.
type BulkAttendanceItem struct {
	StudentID string                  `json:"student_id" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,attendance_status"`
	Reason    *string                 `json:"reason"`
}

// BulkAttendanceRequest is the payload for POST /attendance/records/bulk.
type BulkAttendanceRequest struct {
	ClassID string               `json:"class_id" validate:"required"`
	TermID  string               `json:"term_id" validate:"required"`
	Date    string               `json:"date" validate:"required"`
	Records []BulkAttendanceItem `json:"records" validate:"required,min=1,dive"`
}

// BulkAttendanceSkip reports an entry skipped because the student already has a record.
type BulkAttendanceSkip struct {
	StudentID string `json:"student_id"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
}

// BulkAttendanceResult lists created records and skipped duplicates.
type BulkAttendanceResult struct {
	Records []models.AttendanceRecord `json:"records"`
	Skipped []BulkAttendanceSkip      `json:"skipped,omitempty"`
}

// UpdateAttendanceRequest is the payload for PUT /attendance/records/:id.
type UpdateAttendanceRequest struct {
	Status *models.AttendanceStatus `json:"status" validate:"omitempty,attendance_status"`
	Reason *string                  `json:"reason"`
}

// AttendanceListQuery filters GET /attendance/records.
type AttendanceListQuery struct {
	ClassID   string `form:"classId"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// Attendance quality buckets.
const (
	AttendanceExcellent = "excellent"
	AttendanceGood      = "good"
	AttendanceFair      = "fair"
	AttendancePoor      = "poor"
	AttendanceNoData    = "no-data"
)

// AttendancePattern is a student's attendance profile.
type AttendancePattern struct {
	StudentID            string     `json:"student_id"`
	StudentName          string     `json:"student_name"`
	ClassID              string     `json:"class_id,omitempty"`
	TotalDays            int        `json:"total_days"`
	PresentDays          int        `json:"present_days"`
	AbsentDays           int        `json:"absent_days"`
	LateDays             int        `json:"late_days"`
	ExcusedDays          int        `json:"excused_days"`
	SickDays             int        `json:"sick_days"`
	AttendancePercentage float64    `json:"attendance_percentage"`
	Status               string     `json:"status"`
	LastRecordedAt       *time.Time `json:"last_recorded_at,omitempty"`
}

// ClassAttendanceAnalytics rolls up attendance patterns for one class.
type ClassAttendanceAnalytics struct {
	ClassID           string  `json:"class_id"`
	ClassName         string  `json:"class_name"`
	TotalStudents     int     `json:"total_students"`
	AverageAttendance float64 `json:"average_attendance"`
	Excellent         int     `json:"excellent"`
	Good              int     `json:"good"`
	Fair              int     `json:"fair"`
	Poor              int     `json:"poor"`
}

// AttendanceAnalytics is the response for GET /attendance/analytics.
type AttendanceAnalytics struct {
	Classes           []ClassAttendanceAnalytics `json:"classes"`
	TotalStudents     int                        `json:"total_students"`
	AverageAttendance float64                    `json:"average_attendance"`
}
