package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "PRESENT"
	AttendanceStatusAbsent  AttendanceStatus = "ABSENT"
	AttendanceStatusLate    AttendanceStatus = "LATE"
	AttendanceStatusExcused AttendanceStatus = "EXCUSED"
	AttendanceStatusSick    AttendanceStatus = "SICK"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused, AttendanceStatusSick:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one student's status for a class on a date.
type AttendanceRecord struct {
	ID         string           `db:"id" json:"id"`
	StudentID  string           `db:"student_id" json:"student_id"`
	ClassID    string           `db:"class_id" json:"class_id"`
	TeacherID  string           `db:"teacher_id" json:"teacher_id"`
	TermID     string           `db:"term_id" json:"term_id"`
	Date       time.Time        `db:"date" json:"date"`
	Status     AttendanceStatus `db:"status" json:"status"`
	Reason     *string          `db:"reason" json:"reason,omitempty"`
	RecordedAt time.Time        `db:"recorded_at" json:"recorded_at"`
	RecordedBy string           `db:"recorded_by" json:"recorded_by"`
	IsActive   bool             `db:"is_active" json:"is_active"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`
}

// AttendanceRecordDetail extends the record with student and class names.
type AttendanceRecordDetail struct {
	AttendanceRecord
	StudentName string `db:"student_name" json:"student_name"`
	ClassName   string `db:"class_name" json:"class_name"`
}

// AttendanceFilter defines query filters. Inactive records are never returned.
type AttendanceFilter struct {
	TeacherID string
	ClassID   string
	StudentID string
	DateFrom  *time.Time
	DateTo    *time.Time
}
