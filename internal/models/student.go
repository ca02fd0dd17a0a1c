package models

import "time"

// Student represents a learner registered in the institution.
type Student struct {
	ID        string    `db:"id" json:"id"`
	NIS       string    `db:"nis" json:"nis"`
	FullName  string    `db:"full_name" json:"full_name"`
	Gender    string    `db:"gender" json:"gender"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RosterEntry is a student actively enrolled in a class.
type RosterEntry struct {
	StudentID string `db:"student_id" json:"student_id"`
	NIS       string `db:"nis" json:"nis"`
	FullName  string `db:"full_name" json:"full_name"`
	ClassID   string `db:"class_id" json:"class_id"`
	TermID    string `db:"term_id" json:"term_id"`
}

// EnrollmentStatusActive marks an enrollment that places a student on a class roster.
const EnrollmentStatusActive = "ACTIVE"
