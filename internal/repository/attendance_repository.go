package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
)

const attendanceColumns = `ar.id, ar.student_id, ar.class_id, ar.teacher_id, ar.term_id, ar.date, ar.status, ar.reason,
       ar.recorded_at, ar.recorded_by, ar.is_active, ar.updated_at`

// AttendanceRepository persists attendance records. Soft-deleted rows are invisible to every read.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// activeWhere builds a WHERE clause that always carries the soft-delete filter.
func activeWhere(conditions ...string) string {
	return " WHERE " + strings.Join(append([]string{"ar.is_active = TRUE"}, conditions...), " AND ")
}

// ExistsActive reports whether the student already has an active record on the date.
func (r *AttendanceRepository) ExistsActive(ctx context.Context, studentID string, date time.Time) (bool, error) {
	query := `SELECT 1 FROM attendance_records ar` + activeWhere("ar.student_id = $1", "ar.date = $2") + ` LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check attendance record: %w", err)
	}
	return true, nil
}

// Create inserts a record. The partial unique index on (student_id, date) surfaces as ErrDuplicate.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.RecordedAt.IsZero() {
		record.RecordedAt = now
	}
	record.UpdatedAt = now
	record.IsActive = true

	const query = `INSERT INTO attendance_records (id, student_id, class_id, teacher_id, term_id, date, status, reason,
	recorded_at, recorded_by, is_active, updated_at)
VALUES (:id, :student_id, :class_id, :teacher_id, :term_id, :date, :status, :reason,
	:recorded_at, :recorded_by, :is_active, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create attendance record: %w", err)
	}
	return nil
}

// FindByIDForTeacher returns an active record owned by the teacher; sql.ErrNoRows otherwise.
func (r *AttendanceRepository) FindByIDForTeacher(ctx context.Context, id, teacherID string) (*models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records ar` + activeWhere("ar.id = $1", "ar.teacher_id = $2")
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, id, teacherID); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update changes status and reason of an active record.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	record.UpdatedAt = time.Now().UTC()
	query := `UPDATE attendance_records ar SET status = $2, reason = $3, updated_at = $4` + activeWhere("ar.id = $1")
	result, err := r.db.ExecContext(ctx, query, record.ID, record.Status, record.Reason, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update attendance record: %w", err)
	}
	return requireAffected(result, "update attendance record")
}

// SoftDelete deactivates a record owned by the teacher.
func (r *AttendanceRepository) SoftDelete(ctx context.Context, id, teacherID string) error {
	query := `UPDATE attendance_records ar SET is_active = FALSE, updated_at = $3` + activeWhere("ar.id = $1", "ar.teacher_id = $2")
	result, err := r.db.ExecContext(ctx, query, id, teacherID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("delete attendance record: %w", err)
	}
	return requireAffected(result, "delete attendance record")
}

// List returns active records matching the filter with student and class names.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecordDetail, error) {
	var conditions []string
	var args []interface{}

	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("ar.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("ar.class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("ar.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("ar.date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("ar.date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}

	query := `SELECT ` + attendanceColumns + `, s.full_name AS student_name, c.name AS class_name
FROM attendance_records ar
JOIN students s ON s.id = ar.student_id
JOIN classes c ON c.id = ar.class_id` + activeWhere(conditions...) + `
ORDER BY ar.date DESC, s.full_name ASC`
	var records []models.AttendanceRecordDetail
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	return records, nil
}
