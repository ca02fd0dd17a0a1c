package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
)

const academicRecordColumns = `ar.id, ar.student_id, ar.teacher_id, ar.subject_id, ar.class_id, ar.term_id, ar.assignment_id,
       ar.score, ar.max_score, ar.grade, ar.percentage, ar.gpa, ar.comments, ar.feedback, ar.is_late,
       ar.late_penalty_applied, ar.resubmission_count, ar.is_active, ar.is_published, ar.published_at,
       ar.graded_at, ar.recorded_at, ar.updated_at`

const academicRecordDetailSelect = `SELECT ` + academicRecordColumns + `,
       st.full_name AS student_name, st.nis AS student_nis, s.name AS subject_name,
       c.name AS class_name, t.name AS term_name, a.title AS assignment_title
FROM academic_records ar
JOIN students st ON st.id = ar.student_id
JOIN subjects s ON s.id = ar.subject_id
JOIN classes c ON c.id = ar.class_id
JOIN terms t ON t.id = ar.term_id
LEFT JOIN assignments a ON a.id = ar.assignment_id`

// AcademicRecordRepository persists graded academic records.
type AcademicRecordRepository struct {
	db *sqlx.DB
}

// NewAcademicRecordRepository constructs the repository.
func NewAcademicRecordRepository(db *sqlx.DB) *AcademicRecordRepository {
	return &AcademicRecordRepository{db: db}
}

// FindByKey looks up the record for an identity tuple; sql.ErrNoRows when none exists.
func (r *AcademicRecordRepository) FindByKey(ctx context.Context, key models.AcademicRecordKey) (*models.AcademicRecord, error) {
	query := `SELECT ` + academicRecordColumns + ` FROM academic_records ar
WHERE ar.student_id = $1 AND ar.assignment_id = $2 AND ar.subject_id = $3 AND ar.class_id = $4 AND ar.term_id = $5
LIMIT 1`
	var record models.AcademicRecord
	if err := r.db.GetContext(ctx, &record, query, key.StudentID, key.AssignmentID, key.SubjectID, key.ClassID, key.TermID); err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByIDForTeacher returns a record graded by the teacher; sql.ErrNoRows otherwise.
func (r *AcademicRecordRepository) FindByIDForTeacher(ctx context.Context, id, teacherID string) (*models.AcademicRecord, error) {
	query := `SELECT ` + academicRecordColumns + ` FROM academic_records ar WHERE ar.id = $1 AND ar.teacher_id = $2`
	var record models.AcademicRecord
	if err := r.db.GetContext(ctx, &record, query, id, teacherID); err != nil {
		return nil, err
	}
	return &record, nil
}

// FindDetailByID returns a record joined with its display data.
func (r *AcademicRecordRepository) FindDetailByID(ctx context.Context, id string) (*models.AcademicRecordDetail, error) {
	query := academicRecordDetailSelect + ` WHERE ar.id = $1`
	var detail models.AcademicRecordDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a new record. A concurrent insert of the same identity tuple yields ErrDuplicate.
func (r *AcademicRecordRepository) Create(ctx context.Context, record *models.AcademicRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.RecordedAt.IsZero() {
		record.RecordedAt = now
	}
	if record.GradedAt.IsZero() {
		record.GradedAt = now
	}
	record.UpdatedAt = now

	const query = `INSERT INTO academic_records (id, student_id, teacher_id, subject_id, class_id, term_id, assignment_id,
	score, max_score, grade, percentage, gpa, comments, feedback, is_late, late_penalty_applied, resubmission_count,
	is_active, is_published, published_at, graded_at, recorded_at, updated_at)
VALUES (:id, :student_id, :teacher_id, :subject_id, :class_id, :term_id, :assignment_id,
	:score, :max_score, :grade, :percentage, :gpa, :comments, :feedback, :is_late, :late_penalty_applied, :resubmission_count,
	:is_active, :is_published, :published_at, :graded_at, :recorded_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create academic record: %w", err)
	}
	return nil
}

// Update rewrites the graded values of a record.
func (r *AcademicRecordRepository) Update(ctx context.Context, record *models.AcademicRecord) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `UPDATE academic_records SET teacher_id = :teacher_id, score = :score, max_score = :max_score, grade = :grade,
	percentage = :percentage, gpa = :gpa, comments = :comments, feedback = :feedback, is_late = :is_late,
	late_penalty_applied = :late_penalty_applied, resubmission_count = :resubmission_count,
	is_published = :is_published, published_at = :published_at, graded_at = :graded_at, updated_at = :updated_at
WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("update academic record: %w", err)
	}
	return requireAffected(result, "update academic record")
}

// List returns joined records matching the filter, most recently graded first.
func (r *AcademicRecordRepository) List(ctx context.Context, filter models.AcademicRecordFilter) ([]models.AcademicRecordDetail, error) {
	conditions := []string{"ar.is_active = TRUE"}
	var args []interface{}

	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("ar.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("ar.class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("ar.subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.TermID != "" {
		conditions = append(conditions, fmt.Sprintf("ar.term_id = $%d", len(args)+1))
		args = append(args, filter.TermID)
	}
	if filter.AssignmentID != "" {
		conditions = append(conditions, fmt.Sprintf("ar.assignment_id = $%d", len(args)+1))
		args = append(args, filter.AssignmentID)
	}

	query := academicRecordDetailSelect + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY ar.graded_at DESC, st.full_name ASC"
	var records []models.AcademicRecordDetail
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list academic records: %w", err)
	}
	return records, nil
}

// ListByTeacher returns every active record graded by the teacher without joins.
func (r *AcademicRecordRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.AcademicRecord, error) {
	query := `SELECT ` + academicRecordColumns + ` FROM academic_records ar WHERE ar.teacher_id = $1 AND ar.is_active = TRUE`
	var records []models.AcademicRecord
	if err := r.db.SelectContext(ctx, &records, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher academic records: %w", err)
	}
	return records, nil
}

// CountByAssignment counts records referencing an assignment.
func (r *AcademicRecordRepository) CountByAssignment(ctx context.Context, assignmentID string) (int, error) {
	const query = `SELECT COUNT(*) FROM academic_records WHERE assignment_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, assignmentID); err != nil {
		return 0, fmt.Errorf("count academic records: %w", err)
	}
	return count, nil
}

// SetPublished toggles visibility of all the teacher's records for an assignment.
func (r *AcademicRecordRepository) SetPublished(ctx context.Context, teacherID, assignmentID string, published bool, at time.Time) (int64, error) {
	var publishedAt interface{}
	if published {
		publishedAt = at
	}
	const query = `UPDATE academic_records SET is_published = $3, published_at = $4, updated_at = $5
WHERE teacher_id = $1 AND assignment_id = $2 AND is_active = TRUE AND is_published <> $3`
	result, err := r.db.ExecContext(ctx, query, teacherID, assignmentID, published, publishedAt, at)
	if err != nil {
		return 0, fmt.Errorf("set academic records published: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("set academic records published rows: %w", err)
	}
	return affected, nil
}
