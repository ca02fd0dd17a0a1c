package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
)

const assignmentDetailSelect = `SELECT a.id, a.title, a.description, a.subject_id, a.class_id, a.term_id, a.teacher_id, a.due_date,
       a.max_score, a.weight, a.type, a.category, a.allow_late_submission, a.late_penalty,
       a.allow_resubmission, a.max_resubmissions, a.is_group_assignment, a.group_size,
       a.instructions, a.learning_objectives, a.tags, a.created_at, a.updated_at,
       s.name AS subject_name, c.name AS class_name, t.name AS term_name
FROM assignments a
JOIN subjects s ON s.id = a.subject_id
JOIN classes c ON c.id = a.class_id
JOIN terms t ON t.id = a.term_id`

// AssignmentRepository persists assignment definitions.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	assignment.UpdatedAt = now

	const query = `INSERT INTO assignments (id, title, description, subject_id, class_id, term_id, teacher_id, due_date,
	max_score, weight, type, category, allow_late_submission, late_penalty, allow_resubmission, max_resubmissions,
	is_group_assignment, group_size, instructions, learning_objectives, tags, created_at, updated_at)
VALUES (:id, :title, :description, :subject_id, :class_id, :term_id, :teacher_id, :due_date,
	:max_score, :weight, :type, :category, :allow_late_submission, :late_penalty, :allow_resubmission, :max_resubmissions,
	:is_group_assignment, :group_size, :instructions, :learning_objectives, :tags, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// FindByIDForTeacher returns the assignment only when the teacher owns it; sql.ErrNoRows otherwise.
func (r *AssignmentRepository) FindByIDForTeacher(ctx context.Context, id, teacherID string) (*models.AssignmentDetail, error) {
	query := assignmentDetailSelect + ` WHERE a.id = $1 AND a.teacher_id = $2`
	var detail models.AssignmentDetail
	if err := r.db.GetContext(ctx, &detail, query, id, teacherID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Update overwrites the mutable columns of an assignment.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	assignment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE assignments SET title = :title, description = :description, due_date = :due_date,
	max_score = :max_score, weight = :weight, type = :type, category = :category,
	allow_late_submission = :allow_late_submission, late_penalty = :late_penalty,
	allow_resubmission = :allow_resubmission, max_resubmissions = :max_resubmissions,
	is_group_assignment = :is_group_assignment, group_size = :group_size, instructions = :instructions,
	learning_objectives = :learning_objectives, tags = :tags, updated_at = :updated_at
WHERE id = :id AND teacher_id = :teacher_id`
	result, err := r.db.NamedExecContext(ctx, query, assignment)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return requireAffected(result, "update assignment")
}

// Delete removes an assignment owned by the teacher.
func (r *AssignmentRepository) Delete(ctx context.Context, id, teacherID string) error {
	const query = `DELETE FROM assignments WHERE id = $1 AND teacher_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, teacherID)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return requireAffected(result, "delete assignment")
}

// List returns assignments matching the filter, newest first.
func (r *AssignmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.AssignmentDetail, error) {
	var conditions []string
	var args []interface{}

	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("a.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("a.class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("a.subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.TermID != "" {
		conditions = append(conditions, fmt.Sprintf("a.term_id = $%d", len(args)+1))
		args = append(args, filter.TermID)
	}

	query := assignmentDetailSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.created_at DESC"

	var assignments []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
