package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
)

// StudentRepository reads class rosters from active enrollments.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListRosterByClass returns students actively enrolled in the class, optionally limited to a term.
func (r *StudentRepository) ListRosterByClass(ctx context.Context, classID, termID string) ([]models.RosterEntry, error) {
	conditions := []string{"e.class_id = $1", "e.status = $2", "s.active = TRUE"}
	args := []interface{}{classID, models.EnrollmentStatusActive}
	if termID != "" {
		conditions = append(conditions, fmt.Sprintf("e.term_id = $%d", len(args)+1))
		args = append(args, termID)
	}

	query := `SELECT e.student_id, s.nis, s.full_name, e.class_id, e.term_id
FROM enrollments e
JOIN students s ON s.id = e.student_id
WHERE ` + strings.Join(conditions, " AND ") + `
ORDER BY s.full_name ASC`
	var roster []models.RosterEntry
	if err := r.db.SelectContext(ctx, &roster, query, args...); err != nil {
		return nil, fmt.Errorf("list class roster: %w", err)
	}
	return roster, nil
}

// CountRosterByClasses returns the active roster size keyed by class ID.
func (r *StudentRepository) CountRosterByClasses(ctx context.Context, classIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(classIDs))
	if len(classIDs) == 0 {
		return counts, nil
	}

	const query = `SELECT e.class_id, COUNT(DISTINCT e.student_id) AS total
FROM enrollments e
JOIN students s ON s.id = e.student_id
WHERE e.class_id = ANY($1) AND e.status = $2 AND s.active = TRUE
GROUP BY e.class_id`
	var rows []struct {
		ClassID string `db:"class_id"`
		Total   int    `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(classIDs), models.EnrollmentStatusActive); err != nil {
		return nil, fmt.Errorf("count class rosters: %w", err)
	}
	for _, row := range rows {
		counts[row.ClassID] = row.Total
	}
	return counts, nil
}
