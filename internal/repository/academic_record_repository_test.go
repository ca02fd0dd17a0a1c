package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
)

var academicRecordRowColumns = []string{"id", "student_id", "teacher_id", "subject_id", "class_id", "term_id", "assignment_id",
	"score", "max_score", "grade", "percentage", "gpa", "comments", "feedback", "is_late",
	"late_penalty_applied", "resubmission_count", "is_active", "is_published", "published_at",
	"graded_at", "recorded_at", "updated_at"}

func TestAcademicRecordRepositoryFindByKey(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAcademicRecordRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(academicRecordRowColumns).AddRow(
		"r1", "s1", "t1", "sub-1", "c1", "term-1", "a1",
		72.0, 100.0, "C", 72.0, 2.0, nil, nil, true,
		10.0, 0, true, false, nil,
		now, now, now)
	mock.ExpectQuery(`WHERE ar.student_id = \$1 AND ar.assignment_id = \$2 AND ar.subject_id = \$3 AND ar.class_id = \$4 AND ar.term_id = \$5`).
		WithArgs("s1", "a1", "sub-1", "c1", "term-1").
		WillReturnRows(rows)

	record, err := repo.FindByKey(context.Background(), models.AcademicRecordKey{
		StudentID: "s1", AssignmentID: "a1", SubjectID: "sub-1", ClassID: "c1", TermID: "term-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "C", record.Grade)
	assert.Equal(t, 10.0, record.LatePenaltyApplied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademicRecordRepositoryCreateMapsUniqueViolation(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAcademicRecordRepository(db)

	mock.ExpectExec("INSERT INTO academic_records").WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.AcademicRecord{StudentID: "s1", TeacherID: "t1"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademicRecordRepositoryListScopesActiveRecords(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAcademicRecordRepository(db)

	mock.ExpectQuery(`WHERE ar.is_active = TRUE AND ar.teacher_id = \$1 AND ar.assignment_id = \$2 ORDER BY`).
		WithArgs("t1", "a1").
		WillReturnRows(sqlmock.NewRows(append(academicRecordRowColumns, "student_name", "student_nis", "subject_name", "class_name", "term_name", "assignment_title")))

	records, err := repo.List(context.Background(), models.AcademicRecordFilter{TeacherID: "t1", AssignmentID: "a1"})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademicRecordRepositorySetPublished(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAcademicRecordRepository(db)

	at := time.Now().UTC()
	mock.ExpectExec("UPDATE academic_records SET is_published").
		WithArgs("t1", "a1", true, at, at).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE academic_records SET is_published").
		WithArgs("t1", "a1", false, nil, at).
		WillReturnResult(sqlmock.NewResult(0, 3))

	affected, err := repo.SetPublished(context.Background(), "t1", "a1", true, at)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	_, err = repo.SetPublished(context.Background(), "t1", "a1", false, at)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
