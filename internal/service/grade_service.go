package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-gradebook-api/internal/dto"
	"github.com/noah-isme/sma-gradebook-api/internal/models"
	"github.com/noah-isme/sma-gradebook-api/internal/repository"
	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
)

type academicRecordRepository interface {
	FindByKey(ctx context.Context, key models.AcademicRecordKey) (*models.AcademicRecord, error)
	FindByIDForTeacher(ctx context.Context, id, teacherID string) (*models.AcademicRecord, error)
	FindDetailByID(ctx context.Context, id string) (*models.AcademicRecordDetail, error)
	Create(ctx context.Context, record *models.AcademicRecord) error
	Update(ctx context.Context, record *models.AcademicRecord) error
	List(ctx context.Context, filter models.AcademicRecordFilter) ([]models.AcademicRecordDetail, error)
	SetPublished(ctx context.Context, teacherID, assignmentID string, published bool, at time.Time) (int64, error)
}

type assignmentLookup interface {
	FindByIDForTeacher(ctx context.Context, id, teacherID string) (*models.AssignmentDetail, error)
}

// GradeService records grades against assignments and keeps derived values consistent.
type GradeService struct {
	records     academicRecordRepository
	assignments assignmentLookup
	cache       *CacheService
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewGradeService constructs the grade service.
func NewGradeService(records academicRecordRepository, assignments assignmentLookup, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{
		records:     records,
		assignments: assignments,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SubmitGrades upserts one academic record per entry. Entries are applied independently:
// a failing entry is reported and does not undo the others.
func (s *GradeService) SubmitGrades(ctx context.Context, teacher *models.Teacher, req dto.SubmitGradesRequest) (*dto.GradeSubmissionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade submission")
	}

	assignment, err := s.loadAssignment(ctx, req.AssignmentID, teacher.ID)
	if err != nil {
		return nil, err
	}
	if assignment.ClassID != req.ClassID || assignment.SubjectID != req.SubjectID || assignment.TermID != req.TermID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class, subject and term must match the assignment")
	}

	result := &dto.GradeSubmissionResult{Records: []models.AcademicRecordDetail{}}
	for _, entry := range req.Grades {
		detail, outcome, err := s.applyEntry(ctx, teacher, &assignment.Assignment, req, entry)
		if err != nil {
			s.metrics.CountGradeEntry(OutcomeFailed)
			s.logger.Warn("grade entry failed",
				zap.String("assignment_id", req.AssignmentID),
				zap.String("student_id", entry.StudentID),
				zap.Error(err))
			result.Failures = append(result.Failures, dto.GradeSubmissionFailure{StudentID: entry.StudentID, Reason: failureReason(err)})
			continue
		}
		s.metrics.CountGradeEntry(outcome)
		result.Records = append(result.Records, *detail)
	}

	if len(result.Records) > 0 {
		s.cache.InvalidateGradebook(ctx, teacher.ID)
	}
	return result, nil
}

func (s *GradeService) applyEntry(ctx context.Context, teacher *models.Teacher, assignment *models.Assignment, req dto.SubmitGradesRequest, entry dto.GradeEntry) (*models.AcademicRecordDetail, string, error) {
	key := models.AcademicRecordKey{
		StudentID:    entry.StudentID,
		AssignmentID: assignment.ID,
		SubjectID:    req.SubjectID,
		ClassID:      req.ClassID,
		TermID:       req.TermID,
	}

	existing, err := s.records.FindByKey(ctx, key)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("find academic record: %w", err)
	}

	outcome := OutcomeUpdated
	if existing == nil {
		record := s.newRecord(teacher, assignment, key, entry)
		err = s.records.Create(ctx, record)
		switch {
		case err == nil:
			return s.detail(ctx, record), OutcomeCreated, nil
		case errors.Is(err, repository.ErrDuplicate):
			// Lost a race with a concurrent submission; regrade the winner's row.
			existing, err = s.records.FindByKey(ctx, key)
			if err != nil {
				return nil, "", fmt.Errorf("reload academic record: %w", err)
			}
		default:
			return nil, "", err
		}
	}

	s.regrade(existing, teacher, assignment, entry)
	existing.ResubmissionCount++
	if err := s.records.Update(ctx, existing); err != nil {
		return nil, "", err
	}
	return s.detail(ctx, existing), outcome, nil
}

func (s *GradeService) newRecord(teacher *models.Teacher, assignment *models.Assignment, key models.AcademicRecordKey, entry dto.GradeEntry) *models.AcademicRecord {
	assignmentID := assignment.ID
	record := &models.AcademicRecord{
		StudentID:    key.StudentID,
		SubjectID:    key.SubjectID,
		ClassID:      key.ClassID,
		TermID:       key.TermID,
		AssignmentID: &assignmentID,
		IsActive:     true,
	}
	s.regrade(record, teacher, assignment, entry)
	record.RecordedAt = record.GradedAt
	return record
}

// regrade copies an entry onto a record, recomputes derived values and unpublishes it.
func (s *GradeService) regrade(record *models.AcademicRecord, teacher *models.Teacher, assignment *models.Assignment, entry dto.GradeEntry) {
	record.TeacherID = teacher.ID
	record.Score = entry.Score
	record.MaxScore = assignment.MaxScore
	record.Comments = entry.Comments
	record.Feedback = entry.Feedback
	record.IsLate = entry.IsLate
	record.LatePenaltyApplied = latePenalty(entry.IsLate, assignment.LatePenalty)
	applyDerived(record)
	record.GradedAt = s.now()
	unpublish(record)
}

// UpdateGrade corrects a single record. Corrections do not count as resubmissions.
func (s *GradeService) UpdateGrade(ctx context.Context, teacher *models.Teacher, id string, req dto.UpdateGradeRequest) (*models.AcademicRecordDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade update")
	}

	record, err := s.records.FindByIDForTeacher(ctx, id, teacher.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
	}

	if req.Score != nil {
		record.Score = *req.Score
	}
	if req.Comments != nil {
		record.Comments = req.Comments
	}
	if req.Feedback != nil {
		record.Feedback = req.Feedback
	}
	if req.IsLate != nil && *req.IsLate != record.IsLate {
		record.IsLate = *req.IsLate
		penalty, err := s.assignmentPenalty(ctx, record, teacher.ID)
		if err != nil {
			return nil, err
		}
		record.LatePenaltyApplied = latePenalty(record.IsLate, penalty)
	}
	applyDerived(record)
	record.GradedAt = s.now()
	unpublish(record)

	if err := s.records.Update(ctx, record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grade")
	}
	s.cache.InvalidateGradebook(ctx, teacher.ID)

	return s.detail(ctx, record), nil
}

// List returns the teacher's graded records joined with display data.
func (s *GradeService) List(ctx context.Context, teacher *models.Teacher, query dto.GradeListQuery) ([]models.AcademicRecordDetail, error) {
	records, err := s.records.List(ctx, models.AcademicRecordFilter{
		TeacherID:    teacher.ID,
		ClassID:      query.ClassID,
		SubjectID:    query.SubjectID,
		TermID:       query.TermID,
		AssignmentID: query.AssignmentID,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	if records == nil {
		records = []models.AcademicRecordDetail{}
	}
	return records, nil
}

// SetPublished publishes or unpublishes every grade the teacher recorded for an assignment.
func (s *GradeService) SetPublished(ctx context.Context, teacher *models.Teacher, req dto.PublishGradesRequest, published bool) (*dto.PublishGradesResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid publish payload")
	}
	if _, err := s.loadAssignment(ctx, req.AssignmentID, teacher.ID); err != nil {
		return nil, err
	}

	affected, err := s.records.SetPublished(ctx, teacher.ID, req.AssignmentID, published, s.now())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to change grade visibility")
	}
	if affected > 0 {
		s.cache.InvalidateGradebook(ctx, teacher.ID)
	}
	return &dto.PublishGradesResult{AssignmentID: req.AssignmentID, Published: published, Affected: affected}, nil
}

func (s *GradeService) loadAssignment(ctx context.Context, id, teacherID string) (*models.AssignmentDetail, error) {
	assignment, err := s.assignments.FindByIDForTeacher(ctx, id, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	return assignment, nil
}

func (s *GradeService) assignmentPenalty(ctx context.Context, record *models.AcademicRecord, teacherID string) (float64, error) {
	if record.AssignmentID == nil || !record.IsLate {
		return 0, nil
	}
	assignment, err := s.assignments.FindByIDForTeacher(ctx, *record.AssignmentID, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	return assignment.LatePenalty, nil
}

// detail joins display data onto a saved record. The write already succeeded, so a failed
// reload falls back to the bare row instead of reporting the entry as failed.
func (s *GradeService) detail(ctx context.Context, record *models.AcademicRecord) *models.AcademicRecordDetail {
	detail, err := s.records.FindDetailByID(ctx, record.ID)
	if err != nil {
		s.logger.Warn("academic record saved without display data",
			zap.String("record_id", record.ID),
			zap.Error(err))
		return &models.AcademicRecordDetail{AcademicRecord: *record}
	}
	return detail
}

func applyDerived(record *models.AcademicRecord) {
	record.Percentage = Percentage(record.Score, record.MaxScore)
	record.Grade = DeriveGrade(record.Percentage)
	record.GPA = DeriveGPA(record.Percentage)
}

func unpublish(record *models.AcademicRecord) {
	record.IsPublished = false
	record.PublishedAt = nil
}

func latePenalty(isLate bool, penalty float64) float64 {
	if !isLate {
		return 0
	}
	return penalty
}

// failureReason exposes domain messages but keeps infrastructure detail server-side.
func failureReason(err error) string {
	if appErrors.IsInternal(err) {
		return appErrors.ErrInternal.Message
	}
	return appErrors.FromError(err).Message
}
