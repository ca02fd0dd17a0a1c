package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-gradebook-api/internal/dto"
	"github.com/noah-isme/sma-gradebook-api/internal/models"
	"github.com/noah-isme/sma-gradebook-api/internal/repository"
	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
)

const skipReasonAlreadyRecorded = "attendance already recorded for this date"

type attendanceRepository interface {
	ExistsActive(ctx context.Context, studentID string, date time.Time) (bool, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	FindByIDForTeacher(ctx context.Context, id, teacherID string) (*models.AttendanceRecord, error)
	Update(ctx context.Context, record *models.AttendanceRecord) error
	SoftDelete(ctx context.Context, id, teacherID string) error
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecordDetail, error)
}

// AttendanceService records daily attendance facts for the teacher's classes.
type AttendanceService struct {
	repo      attendanceRepository
	teaching  classMembershipChecker
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, teaching classMembershipChecker, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	registerGradebookValidations(validate)
	return &AttendanceService{repo: repo, teaching: teaching, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Create records one student's status. A second active record for the same student and date is a Conflict.
func (s *AttendanceService) Create(ctx context.Context, teacher *models.Teacher, req dto.CreateAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	if err := s.authorize(ctx, teacher, req.ClassID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsActive(ctx, req.StudentID, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check attendance")
	}
	if exists {
		s.metrics.CountAttendanceEntry(OutcomeSkipped)
		return nil, appErrors.Clone(appErrors.ErrConflict, skipReasonAlreadyRecorded)
	}

	record := newAttendanceRecord(teacher, req.StudentID, req.ClassID, req.TermID, date, req.Status, req.Reason)
	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.metrics.CountAttendanceEntry(OutcomeSkipped)
			return nil, appErrors.Clone(appErrors.ErrConflict, skipReasonAlreadyRecorded)
		}
		s.metrics.CountAttendanceEntry(OutcomeFailed)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	s.metrics.CountAttendanceEntry(OutcomeCreated)
	s.cache.InvalidateAttendance(ctx, teacher.ID)
	return record, nil
}

// BulkCreate records a class register. Students that already have an active record on the date
// are skipped and reported; every other entry is written independently.
func (s *AttendanceService) BulkCreate(ctx context.Context, teacher *models.Teacher, req dto.BulkAttendanceRequest) (*dto.BulkAttendanceResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk attendance payload")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	if err := s.authorize(ctx, teacher, req.ClassID); err != nil {
		return nil, err
	}

	result := &dto.BulkAttendanceResult{Records: []models.AttendanceRecord{}}
	skip := func(studentID, reason string) {
		result.Skipped = append(result.Skipped, dto.BulkAttendanceSkip{StudentID: studentID, Date: date.Format(dateLayout), Reason: reason})
	}

	for _, item := range req.Records {
		exists, err := s.repo.ExistsActive(ctx, item.StudentID, date)
		if err != nil {
			s.metrics.CountAttendanceEntry(OutcomeFailed)
			s.logger.Error("check attendance", zap.String("student_id", item.StudentID), zap.Error(err))
			skip(item.StudentID, appErrors.ErrInternal.Message)
			continue
		}
		if exists {
			s.metrics.CountAttendanceEntry(OutcomeSkipped)
			s.logger.Warn("attendance already recorded, skipping",
				zap.String("student_id", item.StudentID),
				zap.String("date", date.Format(dateLayout)))
			skip(item.StudentID, skipReasonAlreadyRecorded)
			continue
		}

		record := newAttendanceRecord(teacher, item.StudentID, req.ClassID, req.TermID, date, item.Status, item.Reason)
		if err := s.repo.Create(ctx, record); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				s.metrics.CountAttendanceEntry(OutcomeSkipped)
				s.logger.Warn("attendance recorded concurrently, skipping", zap.String("student_id", item.StudentID))
				skip(item.StudentID, skipReasonAlreadyRecorded)
				continue
			}
			s.metrics.CountAttendanceEntry(OutcomeFailed)
			s.logger.Error("create attendance", zap.String("student_id", item.StudentID), zap.Error(err))
			skip(item.StudentID, appErrors.ErrInternal.Message)
			continue
		}
		s.metrics.CountAttendanceEntry(OutcomeCreated)
		result.Records = append(result.Records, *record)
	}

	if len(result.Records) > 0 {
		s.cache.InvalidateAttendance(ctx, teacher.ID)
	}
	return result, nil
}

// Update changes status and reason of a record the teacher owns.
func (s *AttendanceService) Update(ctx context.Context, teacher *models.Teacher, id string, req dto.UpdateAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}

	record, err := s.repo.FindByIDForTeacher(ctx, id, teacher.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance record")
	}
	if req.Status != nil {
		record.Status = normalizeStatus(*req.Status)
	}
	if req.Reason != nil {
		record.Reason = req.Reason
	}

	if err := s.repo.Update(ctx, record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update attendance record")
	}
	s.cache.InvalidateAttendance(ctx, teacher.ID)
	return record, nil
}

// Delete soft-deletes a record the teacher owns.
func (s *AttendanceService) Delete(ctx context.Context, teacher *models.Teacher, id string) error {
	if err := s.repo.SoftDelete(ctx, id, teacher.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attendance record")
	}
	s.cache.InvalidateAttendance(ctx, teacher.ID)
	return nil
}

// List returns the teacher's active records filtered by class and date range.
func (s *AttendanceService) List(ctx context.Context, teacher *models.Teacher, query dto.AttendanceListQuery) ([]models.AttendanceRecordDetail, error) {
	filter := models.AttendanceFilter{TeacherID: teacher.ID, ClassID: query.ClassID}
	if query.StartDate != "" {
		from, err := parseDate(query.StartDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must be YYYY-MM-DD")
		}
		filter.DateFrom = &from
	}
	if query.EndDate != "" {
		to, err := parseDate(query.EndDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must be YYYY-MM-DD")
		}
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance records")
	}
	if records == nil {
		records = []models.AttendanceRecordDetail{}
	}
	return records, nil
}

func (s *AttendanceService) authorize(ctx context.Context, teacher *models.Teacher, classID string) error {
	teaches, err := s.teaching.TeachesClass(ctx, teacher.ID, classID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify class assignment")
	}
	if !teaches {
		return appErrors.Clone(appErrors.ErrForbidden, "teacher is not assigned to this class")
	}
	return nil
}

func newAttendanceRecord(teacher *models.Teacher, studentID, classID, termID string, date time.Time, status models.AttendanceStatus, reason *string) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		StudentID:  studentID,
		ClassID:    classID,
		TeacherID:  teacher.ID,
		TermID:     termID,
		Date:       date,
		Status:     normalizeStatus(status),
		Reason:     reason,
		RecordedBy: teacher.UserID,
		IsActive:   true,
	}
}

func normalizeStatus(status models.AttendanceStatus) models.AttendanceStatus {
	return models.AttendanceStatus(strings.ToUpper(strings.TrimSpace(string(status))))
}
