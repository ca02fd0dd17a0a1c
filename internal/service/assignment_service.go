package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-gradebook-api/internal/dto"
	"github.com/noah-isme/sma-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
)

type assignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	FindByIDForTeacher(ctx context.Context, id, teacherID string) (*models.AssignmentDetail, error)
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id, teacherID string) error
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.AssignmentDetail, error)
}

type teachingLinkChecker interface {
	ExistsActive(ctx context.Context, teacherID, classID, subjectID string) (bool, error)
}

type assignmentGradeCounter interface {
	CountByAssignment(ctx context.Context, assignmentID string) (int, error)
}

// AssignmentService owns assignment definitions and their scoring rules.
type AssignmentService struct {
	repo      assignmentRepository
	teaching  teachingLinkChecker
	grades    assignmentGradeCounter
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs the assignment service.
func NewAssignmentService(repo assignmentRepository, teaching teachingLinkChecker, grades assignmentGradeCounter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	registerGradebookValidations(validate)
	return &AssignmentService{repo: repo, teaching: teaching, grades: grades, cache: cache, validator: validate, logger: logger}
}

// Create defines a new assignment for a class/subject the teacher is assigned to.
func (s *AssignmentService) Create(ctx context.Context, teacher *models.Teacher, req dto.CreateAssignmentRequest) (*models.AssignmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "due_date must be YYYY-MM-DD or RFC3339")
	}

	allowed, err := s.teaching.ExistsActive(ctx, teacher.ID, req.ClassID, req.SubjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify teaching assignment")
	}
	if !allowed {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "teacher is not assigned to this class and subject")
	}

	assignment := &models.Assignment{
		Title:               strings.TrimSpace(req.Title),
		Description:         req.Description,
		SubjectID:           req.SubjectID,
		ClassID:             req.ClassID,
		TermID:              req.TermID,
		TeacherID:           teacher.ID,
		DueDate:             dueDate,
		MaxScore:            req.MaxScore,
		Weight:              req.Weight,
		Type:                models.AssignmentType(strings.ToLower(string(req.Type))),
		Category:            models.AssignmentCategory(strings.ToLower(string(req.Category))),
		AllowLateSubmission: boolOr(req.AllowLateSubmission, models.DefaultAllowLateSubmission),
		LatePenalty:         floatOr(req.LatePenalty, models.DefaultLatePenalty),
		AllowResubmission:   boolOr(req.AllowResubmission, models.DefaultAllowResubmission),
		MaxResubmissions:    intOr(req.MaxResubmissions, models.DefaultMaxResubmissions),
		IsGroupAssignment:   boolOr(req.IsGroupAssignment, models.DefaultIsGroupAssignment),
		GroupSize:           intOr(req.GroupSize, models.DefaultGroupSize),
		Instructions:        req.Instructions,
		LearningObjectives:  nonNil(req.LearningObjectives),
		Tags:                nonNil(req.Tags),
	}

	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	s.cache.InvalidateGradebook(ctx, teacher.ID)

	return s.load(ctx, assignment.ID, teacher.ID)
}

// Update applies supplied fields to an assignment owned by the teacher.
func (s *AssignmentService) Update(ctx context.Context, teacher *models.Teacher, id string, req dto.UpdateAssignmentRequest) (*models.AssignmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	current, err := s.load(ctx, id, teacher.ID)
	if err != nil {
		return nil, err
	}
	assignment := current.Assignment

	if req.Title != nil {
		assignment.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		assignment.Description = req.Description
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "due_date must be YYYY-MM-DD or RFC3339")
		}
		assignment.DueDate = dueDate
	}
	if req.MaxScore != nil {
		assignment.MaxScore = *req.MaxScore
	}
	if req.Weight != nil {
		assignment.Weight = *req.Weight
	}
	if req.Type != nil {
		assignment.Type = models.AssignmentType(strings.ToLower(string(*req.Type)))
	}
	if req.Category != nil {
		assignment.Category = models.AssignmentCategory(strings.ToLower(string(*req.Category)))
	}
	assignment.AllowLateSubmission = boolOr(req.AllowLateSubmission, assignment.AllowLateSubmission)
	assignment.LatePenalty = floatOr(req.LatePenalty, assignment.LatePenalty)
	assignment.AllowResubmission = boolOr(req.AllowResubmission, assignment.AllowResubmission)
	assignment.MaxResubmissions = intOr(req.MaxResubmissions, assignment.MaxResubmissions)
	assignment.IsGroupAssignment = boolOr(req.IsGroupAssignment, assignment.IsGroupAssignment)
	assignment.GroupSize = intOr(req.GroupSize, assignment.GroupSize)
	if req.Instructions != nil {
		assignment.Instructions = req.Instructions
	}
	if req.LearningObjectives != nil {
		assignment.LearningObjectives = req.LearningObjectives
	}
	if req.Tags != nil {
		assignment.Tags = req.Tags
	}

	if err := s.repo.Update(ctx, &assignment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	s.cache.InvalidateGradebook(ctx, teacher.ID)

	return s.load(ctx, id, teacher.ID)
}

// Delete removes an assignment that has no grades recorded against it.
func (s *AssignmentService) Delete(ctx context.Context, teacher *models.Teacher, id string) error {
	if _, err := s.load(ctx, id, teacher.ID); err != nil {
		return err
	}

	count, err := s.grades.CountByAssignment(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count grades")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrHasGrades, "")
	}

	if err := s.repo.Delete(ctx, id, teacher.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	s.cache.InvalidateGradebook(ctx, teacher.ID)
	return nil
}

// Get returns one of the teacher's assignments.
func (s *AssignmentService) Get(ctx context.Context, teacher *models.Teacher, id string) (*models.AssignmentDetail, error) {
	return s.load(ctx, id, teacher.ID)
}

// List returns the teacher's assignments, newest first.
func (s *AssignmentService) List(ctx context.Context, teacher *models.Teacher, query dto.AssignmentListQuery) ([]models.AssignmentDetail, error) {
	assignments, err := s.repo.List(ctx, models.AssignmentFilter{
		TeacherID: teacher.ID,
		ClassID:   query.ClassID,
		SubjectID: query.SubjectID,
		TermID:    query.TermID,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	if assignments == nil {
		assignments = []models.AssignmentDetail{}
	}
	return assignments, nil
}

// load fetches an assignment scoped to its owner. Missing and foreign assignments look the same.
func (s *AssignmentService) load(ctx context.Context, id, teacherID string) (*models.AssignmentDetail, error) {
	detail, err := s.repo.FindByIDForTeacher(ctx, id, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	return detail, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
