package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
)

type rosterRepository interface {
	ListRosterByClass(ctx context.Context, classID, termID string) ([]models.RosterEntry, error)
}

type classMembershipChecker interface {
	TeachesClass(ctx context.Context, teacherID, classID string) (bool, error)
}

// StudentService serves class rosters for grading and attendance screens.
type StudentService struct {
	repo     rosterRepository
	teaching classMembershipChecker
	logger   *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo rosterRepository, teaching classMembershipChecker, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, teaching: teaching, logger: logger}
}

// Roster lists students enrolled in a class the teacher teaches.
func (s *StudentService) Roster(ctx context.Context, teacher *models.Teacher, classID, termID string) ([]models.RosterEntry, error) {
	teaches, err := s.teaching.TeachesClass(ctx, teacher.ID, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify class assignment")
	}
	if !teaches {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "teacher is not assigned to this class")
	}

	roster, err := s.repo.ListRosterByClass(ctx, classID, termID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roster")
	}
	if roster == nil {
		roster = []models.RosterEntry{}
	}
	return roster, nil
}
