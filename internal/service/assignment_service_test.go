package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-gradebook-api/internal/dto"
	"github.com/noah-isme/sma-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
)

func newAssignmentFixture() (*AssignmentService, *fakeAssignmentRepo, *fakeRecordRepo) {
	repo := newFakeAssignmentRepo()
	records := newFakeRecordRepo()
	links := newFakeTeachingLinks().add("t1", "c1", "math")
	return NewAssignmentService(repo, links, records, nil, nil, nil), repo, records
}

func validAssignmentRequest() dto.CreateAssignmentRequest {
	return dto.CreateAssignmentRequest{
		Title:     "  Fractions quiz ",
		SubjectID: "math",
		ClassID:   "c1",
		TermID:    "term-1",
		DueDate:   "2024-09-01",
		MaxScore:  100,
		Weight:    10,
		Type:      models.AssignmentTypeQuiz,
		Category:  models.AssignmentCategoryFormative,
	}
}

func TestAssignmentServiceCreateAppliesDefaults(t *testing.T) {
	svc, _, _ := newAssignmentFixture()

	created, err := svc.Create(context.Background(), &models.Teacher{ID: "t1"}, validAssignmentRequest())
	require.NoError(t, err)
	assert.Equal(t, "Fractions quiz", created.Title)
	assert.Equal(t, "t1", created.TeacherID)
	assert.True(t, created.AllowLateSubmission)
	assert.Zero(t, created.LatePenalty)
	assert.False(t, created.AllowResubmission)
	assert.Equal(t, models.DefaultGroupSize, created.GroupSize)
	assert.NotNil(t, created.Tags)
	assert.Equal(t, 2024, created.DueDate.Year())
}

func TestAssignmentServiceCreateRequiresTeachingLink(t *testing.T) {
	svc, repo, _ := newAssignmentFixture()
	req := validAssignmentRequest()
	req.ClassID = "c9"

	_, err := svc.Create(context.Background(), &models.Teacher{ID: "t1"}, req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.items)
}

func TestAssignmentServiceCreateValidation(t *testing.T) {
	svc, _, _ := newAssignmentFixture()
	req := validAssignmentRequest()
	req.MaxScore = 0

	_, err := svc.Create(context.Background(), &models.Teacher{ID: "t1"}, req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	req = validAssignmentRequest()
	req.DueDate = "next week"
	_, err = svc.Create(context.Background(), &models.Teacher{ID: "t1"}, req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAssignmentServiceUpdateMergesFields(t *testing.T) {
	svc, _, _ := newAssignmentFixture()
	teacher := &models.Teacher{ID: "t1"}
	created, err := svc.Create(context.Background(), teacher, validAssignmentRequest())
	require.NoError(t, err)

	penalty := 15.0
	title := "Fractions test"
	updated, err := svc.Update(context.Background(), teacher, created.ID, dto.UpdateAssignmentRequest{Title: &title, LatePenalty: &penalty})
	require.NoError(t, err)
	assert.Equal(t, "Fractions test", updated.Title)
	assert.Equal(t, 15.0, updated.LatePenalty)
	assert.Equal(t, created.MaxScore, updated.MaxScore)
}

func TestAssignmentServiceHidesForeignAssignments(t *testing.T) {
	svc, _, _ := newAssignmentFixture()
	created, err := svc.Create(context.Background(), &models.Teacher{ID: "t1"}, validAssignmentRequest())
	require.NoError(t, err)

	title := "hijack"
	_, err = svc.Update(context.Background(), &models.Teacher{ID: "t2"}, created.ID, dto.UpdateAssignmentRequest{Title: &title})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	err = svc.Delete(context.Background(), &models.Teacher{ID: "t2"}, created.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	list, err := svc.List(context.Background(), &models.Teacher{ID: "t2"}, dto.AssignmentListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestAssignmentServiceDeleteBlockedByGrades(t *testing.T) {
	svc, repo, records := newAssignmentFixture()
	teacher := &models.Teacher{ID: "t1"}
	created, err := svc.Create(context.Background(), teacher, validAssignmentRequest())
	require.NoError(t, err)

	assignmentID := created.ID
	require.NoError(t, records.Create(context.Background(), &models.AcademicRecord{
		StudentID: "s1", TeacherID: "t1", SubjectID: "math", ClassID: "c1", TermID: "term-1",
		AssignmentID: &assignmentID, IsActive: true,
	}))

	err = svc.Delete(context.Background(), teacher, created.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrHasGrades.Code, appErrors.FromError(err).Code)
	assert.Contains(t, repo.items, created.ID)
	assert.Empty(t, repo.deleted)
}

func TestAssignmentServiceDelete(t *testing.T) {
	svc, repo, _ := newAssignmentFixture()
	teacher := &models.Teacher{ID: "t1"}
	created, err := svc.Create(context.Background(), teacher, validAssignmentRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), teacher, created.ID))
	assert.Equal(t, []string{created.ID}, repo.deleted)
}
