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

func newAttendanceFixture() (*AttendanceService, *fakeAttendanceRepo, *memoryCacheRepo) {
	repo := newFakeAttendanceRepo()
	cacheRepo := newMemoryCacheRepo()
	links := newFakeTeachingLinks().add("t1", "c1", "math")
	svc := NewAttendanceService(repo, links, NewCacheService(cacheRepo, nil, 0, nil, true), nil, nil, nil)
	return svc, repo, cacheRepo
}

var attendanceTeacher = &models.Teacher{ID: "t1", UserID: "u1"}

func createAttendance(studentID string) dto.CreateAttendanceRequest {
	return dto.CreateAttendanceRequest{StudentID: studentID, ClassID: "c1", TermID: "term-1", Date: "2024-05-01", Status: "present"}
}

func TestAttendanceServiceCreate(t *testing.T) {
	svc, _, cacheRepo := newAttendanceFixture()

	record, err := svc.Create(context.Background(), attendanceTeacher, createAttendance("s1"))
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusPresent, record.Status)
	assert.Equal(t, "u1", record.RecordedBy)
	assert.Equal(t, "t1", record.TeacherID)
	assert.Equal(t, "2024-05-01", record.Date.Format("2006-01-02"))
	assert.Equal(t, []string{"attendance:t1:*"}, cacheRepo.deleted)
}

func TestAttendanceServiceUniquenessAcrossSoftDelete(t *testing.T) {
	svc, _, _ := newAttendanceFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, attendanceTeacher, createAttendance("s1"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, attendanceTeacher, createAttendance("s1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.Delete(ctx, attendanceTeacher, first.ID))

	second, err := svc.Create(ctx, attendanceTeacher, createAttendance("s1"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAttendanceServiceCreateRequiresClassAssignment(t *testing.T) {
	svc, repo, _ := newAttendanceFixture()
	req := createAttendance("s1")
	req.ClassID = "c2"

	_, err := svc.Create(context.Background(), attendanceTeacher, req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.items)
}

func TestAttendanceServiceCreateRejectsBadInput(t *testing.T) {
	svc, _, _ := newAttendanceFixture()

	req := createAttendance("s1")
	req.Status = "holiday"
	_, err := svc.Create(context.Background(), attendanceTeacher, req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	req = createAttendance("s1")
	req.Date = "05/01/2024"
	_, err = svc.Create(context.Background(), attendanceTeacher, req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAttendanceServiceBulkSkipsDuplicates(t *testing.T) {
	svc, repo, _ := newAttendanceFixture()

	result, err := svc.BulkCreate(context.Background(), attendanceTeacher, dto.BulkAttendanceRequest{
		ClassID: "c1",
		TermID:  "term-1",
		Date:    "2024-05-01",
		Records: []dto.BulkAttendanceItem{
			{StudentID: "s1", Status: models.AttendanceStatusPresent},
			{StudentID: "s1", Status: models.AttendanceStatusAbsent},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, models.AttendanceStatusPresent, result.Records[0].Status)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "s1", result.Skipped[0].StudentID)
	assert.Equal(t, "2024-05-01", result.Skipped[0].Date)
	assert.Len(t, repo.items, 1)
}

func TestAttendanceServiceUpdateAndDeleteOwnership(t *testing.T) {
	svc, _, _ := newAttendanceFixture()
	ctx := context.Background()
	record, err := svc.Create(ctx, attendanceTeacher, createAttendance("s1"))
	require.NoError(t, err)

	sick := models.AttendanceStatus("sick")
	reason := "flu"
	updated, err := svc.Update(ctx, attendanceTeacher, record.ID, dto.UpdateAttendanceRequest{Status: &sick, Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusSick, updated.Status)
	require.NotNil(t, updated.Reason)
	assert.Equal(t, "flu", *updated.Reason)

	other := &models.Teacher{ID: "t2"}
	_, err = svc.Update(ctx, other, record.ID, dto.UpdateAttendanceRequest{Status: &sick})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	err = svc.Delete(ctx, other, record.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.Delete(ctx, attendanceTeacher, record.ID))
	err = svc.Delete(ctx, attendanceTeacher, record.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAttendanceServiceListHidesInactiveAndFiltersDates(t *testing.T) {
	svc, repo, _ := newAttendanceFixture()
	repo.seed("t1", "c1", "s1", 1, models.AttendanceStatusPresent)
	repo.seed("t1", "c1", "s1", 2, models.AttendanceStatusLate)
	repo.seed("t1", "c1", "s2", 3, models.AttendanceStatusAbsent)
	repo.items[2].IsActive = false

	records, err := svc.List(context.Background(), attendanceTeacher, dto.AttendanceListQuery{StartDate: "2024-05-02", EndDate: "2024-05-31"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendanceStatusLate, records[0].Status)

	_, err = svc.List(context.Background(), attendanceTeacher, dto.AttendanceListQuery{StartDate: "2024-05-09", EndDate: "2024-05-01"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
