package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
)

type rosterCountStub struct {
	counts map[string]int
	asked  []string
}

func (s *rosterCountStub) CountRosterByClasses(_ context.Context, classIDs []string) (map[string]int, error) {
	s.asked = append(s.asked, classIDs...)
	out := make(map[string]int, len(classIDs))
	for _, id := range classIDs {
		if n, ok := s.counts[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

type gradebookFixture struct {
	svc         *GradebookService
	links       *fakeTeachingLinks
	assignments *fakeAssignmentRepo
	records     *fakeRecordRepo
	rosters     *rosterCountStub
	cache       *memoryCacheRepo
}

func newGradebookFixture(recent int) *gradebookFixture {
	f := &gradebookFixture{
		links:       newFakeTeachingLinks().add("t1", "c1", "math").add("t1", "c2", "math"),
		assignments: newFakeAssignmentRepo(),
		records:     newFakeRecordRepo(),
		rosters:     &rosterCountStub{counts: map[string]int{"c1": 3, "c2": 2}},
		cache:       newMemoryCacheRepo(),
	}
	cache := NewCacheService(f.cache, nil, 0, nil, true)
	f.svc = NewGradebookService(f.links, f.assignments, f.records, f.rosters, cache, nil, GradebookConfig{RecentAssignments: recent}, nil)
	return f
}

func (f *gradebookFixture) assignment(t *testing.T, classID string) string {
	t.Helper()
	a := &models.Assignment{Title: "Work " + classID, TeacherID: "t1", ClassID: classID, SubjectID: "math", TermID: "term-1", MaxScore: 100}
	require.NoError(t, f.assignments.Create(context.Background(), a))
	return a.ID
}

func (f *gradebookFixture) grade(t *testing.T, assignmentID, classID, studentID string, percentage float64) {
	t.Helper()
	id := assignmentID
	require.NoError(t, f.records.Create(context.Background(), &models.AcademicRecord{
		StudentID: studentID, TeacherID: "t1", ClassID: classID, SubjectID: "math", TermID: "term-1",
		AssignmentID: &id, Score: percentage, MaxScore: 100, Percentage: percentage, IsActive: true,
	}))
}

func TestGradebookOverviewCountsPendingGrades(t *testing.T) {
	f := newGradebookFixture(5)
	a1 := f.assignment(t, "c1")
	a2 := f.assignment(t, "c2")
	f.grade(t, a1, "c1", "s1", 80)
	f.grade(t, a2, "c2", "s7", 60)
	f.grade(t, a2, "c2", "s8", 70)

	overview, hit, err := f.svc.Overview(context.Background(), &models.Teacher{ID: "t1"})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, overview.TotalAssignments)
	assert.Equal(t, 3, overview.TotalGrades)
	assert.Equal(t, 2, overview.PendingGrades)
	assert.Equal(t, 70.0, overview.AveragePerformance)

	require.Len(t, overview.Classes, 2)
	byClass := map[string]float64{}
	for _, class := range overview.Classes {
		assert.Equal(t, 1, class.AssignmentCount)
		byClass[class.ClassID] = class.AverageScore
	}
	assert.Equal(t, 80.0, byClass["c1"])
	assert.Equal(t, 65.0, byClass["c2"])

	require.Len(t, overview.RecentAssignments, 2)
	assert.Equal(t, a2, overview.RecentAssignments[0].ID)
	assert.Equal(t, 2, overview.RecentAssignments[0].GradedStudents)
	assert.Equal(t, 2, overview.RecentAssignments[0].TotalStudents)
}

func TestGradebookOverviewLimitsRecentAssignments(t *testing.T) {
	f := newGradebookFixture(1)
	f.assignment(t, "c1")
	latest := f.assignment(t, "c1")

	overview, _, err := f.svc.Overview(context.Background(), &models.Teacher{ID: "t1"})
	require.NoError(t, err)
	require.Len(t, overview.RecentAssignments, 1)
	assert.Equal(t, latest, overview.RecentAssignments[0].ID)
	assert.Equal(t, 6, overview.PendingGrades)
	assert.Equal(t, []string{"c1"}, f.rosters.asked)
}

func TestGradebookOverviewEmpty(t *testing.T) {
	f := newGradebookFixture(5)

	overview, _, err := f.svc.Overview(context.Background(), &models.Teacher{ID: "t9"})
	require.NoError(t, err)
	assert.Zero(t, overview.TotalAssignments)
	assert.Zero(t, overview.AveragePerformance)
	assert.Empty(t, overview.Classes)
	assert.NotNil(t, overview.RecentAssignments)
}

func TestGradebookOverviewServedFromCache(t *testing.T) {
	f := newGradebookFixture(5)
	f.assignment(t, "c1")
	teacher := &models.Teacher{ID: "t1"}

	_, _, err := f.svc.Overview(context.Background(), teacher)
	require.NoError(t, err)
	assert.Contains(t, f.cache.data, GradebookKey("t1"))

	f.assignment(t, "c2")
	cached, hit, err := f.svc.Overview(context.Background(), teacher)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, cached.TotalAssignments)
}

func TestGradebookOverviewPropagatesLoadErrors(t *testing.T) {
	f := newGradebookFixture(5)
	f.links.err = errors.New("db down")

	_, _, err := f.svc.Overview(context.Background(), &models.Teacher{ID: "t1"})
	require.Error(t, err)
	assert.True(t, appErrors.IsInternal(err))
}

func TestGradebookOverviewPendingNeverNegative(t *testing.T) {
	f := newGradebookFixture(5)
	a := f.assignment(t, "c2")
	for _, student := range []string{"s1", "s2", "s3", "s4"} {
		f.grade(t, a, "c2", student, 75)
	}

	overview, _, err := f.svc.Overview(context.Background(), &models.Teacher{ID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, 4, overview.TotalGrades)
	assert.Equal(t, 0, overview.PendingGrades)
	require.Len(t, overview.RecentAssignments, 1)
	assert.Equal(t, 4, overview.RecentAssignments[0].GradedStudents)
	assert.Equal(t, 2, overview.RecentAssignments[0].TotalStudents)
}
