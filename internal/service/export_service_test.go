package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-gradebook-api/internal/dto"
	"github.com/noah-isme/sma-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
	"github.com/noah-isme/sma-gradebook-api/pkg/export"
)

type brokenRenderer struct{}

func (brokenRenderer) Render(export.Dataset) ([]byte, error) { return nil, errors.New("font missing") }
func (brokenRenderer) ContentType() string                  { return "application/pdf" }

func newExportFixture(t *testing.T, enabled bool) (*ExportService, string) {
	t.Helper()
	f := newGradeFixture(t)
	_, err := f.svc.SubmitGrades(context.Background(), f.teacher, f.submit(
		dto.GradeEntry{StudentID: "s1", Score: 72, IsLate: true},
		dto.GradeEntry{StudentID: "s2", Score: 95},
	))
	require.NoError(t, err)
	return NewExportService(f.records, f.assignments, enabled, nil, nil, nil, nil), f.assignment.ID
}

func TestExportServiceGradebookCSV(t *testing.T) {
	svc, assignmentID := newExportFixture(t, true)

	file, err := svc.Gradebook(context.Background(), &models.Teacher{ID: "t1"}, dto.GradebookExportQuery{AssignmentID: assignmentID})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "gradebook-essay.csv", file.Filename)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "NIS,Student,Score,Max Score,Percentage,Grade,GPA,Late,Late Penalty,Published", lines[0])
	assert.Contains(t, string(file.Data), ",72,100,72,C,2,true,10,false")
}

func TestExportServiceGradebookPDF(t *testing.T) {
	svc, assignmentID := newExportFixture(t, true)

	file, err := svc.Gradebook(context.Background(), &models.Teacher{ID: "t1"}, dto.GradebookExportQuery{AssignmentID: assignmentID, Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF-"))
}

func TestExportServiceGradebookErrors(t *testing.T) {
	svc, assignmentID := newExportFixture(t, true)
	ctx := context.Background()

	_, err := svc.Gradebook(ctx, &models.Teacher{ID: "t2"}, dto.GradebookExportQuery{AssignmentID: assignmentID})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Gradebook(ctx, &models.Teacher{ID: "t1"}, dto.GradebookExportQuery{AssignmentID: assignmentID, Format: "xlsx"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	disabled, _ := newExportFixture(t, false)
	_, err = disabled.Gradebook(ctx, &models.Teacher{ID: "t1"}, dto.GradebookExportQuery{AssignmentID: assignmentID})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrFeatureDisabled.Code, appErrors.FromError(err).Code)

	svc.renderers[ExportFormatPDF] = brokenRenderer{}
	_, err = svc.Gradebook(ctx, &models.Teacher{ID: "t1"}, dto.GradebookExportQuery{AssignmentID: assignmentID, Format: "pdf"})
	require.Error(t, err)
	assert.True(t, appErrors.IsInternal(err))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "unit-1-fractions", slugify("  Unit 1: Fractions!! ", "x"))
	assert.Equal(t, "asg-9", slugify("???", "asg-9"))
}
