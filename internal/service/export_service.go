package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-gradebook-api/internal/dto"
	"github.com/noah-isme/sma-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
	"github.com/noah-isme/sma-gradebook-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var gradebookExportHeaders = []string{"NIS", "Student", "Score", "Max Score", "Percentage", "Grade", "GPA", "Late", "Late Penalty", "Published"}

type gradeRecordLister interface {
	List(ctx context.Context, filter models.AcademicRecordFilter) ([]models.AcademicRecordDetail, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
}

// ExportFile is a rendered document ready to be streamed to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders an assignment's gradebook as CSV or PDF.
type ExportService struct {
	records     gradeRecordLister
	assignments assignmentLookup
	renderers   map[string]datasetRenderer
	enabled     bool
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the package exporters.
func NewExportService(records gradeRecordLister, assignments assignmentLookup, enabled bool, validate *validator.Validate, logger *zap.Logger, csv, pdf datasetRenderer) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		records:     records,
		assignments: assignments,
		renderers:   map[string]datasetRenderer{ExportFormatCSV: csv, ExportFormatPDF: pdf},
		enabled:     enabled,
		validator:   validate,
		logger:      logger,
	}
}

// Gradebook renders every grade the teacher recorded for one assignment.
func (s *ExportService) Gradebook(ctx context.Context, teacher *models.Teacher, query dto.GradebookExportQuery) (*ExportFile, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "gradebook exports are disabled")
	}
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export query")
	}
	format := strings.ToLower(query.Format)
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	assignment, err := s.assignments.FindByIDForTeacher(ctx, query.AssignmentID, teacher.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}

	records, err := s.records.List(ctx, models.AcademicRecordFilter{TeacherID: teacher.ID, AssignmentID: assignment.ID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}

	data, err := renderer.Render(gradebookDataset(assignment, records))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.logger.Info("gradebook exported",
		zap.String("teacher_id", teacher.ID),
		zap.String("assignment_id", assignment.ID),
		zap.String("format", format),
		zap.Int("rows", len(records)))

	return &ExportFile{
		Filename:    fmt.Sprintf("gradebook-%s.%s", slugify(assignment.Title, assignment.ID), format),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

func gradebookDataset(assignment *models.AssignmentDetail, records []models.AcademicRecordDetail) export.Dataset {
	title := assignment.Title
	if assignment.ClassName != "" || assignment.SubjectName != "" {
		title = fmt.Sprintf("%s - %s %s", assignment.Title, assignment.ClassName, assignment.SubjectName)
	}
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, map[string]string{
			"NIS":          record.StudentNIS,
			"Student":      record.StudentName,
			"Score":        formatNumber(record.Score),
			"Max Score":    formatNumber(record.MaxScore),
			"Percentage":   formatNumber(round2(record.Percentage)),
			"Grade":        record.Grade,
			"GPA":          formatNumber(record.GPA),
			"Late":         strconv.FormatBool(record.IsLate),
			"Late Penalty": formatNumber(record.LatePenaltyApplied),
			"Published":    strconv.FormatBool(record.IsPublished),
		})
	}
	return export.Dataset{Title: strings.TrimSpace(title), Headers: gradebookExportHeaders, Rows: rows}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func slugify(title, fallback string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return fallback
	}
	return slug
}
