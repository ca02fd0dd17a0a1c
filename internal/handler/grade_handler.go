package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-gradebook-api/internal/dto"
	"github.com/noah-isme/sma-gradebook-api/internal/models"
	"github.com/noah-isme/sma-gradebook-api/internal/service"
	"github.com/noah-isme/sma-gradebook-api/pkg/response"
)

type gradeService interface {
	SubmitGrades(ctx context.Context, teacher *models.Teacher, req dto.SubmitGradesRequest) (*dto.GradeSubmissionResult, error)
	UpdateGrade(ctx context.Context, teacher *models.Teacher, id string, req dto.UpdateGradeRequest) (*models.AcademicRecordDetail, error)
	List(ctx context.Context, teacher *models.Teacher, query dto.GradeListQuery) ([]models.AcademicRecordDetail, error)
	SetPublished(ctx context.Context, teacher *models.Teacher, req dto.PublishGradesRequest, published bool) (*dto.PublishGradesResult, error)
}

type gradebookService interface {
	Overview(ctx context.Context, teacher *models.Teacher) (*dto.GradebookOverview, bool, error)
}

type gradebookExporter interface {
	Gradebook(ctx context.Context, teacher *models.Teacher, query dto.GradebookExportQuery) (*service.ExportFile, error)
}

// GradeHandler exposes grading and gradebook endpoints.
type GradeHandler struct {
	grades    gradeService
	gradebook gradebookService
	exports   gradebookExporter
}

// NewGradeHandler constructs the handler.
func NewGradeHandler(grades gradeService, gradebook gradebookService, exports gradebookExporter) *GradeHandler {
	return &GradeHandler{grades: grades, gradebook: gradebook, exports: exports}
}

// List godoc
// @Summary List grades
// @Tags Grades
// @Produce json
// @Param classId query string false "Filter by class"
// @Param subjectId query string false "Filter by subject"
// @Param termId query string false "Filter by term"
// @Param assignmentId query string false "Filter by assignment"
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	var query dto.GradeListQuery
	if !bindQuery(c, &query) {
		return
	}
	records, err := h.grades.List(c.Request.Context(), teacher, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Submit godoc
// @Summary Submit grades for an assignment
// @Description Upserts one record per entry. Entries are applied independently and failures are reported per student.
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body dto.SubmitGradesRequest true "Grade batch"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grades [post]
func (h *GradeHandler) Submit(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	var req dto.SubmitGradesRequest
	if !bindJSON(c, &req, "invalid grade submission") {
		return
	}
	result, err := h.grades.SubmitGrades(c.Request.Context(), teacher, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Update godoc
// @Summary Correct a grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path string true "Academic record ID"
// @Param payload body dto.UpdateGradeRequest true "Correction"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grades/{id} [put]
func (h *GradeHandler) Update(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	var req dto.UpdateGradeRequest
	if !bindJSON(c, &req, "invalid grade update") {
		return
	}
	record, err := h.grades.UpdateGrade(c.Request.Context(), teacher, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Publish godoc
// @Summary Publish an assignment's grades
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body dto.PublishGradesRequest true "Assignment"
// @Success 200 {object} response.Envelope
// @Router /grades/publish [post]
func (h *GradeHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

// Unpublish godoc
// @Summary Hide an assignment's grades
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body dto.PublishGradesRequest true "Assignment"
// @Success 200 {object} response.Envelope
// @Router /grades/unpublish [post]
func (h *GradeHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *GradeHandler) setPublished(c *gin.Context, published bool) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	var req dto.PublishGradesRequest
	if !bindJSON(c, &req, "invalid publish payload") {
		return
	}
	result, err := h.grades.SetPublished(c.Request.Context(), teacher, req, published)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Overview godoc
// @Summary Gradebook overview
// @Tags Grades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grades/overview [get]
func (h *GradeHandler) Overview(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	overview, hit, err := h.gradebook.Overview(c.Request.Context(), teacher)
	if err != nil {
		response.Error(c, err)
		return
	}
	cached(c, overview, hit)
}

// Export godoc
// @Summary Export an assignment's gradebook
// @Tags Grades
// @Produce text/csv
// @Produce application/pdf
// @Param assignmentId query string true "Assignment ID"
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /grades/export [get]
func (h *GradeHandler) Export(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	var query dto.GradebookExportQuery
	if !bindQuery(c, &query) {
		return
	}
	file, err := h.exports.Gradebook(c.Request.Context(), teacher, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
