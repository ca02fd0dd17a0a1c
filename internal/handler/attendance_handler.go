package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-gradebook-api/internal/dto"
	"github.com/noah-isme/sma-gradebook-api/internal/models"
	"github.com/noah-isme/sma-gradebook-api/pkg/response"
)

type attendanceService interface {
	Create(ctx context.Context, teacher *models.Teacher, req dto.CreateAttendanceRequest) (*models.AttendanceRecord, error)
	BulkCreate(ctx context.Context, teacher *models.Teacher, req dto.BulkAttendanceRequest) (*dto.BulkAttendanceResult, error)
	Update(ctx context.Context, teacher *models.Teacher, id string, req dto.UpdateAttendanceRequest) (*models.AttendanceRecord, error)
	Delete(ctx context.Context, teacher *models.Teacher, id string) error
	List(ctx context.Context, teacher *models.Teacher, query dto.AttendanceListQuery) ([]models.AttendanceRecordDetail, error)
}

type attendanceAnalyticsService interface {
	Patterns(ctx context.Context, teacher *models.Teacher, classID string) ([]dto.AttendancePattern, bool, error)
	Analytics(ctx context.Context, teacher *models.Teacher, classID string) (*dto.AttendanceAnalytics, bool, error)
}

// AttendanceHandler exposes attendance recording and analytics endpoints.
type AttendanceHandler struct {
	attendance attendanceService
	analytics  attendanceAnalyticsService
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(attendance attendanceService, analytics attendanceAnalyticsService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, analytics: analytics}
}

// Create godoc
// @Summary Record attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.CreateAttendanceRequest true "Attendance record"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /attendance/records [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	var req dto.CreateAttendanceRequest
	if !bindJSON(c, &req, "invalid attendance payload") {
		return
	}
	record, err := h.attendance.Create(c.Request.Context(), teacher, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// BulkCreate godoc
// @Summary Record attendance for a class
// @Description Students that already have a record on the date are skipped and listed in the result.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.BulkAttendanceRequest true "Class register"
// @Success 201 {object} response.Envelope
// @Router /attendance/records/bulk [post]
func (h *AttendanceHandler) BulkCreate(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	var req dto.BulkAttendanceRequest
	if !bindJSON(c, &req, "invalid bulk attendance payload") {
		return
	}
	result, err := h.attendance.BulkCreate(c.Request.Context(), teacher, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update godoc
// @Summary Update attendance record
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Attendance record ID"
// @Param payload body dto.UpdateAttendanceRequest true "Status and reason"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/records/{id} [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	var req dto.UpdateAttendanceRequest
	if !bindJSON(c, &req, "invalid attendance payload") {
		return
	}
	record, err := h.attendance.Update(c.Request.Context(), teacher, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Delete godoc
// @Summary Delete attendance record
// @Tags Attendance
// @Param id path string true "Attendance record ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /attendance/records/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	if err := h.attendance.Delete(c.Request.Context(), teacher, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// List godoc
// @Summary List attendance records
// @Tags Attendance
// @Produce json
// @Param classId query string false "Filter by class"
// @Param startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /attendance/records [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	var query dto.AttendanceListQuery
	if !bindQuery(c, &query) {
		return
	}
	records, err := h.attendance.List(c.Request.Context(), teacher, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Patterns godoc
// @Summary Attendance patterns per student
// @Tags Attendance
// @Produce json
// @Param classId query string false "Limit to a class"
// @Success 200 {object} response.Envelope
// @Router /attendance/patterns [get]
func (h *AttendanceHandler) Patterns(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	patterns, hit, err := h.analytics.Patterns(c.Request.Context(), teacher, c.Query("classId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	cached(c, patterns, hit)
}

// Analytics godoc
// @Summary Attendance rollup per class
// @Tags Attendance
// @Produce json
// @Param classId query string false "Limit to a class"
// @Success 200 {object} response.Envelope
// @Router /attendance/analytics [get]
func (h *AttendanceHandler) Analytics(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	analytics, hit, err := h.analytics.Analytics(c.Request.Context(), teacher, c.Query("classId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	cached(c, analytics, hit)
}
