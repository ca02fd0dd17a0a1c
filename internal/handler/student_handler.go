package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
	"github.com/noah-isme/sma-gradebook-api/pkg/response"
)

type rosterService interface {
	Roster(ctx context.Context, teacher *models.Teacher, classID, termID string) ([]models.RosterEntry, error)
}

// StudentHandler serves class rosters.
type StudentHandler struct {
	students rosterService
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(students rosterService) *StudentHandler {
	return &StudentHandler{students: students}
}

// Roster godoc
// @Summary Class roster
// @Tags Students
// @Produce json
// @Param classId path string true "Class ID"
// @Param termId query string false "Limit to enrollments of a term"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /students/{classId} [get]
func (h *StudentHandler) Roster(c *gin.Context) {
	teacher, ok := requireTeacher(c)
	if !ok {
		return
	}
	roster, err := h.students.Roster(c.Request.Context(), teacher, c.Param("classId"), c.Query("termId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster)
}
