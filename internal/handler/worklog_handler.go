package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/service"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
	"github.com/kite-portal/mentor-api/pkg/response"
)

// WorkLogHandler wires HTTP endpoints to the work log service.
type WorkLogHandler struct {
	service *service.WorkLogService
}

// NewWorkLogHandler creates a new handler.
func NewWorkLogHandler(svc *service.WorkLogService) *WorkLogHandler {
	return &WorkLogHandler{service: svc}
}

// Pending godoc
// @Summary Pending logs
// @Description Unreviewed logs across the mentor's teams, newest first
// @Tags Logs
// @Produce json
// @Success 200 {array} dto.PendingLog
// @Failure 401 {object} map[string]string
// @Router /logs/pending [get]
func (h *WorkLogHandler) Pending(c *gin.Context) {
	logs, err := h.service.Pending(c.Request.Context(), principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs)
}

// ByStudent godoc
// @Summary One student's logs
// @Tags Logs
// @Produce json
// @Param student_id query string true "Student ID"
// @Success 200 {array} dto.StudentLog
// @Failure 400 {object} map[string]string
// @Router /logs/student [get]
func (h *WorkLogHandler) ByStudent(c *gin.Context) {
	studentID := c.Query("student_id")
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student_id is required"))
		return
	}

	logs, err := h.service.ByStudent(c.Request.Context(), principalFromContext(c), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs)
}

// Students godoc
// @Summary Students with logs
// @Description Students who wrote logs in the mentor's teams
// @Tags Logs
// @Produce json
// @Success 200 {array} models.Student
// @Router /logs/students [get]
func (h *WorkLogHandler) Students(c *gin.Context) {
	students, err := h.service.Students(c.Request.Context(), principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Approve godoc
// @Summary Review a log entry
// @Description Writes the mentor decision and optional remarks
// @Tags Logs
// @Accept json
// @Produce json
// @Param payload body dto.ApproveLogWireRequest true "Decision"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /logs/approve [patch]
func (h *WorkLogHandler) Approve(c *gin.Context) {
	var req dto.ApproveLogWireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid log payload"))
		return
	}
	if req.LogID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "log_id is required"))
		return
	}

	err := h.service.Approve(c.Request.Context(), principalFromContext(c), req.LogID, dto.ApproveLogRequest{
		Approved: req.Approved,
		Comments: req.Comments,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Log updated"})
}
