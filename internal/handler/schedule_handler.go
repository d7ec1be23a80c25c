package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/service"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
	"github.com/kite-portal/mentor-api/pkg/response"
)

// ScheduleHandler wires HTTP endpoints to the schedule service.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler creates a new handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// List godoc
// @Summary List review schedules
// @Description Schedules visible to the caller's role scope, newest first
// @Tags Schedules
// @Produce json
// @Success 200 {array} models.Schedule
// @Failure 401 {object} map[string]string
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	schedules, err := h.service.List(c.Request.Context(), principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules)
}

// Create godoc
// @Summary Open a review window
// @Description Creates a schedule and one pending review per approved team in scope
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.CreateScheduleRequest true "Window"
// @Success 201 {object} dto.CreateScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /schedules/create [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}

	res, err := h.service.Create(c.Request.Context(), principalFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}
