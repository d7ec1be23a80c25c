package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/service"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
	"github.com/kite-portal/mentor-api/pkg/response"
)

// StaffHandler wires HTTP endpoints to the staff service.
type StaffHandler struct {
	service *service.StaffService
}

// NewStaffHandler creates a new handler.
func NewStaffHandler(svc *service.StaffService) *StaffHandler {
	return &StaffHandler{service: svc}
}

// Create godoc
// @Summary Provision a staff account
// @Description Creates a staff member in the caller's department
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body dto.CreateStaffRequest true "Staff"
// @Success 201 {object} models.StaffInfo
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /staff/create [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid staff payload"))
		return
	}

	info, err := h.service.Create(c.Request.Context(), principalFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, info)
}

// Available godoc
// @Summary Available mentors
// @Description Project mentors in the caller's department with capacity left
// @Tags Staff
// @Produce json
// @Success 200 {array} dto.AvailableStaff
// @Failure 401 {object} map[string]string
// @Router /staff/available [get]
func (h *StaffHandler) Available(c *gin.Context) {
	staff, err := h.service.Available(c.Request.Context(), principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, staff)
}
