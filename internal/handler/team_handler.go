package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/service"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
	"github.com/kite-portal/mentor-api/pkg/response"
)

// TeamHandler wires HTTP endpoints to the team service.
type TeamHandler struct {
	service *service.TeamService
}

// NewTeamHandler creates a new handler.
func NewTeamHandler(svc *service.TeamService) *TeamHandler {
	return &TeamHandler{service: svc}
}

// List godoc
// @Summary List teams
// @Description Teams visible to the caller's role scope, newest first
// @Tags Teams
// @Produce json
// @Success 200 {array} dto.TeamListItem
// @Failure 401 {object} map[string]string
// @Router /teams [get]
func (h *TeamHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Details godoc
// @Summary Team details
// @Description Composed team view with lead, mentor, reviews and schedules
// @Tags Teams
// @Produce json
// @Param team_id query string true "Team ID"
// @Success 200 {object} dto.TeamDetail
// @Failure 404 {object} map[string]string
// @Router /teams/details [get]
func (h *TeamHandler) Details(c *gin.Context) {
	teamID := c.Query("team_id")
	if teamID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "team_id is required"))
		return
	}

	detail, err := h.service.Get(c.Request.Context(), principalFromContext(c), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// UpdateApproval godoc
// @Summary Approve or reject a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param payload body dto.UpdateTeamApprovalRequest true "Decision"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/update-approval [patch]
func (h *TeamHandler) UpdateApproval(c *gin.Context) {
	var req dto.UpdateTeamApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid approval payload"))
		return
	}
	if req.TeamID == "" || req.IsApproved == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "team_id and is_approved are required"))
		return
	}

	if err := h.service.Approve(c.Request.Context(), principalFromContext(c), req.TeamID, *req.IsApproved); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Team approval updated"})
}

// AssignMentor godoc
// @Summary Assign a mentor to a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param payload body dto.AssignTeamMentorRequest true "Assignment"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /teams/assign-mentor [patch]
func (h *TeamHandler) AssignMentor(c *gin.Context) {
	var req dto.AssignTeamMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	if req.TeamID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "team_id is required"))
		return
	}

	err := h.service.AssignMentor(c.Request.Context(), principalFromContext(c), req.TeamID, dto.AssignMentorRequest{MentorID: req.MentorID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Mentor assigned"})
}
