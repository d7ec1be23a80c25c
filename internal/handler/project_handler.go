package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/service"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
	"github.com/kite-portal/mentor-api/pkg/response"
)

// ProjectHandler wires HTTP endpoints to the project service.
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new handler.
func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// List godoc
// @Summary List projects
// @Description Projects visible to the caller's role scope, newest first
// @Tags Projects
// @Produce json
// @Success 200 {array} dto.ProjectListItem
// @Failure 401 {object} map[string]string
// @Router /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Details godoc
// @Summary Project details
// @Description Composed project view with team, lead, mentor and reviews
// @Tags Projects
// @Produce json
// @Param project_id query string true "Project ID"
// @Success 200 {object} dto.ProjectDetail
// @Failure 404 {object} map[string]string
// @Router /projects/details [get]
func (h *ProjectHandler) Details(c *gin.Context) {
	projectID := c.Query("project_id")
	if projectID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "project_id is required"))
		return
	}

	detail, err := h.service.Get(c.Request.Context(), principalFromContext(c), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// MentorApprove godoc
// @Summary Mentor decision on a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param payload body dto.ProjectApprovalRequest true "Decision"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/approve-mentors [post]
func (h *ProjectHandler) MentorApprove(c *gin.Context) {
	req, ok := h.bindApproval(c)
	if !ok {
		return
	}

	if err := h.service.MentorApprove(c.Request.Context(), principalFromContext(c), req.ProjectID, *req.Approved); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Project approval updated"})
}

// HODApprove godoc
// @Summary HOD decision on a project
// @Description Requires the mentor approval to already be granted
// @Tags Projects
// @Accept json
// @Produce json
// @Param payload body dto.ProjectApprovalRequest true "Decision"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/approve-hod [patch]
func (h *ProjectHandler) HODApprove(c *gin.Context) {
	req, ok := h.bindApproval(c)
	if !ok {
		return
	}

	if err := h.service.HODApprove(c.Request.Context(), principalFromContext(c), req.ProjectID, *req.Approved); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Project approval updated"})
}

func (h *ProjectHandler) bindApproval(c *gin.Context) (dto.ProjectApprovalRequest, bool) {
	var req dto.ProjectApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid approval payload"))
		return req, false
	}
	if req.ProjectID == "" || req.Approved == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "project_id and approved are required"))
		return req, false
	}
	return req, true
}
