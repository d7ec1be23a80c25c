package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/service"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
	"github.com/kite-portal/mentor-api/pkg/response"
)

// ReviewHandler wires HTTP endpoints to the review service.
type ReviewHandler struct {
	service *service.ReviewService
	export  *service.ExportService
}

// NewReviewHandler creates a new handler.
func NewReviewHandler(svc *service.ReviewService, exportSvc *service.ExportService) *ReviewHandler {
	return &ReviewHandler{service: svc, export: exportSvc}
}

// List godoc
// @Summary List reviews
// @Description Reviews visible to the caller's role scope, newest first
// @Tags Reviews
// @Produce json
// @Success 200 {array} dto.ReviewItem
// @Failure 401 {object} map[string]string
// @Router /reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Update godoc
// @Summary Evaluate a review
// @Description Writes result, marks and completion; the completion date is stamped once
// @Tags Reviews
// @Accept json
// @Produce json
// @Param payload body dto.UpdateReviewRequest true "Evaluation"
// @Success 200 {object} models.Review
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reviews/update [patch]
func (h *ReviewHandler) Update(c *gin.Context) {
	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid evaluation payload"))
		return
	}
	if req.ReviewID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "review_id is required"))
		return
	}

	review, err := h.service.Evaluate(c.Request.Context(), principalFromContext(c), req.ReviewID, dto.EvaluateReviewRequest{
		Result:      req.Result,
		Marks:       req.Marks,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, review)
}

// Export godoc
// @Summary Export the review marks sheet
// @Description Renders the reviews in the caller's scope as CSV or PDF
// @Tags Reviews
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /reviews/export [get]
func (h *ReviewHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	result, err := h.export.MarksSheet(c.Request.Context(), principalFromContext(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}

// ListTemplates godoc
// @Summary List review templates
// @Tags Reviews
// @Produce json
// @Param review query string false "Review stage filter"
// @Success 200 {array} models.ReviewTemplate
// @Router /reviews/templates [get]
func (h *ReviewHandler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context(), c.Query("review"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, templates)
}

// CreateTemplate godoc
// @Summary Register a review template
// @Tags Reviews
// @Accept json
// @Produce json
// @Param payload body dto.CreateTemplateRequest true "Template"
// @Success 201 {object} models.ReviewTemplate
// @Failure 403 {object} map[string]string
// @Router /reviews/templates [post]
func (h *ReviewHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid template payload"))
		return
	}

	template, err := h.service.CreateTemplate(c.Request.Context(), principalFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, template)
}
