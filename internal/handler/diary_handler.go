package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kite-portal/mentor-api/internal/dto"
	"github.com/kite-portal/mentor-api/internal/service"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
	"github.com/kite-portal/mentor-api/pkg/response"
)

// DiaryHandler wires HTTP endpoints to the diary service.
type DiaryHandler struct {
	service *service.DiaryService
	metrics *service.MetricsService
}

// NewDiaryHandler creates a new handler.
func NewDiaryHandler(svc *service.DiaryService, metrics *service.MetricsService) *DiaryHandler {
	return &DiaryHandler{service: svc, metrics: metrics}
}

// Generate godoc
// @Summary Diary payload
// @Description Aggregated team, roster, log, review and project data
// @Tags Diary
// @Accept json
// @Produce json
// @Param payload body dto.DiaryRequest true "Team"
// @Success 200 {object} dto.DiaryData
// @Failure 404 {object} map[string]string
// @Router /diary/generate [post]
func (h *DiaryHandler) Generate(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	data, err := h.service.Aggregate(c.Request.Context(), principalFromContext(c), req.TeamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data)
}

// PDF godoc
// @Summary Diary document
// @Description Renders the printable project work diary
// @Tags Diary
// @Accept json
// @Produce application/pdf
// @Param payload body dto.DiaryRequest true "Team"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /diary/pdf [post]
func (h *DiaryHandler) PDF(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	start := time.Now()
	document, err := h.service.RenderPDF(c.Request.Context(), principalFromContext(c), req.TeamID)
	h.metrics.ObserveDiaryRender(err == nil, time.Since(start))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="project-diary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", document)
}

func (h *DiaryHandler) bind(c *gin.Context) (dto.DiaryRequest, bool) {
	var req dto.DiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid diary payload"))
		return req, false
	}
	if req.TeamID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "teamId is required"))
		return req, false
	}
	return req, true
}
