package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kite-portal/mentor-api/internal/models"
	"github.com/kite-portal/mentor-api/internal/service"
	"github.com/kite-portal/mentor-api/pkg/config"
	appErrors "github.com/kite-portal/mentor-api/pkg/errors"
	"github.com/kite-portal/mentor-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
	session config.SessionConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{service: svc, session: session}
}

// Login godoc
// @Summary Authenticate staff member
// @Description Authenticate by email and password, sets the session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, token, int(h.session.TTL.Seconds()), "/", "", h.session.Secure, true)
	response.JSON(c, http.StatusOK, res)
}

// Logout godoc
// @Summary End the current session
// @Description Revokes the session token and clears the cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := h.sessionToken(c); token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			response.Error(c, err)
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.Secure, true)
	response.JSON(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Session godoc
// @Summary Current session
// @Description Returns the authenticated principal
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.SessionView
// @Failure 401 {object} map[string]string
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	p := principalFromContext(c)
	if p == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	response.JSON(c, http.StatusOK, models.SessionView{
		UserID:     p.UserID,
		StaffID:    p.StaffID,
		Email:      p.Email,
		Role:       p.Roles.String(),
		Department: p.Department,
		Section:    p.Section,
	})
}

func (h *AuthHandler) sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(h.session.CookieName); err == nil {
		return cookie
	}
	return ""
}
