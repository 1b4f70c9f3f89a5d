package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jjss-seva/registration-service/internal/services"
	"github.com/jjss-seva/registration-service/internal/utils"
)

// AuthHandler serves admin login and logout.
type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Login exchanges the admin password for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Admin login attempt")

	var req services.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Logout invalidates the presented session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.LogRequest(c, "Admin logout")

	if err := h.service.Logout(c.Request.Context(), c.GetString("session_token")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out"})
}
