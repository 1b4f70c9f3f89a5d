package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jjss-seva/registration-service/internal/services"
	"github.com/jjss-seva/registration-service/internal/utils"
)

type HandlerManager struct {
	registrationHandler *RegistrationHandler
	dashboardHandler    *DashboardHandler
	authHandler         *AuthHandler

	serviceManager services.ServiceManager
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		registrationHandler: NewRegistrationHandler(serviceManager.Registration(), logger),
		dashboardHandler:    NewDashboardHandler(serviceManager.Dashboard(), logger),
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		serviceManager:      serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Public registration routes
		registrations := v1.Group("/registrations")
		{
			registrations.POST("", hm.registrationHandler.Submit)
			registrations.GET("/:application_id", hm.registrationHandler.GetReceipt)
		}

		v1.POST("/location-link", hm.registrationHandler.BuildLocationLink)

		// Admin routes; everything except login needs a session
		admin := v1.Group("/admin")
		{
			admin.POST("/login", hm.authHandler.Login)

			authed := admin.Group("")
			authed.Use(SessionAuthMiddleware(hm.serviceManager.Auth()))
			{
				authed.POST("/logout", hm.authHandler.Logout)
				authed.GET("/registrations", hm.dashboardHandler.List)
				authed.GET("/registrations/stats", hm.dashboardHandler.Stats)
				authed.GET("/registrations/export", hm.dashboardHandler.ExportCSV)
				authed.GET("/registrations/export.xlsx", hm.dashboardHandler.ExportXLSX)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "registration-service",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "registration-service",
		})
	})
}
