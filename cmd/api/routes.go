package main

import (
	"activity-platform/internal/httpapi"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(
	r *gin.Engine,
	h httpapi.Handlers,
	guard gin.HandlerFunc,
	loginTracker gin.HandlerFunc,
	loginLimiter gin.HandlerFunc,
) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", h.Register)
			// The interceptor sits closest to the handler so it sees the
			// response body exactly as written.
			users.POST("/login", loginLimiter, loginTracker, h.Login)
			users.GET("/profile", guard, h.Profile)
		}

		activities := api.Group("/activities")
		activities.Use(guard)
		{
			activities.GET("/my-activities", h.MyActivities)
			activities.GET("/all", h.AllActivities)
			activities.POST("/track", h.Track)
		}
	}
}
