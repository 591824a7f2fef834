package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adilzhn/FitCoachBackend/handlers"
	"github.com/adilzhn/FitCoachBackend/middleware"
	"github.com/adilzhn/FitCoachBackend/models"
)

// RegisterAPIRoutes wires every endpoint under /api. Trainer-only routes
// sit behind the pt role guard, client actions behind the client guard.
func RegisterAPIRoutes(r *gin.Engine) {
	r.POST("/api/register", handlers.Register)
	r.POST("/api/login", handlers.Login)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/profile", handlers.Profile)
		api.PUT("/profile", handlers.UpdateProfile)

		api.GET("/notifications", handlers.ListNotifications)
		api.PUT("/notifications/:id/read", handlers.MarkNotificationRead)

		api.GET("/routines", handlers.ListRoutines)
		api.GET("/routines/:id/view",
			middleware.CacheMiddleware(10*time.Minute), handlers.GetRoutineView)

		api.GET("/health-logs", handlers.ListHealthLogs)
		api.POST("/health-logs", handlers.CreateHealthLog)

		pt := api.Group("")
		pt.Use(middleware.RoleMiddleware(models.RolePT))
		{
			pt.POST("/routines", handlers.UpsertRoutine)
			pt.PUT("/routines/:id", handlers.UpsertRoutine)
			pt.PUT("/routines/:id/active", handlers.SetRoutineActive)

			pt.GET("/catalog", handlers.ListCatalog)
			pt.POST("/catalog/resolve", handlers.ResolveCatalogEntry)

			pt.POST("/clients", handlers.AssignClient)
			pt.GET("/clients", handlers.ListClients)

			pt.POST("/events", handlers.CreateEvent)
			pt.GET("/events", handlers.ListEvents)
			pt.GET("/alerts", handlers.GetAlerts)
		}

		client := api.Group("")
		client.Use(middleware.RoleMiddleware(models.RoleClient))
		{
			client.POST("/sessions", handlers.LogSession)
			client.GET("/sessions", handlers.SessionHistory)
			client.GET("/dashboard", handlers.GetDashboard)
		}
	}
}
