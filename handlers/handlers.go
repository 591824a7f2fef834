package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/adilzhn/FitCoachBackend/services"
	"github.com/adilzhn/FitCoachBackend/utils"
)

var (
	catalogService      *services.CatalogService
	routineService      *services.RoutineService
	sessionService      *services.SessionService
	dashboardService    *services.DashboardService
	alertService        *services.AlertService
	notificationService *services.NotificationService
)

// Init wires the service layer. Must run after db.Connect.
func Init(gdb *gorm.DB, logger *zap.Logger) {
	catalogService = services.NewCatalogService(gdb, logger)
	routineService = services.NewRoutineService(gdb, logger)
	notificationService = services.NewNotificationService(gdb, logger)
	sessionService = services.NewSessionService(gdb, logger, notificationService)
	dashboardService = services.NewDashboardService(gdb, logger, sessionService, routineService)
	alertService = services.NewAlertService(gdb, logger)
}

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, not-found 404, everything else a generic 500 with the
// detail kept server-side.
func respondServiceError(c *gin.Context, handler string, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		utils.Logger.Error(handler+"_failed", zap.Error(err))
		utils.ErrorCount.WithLabelValues(handler, "store").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
