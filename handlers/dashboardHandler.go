package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adilzhn/FitCoachBackend/middleware"
)

// GetDashboard returns the authenticated client's aggregated dashboard:
// streak stats, weekly goal progress and active routines.
func GetDashboard(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dashboard, err := dashboardService.ForClient(profile.ID, time.Now().UTC())
	if err != nil {
		respondServiceError(c, "dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetAlerts returns trainer-facing safety alerts for sessions starting in
// the next 15 minutes where the client has an active health issue.
func GetAlerts(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	alerts, err := alertService.UpcomingAlerts(profile.ID, time.Now().UTC())
	if err != nil {
		respondServiceError(c, "alerts", err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// ListNotifications returns the profile's notifications, newest first.
func ListNotifications(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	notifs, err := notificationService.ListForProfile(profile.ID, limit)
	if err != nil {
		respondServiceError(c, "notifications", err)
		return
	}

	c.JSON(http.StatusOK, notifs)
}

// MarkNotificationRead stamps one of the profile's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	if err := notificationService.MarkRead(profile.ID, uint(parsed)); err != nil {
		respondServiceError(c, "notification_read", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification read"})
}
