package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adilzhn/FitCoachBackend/db"
	"github.com/adilzhn/FitCoachBackend/middleware"
	"github.com/adilzhn/FitCoachBackend/models"
	"github.com/adilzhn/FitCoachBackend/utils"
)

// CreateEvent schedules a calendar event for the PT, optionally linked to
// an assigned client.
func CreateEvent(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		ClientID *uint     `json:"client_id"`
		Type     string    `json:"type"`
		Title    string    `json:"title" binding:"required"`
		StartsAt time.Time `json:"starts_at" binding:"required"`
		EndsAt   time.Time `json:"ends_at"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if input.EndsAt.IsZero() {
		input.EndsAt = input.StartsAt.Add(time.Hour)
	}
	if !input.EndsAt.After(input.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event must end after it starts"})
		return
	}

	if input.ClientID != nil {
		var assignment models.PTClientAssignment
		if err := db.DB.Where("pt_id = ? AND client_id = ? AND status = ?",
			profile.ID, *input.ClientID, models.AssignmentActive).
			First(&assignment).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not assigned to you"})
			return
		}
	}

	eventType := input.Type
	if eventType == "" {
		eventType = models.EventTypeSession
	}

	event := models.CalendarEvent{
		PTID:     profile.ID,
		ClientID: input.ClientID,
		Type:     eventType,
		Title:    input.Title,
		StartsAt: input.StartsAt.UTC(),
		EndsAt:   input.EndsAt.UTC(),
	}

	if err := db.DB.Create(&event).Error; err != nil {
		utils.Logger.Error("event_create_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event created", "event": event})
}

// ListEvents returns the PT's events inside an optional from/to window.
func ListEvents(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := db.DB.Where("pt_id = ?", profile.ID)

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from timestamp"})
			return
		}
		query = query.Where("starts_at >= ?", from.UTC())
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to timestamp"})
			return
		}
		query = query.Where("starts_at < ?", to.UTC())
	}

	var events []models.CalendarEvent
	if err := query.Order("starts_at ASC").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, events)
}
