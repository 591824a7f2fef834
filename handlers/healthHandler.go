package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adilzhn/FitCoachBackend/db"
	"github.com/adilzhn/FitCoachBackend/middleware"
	"github.com/adilzhn/FitCoachBackend/models"
	"github.com/adilzhn/FitCoachBackend/utils"
)

var validHealthStatuses = map[string]bool{
	models.HealthStatusAcute:     true,
	models.HealthStatusLingering: true,
	models.HealthStatusResolved:  true,
}

// CreateHealthLog appends an injury/status fact for a client. Logs are
// append-only; a RESOLVED entry closes an issue without deleting history.
func CreateHealthLog(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		ClientID    uint   `json:"client_id"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Status      string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if !validHealthStatuses[input.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be ACUTE, LINGERING or RESOLVED"})
		return
	}

	clientID := profile.ID
	if profile.Role == models.RolePT {
		if input.ClientID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client_id is required"})
			return
		}
		var assignment models.PTClientAssignment
		if err := db.DB.Where("pt_id = ? AND client_id = ? AND status = ?",
			profile.ID, input.ClientID, models.AssignmentActive).
			First(&assignment).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not assigned to you"})
			return
		}
		clientID = input.ClientID
	}

	log := models.ClientHealthLog{
		ClientID:    clientID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		LoggedAt:    time.Now().UTC(),
	}

	if err := db.DB.Create(&log).Error; err != nil {
		utils.Logger.Error("health_log_create_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create health log"})
		return
	}

	utils.Logger.Info("health_log_created",
		zap.Uint("client_id", clientID),
		zap.String("status", input.Status),
	)
	c.JSON(http.StatusOK, gin.H{"message": "Health log created", "log": log})
}

// ListHealthLogs returns a client's health history, newest first. A PT may
// read an assigned client's history via ?client_id=.
func ListHealthLogs(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	clientID := profile.ID
	if profile.Role == models.RolePT {
		raw := c.Query("client_id")
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client_id is required"})
			return
		}
		var assignment models.PTClientAssignment
		if err := db.DB.Where("pt_id = ? AND client_id = ? AND status = ?",
			profile.ID, uint(parsed), models.AssignmentActive).
			First(&assignment).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not assigned to you"})
			return
		}
		clientID = uint(parsed)
	}

	var logs []models.ClientHealthLog
	if err := db.DB.Where("client_id = ?", clientID).
		Order("logged_at DESC").
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch health logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}
