package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adilzhn/FitCoachBackend/db"
	"github.com/adilzhn/FitCoachBackend/middleware"
	"github.com/adilzhn/FitCoachBackend/models"
	"github.com/adilzhn/FitCoachBackend/utils"
)

// AssignClient links a client to the PT by username.
func AssignClient(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	var client models.Profile
	if err := db.DB.Where("username = ? AND role = ?", input.Username, models.RoleClient).
		First(&client).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	var existing models.PTClientAssignment
	if err := db.DB.Where("pt_id = ? AND client_id = ? AND status <> ?",
		profile.ID, client.ID, models.AssignmentEnded).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Client already assigned"})
		return
	}

	assignment := models.PTClientAssignment{
		PTID:     profile.ID,
		ClientID: client.ID,
		Status:   models.AssignmentActive,
	}
	if err := db.DB.Create(&assignment).Error; err != nil {
		utils.Logger.Error("assignment_create_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign client"})
		return
	}

	notificationService.Record(client.ID, "assignment",
		profile.FullName+" is now your trainer")

	utils.Logger.Info("client_assigned",
		zap.Uint("pt_id", profile.ID),
		zap.Uint("client_id", client.ID),
	)
	c.JSON(http.StatusOK, gin.H{"message": "Client assigned", "assignment": assignment})
}

// ListClients returns the PT's actively assigned client profiles.
func ListClients(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var clients []models.Profile
	err := db.DB.
		Joins("JOIN pt_client_assignments ON pt_client_assignments.client_id = profiles.id").
		Where("pt_client_assignments.pt_id = ? AND pt_client_assignments.status = ?",
			profile.ID, models.AssignmentActive).
		Find(&clients).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
		return
	}

	c.JSON(http.StatusOK, clients)
}
