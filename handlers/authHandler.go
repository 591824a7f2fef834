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

func Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}

	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	role := input.Role
	if role != models.RolePT {
		role = models.RoleClient
	}

	var existing models.Profile
	if err := db.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.Logger.Error("password_hash_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}

	profile := models.Profile{
		Username:     input.Username,
		PasswordHash: hashedPassword,
		FullName:     input.FullName,
		Role:         role,
	}

	if err := db.DB.Create(&profile).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	tokenString, _ := utils.GenerateToken(profile.ID, profile.Username, profile.Role)

	utils.Logger.Info("profile_registered",
		zap.Uint("profile_id", profile.ID),
		zap.String("role", profile.Role),
	)

	c.JSON(http.StatusCreated, gin.H{
		"token":   tokenString,
		"profile": profile,
	})
}

func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	var profile models.Profile
	if err := db.DB.Where("username = ?", input.Username).First(&profile).Error; err != nil {
		utils.Logger.Warn("login_profile_not_found", zap.String("username", input.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !utils.CheckPasswordHash(input.Password, profile.PasswordHash) {
		utils.Logger.Warn("login_incorrect_password", zap.String("username", input.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, _ := utils.GenerateToken(profile.ID, profile.Username, profile.Role)

	utils.Logger.Info("profile_logged_in", zap.Uint("profile_id", profile.ID))

	c.JSON(http.StatusOK, gin.H{
		"token":   tokenString,
		"profile": profile,
	})
}

func Profile(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile changes the display name and the weekly training goal.
func UpdateProfile(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		FullName              *string `json:"full_name"`
		TrainingFrequencyGoal *int    `json:"training_frequency_goal"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.TrainingFrequencyGoal != nil {
		if *input.TrainingFrequencyGoal < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Goal must not be negative"})
			return
		}
		profile.TrainingFrequencyGoal = *input.TrainingFrequencyGoal
	}

	if err := db.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	if err := middleware.InvalidateProfileCache(profile.ID); err != nil {
		utils.Logger.Warn("cache_invalidate_failed", zap.Uint("profile_id", profile.ID), zap.Error(err))
	}

	utils.Logger.Info("profile_updated", zap.Uint("profile_id", profile.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": profile})
}
