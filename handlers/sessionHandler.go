package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adilzhn/FitCoachBackend/middleware"
	"github.com/adilzhn/FitCoachBackend/services"
)

// LogSession appends a performed workout for the authenticated client.
func LogSession(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var spec services.SessionSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	sessionID, err := sessionService.Log(profile.ID, spec)
	if err != nil {
		respondServiceError(c, "session_log", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID})
}

// SessionHistory lists the client's logged workouts, newest first.
func SessionHistory(c *gin.Context) {
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

	sessions, err := sessionService.History(profile.ID, limit)
	if err != nil {
		respondServiceError(c, "session_history", err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}
