package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adilzhn/FitCoachBackend/middleware"
	"github.com/adilzhn/FitCoachBackend/models"
	"github.com/adilzhn/FitCoachBackend/services"
)

// UpsertRoutine creates a routine or fully replaces its exercise/set graph.
// The body is a services.RoutineSpec; routine_id present means replace.
func UpsertRoutine(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var spec services.RoutineSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if err := middleware.ValidateStruct(spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if id := c.Param("id"); id != "" {
		parsed, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid routine id"})
			return
		}
		routineID := uint(parsed)
		spec.RoutineID = &routineID
	}

	routineID, err := routineService.Upsert(profile.ID, spec)
	if err != nil {
		respondServiceError(c, "routine_upsert", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"routine_id": routineID})
}

// GetRoutineView returns the denormalized client-facing routine. Readable
// only by the owning PT or the assigned client.
func GetRoutineView(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid routine id"})
		return
	}

	view, err := routineService.GetView(profile, uint(parsed))
	if err != nil {
		respondServiceError(c, "routine_view", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListRoutines returns the PT's routines, or the client's assigned ones.
func ListRoutines(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var (
		routines []models.Routine
		err      error
	)
	if profile.Role == models.RolePT {
		routines, err = routineService.ListForPT(profile.ID)
	} else {
		activeOnly := c.Query("all") != "true"
		routines, err = routineService.ListForClient(profile.ID, activeOnly)
	}
	if err != nil {
		respondServiceError(c, "routine_list", err)
		return
	}

	c.JSON(http.StatusOK, routines)
}

// SetRoutineActive soft-activates or deactivates a routine. Routines are
// never hard-deleted.
func SetRoutineActive(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid routine id"})
		return
	}

	var input struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := routineService.SetActive(profile.ID, uint(parsed), *input.IsActive); err != nil {
		respondServiceError(c, "routine_activate", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Routine updated"})
}
