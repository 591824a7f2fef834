package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adilzhn/FitCoachBackend/middleware"
	"github.com/adilzhn/FitCoachBackend/services"
)

// ListCatalog returns the PT's exercise catalog, optionally filtered by
// ?q= substring.
func ListCatalog(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := catalogService.List(profile.ID, c.Query("q"))
	if err != nil {
		respondServiceError(c, "catalog_list", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ResolveCatalogEntry resolves a reference to a canonical entry, creating
// one when absent. Calling it twice with case-varied names returns the same
// id both times.
func ResolveCatalogEntry(c *gin.Context) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var ref services.CatalogRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	id, err := catalogService.Resolve(profile.ID, ref)
	if err != nil {
		respondServiceError(c, "catalog_resolve", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"catalog_id": id})
}
