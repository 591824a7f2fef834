package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/adilzhn/FitCoachBackend/db"
	"github.com/adilzhn/FitCoachBackend/models"
	"github.com/adilzhn/FitCoachBackend/utils"
)

// AuthMiddleware validates the bearer token and loads the profile into the
// context under "profile".
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims := &utils.Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return utils.JWTKey(), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		var profile models.Profile
		if err := db.DB.First(&profile, claims.ProfileID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "profile not found"})
			c.Abort()
			return
		}

		c.Set("profile", profile)
		c.Next()
	}
}

// RoleMiddleware restricts the route to the given roles (pt, client).
func RoleMiddleware(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := c.Get("profile")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		profile := p.(models.Profile)
		for _, a := range allowed {
			if profile.Role == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// CurrentProfile pulls the authenticated profile out of the context.
func CurrentProfile(c *gin.Context) (models.Profile, bool) {
	p, ok := c.Get("profile")
	if !ok {
		return models.Profile{}, false
	}
	profile, ok := p.(models.Profile)
	return profile, ok
}
