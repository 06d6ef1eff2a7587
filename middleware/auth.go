package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kennel-backend/models"
	"kennel-backend/utils"
)

// AdminKey is the gin context key holding the verified *models.Admin.
const AdminKey = "admin"

// RequireAdmin gates admin-only routes. It extracts the bearer token,
// validates it, then re-fetches the admin row on every request so that
// deactivating an account takes effect on the very next call instead of
// at token expiry. Expired and malformed tokens get the same generic 401.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Authentication token is missing")
			c.Abort()
			return
		}

		claims, status := utils.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if status != utils.TokenValid {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		var admin models.Admin
		if err := db.First(&admin, claims.AdminID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.JSONError(c, http.StatusNotFound, "Admin user not found")
			} else {
				utils.JSONError(c, http.StatusInternalServerError, "Failed to verify admin")
			}
			c.Abort()
			return
		}
		if !admin.IsActive {
			utils.JSONError(c, http.StatusForbidden, "Admin account is disabled")
			c.Abort()
			return
		}

		c.Set(AdminKey, &admin)
		c.Next()
	}
}

// CurrentAdmin returns the admin injected by RequireAdmin.
func CurrentAdmin(c *gin.Context) *models.Admin {
	if v, ok := c.Get(AdminKey); ok {
		if admin, ok := v.(*models.Admin); ok {
			return admin
		}
	}
	return nil
}
