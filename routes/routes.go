package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kennel-backend/controllers"
	"kennel-backend/middleware"
	"kennel-backend/utils"
)

const defaultMaxUploadBytes = 16 << 20 // 16MB

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers into the HTTP surface. The db handle is
// only used by the auth gate for its per-request admin re-fetch.
func SetupRouter(
	db *gorm.DB,
	uploadDir string,
	ac *controllers.AuthController,
	dc *controllers.DogController,
	pc *controllers.PuppyController,
	gc *controllers.GalleryController,
	bc *controllers.BookingController,
) *gin.Engine {
	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.BodyLimit(defaultMaxUploadBytes))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", uploadDir)

	r.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound, "Endpoint not found")
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "K9 Kennel API",
			"endpoints": gin.H{
				"health":   "/api/health",
				"auth":     "/api/auth",
				"dogs":     "/api/dogs",
				"puppies":  "/api/puppies",
				"gallery":  "/api/gallery",
				"bookings": "/api/bookings",
			},
		})
	})

	requireAdmin := middleware.RequireAdmin(db)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
			auth.GET("/verify", requireAdmin, ac.Verify)
			auth.GET("/me", requireAdmin, ac.Me)
			auth.POST("/logout", requireAdmin, ac.Logout)
			auth.POST("/change-password", requireAdmin, ac.ChangePassword)
			auth.POST("/register", requireAdmin, ac.Register)
		}

		dogs := api.Group("/dogs")
		{
			dogs.GET("", dc.GetDogs)
			dogs.GET("/:id", dc.GetDog)

			admin := dogs.Group("/admin", requireAdmin)
			{
				admin.GET("", dc.GetAllDogsAdmin)
				admin.POST("", dc.CreateDog)
				admin.PUT("/:id", dc.UpdateDog)
				admin.DELETE("/:id", dc.DeleteDog)
				admin.POST("/:id/images", dc.AddImages)
				admin.DELETE("/images/:id", dc.DeleteImage)
			}
		}

		puppies := api.Group("/puppies")
		{
			puppies.GET("", pc.GetPuppies)
			puppies.GET("/:id", pc.GetPuppy)

			admin := puppies.Group("/admin", requireAdmin)
			{
				admin.GET("", pc.GetAllPuppiesAdmin)
				admin.POST("", pc.CreatePuppy)
				admin.PUT("/:id", pc.UpdatePuppy)
				admin.DELETE("/:id", pc.DeletePuppy)
				admin.POST("/:id/images", pc.AddImages)
				admin.DELETE("/images/:id", pc.DeleteImage)
			}
		}

		gallery := api.Group("/gallery")
		{
			gallery.GET("", gc.GetGalleryItems)
			gallery.GET("/categories", gc.GetCategories)

			admin := gallery.Group("/admin", requireAdmin)
			{
				admin.GET("", gc.GetAllGalleryAdmin)
				admin.POST("", gc.CreateGalleryItem)
				admin.POST("/bulk-upload", gc.BulkUpload)
				admin.PUT("/:id", gc.UpdateGalleryItem)
				admin.DELETE("/:id", gc.DeleteGalleryItem)
			}
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", bc.CreateBooking)

			admin := bookings.Group("/admin", requireAdmin)
			{
				admin.GET("", bc.GetBookings)
				admin.GET("/stats", bc.GetStats)
				admin.POST("/test-email", bc.TestEmail)
				admin.GET("/:id", bc.GetBooking)
				admin.PUT("/:id", bc.UpdateBooking)
				admin.DELETE("/:id", bc.DeleteBooking)
			}
		}
	}

	return r
}
