package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"kennel-backend/config"
	"kennel-backend/controllers"
	"kennel-backend/routes"
	"kennel-backend/services"
	"kennel-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// File storage
	uploadDir := utils.EnvOrDefault("UPLOAD_DIR", "./uploads")
	fileService := services.NewFileService(uploadDir)
	if err := fileService.EnsureDirs("dogs", "puppies", "gallery"); err != nil {
		log.Fatalf("❌ Failed to prepare upload directories: %v", err)
	}

	// Initialize services
	authService := services.NewAuthService(db)
	dogService := services.NewDogService(db)
	puppyService := services.NewPuppyService(db)
	galleryService := services.NewGalleryService(db)
	emailService := services.NewEmailService()
	bookingService := services.NewBookingService(db, emailService)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	dogController := controllers.NewDogController(dogService, fileService)
	puppyController := controllers.NewPuppyController(puppyService, fileService)
	galleryController := controllers.NewGalleryController(galleryService, fileService)
	bookingController := controllers.NewBookingController(bookingService)

	// Build router
	router := routes.SetupRouter(db, uploadDir,
		authController, dogController, puppyController, galleryController, bookingController)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
