package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-admin/apiclient"
	"storefront-admin/config"
	"storefront-admin/database"
	"storefront-admin/middleware"
	"storefront-admin/preview"
	"storefront-admin/routes"
	"storefront-admin/session"
	"storefront-admin/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}

	// Validate critical environment variables
	if err := config.ValidateEnv(); err != nil {
		log.Fatal("Environment validation failed: ", err)
	}
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	sessions := session.NewStore(db)
	drafts := utils.NewDraftStore(cfg.DraftTTL)
	previews := preview.NewRegistry()
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	api := apiclient.New(cfg.APIBaseURL, cfg.APIKey, cfg.APITimeout)

	// Setup Gin router
	r := gin.Default()

	// Limit multipart form memory to 10MB
	r.MaxMultipartMemory = 10 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Dependencies{
		API:          api,
		Sessions:     sessions,
		Drafts:       drafts,
		Previews:     previews,
		LoginLimiter: loginLimiter,
	})

	// Drop idle drafts and expired sessions in the background
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go sweep(sweepCtx, drafts, sessions, 5*time.Minute)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Run server in a goroutine
	go func() {
		log.Printf("Server starting on port %s (storefront API %s)", cfg.Port, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	stopSweep()
	loginLimiter.Stop()
	log.Printf("Released %d unsaved product drafts", drafts.Len())
	drafts.DiscardAll()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		} else {
			log.Println("Database connection closed")
		}
	}

	log.Println("Server exited gracefully")
}

func sweep(ctx context.Context, drafts *utils.DraftStore, sessions *session.Store, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := drafts.CleanupIdle(); n > 0 {
				log.Printf("Discarded %d idle product drafts", n)
			}
			if n, err := sessions.DeleteExpired(); err != nil {
				log.Printf("Failed to delete expired sessions: %v", err)
			} else if n > 0 {
				log.Printf("Deleted %d expired sessions", n)
			}
		}
	}
}
