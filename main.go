package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"easyapply/config"
	"easyapply/controllers"
	"easyapply/database"
	"easyapply/middleware"
	"easyapply/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.GetAppConfig()

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	session, err := services.NewBrowserSession(services.BrowserOptions{
		Headless:    cfg.Browser.Headless,
		UserDataDir: cfg.Browser.UserDataDir,
	})
	if err != nil {
		log.Fatalf("Failed to start browser: %v", err)
	}
	defer session.Close()

	applyService := services.NewEasyApplyService(cfg, profile, session)
	applicationController := controllers.NewApplicationController(db, applyService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.POST("/api/applications", applicationController.CreateApplication)
	r.GET("/api/applications", applicationController.ListApplications)
	r.GET("/api/applications/stats", applicationController.GetStats)

	log.Printf("Listening on :%s (mode=%s)", cfg.Port, cfg.Mode)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
