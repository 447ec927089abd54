package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/fleet-app/config"
	"github.com/yeremiapane/fleet-app/database"
	"github.com/yeremiapane/fleet-app/middlewares"
	"github.com/yeremiapane/fleet-app/models"
	"github.com/yeremiapane/fleet-app/router"
	"github.com/yeremiapane/fleet-app/services"
	"github.com/yeremiapane/fleet-app/utils"
	"gorm.io/gorm"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	// Initialize logger
	utils.InfoLogger = logrus.New()
	utils.ErrorLogger = logrus.New()

	// Set output to stdout
	utils.InfoLogger.SetOutput(os.Stdout)
	utils.ErrorLogger.SetOutput(os.Stderr)

	// Set formatters
	utils.InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
	utils.ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Set gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Setup rate limiter (50 requests per second per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	// Inisialisasi change monitor untuk broadcast event realtime
	monitor := services.NewChangeMonitor(db)
	monitor.Interval = 500 * time.Millisecond // polling lebih cepat untuk dashboard
	monitor.Start()
	defer monitor.Stop()

	// Monitor jadwal maintenance yang akan jatuh tempo
	maintenanceMonitor := services.NewMaintenanceMonitor(db)
	maintenanceMonitor.Start()
	defer maintenanceMonitor.Stop()

	// Bersihkan blacklist token yang sudah kedaluwarsa secara berkala
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			utils.CleanupBlacklist()
		}
	}()

	// Setup router
	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	// Set trusted proxies
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Supplier{},
		&models.Machine{},
		&models.MachineAssignment{},
		&models.MaintenanceRecord{},
		&models.Notification{},
		&models.DBChange{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	// Execute triggers
	if err := database.ExecuteTriggers(db); err != nil {
		utils.ErrorLogger.Printf("Error setting up triggers: %v", err)
	}
}
