package main

import (
	"log"
	"os"

	"github.com/foremenchoice/foreman/pkg/foreman/admin"
	"github.com/foremenchoice/foreman/pkg/foreman/auth"
	"github.com/foremenchoice/foreman/pkg/foreman/dashboard"
	"github.com/foremenchoice/foreman/pkg/foreman/database"
	"github.com/foremenchoice/foreman/pkg/foreman/enrollments"
	"github.com/foremenchoice/foreman/pkg/foreman/groups"
	"github.com/foremenchoice/foreman/pkg/foreman/installments"
	"github.com/foremenchoice/foreman/pkg/foreman/models"
	"github.com/foremenchoice/foreman/pkg/foreman/payments"
	"github.com/foremenchoice/foreman/pkg/foreman/status"
	"github.com/foremenchoice/foreman/pkg/foreman/subscribers"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; in production config comes from the environment
	_ = godotenv.Load()

	// Postgres when a DSN is configured, local SQLite otherwise
	postgresDSN := os.Getenv("FOREMAN_DATABASE_URL")
	sqlitePath := os.Getenv("FOREMAN_DB_PATH")
	if sqlitePath == "" {
		sqlitePath = "foreman.db"
	}

	if err := database.Connect(postgresDSN, sqlitePath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Create default admin user if no admin exists
	if err := ensureAdminExists(); err != nil {
		log.Fatalf("Failed to ensure admin user exists: %v", err)
	}

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "foreman",
			})
		})

		// Auth routes (public)
		authHandler := auth.NewHandler(database.GetDB())
		authHandler.RegisterRoutes(api.Group("/auth"))

		// Ledger routes (authenticated operators)
		ledger := api.Group("", auth.AuthMiddleware())

		groupsHandler := groups.NewHandler(database.GetDB())
		groupsHandler.RegisterRoutes(ledger)

		subscribersHandler := subscribers.NewHandler(database.GetDB())
		subscribersHandler.RegisterRoutes(ledger)

		enrollmentsHandler := enrollments.NewHandler(database.GetDB())
		enrollmentsHandler.RegisterRoutes(ledger)

		installmentsHandler := installments.NewHandler(database.GetDB())
		installmentsHandler.RegisterRoutes(ledger)

		paymentsHandler := payments.NewHandler(database.GetDB())
		paymentsHandler.RegisterRoutes(ledger)

		statusHandler := status.NewHandler(database.GetDB())
		statusHandler.RegisterRoutes(ledger)

		dashboardHandler := dashboard.NewHandler(database.GetDB())
		dashboardHandler.RegisterRoutes(ledger)

		// Admin routes (admin role required)
		adminHandler := admin.NewHandler(database.GetDB())
		adminGroup := api.Group("/admin")
		adminGroup.Use(auth.AuthMiddleware(), auth.RequireAdmin())
		adminHandler.RegisterRoutes(adminGroup)
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Foreman server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdminExists creates a default admin user if no admin exists in the
// database. Email and password come from the environment, with development
// defaults.
func ensureAdminExists() error {
	db := database.GetDB()

	// Check if any admin user exists
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil // Admin already exists
	}

	email := os.Getenv("FOREMAN_ADMIN_EMAIL")
	if email == "" {
		email = "admin@foreman.local"
	}
	password := os.Getenv("FOREMAN_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	adminUser := models.User{
		Email:        email,
		Name:         "Admin",
		PasswordHash: hashedPassword,
		Role:         models.RoleAdmin,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Printf("Created default admin user: %s", email)
	return nil
}
