package main

import (
	"log"
	"time"

	"advocate_desk_go/config"
	"advocate_desk_go/db"
	"advocate_desk_go/handlers"
	"advocate_desk_go/middleware"
	"advocate_desk_go/models"
	"advocate_desk_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Credential{},
		&models.Session{},
		&models.Profile{},
		&models.Case{},
		&models.CaseAssociate{},
		&models.CaseUpdate{},
		&models.Payment{},
		&models.CaseDocument{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize external collaborators
	services.InitializeStorage(cfg)
	services.InitializeIdentity(db.DB)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes (no authentication required)
	e.POST("/api/signup", handlers.SignupHandler, middleware.SignupRateLimiter.Middleware())
	e.POST("/api/login", handlers.LoginHandler, middleware.LoginRateLimiter.Middleware())

	// Protected routes
	protected := e.Group("/api")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/logout", handlers.LogoutHandler)
		protected.GET("/me", handlers.MeHandler)
		protected.GET("/dashboard", handlers.DashboardHandler)

		// Profiles (self, or members of the calling advocate)
		protected.GET("/profiles/:id", handlers.GetProfileHandler)
		protected.PUT("/profile", handlers.UpdateProfileHandler)

		// Cases (handler-level, role-scoped visibility)
		protected.GET("/cases", handlers.ListCasesHandler)
		protected.GET("/cases/:id", handlers.GetCaseHandler)
		protected.GET("/cases/:id/updates", handlers.ListCaseUpdatesHandler)
		protected.GET("/cases/:id/payments", handlers.ListCasePaymentsHandler)
		protected.GET("/cases/:id/documents", handlers.ListCaseDocumentsHandler)
		protected.GET("/cases/:id/documents/:documentId/download", handlers.DownloadCaseDocumentHandler)

		// Contributions (owning advocate or assigned associate; enforced
		// per entity in the services)
		protected.POST("/cases/:id/updates", handlers.CreateCaseUpdateHandler)
		protected.POST("/cases/:id/documents", handlers.UploadCaseDocumentHandler)

		// Advocate-only routes
		advocateRoutes := protected.Group("")
		advocateRoutes.Use(middleware.RequireRole(models.RoleAdvocate))
		{
			// Privileged member actions; caller role is re-verified in the
			// handlers as well
			advocateRoutes.GET("/members", handlers.ListMembersHandler)
			advocateRoutes.POST("/members/create", handlers.CreateMemberHandler)
			advocateRoutes.POST("/members/delete", handlers.DeleteMemberHandler)

			advocateRoutes.POST("/cases", handlers.CreateCaseHandler)
			advocateRoutes.PUT("/cases/:id", handlers.UpdateCaseHandler)
			advocateRoutes.DELETE("/cases/:id", handlers.DeleteCaseHandler)

			advocateRoutes.GET("/cases/:id/associates", handlers.ListCaseAssociatesHandler)
			advocateRoutes.POST("/cases/:id/associates", handlers.AssignAssociateHandler)
			advocateRoutes.DELETE("/cases/:id/associates/:associateId", handlers.UnassignAssociateHandler)

			advocateRoutes.POST("/cases/:id/payments", handlers.CreatePaymentHandler)
			advocateRoutes.PUT("/payments/:paymentId/status", handlers.UpdatePaymentStatusHandler)
			advocateRoutes.DELETE("/payments/:paymentId", handlers.DeletePaymentHandler)

			advocateRoutes.GET("/reports/cases.xlsx", handlers.ExportCasesHandler)
		}
	}

	// Start background cleanup job (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
