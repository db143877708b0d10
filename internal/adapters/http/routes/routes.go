package routes

import (
	"time"

	"goldtrack/internal/adapters/http/handlers"
	"goldtrack/internal/adapters/http/middleware"
	"goldtrack/internal/adapters/persistence/repositories"
	"goldtrack/internal/config"
	"goldtrack/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	loc := cfg.Business.Location

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	collectionRepo := repositories.NewCollectionRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg, log)
	employeeService := services.NewEmployeeService(employeeRepo, customerRepo, saleRepo, collectionRepo, cfg.Business.AdminEmail, log)
	customerService := services.NewCustomerService(customerRepo, employeeRepo, log)
	saleService := services.NewSaleService(saleRepo, customerRepo, employeeRepo, log)
	collectionService := services.NewCollectionService(collectionRepo, customerRepo, employeeRepo, log)
	reportService := services.NewReportService(saleRepo, collectionRepo, customerRepo, employeeRepo, loc)
	workbookService := services.NewWorkbookService(saleRepo, collectionRepo, customerRepo, employeeRepo, customerService, loc)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, func() error { return config.HealthCheck(db) })
	authHandler := handlers.NewAuthHandler(authService, cfg)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	customerHandler := handlers.NewCustomerHandler(customerService, workbookService)
	ledgerHandler := handlers.NewLedgerHandler(saleService, collectionService, loc)
	reportHandler := handlers.NewReportHandler(reportService, workbookService, loc)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)

	// Business routes resolve the caller when a token is present; services
	// decide what an anonymous caller gets.
	business := apiV1.Group("", middleware.OptionalAuth(cfg))
	setupEmployeeRoutes(business.Group("/employees"), employeeHandler)
	setupCustomerRoutes(business.Group("/customers"), customerHandler)
	setupSaleRoutes(business.Group("/sales"), ledgerHandler)
	setupCollectionRoutes(business.Group("/collections"), ledgerHandler)
	setupReportRoutes(business.Group("/reports"), reportHandler)
	business.Get("/export/workbook", middleware.NoCacheHeaders(), reportHandler.ExportWorkbook)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	router.Use(middleware.NoCacheHeaders())

	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.RequireAuth(cfg), handler.Me)
	router.Post("/logout-all", middleware.RequireAuth(cfg), handler.LogoutAll)
}

func setupEmployeeRoutes(router fiber.Router, handler *handlers.EmployeeHandler) {
	router.Get("/me", handler.Me)
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:id/stats", handler.Stats)
	router.Put("/:id/status", handler.SetStatus)
}

func setupCustomerRoutes(router fiber.Router, handler *handlers.CustomerHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Add)
	router.Post("/import", middleware.ImportRateLimiter(), handler.Import)
	router.Post("/import/workbook", middleware.ImportRateLimiter(), handler.ImportWorkbook)
	router.Get("/import/template", middleware.PrivateCacheHeaders(24*time.Hour), handler.Template)
}

func setupSaleRoutes(router fiber.Router, handler *handlers.LedgerHandler) {
	router.Get("/", handler.ListSales)
	router.Post("/", handler.AddSale)
	router.Get("/weekly-stats", handler.WeeklySales)
	router.Get("/export", middleware.NoCacheHeaders(), handler.ExportSales)
}

func setupCollectionRoutes(router fiber.Router, handler *handlers.LedgerHandler) {
	router.Get("/", handler.ListCollections)
	router.Post("/", handler.AddCollection)
	router.Get("/weekly-stats", handler.WeeklyCollections)
	router.Get("/export", middleware.NoCacheHeaders(), handler.ExportCollections)
}

func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/performance", handler.Performance)
	router.Get("/overdue", handler.Overdue)
	router.Get("/daily", handler.Daily)
}
