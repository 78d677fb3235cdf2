package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pricing-sim/internal/handler"
	"go-pricing-sim/internal/middleware"
	"go-pricing-sim/internal/model"
	"go-pricing-sim/internal/permission"
	"go-pricing-sim/internal/repository"
	"go-pricing-sim/internal/service"
	"go-pricing-sim/internal/ws"
	"go-pricing-sim/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.DailyRate{},
		&model.ClientType{},
		&model.Margin{},
		&model.ProjectType{},
		&model.Simulation{},
		&model.UsageEntry{},
	)

	// 3. Seed system roles, default catalogs and the admin account
	seedDefaults(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	rateRepo := repository.NewRateRepo(db)
	clientTypeRepo := repository.NewClientTypeRepo(db)
	marginRepo := repository.NewMarginRepo(db)
	projectTypeRepo := repository.NewProjectTypeRepo(db)
	simulationRepo := repository.NewSimulationRepo(db)
	usageRepo := repository.NewUsageRepo(db)

	resolver := permission.NewResolver(roleRepo)

	authService := service.NewAuthService(userRepo, resolver)
	simulationService := service.NewSimulationService(simulationRepo, rateRepo, clientTypeRepo, marginRepo, projectTypeRepo, usageRepo, wsHub)
	catalogService := service.NewCatalogService(rateRepo, clientTypeRepo, marginRepo, projectTypeRepo)
	userService := service.NewUserService(userRepo, roleRepo)
	roleService := service.NewRoleService(roleRepo, userRepo)
	statsService := service.NewStatsService(simulationRepo, usageRepo)

	authHandler := handler.NewAuthHandler(authService)
	simulationHandler := handler.NewSimulationHandler(simulationService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	statsHandler := handler.NewStatsHandler(statsService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Pricing Simulator API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")
	requireAuth := middleware.RequireAuth(userRepo, resolver)

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/validate", authHandler.Validate)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/heartbeat", requireAuth, authHandler.Heartbeat)
	auth.Get("/me", requireAuth, authHandler.Me)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	// Calculator and simulations
	protected.Post("/calculator/preview", simulationHandler.Preview)
	protected.Post("/simulations", middleware.RequirePermission(model.PermCreateSimulations), simulationHandler.Commit)
	protected.Get("/simulations", simulationHandler.List)
	protected.Get("/simulations/:id", simulationHandler.Get)

	// Catalogs: reads are open, writes gated per catalog
	protected.Get("/rates", catalogHandler.ListRates)
	protected.Post("/rates", middleware.RequirePermission(model.PermEditDailyRates), catalogHandler.CreateRate)
	protected.Put("/rates/:id", middleware.RequirePermission(model.PermEditDailyRates), catalogHandler.UpdateRate)
	protected.Delete("/rates/:id", middleware.RequirePermission(model.PermEditDailyRates), catalogHandler.DeleteRate)

	protected.Get("/client-types", catalogHandler.ListClientTypes)
	protected.Post("/client-types", middleware.RequirePermission(model.PermEditClientTypes), catalogHandler.CreateClientType)
	protected.Put("/client-types/:id", middleware.RequirePermission(model.PermEditClientTypes), catalogHandler.UpdateClientType)
	protected.Delete("/client-types/:id", middleware.RequirePermission(model.PermEditClientTypes), catalogHandler.DeleteClientType)

	protected.Get("/margins", catalogHandler.ListMargins)
	protected.Post("/margins", middleware.RequirePermission(model.PermEditMargins), catalogHandler.CreateMargin)
	protected.Put("/margins/:id", middleware.RequirePermission(model.PermEditMargins), catalogHandler.UpdateMargin)
	protected.Delete("/margins/:id", middleware.RequirePermission(model.PermEditMargins), catalogHandler.DeleteMargin)

	protected.Get("/project-types", catalogHandler.ListProjectTypes)
	protected.Post("/project-types", middleware.RequirePermission(model.PermEditProjectTypes), catalogHandler.CreateProjectType)
	protected.Put("/project-types/:id", middleware.RequirePermission(model.PermEditProjectTypes), catalogHandler.UpdateProjectType)
	protected.Delete("/project-types/:id", middleware.RequirePermission(model.PermEditProjectTypes), catalogHandler.DeleteProjectType)

	// User management
	protected.Get("/users", middleware.RequirePermission(model.PermManageUsers), userHandler.List)
	protected.Post("/users", middleware.RequirePermission(model.PermManageUsers), userHandler.Create)
	protected.Put("/users/:id", middleware.RequirePermission(model.PermManageUsers), userHandler.Update)
	protected.Delete("/users/:id", middleware.RequirePermission(model.PermManageUsers), userHandler.Delete)
	protected.Post("/users/:id/reset-password", middleware.RequirePermission(model.PermManageUsers), userHandler.ResetPassword)

	// Role management
	protected.Get("/roles", roleHandler.List)
	protected.Get("/roles/permissions", roleHandler.Permissions)
	protected.Post("/roles", middleware.RequirePermission(model.PermManageRoles), roleHandler.Create)
	protected.Put("/roles/:id", middleware.RequirePermission(model.PermManageRoles), roleHandler.Update)
	protected.Delete("/roles/:id", middleware.RequirePermission(model.PermManageRoles), roleHandler.Delete)

	// Dashboard, analytics and activity log
	protected.Get("/dashboard", statsHandler.Dashboard)
	protected.Get("/analytics", middleware.RequirePermission(model.PermViewAnalytics), statsHandler.Analytics)
	protected.Get("/usage", middleware.RequirePermission(model.PermViewUsageHistory), statsHandler.Usage)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaults creates system roles, the default catalogs and the admin
// account when the database is empty.
func seedDefaults(db *gorm.DB) {
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)

	// 1. System roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 2. Rate catalog
	var rateCount int64
	db.Model(&model.DailyRate{}).Count(&rateCount)
	if rateCount == 0 {
		for _, roleName := range model.DefaultRateRoles {
			rate := model.DailyRate{RoleName: roleName, DailyRate: 100000, HourlyRate: 12500, IsActive: true}
			if err := db.Create(&rate).Error; err != nil {
				log.Printf("Warning: Failed to seed rate %q: %v", roleName, err)
			}
		}
	}

	// 3. Client types
	var clientTypeCount int64
	db.Model(&model.ClientType{}).Count(&clientTypeCount)
	if clientTypeCount == 0 {
		for _, clientType := range model.DefaultClientTypes {
			ct := clientType
			if err := db.Create(&ct).Error; err != nil {
				log.Printf("Warning: Failed to seed client type %q: %v", ct.Name, err)
			}
		}
	}

	// 4. Margins
	var marginCount int64
	db.Model(&model.Margin{}).Count(&marginCount)
	if marginCount == 0 {
		for _, percentage := range model.DefaultMargins {
			margin := model.Margin{Percentage: percentage, IsActive: true}
			if err := db.Create(&margin).Error; err != nil {
				log.Printf("Warning: Failed to seed margin %d%%: %v", percentage, err)
			}
		}
	}

	// 5. Project types
	var projectTypeCount int64
	db.Model(&model.ProjectType{}).Count(&projectTypeCount)
	if projectTypeCount == 0 {
		for _, projectType := range model.DefaultProjectTypes {
			pt := projectType
			if err := db.Create(&pt).Error; err != nil {
				log.Printf("Warning: Failed to seed project type %q: %v", pt.Name, err)
			}
		}
	}

	// 6. Admin account
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@agence.local"
	}
	if _, err := userRepo.FindByEmail(adminEmail); err != nil {
		adminRole, err := roleRepo.FindByName(model.RoleNameAdmin)
		if err != nil {
			log.Printf("Warning: Admin role missing, skipping admin seed: %v", err)
			return
		}
		adminPassword := os.Getenv("ADMIN_PASSWORD")
		if adminPassword == "" {
			adminPassword = "admin12345"
		}
		admin := model.User{
			Email:      adminEmail,
			FullName:   "Administrateur",
			RoleID:     &adminRole.ID,
			LegacyRole: model.LegacyAdmin,
			IsActive:   true,
		}
		if err := admin.SetPassword(adminPassword); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}
		if err := userRepo.Create(&admin); err != nil {
			log.Printf("Warning: Failed to seed admin user: %v", err)
			return
		}
		log.Printf("Seeded admin account %s", adminEmail)
	}
}
