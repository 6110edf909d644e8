package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-retail-ws/internal/handler"
	"go-retail-ws/internal/middleware"
	"go-retail-ws/internal/model"
	"go-retail-ws/internal/repository"
	"go-retail-ws/internal/service"
	"go-retail-ws/internal/sheetsync"
	"go-retail-ws/internal/ws"
	"go-retail-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(&model.Product{}, &model.PurchaseEntry{}, &model.SaleEntry{}, &model.AppSettings{}, &model.User{})

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	userRepo := repository.NewUserRepo(db)

	// Seed singleton settings row and the owner account
	seedDefaults(settingsRepo, userRepo)

	// Google Sheets client. Missing credentials leave sync unconfigured but
	// the rest of the app keeps working.
	var sheetClient service.SheetClient
	if cfg, err := sheetsync.ConfigFromEnv(); err != nil {
		log.Printf("Warning: %v", err)
	} else {
		client, err := sheetsync.NewClient(context.Background(), cfg)
		if err != nil {
			log.Printf("Warning: failed to init sheets client: %v", err)
		} else {
			sheetClient = client
		}
	}

	invService := service.NewInventoryService(productRepo, purchaseRepo, saleRepo, settingsRepo, db, wsHub)
	reportService := service.NewReportService(productRepo, purchaseRepo, saleRepo)
	syncService := service.NewSyncService(purchaseRepo, saleRepo, settingsRepo, sheetClient, wsHub)
	exportService := service.NewExportService(purchaseRepo, saleRepo)
	authService := service.NewAuthService(userRepo)

	productHandler := handler.NewProductHandler(invService)
	txHandler := handler.NewTransactionHandler(invService)
	reportHandler := handler.NewReportHandler(reportService)
	syncHandler := handler.NewSyncHandler(syncService)
	exportHandler := handler.NewExportHandler(exportService)
	settingsHandler := handler.NewSettingsHandler(invService)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(productRepo)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Quản Lý Bán Hàng v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Get("/health", healthHandler.Check) // uptime pinger
	api.Post("/auth/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard & Reports
	protected.Get("/dashboard/stats", reportHandler.GetDashboardStats)
	protected.Get("/reports", reportHandler.GetPeriodReport)

	// Products
	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	// Transactions (nhập hàng / bán hàng) - immutable once created
	protected.Get("/purchases", txHandler.GetPurchases)
	protected.Post("/purchases", txHandler.CreatePurchase)
	protected.Get("/sales", txHandler.GetSales)
	protected.Post("/sales", txHandler.CreateSale)

	// Settings
	protected.Get("/settings", settingsHandler.GetSettings)
	protected.Put("/settings", settingsHandler.UpdateSettings)

	// Spreadsheet sync & export
	protected.Post("/sync/:year", syncHandler.SyncYear)
	protected.Get("/export", exportHandler.Export)

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

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaults creates the settings singleton and the owner user if missing
func seedDefaults(settingsRepo repository.SettingsRepository, userRepo repository.UserRepository) {
	if _, err := settingsRepo.Get(); err != nil {
		log.Printf("Warning: Failed to seed settings: %v", err)
	}

	email := os.Getenv("OWNER_EMAIL")
	if email == "" {
		email = "owner@example.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("OWNER_PASSWORD")
	if password == "" {
		password = "owner123"
	}

	owner := &model.User{
		Email:    email,
		FullName: "Chủ cửa hàng",
		IsActive: true,
	}
	owner.CreatedBy = "system"
	owner.UpdatedBy = "system"

	if err := owner.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash owner password: %v", err)
		return
	}
	if err := userRepo.Create(owner); err != nil {
		log.Printf("Warning: Failed to create owner user: %v", err)
	} else {
		log.Printf("✅ Owner user created: %s", email)
	}
}
