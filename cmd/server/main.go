package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"borewell-backend/internal/auth"
	"borewell-backend/internal/cache"
	"borewell-backend/internal/config"
	"borewell-backend/internal/database"
	"borewell-backend/internal/db"
	"borewell-backend/internal/handlers"
	"borewell-backend/internal/health"
	h "borewell-backend/internal/http"
	"borewell-backend/internal/middleware"
	"borewell-backend/internal/monitoring"
	"borewell-backend/internal/pipestock"
	"borewell-backend/internal/repositories"
	"borewell-backend/internal/services"
	"borewell-backend/internal/storage"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; everything degrades to direct DB reads without it
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboard will hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations on startup
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)
	jwtManager := auth.NewJWTManager(cfg)

	// Background system monitor
	monitor := monitoring.NewMonitor(pool)
	monitorCtx, monitorCancel := context.WithCancel(context.Background())
	defer monitorCancel()
	go monitor.Run(monitorCtx)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	managerRepo := repositories.NewManagerRepository(pool)
	workerRepo := repositories.NewWorkerRepository(pool)
	boreRepo := repositories.NewBoreRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	dieselRepo := repositories.NewDieselRepository(pool)
	agentRepo := repositories.NewAgentRepository(pool)
	onlineTransactionRepo := repositories.NewOnlineTransactionRepository(pool)
	pipeStockRepo := repositories.NewPipeStockRepository(pool)
	pipeLogRepo := repositories.NewPipeLogRepository(pool)
	txRunner := &repositories.TxRunner{DB: pool}

	// Core pipe-stock ledger
	pipeService := pipestock.NewService(txRunner, pipeStockRepo, pipeLogRepo)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	managerService := services.NewManagerService(managerRepo, workerRepo, boreRepo, expenseRepo, dieselRepo, agentRepo, pipeService)
	stockService := services.NewStockService(pipeService)
	boreService := services.NewBoreService(txRunner, boreRepo, pipeService)
	dieselService := services.NewDieselService(txRunner, dieselRepo)
	razorpayService := services.NewRazorpayService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		onlineTransactionRepo,
		boreRepo,
	)
	reportArchive := storage.NewR2Archive(cfg)
	reportService := services.NewReportService(managerService, reportArchive)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, userRepo)
	managerHandler := handlers.NewManagerHandler(managerService)
	stockHandler := handlers.NewStockHandler(stockService)
	boreHandler := handlers.NewBoreHandler(boreService)
	workerHandler := handlers.NewWorkerHandler(workerRepo)
	expenseHandler := handlers.NewExpenseHandler(expenseRepo)
	dieselHandler := handlers.NewDieselHandler(dieselService, dieselRepo)
	agentHandler := handlers.NewAgentHandler(agentRepo)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	userHandler := handlers.NewUserHandler(userService)
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(pool, stockService)
	monitoringHandler := handlers.NewMonitoringHandler(monitor)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		managerHandler,
		stockHandler,
		boreHandler,
		workerHandler,
		expenseHandler,
		dieselHandler,
		agentHandler,
		razorpayHandler,
		userHandler,
		reportHandler,
		dashboardHandler,
		monitoringHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
