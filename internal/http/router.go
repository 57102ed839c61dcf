package http

import (
	"borewell-backend/internal/handlers"
	"borewell-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	managerHandler *handlers.ManagerHandler,
	stockHandler *handlers.StockHandler,
	boreHandler *handlers.BoreHandler,
	workerHandler *handlers.WorkerHandler,
	expenseHandler *handlers.ExpenseHandler,
	dieselHandler *handlers.DieselHandler,
	agentHandler *handlers.AgentHandler,
	razorpayHandler *handlers.RazorpayHandler,
	userHandler *handlers.UserHandler,
	reportHandler *handlers.ReportHandler,
	dashboardHandler *handlers.DashboardHandler,
	monitoringHandler *handlers.MonitoringHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Razorpay webhook is authenticated by signature, not JWT
	r.HandleFunc("/api/payment/webhook", razorpayHandler.Webhook).Methods("POST")

	// Authenticated profile
	meAPI := r.PathPrefix("/auth/me").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", authHandler.Me).Methods("GET")

	// Dashboard overview
	statsAPI := r.PathPrefix("/api/stats").Subrouter()
	statsAPI.Use(authMiddleware.Authenticate)
	statsAPI.HandleFunc("/overview", dashboardHandler.GetOverview).Methods("GET")

	// Godown pipe stock (owner mutates, staff reads)
	godownAPI := r.PathPrefix("/api/godown-pipe-stock").Subrouter()
	godownAPI.Use(authMiddleware.Authenticate)
	godownAPI.HandleFunc("", stockHandler.GetGodownStock).Methods("GET")
	godownAPI.Handle("", authMiddleware.RequireOwner(stockHandler.AddGodownStock)).Methods("POST")
	godownAPI.Handle("", authMiddleware.RequireOwner(stockHandler.SetGodownStock)).Methods("PUT")
	godownAPI.Handle("", authMiddleware.RequireOwner(stockHandler.DeleteGodownStock)).Methods("DELETE")

	// Managers and everything nested under one
	managersAPI := r.PathPrefix("/api/managers").Subrouter()
	managersAPI.Use(authMiddleware.Authenticate)
	managersAPI.HandleFunc("", managerHandler.List).Methods("GET")
	managersAPI.Handle("", authMiddleware.RequireOwner(managerHandler.Create)).Methods("POST")
	managersAPI.HandleFunc("/{id}", managerHandler.Get).Methods("GET")
	managersAPI.Handle("/{id}", authMiddleware.RequireOwner(managerHandler.Update)).Methods("PUT")
	managersAPI.Handle("/{id}", authMiddleware.RequireOwner(managerHandler.Delete)).Methods("DELETE")

	// Manager pipe stock
	managersAPI.HandleFunc("/{id}/pipe-stock", stockHandler.GetManagerStock).Methods("GET")
	managersAPI.Handle("/{id}/pipe-stock", authMiddleware.RequireOwner(stockHandler.Adjust)).Methods("PUT")
	managersAPI.Handle("/{id}/pipe-stock", authMiddleware.RequireOwner(stockHandler.DeleteStockLine)).Methods("DELETE")
	managersAPI.Handle("/{id}/pipe-stock/withdraw", authMiddleware.RequireOwner(stockHandler.Withdraw)).Methods("POST")

	// Pipe movement log
	managersAPI.HandleFunc("/{id}/pipe-logs", stockHandler.GetLogs).Methods("GET")
	managersAPI.Handle("/{id}/pipe-logs/{logId}", authMiddleware.RequireOwner(stockHandler.ReverseWithdrawal)).Methods("DELETE")

	// Bores and payments
	managersAPI.HandleFunc("/{id}/bores", boreHandler.List).Methods("GET")
	managersAPI.Handle("/{id}/bores", authMiddleware.RequireOwner(boreHandler.Create)).Methods("POST")
	managersAPI.HandleFunc("/{id}/bores/{boreId}", boreHandler.Get).Methods("GET")
	managersAPI.Handle("/{id}/bores/{boreId}", authMiddleware.RequireOwner(boreHandler.Delete)).Methods("DELETE")
	managersAPI.Handle("/{id}/bores/{boreId}/payments", authMiddleware.RequireOwner(boreHandler.AddPayment)).Methods("POST")
	managersAPI.Handle("/{id}/bores/{boreId}/payments/{paymentId}", authMiddleware.RequireOwner(boreHandler.DeletePayment)).Methods("DELETE")
	managersAPI.HandleFunc("/{id}/bores/{boreId}/transactions", razorpayHandler.GetBoreTransactions).Methods("GET")

	// Workers
	managersAPI.HandleFunc("/{id}/workers", workerHandler.List).Methods("GET")
	managersAPI.Handle("/{id}/workers", authMiddleware.RequireOwner(workerHandler.Create)).Methods("POST")
	managersAPI.Handle("/{id}/workers/{workerId}", authMiddleware.RequireOwner(workerHandler.Update)).Methods("PUT")
	managersAPI.Handle("/{id}/workers/{workerId}", authMiddleware.RequireOwner(workerHandler.Delete)).Methods("DELETE")

	// Expenses
	managersAPI.HandleFunc("/{id}/expenses", expenseHandler.ListNormal).Methods("GET")
	managersAPI.Handle("/{id}/expenses", authMiddleware.RequireOwner(expenseHandler.CreateNormal)).Methods("POST")
	managersAPI.Handle("/{id}/expenses/{expenseId}", authMiddleware.RequireOwner(expenseHandler.DeleteNormal)).Methods("DELETE")

	// Labour payments
	managersAPI.HandleFunc("/{id}/labour-payments", expenseHandler.ListLabour).Methods("GET")
	managersAPI.Handle("/{id}/labour-payments", authMiddleware.RequireOwner(expenseHandler.CreateLabour)).Methods("POST")
	managersAPI.Handle("/{id}/labour-payments/{paymentId}", authMiddleware.RequireOwner(expenseHandler.DeleteLabour)).Methods("DELETE")

	// Diesel
	managersAPI.HandleFunc("/{id}/diesel-purchases", dieselHandler.ListPurchases).Methods("GET")
	managersAPI.Handle("/{id}/diesel-purchases", authMiddleware.RequireOwner(dieselHandler.CreatePurchase)).Methods("POST")
	managersAPI.HandleFunc("/{id}/diesel-usage", dieselHandler.ListUsage).Methods("GET")
	managersAPI.Handle("/{id}/diesel-usage", authMiddleware.RequireOwner(dieselHandler.CreateUsage)).Methods("POST")
	managersAPI.Handle("/{id}/diesel-usage/{usageId}", authMiddleware.RequireOwner(dieselHandler.DeleteUsage)).Methods("DELETE")

	// Agents
	managersAPI.HandleFunc("/{id}/agents", agentHandler.List).Methods("GET")
	managersAPI.Handle("/{id}/agents", authMiddleware.RequireOwner(agentHandler.Create)).Methods("POST")
	managersAPI.Handle("/{id}/agents/{agentId}", authMiddleware.RequireOwner(agentHandler.Delete)).Methods("DELETE")

	// Staff accounts (owner only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.Handle("", authMiddleware.RequireOwner(userHandler.List)).Methods("GET")
	usersAPI.Handle("", authMiddleware.RequireOwner(userHandler.Create)).Methods("POST")
	usersAPI.Handle("/{userId}", authMiddleware.RequireOwner(userHandler.Update)).Methods("PUT")
	usersAPI.Handle("/{userId}", authMiddleware.RequireOwner(userHandler.Delete)).Methods("DELETE")

	// Online payments
	paymentAPI := r.PathPrefix("/api/payment").Subrouter()
	paymentAPI.Use(authMiddleware.Authenticate)
	paymentAPI.HandleFunc("/status", razorpayHandler.GetStatus).Methods("GET")
	paymentAPI.HandleFunc("/create-order", razorpayHandler.CreateOrder).Methods("POST")
	paymentAPI.HandleFunc("/verify", razorpayHandler.VerifyPayment).Methods("POST")
	paymentAPI.Handle("/reconcile", authMiddleware.RequireOwner(razorpayHandler.Reconcile)).Methods("POST")

	// Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/managers/pdf", reportHandler.GetAllManagersPDFZip).Methods("GET")
	reportsAPI.HandleFunc("/managers/{id}/pdf", reportHandler.GetManagerPDF).Methods("GET")

	// Monitoring (owner only)
	monitoringAPI := r.PathPrefix("/api/monitoring").Subrouter()
	monitoringAPI.Use(authMiddleware.Authenticate)
	monitoringAPI.Handle("/system", authMiddleware.RequireOwner(monitoringHandler.GetSystemStats)).Methods("GET")
	monitoringAPI.Handle("/alerts", authMiddleware.RequireOwner(monitoringHandler.GetAlerts)).Methods("GET")

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
