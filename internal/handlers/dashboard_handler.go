package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"borewell-backend/internal/cache"
	"borewell-backend/internal/pipestock"
	"borewell-backend/internal/services"
	"borewell-backend/internal/timeutil"

	"github.com/jackc/pgx/v5/pgxpool"
)

const statsCacheTTL = 10 * time.Minute

// DashboardHandler serves the business overview the home screen loads in one
// request. Results are cached in Redis; any stock or money mutation clears the
// stats keys.
type DashboardHandler struct {
	DB    *pgxpool.Pool
	Stock *services.StockService
}

// DashboardStats is the complete overview response
type DashboardStats struct {
	TotalManagers   int                    `json:"total_managers"`
	TotalBores      int                    `json:"total_bores"`
	TotalBilled     float64                `json:"total_billed"`
	TotalReceived   float64                `json:"total_received"`
	Outstanding     float64                `json:"outstanding"`
	TotalExpenses   float64                `json:"total_expenses"`
	LabourPaid      float64                `json:"labour_paid"`
	DieselLiters    float64                `json:"diesel_liters"`
	GodownStock     []*pipestock.StockItem `json:"godown_stock"`
	GodownPipeCount int                    `json:"godown_pipe_count"`
	GeneratedAt     time.Time              `json:"generated_at"`
}

func NewDashboardHandler(db *pgxpool.Pool, stock *services.StockService) *DashboardHandler {
	return &DashboardHandler{DB: db, Stock: stock}
}

// GetOverview returns business-wide totals, cached for 10 minutes
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if data, ok := cache.GetCached(ctx, cache.StatsOverviewKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(data)
		return
	}

	stats, err := h.generateOverview(ctx)
	if err != nil {
		http.Error(w, "Failed to generate dashboard stats", http.StatusInternalServerError)
		return
	}

	data, _ := json.Marshal(stats)
	cache.SetCached(ctx, cache.StatsOverviewKey, data, statsCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(data)
}

// generateOverview fetches all totals in parallel
func (h *DashboardHandler) generateOverview(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{GeneratedAt: timeutil.Now()}

	var (
		wg       sync.WaitGroup
		errs     [5]error
		received float64
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		errs[0] = h.DB.QueryRow(ctx,
			"SELECT COUNT(*) FROM managers").Scan(&stats.TotalManagers)
	}()
	go func() {
		defer wg.Done()
		errs[1] = h.DB.QueryRow(ctx,
			"SELECT COUNT(*), COALESCE(SUM(total_bill), 0) FROM bores").Scan(&stats.TotalBores, &stats.TotalBilled)
	}()
	go func() {
		defer wg.Done()
		errs[2] = h.DB.QueryRow(ctx,
			"SELECT COALESCE(SUM(amount), 0) FROM payments").Scan(&received)
	}()
	go func() {
		defer wg.Done()
		errs[3] = h.DB.QueryRow(ctx, `
			SELECT (SELECT COALESCE(SUM(amount), 0) FROM normal_expenses),
			       (SELECT COALESCE(SUM(amount), 0) FROM labour_payments),
			       (SELECT COALESCE(SUM(liters), 0) FROM diesel_purchases)
		`).Scan(&stats.TotalExpenses, &stats.LabourPaid, &stats.DieselLiters)
	}()
	go func() {
		defer wg.Done()
		var err error
		stats.GodownStock, err = h.Stock.GodownStock(ctx)
		errs[4] = err
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	stats.TotalReceived = received
	stats.Outstanding = stats.TotalBilled - received
	stats.TotalExpenses += stats.LabourPaid
	for _, item := range stats.GodownStock {
		stats.GodownPipeCount += item.Quantity
	}

	return stats, nil
}
