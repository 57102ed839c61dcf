package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"borewell-backend/internal/cache"
	"borewell-backend/internal/pipestock"
	"borewell-backend/internal/services"
	"borewell-backend/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// StockHandler exposes the pipe-stock ledger: godown inventory, withdrawals
// to managers, adjustments and withdrawal reversals.
type StockHandler struct {
	Service *services.StockService
}

func NewStockHandler(service *services.StockService) *StockHandler {
	return &StockHandler{Service: service}
}

type stockLineRequest struct {
	Size     decimal.Decimal `json:"size"`
	Quantity int             `json:"quantity"`
}

type deleteStockRequest struct {
	Size decimal.Decimal `json:"size"`
}

// writeStockError maps ledger errors onto the status codes and messages the
// frontend expects.
func writeStockError(w http.ResponseWriter, err error) {
	var vErr *pipestock.ValidationError
	switch {
	case errors.Is(err, pipestock.ErrInsufficientStock):
		http.Error(w, "Insufficient stock in godown.", http.StatusBadRequest)
	case errors.Is(err, pipestock.ErrNotFound):
		http.Error(w, "Stock record not found.", http.StatusNotFound)
	case errors.Is(err, pipestock.ErrInvalidOperation):
		http.Error(w, "Invalid stock operation.", http.StatusBadRequest)
	case errors.As(err, &vErr):
		http.Error(w, vErr.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Stock operation failed", http.StatusInternalServerError)
	}
}

// GetGodownStock returns all godown stock lines, cached until the next
// stock mutation invalidates the key.
func (h *StockHandler) GetGodownStock(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCached(r.Context(), cache.GodownStockKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(data)
		return
	}

	items, err := h.Service.GodownStock(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch godown stock", http.StatusInternalServerError)
		return
	}

	if data, err := json.Marshal(items); err == nil {
		cache.SetCached(r.Context(), cache.GodownStockKey, data, statsCacheTTL)
	}

	w.Header().Set("X-Cache", "MISS")
	utils.JSON(w, http.StatusOK, items)
}

// AddGodownStock adds purchased pipes to the godown
func (h *StockHandler) AddGodownStock(w http.ResponseWriter, r *http.Request) {
	var req stockLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.Service.AddGodownStock(r.Context(), req.Size, req.Quantity)
	if err != nil {
		writeStockError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, item)
}

// SetGodownStock overwrites a godown line's quantity
func (h *StockHandler) SetGodownStock(w http.ResponseWriter, r *http.Request) {
	var req stockLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.SetGodownStock(r.Context(), req.Size, req.Quantity); err != nil {
		writeStockError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Stock updated"})
}

// DeleteGodownStock removes a godown line
func (h *StockHandler) DeleteGodownStock(w http.ResponseWriter, r *http.Request) {
	var req deleteStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteGodownStock(r.Context(), req.Size); err != nil {
		writeStockError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Stock deleted"})
}

// GetManagerStock returns a manager's stock lines
func (h *StockHandler) GetManagerStock(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	items, err := h.Service.ManagerStock(r.Context(), managerID)
	if err != nil {
		http.Error(w, "Failed to fetch stock", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, items)
}

// Withdraw moves pipes from the godown to a manager
func (h *StockHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	var req stockLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.Service.Withdraw(r.Context(), managerID, req.Size, req.Quantity)
	if err != nil {
		writeStockError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, entry)
}

// Adjust corrects a manager's stock downward after a physical count
func (h *StockHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	var req stockLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.Service.Adjust(r.Context(), managerID, req.Size, req.Quantity)
	if err != nil {
		if errors.Is(err, pipestock.ErrInvalidOperation) {
			http.Error(w, "Cannot increase stock via adjustment. Use 'Withdraw from Godown'.", http.StatusBadRequest)
			return
		}
		writeStockError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Stock adjusted"})
}

// DeleteStockLine removes a manager's stock line, logging any remainder
func (h *StockHandler) DeleteStockLine(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	var req deleteStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteStockLine(r.Context(), managerID, req.Size); err != nil {
		writeStockError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Stock deleted"})
}

// GetLogs returns a manager's movement log, newest first
func (h *StockHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	logs, err := h.Service.LogsForManager(r.Context(), managerID)
	if err != nil {
		http.Error(w, "Failed to fetch pipe logs", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, logs)
}

// ReverseWithdrawal undoes a withdrawal: stock returns to the godown and the
// log entry is removed
func (h *StockHandler) ReverseWithdrawal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	managerID := vars["id"]
	logID := vars["logId"]

	entry, err := h.Service.ReverseWithdrawal(r.Context(), managerID, logID)
	if err != nil {
		if errors.Is(err, pipestock.ErrNotFound) {
			http.Error(w, "Log not found.", http.StatusNotFound)
			return
		}
		if errors.Is(err, pipestock.ErrInvalidOperation) {
			http.Error(w, "Only withdrawal logs can be deleted this way.", http.StatusBadRequest)
			return
		}
		writeStockError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}
