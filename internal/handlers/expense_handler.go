package handlers

import (
	"encoding/json"
	"net/http"

	"borewell-backend/internal/cache"
	"borewell-backend/internal/models"
	"borewell-backend/internal/repositories"
	"borewell-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// ExpenseHandler handles normal expenses and labour payments
type ExpenseHandler struct {
	Repo *repositories.ExpenseRepository
}

func NewExpenseHandler(repo *repositories.ExpenseRepository) *ExpenseHandler {
	return &ExpenseHandler{Repo: repo}
}

// ListNormal returns a manager's expenses, newest first
func (h *ExpenseHandler) ListNormal(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	expenses, err := h.Repo.ListNormalByManager(r.Context(), managerID)
	if err != nil {
		http.Error(w, "Failed to fetch expenses", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, expenses)
}

// CreateNormal records an operating expense
func (h *ExpenseHandler) CreateNormal(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	var req models.CreateNormalExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Description == "" || req.Amount <= 0 {
		http.Error(w, "Description and a positive amount are required", http.StatusBadRequest)
		return
	}

	expense := &models.NormalExpense{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Category:    req.Category,
		ManagerID:   managerID,
	}
	if err := h.Repo.CreateNormal(r.Context(), expense); err != nil {
		http.Error(w, "Failed to create expense", http.StatusInternalServerError)
		return
	}

	cache.InvalidateManagerCaches(r.Context())
	utils.JSON(w, http.StatusCreated, expense)
}

// DeleteNormal removes an expense
func (h *ExpenseHandler) DeleteNormal(w http.ResponseWriter, r *http.Request) {
	expenseID := mux.Vars(r)["expenseId"]

	if err := h.Repo.DeleteNormal(r.Context(), expenseID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	cache.InvalidateManagerCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Expense deleted"})
}

// ListLabour returns a manager's labour payments, newest first
func (h *ExpenseHandler) ListLabour(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	payments, err := h.Repo.ListLabourByManager(r.Context(), managerID)
	if err != nil {
		http.Error(w, "Failed to fetch labour payments", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, payments)
}

// CreateLabour records a wage payment to a worker
func (h *ExpenseHandler) CreateLabour(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	var req models.CreateLabourPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.WorkerID == "" || req.Amount <= 0 {
		http.Error(w, "Worker and a positive amount are required", http.StatusBadRequest)
		return
	}

	payment := &models.LabourPayment{
		WorkerID:  req.WorkerID,
		Amount:    req.Amount,
		Date:      req.Date,
		ManagerID: managerID,
	}
	if err := h.Repo.CreateLabourPayment(r.Context(), payment); err != nil {
		http.Error(w, "Failed to create labour payment", http.StatusInternalServerError)
		return
	}

	cache.InvalidateManagerCaches(r.Context())
	utils.JSON(w, http.StatusCreated, payment)
}

// DeleteLabour removes a labour payment
func (h *ExpenseHandler) DeleteLabour(w http.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["paymentId"]

	if err := h.Repo.DeleteLabourPayment(r.Context(), paymentID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	cache.InvalidateManagerCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Labour payment deleted"})
}
