package handlers

import (
	"encoding/json"
	"net/http"

	"borewell-backend/internal/models"
	"borewell-backend/internal/repositories"
	"borewell-backend/internal/services"
	"borewell-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// DieselHandler handles fuel purchase and usage endpoints
type DieselHandler struct {
	Service *services.DieselService
	Repo    *repositories.DieselRepository
}

func NewDieselHandler(service *services.DieselService, repo *repositories.DieselRepository) *DieselHandler {
	return &DieselHandler{Service: service, Repo: repo}
}

// ListPurchases returns a manager's diesel purchases, newest first
func (h *DieselHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	purchases, err := h.Repo.ListPurchasesByManager(r.Context(), managerID)
	if err != nil {
		http.Error(w, "Failed to fetch diesel purchases", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, purchases)
}

// CreatePurchase records a fuel purchase and its matching expense
func (h *DieselHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	var req models.CreateDieselPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	purchase, err := h.Service.RecordPurchase(r.Context(), managerID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusCreated, purchase)
}

// ListUsage returns a manager's diesel usage log, newest first
func (h *DieselHandler) ListUsage(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	usage, err := h.Repo.ListUsageByManager(r.Context(), managerID)
	if err != nil {
		http.Error(w, "Failed to fetch diesel usage", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, usage)
}

// CreateUsage logs fuel drawn from the tank
func (h *DieselHandler) CreateUsage(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	var req models.CreateDieselUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	usage, err := h.Service.RecordUsage(r.Context(), managerID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusCreated, usage)
}

// DeleteUsage removes a usage entry
func (h *DieselHandler) DeleteUsage(w http.ResponseWriter, r *http.Request) {
	usageID := mux.Vars(r)["usageId"]

	if err := h.Service.DeleteUsage(r.Context(), usageID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Diesel usage deleted"})
}
