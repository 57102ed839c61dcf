package handlers

import (
	"encoding/json"
	"net/http"

	"borewell-backend/internal/models"
	"borewell-backend/internal/services"
	"borewell-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// BoreHandler handles bore jobs and their payment history
type BoreHandler struct {
	Service *services.BoreService
}

func NewBoreHandler(service *services.BoreService) *BoreHandler {
	return &BoreHandler{Service: service}
}

// List returns all bores for a manager
func (h *BoreHandler) List(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	bores, err := h.Service.ListBores(r.Context(), managerID)
	if err != nil {
		http.Error(w, "Failed to fetch bores", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, bores)
}

// Create records a new bore job together with its pipe usage and optional
// initial payment
func (h *BoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	var req models.CreateBoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	bore, err := h.Service.CreateBore(r.Context(), managerID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusCreated, bore)
}

// Get returns one bore with its pipe entries and payments
func (h *BoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	boreID := mux.Vars(r)["boreId"]

	bore, err := h.Service.GetBore(r.Context(), boreID)
	if err != nil {
		http.Error(w, "Failed to fetch bore", http.StatusInternalServerError)
		return
	}
	if bore == nil {
		http.Error(w, "Bore not found", http.StatusNotFound)
		return
	}
	utils.JSON(w, http.StatusOK, bore)
}

// Delete removes a bore and refunds its consumed pipe stock
func (h *BoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := h.Service.DeleteBore(r.Context(), vars["id"], vars["boreId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Bore deleted"})
}

// AddPayment records a payment against a bore
func (h *BoreHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	boreID := mux.Vars(r)["boreId"]

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := h.Service.AddPayment(r.Context(), boreID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusCreated, payment)
}

// DeletePayment removes a payment from a bore's history
func (h *BoreHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["paymentId"]

	if err := h.Service.DeletePayment(r.Context(), paymentID); err != nil {
		http.Error(w, "Failed to delete payment", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Payment deleted"})
}
