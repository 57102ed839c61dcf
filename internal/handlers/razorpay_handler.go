package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"borewell-backend/internal/models"
	"borewell-backend/internal/services"
	"borewell-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// RazorpayHandler exposes online payment endpoints
type RazorpayHandler struct {
	Service *services.RazorpayService
}

func NewRazorpayHandler(service *services.RazorpayService) *RazorpayHandler {
	return &RazorpayHandler{Service: service}
}

// GetStatus tells the frontend whether online payments are available
func (h *RazorpayHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Service.GetPaymentStatus())
}

// CreateOrder creates a Razorpay order for a bore payment
func (h *RazorpayHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOnlinePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.CreateOrder(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// VerifyPayment handles the checkout callback after payment
func (h *RazorpayHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tx, err := h.Service.VerifyPayment(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusOK, tx)
}

// Webhook processes Razorpay server-to-server events
func (h *RazorpayHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.Service.VerifyWebhookSignature(body, signature) {
		http.Error(w, "Invalid webhook signature", http.StatusUnauthorized)
		return
	}

	var payload models.RazorpayWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if err := h.Service.ProcessWebhook(r.Context(), payload.Event, payload.Payload); err != nil {
		// Acknowledge anyway so Razorpay does not retry forever;
		// reconciliation covers anything missed
		log.Printf("[Razorpay] Webhook processing failed: %v", err)
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetBoreTransactions lists online payment attempts for a bore
func (h *RazorpayHandler) GetBoreTransactions(w http.ResponseWriter, r *http.Request) {
	boreID := mux.Vars(r)["boreId"]

	transactions, err := h.Service.GetTransactionsForBore(r.Context(), boreID)
	if err != nil {
		http.Error(w, "Failed to fetch transactions", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, transactions)
}

// Reconcile records bore payments for captured transactions that missed them
func (h *RazorpayHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.ReconcilePayments(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int{"reconciled": count})
}
