package models

import "time"

const (
	OnlineTxStatusCreated = "created"
	OnlineTxStatusSuccess = "success"
	OnlineTxStatusFailed  = "failed"
)

// OnlineTransaction tracks a Razorpay order for a bore payment from creation
// through capture or failure.
type OnlineTransaction struct {
	ID                int        `json:"id"`
	RazorpayOrderID   string     `json:"razorpay_order_id"`
	RazorpayPaymentID string     `json:"razorpay_payment_id,omitempty"`
	BoreID            string     `json:"bore_id"`
	BoreNumber        string     `json:"bore_number"`
	ManagerID         string     `json:"manager_id"`
	AgentName         string     `json:"agent_name,omitempty"`
	Amount            float64    `json:"amount"`
	Status            string     `json:"status"`
	UTRNumber         string     `json:"utr_number,omitempty"`
	Method            string     `json:"method,omitempty"`
	Bank              string     `json:"bank,omitempty"`
	VPA               string     `json:"vpa,omitempty"`
	FailureReason     string     `json:"failure_reason,omitempty"`
	PaymentID         *string    `json:"payment_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// CreateOnlinePaymentRequest initiates an online payment against a bore.
type CreateOnlinePaymentRequest struct {
	BoreID string  `json:"bore_id"`
	Amount float64 `json:"amount"`
}

// CreateOrderResponse is returned to the frontend for Razorpay checkout
type CreateOrderResponse struct {
	OrderID    string `json:"order_id"`
	Amount     int    `json:"amount"` // In paise
	Currency   string `json:"currency"`
	KeyID      string `json:"key_id"`
	BoreNumber string `json:"bore_number"`
	AgentName  string `json:"agent_name,omitempty"`
}

// VerifyPaymentRequest is sent from the frontend after the Razorpay callback
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// PaymentStatusResponse is returned when checking if online payments are enabled
type PaymentStatusResponse struct {
	Enabled bool   `json:"enabled"`
	KeyID   string `json:"key_id,omitempty"`
}

// RazorpayWebhookPayload represents the webhook payload from Razorpay
type RazorpayWebhookPayload struct {
	Event     string                 `json:"event"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt int64                  `json:"created_at"`
}
