package models

import "time"

// NormalExpense is a free-form operating expense. Diesel purchases also land
// here with a generated description so expense totals stay complete.
type NormalExpense struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category,omitempty"`
	ManagerID   string    `json:"manager_id"`
}

// LabourPayment is a wage payment to one worker.
type LabourPayment struct {
	ID        string    `json:"id"`
	WorkerID  string    `json:"worker_id"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	ManagerID string    `json:"manager_id"`
}

// CreateNormalExpenseRequest represents the request body for a normal expense
type CreateNormalExpenseRequest struct {
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category,omitempty"`
}

// CreateLabourPaymentRequest represents the request body for a labour payment
type CreateLabourPaymentRequest struct {
	WorkerID string    `json:"worker_id"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}
