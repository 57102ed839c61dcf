package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bore is one completed drilling job billed to a customer through an agent.
type Bore struct {
	ID           string      `json:"id"`
	Date         time.Time   `json:"date"`
	BoreNumber   string      `json:"bore_number"`
	TotalFeet    float64     `json:"total_feet"`
	PricePerFeet float64     `json:"price_per_feet"`
	AgentName    string      `json:"agent_name"`
	TotalBill    float64     `json:"total_bill"`
	ManagerID    string      `json:"manager_id"`
	PipesUsed    []PipeEntry `json:"pipes_used"`
	Payments     []Payment   `json:"payments"`
	CreatedAt    time.Time   `json:"created_at"`
}

// PipeEntry is one billed pipe line on a bore: how many feet of which size
// went into the ground and at what rate.
type PipeEntry struct {
	ID               string          `json:"id"`
	BoreID           string          `json:"bore_id"`
	Size             decimal.Decimal `json:"size"`   // inches
	Length           float64         `json:"length"` // feet
	PricePerPipeFoot float64         `json:"price_per_pipe_foot"`
}

// Payment is one customer payment against a bore's bill.
type Payment struct {
	ID     string    `json:"id"`
	BoreID string    `json:"bore_id"`
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// PipeUsageInput is one size's stock consumption reported with a new bore.
type PipeUsageInput struct {
	Diameter decimal.Decimal `json:"diameter"`
	Quantity int             `json:"quantity"`
}

// CreateBoreRequest represents the request body for creating a bore. PipesUsed
// carries the billing lines; PipeLogs carries the stock consumption, which may
// differ when the manager drills with pipes billed to another job.
type CreateBoreRequest struct {
	Date           time.Time        `json:"date"`
	BoreNumber     string           `json:"bore_number"`
	TotalFeet      float64          `json:"total_feet"`
	PricePerFeet   float64          `json:"price_per_feet"`
	PipesUsed      []PipeEntry      `json:"pipes_used"`
	AgentName      string           `json:"agent_name"`
	TotalBill      float64          `json:"total_bill"`
	InitialPayment float64          `json:"initial_payment"`
	PipeLogs       []PipeUsageInput `json:"pipe_logs"`
}

// CreatePaymentRequest represents the request body for recording a payment
type CreatePaymentRequest struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}
