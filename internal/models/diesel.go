package models

import "time"

// DieselPurchase tracks fuel bought into a manager's tank. Each purchase also
// records a NormalExpense so money and litres stay reconciled.
type DieselPurchase struct {
	ID        string    `json:"id"`
	Liters    float64   `json:"liters"`
	Cost      float64   `json:"cost"`
	Date      time.Time `json:"date"`
	ManagerID string    `json:"manager_id"`
}

// DieselUsage tracks fuel drawn from the tank for rigs and lorries.
type DieselUsage struct {
	ID         string    `json:"id"`
	LitersUsed float64   `json:"liters_used"`
	Purpose    string    `json:"purpose"`
	Date       time.Time `json:"date"`
	ManagerID  string    `json:"manager_id"`
}

// CreateDieselPurchaseRequest represents the request body for a diesel purchase
type CreateDieselPurchaseRequest struct {
	Liters float64   `json:"liters"`
	Cost   float64   `json:"cost"`
	Date   time.Time `json:"date"`
}

// CreateDieselUsageRequest represents the request body for logging diesel usage
type CreateDieselUsageRequest struct {
	LitersUsed float64 `json:"liters_used"`
	Purpose    string  `json:"purpose"`
}
