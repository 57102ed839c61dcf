package models

import "time"

// Manager is a field manager running one drilling operation. Each manager owns
// their workers, bores, expenses, diesel records, agents and pipe stock.
type Manager struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateManagerRequest represents the request body for creating a manager
type CreateManagerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateManagerRequest represents the request body for updating a manager
type UpdateManagerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"` // Optional, unchanged when empty
}
