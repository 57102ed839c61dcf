package models

// Agent is a commission agent who brings bore jobs to a manager.
type Agent struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ManagerID string `json:"manager_id"`
}

// CreateAgentRequest represents the request body for creating an agent
type CreateAgentRequest struct {
	Name string `json:"name"`
}
