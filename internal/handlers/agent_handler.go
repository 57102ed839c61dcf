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

// AgentHandler handles commission agent endpoints
type AgentHandler struct {
	Repo *repositories.AgentRepository
}

func NewAgentHandler(repo *repositories.AgentRepository) *AgentHandler {
	return &AgentHandler{Repo: repo}
}

// List returns a manager's agents
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	agents, err := h.Repo.ListByManager(r.Context(), managerID)
	if err != nil {
		http.Error(w, "Failed to fetch agents", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, agents)
}

// Create adds an agent
func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	var req models.CreateAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Agent name is required", http.StatusBadRequest)
		return
	}

	agent := &models.Agent{
		Name:      req.Name,
		ManagerID: managerID,
	}
	if err := h.Repo.Create(r.Context(), agent); err != nil {
		http.Error(w, "Failed to create agent", http.StatusInternalServerError)
		return
	}

	cache.InvalidateManagerCaches(r.Context())
	utils.JSON(w, http.StatusCreated, agent)
}

// Delete removes an agent
func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	agentID := mux.Vars(r)["agentId"]

	if err := h.Repo.Delete(r.Context(), agentID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	cache.InvalidateManagerCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Agent deleted"})
}
