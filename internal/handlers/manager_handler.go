package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"borewell-backend/internal/cache"
	"borewell-backend/internal/models"
	"borewell-backend/internal/services"
	"borewell-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// ManagerHandler handles manager account endpoints
type ManagerHandler struct {
	Service *services.ManagerService
}

func NewManagerHandler(service *services.ManagerService) *ManagerHandler {
	return &ManagerHandler{Service: service}
}

// List returns all managers
func (h *ManagerHandler) List(w http.ResponseWriter, r *http.Request) {
	managers, err := h.Service.ListManagers(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch managers", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, managers)
}

// Create adds a new manager
func (h *ManagerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	manager, err := h.Service.CreateManager(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cache.InvalidateManagerCaches(r.Context())
	utils.JSON(w, http.StatusCreated, manager)
}

// Get returns a manager with all related records. The response is cached per
// manager; every stock or money mutation clears the stats:* keys.
func (h *ManagerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	cacheKey := fmt.Sprintf(cache.ManagerStatsFmt, id)

	if data, ok := cache.GetCached(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(data)
		return
	}

	detail, err := h.Service.GetManagerDetail(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to fetch manager", http.StatusInternalServerError)
		return
	}
	if detail == nil {
		http.Error(w, "Manager not found", http.StatusNotFound)
		return
	}

	if data, err := json.Marshal(detail); err == nil {
		cache.SetCached(r.Context(), cacheKey, data, statsCacheTTL)
	}

	w.Header().Set("X-Cache", "MISS")
	utils.JSON(w, http.StatusOK, detail)
}

// Update modifies a manager's name, email and optionally password
func (h *ManagerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	manager, err := h.Service.UpdateManager(r.Context(), id, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cache.InvalidateManagerCaches(r.Context())
	utils.JSON(w, http.StatusOK, manager)
}

// Delete removes a manager and all dependent records
func (h *ManagerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.DeleteManager(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete manager", http.StatusInternalServerError)
		return
	}

	cache.InvalidateManagerCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Manager deleted"})
}
