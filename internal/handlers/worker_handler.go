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

// WorkerHandler handles crew worker endpoints
type WorkerHandler struct {
	Repo *repositories.WorkerRepository
}

func NewWorkerHandler(repo *repositories.WorkerRepository) *WorkerHandler {
	return &WorkerHandler{Repo: repo}
}

// List returns a manager's workers with their paid totals
func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	workers, err := h.Repo.ListByManager(r.Context(), managerID)
	if err != nil {
		http.Error(w, "Failed to fetch workers", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, workers)
}

// Create adds a worker to a manager's crew
func (h *WorkerHandler) Create(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	var req models.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Worker name is required", http.StatusBadRequest)
		return
	}

	worker := &models.Worker{
		Name:          req.Name,
		Place:         req.Place,
		MonthlySalary: req.MonthlySalary,
		MonthsWorked:  req.MonthsWorked,
		ManagerID:     managerID,
	}
	if err := h.Repo.Create(r.Context(), worker); err != nil {
		http.Error(w, "Failed to create worker", http.StatusInternalServerError)
		return
	}

	cache.InvalidateManagerCaches(r.Context())
	utils.JSON(w, http.StatusCreated, worker)
}

// Update modifies a worker's details
func (h *WorkerHandler) Update(w http.ResponseWriter, r *http.Request) {
	workerID := mux.Vars(r)["workerId"]

	var req models.UpdateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	worker := &models.Worker{
		ID:            workerID,
		Name:          req.Name,
		Place:         req.Place,
		MonthlySalary: req.MonthlySalary,
		MonthsWorked:  req.MonthsWorked,
	}
	if err := h.Repo.Update(r.Context(), worker); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	cache.InvalidateManagerCaches(r.Context())
	utils.JSON(w, http.StatusOK, worker)
}

// Delete removes a worker
func (h *WorkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	workerID := mux.Vars(r)["workerId"]

	if err := h.Repo.Delete(r.Context(), workerID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	cache.InvalidateManagerCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Worker deleted"})
}
