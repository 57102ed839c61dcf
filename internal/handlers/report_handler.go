package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"borewell-backend/internal/services"
	"borewell-backend/internal/timeutil"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// GetManagerPDF handles GET /api/reports/managers/{id}/pdf
// Returns a single manager's PDF report and archives a copy
func (h *ReportHandler) GetManagerPDF(w http.ResponseWriter, r *http.Request) {
	managerID := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	pdfData, err := h.Service.GenerateAndArchive(ctx, managerID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate report: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("manager_%s_%s.pdf", managerID, timeutil.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(pdfData)
}

// GetAllManagersPDFZip handles GET /api/reports/managers/pdf
// Returns a ZIP file containing one PDF per manager
func (h *ReportHandler) GetAllManagersPDFZip(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	pdfs, err := h.Service.GenerateAllManagerPDFs(ctx)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate PDFs: %v", err), http.StatusInternalServerError)
		return
	}

	if len(pdfs) == 0 {
		http.Error(w, "No managers found", http.StatusNotFound)
		return
	}

	zipData, err := h.Service.CreateBulkPDFZip(pdfs)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create ZIP: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("manager_reports_%s.zip", timeutil.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(zipData)
}
