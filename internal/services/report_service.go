package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"

	"borewell-backend/internal/models"
	"borewell-backend/internal/pipestock"
	"borewell-backend/internal/storage"
	"borewell-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ManagerReportData holds all data for a manager report
type ManagerReportData struct {
	Manager        *models.Manager
	Bores          []*models.Bore
	Workers        []*models.Worker
	NormalExpenses []*models.NormalExpense
	LabourPayments []*models.LabourPayment
	Stock          []*pipestock.StockItem
	TotalBilled    float64
	TotalReceived  float64
	Outstanding    float64
	TotalExpenses  float64
}

// ReportService generates PDF reports for managers and archives them to R2.
type ReportService struct {
	Managers *ManagerService
	Archive  *storage.R2Archive
}

// NewReportService creates a new report service
func NewReportService(managers *ManagerService, archive *storage.R2Archive) *ReportService {
	return &ReportService{Managers: managers, Archive: archive}
}

// GetManagerReportData fetches all data for a manager report
func (s *ReportService) GetManagerReportData(ctx context.Context, managerID string) (*ManagerReportData, error) {
	detail, err := s.Managers.GetManagerDetail(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("manager not found: %s", managerID)
	}

	data := &ManagerReportData{
		Manager:        detail.Manager,
		Bores:          detail.Bores,
		Workers:        detail.Workers,
		NormalExpenses: detail.NormalExpenses,
		LabourPayments: detail.LabourPayments,
		Stock:          detail.PipeStock,
	}

	for _, bore := range detail.Bores {
		data.TotalBilled += bore.TotalBill
		for _, payment := range bore.Payments {
			data.TotalReceived += payment.Amount
		}
	}
	data.Outstanding = data.TotalBilled - data.TotalReceived

	for _, expense := range detail.NormalExpenses {
		data.TotalExpenses += expense.Amount
	}
	for _, payment := range detail.LabourPayments {
		data.TotalExpenses += payment.Amount
	}

	return data, nil
}

// GenerateManagerPDF generates a PDF report for a single manager
func (s *ReportService) GenerateManagerPDF(data *ManagerReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Borewell Operations - Manager Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Manager Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Manager Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", data.Manager.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Email: %s", data.Manager.Email), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Bore Jobs
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Bore Jobs", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(30, 7, "Bore No", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Feet", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Agent", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 7, "Bill", "1", 0, "C", true, 0, "")
	pdf.CellFormat(33, 7, "Received", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, bore := range data.Bores {
		received := 0.0
		for _, p := range bore.Payments {
			received += p.Amount
		}
		agent := bore.AgentName
		if len(agent) > 18 {
			agent = agent[:15] + "..."
		}
		pdf.CellFormat(30, 6, bore.BoreNumber, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, bore.Date.Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.0f", bore.TotalFeet), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, agent, "1", 0, "L", false, 0, "")
		pdf.CellFormat(32, 6, fmt.Sprintf("Rs. %.2f", bore.TotalBill), "1", 0, "R", false, 0, "")
		pdf.CellFormat(33, 6, fmt.Sprintf("Rs. %.2f", received), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Pipe Stock. Drained and negative lines stay out of the report, the
	// same filtering the dashboard applies.
	if held := pipestock.DisplayBalances(data.Stock); len(held) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Pipe Stock", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(95, 7, "Size (inches)", "1", 0, "C", true, 0, "")
		pdf.CellFormat(95, 7, "Quantity", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, bal := range held {
			pdf.CellFormat(95, 6, bal.Size.String(), "1", 0, "C", false, 0, "")
			pdf.CellFormat(95, 6, fmt.Sprintf("%d", bal.Quantity), "1", 1, "C", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Financial Summary
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Financial Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Total Billed: Rs. %.2f", data.TotalBilled), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Received: Rs. %.2f", data.TotalReceived), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Expenses: Rs. %.2f", data.TotalExpenses), "1", 1, "C", false, 0, "")

	// Outstanding - highlight when customers still owe
	if data.Outstanding > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	outstandingText := fmt.Sprintf("Outstanding: Rs. %.2f", data.Outstanding)
	if data.Outstanding <= 0 {
		outstandingText = "FULLY COLLECTED"
	}
	pdf.CellFormat(190, 10, outstandingText, "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateAndArchive builds a manager's PDF and uploads a copy to R2.
func (s *ReportService) GenerateAndArchive(ctx context.Context, managerID string) ([]byte, error) {
	data, err := s.GetManagerReportData(ctx, managerID)
	if err != nil {
		return nil, err
	}

	pdfData, err := s.GenerateManagerPDF(data)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("manager_%s.pdf", data.Manager.ID)
	if _, err := s.Archive.Upload(ctx, name, pdfData); err != nil {
		// Archiving is best effort; the caller still gets the PDF
		log.Printf("[Report] Failed to archive report for manager %s: %v", managerID, err)
	}

	return pdfData, nil
}

// GenerateAllManagerPDFs generates PDFs for every manager in parallel
func (s *ReportService) GenerateAllManagerPDFs(ctx context.Context) (map[string][]byte, error) {
	managers, err := s.Managers.ListManagers(ctx)
	if err != nil {
		return nil, err
	}

	type pdfResult struct {
		name string
		data []byte
		err  error
	}

	results := make(chan pdfResult, len(managers))
	jobs := make(chan *models.Manager, len(managers))

	// Start 5 workers for PDF generation
	var wg sync.WaitGroup
	numWorkers := 5
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				data, err := s.GetManagerReportData(ctx, m.ID)
				if err != nil {
					results <- pdfResult{err: err}
					continue
				}
				pdfData, err := s.GenerateManagerPDF(data)
				results <- pdfResult{
					name: fmt.Sprintf("%s_%s", m.ID, m.Name),
					data: pdfData,
					err:  err,
				}
			}
		}()
	}

	for _, m := range managers {
		jobs <- m
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	pdfs := make(map[string][]byte)
	for r := range results {
		if r.err == nil && r.data != nil {
			pdfs[r.name] = r.data
		}
	}

	return pdfs, nil
}

// CreateBulkPDFZip creates a ZIP file containing all manager PDFs
func (s *ReportService) CreateBulkPDFZip(pdfs map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for filename, pdfData := range pdfs {
		fw, err := zw.Create(fmt.Sprintf("manager_%s.pdf", filename))
		if err != nil {
			continue
		}
		fw.Write(pdfData)
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
