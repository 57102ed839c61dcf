package services

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"borewell-backend/internal/models"
	"borewell-backend/internal/pipestock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReportData() *ManagerReportData {
	return &ManagerReportData{
		Manager: &models.Manager{
			ID:    "m1",
			Name:  "Ravi Kumar",
			Email: "ravi@example.com",
		},
		Bores: []*models.Bore{
			{
				ID:         "b1",
				Date:       time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
				BoreNumber: "BW-101",
				TotalFeet:  450,
				AgentName:  "An Agent With A Very Long Name",
				TotalBill:  90000,
				Payments: []models.Payment{
					{ID: "p1", BoreID: "b1", Amount: 40000},
				},
			},
		},
		Stock: []*pipestock.StockItem{
			{Size: decimal.NewFromFloat(5), Quantity: 12, Owner: pipestock.ManagerOwner("m1")},
		},
		TotalBilled:   90000,
		TotalReceived: 40000,
		Outstanding:   50000,
		TotalExpenses: 15000,
	}
}

func TestGenerateManagerPDF(t *testing.T) {
	s := NewReportService(nil, nil)

	pdf, err := s.GenerateManagerPDF(sampleReportData())
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGenerateManagerPDFFullyCollected(t *testing.T) {
	s := NewReportService(nil, nil)

	data := sampleReportData()
	data.TotalReceived = data.TotalBilled
	data.Outstanding = 0

	pdf, err := s.GenerateManagerPDF(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGenerateManagerPDFSkipsDrainedStock(t *testing.T) {
	s := NewReportService(nil, nil)

	data := sampleReportData()
	data.Stock = []*pipestock.StockItem{
		{Size: decimal.NewFromFloat(5), Quantity: 0, Owner: pipestock.ManagerOwner("m1")},
		{Size: decimal.NewFromFloat(6), Quantity: -3, Owner: pipestock.ManagerOwner("m1")},
	}

	pdf, err := s.GenerateManagerPDF(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestCreateBulkPDFZip(t *testing.T) {
	s := NewReportService(nil, nil)

	pdf, err := s.GenerateManagerPDF(sampleReportData())
	require.NoError(t, err)

	archive, err := s.CreateBulkPDFZip(map[string][]byte{
		"m1_Ravi Kumar": pdf,
		"m2_Suresh":     pdf,
	})
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)

	names := []string{reader.File[0].Name, reader.File[1].Name}
	assert.Contains(t, names, "manager_m1_Ravi Kumar.pdf")
	assert.Contains(t, names, "manager_m2_Suresh.pdf")
}
