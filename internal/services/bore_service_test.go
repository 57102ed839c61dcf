package services

import (
	"testing"

	"borewell-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	boreSizeSix  = decimal.RequireFromString("6")
	boreSizeFive = decimal.RequireFromString("5")
)

func TestPipeUsageDerivedFromBilledLines(t *testing.T) {
	req := &models.CreateBoreRequest{
		BoreNumber: "BW-3001",
		PipesUsed: []models.PipeEntry{
			{Size: boreSizeSix, Length: 110},
		},
	}

	usage := pipeUsageForBore(req)
	require.Len(t, usage, 1)
	assert.True(t, usage[0].Diameter.Equal(boreSizeSix))
	assert.Equal(t, 6, usage[0].Quantity, "110 ft needs six 20 ft sticks")
}

func TestPipeUsageAggregatesSameSize(t *testing.T) {
	req := &models.CreateBoreRequest{
		BoreNumber: "BW-3002",
		PipesUsed: []models.PipeEntry{
			{Size: boreSizeSix, Length: 30},
			{Size: boreSizeFive, Length: 20},
			{Size: boreSizeSix, Length: 45},
		},
	}

	usage := pipeUsageForBore(req)
	require.Len(t, usage, 2)
	assert.True(t, usage[0].Diameter.Equal(boreSizeSix), "first-seen size stays first")
	assert.Equal(t, 5, usage[0].Quantity, "2 sticks for 30 ft plus 3 for 45 ft")
	assert.True(t, usage[1].Diameter.Equal(boreSizeFive))
	assert.Equal(t, 1, usage[1].Quantity)
}

func TestPipeUsageSkipsZeroLengthLines(t *testing.T) {
	req := &models.CreateBoreRequest{
		BoreNumber: "BW-3003",
		PipesUsed: []models.PipeEntry{
			{Size: boreSizeSix, Length: 0},
			{Size: boreSizeFive, Length: 20},
		},
	}

	usage := pipeUsageForBore(req)
	require.Len(t, usage, 1)
	assert.True(t, usage[0].Diameter.Equal(boreSizeFive))
}

func TestPipeUsageExplicitLogsOverrideDerivation(t *testing.T) {
	// The manager may drill with pipes billed to another job; an explicit
	// pipe_logs list replaces the derived consumption entirely.
	req := &models.CreateBoreRequest{
		BoreNumber: "BW-3004",
		PipesUsed: []models.PipeEntry{
			{Size: boreSizeSix, Length: 110},
		},
		PipeLogs: []models.PipeUsageInput{
			{Diameter: boreSizeFive, Quantity: 2},
		},
	}

	usage := pipeUsageForBore(req)
	require.Len(t, usage, 1)
	assert.True(t, usage[0].Diameter.Equal(boreSizeFive))
	assert.Equal(t, 2, usage[0].Quantity)
}

func TestPipeUsageEmptyRequest(t *testing.T) {
	usage := pipeUsageForBore(&models.CreateBoreRequest{BoreNumber: "BW-3005"})
	assert.Empty(t, usage)
}
