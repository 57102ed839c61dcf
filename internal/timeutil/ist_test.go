package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISTOffset(t *testing.T) {
	_, offset := Now().Zone()
	assert.Equal(t, 5*3600+30*60, offset)
}

func TestToIST(t *testing.T) {
	utc := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ist := ToIST(utc)
	assert.Equal(t, 5, ist.Hour())
	assert.Equal(t, 30, ist.Minute())
	assert.True(t, utc.Equal(ist))
}

func TestStartAndEndOfDay(t *testing.T) {
	// 23:30 UTC is already the next day in IST
	utc := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)

	start := StartOfDay(utc)
	assert.Equal(t, 2, start.Day())
	assert.Equal(t, 0, start.Hour())

	end := EndOfDay(utc)
	assert.Equal(t, 2, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
}

func TestParseInIST(t *testing.T) {
	parsed, err := ParseInIST(DateLayout, "2024-06-01")
	require.NoError(t, err)
	_, offset := parsed.Zone()
	assert.Equal(t, 5*3600+30*60, offset)
	assert.Equal(t, "2024-06-01", FormatIST(parsed, DateLayout))
}
