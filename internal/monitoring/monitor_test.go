package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512.0 MB", formatBytes(512*1024*1024))
	assert.Equal(t, "1.5 GB", formatBytes(3*1024*1024*1024/2))
	assert.Equal(t, "0.0 MB", formatBytes(0))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "45m", formatUptime(45*60))
	assert.Equal(t, "3h 20m", formatUptime(3*3600+20*60))
	assert.Equal(t, "2d 5h", formatUptime(2*86400+5*3600))
}

func TestAlertDeduplication(t *testing.T) {
	m := NewMonitor(nil)

	m.raise("warning", "disk_full", "Disk usage at 91.0%")
	m.raise("warning", "disk_full", "Disk usage at 92.0%")
	assert.Len(t, m.Alerts(), 1)
	assert.Equal(t, 1, m.activeAlertCount())

	m.resolve("disk_full")
	assert.Equal(t, 0, m.activeAlertCount())

	// A resolved alert no longer suppresses new ones
	m.raise("warning", "disk_full", "Disk usage at 95.0%")
	assert.Len(t, m.Alerts(), 2)
	assert.Equal(t, 1, m.activeAlertCount())
}

func TestResolveUnknownTypeIsNoOp(t *testing.T) {
	m := NewMonitor(nil)
	m.resolve("never_raised")
	assert.Empty(t, m.Alerts())
}
