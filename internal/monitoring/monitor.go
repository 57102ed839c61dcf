package monitoring

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"borewell-backend/internal/cache"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Monitor collects system and database stats for the admin panel and raises
// alerts when the database degrades. It runs in-process on the single VPS the
// business deploys to.
type Monitor struct {
	db        *pgxpool.Pool
	alerts    []Alert
	alertsMux sync.RWMutex
}

type Alert struct {
	ID        int       `json:"id"`
	Severity  string    `json:"severity"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Resolved  bool      `json:"resolved"`
}

// SystemStats is a point-in-time snapshot of the host and database
type SystemStats struct {
	DatabaseStatus    string  `json:"database_status"`
	ActiveConnections int     `json:"active_connections"`
	ResponseTime      int64   `json:"response_time_ms"`
	DBSize            string  `json:"db_size"`
	DBUptime          string  `json:"db_uptime"`
	CacheStatus       string  `json:"cache_status"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	MemoryUsed        string  `json:"memory_used"`
	MemoryTotal       string  `json:"memory_total"`
	DiskPercent       float64 `json:"disk_percent"`
	DiskUsed          string  `json:"disk_used"`
	DiskTotal         string  `json:"disk_total"`
	ActiveAlerts      int     `json:"active_alerts"`
}

func NewMonitor(db *pgxpool.Pool) *Monitor {
	return &Monitor{db: db, alerts: make([]Alert, 0)}
}

// CollectStats gathers host metrics via gopsutil and database metrics via
// pg_stat queries.
func (m *Monitor) CollectStats(ctx context.Context) SystemStats {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	err := m.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	dbStatus := "healthy"
	if err != nil {
		dbStatus = "unhealthy"
	}

	var activeConns int
	m.db.QueryRow(ctx, "SELECT count(*) FROM pg_stat_activity").Scan(&activeConns)

	var dbSizeBytes int64
	m.db.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&dbSizeBytes)

	var uptimeSec int
	m.db.QueryRow(ctx, "SELECT EXTRACT(EPOCH FROM (NOW() - pg_postmaster_start_time()))::int").Scan(&uptimeSec)

	cacheStatus := "healthy"
	if !cache.IsHealthy() {
		cacheStatus = "degraded"
	}

	cpuPercents, _ := cpu.Percent(time.Second, false)
	cpuPercent := 0.0
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	stats := SystemStats{
		DatabaseStatus:    dbStatus,
		ActiveConnections: activeConns,
		ResponseTime:      responseTime,
		DBSize:            formatBytes(uint64(dbSizeBytes)),
		DBUptime:          formatUptime(uptimeSec),
		CacheStatus:       cacheStatus,
		CPUPercent:        cpuPercent,
		ActiveAlerts:      m.activeAlertCount(),
	}
	if memStats != nil {
		stats.MemoryPercent = memStats.UsedPercent
		stats.MemoryUsed = formatBytes(memStats.Used)
		stats.MemoryTotal = formatBytes(memStats.Total)
	}
	if diskStats != nil {
		stats.DiskPercent = diskStats.UsedPercent
		stats.DiskUsed = formatBytes(diskStats.Used)
		stats.DiskTotal = formatBytes(diskStats.Total)
	}

	return stats
}

// Alerts returns all raised alerts, newest last
func (m *Monitor) Alerts() []Alert {
	m.alertsMux.RLock()
	defer m.alertsMux.RUnlock()

	out := make([]Alert, len(m.alerts))
	copy(out, m.alerts)
	return out
}

func (m *Monitor) activeAlertCount() int {
	m.alertsMux.RLock()
	defer m.alertsMux.RUnlock()

	count := 0
	for _, alert := range m.alerts {
		if !alert.Resolved {
			count++
		}
	}
	return count
}

func (m *Monitor) raise(severity, alertType, message string) {
	m.alertsMux.Lock()
	defer m.alertsMux.Unlock()

	// Don't stack duplicates of an unresolved alert
	for _, alert := range m.alerts {
		if alert.Type == alertType && !alert.Resolved {
			return
		}
	}

	m.alerts = append(m.alerts, Alert{
		ID:        len(m.alerts) + 1,
		Severity:  severity,
		Type:      alertType,
		Message:   message,
		Timestamp: time.Now(),
	})
	log.Printf("[Monitoring] %s alert: %s", severity, message)
}

func (m *Monitor) resolve(alertType string) {
	m.alertsMux.Lock()
	defer m.alertsMux.Unlock()

	for i := range m.alerts {
		if m.alerts[i].Type == alertType && !m.alerts[i].Resolved {
			m.alerts[i].Resolved = true
		}
	}
}

// Run checks health every 30 seconds until the context is cancelled
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *Monitor) check(ctx context.Context) {
	stats := m.CollectStats(ctx)

	if stats.DatabaseStatus == "unhealthy" {
		m.raise("critical", "database_down", "Database is unreachable")
	} else {
		m.resolve("database_down")
	}

	if stats.ResponseTime > 1000 {
		m.raise("warning", "high_latency", fmt.Sprintf("Database response time: %dms", stats.ResponseTime))
	} else {
		m.resolve("high_latency")
	}

	if stats.DiskPercent > 90 {
		m.raise("warning", "disk_full", fmt.Sprintf("Disk usage at %.1f%%", stats.DiskPercent))
	} else {
		m.resolve("disk_full")
	}
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(seconds int) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
