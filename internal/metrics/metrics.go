package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects application performance counters.
type Metrics struct {
	// Request metrics
	TotalRequests         atomic.Uint64
	SuccessfulResolutions atomic.Uint64
	FailedResolutions     atomic.Uint64

	// Redirect proxy metrics
	ProxiedDownloads atomic.Uint64
	ProxiedBytes     atomic.Uint64
	UnknownCodeHits  atomic.Uint64
	FetchFailures    atomic.Uint64

	// System metrics
	Uptime time.Time

	// Per-platform metrics
	platformStats sync.Map // platform route -> *PlatformStats
}

// PlatformStats tracks resolutions per platform route.
type PlatformStats struct {
	Total      atomic.Uint64
	Successful atomic.Uint64
	Failed     atomic.Uint64
}

// Global metrics instance
var globalMetrics *Metrics

func init() {
	globalMetrics = &Metrics{
		Uptime: time.Now(),
	}
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	return globalMetrics
}

// IncrementRequests increments total request counter
func (m *Metrics) IncrementRequests() {
	m.TotalRequests.Add(1)
}

// RecordResolution records the outcome of one resolution on a platform
// route.
func (m *Metrics) RecordResolution(platform string, success bool) {
	if success {
		m.SuccessfulResolutions.Add(1)
	} else {
		m.FailedResolutions.Add(1)
	}

	statsInterface, _ := m.platformStats.LoadOrStore(platform, &PlatformStats{})
	stats := statsInterface.(*PlatformStats)
	stats.Total.Add(1)
	if success {
		stats.Successful.Add(1)
	} else {
		stats.Failed.Add(1)
	}
}

// RecordProxiedDownload records a completed redeem of a short code.
func (m *Metrics) RecordProxiedDownload(bytes int64) {
	m.ProxiedDownloads.Add(1)
	if bytes > 0 {
		m.ProxiedBytes.Add(uint64(bytes))
	}
}

// RecordUnknownCode records a redeem attempt for an unknown code.
func (m *Metrics) RecordUnknownCode() {
	m.UnknownCodeHits.Add(1)
}

// RecordFetchFailure records a failed origin fetch.
func (m *Metrics) RecordFetchFailure() {
	m.FetchFailures.Add(1)
}

// GetSnapshot returns current metrics snapshot
func (m *Metrics) GetSnapshot() map[string]interface{} {
	uptime := time.Since(m.Uptime)

	total := m.SuccessfulResolutions.Load() + m.FailedResolutions.Load()
	successRate := float64(0)
	if total > 0 {
		successRate = float64(m.SuccessfulResolutions.Load()) / float64(total) * 100
	}

	return map[string]interface{}{
		"uptime_seconds":          int64(uptime.Seconds()),
		"total_requests":          m.TotalRequests.Load(),
		"successful_resolutions":  m.SuccessfulResolutions.Load(),
		"failed_resolutions":      m.FailedResolutions.Load(),
		"resolution_success_rate": successRate,
		"proxied_downloads":       m.ProxiedDownloads.Load(),
		"proxied_bytes":           m.ProxiedBytes.Load(),
		"unknown_code_hits":       m.UnknownCodeHits.Load(),
		"fetch_failures":          m.FetchFailures.Load(),
		"platforms":               m.getPlatformSnapshot(),
	}
}

// getPlatformSnapshot returns platform-specific metrics
func (m *Metrics) getPlatformSnapshot() map[string]interface{} {
	platforms := make(map[string]interface{})

	m.platformStats.Range(func(key, value interface{}) bool {
		platform := key.(string)
		stats := value.(*PlatformStats)

		platforms[platform] = map[string]interface{}{
			"total":      stats.Total.Load(),
			"successful": stats.Successful.Load(),
			"failed":     stats.Failed.Load(),
		}
		return true
	})

	return platforms
}
