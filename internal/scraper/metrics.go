package scraper

import (
	"sync"
	"time"

	"github.com/biftracker/backend/internal/model"
)

// RetailerMetrics aggregates check outcomes for one retailer within a cycle.
type RetailerMetrics struct {
	Retailer     model.Retailer
	LinksChecked int
	PricesFound  int
	DropsFound   int
	Failures     int
	LastError    string
}

// MetricsCollector collects per-retailer metrics across check cycles.
type MetricsCollector struct {
	mu          sync.RWMutex
	currentRun  map[model.Retailer]*RetailerMetrics
	lastRun     map[model.Retailer]*RetailerMetrics
	totalCycles int
	lastRunTime time.Time
}

// NewMetricsCollector creates a new MetricsCollector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		currentRun: make(map[model.Retailer]*RetailerMetrics),
		lastRun:    make(map[model.Retailer]*RetailerMetrics),
	}
}

func (mc *MetricsCollector) metrics(retailer model.Retailer) *RetailerMetrics {
	m, ok := mc.currentRun[retailer]
	if !ok {
		m = &RetailerMetrics{Retailer: retailer}
		mc.currentRun[retailer] = m
	}
	return m
}

// RecordCheck records one link check attempt for a retailer.
func (mc *MetricsCollector) RecordCheck(retailer model.Retailer) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.metrics(retailer).LinksChecked++
}

// RecordPrice records a successful price extraction.
func (mc *MetricsCollector) RecordPrice(retailer model.Retailer) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.metrics(retailer).PricesFound++
}

// RecordDrop records a detected price drop.
func (mc *MetricsCollector) RecordDrop(retailer model.Retailer) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.metrics(retailer).DropsFound++
}

// RecordFailure records a failed check (fetch error, store error).
func (mc *MetricsCollector) RecordFailure(retailer model.Retailer, err error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	m := mc.metrics(retailer)
	m.Failures++
	if err != nil {
		m.LastError = err.Error()
	}
}

// FinishCycle moves the current cycle's metrics into lastRun.
func (mc *MetricsCollector) FinishCycle() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.totalCycles++
	mc.lastRunTime = time.Now()
	mc.lastRun = mc.currentRun
	mc.currentRun = make(map[model.Retailer]*RetailerMetrics)
}

// GetLastRunMetrics returns metrics from the last completed cycle.
func (mc *MetricsCollector) GetLastRunMetrics() map[model.Retailer]*RetailerMetrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	result := make(map[model.Retailer]*RetailerMetrics, len(mc.lastRun))
	for k, v := range mc.lastRun {
		metricsCopy := *v
		result[k] = &metricsCopy
	}
	return result
}

// HealthStatus represents the health of the price tracker.
type HealthStatus struct {
	Healthy          bool                      `json:"healthy"`
	LastRunTime      time.Time                 `json:"last_run_time"`
	NextRunTime      time.Time                 `json:"next_run_time"`
	TotalCycles      int                       `json:"total_cycles"`
	LinksChecked     int                       `json:"links_checked"`
	PricesFound      int                       `json:"prices_found"`
	DropsFound       int                       `json:"drops_found"`
	RetailerStatuses map[model.Retailer]string `json:"retailer_statuses"`
	Message          string                    `json:"message,omitempty"`
}

// GetHealthStatus summarizes the last cycle. The tracker is considered
// healthy when at least half of the checked links yielded a price; a missed
// extraction here and there is expected against live retailer markup.
func (mc *MetricsCollector) GetHealthStatus(nextRunTime time.Time) HealthStatus {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	status := HealthStatus{
		LastRunTime:      mc.lastRunTime,
		NextRunTime:      nextRunTime,
		TotalCycles:      mc.totalCycles,
		RetailerStatuses: make(map[model.Retailer]string),
	}

	for retailer, m := range mc.lastRun {
		status.LinksChecked += m.LinksChecked
		status.PricesFound += m.PricesFound
		status.DropsFound += m.DropsFound

		if m.LinksChecked > 0 && m.PricesFound == 0 {
			msg := "no prices extracted"
			if m.LastError != "" {
				msg += ": " + m.LastError
			}
			status.RetailerStatuses[retailer] = msg
		} else {
			status.RetailerStatuses[retailer] = "healthy"
		}
	}

	switch {
	case mc.totalCycles == 0:
		status.Healthy = true
		status.Message = "No check cycles recorded yet"
	case status.LinksChecked == 0:
		status.Healthy = true
		status.Message = "No retailer links to check"
	case float64(status.PricesFound) >= 0.5*float64(status.LinksChecked):
		status.Healthy = true
		status.Message = "Price tracker is operating normally"
	default:
		status.Message = "Most retailer pages failed price extraction"
	}

	return status
}
