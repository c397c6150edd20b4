package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/rsrinivasan18/sarasai/internal/clientdata"
	"github.com/rsrinivasan18/sarasai/internal/modules/stocks"
)

// BudgetReporter reports remaining external API requests.
type BudgetReporter interface {
	GetRemainingRequests() int
}

// SystemHandlers handles health and system monitoring endpoints
type SystemHandlers struct {
	log        zerolog.Logger
	catalog    *stocks.Catalog
	cacheRepo  *clientdata.Repository
	apiBudget  BudgetReporter // Optional - nil when live lookups are disabled
	dataSource string
	startedAt  time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, catalog *stocks.Catalog,
	cacheRepo *clientdata.Repository, apiBudget BudgetReporter, dataSource string) *SystemHandlers {
	return &SystemHandlers{
		log:        log.With().Str("component", "system_handlers").Logger(),
		catalog:    catalog,
		cacheRepo:  cacheRepo,
		apiBudget:  apiBudget,
		dataSource: dataSource,
		startedAt:  time.Now(),
	}
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status          string   `json:"status"`
	DataSource      string   `json:"data_source"`
	StocksAvailable []string `json:"stocks_available"`
}

// SystemInfoResponse is the system info payload
type SystemInfoResponse struct {
	UptimeSeconds    float64          `json:"uptime_seconds"`
	CPUPercent       float64          `json:"cpu_percent"`
	MemoryPercent    float64          `json:"memory_percent"`
	CacheRows        map[string]int64 `json:"cache_rows,omitempty"`
	APIRequestsLeft  *int             `json:"api_requests_left,omitempty"`
	AvailableSymbols int              `json:"available_symbols"`
}

// HandleHealth returns service status and the symbols the catalog can serve
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, HealthResponse{
		Status:          "healthy",
		DataSource:      h.dataSource,
		StocksAvailable: h.catalog.Symbols(),
	})
}

// HandleSystemInfo returns process and cache statistics
func (h *SystemHandlers) HandleSystemInfo(w http.ResponseWriter, r *http.Request) {
	cpuAvg, memPercent := h.getSystemStats()

	response := SystemInfoResponse{
		UptimeSeconds:    time.Since(h.startedAt).Seconds(),
		CPUPercent:       cpuAvg,
		MemoryPercent:    memPercent,
		AvailableSymbols: h.catalog.Count(),
	}

	if h.cacheRepo != nil {
		counts, err := h.cacheRepo.CountRows()
		if err != nil {
			h.log.Warn().Err(err).Msg("Failed to count cache rows")
		} else {
			response.CacheRows = counts
		}
	}

	if h.apiBudget != nil {
		remaining := h.apiBudget.GetRemainingRequests()
		response.APIRequestsLeft = &remaining
	}

	h.writeJSON(w, response)
}

// getSystemStats samples CPU and RAM usage. The 100ms CPU window keeps the
// endpoint responsive at the cost of a noisier reading.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
