package handler

import (
	"net/http"
	"time"
)

type PriceHandler struct {
	tracker PriceTrackerInterface
	nextRun func() time.Time
}

// NewPriceHandler creates a price handler. nextRun reports the scheduler's
// next run time and may be nil when the scheduler is disabled.
func NewPriceHandler(tracker PriceTrackerInterface, nextRun func() time.Time) *PriceHandler {
	return &PriceHandler{tracker: tracker, nextRun: nextRun}
}

// Check triggers an immediate full price check and returns the summary.
func (h *PriceHandler) Check(w http.ResponseWriter, r *http.Request) {
	summary, err := h.tracker.CheckAllTrackedItems(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to check prices: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Health reports tracker health as of the last check cycle.
func (h *PriceHandler) Health(w http.ResponseWriter, r *http.Request) {
	nextRunTime := time.Time{}
	if h.nextRun != nil {
		nextRunTime = h.nextRun()
	}
	respondJSON(w, http.StatusOK, h.tracker.GetHealthStatus(nextRunTime))
}
