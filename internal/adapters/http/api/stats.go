package api

import (
	"net/http"
	"time"
)

// StatsProvider reports the briefing service's runtime state: whether the
// scouting log is loaded, how many rows it holds and which roster strategies
// are configured.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves GET /stats.
type StatsHandler struct {
	provider StatsProvider
	now      func() time.Time
}

// NewStatsHandler creates a stats handler over provider.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider, now: time.Now}
}

// HandleStats writes a snapshot of the provider's stats stamped with the time
// it was taken. The provider's map is copied, never modified.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	src := h.provider.GetStats()
	snap := make(map[string]interface{}, len(src)+1)
	for k, v := range src {
		snap[k] = v
	}
	snap["takenAt"] = h.now().UTC().Format(time.RFC3339)

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, snap)
}
