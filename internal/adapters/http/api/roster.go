package api

import (
	"context"
	"net/http"

	"github.com/okian/scoutbrief/internal/domain/model"
)

// RosterDependencies defines the interface for roster lookups.
type RosterDependencies interface {
	Roster(ctx context.Context, match int) (model.MatchRoster, error)
}

// RosterHandler handles roster requests.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleGetRoster handles GET /roster?match=N requests.
func (h *RosterHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	match, err := matchParam(r.URL.Query().Get("match"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	ros, err := h.deps.Roster(r.Context(), match)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ros)
}
