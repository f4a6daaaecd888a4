package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/scoutbrief/internal/domain/model"
)

// ProfileDependencies defines the interface for profile operations.
type ProfileDependencies interface {
	Profile(ctx context.Context, team string, before int) (model.TeamProfile, error)
}

// ProfileHandler handles team profile requests.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleGetProfile handles GET /profile/{team}?before=N requests. Without
// before, the whole log is used.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	team := strings.TrimPrefix(r.URL.Path, "/profile/")
	if team == "" || strings.Contains(team, "/") || model.NormalizeTeamID(team) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: team", ErrBadRequest))
		return
	}
	before := 0
	if raw := r.URL.Query().Get("before"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: before must be a positive integer", ErrBadRequest))
			return
		}
		before = n
	}
	p, err := h.deps.Profile(r.Context(), team, before)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
