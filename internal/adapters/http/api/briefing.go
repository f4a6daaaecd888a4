package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/scoutbrief/internal/domain/model"
)

// BriefingDependencies defines the interface for briefing operations.
type BriefingDependencies interface {
	BuildBriefing(ctx context.Context, match int, alliance string) (model.Briefing, error)
}

// BriefingHandler handles briefing requests.
type BriefingHandler struct {
	deps BriefingDependencies
}

// NewBriefingHandler creates a new briefing handler.
func NewBriefingHandler(deps BriefingDependencies) *BriefingHandler {
	return &BriefingHandler{deps: deps}
}

// HandleGetBriefing handles GET /briefing?match=N&alliance=red[&prompt=true].
func (h *BriefingHandler) HandleGetBriefing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	match, err := matchParam(q.Get("match"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	b, err := h.deps.BuildBriefing(r.Context(), match, q.Get("alliance"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := briefingResponse{Briefing: b}
	if withPrompt, _ := strconv.ParseBool(q.Get("prompt")); withPrompt {
		resp.Prompt = b.Prompt
	}
	writeJSON(w, http.StatusOK, resp)
}

func matchParam(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: match", ErrMissingArg)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: match must be a positive integer", ErrBadRequest)
	}
	return n, nil
}
