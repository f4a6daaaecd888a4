// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/scoutbrief/internal/app"
	"github.com/okian/scoutbrief/internal/domain/model"
	"github.com/okian/scoutbrief/internal/domain/roster"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	BriefingDependencies
	ProfileDependencies
	RosterDependencies
}

// Server wires HTTP routes for the briefing API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	briefingHandler *BriefingHandler
	profileHandler  *ProfileHandler
	rosterHandler   *RosterHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		briefingHandler: NewBriefingHandler(deps),
		profileHandler:  NewProfileHandler(deps),
		rosterHandler:   NewRosterHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", RequestID(MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")))
	mux.Handle("/metrics", MetricsHandler())
	mux.HandleFunc("/stats", RequestID(MetricsMiddleware(s.statsHandler.HandleStats, "stats")))
	mux.HandleFunc("/briefing", RequestID(MetricsMiddleware(s.briefingHandler.HandleGetBriefing, "briefing")))
	mux.HandleFunc("/roster", RequestID(MetricsMiddleware(s.rosterHandler.HandleGetRoster, "roster")))
	mux.HandleFunc("/profile/", RequestID(MetricsMiddleware(s.profileHandler.HandleGetProfile, "profile")))
}

// briefingResponse is the JSON shape of GET /briefing. The prompt is only
// included on request because it embeds the full rules block.
type briefingResponse struct {
	model.Briefing
	Prompt string `json:"prompt,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service failures onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidMatch):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, roster.ErrRosterUnavailable):
		writeError(w, http.StatusNotFound, "roster_unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
