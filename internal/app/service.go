// Package service assembles pre-match briefings from the scouting log, the
// roster resolver chain and the narrative generator.
package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scoutbrief/internal/adapters/narrative"
	repository "github.com/okian/scoutbrief/internal/adapters/repository"
	"github.com/okian/scoutbrief/internal/domain/model"
	"github.com/okian/scoutbrief/internal/domain/profile"
	"github.com/okian/scoutbrief/internal/domain/prompt"
	"github.com/okian/scoutbrief/internal/domain/roster"
	"github.com/okian/scoutbrief/pkg/logger"
	"github.com/okian/scoutbrief/pkg/metrics"
)

// Briefing outcomes recorded in metrics.
const (
	outcomeOK                = "ok"
	outcomeNarrativeError    = "narrative_error"
	outcomeRosterUnavailable = "roster_unavailable"
	outcomeInvalid           = "invalid"
)

// RosterResolver identifies the teams in a match.
type RosterResolver interface {
	Resolve(ctx context.Context, eventKey string, match int) (model.MatchRoster, error)
}

// Service builds briefings. It is safe for concurrent use once started.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	resolver RosterResolver
	narrator narrative.Generator

	// Configuration
	csvPath string
	rules   string
	newID   func() string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCSVPath sets the scouting log Start loads when no store was supplied.
func WithCSVPath(path string) Option {
	return func(s *Service) { s.csvPath = path }
}

// WithStore supplies an already-loaded scouting table.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithRosterResolver replaces the default local-only resolver.
func WithRosterResolver(r RosterResolver) Option {
	return func(s *Service) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithNarrator sets the recommendation generator.
func WithNarrator(g narrative.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.narrator = g
		}
	}
}

// WithRules replaces the embedded game rules in every prompt.
func WithRules(rules string) Option {
	return func(s *Service) { s.rules = rules }
}

// WithIDGenerator overrides how briefing ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		csvPath:  "scouting.csv",
		narrator: narrative.Disabled{},
		newID:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the scouting log, unless a store was supplied, and wires the
// default roster resolver.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		t, err := repository.Load(ctx, s.csvPath, repository.WithLogger(s.logger))
		if err != nil {
			return fmt.Errorf("load scouting log: %w", err)
		}
		s.store = t
	}

	if s.resolver == nil {
		s.resolver = roster.NewChain(
			roster.WithLogger(s.logger),
			roster.WithStrategies(LocalStrategy(s.store)),
		)
	}

	s.started = true
	s.logger.Info(ctx, "briefing service started",
		logger.Int("records", s.store.Len()),
		logger.String("eventKey", s.store.EventKey()),
	)

	return nil
}

// Stop marks the service stopped. The loaded table is kept.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "briefing service stopped")
}

// LocalStrategy adapts a store to the roster fallback that reads driver stations.
func LocalStrategy(st repository.Store) *roster.Local {
	return roster.NewLocal(func(n int) roster.MatchRows { return st.RowsAt(n) })
}

func (s *Service) deps() (repository.Store, RosterResolver, narrative.Generator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, nil, ErrNotStarted
	}
	return s.store, s.resolver, s.narrator, nil
}

// BuildBriefing assembles the briefing for match from the perspective of
// allianceInput ("red"/"r" for red, anything else for blue).
//
// Every profile is computed against one historic view holding only matches
// before match. A narrative failure does not fail the briefing; its message
// becomes the recommendation and NarrativeError is set.
func (s *Service) BuildBriefing(ctx context.Context, match int, allianceInput string) (model.Briefing, error) {
	if match < 1 {
		metrics.RecordBriefing(outcomeInvalid)
		return model.Briefing{}, fmt.Errorf("%w: %d", ErrInvalidMatch, match)
	}
	store, resolver, narrator, err := s.deps()
	if err != nil {
		return model.Briefing{}, err
	}

	start := time.Now()
	alliance := model.ParseAlliance(allianceInput)
	eventKey := store.EventKey()

	r, err := resolver.Resolve(ctx, eventKey, match)
	if err != nil {
		metrics.RecordBriefing(outcomeRosterUnavailable)
		return model.Briefing{}, err
	}
	fallback := r.Source == roster.LocalName
	if fallback {
		s.logger.Info(ctx, "remote roster lookup failed; teams inferred from scouting log",
			logger.Int("match", match),
		)
	}

	historic := store.RowsBefore(match)
	red := profile.ComputeAll(r.Red, historic)
	blue := profile.ComputeAll(r.Blue, historic)
	metrics.RecordProfilesComputed(len(red) + len(blue))

	b := model.Briefing{
		ID:             s.newID(),
		MatchNumber:    match,
		EventKey:       eventKey,
		Alliance:       alliance,
		Opponent:       alliance.Opponent(),
		Roster:         r,
		FallbackUsed:   fallback,
		HistoricCutoff: match,
		RedProfiles:    red,
		BlueProfiles:   blue,
	}
	b.Prompt = prompt.Build(prompt.Input{
		Match:    match,
		Alliance: alliance,
		Roster:   r,
		Red:      red,
		Blue:     blue,
		Rules:    s.rules,
	})

	outcome := outcomeOK
	rec, err := narrator.Generate(ctx, b.Prompt)
	if err != nil {
		outcome = outcomeNarrativeError
		rec = "Error: " + err.Error()
		b.NarrativeError = true
		metrics.RecordNarrativeFailure()
		s.logger.Warn(ctx, "recommendation unavailable",
			logger.Int("match", match),
			logger.Error(err),
		)
	}
	b.Recommendation = rec
	b.Actual = profile.Outcome(store.RowsAt(match))

	metrics.RecordBriefing(outcome)
	s.logger.Info(ctx, "briefing built",
		logger.String("id", b.ID),
		logger.Int("match", match),
		logger.String("alliance", string(alliance)),
		logger.String("rosterSource", r.Source),
		logger.Bool("played", b.Actual != nil),
		logger.Float64("ms", float64(time.Since(start).Microseconds())/1000),
	)
	return b, nil
}

// Profile returns team's profile over matches before the given one. A
// non-positive before covers the whole log.
func (s *Service) Profile(ctx context.Context, team string, before int) (model.TeamProfile, error) {
	store, _, _, err := s.deps()
	if err != nil {
		return model.TeamProfile{}, err
	}
	if before <= 0 {
		before = math.MaxInt32
	}
	p := profile.Compute(team, store.RowsBefore(before))
	metrics.RecordProfilesComputed(1)
	s.logger.Debug(ctx, "profile computed", logger.String("team", p.TeamID), logger.Int("before", before))
	return p, nil
}

// Roster resolves the teams playing match.
func (s *Service) Roster(ctx context.Context, match int) (model.MatchRoster, error) {
	if match < 1 {
		return model.MatchRoster{}, fmt.Errorf("%w: %d", ErrInvalidMatch, match)
	}
	store, resolver, _, err := s.deps()
	if err != nil {
		return model.MatchRoster{}, err
	}
	return resolver.Resolve(ctx, store.EventKey(), match)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":  s.started,
		"csvPath":  s.csvPath,
		"narrator": fmt.Sprintf("%T", s.narrator),
	}

	if s.started {
		stats["records"] = s.store.Len()
		stats["eventKey"] = s.store.EventKey()
		if c, ok := s.resolver.(*roster.Chain); ok {
			stats["rosterStrategies"] = c.Strategies()
		}
	}

	return stats
}
