// Package roster resolves which teams play on each alliance in a match.
//
// Resolution walks an ordered list of strategies. The first one that yields
// at least one team wins; failures are logged and the next strategy runs.
package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/scoutbrief/internal/domain/model"
	"github.com/okian/scoutbrief/pkg/logger"
	"github.com/okian/scoutbrief/pkg/metrics"
)

// Strategy is one source of roster information.
type Strategy interface {
	// Name identifies the strategy in logs, metrics and MatchRoster.Source.
	Name() string
	// Resolve returns the roster for (eventKey, match) or an error.
	Resolve(ctx context.Context, eventKey string, match int) (model.MatchRoster, error)
}

// Chain tries strategies in order.
type Chain struct {
	strategies []Strategy
	logger     logger.Logger
}

// Option applies a configuration option to the Chain.
type Option func(*Chain)

// WithLogger sets the logger used to report strategy failures.
func WithLogger(l logger.Logger) Option {
	return func(c *Chain) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStrategies appends strategies to the chain, in priority order.
func WithStrategies(s ...Strategy) Option {
	return func(c *Chain) {
		for _, st := range s {
			if st != nil {
				c.strategies = append(c.strategies, st)
			}
		}
	}
}

// NewChain builds a resolver chain.
func NewChain(opts ...Option) *Chain {
	c := &Chain{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get()
	}
	return c
}

// Strategies returns the strategy names in the order they are tried.
func (c *Chain) Strategies() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}

// Resolve returns the first non-empty roster produced by the chain. When no
// strategy produces one, an empty roster that a strategy returned without error
// is used instead. It only fails, with ErrRosterUnavailable, when every
// strategy has failed.
func (c *Chain) Resolve(ctx context.Context, eventKey string, match int) (model.MatchRoster, error) {
	var (
		last  error
		empty *model.MatchRoster
	)
	for i, s := range c.strategies {
		start := time.Now()
		r, err := s.Resolve(ctx, eventKey, match)
		if err == nil && r.Empty() {
			if empty == nil {
				r.MatchNumber = match
				if r.Source == "" {
					r.Source = s.Name()
				}
				empty = &r
			}
			err = fmt.Errorf("%s returned an empty roster", s.Name())
		}
		if err != nil {
			last = err
			metrics.RecordRosterStrategyFailure(s.Name())
			c.logger.Info(ctx, "roster strategy failed; trying next",
				logger.String("strategy", s.Name()),
				logger.Int("match", match),
				logger.Int("remaining", len(c.strategies)-i-1),
				logger.Error(err),
			)
			continue
		}

		r.MatchNumber = match
		if r.Source == "" {
			r.Source = s.Name()
		}
		metrics.RecordRosterResolution(r.Source)
		c.logger.Debug(ctx, "roster resolved",
			logger.String("strategy", s.Name()),
			logger.Int("match", match),
			logger.Float64("ms", float64(time.Since(start).Microseconds())/1000),
		)
		return r, nil
	}

	if empty != nil {
		metrics.RecordRosterResolution(empty.Source)
		c.logger.Info(ctx, "using empty roster; no strategy named any team",
			logger.String("source", empty.Source),
			logger.Int("match", match),
		)
		return *empty, nil
	}
	if last == nil {
		return model.MatchRoster{}, fmt.Errorf("%w: match %d: no strategies configured", ErrRosterUnavailable, match)
	}
	return model.MatchRoster{}, fmt.Errorf("%w: match %d: %w", ErrRosterUnavailable, match, last)
}
