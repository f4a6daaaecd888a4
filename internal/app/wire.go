package service

import (
	"context"
	"fmt"

	"github.com/okian/scoutbrief/internal/adapters/narrative"
	repository "github.com/okian/scoutbrief/internal/adapters/repository"
	"github.com/okian/scoutbrief/internal/adapters/tba"
	"github.com/okian/scoutbrief/internal/config"
	"github.com/okian/scoutbrief/internal/domain/prompt"
	"github.com/okian/scoutbrief/internal/domain/roster"
	"github.com/okian/scoutbrief/pkg/logger"
)

// NewFromConfig loads the scouting log and wires the roster chain (TBA, then
// the local log) and the configured narrative provider. The returned service
// still needs Start.
func NewFromConfig(ctx context.Context, cfg *config.Config, l logger.Logger) (*Service, error) {
	if l == nil {
		l = logger.Get()
	}

	rules, err := prompt.LoadRules(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	narrator, err := narrative.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	table, err := repository.Load(ctx, cfg.CSVPath, repository.WithLogger(l))
	if err != nil {
		return nil, fmt.Errorf("load scouting log: %w", err)
	}

	if cfg.TBAKey == "" {
		l.Info(ctx, "no tba_key configured; rosters will come from the scouting log")
	}
	chain := roster.NewChain(
		roster.WithLogger(l.Named("roster")),
		roster.WithStrategies(
			tba.New(
				tba.WithBaseURL(cfg.TBABaseURL),
				tba.WithAPIKey(cfg.TBAKey),
				tba.WithTimeout(cfg.RequestTimeout()),
			),
			LocalStrategy(table),
		),
	)

	return New(
		WithLogger(l),
		WithCSVPath(cfg.CSVPath),
		WithStore(table),
		WithRosterResolver(chain),
		WithNarrator(narrator),
		WithRules(rules),
	), nil
}
