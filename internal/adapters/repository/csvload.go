package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/okian/scoutbrief/internal/domain/model"
	"github.com/okian/scoutbrief/pkg/logger"
	"github.com/okian/scoutbrief/pkg/metrics"
)

type loader struct {
	logger logger.Logger
}

// header maps normalised column names to their index.
type header map[string]int

func (h header) find(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := h[n]; ok {
			return i, true
		}
	}
	return 0, false
}

// Load reads the scouting log at path and returns the normalised table.
func Load(ctx context.Context, path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	return Read(ctx, f, opts...)
}

// Read parses a scouting log from r. Missing metric columns read as zero;
// a missing match_number column is a schema error.
func Read(ctx context.Context, r io.Reader, opts ...Option) (*Table, error) {
	ld := &loader{logger: logger.Get()}
	for _, opt := range opts {
		opt(ld)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrDataUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrDataUnavailable, err)
	}

	h := make(header, len(first))
	for i, name := range first {
		key := normalizeHeader(name)
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}
	if _, ok := h[colMatchNumber]; !ok {
		return nil, fmt.Errorf("%w: %q column missing", ErrSchema, colMatchNumber)
	}

	var (
		rows    []model.MatchObservation
		skipped int
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrDataUnavailable, line, err)
		}
		obs, ok := h.observation(rec)
		if !ok {
			skipped++
			ld.logger.Debug(ctx, "skipping row without usable match number", logger.Int("line", line))
			continue
		}
		rows = append(rows, obs)
	}

	t := NewTable(rows)
	t.skipped = skipped
	metrics.UpdateStoreStats(t.Len(), skipped, t.MaxMatch())
	ld.logger.Info(ctx, "scouting log loaded",
		logger.Int("rows", t.Len()),
		logger.Int("skipped", skipped),
		logger.Int("lastMatch", t.MaxMatch()),
		logger.String("eventKey", t.EventKey()),
	)
	return t, nil
}

// observation converts one CSV record; ok is false when the row cannot be sequenced.
func (h header) observation(rec []string) (model.MatchObservation, bool) {
	cell := func(names ...string) string {
		i, ok := h.find(names...)
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	n, ok := parseMatchNumber(cell(colMatchNumber))
	if !ok {
		return model.MatchObservation{}, false
	}

	obs := model.MatchObservation{
		MatchNumber:        n,
		TeamID:             model.NormalizeTeamID(cell(teamColumns...)),
		EventKey:           normalizeText(cell(colEventKey)),
		DriverStation:      cell(colDriverStation),
		AutoAlgaeProcessor: ParseMetric(cell(colAutoAlgae)),
		TeleAlgaeProcessor: ParseMetric(cell(colTeleAlgae)),
		DefenderRating:     ParseMetric(cell(colDefender)),
		ClimbSuccess:       ParseClimb(cell(climbColumns...)),
		AutoMoved:          ParseAutoMoved(cell(colAutoMoved)),
	}
	for i := range autoCoralColumns {
		obs.AutoCoral[i] = ParseMetric(cell(autoCoralColumns[i]))
		obs.TeleCoral[i] = ParseMetric(cell(teleCoralColumns[i]))
	}
	return obs, true
}
