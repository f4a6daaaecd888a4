// Package tba looks up official match schedules from The Blue Alliance.
package tba

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/scoutbrief/internal/domain/model"
	"github.com/okian/scoutbrief/pkg/logger"
	"github.com/okian/scoutbrief/pkg/metrics"
)

const (
	// Name is the roster Source recorded for schedule lookups.
	Name = "tba"

	// DefaultBaseURL is the v3 API root.
	DefaultBaseURL = "https://www.thebluealliance.com/api/v3"

	authHeader   = "X-TBA-Auth-Key"
	maxErrorBody = 512
)

// Client resolves qualification rosters from the TBA v3 API.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
	logger  logger.Logger
}

type matchResponse struct {
	Alliances struct {
		Red  alliance `json:"red"`
		Blue alliance `json:"blue"`
	} `json:"alliances"`
}

type alliance struct {
	TeamKeys []string `json:"team_keys"`
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("tba")
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// Name implements roster.Strategy.
func (c *Client) Name() string { return Name }

// Resolve fetches {base}/match/{event}_qm{match} and returns its team lists
// with the "frc" prefix removed.
func (c *Client) Resolve(ctx context.Context, eventKey string, match int) (model.MatchRoster, error) {
	if c.apiKey == "" {
		return model.MatchRoster{}, ErrNotConfigured
	}
	if eventKey == "" {
		return model.MatchRoster{}, fmt.Errorf("%w: empty event key", ErrNotScheduled)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	r, err := c.fetch(ctx, MatchKey(eventKey, match))
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.RecordRemoteCall(Name, outcome, float64(time.Since(start).Milliseconds()))
	if err != nil {
		return model.MatchRoster{}, err
	}
	r.MatchNumber = match
	return r, nil
}

// MatchKey builds the qualification match key, e.g. "2025txwac_qm12".
func MatchKey(eventKey string, match int) string {
	return fmt.Sprintf("%s_qm%d", strings.ToLower(eventKey), match)
}

func (c *Client) fetch(ctx context.Context, key string) (model.MatchRoster, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/match/"+key, nil)
	if err != nil {
		return model.MatchRoster{}, fmt.Errorf("%w: build request: %w", ErrRemote, err)
	}
	req.Header.Set(authHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return model.MatchRoster{}, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.MatchRoster{}, fmt.Errorf("%w: %s", ErrNotScheduled, key)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return model.MatchRoster{}, fmt.Errorf("%w: %s: status %d: %s", ErrRemote, key, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var m matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return model.MatchRoster{}, fmt.Errorf("%w: decode %s: %w", ErrRemote, key, err)
	}

	// TBA answers 200 with a null body for some unpublished matches.
	r := model.MatchRoster{
		Red:    teamIDs(m.Alliances.Red.TeamKeys),
		Blue:   teamIDs(m.Alliances.Blue.TeamKeys),
		Source: Name,
	}
	if r.Empty() {
		return model.MatchRoster{}, fmt.Errorf("%w: %s has no teams", ErrNotScheduled, key)
	}
	c.logger.Debug(ctx, "match roster fetched", logger.String("match", key))
	return r, nil
}

func teamIDs(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if id := model.NormalizeTeamID(k); id != "" {
			out = append(out, id)
		}
	}
	return out
}
