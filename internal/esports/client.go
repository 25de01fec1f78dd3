package esports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/furiafan/furiabot/internal/pkg/config"
	"github.com/furiafan/furiabot/internal/pkg/models"
)

// StatusError reports a non-2xx upstream response. Pipelines treat it as an
// empty result for that source, never as a fatal condition.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("esports: %s returned status %d", e.Path, e.Code)
}

// Client issues read-only calls against the scores/tournaments provider.
// Pure request/response; merge and fallback rules live in the pipelines.
type Client struct {
	client   *http.Client
	baseURL  string
	token    string
	pageSize int
	loc      *time.Location
}

func NewClient(cfg *config.EsportsConfig) (*Client, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  cfg.BaseURL,
		token:    cfg.Token,
		pageSize: cfg.PageSize,
		loc:      loc,
	}, nil
}

// Location returns the display timezone all normalized instants use.
func (c *Client) Location() *time.Location {
	return c.loc
}

// UpcomingMatches returns a window of not-yet-started matches ordered by
// start time ascending. No server-side team filter is available here.
func (c *Client) UpcomingMatches(ctx context.Context) ([]models.Match, error) {
	return c.matches(ctx, "/matches/upcoming", url.Values{"sort": {"begin_at"}})
}

// PastMatches returns finished matches ordered by end time descending, so
// the first entry for a team is its most recent result.
func (c *Client) PastMatches(ctx context.Context) ([]models.Match, error) {
	return c.matches(ctx, "/matches/past", url.Values{"sort": {"-end_at"}})
}

// RunningMatches returns matches currently in progress.
func (c *Client) RunningMatches(ctx context.Context) ([]models.Match, error) {
	return c.matches(ctx, "/matches/running", url.Values{})
}

// MatchesByDate returns matches whose start time falls on day (taken in the
// display timezone), ordered by start time ascending.
func (c *Client) MatchesByDate(ctx context.Context, day time.Time) ([]models.Match, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, c.loc).UTC()
	end := start.Add(24 * time.Hour)

	q := url.Values{
		"sort":            {"begin_at"},
		"range[begin_at]": {start.Format(time.RFC3339) + "," + end.Format(time.RFC3339)},
	}
	return c.matches(ctx, "/matches", q)
}

func (c *Client) matches(ctx context.Context, path string, q url.Values) ([]models.Match, error) {
	var payload []matchPayload
	if err := c.get(ctx, path, q, &payload); err != nil {
		return nil, err
	}

	out := make([]models.Match, 0, len(payload))
	for _, p := range payload {
		out = append(out, normalizeMatch(p, c.loc))
	}
	return out, nil
}

// RunningTournaments lists tournaments in progress. When teamID is non-zero
// a team filter parameter is added; the provider may reject it with a 400,
// which callers handle through the unfiltered fallback.
func (c *Client) RunningTournaments(ctx context.Context, teamID int64) ([]models.Tournament, error) {
	return c.tournaments(ctx, "/tournaments/running", teamID, models.TournamentRunning)
}

// UpcomingTournaments lists tournaments that have not started yet.
func (c *Client) UpcomingTournaments(ctx context.Context, teamID int64) ([]models.Tournament, error) {
	return c.tournaments(ctx, "/tournaments/upcoming", teamID, models.TournamentUpcoming)
}

func (c *Client) tournaments(ctx context.Context, path string, teamID int64, tag models.TournamentTag) ([]models.Tournament, error) {
	q := url.Values{"sort": {"begin_at"}}
	if teamID != 0 {
		// Guessed parameter name, not a documented provider contract.
		q.Set("filter[team_id]", fmt.Sprintf("%d", teamID))
	}

	var payload []tournamentPayload
	if err := c.get(ctx, path, q, &payload); err != nil {
		return nil, err
	}

	out := make([]models.Tournament, 0, len(payload))
	for _, p := range payload {
		out = append(out, normalizeTournament(p, tag, c.loc))
	}
	return out, nil
}

// Team fetches the full team detail payload, roster included.
func (c *Client) Team(ctx context.Context, id int64) ([]models.RosterMember, error) {
	var payload teamPayload
	if err := c.get(ctx, fmt.Sprintf("/teams/%d", id), url.Values{}, &payload); err != nil {
		return nil, err
	}
	return normalizeRoster(payload), nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if q.Get("page[size]") == "" {
		q.Set("page[size]", fmt.Sprintf("%d", c.pageSize))
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, Path: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
