package chesscom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/logger"
	"github.com/vytor/chessassist/internal/models"
)

const (
	// DefaultBaseURL is the public chess.com API root.
	DefaultBaseURL = "https://api.chess.com/pub"
	// UserAgent identifies the tool, as chess.com asks API clients to do.
	UserAgent = "chessassist/0.1.0 (+https://github.com/vytor/chessassist)"

	recentMonthCount = 3
	monthStep        = 30 // days; approximates a calendar month
)

// Client talks to the chess.com public API. Requests are serialized and
// spaced by a Throttle.
type Client struct {
	httpClient *http.Client
	baseURL    string
	throttle   *Throttle
	now        func() time.Time

	mu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the client at another API root.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithRateLimit sets the minimum gap between requests.
func WithRateLimit(d time.Duration) Option {
	return func(c *Client) {
		c.throttle = NewThrottle(d)
	}
}

// WithThrottle installs a preconfigured throttle.
func WithThrottle(t *Throttle) Option {
	return func(c *Client) {
		c.throttle = t
	}
}

// WithClock sets the time source used to pick recent months.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    DefaultBaseURL,
		throttle:   NewThrottle(time.Second),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON performs one throttled GET and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("path", path)

	if err := c.throttle.Wait(ctx); err != nil {
		return err
	}
	defer c.throttle.Done()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.NewInternalError(err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return errors.NewNetworkError("request to chess.com failed", err)
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Warn("request failed: status=%d, body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
		appErr := errors.NewNetworkError(
			fmt.Sprintf("chess.com returned status %d for %s", resp.StatusCode, path),
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		)
		if resp.StatusCode == http.StatusNotFound {
			appErr.Status = http.StatusNotFound
		}
		return appErr
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		log.Error("failed to decode response: %v", err)
		return errors.NewParseError("chess.com response", err)
	}
	return nil
}

func playerPath(username string, parts ...string) string {
	p := "/player/" + url.PathEscape(strings.ToLower(strings.TrimSpace(username)))
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// GetPlayerProfile fetches /player/{username}.
func (c *Client) GetPlayerProfile(ctx context.Context, username string) (models.PlayerProfile, error) {
	var raw apiProfile
	if err := c.getJSON(ctx, playerPath(username), &raw); err != nil {
		return models.PlayerProfile{}, err
	}
	return raw.toModel(), nil
}

// GetPlayerStats fetches /player/{username}/stats.
func (c *Client) GetPlayerStats(ctx context.Context, username string) (models.PlayerStats, error) {
	var raw apiStats
	if err := c.getJSON(ctx, playerPath(username, "stats"), &raw); err != nil {
		return models.PlayerStats{}, err
	}
	return raw.toModel(), nil
}

// FetchMonthly returns the raw archive entries of one month, oldest first as
// chess.com lists them.
func (c *Client) FetchMonthly(ctx context.Context, username string, year int, month time.Month) ([]json.RawMessage, error) {
	path := playerPath(username, "games", fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", int(month)))

	var payload struct {
		Games []json.RawMessage `json:"games"`
	}
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithPrefix("chesscom").Debug("fetched %d games for %s %04d/%02d", len(payload.Games), username, year, int(month))
	return payload.Games, nil
}

// FetchRecentGames collects up to limit games from the current month and the
// two before it, newest first. Months are found by stepping back 30 days at a
// time. Entries that cannot be parsed are logged and skipped. A limit of zero
// or less returns no games without contacting the API.
func (c *Client) FetchRecentGames(ctx context.Context, username string, limit int) ([]models.Game, error) {
	games := []models.Game{}
	if limit <= 0 {
		return games, nil
	}

	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("username", username)

collect:
	for _, day := range c.recentMonths() {
		entries, err := c.FetchMonthly(ctx, username, day.Year(), day.Month())
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			g, err := ParseGame(entry)
			if err != nil {
				log.Warn("skipping archive entry: %v", err)
				continue
			}
			games = append(games, g)
			if len(games) >= limit {
				break collect
			}
		}
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].EndTime.After(games[j].EndTime)
	})
	if len(games) > limit {
		games = games[:limit]
	}

	log.Info("fetched %d recent games", len(games))
	return games, nil
}

// FindRecentGame returns the newest game that satisfies match, searching the
// same months as FetchRecentGames. Every entry of a month is considered, so
// the order chess.com lists them in does not matter. Older months are only
// fetched while nothing has matched. A nil match accepts any game.
func (c *Client) FindRecentGame(ctx context.Context, username string, match func(models.Game) bool) (models.Game, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("chesscom").WithField("username", username)

	for _, day := range c.recentMonths() {
		entries, err := c.FetchMonthly(ctx, username, day.Year(), day.Month())
		if err != nil {
			return models.Game{}, false, err
		}

		var best models.Game
		found := false
		for _, entry := range entries {
			g, err := ParseGame(entry)
			if err != nil {
				log.Warn("skipping archive entry: %v", err)
				continue
			}
			if match != nil && !match(g) {
				continue
			}
			if !found || g.EndTime.After(best.EndTime) {
				best, found = g, true
			}
		}
		if found {
			return best, true, nil
		}
	}
	return models.Game{}, false, nil
}

// recentMonths lists one day inside each searched month, newest first.
func (c *Client) recentMonths() []time.Time {
	now := c.now()
	days := make([]time.Time, 0, recentMonthCount)
	for k := 0; k < recentMonthCount; k++ {
		days = append(days, now.AddDate(0, 0, -monthStep*k))
	}
	return days
}
