package sleeper

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/leaguevault/sleeper-sync/internal/platform/logging"
	"github.com/leaguevault/sleeper-sync/internal/platform/resilience"
	"github.com/leaguevault/sleeper-sync/internal/usecase"
)

const defaultBaseURL = "https://api.sleeper.app/v1"

var errSleeperTransient = crerr.New("sleeper transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the Sleeper read API. Concurrent identical requests are
// collapsed through a singleflight group, and repeated transient failures
// trip a circuit breaker shared by all operations.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 3 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchState(ctx context.Context) (usecase.RemoteState, error) {
	var wire stateWire
	if err := c.doJSON(ctx, "/state/nfl", &wire); err != nil {
		return usecase.RemoteState{}, fmt.Errorf("fetch nfl state: %w", err)
	}
	return mapState(wire), nil
}

func (c *Client) FetchUserLeagues(ctx context.Context, userID, season string) ([]usecase.RemoteLeague, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(season) == "" {
		return nil, fmt.Errorf("%w: user id and season are required", usecase.ErrInvalidInput)
	}

	var wires []leagueWire
	path := fmt.Sprintf("/user/%s/leagues/nfl/%s", userID, season)
	if err := c.doJSON(ctx, path, &wires); err != nil {
		return nil, fmt.Errorf("fetch leagues user_id=%s season=%s: %w", userID, season, err)
	}

	out := make([]usecase.RemoteLeague, 0, len(wires))
	for _, wire := range wires {
		if strings.TrimSpace(wire.LeagueID) == "" {
			continue
		}
		out = append(out, mapLeague(wire))
	}
	return out, nil
}

func (c *Client) FetchLeague(ctx context.Context, leagueID string) (usecase.RemoteLeague, error) {
	if strings.TrimSpace(leagueID) == "" {
		return usecase.RemoteLeague{}, fmt.Errorf("%w: league id is required", usecase.ErrInvalidInput)
	}

	var wire leagueWire
	if err := c.doJSON(ctx, "/league/"+leagueID, &wire); err != nil {
		return usecase.RemoteLeague{}, fmt.Errorf("fetch league league_id=%s: %w", leagueID, err)
	}
	if strings.TrimSpace(wire.LeagueID) == "" {
		// Sleeper answers "null" for some dead leagues instead of a 404.
		return usecase.RemoteLeague{}, fmt.Errorf("fetch league league_id=%s: %w", leagueID, usecase.ErrNotFound)
	}
	return mapLeague(wire), nil
}

func (c *Client) FetchLeagueRosters(ctx context.Context, leagueID string) ([]usecase.RemoteRoster, error) {
	var wires []rosterWire
	if err := c.doJSON(ctx, "/league/"+leagueID+"/rosters", &wires); err != nil {
		return nil, fmt.Errorf("fetch rosters league_id=%s: %w", leagueID, err)
	}

	out := make([]usecase.RemoteRoster, 0, len(wires))
	for _, wire := range wires {
		out = append(out, mapRoster(wire))
	}
	return out, nil
}

func (c *Client) FetchLeagueUsers(ctx context.Context, leagueID string) ([]usecase.RemoteLeagueUser, error) {
	var wires []leagueUserWire
	if err := c.doJSON(ctx, "/league/"+leagueID+"/users", &wires); err != nil {
		return nil, fmt.Errorf("fetch league users league_id=%s: %w", leagueID, err)
	}

	out := make([]usecase.RemoteLeagueUser, 0, len(wires))
	for _, wire := range wires {
		out = append(out, mapLeagueUser(wire))
	}
	return out, nil
}

func (c *Client) FetchLeagueDrafts(ctx context.Context, leagueID string) ([]usecase.RemoteDraft, error) {
	var wires []draftWire
	if err := c.doJSON(ctx, "/league/"+leagueID+"/drafts", &wires); err != nil {
		return nil, fmt.Errorf("fetch drafts league_id=%s: %w", leagueID, err)
	}

	out := make([]usecase.RemoteDraft, 0, len(wires))
	for _, wire := range wires {
		out = append(out, mapDraft(wire))
	}
	return out, nil
}

func (c *Client) FetchLeagueTradedPicks(ctx context.Context, leagueID string) ([]usecase.RemoteTradedPick, error) {
	var wires []tradedPickWire
	if err := c.doJSON(ctx, "/league/"+leagueID+"/traded_picks", &wires); err != nil {
		return nil, fmt.Errorf("fetch traded picks league_id=%s: %w", leagueID, err)
	}

	out := make([]usecase.RemoteTradedPick, 0, len(wires))
	for _, wire := range wires {
		out = append(out, mapTradedPick(wire))
	}
	return out, nil
}

// FetchLeagueTransactions returns only completed transactions. Week is
// floored at 1 because pre-season state reports week 0.
func (c *Client) FetchLeagueTransactions(ctx context.Context, leagueID string, week int) ([]usecase.RemoteTransaction, error) {
	if week < 1 {
		week = 1
	}

	var wires []transactionWire
	path := fmt.Sprintf("/league/%s/transactions/%d", leagueID, week)
	if err := c.doJSON(ctx, path, &wires); err != nil {
		return nil, fmt.Errorf("fetch transactions league_id=%s week=%d: %w", leagueID, week, err)
	}

	out := make([]usecase.RemoteTransaction, 0, len(wires))
	for _, wire := range wires {
		if wire.Status != "complete" {
			continue
		}
		out = append(out, mapTransaction(wire))
	}
	return out, nil
}

func (c *Client) FetchLeagueMatchups(ctx context.Context, leagueID string, week int) ([]usecase.RemoteMatchup, error) {
	if week < 1 {
		week = 1
	}

	var wires []matchupWire
	path := fmt.Sprintf("/league/%s/matchups/%d", leagueID, week)
	if err := c.doJSON(ctx, path, &wires); err != nil {
		return nil, fmt.Errorf("fetch matchups league_id=%s week=%d: %w", leagueID, week, err)
	}

	out := make([]usecase.RemoteMatchup, 0, len(wires))
	for _, wire := range wires {
		out = append(out, mapMatchup(wire))
	}
	return out, nil
}

func (c *Client) FetchDraftPicks(ctx context.Context, draftID string) ([]usecase.RemoteDraftPick, error) {
	if strings.TrimSpace(draftID) == "" {
		return nil, fmt.Errorf("%w: draft id is required", usecase.ErrInvalidInput)
	}

	var wires []draftPickWire
	if err := c.doJSON(ctx, "/draft/"+draftID+"/picks", &wires); err != nil {
		return nil, fmt.Errorf("fetch draft picks draft_id=%s: %w", draftID, err)
	}

	out := make([]usecase.RemoteDraftPick, 0, len(wires))
	for _, wire := range wires {
		out = append(out, mapDraftPick(wire))
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: sleeper is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errSleeperTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode sleeper payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errSleeperTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errSleeperTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, usecase.ErrNotFound
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: sleeper status=%d body=%s", errSleeperTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("sleeper status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := 2*time.Second + time.Duration(attempt)*time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("sleeper request failed")
	}
	c.logger.WarnContext(ctx, "sleeper request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
