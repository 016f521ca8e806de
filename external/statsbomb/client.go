package statsbomb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/competition"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/matchevent"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/rawdata"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/resilience"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	ProviderName = "statsbomb"

	defaultBaseURL      = "https://raw.githubusercontent.com/statsbomb/open-data/master/data"
	defaultTimeout      = 20 * time.Second
	defaultRetryBackoff = time.Second
	defaultMaxBodyBytes = 64 << 20
	matchDateLayout     = "2006-01-02"
)

var errStatsBombTransient = crerr.New("statsbomb transient failure")

type upstreamRecorder interface {
	ObserveUpstream(provider, operation string, err error, elapsed time.Duration)
}

type ClientConfig struct {
	HTTPClient   *fasthttp.Client
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Logger       *logging.Logger
	Breaker      *resilience.CircuitBreaker
	Metrics      upstreamRecorder
}

// Client reads the StatsBomb open-data repository: competitions.json,
// matches/{competition}/{season}.json and events/{match}.json.
type Client struct {
	httpClient   *fasthttp.Client
	baseURL      string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	metrics      upstreamRecorder
	flight       resilience.SingleFlight
	now          func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "tacticai-statsbomb",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 90 * time.Second,
			MaxResponseBodySize: defaultMaxBodyBytes,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger,
		breaker:      cfg.Breaker,
		metrics:      cfg.Metrics,
		now:          time.Now,
	}
}

func (c *Client) ListCompetitions(ctx context.Context) ([]competition.Competition, []rawdata.Payload, error) {
	raw, err := c.get(ctx, "list_competitions", "/competitions.json")
	if err != nil {
		return nil, nil, fmt.Errorf("fetch competitions: %w", err)
	}

	var records []competitionRecord
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return nil, nil, fmt.Errorf("decode competitions payload: %w", err)
	}

	out := make([]competition.Competition, 0, len(records))
	for _, item := range records {
		if item.CompetitionID <= 0 || item.SeasonID <= 0 {
			continue
		}
		out = append(out, item.toDomain())
	}

	payload := rawdata.NewPayload(rawdata.SourceStatsBomb, rawdata.EntityCompetitions, "all", raw, c.now())
	return out, []rawdata.Payload{payload}, nil
}

func (c *Client) ListMatches(ctx context.Context, competitionID, seasonID int64) ([]competition.Match, []rawdata.Payload, error) {
	if competitionID <= 0 || seasonID <= 0 {
		return nil, nil, fmt.Errorf("%w: competition and season ids must be greater than zero", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/matches/%d/%d.json", competitionID, seasonID)
	raw, err := c.get(ctx, "list_matches", path)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch matches competition_id=%d season_id=%d: %w", competitionID, seasonID, err)
	}

	var records []matchRecord
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return nil, nil, fmt.Errorf("decode matches payload: %w", err)
	}

	out := make([]competition.Match, 0, len(records))
	for _, item := range records {
		if item.MatchID <= 0 {
			continue
		}
		out = append(out, item.toDomain(competitionID, seasonID))
	}

	key := strconv.FormatInt(competitionID, 10) + "/" + strconv.FormatInt(seasonID, 10)
	payload := rawdata.NewPayload(rawdata.SourceStatsBomb, rawdata.EntityMatches, key, raw, c.now())
	return out, []rawdata.Payload{payload}, nil
}

// FetchEvents returns the match events as decoded JSON objects; the normalizer owns their shape.
func (c *Client) FetchEvents(ctx context.Context, matchID int64) ([]matchevent.Raw, rawdata.Payload, error) {
	if matchID <= 0 {
		return nil, rawdata.Payload{}, fmt.Errorf("%w: match id must be greater than zero", usecase.ErrInvalidInput)
	}

	raw, err := c.get(ctx, "fetch_events", fmt.Sprintf("/events/%d.json", matchID))
	if err != nil {
		return nil, rawdata.Payload{}, fmt.Errorf("fetch events match_id=%d: %w", matchID, err)
	}

	var records []matchevent.Raw
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return nil, rawdata.Payload{}, fmt.Errorf("decode events payload match_id=%d: %w", matchID, err)
	}

	payload := rawdata.NewPayload(rawdata.SourceStatsBomb, rawdata.EntityEvents, strconv.FormatInt(matchID, 10), raw, c.now())
	return records, payload, nil
}

func (c *Client) get(ctx context.Context, operation, path string) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "statsbomb circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: match data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	started := time.Now()
	// The shared request outlives any single caller; it keeps ctx values for tracing
	// and is bounded by the retry budget instead.
	flight := c.flight.DoChan(path, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.requestBudget())
		defer cancel()

		raw, reqErr := c.executeRequest(flightCtx, c.baseURL+path)
		if reqErr != nil && isCircuitFailure(reqErr) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return raw, reqErr
	})

	var (
		out any
		err error
	)
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case res := <-flight:
		out, err = res.Val, res.Err
	}
	if c.metrics != nil {
		c.metrics.ObserveUpstream(ProviderName, operation, err, time.Since(started))
	}
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

// requestBudget covers every attempt plus the linear backoff between them.
func (c *Client) requestBudget() time.Duration {
	attempts := c.maxRetries + 1
	backoff := time.Duration(c.maxRetries*attempts/2) * c.retryBackoff
	return time.Duration(attempts)*c.timeout + backoff
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, status, err := c.do(ctx, fullURL)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = crerr.Mark(crerr.Wrapf(err, "send request"), errStatsBombTransient)
		case status >= 200 && status < 300:
			return raw, nil
		case status == fasthttp.StatusNotFound:
			return nil, fmt.Errorf("%w: provider status=%d url=%s", usecase.ErrNotFound, status, fullURL)
		case isRetryableStatus(status):
			lastErr = crerr.Mark(crerr.Newf("provider status=%d body=%s", status, abbreviateBody(raw)), errStatsBombTransient)
		default:
			return nil, crerr.Newf("provider status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryBackoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("provider request failed")
	}
	c.logger.WarnContext(ctx, "statsbomb request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// do runs one GET bounded by the earlier of the client timeout and the context deadline.
func (c *Client) do(ctx context.Context, fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return crerr.Is(err, errStatsBombTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

type competitionRecord struct {
	CompetitionID     int64  `json:"competition_id"`
	SeasonID          int64  `json:"season_id"`
	CountryName       string `json:"country_name"`
	CompetitionName   string `json:"competition_name"`
	CompetitionGender string `json:"competition_gender"`
	SeasonName        string `json:"season_name"`
}

func (r competitionRecord) toDomain() competition.Competition {
	return competition.Competition{
		ID:         r.CompetitionID,
		SeasonID:   r.SeasonID,
		Name:       strings.TrimSpace(r.CompetitionName),
		SeasonName: strings.TrimSpace(r.SeasonName),
		Country:    strings.TrimSpace(r.CountryName),
		Gender:     strings.TrimSpace(r.CompetitionGender),
	}
}

type matchRecord struct {
	MatchID   int64  `json:"match_id"`
	MatchDate string `json:"match_date"`
	HomeTeam  struct {
		Name string `json:"home_team_name"`
	} `json:"home_team"`
	AwayTeam struct {
		Name string `json:"away_team_name"`
	} `json:"away_team"`
	HomeScore        *int `json:"home_score"`
	AwayScore        *int `json:"away_score"`
	CompetitionStage struct {
		Name string `json:"name"`
	} `json:"competition_stage"`
}

func (r matchRecord) toDomain(competitionID, seasonID int64) competition.Match {
	out := competition.Match{
		ID:            r.MatchID,
		CompetitionID: competitionID,
		SeasonID:      seasonID,
		HomeTeam:      strings.TrimSpace(r.HomeTeam.Name),
		AwayTeam:      strings.TrimSpace(r.AwayTeam.Name),
		HomeScore:     r.HomeScore,
		AwayScore:     r.AwayScore,
		Stage:         strings.TrimSpace(r.CompetitionStage.Name),
	}
	if parsed, err := time.Parse(matchDateLayout, strings.TrimSpace(r.MatchDate)); err == nil {
		out.MatchDate = parsed.UTC()
	}
	return out
}
