package statsfeed

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/openfantasy/draft-league/internal/platform/logging"
	"github.com/openfantasy/draft-league/internal/platform/resilience"
	"github.com/openfantasy/draft-league/internal/usecase"
)

const (
	defaultFeedURL = "https://raw.githubusercontent.com/openfantasy/stats-feed/main/data/laliga-stats.json"
	maxBodyBytes   = 6 << 20
)

var errFeedTransient = crerr.New("stats feed transient failure")

type ClientConfig struct {
	FeedURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches the nightly statistics document. With no token configured
// it degrades to a valid empty document carrying an explanatory note, so a
// local deployment works without feed credentials.
type Client struct {
	httpClient     *fasthttp.Client
	feedURL        string
	token          string
	timeout        time.Duration
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

	feedURL := strings.TrimSpace(cfg.FeedURL)
	if feedURL == "" {
		feedURL = defaultFeedURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		feedURL:        feedURL,
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// feedDocument mirrors the wire shape produced by the nightly scrape job.
type feedDocument struct {
	UpdatedAt time.Time    `json:"updatedAt"`
	Season    string       `json:"season"`
	League    string       `json:"league"`
	Source    string       `json:"source"`
	Note      string       `json:"note"`
	Players   []feedPlayer `json:"players"`
}

type feedPlayer struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Club              string `json:"club"`
	Position          string `json:"pos"`
	Goals             int    `json:"goals"`
	Assists           int    `json:"assists"`
	CleanSheets       int    `json:"cleanSheets"`
	Saves             int    `json:"saves"`
	PenaltySaves      int    `json:"penaltySaves"`
	PenaltiesMissed   int    `json:"penaltiesMissed"`
	GoalsConceded     int    `json:"goalsConceded"`
	YellowCards       int    `json:"yellowCards"`
	RedCards          int    `json:"redCards"`
	OwnGoals          int    `json:"ownGoals"`
	TacklesWon        int    `json:"tacklesWon"`
	Interceptions     int    `json:"interceptions"`
	KeyPasses         int    `json:"keyPasses"`
	ShotsOnTarget     int    `json:"shotsOnTarget"`
	BigChancesCreated int    `json:"bigChancesCreated"`
	DribblesPast      int    `json:"dribblesPast"`
	ManOfTheMatch     int    `json:"motm"`
}

func (c *Client) FetchDocument(ctx context.Context) (usecase.ExternalStatsDocument, error) {
	if c.token == "" {
		return usecase.ExternalStatsDocument{
			UpdatedAt: time.Now().UTC(),
			Note:      "stats feed token not configured, serving empty document",
		}, nil
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "stats feed circuit breaker rejected request", "state", c.breaker.State())
			return usecase.ExternalStatsDocument{}, fmt.Errorf("%w: stats feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(c.feedURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errFeedTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return usecase.ExternalStatsDocument{}, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return usecase.ExternalStatsDocument{}, fmt.Errorf("unexpected response payload type %T", out)
	}

	var doc feedDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return usecase.ExternalStatsDocument{}, fmt.Errorf("decode feed document: %w", err)
	}
	return documentFromWire(doc), nil
}

func (c *Client) executeRequest(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := c.doRequest()
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !stderrors.Is(err, errFeedTransient) {
			return nil, err
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.Warn("stats feed request failed", "url", c.feedURL, "error", lastErr.Error())
	return nil, lastErr
}

func (c *Client) doRequest() ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.feedURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errFeedTransient, err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		if isRetryableStatus(status) {
			return nil, fmt.Errorf("%w: feed status=%d", errFeedTransient, status)
		}
		return nil, fmt.Errorf("feed status=%d", status)
	}

	body := resp.Body()
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("feed document exceeds %d bytes", maxBodyBytes)
	}

	// Copy out of the pooled response before it is released.
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func documentFromWire(doc feedDocument) usecase.ExternalStatsDocument {
	out := usecase.ExternalStatsDocument{
		UpdatedAt: doc.UpdatedAt,
		Season:    doc.Season,
		League:    doc.League,
		Note:      doc.Note,
		Players:   make([]usecase.ExternalPlayerRecord, 0, len(doc.Players)),
	}
	for _, p := range doc.Players {
		out.Players = append(out.Players, usecase.ExternalPlayerRecord{
			ID:                strconv.FormatInt(p.ID, 10),
			Name:              p.Name,
			Club:              p.Club,
			Position:          p.Position,
			Goals:             p.Goals,
			Assists:           p.Assists,
			CleanSheets:       p.CleanSheets,
			Saves:             p.Saves,
			PenaltySaves:      p.PenaltySaves,
			PenaltiesMissed:   p.PenaltiesMissed,
			GoalsConceded:     p.GoalsConceded,
			YellowCards:       p.YellowCards,
			RedCards:          p.RedCards,
			OwnGoals:          p.OwnGoals,
			TacklesWon:        p.TacklesWon,
			Interceptions:     p.Interceptions,
			KeyPasses:         p.KeyPasses,
			ShotsOnTarget:     p.ShotsOnTarget,
			BigChancesCreated: p.BigChancesCreated,
			DribblesPast:      p.DribblesPast,
			ManOfTheMatch:     p.ManOfTheMatch,
		})
	}
	return out
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}
