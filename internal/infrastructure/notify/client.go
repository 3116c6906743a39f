package notify

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/golazozone/prediction-league/internal/domain/match"
	"github.com/golazozone/prediction-league/internal/platform/logging"
	"github.com/golazozone/prediction-league/internal/platform/resilience"
)

var errNotifierTransient = crerr.New("notifier transient failure")

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client delivers kickoff reminders through the notification gateway. It
// satisfies usecase.Notifier. Reminder fan-out happens on the job path where
// a matchday burst can mean thousands of sends in one sweep, hence the
// pooled fasthttp client instead of net/http.
type Client struct {
	http           *fasthttp.Client
	sendURL        string
	apiKey         string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		sendURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/") + "/v1/notifications",
		apiKey:         strings.TrimSpace(cfg.APIKey),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type reminderPayload struct {
	UserID    string `json:"user_id"`
	Template  string `json:"template"`
	MatchID   string `json:"match_id"`
	HomeLabel string `json:"home_label"`
	AwayLabel string `json:"away_label"`
	KickoffAt string `json:"kickoff_at"`
	Venue     string `json:"venue,omitempty"`
}

func (c *Client) SendMatchReminder(ctx context.Context, userID string, m match.Match) error {
	if strings.TrimSpace(userID) == "" {
		return crerr.New("user id is required")
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "notifier circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("notifier is temporarily unavailable: %w", err)
		}
	}

	payload := reminderPayload{
		UserID:    userID,
		Template:  "match-reminder",
		MatchID:   m.ID,
		HomeLabel: sideLabel(m.HomeTeamID, m.HomeSlot),
		AwayLabel: sideLabel(m.AwayTeamID, m.AwaySlot),
		KickoffAt: m.KickoffAt.UTC().Format(time.RFC3339),
		Venue:     m.Venue,
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal reminder payload")
	}

	err = c.post(ctx, body)
	c.recordCircuitResult(err)
	if err != nil {
		return err
	}

	c.logger.DebugContext(ctx, "match reminder sent", "user_id", userID, "match_id", m.ID)
	return nil
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.sendURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.SetBody(body)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("%w: post notification: %v", errNotifierTransient, err)
	}

	status := resp.StatusCode()
	if status/100 == 2 {
		return nil
	}

	detail := responseDetail(resp)
	if status == fasthttp.StatusTooManyRequests || status/100 == 5 {
		return fmt.Errorf("%w: notification gateway status=%d body=%s", errNotifierTransient, status, detail)
	}
	return crerr.Newf("notification gateway rejected request status=%d body=%s", status, detail)
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled {
		return
	}
	if stderrors.Is(err, errNotifierTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func responseDetail(resp *fasthttp.Response) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	body := resp.Body()
	if len(body) > 2048 {
		body = body[:2048]
	}
	_, _ = buf.Write(body)
	return strings.TrimSpace(buf.String())
}

func sideLabel(teamID, slot string) string {
	if teamID != "" {
		return teamID
	}
	return slot
}
