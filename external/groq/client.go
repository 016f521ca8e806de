package groq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/chat"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/resilience"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	ProviderName = "chat"

	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.1-70b-versatile"

	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 2 << 20
)

var errChatTransient = crerr.New("chat backend transient failure")

type upstreamRecorder interface {
	ObserveUpstream(provider, operation string, err error, elapsed time.Duration)
}

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
	Breaker    *resilience.CircuitBreaker
	Metrics    upstreamRecorder
}

// Client talks to an OpenAI-compatible /chat/completions endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	metrics    upstreamRecorder
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker:    cfg.Breaker,
		metrics:    cfg.Metrics,
	}
}

func (c *Client) Complete(ctx context.Context, req chat.Request) (chat.Reply, error) {
	if c.apiKey == "" {
		return chat.Reply{}, fmt.Errorf("%w: chat api key is not configured", usecase.ErrDependencyUnavailable)
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "chat circuit breaker rejected request", "state", c.breaker.State())
		return chat.Reply{}, fmt.Errorf("%w: chat backend is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = DefaultModel
	}
	body := completionRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	started := time.Now()
	raw, err := c.post(ctx, "/chat/completions", body)
	if err != nil && crerr.Is(err, errChatTransient) {
		c.breaker.RecordFailure()
	} else {
		c.breaker.RecordSuccess()
	}
	if c.metrics != nil {
		c.metrics.ObserveUpstream(ProviderName, "complete", err, time.Since(started))
	}
	if err != nil {
		return chat.Reply{}, err
	}

	var resp completionResponse
	if err := sonic.Unmarshal(raw, &resp); err != nil {
		return chat.Reply{}, crerr.Wrap(err, "decode chat completion")
	}
	if len(resp.Choices) == 0 {
		return chat.Reply{}, crerr.New("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	return chat.Reply{
		Model:        firstNonEmpty(resp.Model, model),
		Content:      strings.TrimSpace(choice.Message.Content),
		FinishReason: choice.FinishReason,
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return nil, crerr.Wrap(err, "encode chat request")
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf.B))
		if err != nil {
			return nil, crerr.Wrap(err, "build chat request")
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = crerr.Mark(crerr.Newf("send chat request: %s", redact(err.Error(), c.apiKey)), errChatTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read chat response"), errChatTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(crerr.Newf("chat backend status=%d message=%s", resp.StatusCode, errorMessage(raw)), errChatTransient)
			default:
				return nil, crerr.Newf("chat backend status=%d message=%s", resp.StatusCode, errorMessage(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * 500 * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "chat request failed", "path", path, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// errorMessage pulls error.message out of an OpenAI-style error body, else a short prefix of it.
func errorMessage(raw []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := sonic.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Error.Message) != "" {
		return strings.TrimSpace(body.Error.Message)
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 240 {
		text = text[:240] + "..."
	}
	return text
}

func redact(value, secret string) string {
	if secret == "" {
		return value
	}
	return strings.ReplaceAll(value, secret, "REDACTED")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

type completionRequest struct {
	Model       string         `json:"model"`
	Messages    []chat.Message `json:"messages"`
	Temperature float64        `json:"temperature"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}
