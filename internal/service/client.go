// Package service is the HTTP client for the translation and evaluation
// service.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/f3rmion/smt/internal/apperrors"
	"github.com/f3rmion/smt/internal/logger"
	"github.com/f3rmion/smt/internal/smt"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
	// MaxResponseBytes caps response bodies.
	MaxResponseBytes = 8 * 1024 * 1024

	translatePath            = "/translate"
	evaluatePath             = "/evaluate_bleu"
	translateAndEvaluatePath = "/translate_and_evaluate"

	// Fallback messages when a failure status carries no error text.
	TranslateFailed = "Translation failed"
	EvaluateFailed  = "BLEU evaluation failed"
	CombinedFailed  = "Operation failed"
)

// Client talks to the service over JSON/HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	breaker    *gobreaker.CircuitBreaker
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithBreaker opens a circuit after threshold consecutive transport
// failures. Service errors do not count. Zero disables the breaker.
func WithBreaker(threshold uint32, cooldown time.Duration) Option {
	return func(c *Client) {
		if threshold == 0 {
			c.breaker = nil
			return
		}
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "smt-service",
			Timeout: cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.log.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			},
		})
	}
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parsing service url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("service url %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("service url %q has no host", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		log:        logger.For("service"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Translate calls POST /translate.
func (c *Client) Translate(ctx context.Context, req smt.TranslationRequest) (smt.TranslationResponse, error) {
	var resp smt.TranslationResponse
	err := c.post(ctx, translatePath, req, &resp, TranslateFailed)
	return resp, err
}

// Evaluate calls POST /evaluate_bleu.
func (c *Client) Evaluate(ctx context.Context, req smt.EvaluationRequest) (smt.EvaluationResult, error) {
	var resp smt.EvaluationResult
	err := c.post(ctx, evaluatePath, req, &resp, EvaluateFailed)
	return resp, err
}

// TranslateAndEvaluate calls POST /translate_and_evaluate.
func (c *Client) TranslateAndEvaluate(ctx context.Context, req smt.CombinedRequest) (smt.CombinedResponse, error) {
	var resp smt.CombinedResponse
	err := c.post(ctx, translateAndEvaluatePath, req, &resp, CombinedFailed)
	return resp, err
}

// reply is a raw HTTP exchange result.
type reply struct {
	status int
	body   []byte
}

func (c *Client) post(ctx context.Context, path string, payload, out any, fallback string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	rep, err := c.exchange(ctx, c.endpoint(path), body)
	if err != nil {
		c.log.Warn("request failed", "path", path, "error", err, "duration", time.Since(start))
		return apperrors.Transport(err)
	}
	c.log.Debug("request done", "path", path, "status", rep.status, "duration", time.Since(start))

	if rep.status < 200 || rep.status > 299 {
		var e smt.ErrorResponse
		if err := json.Unmarshal(rep.body, &e); err != nil {
			return apperrors.Transport(fmt.Errorf("decoding error response (status %d): %w", rep.status, err))
		}
		return apperrors.Service(rep.status, e.Error, fallback)
	}

	if err := json.Unmarshal(rep.body, out); err != nil {
		return apperrors.Transport(fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// exchange performs the HTTP round trip. Only transport-level failures are
// returned as errors, so the breaker never trips on service errors.
func (c *Client) exchange(ctx context.Context, endpoint string, body []byte) (reply, error) {
	do := func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return reply{}, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return reply{}, err
		}
		defer resp.Body.Close()

		data, err := readCapped(resp.Body)
		if err != nil {
			return reply{}, err
		}
		return reply{status: resp.StatusCode, body: data}, nil
	}

	if c.breaker == nil {
		r, err := do()
		return r.(reply), err
	}

	r, err := c.breaker.Execute(do)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return reply{}, fmt.Errorf("service unavailable: %w", err)
		}
		return reply{}, err
	}
	return r.(reply), nil
}

func readCapped(r io.Reader) ([]byte, error) {
	limited := &io.LimitedReader{R: r, N: MaxResponseBytes + 1}
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(data)) > MaxResponseBytes {
		return nil, fmt.Errorf("response body too large (limit %d bytes)", MaxResponseBytes)
	}
	return data, nil
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}
