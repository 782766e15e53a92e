package api_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	errs "github.com/NastyaGoryachaya/edge-rates-service/internal/errors"
)

const defaultUserAgent = "edge-rates-service/1.0 (+https://github.com/NastyaGoryachaya/edge-rates-service)"

// ErrRateLimited - апстрим ответил 429
var ErrRateLimited = errors.New("rate limited by upstream")

// Options — параметры клиента одного внешнего API
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// RPS <= 0 — без ограничения
	RPS     float64
	Burst   int
	Headers map[string]string
}

// Client — JSON GET-клиент с ограничением частоты запросов
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	headers    map[string]string
}

// NewClient - Создаёт клиента для внешнего API курсов.
func NewClient(opts Options) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil || u.Scheme == "" {
		return nil, fmt.Errorf("invalid base URL %q: %v", opts.BaseURL, err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    limiter,
		userAgent:  ua,
		headers:    opts.Headers,
	}, nil
}

// GetJSON — GET {base}/{path...}?query и разбор JSON-ответа в out
func (c *Client) GetJSON(ctx context.Context, query url.Values, out any, path ...string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: limiter: %w", errs.ErrProviderFailure, err)
	}

	u := *c.baseURL
	u.Path = u.JoinPath(path...).Path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range c.headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %w", errs.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", errs.ErrProviderFailure, ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s: %s", errs.ErrProviderFailure, resp.Status, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %w", errs.ErrProviderFailure, err)
	}
	return nil
}
