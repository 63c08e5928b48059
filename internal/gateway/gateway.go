// Package gateway issues catalog and auth requests against the primary
// backend, falling back to the public demo catalog for read operations the
// primary cannot serve. Writes (create, login, register) never fall back: the
// demo catalog is not a source of truth.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
)

const (
	DefaultFallbackBaseURL = "https://dummyjson.com"
	defaultTimeout         = 15 * time.Second
)

type rawResponse struct {
	status int
	body   []byte
}

type Options struct {
	PrimaryBaseURL  string
	FallbackBaseURL string
	Timeout         time.Duration
}

type Client struct {
	primary  string
	fallback string
	httpc    *http.Client

	// Trips after repeated transport failures against the primary so reads
	// skip straight to the fallback instead of waiting out the timeout.
	breaker *gobreaker.CircuitBreaker[rawResponse]
}

func New(opts Options) *Client {
	if opts.FallbackBaseURL == "" {
		opts.FallbackBaseURL = DefaultFallbackBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	breaker := gobreaker.NewCircuitBreaker[rawResponse](gobreaker.Settings{
		Name:    "catalog-primary",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Client{
		primary:  opts.PrimaryBaseURL,
		fallback: opts.FallbackBaseURL,
		httpc: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: breaker,
	}
}

// send performs one HTTP exchange and classifies the outcome: a transport
// failure (or open breaker) becomes a status-0 Error, a non-2xx response is
// normalized to a human-readable Error, anything else returns the raw body.
func (c *Client) send(ctx context.Context, method, rawurl string, query url.Values, payload any, viaBreaker bool) (rawResponse, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return rawResponse{}, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawurl, body)
	if err != nil {
		return rawResponse{}, fmt.Errorf("build request: %w", err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	do := func() (rawResponse, error) {
		resp, err := c.httpc.Do(req)
		if err != nil {
			return rawResponse{}, err
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return rawResponse{}, err
		}
		return rawResponse{status: resp.StatusCode, body: data}, nil
	}

	var raw rawResponse
	if viaBreaker {
		raw, err = c.breaker.Execute(do)
	} else {
		raw, err = do()
	}
	if err != nil {
		return rawResponse{}, transportError(err)
	}
	if raw.status >= http.StatusBadRequest {
		return rawResponse{}, normalizeError(raw.status, raw.body)
	}
	return raw, nil
}

// getWithFallback tries the primary route and retries against the fallback
// catalog only for the recoverable error classes in shouldFallback.
func (c *Client) getWithFallback(ctx context.Context, primaryPath, fallbackPath string, query url.Values, loose bool) (rawResponse, error) {
	raw, err := c.send(ctx, http.MethodGet, c.primary+primaryPath, query, nil, true)
	if err == nil {
		return raw, nil
	}
	if !shouldFallback(err, loose) {
		return rawResponse{}, err
	}
	return c.send(ctx, http.MethodGet, c.fallback+fallbackPath, query, nil, false)
}

func (c *Client) ListProducts(ctx context.Context, limit, skip int) (domain.Page, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	raw, err := c.getWithFallback(ctx, "/api/products", "/products", q, false)
	if err != nil {
		return domain.Page{}, err
	}
	return decodePage(raw.body)
}

func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	raw, err := c.getWithFallback(ctx,
		fmt.Sprintf("/api/products/%d", id),
		fmt.Sprintf("/products/%d", id),
		nil, false)
	if err != nil {
		return domain.Product{}, err
	}
	return decodeProduct(raw.body)
}

func (c *Client) SearchProducts(ctx context.Context, query string) (domain.Page, error) {
	q := url.Values{}
	q.Set("q", query)
	raw, err := c.getWithFallback(ctx, "/api/products/search", "/products/search", q, false)
	if err != nil {
		return domain.Page{}, err
	}
	return decodePage(raw.body)
}

// ListCategories uses the loose fallback policy: the category route is the one
// endpoint where a misbehaving backend answers 400 instead of 404.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	raw, err := c.getWithFallback(ctx, "/api/products/categories", "/products/categories", nil, true)
	if err != nil {
		return nil, err
	}
	return decodeCategories(raw.body)
}

func (c *Client) ListByCategory(ctx context.Context, category string) (domain.Page, error) {
	escaped := url.PathEscape(category)
	raw, err := c.getWithFallback(ctx,
		"/api/products/category/"+escaped,
		"/products/category/"+escaped,
		nil, false)
	if err != nil {
		return domain.Page{}, err
	}
	return decodePage(raw.body)
}

// CreateProduct has no fallback: it must succeed against the primary or fail.
func (c *Client) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	raw, err := c.send(ctx, http.MethodPost, c.primary+"/api/products", nil, p, true)
	if err != nil {
		return domain.Product{}, err
	}
	return decodeProduct(raw.body)
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	raw, err := c.send(ctx, http.MethodPost, c.primary+"/api/auth/login", nil, creds, true)
	if err != nil {
		return domain.User{}, err
	}
	return decodeUser(raw.body)
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	raw, err := c.send(ctx, http.MethodPost, c.primary+"/api/auth/register", nil, reg, true)
	if err != nil {
		return domain.User{}, err
	}
	return decodeUser(raw.body)
}

// Health pings the primary backend.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodGet, c.primary+"/health", nil, nil, false)
	return err
}
