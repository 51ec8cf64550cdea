// Package northwind is the typed client for the Northwind banking API.
//
// Every method performs exactly one HTTP request. Non-2xx responses become
// *domain.APIError; transport failures are returned unchanged. The client
// never retries and never caches.
package northwind

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/observability"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("northwind")

// Client calls the Northwind API with bearer-key authentication.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	metrics    *observability.Metrics
	logger     *zap.Logger

	accounts  *AccountsService
	transfers *TransfersService
}

// Option customizes a Client.
type Option func(*Client)

// WithCircuitBreaker routes every request through cb. Transport failures
// and 5xx responses count against it.
func WithCircuitBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.cb = cb }
}

// WithBulkhead caps the number of concurrent in-flight requests.
func WithBulkhead(b *resilience.Bulkhead) Option {
	return func(c *Client) { c.bulkhead = b }
}

// WithMetrics records per-operation latency and errors.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Northwind client for baseURL (no trailing slash needed).
func NewClient(httpClient *http.Client, baseURL, apiKey string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.accounts = &AccountsService{client: c}
	c.transfers = &TransfersService{client: c}
	return c
}

// Accounts groups the account operations.
func (c *Client) Accounts() *AccountsService { return c.accounts }

// Transfers groups the transfer operations.
func (c *Client) Transfers() *TransfersService { return c.transfers }

// Health checks the status of the API and its database.
func (c *Client) Health(ctx context.Context) (*domain.HealthResponse, error) {
	return call[domain.HealthResponse](ctx, c, "health", http.MethodGet, "/health", nil)
}

// GetBank returns information about Northwind Bank.
func (c *Client) GetBank(ctx context.Context) (*domain.BankInfoResponse, error) {
	return call[domain.BankInfoResponse](ctx, c, "bank", http.MethodGet, "/bank", nil)
}

// GetDomains returns all valid domain values.
func (c *Client) GetDomains(ctx context.Context) (*domain.DomainsResponse, error) {
	return call[domain.DomainsResponse](ctx, c, "domains", http.MethodGet, "/domains", nil)
}

// Reset restores Northwind's demo state. Sends no body.
func (c *Client) Reset(ctx context.Context) (map[string]any, error) {
	out, err := call[map[string]any](ctx, c, "reset", http.MethodPost, "/external/reset", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// call performs one request and decodes a 2xx body into T.
func call[T any](ctx context.Context, c *Client, op, method, path string, body any) (*T, error) {
	var out T
	if err := c.do(ctx, op, method, path, body, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// newRequest builds an authenticated JSON request for path relative to the
// base URL. Headers in extra are applied last and override the defaults.
func (c *Client) newRequest(ctx context.Context, method, path string, body any, extra http.Header) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	for key, values := range extra {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, extra http.Header, out any) error {
	ctx, span := tracer.Start(ctx, "Northwind."+op)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("northwind.path", path),
	)

	req, err := c.newRequest(ctx, method, path, body, extra)
	if err != nil {
		return err
	}

	if c.bulkhead != nil {
		if err := c.bulkhead.Acquire(ctx); err != nil {
			return err
		}
		defer c.bulkhead.Release()
	}

	start := time.Now()
	resp, err := c.send(req)
	if c.metrics != nil {
		c.metrics.RecordUpstream(op, time.Since(start))
	}
	if err != nil {
		c.logger.Error("northwind: request failed",
			zap.String("operation", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		c.countError(op, observability.ErrorKindTransport)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := normalizeError(resp)
		c.logger.Warn("northwind: non-2xx response",
			zap.String("operation", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.String("code", apiErr.Body.Error.Code),
			zap.String("request_id", apiErr.Body.Error.RequestID),
		)
		c.countError(op, observability.ErrorKindAPI)
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}

	c.logger.Debug("northwind: request OK",
		zap.String("operation", op),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return json.NewDecoder(resp.Body).Decode(out)
}

// send executes req, through the circuit breaker when one is configured.
// Transport errors come back exactly as the http.Client produced them.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	if c.cb == nil {
		return c.httpClient.Do(req)
	}

	var resp *http.Response
	_, err := c.cb.Execute(func() (any, error) {
		r, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		resp = r
		if r.StatusCode >= http.StatusInternalServerError {
			return nil, resilience.ErrUpstreamUnavailable
		}
		return nil, nil
	})
	if err != nil && !errors.Is(err, resilience.ErrUpstreamUnavailable) {
		return nil, err
	}
	return resp, nil
}

func (c *Client) countError(op, kind string) {
	if c.metrics != nil {
		c.metrics.IncrUpstreamError(op, kind)
	}
}

// normalizeError turns a non-2xx response into an APIError. A body that is
// not the structured error shape is replaced by one built from the status line.
func normalizeError(resp *http.Response) *domain.APIError {
	var body domain.ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		body = domain.ErrorBody{Error: domain.ErrorDetail{
			Code:    strconv.Itoa(resp.StatusCode),
			Message: statusText(resp),
		}}
	}
	return &domain.APIError{Status: resp.StatusCode, Body: body}
}

// statusText returns the reason phrase of the status line, e.g. "Internal Server Error".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
