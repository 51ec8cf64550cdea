package northwind_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/northwind"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/observability"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/resilience"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// recorded is what the fake Northwind server saw.
type recorded struct {
	method string
	uri    string
	auth   string
	body   string
}

func newServer(t *testing.T, status int, payload string) (*httptest.Server, *recorded, *int32) {
	t.Helper()
	rec := &recorded{}
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		b, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.uri = r.URL.RequestURI()
		rec.auth = r.Header.Get("Authorization")
		rec.body = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv, rec, &calls
}

func newClient(srv *httptest.Server, opts ...northwind.Option) *northwind.Client {
	return northwind.NewClient(srv.Client(), srv.URL, "test-key-abc", zap.NewNop(), opts...)
}

func TestHealth_SendsBearerKeyAndDecodes(t *testing.T) {
	srv, rec, calls := newServer(t, http.StatusOK, `{"status":"healthy","database":"connected","version":"1.0.0"}`)

	resp, err := newClient(srv).Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Status != "healthy" || resp.Database != "connected" {
		t.Errorf("unexpected health %+v", resp)
	}
	if rec.uri != "/health" || rec.method != http.MethodGet {
		t.Errorf("expected GET /health, got %s %s", rec.method, rec.uri)
	}
	if rec.auth != "Bearer test-key-abc" {
		t.Errorf("expected bearer key, got %q", rec.auth)
	}
	if *calls != 1 {
		t.Errorf("expected exactly one request, got %d", *calls)
	}
}

func TestAccountsList_QueryString(t *testing.T) {
	srv, rec, _ := newServer(t, http.StatusOK, `{"accounts":[{"account_id":"acct-001","account_number":"1234567890","account_type":"CHECKING","balance":5000}],"pagination":{"page":1,"per_page":10,"total":1}}`)

	resp, err := newClient(srv).Accounts().List(context.Background(), &domain.AccountFilter{
		Limit: domain.Ptr(10),
		Type:  domain.Ptr("CHECKING"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(rec.uri, "limit=10") || !strings.Contains(rec.uri, "type=CHECKING") {
		t.Errorf("expected filters in query, got %s", rec.uri)
	}
	if strings.Contains(rec.uri, "offset") || strings.Contains(rec.uri, "status") {
		t.Errorf("expected unset filters omitted, got %s", rec.uri)
	}
	if len(resp.Accounts) != 1 || !resp.Accounts[0].Balance.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("unexpected accounts %+v", resp.Accounts)
	}
}

func TestAccountsList_NoFiltersNoQuery(t *testing.T) {
	srv, rec, _ := newServer(t, http.StatusOK, `{"accounts":[],"pagination":{"page":1,"per_page":0,"total":0}}`)

	if _, err := newClient(srv).Accounts().List(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.uri != "/external/accounts" {
		t.Errorf("expected clean URL, got %s", rec.uri)
	}

	if _, err := newClient(srv).Accounts().List(context.Background(), &domain.AccountFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.uri != "/external/accounts" {
		t.Errorf("expected clean URL for empty filter, got %s", rec.uri)
	}
}

func TestTransfersList_QueryString(t *testing.T) {
	srv, rec, _ := newServer(t, http.StatusOK, `{"transfers":[],"pagination":{"page":2,"per_page":20,"total":0}}`)

	_, err := newClient(srv).Transfers().List(context.Background(), &domain.TransferFilter{
		Page:     domain.Ptr(2),
		PerPage:  domain.Ptr(20),
		DateFrom: domain.Ptr("2026-01-01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"page=2", "per_page=20", "date_from=2026-01-01"} {
		if !strings.Contains(rec.uri, want) {
			t.Errorf("expected %s in %s", want, rec.uri)
		}
	}
}

func TestPaths(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *northwind.Client) error
		wantMethod string
		wantURI    string
	}{
		{
			name: "get transfer",
			call: func(c *northwind.Client) error {
				_, err := c.Transfers().Get(context.Background(), "trx-abc")
				return err
			},
			wantMethod: http.MethodGet,
			wantURI:    "/external/transfers/trx-abc",
		},
		{
			name: "balance",
			call: func(c *northwind.Client) error {
				_, err := c.Accounts().GetBalance(context.Background(), "1234567890")
				return err
			},
			wantMethod: http.MethodGet,
			wantURI:    "/external/accounts/1234567890/balance",
		},
		{
			name: "cancel",
			call: func(c *northwind.Client) error {
				_, err := c.Transfers().Cancel(context.Background(), "trx-1", domain.TransferCancelRequest{Reason: "dup"})
				return err
			},
			wantMethod: http.MethodPost,
			wantURI:    "/external/transfers/trx-1/cancel",
		},
		{
			name: "reverse",
			call: func(c *northwind.Client) error {
				_, err := c.Transfers().Reverse(context.Background(), "trx-1", domain.TransferReverseRequest{Reason: "fraud"})
				return err
			},
			wantMethod: http.MethodPost,
			wantURI:    "/external/transfers/trx-1/reverse",
		},
		{
			name: "escaped segment",
			call: func(c *northwind.Client) error {
				_, err := c.Transfers().Get(context.Background(), "a/b c")
				return err
			},
			wantMethod: http.MethodGet,
			wantURI:    "/external/transfers/a%2Fb%20c",
		},
		{
			name: "bank",
			call: func(c *northwind.Client) error {
				_, err := c.GetBank(context.Background())
				return err
			},
			wantMethod: http.MethodGet,
			wantURI:    "/bank",
		},
		{
			name: "domains",
			call: func(c *northwind.Client) error {
				_, err := c.GetDomains(context.Background())
				return err
			},
			wantMethod: http.MethodGet,
			wantURI:    "/domains",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, rec, _ := newServer(t, http.StatusOK, `{}`)
			if err := tt.call(newClient(srv)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.method != tt.wantMethod || rec.uri != tt.wantURI {
				t.Errorf("expected %s %s, got %s %s", tt.wantMethod, tt.wantURI, rec.method, rec.uri)
			}
		})
	}
}

func TestReset_PostsWithoutBody(t *testing.T) {
	srv, rec, _ := newServer(t, http.StatusOK, `{"message":"reset complete"}`)

	out, err := newClient(srv).Reset(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.method != http.MethodPost || rec.uri != "/external/reset" {
		t.Errorf("expected POST /external/reset, got %s %s", rec.method, rec.uri)
	}
	if rec.body != "" {
		t.Errorf("expected empty body, got %q", rec.body)
	}
	if out["message"] != "reset complete" {
		t.Errorf("unexpected reset payload %v", out)
	}
}

func TestInitiate_SendsJSONBody(t *testing.T) {
	srv, rec, _ := newServer(t, http.StatusOK, `{"transfer_id":"trx-9","status":"PENDING","amount":250.75}`)

	resp, err := newClient(srv).Transfers().Initiate(context.Background(), domain.TransferRequest{
		Amount:             decimal.RequireFromString("250.75"),
		Currency:           "USD",
		Direction:          domain.DirectionOutbound,
		TransferType:       "ACH",
		SourceAccount:      domain.ExternalAccountDetails{AccountNumber: "1234567890"},
		DestinationAccount: domain.ExternalAccountDetails{AccountNumber: "9876543210"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TransferID != "trx-9" {
		t.Errorf("expected trx-9, got %s", resp.TransferID)
	}

	var sent map[string]any
	if err := json.Unmarshal([]byte(rec.body), &sent); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if sent["amount"] != 250.75 {
		t.Errorf("expected amount sent as a JSON number, got %v", sent["amount"])
	}
	if rec.uri != "/external/transfers/initiate" {
		t.Errorf("unexpected path %s", rec.uri)
	}
}

func TestBatch_WrapsTransfers(t *testing.T) {
	srv, rec, _ := newServer(t, http.StatusOK, `{"batch_id":"b-1","total_transfers":2,"accepted":2,"rejected":0}`)

	_, err := newClient(srv).Transfers().Batch(context.Background(), []domain.TransferRequest{
		{Amount: decimal.NewFromInt(1)},
		{Amount: decimal.NewFromInt(2)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sent struct {
		Transfers []map[string]any `json:"transfers"`
	}
	if err := json.Unmarshal([]byte(rec.body), &sent); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if len(sent.Transfers) != 2 {
		t.Errorf("expected 2 wrapped transfers, got %d", len(sent.Transfers))
	}
}

func TestAPIError_StructuredBody(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		payload     string
		wantMessage string
		wantCode    string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"code":"UNAUTHORIZED","message":"Invalid API key","request_id":"req-1","timestamp":"2026-02-24T00:00:00Z"}}`, "Invalid API key", "UNAUTHORIZED"},
		{"forbidden", http.StatusForbidden, `{"error":{"code":"FORBIDDEN","message":"Access denied"}}`, "Access denied", "FORBIDDEN"},
		{"not found", http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"Transfer not found"}}`, "Transfer not found", "NOT_FOUND"},
		{"malformed", http.StatusInternalServerError, `not json`, "Internal Server Error", "500"},
		{"no message", http.StatusServiceUnavailable, `{"error":{"code":"DOWN"}}`, "API error 503", "DOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, calls := newServer(t, tt.status, tt.payload)

			_, err := newClient(srv).Transfers().Get(context.Background(), "trx-404")

			var apiErr *domain.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *domain.APIError, got %T: %v", err, err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, apiErr.Status)
			}
			if apiErr.Error() != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, apiErr.Error())
			}
			if apiErr.Body.Error.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, apiErr.Body.Error.Code)
			}
			if *calls != 1 {
				t.Errorf("expected no retry, got %d requests", *calls)
			}
		})
	}
}

func TestTransportError_NotWrapped(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	c := northwind.NewClient(&http.Client{Timeout: time.Second}, "http://"+addr, "k", zap.NewNop())
	_, err = c.Health(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport error must not be an APIError: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(block) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newClient(srv).Health(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestMetrics_RecordedPerOperation(t *testing.T) {
	srv, _, _ := newServer(t, http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"nope"}}`)
	metrics := observability.NewMetrics()

	_, _ = newClient(srv, northwind.WithMetrics(metrics)).Transfers().Get(context.Background(), "x")

	snap, err := metrics.UpstreamSnapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	op := snap.Operations["transfers.get"]
	if op.Calls != 1 || op.APIErrors != 1 || op.TransportErrors != 0 {
		t.Errorf("unexpected operation metrics %+v", op)
	}
}

func TestCircuitBreaker_5xxStillNormalized(t *testing.T) {
	srv, _, calls := newServer(t, http.StatusBadGateway, `{"error":{"code":"BAD_GATEWAY","message":"upstream down"}}`)
	cb := resilience.NewCircuitBreaker("northwind-test", zap.NewNop())
	c := newClient(srv, northwind.WithCircuitBreaker(cb))

	for i := 0; i < 5; i++ {
		_, err := c.Health(context.Background())
		var apiErr *domain.APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway {
			t.Fatalf("call %d: expected 502 APIError, got %v", i, err)
		}
	}

	_, err := c.Health(context.Background())
	if !resilience.IsBreakerRejection(err) {
		t.Errorf("expected breaker rejection once open, got %v", err)
	}
	if *calls != 5 {
		t.Errorf("expected 5 requests to reach the server, got %d", *calls)
	}
}

func TestCircuitBreaker_4xxDoesNotTrip(t *testing.T) {
	srv, _, calls := newServer(t, http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"nope"}}`)
	cb := resilience.NewCircuitBreaker("northwind-test", zap.NewNop())
	c := newClient(srv, northwind.WithCircuitBreaker(cb))

	for i := 0; i < 10; i++ {
		_, _ = c.Transfers().Get(context.Background(), "x")
	}
	if *calls != 10 {
		t.Errorf("expected every 4xx call to reach the server, got %d", *calls)
	}
}

func TestBulkhead_ReleasesSlot(t *testing.T) {
	srv, _, _ := newServer(t, http.StatusOK, `{"status":"healthy"}`)
	bh := resilience.NewBulkhead(1)
	c := newClient(srv, northwind.WithBulkhead(bh))

	for i := 0; i < 3; i++ {
		if _, err := c.Health(context.Background()); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if bh.InFlight() != 0 {
		t.Errorf("expected all slots released, %d held", bh.InFlight())
	}
}
