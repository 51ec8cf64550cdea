// Package service provides the business logic layer (use cases).
// BankingService forwards account, transfer and reference-data operations to
// Northwind; DashboardService composes them into the single-page view model.
package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/observability"
	"github.com/boddenberg/northwind-bfa-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var bankTracer = otel.Tracer("service/banking")

// Cache keys for reference data.
const (
	cacheKeyBank    = "bank"
	cacheKeyDomains = "domains"
)

// BankingService orchestrates the Northwind operations exposed by the BFA.
type BankingService struct {
	accounts  port.AccountsGateway
	transfers port.TransfersGateway
	bank      port.BankGateway
	cache     port.Cache[any]
	loads     singleflight.Group
	gen       atomic.Uint64 // bumped by Reset; older fetches are not cached
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewBankingService creates a new banking service.
func NewBankingService(
	accounts port.AccountsGateway,
	transfers port.TransfersGateway,
	bank port.BankGateway,
	cache port.Cache[any],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *BankingService {
	return &BankingService{
		accounts:  accounts,
		transfers: transfers,
		bank:      bank,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
	}
}

// ============================================================
// Accounts
// ============================================================

func (s *BankingService) ListAccounts(ctx context.Context, filter *domain.AccountFilter) (*domain.AccountListResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.ListAccounts")
	defer span.End()

	return s.accounts.List(ctx, filter)
}

func (s *BankingService) ValidateAccount(ctx context.Context, req domain.AccountValidationRequest) (*domain.ValidationResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.ValidateAccount")
	defer span.End()

	return s.accounts.Validate(ctx, req)
}

func (s *BankingService) GetBalance(ctx context.Context, accountNumber string) (*domain.AccountBalanceResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.GetBalance")
	defer span.End()
	span.SetAttributes(attribute.String("account.number", accountNumber))

	if accountNumber == "" {
		return nil, &domain.ErrValidation{Field: "accountNumber", Message: "accountNumber is required"}
	}
	return s.accounts.GetBalance(ctx, accountNumber)
}

// ============================================================
// Transfers
// ============================================================

func (s *BankingService) ListTransfers(ctx context.Context, filter *domain.TransferFilter) (*domain.TransferListResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.ListTransfers")
	defer span.End()

	return s.transfers.List(ctx, filter)
}

func (s *BankingService) GetTransfer(ctx context.Context, transferID string) (*domain.TransferStatusResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.GetTransfer")
	defer span.End()
	span.SetAttributes(attribute.String("transfer.id", transferID))

	return s.transfers.Get(ctx, transferID)
}

func (s *BankingService) ValidateTransfer(ctx context.Context, req domain.TransferRequest) (*domain.ValidationResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.ValidateTransfer")
	defer span.End()

	return s.transfers.Validate(ctx, req)
}

// InitiateTransfer forwards a fully built transfer request. Form submissions
// go through DashboardService.SubmitTransfer instead.
func (s *BankingService) InitiateTransfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferStatusResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.InitiateTransfer")
	defer span.End()
	span.SetAttributes(attribute.String("transfer.reference", req.ReferenceNumber))

	return s.transfers.Initiate(ctx, req)
}

// BatchTransfers forwards up to 100 transfers. The limit is Northwind's to enforce.
func (s *BankingService) BatchTransfers(ctx context.Context, transfers []domain.TransferRequest) (*domain.BatchTransferResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.BatchTransfers")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(transfers)))

	return s.transfers.Batch(ctx, transfers)
}

func (s *BankingService) CancelTransfer(ctx context.Context, transferID string, req domain.TransferCancelRequest) (*domain.TransferCancelResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.CancelTransfer")
	defer span.End()
	span.SetAttributes(attribute.String("transfer.id", transferID))

	resp, err := s.transfers.Cancel(ctx, transferID, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("transfer cancelled",
		zap.String("transfer_id", transferID),
		zap.String("status", resp.Status),
	)
	return resp, nil
}

func (s *BankingService) ReverseTransfer(ctx context.Context, transferID string, req domain.TransferReverseRequest) (*domain.TransferReverseResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.ReverseTransfer")
	defer span.End()
	span.SetAttributes(attribute.String("transfer.id", transferID))

	resp, err := s.transfers.Reverse(ctx, transferID, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("transfer reversal requested",
		zap.String("transfer_id", transferID),
		zap.String("reversal_id", resp.ReversalID),
	)
	return resp, nil
}

// ============================================================
// Reference data (cached)
// ============================================================

// GetBank returns bank information, served from cache while fresh.
func (s *BankingService) GetBank(ctx context.Context) (*domain.BankInfoResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.GetBank")
	defer span.End()

	return cachedReference(ctx, s, cacheKeyBank, s.bank.GetBank)
}

// GetDomains returns the valid domain values, served from cache while fresh.
func (s *BankingService) GetDomains(ctx context.Context) (*domain.DomainsResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.GetDomains")
	defer span.End()

	return cachedReference(ctx, s, cacheKeyDomains, s.bank.GetDomains)
}

// cachedReference serves key from the cache while fresh. Concurrent misses on
// the same key share one upstream fetch; failures are never cached, and
// neither is a fetch that a Reset overtook.
func cachedReference[T any](ctx context.Context, s *BankingService, key string, fetch func(context.Context) (*T, error)) (*T, error) {
	if cached, ok := s.cache.Get(key); ok {
		if v, ok := cached.(*T); ok {
			s.countCache(key, true)
			return v, nil
		}
	}
	s.countCache(key, false)

	v, err, shared := s.loads.Do(key, func() (any, error) {
		gen := s.gen.Load()
		out, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if s.gen.Load() == gen {
			s.cache.Set(key, out)
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s fetch: %w", key, err)
	}
	if shared {
		s.logger.Debug("reference fetch shared", zap.String("key", key))
	}
	return v.(*T), nil
}

func (s *BankingService) countCache(key string, hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.IncrCacheHit(key)
	} else {
		s.metrics.IncrCacheMiss(key)
	}
}

// ============================================================
// Health & dev tools
// ============================================================

// UpstreamHealth forwards Northwind's own health report.
func (s *BankingService) UpstreamHealth(ctx context.Context) (*domain.HealthResponse, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.UpstreamHealth")
	defer span.End()

	return s.bank.Health(ctx)
}

// CheckUpstream calls Northwind health for the readiness endpoint. It never fails;
// problems are reported in the returned status.
func (s *BankingService) CheckUpstream(ctx context.Context) domain.ServiceHealth {
	start := time.Now()
	h := domain.ServiceHealth{Name: "northwind", Status: "healthy"}

	resp, err := s.bank.Health(ctx)
	h.LatencyMs = time.Since(start).Milliseconds()
	h.LastChecked = time.Now().UTC().Format(time.RFC3339)
	switch {
	case err != nil:
		h.Status = "unhealthy"
		h.Detail = err.Error()
	case resp.Status != "" && resp.Status != "healthy":
		h.Status = "degraded"
		h.Detail = "database: " + resp.Database
	}
	return h
}

// Reset restores Northwind's demo data and drops cached reference data.
// Fetches still in flight finish for their callers but are not cached, and
// later lookups start a fresh fetch instead of joining them.
func (s *BankingService) Reset(ctx context.Context) (map[string]any, error) {
	ctx, span := bankTracer.Start(ctx, "BankingService.Reset")
	defer span.End()

	out, err := s.bank.Reset(ctx)
	if err != nil {
		return nil, err
	}
	s.gen.Add(1)
	for _, key := range []string{cacheKeyBank, cacheKeyDomains} {
		s.loads.Forget(key)
		s.cache.Delete(key)
	}
	s.logger.Info("northwind demo data reset")
	return out, nil
}
