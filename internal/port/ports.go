// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service layer
// from the concrete Northwind client.
package port

import (
	"context"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
)

// AccountsGateway is the account half of the Northwind facade.
type AccountsGateway interface {
	List(ctx context.Context, filter *domain.AccountFilter) (*domain.AccountListResponse, error)
	Validate(ctx context.Context, req domain.AccountValidationRequest) (*domain.ValidationResponse, error)
	GetBalance(ctx context.Context, accountNumber string) (*domain.AccountBalanceResponse, error)
}

// TransfersGateway is the transfer half of the Northwind facade.
type TransfersGateway interface {
	List(ctx context.Context, filter *domain.TransferFilter) (*domain.TransferListResponse, error)
	Get(ctx context.Context, transferID string) (*domain.TransferStatusResponse, error)
	Validate(ctx context.Context, req domain.TransferRequest) (*domain.ValidationResponse, error)
	Initiate(ctx context.Context, req domain.TransferRequest) (*domain.TransferStatusResponse, error)
	Batch(ctx context.Context, transfers []domain.TransferRequest) (*domain.BatchTransferResponse, error)
	Cancel(ctx context.Context, transferID string, req domain.TransferCancelRequest) (*domain.TransferCancelResponse, error)
	Reverse(ctx context.Context, transferID string, req domain.TransferReverseRequest) (*domain.TransferReverseResponse, error)
}

// BankGateway covers reference data and demo operations.
type BankGateway interface {
	Health(ctx context.Context) (*domain.HealthResponse, error)
	GetBank(ctx context.Context) (*domain.BankInfoResponse, error)
	GetDomains(ctx context.Context) (*domain.DomainsResponse, error)
	Reset(ctx context.Context) (map[string]any, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
