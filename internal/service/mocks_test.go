package service_test

import (
	"context"
	"sync"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"

	"github.com/shopspring/decimal"
)

// --- Mocks ---

type mockAccounts struct {
	list    *domain.AccountListResponse
	listErr error
	balance *domain.AccountBalanceResponse
	err     error

	mu         sync.Mutex
	lastFilter *domain.AccountFilter
}

func (m *mockAccounts) List(_ context.Context, filter *domain.AccountFilter) (*domain.AccountListResponse, error) {
	m.mu.Lock()
	m.lastFilter = filter
	m.mu.Unlock()
	return m.list, m.listErr
}

func (m *mockAccounts) Validate(_ context.Context, _ domain.AccountValidationRequest) (*domain.ValidationResponse, error) {
	return &domain.ValidationResponse{Validation: domain.ValidationResult{Valid: true}}, m.err
}

func (m *mockAccounts) GetBalance(_ context.Context, _ string) (*domain.AccountBalanceResponse, error) {
	return m.balance, m.err
}

type mockTransfers struct {
	list        *domain.TransferListResponse
	listErr     error
	initiated   *domain.TransferStatusResponse
	initiateErr error

	mu            sync.Mutex
	lastFilter    *domain.TransferFilter
	initiateCalls []domain.TransferRequest
}

func (m *mockTransfers) List(_ context.Context, filter *domain.TransferFilter) (*domain.TransferListResponse, error) {
	m.mu.Lock()
	m.lastFilter = filter
	m.mu.Unlock()
	return m.list, m.listErr
}

func (m *mockTransfers) Get(_ context.Context, id string) (*domain.TransferStatusResponse, error) {
	return &domain.TransferStatusResponse{TransferID: id}, nil
}

func (m *mockTransfers) Validate(_ context.Context, _ domain.TransferRequest) (*domain.ValidationResponse, error) {
	return &domain.ValidationResponse{}, nil
}

func (m *mockTransfers) Initiate(_ context.Context, req domain.TransferRequest) (*domain.TransferStatusResponse, error) {
	m.mu.Lock()
	m.initiateCalls = append(m.initiateCalls, req)
	m.mu.Unlock()
	return m.initiated, m.initiateErr
}

func (m *mockTransfers) Batch(_ context.Context, transfers []domain.TransferRequest) (*domain.BatchTransferResponse, error) {
	return &domain.BatchTransferResponse{TotalTransfers: len(transfers)}, nil
}

func (m *mockTransfers) Cancel(_ context.Context, id string, req domain.TransferCancelRequest) (*domain.TransferCancelResponse, error) {
	return &domain.TransferCancelResponse{TransferID: id, Status: domain.TransferCancelled, CancellationReason: req.Reason}, nil
}

func (m *mockTransfers) Reverse(_ context.Context, id string, _ domain.TransferReverseRequest) (*domain.TransferReverseResponse, error) {
	return &domain.TransferReverseResponse{TransferID: id, ReversalID: "rev-" + id}, nil
}

type mockBank struct {
	bank    *domain.BankInfoResponse
	domains *domain.DomainsResponse
	health  *domain.HealthResponse
	err     error

	bankCalls    int
	domainsCalls int
	resetCalls   int
}

func (m *mockBank) Health(_ context.Context) (*domain.HealthResponse, error) {
	return m.health, m.err
}

func (m *mockBank) GetBank(_ context.Context) (*domain.BankInfoResponse, error) {
	m.bankCalls++
	return m.bank, m.err
}

func (m *mockBank) GetDomains(_ context.Context) (*domain.DomainsResponse, error) {
	m.domainsCalls++
	return m.domains, m.err
}

func (m *mockBank) Reset(_ context.Context) (map[string]any, error) {
	m.resetCalls++
	return map[string]any{"message": "reset"}, m.err
}

// --- Fixtures ---

var (
	rawChecking = domain.AccountSummary{
		AccountID:         "acct-001",
		AccountNumber:     "1234567890",
		RoutingNumber:     "021000021",
		AccountType:       "CHECKING",
		AccountStatus:     "ACTIVE",
		AccountHolderName: "Jane Doe",
		Balance:           decimal.NewFromInt(5000),
		Currency:          "USD",
		OpenedDate:        "2020-01-15",
	}
	rawSavings = domain.AccountSummary{
		AccountID:         "acct-002",
		AccountNumber:     "9876543210",
		RoutingNumber:     "021000021",
		AccountType:       "SAVINGS",
		AccountStatus:     "ACTIVE",
		AccountHolderName: "Jane Doe",
		Balance:           decimal.RequireFromString("12500.5"),
		Currency:          "USD",
		OpenedDate:        "2021-06-01",
	}
	rawInactive = domain.AccountSummary{
		AccountID:         "acct-003",
		AccountNumber:     "1111222233",
		RoutingNumber:     "021000021",
		AccountType:       "CHECKING",
		AccountStatus:     "CLOSED",
		AccountHolderName: "Jane Doe",
		Balance:           decimal.Zero,
		Currency:          "USD",
		OpenedDate:        "2019-03-10",
	}
	rawTransfer = domain.TransferSummary{
		TransferID:         "trx-001",
		Status:             domain.TransferCompleted,
		TransferType:       "ACH",
		Direction:          domain.DirectionOutbound,
		Amount:             decimal.RequireFromString("250.75"),
		Currency:           "USD",
		InitiatedDate:      "2026-02-20T14:30:00Z",
		SourceAccount:      domain.AccountDetails{AccountNumber: "1234567890"},
		DestinationAccount: domain.AccountDetails{AccountNumber: "5555555555"},
	}
)
