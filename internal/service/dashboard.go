package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/observability"
	"github.com/boddenberg/northwind-bfa-go/internal/port"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("service/dashboard")

var validate = validator.New()

// Dashboard page sizes.
const (
	dashboardAccountLimit   = 100
	dashboardTransfersLimit = 20
)

// Transfer form defaults and user-facing messages.
const (
	DefaultTransferDescription = "Balance Transfer"

	MsgLoadFailed     = "Failed to load account data."
	MsgSelectAccounts = "Please select both From and To accounts."
	MsgSameAccount    = "Source and destination accounts must be different."
	MsgInvalidAmount  = "Please enter a valid transfer amount."
	MsgTransferFailed = "Transfer failed. Please try again."
)

const (
	transferCurrency     = "USD"
	transferType         = "ACH"
	referenceSuffixChars = 5
)

// DashboardService builds the single-page view model and handles the
// transfer form.
type DashboardService struct {
	accounts  port.AccountsGateway
	transfers port.TransfersGateway
	labels    *TypeLabels
	mockSeed  uint64
	metrics   *observability.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewDashboardService creates the dashboard service. mockSeed fixes the
// account labels of the mock transactions across page loads.
func NewDashboardService(
	accounts port.AccountsGateway,
	transfers port.TransfersGateway,
	labels *TypeLabels,
	mockSeed uint64,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *DashboardService {
	if labels == nil {
		labels = DefaultTypeLabels()
	}
	return &DashboardService{
		accounts:  accounts,
		transfers: transfers,
		labels:    labels,
		mockSeed:  mockSeed,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Load fetches accounts and recent transfers concurrently. If either fetch
// fails the whole load is discarded and the dashboard carries LoadError
// instead; Load itself never returns an error.
func (s *DashboardService) Load(ctx context.Context) *domain.Dashboard {
	ctx, span := tracer.Start(ctx, "DashboardService.Load")
	defer span.End()

	var (
		accounts  *domain.AccountListResponse
		transfers *domain.TransferListResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		resp, err := s.accounts.List(gCtx, &domain.AccountFilter{Limit: domain.Ptr(dashboardAccountLimit)})
		if err != nil {
			s.logger.Error("failed to fetch accounts", zap.Error(err))
			return err
		}
		accounts = resp
		return nil
	})

	g.Go(func() error {
		resp, err := s.transfers.List(gCtx, &domain.TransferFilter{PerPage: domain.Ptr(dashboardTransfersLimit)})
		if err != nil {
			s.logger.Error("failed to fetch transfers", zap.Error(err))
			return err
		}
		transfers = resp
		return nil
	})

	if err := g.Wait(); err != nil {
		msg := err.Error()
		if msg == "" {
			msg = MsgLoadFailed
		}
		span.SetAttributes(attribute.String("dashboard.load_error", msg))
		return emptyDashboard(msg)
	}

	enriched := EnrichAccounts(accounts.Accounts, s.labels)
	views := make([]domain.AccountView, 0, len(enriched))
	for _, a := range enriched {
		views = append(views, domain.AccountView{
			EnrichedAccount:  a,
			FormattedBalance: FormatCurrency(a.Balance, a.Currency),
			TypeName:         FormatAccountType(a.AccountType),
			OpenedOn:         FormatDateLong(a.OpenedDate),
		})
	}

	transferViews := make([]domain.TransferView, 0, len(transfers.Transfers))
	for _, t := range EnrichTransfers(transfers.Transfers, enriched) {
		transferViews = append(transferViews, domain.TransferView{
			EnrichedTransfer: t,
			FormattedAmount:  FormatCurrency(t.Amount, t.Currency),
			InitiatedOn:      FormatDate(t.InitiatedDate),
		})
	}

	span.SetAttributes(
		attribute.Int("dashboard.accounts", len(views)),
		attribute.Int("dashboard.transfers", len(transferViews)),
	)

	return &domain.Dashboard{
		Accounts:            views,
		AccountsPagination:  accounts.Pagination,
		Transfers:           transferViews,
		TransfersPagination: transfers.Pagination,
		RecentTransactions:  s.RecentTransactions(),
	}
}

func emptyDashboard(loadError string) *domain.Dashboard {
	return &domain.Dashboard{
		Accounts:            []domain.AccountView{},
		AccountsPagination:  domain.EmptyPagination(),
		Transfers:           []domain.TransferView{},
		TransfersPagination: domain.EmptyPagination(),
		RecentTransactions:  []domain.MockTransaction{},
		LoadError:           &loadError,
	}
}

// RecentTransactions returns the mock transaction history. The labels are
// drawn from a source seeded identically on every call.
func (s *DashboardService) RecentTransactions() []domain.MockTransaction {
	return MockTransactions(s.labels, rand.New(rand.NewPCG(s.mockSeed, 0)))
}

func (s *DashboardService) countSubmission(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrSubmission(outcome)
	}
}

// SubmitTransfer validates the transfer form and initiates an outbound ACH
// transfer. Invalid input yields *domain.ErrValidation without contacting
// Northwind; a failed initiation yields *domain.ErrSubmission.
func (s *DashboardService) SubmitTransfer(ctx context.Context, form domain.TransferForm) (*domain.TransferResult, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.SubmitTransfer")
	defer span.End()

	amount, err := validateTransferForm(form)
	if err != nil {
		s.countSubmission(observability.SubmissionInvalid)
		return nil, err
	}

	description := strings.TrimSpace(form.Description)
	if description == "" {
		description = DefaultTransferDescription
	}

	ref := s.referenceNumber()
	span.SetAttributes(attribute.String("transfer.reference", ref))

	result, err := s.transfers.Initiate(ctx, domain.TransferRequest{
		Amount:          amount,
		Currency:        transferCurrency,
		Description:     description,
		Direction:       domain.DirectionOutbound,
		TransferType:    transferType,
		ReferenceNumber: ref,
		SourceAccount: domain.ExternalAccountDetails{
			AccountNumber:     form.FromAccountNumber,
			RoutingNumber:     form.FromRoutingNumber,
			AccountHolderName: form.FromAccountHolder,
		},
		DestinationAccount: domain.ExternalAccountDetails{
			AccountNumber:     form.ToAccountNumber,
			RoutingNumber:     form.ToRoutingNumber,
			AccountHolderName: form.ToAccountHolder,
		},
	})
	if err != nil {
		s.countSubmission(observability.SubmissionFailed)
		s.logger.Error("transfer initiation failed",
			zap.String("reference_number", ref),
			zap.Error(err),
		)
		msg := err.Error()
		if msg == "" {
			msg = MsgTransferFailed
		}
		return nil, &domain.ErrSubmission{Message: msg, Err: err}
	}

	s.countSubmission(observability.SubmissionSuccess)
	s.logger.Info("transfer initiated",
		zap.String("transfer_id", result.TransferID),
		zap.String("reference_number", ref),
		zap.String("status", result.Status),
	)

	return &domain.TransferResult{
		Success:           true,
		TransferID:        result.TransferID,
		Amount:            amount,
		FromAccountNumber: form.FromAccountNumber,
		ToAccountNumber:   form.ToAccountNumber,
		ReferenceNumber:   ref,
	}, nil
}

// validateTransferForm checks account selection first, then the amount,
// and returns the parsed amount.
func validateTransferForm(form domain.TransferForm) (decimal.Decimal, error) {
	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return decimal.Zero, err
		}
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return decimal.Zero, &domain.ErrValidation{Field: fe.Field(), Message: MsgSelectAccounts}
			}
		}
		return decimal.Zero, &domain.ErrValidation{Field: verrs[0].Field(), Message: MsgSameAccount}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(form.Amount))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, &domain.ErrValidation{Field: "Amount", Message: MsgInvalidAmount}
	}
	return amount, nil
}

// referenceNumber returns "TRF-<unix millis>-<5 uppercase alphanumerics>".
func (s *DashboardService) referenceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:referenceSuffixChars]
	return fmt.Sprintf("TRF-%d-%s", s.now().UnixMilli(), suffix)
}
