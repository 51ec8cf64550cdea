package northwind

import (
	"context"
	"net/http"
	"net/url"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
)

// TransfersService covers /external/transfers.
type TransfersService struct {
	client *Client
}

// List returns transfers, optionally filtered. A nil filter sends no query string.
func (s *TransfersService) List(ctx context.Context, filter *domain.TransferFilter) (*domain.TransferListResponse, error) {
	q := url.Values{}
	if filter != nil {
		setInt(q, "page", filter.Page)
		setInt(q, "per_page", filter.PerPage)
		setString(q, "status", filter.Status)
		setString(q, "direction", filter.Direction)
		setString(q, "date_from", filter.DateFrom)
		setString(q, "date_to", filter.DateTo)
		setString(q, "transfer_type", filter.TransferType)
	}
	return call[domain.TransferListResponse](ctx, s.client, "transfers.list", http.MethodGet, withQuery("/external/transfers", q), nil)
}

// Get returns the detailed status of one transfer.
func (s *TransfersService) Get(ctx context.Context, transferID string) (*domain.TransferStatusResponse, error) {
	return call[domain.TransferStatusResponse](ctx, s.client, "transfers.get", http.MethodGet, transferPath(transferID, ""), nil)
}

// Validate runs Northwind's checks against a transfer without initiating it.
func (s *TransfersService) Validate(ctx context.Context, req domain.TransferRequest) (*domain.ValidationResponse, error) {
	return call[domain.ValidationResponse](ctx, s.client, "transfers.validate", http.MethodPost, "/external/transfers/validate", req)
}

// Initiate submits a transfer for processing.
func (s *TransfersService) Initiate(ctx context.Context, req domain.TransferRequest) (*domain.TransferStatusResponse, error) {
	return call[domain.TransferStatusResponse](ctx, s.client, "transfers.initiate", http.MethodPost, "/external/transfers/initiate", req)
}

// Batch submits several transfers in one request. Northwind accepts at most 100.
func (s *TransfersService) Batch(ctx context.Context, transfers []domain.TransferRequest) (*domain.BatchTransferResponse, error) {
	if transfers == nil {
		transfers = []domain.TransferRequest{}
	}
	body := domain.BatchTransferRequest{Transfers: transfers}
	return call[domain.BatchTransferResponse](ctx, s.client, "transfers.batch", http.MethodPost, "/external/transfers/batch", body)
}

// Cancel cancels a pending transfer.
func (s *TransfersService) Cancel(ctx context.Context, transferID string, req domain.TransferCancelRequest) (*domain.TransferCancelResponse, error) {
	return call[domain.TransferCancelResponse](ctx, s.client, "transfers.cancel", http.MethodPost, transferPath(transferID, "/cancel"), req)
}

// Reverse requests the reversal of a completed transfer.
func (s *TransfersService) Reverse(ctx context.Context, transferID string, req domain.TransferReverseRequest) (*domain.TransferReverseResponse, error) {
	return call[domain.TransferReverseResponse](ctx, s.client, "transfers.reverse", http.MethodPost, transferPath(transferID, "/reverse"), req)
}

func transferPath(transferID, suffix string) string {
	return "/external/transfers/" + url.PathEscape(transferID) + suffix
}
