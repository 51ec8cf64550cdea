package northwind

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
)

// AccountsService covers /external/accounts.
type AccountsService struct {
	client *Client
}

// List returns accounts, optionally filtered. A nil filter sends no query string.
func (s *AccountsService) List(ctx context.Context, filter *domain.AccountFilter) (*domain.AccountListResponse, error) {
	q := url.Values{}
	if filter != nil {
		setInt(q, "limit", filter.Limit)
		setInt(q, "offset", filter.Offset)
		setString(q, "type", filter.Type)
		setString(q, "status", filter.Status)
	}
	return call[domain.AccountListResponse](ctx, s.client, "accounts.list", http.MethodGet, withQuery("/external/accounts", q), nil)
}

// Validate checks an account holder, number and routing number combination.
func (s *AccountsService) Validate(ctx context.Context, req domain.AccountValidationRequest) (*domain.ValidationResponse, error) {
	return call[domain.ValidationResponse](ctx, s.client, "accounts.validate", http.MethodPost, "/external/accounts/validate", req)
}

// GetBalance returns the current and available balance of an account.
func (s *AccountsService) GetBalance(ctx context.Context, accountNumber string) (*domain.AccountBalanceResponse, error) {
	path := "/external/accounts/" + url.PathEscape(accountNumber) + "/balance"
	return call[domain.AccountBalanceResponse](ctx, s.client, "accounts.balance", http.MethodGet, path, nil)
}

// withQuery appends q to path. Empty values leave the path untouched.
func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func setInt(q url.Values, key string, v *int) {
	if v != nil {
		q.Set(key, strconv.Itoa(*v))
	}
}

func setString(q url.Values, key string, v *string) {
	if v != nil {
		q.Set(key, *v)
	}
}
