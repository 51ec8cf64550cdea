// Package domain defines the entities exchanged with the Northwind banking API
// and the display-only view models the BFA derives from them.
//
// Importing domain sets decimal.MarshalJSONWithoutQuotes process-wide, so
// every decimal.Decimal in the binary encodes as a JSON number.
package domain

import "github.com/shopspring/decimal"

func init() {
	// Northwind exchanges money as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ============================================================
// Accounts
// ============================================================

// PaginationInfo is the paging envelope Northwind attaches to list responses.
type PaginationInfo struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// EmptyPagination is the pagination reported when nothing could be loaded.
func EmptyPagination() PaginationInfo {
	return PaginationInfo{Page: 1, PerPage: 0, Total: 0}
}

// AccountSummary is an account as listed by Northwind. Owned by the remote system.
type AccountSummary struct {
	AccountID         string          `json:"account_id"`
	AccountNumber     string          `json:"account_number"`
	RoutingNumber     string          `json:"routing_number"`
	AccountType       string          `json:"account_type"` // CHECKING, SAVINGS, MONEY_MARKET, CD, IRA, ... (not constrained)
	AccountStatus     string          `json:"account_status"`
	AccountHolderName string          `json:"account_holder_name"`
	Balance           decimal.Decimal `json:"balance"`
	Currency          string          `json:"currency"`
	OpenedDate        string          `json:"opened_date"`
}

// AccountListResponse is returned by GET /external/accounts.
type AccountListResponse struct {
	Accounts   []AccountSummary `json:"accounts"`
	Pagination PaginationInfo   `json:"pagination"`
}

// AccountFilter narrows GET /external/accounts. Nil fields are not sent.
type AccountFilter struct {
	Limit  *int
	Offset *int
	Type   *string
	Status *string
}

// AccountBalanceResponse is returned by GET /external/accounts/{n}/balance.
type AccountBalanceResponse struct {
	AccountNumber    string          `json:"account_number"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	Currency         string          `json:"currency"`
	LastUpdated      string          `json:"last_updated"`
}

// AccountValidationRequest is the body of POST /external/accounts/validate.
type AccountValidationRequest struct {
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
	RoutingNumber     string `json:"routing_number"`
}

// AccountDetails describes one side of a transfer as reported by Northwind.
type AccountDetails struct {
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
	InstitutionName   string `json:"institution_name"`
	RoutingNumber     string `json:"routing_number"`
}

// ExternalAccountDetails describes one side of a transfer in a request.
type ExternalAccountDetails struct {
	AccountNumber     string `json:"account_number"`
	RoutingNumber     string `json:"routing_number,omitempty"`
	AccountHolderName string `json:"account_holder_name,omitempty"`
	InstitutionName   string `json:"institution_name,omitempty"`
}

// ============================================================
// Validation
// ============================================================

// Issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// ValidationIssue is a single finding of a remote validation.
type ValidationIssue struct {
	Code     string `json:"code"`
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ValidationResult is a pass/fail flag plus ordered issues.
type ValidationResult struct {
	Valid          bool              `json:"valid"`
	Issues         []ValidationIssue `json:"issues"`
	ValidationTime string            `json:"validation_time"`
	Metadata       map[string]any    `json:"metadata,omitempty"`
}

// ValidationResponse wraps a ValidationResult.
type ValidationResponse struct {
	Validation ValidationResult `json:"validation"`
	Data       any              `json:"data,omitempty"`
}

// ============================================================
// Enriched accounts (display only)
// ============================================================

// EnrichedAccount is an AccountSummary plus a derived, human friendly name.
// The name depends on the sibling accounts of the batch it was enriched in.
type EnrichedAccount struct {
	AccountSummary
	DisplayName string `json:"displayName"`
}

// Ptr returns a pointer to v. Handy for building filters.
func Ptr[T any](v T) *T {
	return &v
}
