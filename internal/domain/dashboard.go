package domain

import "github.com/shopspring/decimal"

// ============================================================
// Mock transactions
// ============================================================

// Transaction types of a mock entry.
const (
	TxCredit = "credit"
	TxDebit  = "debit"
)

// TransactionCategory is the coarse category shown next to a mock transaction.
type TransactionCategory string

const (
	CategoryRestaurant TransactionCategory = "restaurant"
	CategoryStore      TransactionCategory = "store"
	CategoryIncome     TransactionCategory = "income"
	CategoryPayment    TransactionCategory = "payment"
	CategoryTransfer   TransactionCategory = "transfer"
)

// MockTransaction is a synthetic history entry. Northwind has no
// transaction-history endpoint, so these exist purely as UI filler and are
// unrelated to any real account.
type MockTransaction struct {
	ID              string              `json:"id"`
	Description     string              `json:"description"`
	Amount          decimal.Decimal     `json:"amount"`
	Date            string              `json:"date"` // YYYY-MM-DD
	Type            string              `json:"type"` // credit, debit
	TransactionType TransactionCategory `json:"transactionType"`
	AccountLabel    string              `json:"accountLabel"`
}

// ============================================================
// Dashboard (page load)
// ============================================================

// AccountView is an enriched account with preformatted display fields.
type AccountView struct {
	EnrichedAccount
	FormattedBalance string `json:"formattedBalance"`
	TypeName         string `json:"typeName"`
	OpenedOn         string `json:"openedOn"`
}

// TransferView is an enriched transfer with preformatted display fields.
type TransferView struct {
	EnrichedTransfer
	FormattedAmount string `json:"formattedAmount"`
	InitiatedOn     string `json:"initiatedOn"`
}

// Dashboard is everything the single page needs on load.
// On failure all lists are empty and LoadError carries the reason.
type Dashboard struct {
	Accounts            []AccountView     `json:"accounts"`
	AccountsPagination  PaginationInfo    `json:"accountsPagination"`
	Transfers           []TransferView    `json:"transfers"`
	TransfersPagination PaginationInfo    `json:"transfersPagination"`
	RecentTransactions  []MockTransaction `json:"recentTransactions"`
	LoadError           *string           `json:"loadError"`
}

// ============================================================
// Transfer form (form action)
// ============================================================

// TransferForm is the raw transfer form as submitted by the browser.
type TransferForm struct {
	FromAccountNumber string `json:"fromAccountNumber" validate:"required"`
	FromRoutingNumber string `json:"fromRoutingNumber"`
	FromAccountHolder string `json:"fromAccountHolder"`
	ToAccountNumber   string `json:"toAccountNumber" validate:"required,nefield=FromAccountNumber"`
	ToRoutingNumber   string `json:"toRoutingNumber"`
	ToAccountHolder   string `json:"toAccountHolder"`
	Amount            string `json:"amount"`
	Description       string `json:"description"`
}

// TransferResult is the outcome of a successful form submission.
type TransferResult struct {
	Success           bool            `json:"success"`
	TransferID        string          `json:"transferId"`
	Amount            decimal.Decimal `json:"amount"`
	FromAccountNumber string          `json:"fromAccountNumber"`
	ToAccountNumber   string          `json:"toAccountNumber"`
	ReferenceNumber   string          `json:"referenceNumber"`
}
