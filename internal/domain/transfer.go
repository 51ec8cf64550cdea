package domain

import "github.com/shopspring/decimal"

// ============================================================
// Transfers
// ============================================================

// Transfer directions.
const (
	DirectionInbound  = "INBOUND"
	DirectionOutbound = "OUTBOUND"
)

// Transfer statuses as reported by Northwind. The state machine is owned remotely.
const (
	TransferPending    = "PENDING"
	TransferProcessing = "PROCESSING"
	TransferCompleted  = "COMPLETED"
	TransferFailed     = "FAILED"
	TransferCancelled  = "CANCELLED"
)

// TransferRequest is the body of validate/initiate and an element of a batch.
type TransferRequest struct {
	Amount             decimal.Decimal        `json:"amount"`
	Currency           string                 `json:"currency"`
	Description        string                 `json:"description"`
	Direction          string                 `json:"direction"`
	TransferType       string                 `json:"transfer_type"`
	ReferenceNumber    string                 `json:"reference_number"`
	SourceAccount      ExternalAccountDetails `json:"source_account"`
	DestinationAccount ExternalAccountDetails `json:"destination_account"`
	ScheduledDate      string                 `json:"scheduled_date,omitempty"`
}

// StatusHistoryEntry is one step of a transfer's lifecycle.
type StatusHistoryEntry struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// TransferStatusResponse is the detailed view of a single transfer.
type TransferStatusResponse struct {
	TransferID             string               `json:"transfer_id"`
	Status                 string               `json:"status"`
	TransferType           string               `json:"transfer_type"`
	Direction              string               `json:"direction"`
	Amount                 decimal.Decimal      `json:"amount"`
	Currency               string               `json:"currency"`
	Fee                    decimal.Decimal      `json:"fee"`
	ExchangeRate           decimal.Decimal      `json:"exchange_rate"`
	Description            string               `json:"description"`
	ReferenceNumber        string               `json:"reference_number"`
	InitiatedDate          string               `json:"initiated_date"`
	ProcessingDate         string               `json:"processing_date"`
	ExpectedCompletionDate string               `json:"expected_completion_date"`
	CompletedDate          string               `json:"completed_date"`
	SourceAccount          AccountDetails       `json:"source_account"`
	DestinationAccount     AccountDetails       `json:"destination_account"`
	StatusHistory          []StatusHistoryEntry `json:"status_history"`
	RetryCount             int                  `json:"retry_count"`
	ErrorCode              string               `json:"error_code,omitempty"`
	ErrorMessage           string               `json:"error_message,omitempty"`
}

// TransferSummary is a transfer as listed by GET /external/transfers.
type TransferSummary struct {
	TransferID             string          `json:"transfer_id"`
	Status                 string          `json:"status"`
	TransferType           string          `json:"transfer_type"`
	Direction              string          `json:"direction"`
	Amount                 decimal.Decimal `json:"amount"`
	Currency               string          `json:"currency"`
	Fee                    decimal.Decimal `json:"fee"`
	Description            string          `json:"description"`
	ReferenceNumber        string          `json:"reference_number"`
	InitiatedDate          string          `json:"initiated_date"`
	ProcessingDate         string          `json:"processing_date"`
	ExpectedCompletionDate string          `json:"expected_completion_date"`
	CompletedDate          string          `json:"completed_date"`
	SourceAccount          AccountDetails  `json:"source_account"`
	DestinationAccount     AccountDetails  `json:"destination_account"`
}

// TransferListResponse is returned by GET /external/transfers.
type TransferListResponse struct {
	Transfers  []TransferSummary `json:"transfers"`
	Pagination PaginationInfo    `json:"pagination"`
}

// TransferFilter narrows GET /external/transfers. Nil fields are not sent.
type TransferFilter struct {
	Page         *int
	PerPage      *int
	Status       *string
	Direction    *string
	DateFrom     *string
	DateTo       *string
	TransferType *string
}

// BatchTransferRequest wraps up to 100 transfers. The limit is enforced remotely.
type BatchTransferRequest struct {
	Transfers []TransferRequest `json:"transfers"`
}

// BatchTransferItem is the per-transfer outcome of a batch.
type BatchTransferItem struct {
	TransferID      string `json:"transfer_id"`
	Status          string `json:"status"`
	ReferenceNumber string `json:"reference_number"`
	Error           string `json:"error,omitempty"`
}

// BatchTransferResponse is returned by POST /external/transfers/batch.
type BatchTransferResponse struct {
	BatchID        string              `json:"batch_id"`
	TotalTransfers int                 `json:"total_transfers"`
	Accepted       int                 `json:"accepted"`
	Rejected       int                 `json:"rejected"`
	Transfers      []BatchTransferItem `json:"transfers"`
}

// TransferCancelRequest is the body of POST /external/transfers/{id}/cancel.
type TransferCancelRequest struct {
	Reason string `json:"reason"`
}

// TransferCancelResponse is returned after a cancellation.
type TransferCancelResponse struct {
	TransferID         string `json:"transfer_id"`
	Status             string `json:"status"`
	CancellationReason string `json:"cancellation_reason"`
	CancelledAt        string `json:"cancelled_at"`
}

// TransferReverseRequest is the body of POST /external/transfers/{id}/reverse.
type TransferReverseRequest struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// TransferReverseResponse is returned after a reversal request.
type TransferReverseResponse struct {
	ReversalID             string `json:"reversal_id"`
	TransferID             string `json:"transfer_id"`
	Status                 string `json:"status"`
	ExpectedCompletionDate string `json:"expected_completion_date"`
}

// EnrichedTransfer is a TransferSummary with display names for both endpoints.
type EnrichedTransfer struct {
	TransferSummary
	SourceDisplayName string `json:"sourceDisplayName"`
	DestDisplayName   string `json:"destDisplayName"`
}
