package domain

import "github.com/shopspring/decimal"

// ============================================================
// Reference data (health, bank info, domains)
// ============================================================

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status           string            `json:"status"`
	Database         string            `json:"database"`
	Version          string            `json:"version"`
	Timestamp        string            `json:"timestamp"`
	Components       map[string]string `json:"components"`
	TransferWorkflow map[string]any    `json:"transfer_workflow"`
}

// RoutingNumberInfo describes one routing number of the bank.
type RoutingNumberInfo struct {
	RoutingNumber string   `json:"routing_number"`
	Status        string   `json:"status"` // current, legacy
	Description   string   `json:"description"`
	ValidFor      []string `json:"valid_for"`
	AcquiredFrom  string   `json:"acquired_from,omitempty"`
}

// Institution is the bank's identity block.
type Institution struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Established string `json:"established"`
}

// BankServices lists which rails the bank supports.
type BankServices struct {
	ACHTransfers    bool `json:"ach_transfers"`
	WireTransfers   bool `json:"wire_transfers"`
	CheckProcessing bool `json:"check_processing"`
	MobileBanking   bool `json:"mobile_banking"`
}

// BusinessHours holds human readable opening/cutoff hours.
type BusinessHours struct {
	CustomerService string `json:"customer_service"`
	WireCutoff      string `json:"wire_cutoff"`
}

// BankInfoResponse is returned by GET /bank.
type BankInfoResponse struct {
	Institution    Institution         `json:"institution"`
	RoutingNumbers []RoutingNumberInfo `json:"routing_numbers"`
	Services       BankServices        `json:"services"`
	BusinessHours  BusinessHours       `json:"business_hours"`
}

// DomainValue is one allowed value of an enumerated field.
type DomainValue struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// TransferTypeValue is an allowed transfer type with its limits.
type TransferTypeValue struct {
	Code           string          `json:"code"`
	DisplayName    string          `json:"display_name"`
	Description    string          `json:"description"`
	Fee            decimal.Decimal `json:"fee"`
	MinAmount      decimal.Decimal `json:"min_amount"`
	MaxAmount      decimal.Decimal `json:"max_amount"`
	ProcessingDays int             `json:"processing_days"`
}

// DomainsResponse is returned by GET /domains.
type DomainsResponse struct {
	AccountTypes    []DomainValue       `json:"account_types"`
	AccountStatuses []DomainValue       `json:"account_statuses"`
	Directions      []DomainValue       `json:"directions"`
	TransferTypes   []TransferTypeValue `json:"transfer_types"`
}
