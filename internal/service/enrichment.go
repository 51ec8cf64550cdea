package service

import (
	"fmt"
	"strings"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
)

// ExternalBankName labels a transfer endpoint that is not one of the listed accounts.
const ExternalBankName = "External Bank"

// TypeLabel maps one canonical (uppercase) account type to its friendly label.
type TypeLabel struct {
	Type  string
	Label string
}

// TypeLabels is an immutable, ordered account-type label table.
// Build it once at startup and share it freely.
type TypeLabels struct {
	byType map[string]string
	labels []string
}

// NewTypeLabels builds a label table. Types are matched case-insensitively;
// a repeated type keeps its first label.
func NewTypeLabels(entries ...TypeLabel) *TypeLabels {
	t := &TypeLabels{byType: make(map[string]string, len(entries))}
	for _, e := range entries {
		key := strings.ToUpper(e.Type)
		if _, dup := t.byType[key]; dup {
			continue
		}
		t.byType[key] = e.Label
		t.labels = append(t.labels, e.Label)
	}
	return t
}

// DefaultTypeLabels returns the labels for the account types Northwind knows.
func DefaultTypeLabels() *TypeLabels {
	return NewTypeLabels(
		TypeLabel{"CHECKING", "Checking Account"},
		TypeLabel{"SAVINGS", "Savings Account"},
		TypeLabel{"MONEY_MARKET", "Money Market Account"},
		TypeLabel{"CD", "Certificate of Deposit"},
		TypeLabel{"IRA", "IRA Account"},
		TypeLabel{"BUSINESS_CHECKING", "Business Checking"},
		TypeLabel{"BUSINESS_SAVINGS", "Business Savings"},
	)
}

// Label returns the friendly label for accountType, or "<accountType> Account"
// in the caller's casing when the type is unknown.
func (t *TypeLabels) Label(accountType string) string {
	if l, ok := t.byType[strings.ToUpper(accountType)]; ok {
		return l
	}
	return accountType + " Account"
}

// Labels returns every known label in table order. The slice is a copy.
func (t *TypeLabels) Labels() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

// EnrichAccounts attaches a display name to every account of the batch.
// Types occurring more than once get a 1-based suffix in input order, so the
// result depends on the whole batch and must be recomputed when it changes.
// A nil labels table means DefaultTypeLabels.
func EnrichAccounts(accounts []domain.AccountSummary, labels *TypeLabels) []domain.EnrichedAccount {
	if labels == nil {
		labels = DefaultTypeLabels()
	}

	counts := make(map[string]int, len(accounts))
	for _, a := range accounts {
		counts[strings.ToUpper(a.AccountType)]++
	}

	seen := make(map[string]int, len(counts))
	out := make([]domain.EnrichedAccount, 0, len(accounts))
	for _, a := range accounts {
		key := strings.ToUpper(a.AccountType)
		name := labels.Label(a.AccountType)
		if counts[key] > 1 {
			seen[key]++
			name = fmt.Sprintf("%s %d", name, seen[key])
		}
		out = append(out, domain.EnrichedAccount{AccountSummary: a, DisplayName: name})
	}
	return out
}

// EnrichTransfers names both endpoints of each transfer after the matching
// enriched account. Endpoints outside the batch become ExternalBankName.
func EnrichTransfers(transfers []domain.TransferSummary, accounts []domain.EnrichedAccount) []domain.EnrichedTransfer {
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		if _, ok := names[a.AccountNumber]; !ok {
			names[a.AccountNumber] = a.DisplayName
		}
	}

	lookup := func(number string) string {
		if n, ok := names[number]; ok {
			return n
		}
		return ExternalBankName
	}

	out := make([]domain.EnrichedTransfer, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, domain.EnrichedTransfer{
			TransferSummary:   t,
			SourceDisplayName: lookup(t.SourceAccount.AccountNumber),
			DestDisplayName:   lookup(t.DestinationAccount.AccountNumber),
		})
	}
	return out
}
