package service

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"

	"github.com/shopspring/decimal"
)

// mockAnchor is the date of the most recent mock transaction.
var mockAnchor = time.Date(2026, time.February, 24, 0, 0, 0, 0, time.UTC)

type mockEntry struct {
	description string
	amount      string
	txType      string
	category    domain.TransactionCategory
}

var transactionPool = []mockEntry{
	{"Direct Deposit - Payroll", "2450.00", domain.TxCredit, domain.CategoryIncome},
	{"Amazon.com", "87.43", domain.TxDebit, domain.CategoryStore},
	{"Netflix Subscription", "15.99", domain.TxDebit, domain.CategoryPayment},
	{"Grocery Store", "134.22", domain.TxDebit, domain.CategoryStore},
	{"Gas Station", "58.75", domain.TxDebit, domain.CategoryStore},
	{"Restaurant - Dinner", "46.30", domain.TxDebit, domain.CategoryRestaurant},
	{"Interest Payment", "12.50", domain.TxCredit, domain.CategoryIncome},
	{"Utility Bill - Electric", "95.00", domain.TxDebit, domain.CategoryPayment},
	{"Online Transfer Received", "500.00", domain.TxCredit, domain.CategoryTransfer},
	{"Coffee Shop", "6.75", domain.TxDebit, domain.CategoryRestaurant},
	{"Pharmacy", "23.18", domain.TxDebit, domain.CategoryStore},
	{"Streaming Service", "13.99", domain.TxDebit, domain.CategoryPayment},
	{"ATM Withdrawal", "200.00", domain.TxDebit, domain.CategoryTransfer},
	{"Refund - Online Purchase", "42.00", domain.TxCredit, domain.CategoryIncome},
	{"Monthly Savings Transfer", "300.00", domain.TxDebit, domain.CategoryTransfer},
}

// MockTransactions returns one synthetic transaction per pool entry, newest
// first, one day apart. Each gets an account label drawn from labels using
// rng; a nil rng draws from the unseeded global source. A nil or empty
// table falls back to the default labels.
func MockTransactions(labels *TypeLabels, rng *rand.Rand) []domain.MockTransaction {
	var choices []string
	if labels != nil {
		choices = labels.Labels()
	}
	if len(choices) == 0 {
		choices = DefaultTypeLabels().Labels()
	}

	pick := rand.IntN
	if rng != nil {
		pick = rng.IntN
	}

	out := make([]domain.MockTransaction, 0, len(transactionPool))
	for i, e := range transactionPool {
		label := choices[pick(len(choices))]
		out = append(out, domain.MockTransaction{
			ID:              fmt.Sprintf("mock-%d", i),
			Description:     e.description,
			Amount:          decimal.RequireFromString(e.amount),
			Date:            mockAnchor.AddDate(0, 0, -i).Format(time.DateOnly),
			Type:            e.txType,
			TransactionType: e.category,
			AccountLabel:    label,
		})
	}
	return out
}
