package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// Payment methods treated as cash equivalents. Everything else is assumed
// to be a card or bank instrument and shows up in the card ledger.
const (
	MethodCash     = "Efectivo"
	MethodTransfer = "Transferencia"
	MethodYape     = "Yape"
	MethodPlin     = "Plin"
)

// DefaultCategory is assigned when a transaction is created without one.
const DefaultCategory = "Otros"

// DefaultCurrency is the session currency after reset and for new users.
const DefaultCurrency = "EUR"

type (
	TransactionType string

	// Transaction is a single income or expense record. Amount is always
	// positive; direction is inferred from Type at every consumption site.
	Transaction struct {
		ID            string          `json:"id"`
		Description   string          `json:"description"`
		Amount        Money           `json:"amount"`
		Date          time.Time       `json:"date"`
		Type          TransactionType `json:"type"`
		Category      string          `json:"category,omitempty"`
		PaymentMethod string          `json:"paymentMethod,omitempty"`
		Currency      string          `json:"currency,omitempty"`
	}

	// Payment is one recorded installment against a loan.
	Payment struct {
		Date   time.Time `json:"date"`
		Amount Money     `json:"amount"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrMissingDate      = errors.New("missing date")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyBank        = errors.New("empty bank name")
)

var cashEquivalents = map[string]bool{
	MethodCash:     true,
	MethodTransfer: true,
	MethodYape:     true,
	MethodPlin:     true,
}

// IsCashEquivalent reports whether a payment method is excluded from the
// card ledger.
func IsCashEquivalent(method string) bool {
	return cashEquivalents[method]
}

// Normalize resolves the optional fields once at the data-model boundary:
// missing category defaults to DefaultCategory and missing currency to the
// active session currency.
func (t Transaction) Normalize(sessionCurrency string) Transaction {
	if strings.TrimSpace(t.Category) == "" {
		t.Category = DefaultCategory
	}
	if strings.TrimSpace(t.Currency) == "" {
		t.Currency = sessionCurrency
	}
	return t
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	if t.Type != TypeExpense && t.Type != TypeIncome {
		return ErrInvalidType
	}
	return nil
}

func (p Payment) Validate() error {
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if p.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}
