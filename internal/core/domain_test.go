package core

import (
	"testing"
	"time"
)

func txDate(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:          "t1",
		Description: "Café de la mañana",
		Amount:      Money{Cents: 350},
		Date:        txDate(2024, 7, 20),
		Type:        TypeExpense,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Description: "", Amount: Money{Cents: 1}, Date: txDate(2024, 7, 20), Type: TypeExpense},
		{Description: "   ", Amount: Money{Cents: 1}, Date: txDate(2024, 7, 20), Type: TypeExpense},
		{Description: "a", Amount: Money{Cents: 0}, Date: txDate(2024, 7, 20), Type: TypeExpense},
		{Description: "a", Amount: Money{Cents: 1}, Date: time.Time{}, Type: TypeIncome},
		{Description: "a", Amount: Money{Cents: 1}, Date: txDate(2024, 7, 20), Type: "transfer"},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Errorf("case %d expected error", i)
		}
	}
}

func TestTransactionNormalize(t *testing.T) {
	tx := Transaction{Description: "a", Amount: Money{Cents: 1}, Date: txDate(2024, 1, 1), Type: TypeExpense}
	got := tx.Normalize("PEN")
	if got.Category != DefaultCategory {
		t.Errorf("category = %q, want %q", got.Category, DefaultCategory)
	}
	if got.Currency != "PEN" {
		t.Errorf("currency = %q, want PEN", got.Currency)
	}

	tx.Category = "Comida"
	tx.Currency = "USD"
	got = tx.Normalize("PEN")
	if got.Category != "Comida" || got.Currency != "USD" {
		t.Errorf("existing fields must not be overwritten, got %q/%q", got.Category, got.Currency)
	}
}

func TestIsCashEquivalent(t *testing.T) {
	for _, m := range []string{MethodCash, MethodTransfer, MethodYape, MethodPlin} {
		if !IsCashEquivalent(m) {
			t.Errorf("%q should be a cash equivalent", m)
		}
	}
	for _, m := range []string{"Interbank", "BBVA", "Saga Falabella", ""} {
		if IsCashEquivalent(m) {
			t.Errorf("%q should not be a cash equivalent", m)
		}
	}
}
