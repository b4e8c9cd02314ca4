package core

import (
	"testing"
	"time"
)

func testLoan(amountCents int64, due time.Time, payments ...int64) Loan {
	l := Loan{
		ID:              "loan-1",
		Bank:            "Interbank",
		Amount:          Money{Cents: amountCents},
		StartDate:       due.AddDate(-1, 0, 0),
		DueDate:         due,
		RemainingAmount: Money{Cents: amountCents},
		Currency:        "PEN",
	}
	for i, c := range payments {
		l.PaymentsMade = append(l.PaymentsMade, Payment{
			Date:   l.StartDate.AddDate(0, i, 0),
			Amount: Money{Cents: c},
		})
	}
	return l
}

func TestLoanStatus(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := asOf.AddDate(0, 0, -1)
	nextMonth := asOf.AddDate(0, 1, 0)

	tests := []struct {
		name          string
		loan          Loan
		wantState     LoanState
		wantPaid      int64
		wantRemaining int64
	}{
		{
			name:          "paid wins over past due date",
			loan:          testLoan(100000, yesterday, 60000, 40000),
			wantState:     LoanPaid,
			wantPaid:      100000,
			wantRemaining: 0,
		},
		{
			name:          "overdue when unpaid past due date",
			loan:          testLoan(100000, yesterday, 40000),
			wantState:     LoanOverdue,
			wantPaid:      40000,
			wantRemaining: 60000,
		},
		{
			name:          "active when due date ahead",
			loan:          testLoan(100000, nextMonth, 40000),
			wantState:     LoanActive,
			wantPaid:      40000,
			wantRemaining: 60000,
		},
		{
			name:          "overpaid is still paid",
			loan:          testLoan(100000, nextMonth, 60000, 60000),
			wantState:     LoanPaid,
			wantPaid:      120000,
			wantRemaining: -20000,
		},
		{
			name:          "no payments and future due date",
			loan:          testLoan(100000, nextMonth),
			wantState:     LoanActive,
			wantPaid:      0,
			wantRemaining: 100000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.loan.Status(asOf)
			if got.State != tt.wantState {
				t.Errorf("state = %q, want %q", got.State, tt.wantState)
			}
			if got.TotalPaid.Cents != tt.wantPaid {
				t.Errorf("total paid = %d, want %d", got.TotalPaid.Cents, tt.wantPaid)
			}
			if got.Remaining.Cents != tt.wantRemaining {
				t.Errorf("remaining = %d, want %d", got.Remaining.Cents, tt.wantRemaining)
			}
		})
	}
}

func TestLoanStatusNilPayments(t *testing.T) {
	l := testLoan(100000, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	l.PaymentsMade = nil
	got := l.Status(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if got.State != LoanActive || got.TotalPaid.Cents != 0 {
		t.Fatalf("nil history must behave as empty, got %+v", got)
	}
}

func TestApplyPaymentClampsRemaining(t *testing.T) {
	l := testLoan(100000, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	l.RemainingAmount = Money{Cents: 10000}

	updated := l.ApplyPayment(Payment{Date: time.Now(), Amount: Money{Cents: 15000}})
	if updated.RemainingAmount.Cents != 0 {
		t.Errorf("remaining = %d, want 0 (clamped)", updated.RemainingAmount.Cents)
	}
	if len(updated.PaymentsMade) != 1 {
		t.Errorf("payments = %d, want 1", len(updated.PaymentsMade))
	}
	// Value semantics: the original loan must be untouched.
	if l.RemainingAmount.Cents != 10000 || len(l.PaymentsMade) != 0 {
		t.Errorf("receiver mutated: remaining=%d payments=%d", l.RemainingAmount.Cents, len(l.PaymentsMade))
	}
}

func TestApplyPaymentAppendsHistory(t *testing.T) {
	l := testLoan(100000, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 20000)
	updated := l.ApplyPayment(Payment{Date: time.Now(), Amount: Money{Cents: 30000}})
	if len(updated.PaymentsMade) != 2 {
		t.Fatalf("payments = %d, want 2", len(updated.PaymentsMade))
	}
	if updated.PaymentsMade[1].Amount.Cents != 30000 {
		t.Errorf("last payment = %d, want 30000", updated.PaymentsMade[1].Amount.Cents)
	}
}

func TestLoanValidate(t *testing.T) {
	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	good := testLoan(100000, due)
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Permissive on purpose: due date before start date and negative rate
	// are both accepted.
	odd := testLoan(100000, due)
	odd.DueDate = odd.StartDate.AddDate(0, -1, 0)
	odd.InterestRate = -0.05
	if err := odd.Validate(); err != nil {
		t.Fatalf("permissive fields rejected: %v", err)
	}

	bads := []Loan{
		{Bank: "", Amount: Money{Cents: 1}, StartDate: due, DueDate: due},
		{Bank: "BBVA", Amount: Money{Cents: 0}, StartDate: due, DueDate: due},
		{Bank: "BBVA", Amount: Money{Cents: 1}, DueDate: due},
		{Bank: "BBVA", Amount: Money{Cents: 1}, StartDate: due},
	}
	for i, l := range bads {
		if err := l.Validate(); err == nil {
			t.Errorf("case %d expected error", i)
		}
	}
}
