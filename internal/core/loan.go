package core

import (
	"strings"
	"time"
)

const (
	LoanActive  LoanState = "active"
	LoanOverdue LoanState = "overdue"
	LoanPaid    LoanState = "paid"
)

type (
	LoanState string

	// Loan is a borrowed principal with a due date and an append-only
	// payment history. RemainingAmount is a legacy mirror kept for
	// persistence compatibility: ApplyPayment decrements it incrementally,
	// but Status always recomputes the remaining balance from PaymentsMade
	// and that derived value is the authoritative one for display.
	Loan struct {
		ID              string    `json:"id"`
		Bank            string    `json:"bank"`
		Amount          Money     `json:"amount"`
		InterestRate    float64   `json:"interestRate"`
		StartDate       time.Time `json:"startDate"`
		DueDate         time.Time `json:"dueDate"`
		MonthlyPayment  Money     `json:"monthlyPayment"`
		RemainingAmount Money     `json:"remainingAmount"`
		PaymentsMade    []Payment `json:"paymentsMade"`
		Currency        string    `json:"currency,omitempty"`
	}

	// LoanStatus is the derived view of a loan at a point in time.
	LoanStatus struct {
		TotalPaid Money
		Remaining Money
		State     LoanState
	}
)

// Status derives the loan's paid-to-date total, remaining balance and
// lifecycle state as of the given instant. A nil PaymentsMade (malformed
// record) is treated as an empty history. Precedence: a fully covered
// principal is Paid regardless of the due date; otherwise a past due date
// means Overdue; otherwise Active.
func (l Loan) Status(asOf time.Time) LoanStatus {
	var paid int64
	for _, p := range l.PaymentsMade {
		paid += p.Amount.Cents
	}
	state := LoanActive
	switch {
	case paid >= l.Amount.Cents:
		state = LoanPaid
	case l.DueDate.Before(asOf):
		state = LoanOverdue
	}
	return LoanStatus{
		TotalPaid: Money{Cents: paid},
		Remaining: Money{Cents: l.Amount.Cents - paid},
		State:     state,
	}
}

// ApplyPayment returns a copy of the loan with the payment appended to its
// history and the stored RemainingAmount decremented, clamped at zero.
// Overpayment is accepted; the excess is absorbed without recording any
// credit. The receiver is not mutated.
func (l Loan) ApplyPayment(p Payment) Loan {
	history := make([]Payment, 0, len(l.PaymentsMade)+1)
	history = append(history, l.PaymentsMade...)
	history = append(history, p)
	l.PaymentsMade = history

	remaining := l.RemainingAmount.Cents - p.Amount.Cents
	if remaining < 0 {
		remaining = 0
	}
	l.RemainingAmount = Money{Cents: remaining}
	return l
}

// Validate checks the fields required at creation. Due date ordering
// relative to the start date and negative interest rates are deliberately
// not enforced.
func (l Loan) Validate() error {
	if len(strings.TrimSpace(l.Bank)) == 0 {
		return ErrEmptyBank
	}
	if err := l.Amount.Validate(); err != nil {
		return err
	}
	if l.StartDate.IsZero() || l.DueDate.IsZero() {
		return ErrMissingDate
	}
	return nil
}
