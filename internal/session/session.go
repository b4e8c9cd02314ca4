// Package session owns the per-user state container: the in-memory
// transaction and loan collections, the active display currency, and their
// persistence. Every mutation replaces the relevant collection with a new
// value and writes it to the store before returning, keyed by the session's
// user, so readers never observe a half-applied change.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"monedero/internal/core"
	"monedero/internal/storage"
)

var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// Session is the state container for one authenticated user. Components
// that aggregate (totals, ledger, calendar, export) read snapshots from it
// and never mutate through it.
type Session struct {
	mu    sync.Mutex
	user  string
	store storage.Store

	transactions    []core.Transaction
	loans           []core.Loan
	currency        string
	defaultCurrency string
}

func transactionsKey(user string) string { return "transactions_" + user }
func loansKey(user string) string        { return "loans_" + user }
func currencyKey(user string) string     { return "currency_" + user }

// Open loads the user's persisted state. A user with no saved collections
// is seeded with the default sample data. defaultCurrency is the configured
// fallback currency; an unsupported or empty value degrades to
// core.DefaultCurrency.
func Open(store storage.Store, user, defaultCurrency string) (*Session, error) {
	if !core.IsSupportedCurrency(defaultCurrency) {
		defaultCurrency = core.DefaultCurrency
	}
	s := &Session{user: user, store: store, currency: defaultCurrency, defaultCurrency: defaultCurrency}

	raw, ok, err := store.Load(transactionsKey(user))
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.transactions); err != nil {
			return nil, fmt.Errorf("decode transactions: %w", err)
		}
	} else {
		s.transactions = seedTransactions()
	}

	raw, ok, err = store.Load(loansKey(user))
	if err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.loans); err != nil {
			return nil, fmt.Errorf("decode loans: %w", err)
		}
	} else {
		s.loans = seedLoans()
	}

	raw, ok, err = store.Load(currencyKey(user))
	if err != nil {
		return nil, fmt.Errorf("load currency: %w", err)
	}
	if ok && core.IsSupportedCurrency(raw) {
		s.currency = raw
	}

	return s, nil
}

func (s *Session) User() string { return s.user }

func (s *Session) Currency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// Transactions returns a snapshot copy of the transaction list.
func (s *Session) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Loans returns a snapshot copy of the loan list.
func (s *Session) Loans() []core.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Loan, len(s.loans))
	copy(out, s.loans)
	return out
}

// AddTransaction assigns an ID, resolves the optional fields against the
// session currency, validates, and prepends the record (newest first, the
// list's historical order). The full list is persisted before returning.
func (s *Session) AddTransaction(t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.NewString()
	t = t.Normalize(s.currency)
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	next := make([]core.Transaction, 0, len(s.transactions)+1)
	next = append(next, t)
	next = append(next, s.transactions...)
	if err := s.saveTransactions(next); err != nil {
		return core.Transaction{}, err
	}
	s.transactions = next
	return t, nil
}

// DeleteTransaction removes the record with the given ID. Deleting an
// unknown ID is a no-op, matching the filter-based removal it replaces.
func (s *Session) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if err := s.saveTransactions(next); err != nil {
		return err
	}
	s.transactions = next
	return nil
}

// AddLoan assigns an ID, validates and appends the loan. The stored
// remaining amount starts at the full principal when the caller leaves it
// zero and no payments are recorded yet.
func (s *Session) AddLoan(l core.Loan) (core.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = uuid.NewString()
	if l.Currency == "" {
		l.Currency = s.currency
	}
	if l.RemainingAmount.Cents == 0 && len(l.PaymentsMade) == 0 {
		l.RemainingAmount = l.Amount
	}
	if err := l.Validate(); err != nil {
		return core.Loan{}, err
	}

	next := make([]core.Loan, 0, len(s.loans)+1)
	next = append(next, s.loans...)
	next = append(next, l)
	if err := s.saveLoans(next); err != nil {
		return core.Loan{}, err
	}
	s.loans = next
	return l, nil
}

func (s *Session) DeleteLoan(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]core.Loan, 0, len(s.loans))
	for _, l := range s.loans {
		if l.ID != id {
			next = append(next, l)
		}
	}
	if err := s.saveLoans(next); err != nil {
		return err
	}
	s.loans = next
	return nil
}

// ApplyPayment records a payment against the identified loan and persists
// the updated list, returning the updated loan.
func (s *Session) ApplyPayment(loanID string, p core.Payment) (core.Loan, error) {
	if err := p.Validate(); err != nil {
		return core.Loan{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]core.Loan, len(s.loans))
	copy(next, s.loans)

	var updated core.Loan
	found := false
	for i, l := range next {
		if l.ID == loanID {
			updated = l.ApplyPayment(p)
			next[i] = updated
			found = true
			break
		}
	}
	if !found {
		return core.Loan{}, ErrLoanNotFound
	}
	if err := s.saveLoans(next); err != nil {
		return core.Loan{}, err
	}
	s.loans = next
	return updated, nil
}

// SetCurrency switches the active display currency, restricted to the
// supported set.
func (s *Session) SetCurrency(code string) error {
	if !core.IsSupportedCurrency(code) {
		return ErrUnsupportedCurrency
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(currencyKey(s.user), code); err != nil {
		return fmt.Errorf("persist currency: %w", err)
	}
	s.currency = code
	return nil
}

// Reset clears both collections and restores the session's default
// currency, the "reset all data" operation.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveTransactions(nil); err != nil {
		return err
	}
	if err := s.saveLoans(nil); err != nil {
		return err
	}
	if err := s.store.Save(currencyKey(s.user), s.defaultCurrency); err != nil {
		return fmt.Errorf("persist currency: %w", err)
	}
	s.transactions = nil
	s.loans = nil
	s.currency = s.defaultCurrency
	return nil
}

func (s *Session) saveTransactions(list []core.Transaction) error {
	if list == nil {
		list = []core.Transaction{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := s.store.Save(transactionsKey(s.user), string(data)); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	return nil
}

func (s *Session) saveLoans(list []core.Loan) error {
	if list == nil {
		list = []core.Loan{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode loans: %w", err)
	}
	if err := s.store.Save(loansKey(s.user), string(data)); err != nil {
		return fmt.Errorf("persist loans: %w", err)
	}
	return nil
}
