package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"monedero/internal/core"
	"monedero/internal/session"
)

type loanRequest struct {
	Bank           string  `json:"bank"`
	Amount         string  `json:"amount"`
	InterestRate   float64 `json:"interest_rate"`
	StartDate      string  `json:"start_date"`
	DueDate        string  `json:"due_date"`
	MonthlyPayment string  `json:"monthly_payment"`
	Currency       string  `json:"currency"`
}

type paymentRequest struct {
	LoanID string `json:"loan_id"`
	Amount string `json:"amount"`
	Date   string `json:"date"`
}

type paymentView struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

type loanView struct {
	ID               string        `json:"id"`
	Bank             string        `json:"bank"`
	Amount           string        `json:"amount"`
	InterestRate     float64       `json:"interest_rate"`
	StartDate        string        `json:"start_date"`
	DueDate          string        `json:"due_date"`
	MonthlyPayment   string        `json:"monthly_payment"`
	Currency         string        `json:"currency"`
	TotalPaid        string        `json:"total_paid"`
	Remaining        string        `json:"remaining"`
	RemainingDisplay string        `json:"remaining_display"`
	State            string        `json:"state"`
	Payments         []paymentView `json:"payments"`
}

func viewLoan(l core.Loan, asOf time.Time) loanView {
	st := l.Status(asOf)
	payments := make([]paymentView, len(l.PaymentsMade))
	for i, p := range l.PaymentsMade {
		payments[i] = paymentView{
			Date:   p.Date.Format("2006-01-02"),
			Amount: p.Amount.DecimalString(),
		}
	}
	return loanView{
		ID:               l.ID,
		Bank:             l.Bank,
		Amount:           l.Amount.DecimalString(),
		InterestRate:     l.InterestRate,
		StartDate:        l.StartDate.Format("2006-01-02"),
		DueDate:          l.DueDate.Format("2006-01-02"),
		MonthlyPayment:   l.MonthlyPayment.DecimalString(),
		Currency:         l.Currency,
		TotalPaid:        st.TotalPaid.DecimalString(),
		Remaining:        st.Remaining.DecimalString(),
		RemainingDisplay: core.FormatAmount(st.Remaining, l.Currency),
		State:            string(st.State),
		Payments:         payments,
	}
}

func (s *Server) handleLoans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listLoans(w, r)
	case http.MethodPost:
		s.createLoan(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listLoans(w http.ResponseWriter, r *http.Request) {
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	now := time.Now()
	loans := tracker.Session().Loans()
	views := make([]loanView, len(loans))
	for i, l := range loans {
		views[i] = viewLoan(l, now)
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) createLoan(w http.ResponseWriter, r *http.Request) {
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	var req loanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid start date")
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid due date")
		return
	}
	var monthly int64
	if strings.TrimSpace(req.MonthlyPayment) != "" {
		monthly, err = core.ParseDecimalToCents(req.MonthlyPayment)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid monthly payment")
			return
		}
	}

	created, err := tracker.AddLoan(r.Context(), core.Loan{
		Bank:           strings.TrimSpace(req.Bank),
		Amount:         core.Money{Cents: amount},
		InterestRate:   req.InterestRate,
		StartDate:      start,
		DueDate:        due,
		MonthlyPayment: core.Money{Cents: monthly},
		Currency:       req.Currency,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	slog.InfoContext(r.Context(), "Loan created",
		"id", created.ID, "bank", created.Bank, "amount_cents", created.Amount.Cents)
	writeJSON(w, http.StatusCreated, viewLoan(created, time.Now()))
}

func (s *Server) handleDeleteLoan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(r, &req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "missing loan id")
		return
	}
	if err := tracker.DeleteLoan(r.Context(), req.ID); err != nil {
		slog.ErrorContext(r.Context(), "Failed deleting loan", "id", req.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete loan")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleLoanPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil || req.LoanID == "" {
		writeError(w, http.StatusBadRequest, "missing loan id")
		return
	}
	amount, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	date := time.Now()
	if strings.TrimSpace(req.Date) != "" {
		date, err = parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date")
			return
		}
	}

	updated, err := tracker.ApplyPayment(r.Context(), req.LoanID, core.Payment{
		Date:   date,
		Amount: core.Money{Cents: amount},
	})
	if err != nil {
		if errors.Is(err, session.ErrLoanNotFound) {
			writeError(w, http.StatusNotFound, "loan not found")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	slog.InfoContext(r.Context(), "Loan payment recorded",
		"loan_id", req.LoanID, "amount_cents", amount)
	writeJSON(w, http.StatusOK, viewLoan(updated, time.Now()))
}
