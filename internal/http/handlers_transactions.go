package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"monedero/internal/core"
)

type transactionRequest struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	Type          string `json:"type"`
	Category      string `json:"category"`
	PaymentMethod string `json:"payment_method"`
	Currency      string `json:"currency"`
}

type transactionView struct {
	ID            string `json:"id"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	AmountDisplay string `json:"amount_display"`
	Date          string `json:"date"`
	Type          string `json:"type"`
	Category      string `json:"category"`
	PaymentMethod string `json:"payment_method"`
	Currency      string `json:"currency"`
}

func viewTransaction(t core.Transaction) transactionView {
	return transactionView{
		ID:            t.ID,
		Description:   t.Description,
		Amount:        t.Amount.DecimalString(),
		AmountDisplay: core.FormatAmount(t.Amount, t.Currency),
		Date:          t.Date.Format("2006-01-02"),
		Type:          string(t.Type),
		Category:      t.Category,
		PaymentMethod: t.PaymentMethod,
		Currency:      t.Currency,
	}
}

// parseDate accepts ISO (2006-01-02) and the localized dd/mm/yyyy form.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse("02/01/2006", s)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	transactions := tracker.Session().Transactions()
	views := make([]transactionView, len(transactions))
	for i, t := range transactions {
		views[i] = viewTransaction(t)
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	created, err := tracker.AddTransaction(r.Context(), core.Transaction{
		Description:   strings.TrimSpace(req.Description),
		Amount:        core.Money{Cents: cents},
		Date:          date,
		Type:          core.TransactionType(req.Type),
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Currency:      req.Currency,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	slog.InfoContext(r.Context(), "Transaction created",
		"id", created.ID,
		"type", created.Type,
		"amount_cents", created.Amount.Cents,
		"payment_method", created.PaymentMethod)
	writeJSON(w, http.StatusCreated, viewTransaction(created))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
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
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}
	if err := tracker.DeleteTransaction(r.Context(), req.ID); err != nil {
		slog.ErrorContext(r.Context(), "Failed deleting transaction", "id", req.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
