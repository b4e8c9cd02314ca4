package http

import (
	"net/http"
	"time"

	"monedero/internal/core"
)

type summaryView struct {
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
}

type cardView struct {
	Method         string `json:"method"`
	Balance        string `json:"balance"`
	BalanceDisplay string `json:"balance_display"`
}

type calendarEventView struct {
	Title  string `json:"title"`
	Amount string `json:"amount"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
	RefID  string `json:"ref_id"`
}

type calendarDayView struct {
	Date   string              `json:"date"`
	Events []calendarEventView `json:"events"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	sess := tracker.Session()
	totals := core.CalculateTotals(sess.Transactions())
	currency := sess.Currency()
	writeJSON(w, http.StatusOK, summaryView{
		TotalIncome:   core.FormatAmount(totals.TotalIncome, currency),
		TotalExpenses: core.FormatAmount(totals.TotalExpenses, currency),
		Balance:       core.FormatAmount(totals.Balance, currency),
		Currency:      currency,
	})
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	sess := tracker.Session()
	transactions := sess.Transactions()
	currency := core.ReportCurrency(transactions, sess.Currency())
	balances := core.CardBalances(transactions)
	views := make([]cardView, len(balances))
	for i, b := range balances {
		views[i] = cardView{
			Method:         b.Method,
			Balance:        b.Balance.DecimalString(),
			BalanceDisplay: core.FormatAmount(b.Balance, currency),
		}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tracker, ok := s.currentTracker(w)
	if !ok {
		return
	}
	days := tracker.Calendar(time.Now())
	views := make([]calendarDayView, len(days))
	for i, day := range days {
		events := make([]calendarEventView, len(day.Events))
		for j, ev := range day.Events {
			events[j] = calendarEventView{
				Title:  ev.Title,
				Amount: ev.Amount.DecimalString(),
				Kind:   string(ev.Kind),
				Status: string(ev.Status),
				RefID:  ev.RefID,
			}
		}
		views[i] = calendarDayView{
			Date:   day.Date.Format("2006-01-02"),
			Events: events,
		}
	}
	writeJSON(w, http.StatusOK, views)
}
