// Package services provides the aggregation logic that spans more than one
// entity: the payment calendar, the export pipeline and the tracker service
// that ties mutations to event publishing.
package services

import (
	"fmt"
	"sort"
	"time"

	"monedero/internal/core"
)

const (
	KindLoanDue EventKind = "loan_due"
	KindExpense EventKind = "expense"

	StatusOverdue  EventStatus = "overdue"
	StatusUpcoming EventStatus = "upcoming"
	StatusPaid     EventStatus = "paid"
)

type (
	EventKind   string
	EventStatus string

	// CalendarEvent is one dated entry in the payment timeline: either a
	// pending loan installment or a historical expense.
	CalendarEvent struct {
		Date   time.Time
		Title  string
		Amount core.Money
		Kind   EventKind
		Status EventStatus
		RefID  string
	}

	// DayGroup collects the events of one calendar day.
	DayGroup struct {
		Date   time.Time
		Events []CalendarEvent
	}
)

// BuildCalendar merges loan due events and historical expense events into a
// per-day timeline, ascending by date.
//
// Loans that are fully paid as of now contribute nothing: they vanish from
// the calendar instead of showing as completed. Every expense transaction
// emits one event dated at the transaction date and tagged paid, which
// deliberately conflates historical spend with due events; this mirrors the
// established calendar behavior and is not a recurring-bill scheduler.
//
// The merge is a stable sort, so events sharing a date keep their
// source-relative order. Recomputed in full on every call.
func BuildCalendar(loans []core.Loan, transactions []core.Transaction, now time.Time) []DayGroup {
	var events []CalendarEvent

	for _, l := range loans {
		status := l.Status(now)
		if status.State == core.LoanPaid {
			continue
		}
		eventStatus := StatusUpcoming
		if l.DueDate.Before(now) {
			eventStatus = StatusOverdue
		}
		events = append(events, CalendarEvent{
			Date:   l.DueDate,
			Title:  fmt.Sprintf("Pago Préstamo %s", l.Bank),
			Amount: l.MonthlyPayment,
			Kind:   KindLoanDue,
			Status: eventStatus,
			RefID:  l.ID,
		})
	}

	for _, t := range transactions {
		if t.Type != core.TypeExpense {
			continue
		}
		events = append(events, CalendarEvent{
			Date:   t.Date,
			Title:  fmt.Sprintf("Gasto: %s", t.Description),
			Amount: t.Amount,
			Kind:   KindExpense,
			Status: StatusPaid,
			RefID:  t.ID,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	var groups []DayGroup
	for _, ev := range events {
		day := truncateToDay(ev.Date)
		if n := len(groups); n > 0 && groups[n-1].Date.Equal(day) {
			groups[n-1].Events = append(groups[n-1].Events, ev)
			continue
		}
		groups = append(groups, DayGroup{Date: day, Events: []CalendarEvent{ev}})
	}
	return groups
}

// truncateToDay drops the time of day, keeping the event's own location so
// grouping follows the local day boundary.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
