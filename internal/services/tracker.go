package services

import (
	"context"
	"log/slog"
	"time"

	"monedero/internal/amqp"
	"monedero/internal/core"
	"monedero/internal/session"
)

// EventPublisher is the slice of the AMQP client the tracker needs. A nil
// publisher disables the event stream without changing behavior.
type EventPublisher interface {
	PublishMutation(ctx context.Context, ev *amqp.MutationEvent) error
}

// Tracker orchestrates mutations on one user session and publishes a
// mutation event after each success. Publishing is best effort: the local
// mutation has already been persisted, so a publish failure is logged and
// swallowed.
type Tracker struct {
	sess   *session.Session
	events EventPublisher
}

func NewTracker(sess *session.Session, events EventPublisher) *Tracker {
	return &Tracker{sess: sess, events: events}
}

func (t *Tracker) Session() *session.Session { return t.sess }

func (t *Tracker) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	created, err := t.sess.AddTransaction(tx)
	if err != nil {
		return core.Transaction{}, err
	}
	t.publish(ctx, amqp.EventTransactionCreated, created.ID)
	return created, nil
}

func (t *Tracker) DeleteTransaction(ctx context.Context, id string) error {
	if err := t.sess.DeleteTransaction(id); err != nil {
		return err
	}
	t.publish(ctx, amqp.EventTransactionDeleted, id)
	return nil
}

func (t *Tracker) AddLoan(ctx context.Context, l core.Loan) (core.Loan, error) {
	created, err := t.sess.AddLoan(l)
	if err != nil {
		return core.Loan{}, err
	}
	t.publish(ctx, amqp.EventLoanCreated, created.ID)
	return created, nil
}

func (t *Tracker) DeleteLoan(ctx context.Context, id string) error {
	if err := t.sess.DeleteLoan(id); err != nil {
		return err
	}
	t.publish(ctx, amqp.EventLoanDeleted, id)
	return nil
}

func (t *Tracker) ApplyPayment(ctx context.Context, loanID string, p core.Payment) (core.Loan, error) {
	updated, err := t.sess.ApplyPayment(loanID, p)
	if err != nil {
		return core.Loan{}, err
	}
	t.publish(ctx, amqp.EventPaymentApplied, loanID)
	return updated, nil
}

func (t *Tracker) SetCurrency(ctx context.Context, code string) error {
	if err := t.sess.SetCurrency(code); err != nil {
		return err
	}
	t.publish(ctx, amqp.EventCurrencyChanged, code)
	return nil
}

func (t *Tracker) Reset(ctx context.Context) error {
	if err := t.sess.Reset(); err != nil {
		return err
	}
	t.publish(ctx, amqp.EventDataReset, "")
	return nil
}

// Calendar builds the payment calendar over the session's current state.
func (t *Tracker) Calendar(now time.Time) []DayGroup {
	return BuildCalendar(t.sess.Loans(), t.sess.Transactions(), now)
}

func (t *Tracker) publish(ctx context.Context, kind, entityID string) {
	if t.events == nil {
		return
	}
	ev := amqp.NewMutationEvent(kind, t.sess.User(), entityID)
	if err := t.events.PublishMutation(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish mutation event",
			"kind", kind, "entity_id", entityID, "error", err)
	}
}
