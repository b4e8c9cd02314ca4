package amqp

import (
	"encoding/json"
	"time"
)

// Mutation event kinds published by the tracker service.
const (
	EventTransactionCreated = "transaction_created"
	EventTransactionDeleted = "transaction_deleted"
	EventLoanCreated        = "loan_created"
	EventLoanDeleted        = "loan_deleted"
	EventPaymentApplied     = "payment_applied"
	EventCurrencyChanged    = "currency_changed"
	EventDataReset          = "data_reset"
)

// MutationEvent is the lightweight audit record published after each
// successful state mutation. The consumer archives it; nothing downstream
// depends on delivery, so publishing is best effort.
type MutationEvent struct {
	Kind      string    `json:"kind"`
	User      string    `json:"user"`
	EntityID  string    `json:"entity_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMutationEvent(kind, user, entityID string) *MutationEvent {
	return &MutationEvent{
		Kind:      kind,
		User:      user,
		EntityID:  entityID,
		Timestamp: time.Now(),
	}
}

func (e *MutationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func MutationEventFromJSON(data []byte) (*MutationEvent, error) {
	var ev MutationEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
