package outbox

import (
	"encoding/json"
	"time"

	"github.com/backoffice-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Message stores a domain event until the relay has published it
type Message struct {
	ID            string              `json:"id" bson:"_id"`
	EventType     shared.EventType    `json:"event_type" bson:"event_type"`
	AggregateID   string              `json:"aggregate_id" bson:"aggregate_id"`
	Payload       json.RawMessage     `json:"payload" bson:"payload"`
	Status        shared.OutboxStatus `json:"status" bson:"status"`
	Attempts      int                 `json:"attempts" bson:"attempts"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	LastAttemptAt *time.Time          `json:"last_attempt_at,omitempty" bson:"last_attempt_at,omitempty"`
}

// NewMessage marshals the event body into a pending message.
func NewMessage(eventType shared.EventType, aggregateID string, body any) (*Message, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	return &Message{
		ID:          uuid.NewString(),
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		Status:      shared.OutboxStatusPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (m *Message) IncrementAttempts() {
	m.Attempts++
	now := time.Now().UTC()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsProcessed() {
	m.Status = shared.OutboxStatusProcessed
	now := time.Now().UTC()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsFailed() {
	m.Status = shared.OutboxStatusFailedToPublish
	now := time.Now().UTC()
	m.LastAttemptAt = &now
}

// Envelope is the record published to the broker.
type Envelope struct {
	EventID     string           `json:"event_id"`
	EventType   shared.EventType `json:"event_type"`
	AggregateID string           `json:"aggregate_id"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Data        json.RawMessage  `json:"data"`
}

// Envelope wraps the payload with its event metadata.
func (m *Message) Envelope() Envelope {
	return Envelope{
		EventID:     m.ID,
		EventType:   m.EventType,
		AggregateID: m.AggregateID,
		OccurredAt:  m.CreatedAt,
		Data:        m.Payload,
	}
}
