package outbox_relay

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/backoffice-ledger/internal/domain/outbox"
	"github.com/backoffice-ledger/internal/domain/shared"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOutboxRepo struct {
	mock.Mock
}

func (m *MockOutboxRepo) Create(ctx context.Context, message *outbox.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockOutboxRepo) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepo) UpdateStatus(ctx context.Context, id string, status shared.OutboxStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockOutboxRepo) IncrementAttempts(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, message *outbox.Message) error {
	return m.Called(ctx, message).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event outbox.Envelope) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type MockDLQ struct {
	mock.Mock
}

func (m *MockDLQ) PublishToDLQ(ctx context.Context, key string, value []byte, reason string) error {
	return m.Called(ctx, key, value, reason).Error(0)
}

func (m *MockDLQ) Close() error {
	return m.Called().Error(0)
}

// inlineDispatcher runs messages sequentially on the caller's goroutine and
// stops an aggregate at its first failure, like WorkerPool.
type inlineDispatcher struct{}

func (inlineDispatcher) Dispatch(ctx context.Context, messages []*outbox.Message, fn func(context.Context, *outbox.Message) error) {
	for _, group := range groupByAggregate(messages) {
		for _, m := range group {
			if fn(ctx, m) != nil {
				break
			}
		}
	}
}

func message(id, aggregate string, attempts int) *outbox.Message {
	return &outbox.Message{
		ID:          id,
		EventType:   shared.EventOrderCreated,
		AggregateID: aggregate,
		Payload:     []byte(`{"quantity":2}`),
		Status:      shared.OutboxStatusPending,
		Attempts:    attempts,
	}
}
