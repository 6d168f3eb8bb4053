package outbox_relay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/backoffice-ledger/internal/domain/outbox"
	"github.com/backoffice-ledger/internal/domain/shared"
)

func TestEventRelay_Publish(t *testing.T) {
	envelopeOf := func(id string) interface{} {
		return mock.MatchedBy(func(e outbox.Envelope) bool { return e.EventID == id })
	}

	t.Run("published and marked", func(t *testing.T) {
		repo, events := new(MockOutboxRepo), new(MockEventPublisher)
		events.On("Publish", mock.Anything, envelopeOf("m-1")).Return(nil).Once()
		repo.On("UpdateStatus", mock.Anything, "m-1", shared.OutboxStatusProcessed).Return(nil).Once()

		err := NewEventRelay(repo, events, newTestLogger()).Publish(context.Background(), message("m-1", "o-1", 0))
		assert.NoError(t, err)
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("broker failure leaves status untouched", func(t *testing.T) {
		repo, events := new(MockOutboxRepo), new(MockEventPublisher)
		events.On("Publish", mock.Anything, envelopeOf("m-1")).Return(errors.New("leader not available")).Once()

		err := NewEventRelay(repo, events, newTestLogger()).Publish(context.Background(), message("m-1", "o-1", 0))
		assert.ErrorContains(t, err, "leader not available")
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("mark failure is reported", func(t *testing.T) {
		repo, events := new(MockOutboxRepo), new(MockEventPublisher)
		events.On("Publish", mock.Anything, envelopeOf("m-1")).Return(nil).Once()
		repo.On("UpdateStatus", mock.Anything, "m-1", shared.OutboxStatusProcessed).Return(errors.New("db error")).Once()

		err := NewEventRelay(repo, events, newTestLogger()).Publish(context.Background(), message("m-1", "o-1", 0))
		assert.ErrorContains(t, err, "PROCESSED")
	})
}
