package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/backoffice-ledger/internal/domain/account"
	"github.com/backoffice-ledger/internal/domain/journal"
	"github.com/backoffice-ledger/internal/domain/outbox"
	"github.com/backoffice-ledger/internal/domain/shared"
)

func sampleDraft() journal.Draft {
	return journal.Draft{
		Name: "Penjualan Tunai",
		Date: time.Date(2024, 2, 14, 15, 30, 0, 0, time.UTC),
		Details: []journal.Detail{
			{AccountID: "kas", Debit: 250000},
			{AccountID: "pendapatan", Credit: 250000, Note: "toko"},
		},
	}
}

func outboxEvent(eventType shared.EventType) interface{} {
	return mock.MatchedBy(func(m *outbox.Message) bool {
		return m.EventType == eventType && m.Status == shared.OutboxStatusPending
	})
}

func TestJournalServiceImpl_CreateJournal(t *testing.T) {
	ctx := context.Background()
	kas := &account.Account{ID: "kas", Name: "Kas", Code: intPtr(1101), Type: account.TypeAsset}
	pendapatan := &account.Account{ID: "pendapatan", Name: "Pendapatan", Code: intPtr(4101), Type: account.TypeRevenue}

	t.Run("Success", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		accountRepo := new(MockAccountRepository)
		outboxRepo := new(MockOutboxRepository)
		service := NewJournalService(newTestLogger(), journalRepo, accountRepo, outboxRepo)

		accountRepo.On("GetByID", ctx, "kas").Return(kas, nil).Once()
		accountRepo.On("GetByID", ctx, "pendapatan").Return(pendapatan, nil).Once()
		journalRepo.On("Create", ctx, mock.AnythingOfType("*journal.Journal")).Return(nil).Once()
		outboxRepo.On("Create", ctx, outboxEvent(shared.EventJournalCreated)).Return(nil).Once()

		view, err := service.CreateJournal(ctx, sampleDraft())

		require.NoError(t, err)
		assert.Equal(t, "Penjualan Tunai", view.Name)
		assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), view.Date)
		require.Len(t, view.Details, 2)
		assert.Equal(t, "Kas", view.Details[0].Account.Name)
		assert.Equal(t, account.TypeRevenue, view.Details[1].Account.Type)
		assert.Equal(t, int64(250000), view.TotalDebit)
		assert.True(t, view.Balanced)
		journalRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("UnbalancedIsStored", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		accountRepo := new(MockAccountRepository)
		service := NewJournalService(newTestLogger(), journalRepo, accountRepo, nil)

		d := sampleDraft()
		d.Details = d.Details[:1]
		accountRepo.On("GetByID", ctx, "kas").Return(kas, nil).Once()
		journalRepo.On("Create", ctx, mock.AnythingOfType("*journal.Journal")).Return(nil).Once()

		view, err := service.CreateJournal(ctx, d)

		require.NoError(t, err)
		assert.False(t, view.Balanced)
		assert.Equal(t, int64(0), view.TotalCredit)
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		accountRepo := new(MockAccountRepository)
		service := NewJournalService(newTestLogger(), journalRepo, accountRepo, nil)

		accountRepo.On("GetByID", ctx, "kas").Return(kas, nil).Once()
		accountRepo.On("GetByID", ctx, "pendapatan").Return(nil, account.ErrAccountNotFound{AccountID: "pendapatan"}).Once()

		_, err := service.CreateJournal(ctx, sampleDraft())

		assert.Equal(t, journal.ErrUnknownAccount{AccountID: "pendapatan"}, err)
		journalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InvalidDraft", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		accountRepo := new(MockAccountRepository)
		service := NewJournalService(newTestLogger(), journalRepo, accountRepo, nil)

		d := sampleDraft()
		d.Details[0].Debit = -1

		_, err := service.CreateJournal(ctx, d)

		assert.ErrorIs(t, err, journal.ErrNegativeAmount)
		accountRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("OutboxFailureDoesNotFailWrite", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		accountRepo := new(MockAccountRepository)
		outboxRepo := new(MockOutboxRepository)
		service := NewJournalService(newTestLogger(), journalRepo, accountRepo, outboxRepo)

		accountRepo.On("GetByID", ctx, mock.Anything).Return(kas, nil)
		journalRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", ctx, mock.Anything).Return(errors.New("outbox down")).Once()

		_, err := service.CreateJournal(ctx, sampleDraft())

		assert.NoError(t, err)
		outboxRepo.AssertExpectations(t)
	})
}

func TestJournalServiceImpl_ListJournals(t *testing.T) {
	ctx := context.Background()
	r := shared.NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))

	journalRepo := new(MockJournalRepository)
	accountRepo := new(MockAccountRepository)
	service := NewJournalService(newTestLogger(), journalRepo, accountRepo, nil)

	accountRepo.On("List", mock.Anything).Return([]*account.Account{{ID: "kas", Name: "Kas"}}, nil).Once()
	journalRepo.On("List", mock.Anything, r).Return([]*journal.Journal{
		{ID: "j-1", Name: "Kas Masuk", Details: []journal.Detail{{AccountID: "kas", Debit: 10}, {AccountID: "gone", Credit: 10}}},
	}, nil).Once()

	views, err := service.ListJournals(ctx, r)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, AccountRef{ID: "kas", Name: "Kas"}, views[0].Details[0].Account)
	assert.Equal(t, AccountRef{ID: "gone"}, views[0].Details[1].Account, "deleted accounts keep only their id")
}

func TestJournalServiceImpl_GetJournal(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		service := NewJournalService(newTestLogger(), journalRepo, new(MockAccountRepository), nil)

		journalRepo.On("GetByID", ctx, "j-9").Return(nil, journal.ErrJournalNotFound{JournalID: "j-9"}).Once()

		_, err := service.GetJournal(ctx, "j-9")

		assert.ErrorIs(t, err, journal.ErrJournalNotFound{})
	})

	t.Run("SkipsMissingAccounts", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		accountRepo := new(MockAccountRepository)
		service := NewJournalService(newTestLogger(), journalRepo, accountRepo, nil)

		journalRepo.On("GetByID", ctx, "j-1").Return(&journal.Journal{
			ID: "j-1", Name: "Biaya Listrik", Details: []journal.Detail{{AccountID: "beban", Debit: 75}},
		}, nil).Once()
		accountRepo.On("GetByID", ctx, "beban").Return(nil, account.ErrAccountNotFound{AccountID: "beban"}).Once()

		view, err := service.GetJournal(ctx, "j-1")

		require.NoError(t, err)
		assert.Equal(t, "beban", view.Details[0].Account.ID)
		assert.Empty(t, view.Details[0].Account.Name)
	})
}

func TestJournalServiceImpl_UpdateJournal(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		accountRepo := new(MockAccountRepository)
		outboxRepo := new(MockOutboxRepository)
		service := NewJournalService(newTestLogger(), journalRepo, accountRepo, outboxRepo)

		existing := &journal.Journal{ID: "j-1", Name: "Lama", CreatedAt: created}
		journalRepo.On("GetByID", ctx, "j-1").Return(existing, nil).Once()
		accountRepo.On("GetByID", ctx, mock.Anything).Return(&account.Account{ID: "x", Name: "Akun"}, nil)
		journalRepo.On("Update", ctx, existing).Return(nil).Once()
		outboxRepo.On("Create", ctx, outboxEvent(shared.EventJournalUpdated)).Return(nil).Once()

		view, err := service.UpdateJournal(ctx, "j-1", sampleDraft())

		require.NoError(t, err)
		assert.Equal(t, "j-1", view.ID)
		assert.Equal(t, "Penjualan Tunai", view.Name)
		assert.Equal(t, created, view.CreatedAt)
		journalRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		accountRepo := new(MockAccountRepository)
		service := NewJournalService(newTestLogger(), journalRepo, accountRepo, nil)

		journalRepo.On("GetByID", ctx, "j-1").Return(&journal.Journal{ID: "j-1"}, nil).Once()
		accountRepo.On("GetByID", ctx, "kas").Return(nil, account.ErrAccountNotFound{AccountID: "kas"}).Once()

		_, err := service.UpdateJournal(ctx, "j-1", sampleDraft())

		assert.ErrorIs(t, err, journal.ErrUnknownAccount{AccountID: "kas"})
		journalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestJournalServiceImpl_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("DeleteOne", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		outboxRepo := new(MockOutboxRepository)
		service := NewJournalService(newTestLogger(), journalRepo, new(MockAccountRepository), outboxRepo)

		journalRepo.On("Delete", ctx, "j-1").Return(nil).Once()
		outboxRepo.On("Create", ctx, outboxEvent(shared.EventJournalDeleted)).Return(nil).Once()

		assert.NoError(t, service.DeleteJournal(ctx, "j-1"))
		outboxRepo.AssertExpectations(t)
	})

	t.Run("DeleteOneMissing", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		outboxRepo := new(MockOutboxRepository)
		service := NewJournalService(newTestLogger(), journalRepo, new(MockAccountRepository), outboxRepo)

		journalRepo.On("Delete", ctx, "j-9").Return(journal.ErrJournalNotFound{JournalID: "j-9"}).Once()

		assert.ErrorIs(t, service.DeleteJournal(ctx, "j-9"), journal.ErrJournalNotFound{})
		outboxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DeleteAll", func(t *testing.T) {
		journalRepo := new(MockJournalRepository)
		outboxRepo := new(MockOutboxRepository)
		service := NewJournalService(newTestLogger(), journalRepo, new(MockAccountRepository), outboxRepo)

		journalRepo.On("DeleteAll", ctx).Return(int64(4), nil).Once()
		outboxRepo.On("Create", ctx, mock.MatchedBy(func(m *outbox.Message) bool {
			var body map[string]int64
			return m.EventType == shared.EventJournalsPurged &&
				json.Unmarshal(m.Payload, &body) == nil && body["deleted"] == 4
		})).Return(nil).Once()

		deleted, err := service.DeleteAllJournals(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(4), deleted)
		outboxRepo.AssertExpectations(t)
	})
}
