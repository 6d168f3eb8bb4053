package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/backoffice-ledger/internal/domain/account"
	"github.com/backoffice-ledger/internal/domain/journal"
	"github.com/backoffice-ledger/internal/domain/outbox"
	"github.com/backoffice-ledger/internal/domain/shared"
)

// JournalServiceImpl implements the JournalService interface
type JournalServiceImpl struct {
	journalRepo journal.Repository
	accountRepo account.Repository
	events      eventRecorder
	logger      *slog.Logger
}

// NewJournalService creates a new journal service
func NewJournalService(logger *slog.Logger, journalRepo journal.Repository, accountRepo account.Repository, outboxRepo outbox.Repository) JournalService {
	return &JournalServiceImpl{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		events:      eventRecorder{repo: outboxRepo, logger: logger},
		logger:      logger,
	}
}

// resolveAccounts loads every account the journal references. A missing one
// fails the write with ErrUnknownAccount.
func (s *JournalServiceImpl) resolveAccounts(ctx context.Context, j *journal.Journal) (map[string]*account.Account, error) {
	ids := j.AccountIDs()
	accounts := make(map[string]*account.Account, len(ids))
	for _, id := range ids {
		acc, err := s.accountRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound{}) {
				return nil, journal.ErrUnknownAccount{AccountID: id}
			}
			return nil, err
		}
		accounts[id] = acc
	}
	return accounts, nil
}

func (s *JournalServiceImpl) CreateJournal(ctx context.Context, d journal.Draft) (*JournalView, error) {
	j, err := journal.NewJournal(d)
	if err != nil {
		return nil, err
	}

	accounts, err := s.resolveAccounts(ctx, j)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.Create(ctx, j); err != nil {
		return nil, err
	}

	if !j.Balanced() {
		debit, credit := j.Totals()
		s.logger.Warn("Journal is not balanced", "journal_id", j.ID, "debit", debit, "credit", credit)
	}
	s.events.record(ctx, shared.EventJournalCreated, j.ID, j)

	return newJournalView(j, accounts), nil
}

// ListJournals returns journals inside r, latest journal date first, with
// their accounts populated.
func (s *JournalServiceImpl) ListJournals(ctx context.Context, r shared.DateRange) ([]*JournalView, error) {
	accounts, journals, err := loadLedger(ctx, s.accountRepo, s.journalRepo, r)
	if err != nil {
		return nil, err
	}

	byID := indexAccounts(accounts)
	views := make([]*JournalView, 0, len(journals))
	for _, j := range journals {
		views = append(views, newJournalView(j, byID))
	}
	return views, nil
}

func (s *JournalServiceImpl) GetJournal(ctx context.Context, id string) (*JournalView, error) {
	j, err := s.journalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	accounts := make(map[string]*account.Account)
	for _, accountID := range j.AccountIDs() {
		acc, err := s.accountRepo.GetByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound{}) {
				continue
			}
			return nil, err
		}
		accounts[accountID] = acc
	}
	return newJournalView(j, accounts), nil
}

func (s *JournalServiceImpl) UpdateJournal(ctx context.Context, id string, d journal.Draft) (*JournalView, error) {
	j, err := s.journalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := j.Apply(d); err != nil {
		return nil, err
	}

	accounts, err := s.resolveAccounts(ctx, j)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.Update(ctx, j); err != nil {
		return nil, err
	}
	s.events.record(ctx, shared.EventJournalUpdated, j.ID, j)

	return newJournalView(j, accounts), nil
}

func (s *JournalServiceImpl) DeleteJournal(ctx context.Context, id string) error {
	if err := s.journalRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.record(ctx, shared.EventJournalDeleted, id, map[string]string{"id": id})
	return nil
}

func (s *JournalServiceImpl) DeleteAllJournals(ctx context.Context) (int64, error) {
	deleted, err := s.journalRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.Warn("All journals deleted", "count", deleted)
	s.events.record(ctx, shared.EventJournalsPurged, "journals", map[string]int64{"deleted": deleted})
	return deleted, nil
}
