package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/backoffice-ledger/internal/domain/account"
	"github.com/backoffice-ledger/internal/domain/journal"
	"github.com/backoffice-ledger/internal/domain/ledger"
	"github.com/backoffice-ledger/internal/domain/shared"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accountRepo account.Repository
	journalRepo journal.Repository
	logger      *slog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(logger *slog.Logger, accountRepo account.Repository, journalRepo journal.Repository) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		logger:      logger,
	}
}

// CreateAccount creates an account after checking its code is free. The
// unique index still guards against a concurrent create with the same code.
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, name string, code *int, accountType account.Type) (*account.Account, error) {
	acc, err := account.NewAccount(name, code, accountType)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCodeAvailable(ctx, code, ""); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}

	s.logger.Info("Account created", "account_id", acc.ID, "account_type", int(acc.Type))
	return acc, nil
}

func (s *AccountServiceImpl) ensureCodeAvailable(ctx context.Context, code *int, selfID string) error {
	if code == nil {
		return nil
	}

	existing, err := s.accountRepo.GetByCode(ctx, *code)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return account.ErrDuplicateAccountCode{Code: *code}
	}
	return nil
}

func (s *AccountServiceImpl) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	return s.accountRepo.List(ctx)
}

func (s *AccountServiceImpl) GetAccount(ctx context.Context, id string) (*account.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

func (s *AccountServiceImpl) UpdateAccount(ctx context.Context, id, name string, code *int, accountType account.Type) (*account.Account, error) {
	acc, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := acc.Update(name, code, accountType); err != nil {
		return nil, err
	}

	if err := s.ensureCodeAvailable(ctx, code, acc.ID); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Update(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// DeleteAccount refuses to orphan journal details.
func (s *AccountServiceImpl) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.accountRepo.GetByID(ctx, id); err != nil {
		return err
	}

	refs, err := s.journalRepo.CountByAccount(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return account.ErrAccountInUse{AccountID: id, References: refs}
	}

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Account deleted", "account_id", id)
	return nil
}

func (s *AccountServiceImpl) AccountsWithJournals(ctx context.Context, r shared.DateRange) ([]ledger.AccountActivity, error) {
	accounts, journals, err := loadLedger(ctx, s.accountRepo, s.journalRepo, r)
	if err != nil {
		return nil, err
	}
	return ledger.GroupByAccount(accounts, ledger.Flatten(journals, r)), nil
}
