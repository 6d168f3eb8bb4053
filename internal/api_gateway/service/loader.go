package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/backoffice-ledger/internal/domain/account"
	"github.com/backoffice-ledger/internal/domain/journal"
	"github.com/backoffice-ledger/internal/domain/shared"
)

// loadLedger fetches the chart of accounts and the journals inside r
// concurrently.
func loadLedger(ctx context.Context, accountRepo account.Repository, journalRepo journal.Repository, r shared.DateRange) ([]*account.Account, []*journal.Journal, error) {
	var (
		accounts []*account.Account
		journals []*journal.Journal
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = accountRepo.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		journals, err = journalRepo.List(ctx, r)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return accounts, journals, nil
}

func indexAccounts(accounts []*account.Account) map[string]*account.Account {
	byID := make(map[string]*account.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return byID
}
