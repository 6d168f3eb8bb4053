package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/backoffice-ledger/internal/domain/account"
	"github.com/backoffice-ledger/internal/domain/journal"
	"github.com/backoffice-ledger/internal/domain/ledger"
	"github.com/backoffice-ledger/internal/domain/reportrun"
	"github.com/backoffice-ledger/internal/domain/shared"
	"github.com/backoffice-ledger/internal/report"
)

// ReportServiceImpl implements the ReportService interface. Every call
// re-aggregates from the store; concurrent identical loads are collapsed.
type ReportServiceImpl struct {
	accountRepo account.Repository
	journalRepo journal.Repository
	runRepo     reportrun.Repository
	writer      *report.ExcelWriter
	logger      *slog.Logger
	loads       singleflight.Group
	now         func() time.Time
}

// NewReportService creates a new report service. runRepo may be nil when no
// audit store is configured.
func NewReportService(logger *slog.Logger, accountRepo account.Repository, journalRepo journal.Repository, runRepo reportrun.Repository) ReportService {
	if runRepo == nil {
		runRepo = reportrun.Discard{}
	}
	return &ReportServiceImpl{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		runRepo:     runRepo,
		writer:      report.NewExcelWriter(),
		logger:      logger,
		now:         time.Now,
	}
}

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100

	// loadTimeout bounds a shared ledger load, which no single request owns.
	loadTimeout = 30 * time.Second
)

type ledgerSnapshot struct {
	accounts []*account.Account
	postings []ledger.Posting
}

// load returns the accounts and the postings inside r. The snapshot is shared
// between concurrent callers and must not be modified. The store reads run on
// a context detached from the caller that started them, so a caller leaving
// early does not fail the others waiting on the same load.
func (s *ReportServiceImpl) load(ctx context.Context, r shared.DateRange) (*ledgerSnapshot, error) {
	ch := s.loads.DoChan(r.String(), func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		accounts, journals, err := loadLedger(loadCtx, s.accountRepo, s.journalRepo, r)
		if err != nil {
			return nil, err
		}
		return &ledgerSnapshot{accounts: accounts, postings: ledger.Flatten(journals, r)}, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*ledgerSnapshot), nil
	}
}

// CalculateTotals lists only the accounts that have postings.
func (s *ReportServiceImpl) CalculateTotals(ctx context.Context) ([]ledger.Balance, error) {
	snap, err := s.load(ctx, shared.DateRange{})
	if err != nil {
		return nil, err
	}
	return ledger.TotalsByAccount(snap.accounts, snap.postings), nil
}

func (s *ReportServiceImpl) TrialBalance(ctx context.Context, r shared.DateRange, dated bool) (ledger.TrialBalance, error) {
	snap, err := s.load(ctx, r)
	if err != nil {
		return ledger.TrialBalance{}, err
	}
	return ledger.BuildTrialBalance(snap.accounts, snap.postings, dated), nil
}

func (s *ReportServiceImpl) IncomeStatement(ctx context.Context, r shared.DateRange) (ledger.IncomeStatement, error) {
	snap, err := s.load(ctx, r)
	if err != nil {
		return ledger.IncomeStatement{}, err
	}
	return ledger.BuildIncomeStatement(snap.accounts, snap.postings), nil
}

func (s *ReportServiceImpl) GeneralLedger(ctx context.Context, r shared.DateRange, accountID string) ([]ledger.AccountLedger, error) {
	if accountID != "" {
		if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
			return nil, err
		}
	}

	snap, err := s.load(ctx, r)
	if err != nil {
		return nil, err
	}

	accounts := snap.accounts
	if accountID != "" {
		accounts = nil
		for _, a := range snap.accounts {
			if a.ID == accountID {
				accounts = append(accounts, a)
			}
		}
	}
	return ledger.BuildGeneralLedger(accounts, snap.postings), nil
}

func (s *ReportServiceImpl) ExportGeneralJournal(ctx context.Context, r shared.DateRange, requestedBy string) (*ExportFile, error) {
	snap, err := s.load(ctx, r)
	if err != nil {
		return nil, err
	}

	table := report.GeneralJournal(snap.postings, snap.accounts, r)
	return s.export(ctx, reportrun.KindGeneralJournal, "jurnal-umum", r, requestedBy, table.DataRows(), table)
}

func (s *ReportServiceImpl) ExportTrialBalance(ctx context.Context, r shared.DateRange, dated bool, requestedBy string) (*ExportFile, error) {
	tb, err := s.TrialBalance(ctx, r, dated)
	if err != nil {
		return nil, err
	}
	return s.export(ctx, reportrun.KindTrialBalance, "neraca-saldo", r, requestedBy, len(tb.Rows), report.TrialBalance(tb, r)...)
}

func (s *ReportServiceImpl) ExportIncomeStatement(ctx context.Context, r shared.DateRange, requestedBy string) (*ExportFile, error) {
	is, err := s.IncomeStatement(ctx, r)
	if err != nil {
		return nil, err
	}
	rows := len(is.Revenue) + len(is.Expense)
	return s.export(ctx, reportrun.KindIncomeStatement, "pendapatan-beban", r, requestedBy, rows, report.IncomeStatement(is, r))
}

func (s *ReportServiceImpl) ExportGeneralLedger(ctx context.Context, r shared.DateRange, accountID, requestedBy string) (*ExportFile, error) {
	ledgers, err := s.GeneralLedger(ctx, r, accountID)
	if err != nil {
		return nil, err
	}
	table := report.GeneralLedger(ledgers, r)
	return s.export(ctx, reportrun.KindGeneralLedger, "buku-besar", r, requestedBy, table.DataRows(), table)
}

// export renders the workbook and records the run. A failed audit write is
// only logged.
func (s *ReportServiceImpl) export(ctx context.Context, kind reportrun.Kind, name string, r shared.DateRange, requestedBy string, rows int, tables ...report.Table) (*ExportFile, error) {
	var buf bytes.Buffer
	if err := s.writer.Write(&buf, tables...); err != nil {
		s.logger.Error("Failed to render report", "report", kind, "error", err)
		return nil, fmt.Errorf("failed to render %s report: %w", kind, err)
	}

	run := reportrun.NewRun(kind, r, rows, requestedBy)
	if err := s.runRepo.Create(ctx, run); err != nil {
		s.logger.Warn("Failed to record report run", "report", kind, "error", err)
	}

	s.logger.Info("Report exported", "report", kind, "range", r.String(), "rows", rows, "bytes", buf.Len())
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.xlsx", name, s.now().Format("20060102")),
		ContentType: report.ContentType,
		Data:        buf.Bytes(),
		Rows:        rows,
	}, nil
}

func (s *ReportServiceImpl) ExportHistory(ctx context.Context, limit int) ([]*reportrun.Run, error) {
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}
	return s.runRepo.ListRecent(ctx, limit)
}
