package service

import (
	"context"
	"time"

	"github.com/backoffice-ledger/internal/domain/order"
)

// DashboardServiceImpl implements the DashboardService interface
type DashboardServiceImpl struct {
	orderRepo order.Repository
	now       func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(orderRepo order.Repository) DashboardService {
	return &DashboardServiceImpl{
		orderRepo: orderRepo,
		now:       time.Now,
	}
}

func (s *DashboardServiceImpl) StatusSummary(ctx context.Context) (order.StatusSummary, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return order.StatusSummary{}, err
	}
	return order.SummarizeStatuses(counts), nil
}

// MonthlyTotals buckets the done orders created this year by month.
func (s *DashboardServiceImpl) MonthlyTotals(ctx context.Context) ([]order.MonthTotal, error) {
	year := s.now().UTC().Year()
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	txs, err := s.orderRepo.ListByStatusBetween(ctx, order.StatusDone, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}
	return order.MonthlyTotals(txs, year), nil
}
