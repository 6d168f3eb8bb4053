package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/backoffice-ledger/internal/domain/catalog"
	"github.com/backoffice-ledger/internal/domain/order"
	"github.com/backoffice-ledger/internal/domain/outbox"
	"github.com/backoffice-ledger/internal/domain/shared"
	"github.com/backoffice-ledger/internal/domain/user"
)

// OrderServiceImpl implements the OrderService interface
type OrderServiceImpl struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	userRepo    user.Repository
	events      eventRecorder
	logger      *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	logger *slog.Logger,
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	userRepo user.Repository,
	outboxRepo outbox.Repository,
) OrderService {
	return &OrderServiceImpl{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		events:      eventRecorder{repo: outboxRepo, logger: logger},
		logger:      logger,
	}
}

// CreateTransaction prices the order from the current product price, takes
// the stock with one conditional decrement and only then stores the order.
// If the order cannot be stored the stock is given back.
func (s *OrderServiceImpl) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*TransactionView, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, order.ErrInvalidStatus
	}

	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	userID := in.UserID
	if userID == "" {
		userID = in.CallerID
	}
	buyer, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	t, err := order.NewTransaction(product.ID, buyer.ID, in.Quantity, in.Type, in.PaymentDocument, product.Price)
	if err != nil {
		return nil, err
	}
	if in.Status != nil {
		t.Status = *in.Status
	}

	if err := s.productRepo.ReserveStock(ctx, product.ID, t.Quantity); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, t); err != nil {
		if releaseErr := s.productRepo.ReleaseStock(ctx, product.ID, t.Quantity); releaseErr != nil {
			s.logger.Error("Failed to release reserved stock",
				"product_id", product.ID,
				"quantity", t.Quantity,
				"error", releaseErr,
			)
		}
		return nil, err
	}

	product.Stock -= t.Quantity
	s.events.record(ctx, shared.EventOrderCreated, t.ID, t)
	s.logger.Info("Transaction created",
		"transaction_id", t.ID,
		"product_id", product.ID,
		"quantity", t.Quantity,
		"grandtotal", t.GrandTotal,
	)
	return newTransactionView(t, product, buyer), nil
}

func (s *OrderServiceImpl) ListTransactions(ctx context.Context) ([]*TransactionView, error) {
	txs, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, txs)
}

func (s *OrderServiceImpl) GetTransaction(ctx context.Context, id string) (*TransactionView, error) {
	t, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.populate(ctx, []*order.Transaction{t})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *OrderServiceImpl) ListUserTransactions(ctx context.Context, userID string) ([]*TransactionView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	txs, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, txs)
}

// UpdateTransaction merges the patch. A product change reprices the order
// from the new product; stock is not moved by updates.
func (s *OrderServiceImpl) UpdateTransaction(ctx context.Context, id string, patch order.Patch) (*TransactionView, error) {
	t, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var unitPrice int64
	if patch.ProductID != nil {
		product, err := s.productRepo.GetByID(ctx, *patch.ProductID)
		if err != nil {
			return nil, err
		}
		unitPrice = product.Price
	}

	if err := t.Apply(patch, unitPrice); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.events.record(ctx, shared.EventOrderUpdated, t.ID, t)

	views, err := s.populate(ctx, []*order.Transaction{t})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *OrderServiceImpl) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.record(ctx, shared.EventOrderDeleted, id, map[string]string{"id": id})
	return nil
}

// populate resolves each distinct product and user once. References to
// deleted records stay nil.
func (s *OrderServiceImpl) populate(ctx context.Context, txs []*order.Transaction) ([]*TransactionView, error) {
	products := make(map[string]*catalog.Product)
	users := make(map[string]*user.User)

	views := make([]*TransactionView, 0, len(txs))
	for _, t := range txs {
		p, seen := products[t.ProductID]
		if !seen {
			var err error
			p, err = s.productRepo.GetByID(ctx, t.ProductID)
			if err != nil && !errors.Is(err, catalog.ErrProductNotFound{}) {
				return nil, err
			}
			products[t.ProductID] = p
		}

		u, seen := users[t.UserID]
		if !seen {
			var err error
			u, err = s.userRepo.GetByID(ctx, t.UserID)
			if err != nil && !errors.Is(err, user.ErrUserNotFound{}) {
				return nil, err
			}
			users[t.UserID] = u
		}

		views = append(views, newTransactionView(t, p, u))
	}
	return views, nil
}
