package service

import (
	"context"
	"log/slog"

	"github.com/backoffice-ledger/internal/domain/catalog"
	"github.com/backoffice-ledger/internal/domain/order"
)

// CatalogServiceImpl implements the CatalogService interface
type CatalogServiceImpl struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	commentRepo  catalog.CommentRepository
	orderRepo    order.Repository
	logger       *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	logger *slog.Logger,
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	commentRepo catalog.CommentRepository,
	orderRepo order.Repository,
) CatalogService {
	return &CatalogServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		commentRepo:  commentRepo,
		orderRepo:    orderRepo,
		logger:       logger,
	}
}

func (s *CatalogServiceImpl) CreateProduct(ctx context.Context, d catalog.ProductDraft) (*catalog.Product, error) {
	p, err := catalog.NewProduct(d)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByID(ctx, p.CategoryID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Product created", "product_id", p.ID, "stock", p.Stock)
	return p, nil
}

// ListProducts populates categories and comments with one lookup each for
// the whole list.
func (s *CatalogServiceImpl) ListProducts(ctx context.Context) ([]*ProductView, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	categoryIDs := make([]string, 0, len(products))
	var commentIDs []string
	for _, p := range products {
		categoryIDs = append(categoryIDs, p.CategoryID)
		commentIDs = append(commentIDs, p.CommentIDs...)
	}

	categories, err := s.categoryRepo.ListByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	categoryByID := make(map[string]*catalog.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	commentByID := make(map[string]*catalog.Comment, len(commentIDs))
	if len(commentIDs) > 0 {
		comments, err := s.commentRepo.ListByIDs(ctx, commentIDs)
		if err != nil {
			return nil, err
		}
		for _, c := range comments {
			commentByID[c.ID] = c
		}
	}

	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		view := &ProductView{Product: p, Category: categoryByID[p.CategoryID], Comments: []*catalog.Comment{}}
		for _, id := range p.CommentIDs {
			if c, ok := commentByID[id]; ok {
				view.Comments = append(view.Comments, c)
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// GetProduct populates the category and every comment. A deleted category
// leaves Category nil.
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id string) (*ProductView, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &ProductView{Product: p, Comments: []*catalog.Comment{}}
	categories, err := s.categoryRepo.ListByIDs(ctx, []string{p.CategoryID})
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		view.Category = categories[0]
	}

	if len(p.CommentIDs) > 0 {
		comments, err := s.commentRepo.ListByIDs(ctx, p.CommentIDs)
		if err != nil {
			return nil, err
		}
		view.Comments = comments
	}
	return view, nil
}

func (s *CatalogServiceImpl) UpdateProduct(ctx context.Context, id string, d catalog.ProductDraft) (*catalog.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.Apply(d); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByID(ctx, p.CategoryID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes the product and its comments.
func (s *CatalogServiceImpl) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return err
	}

	refs, err := s.orderRepo.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return catalog.ErrProductInUse{ProductID: id, References: refs}
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByProduct(ctx, id); err != nil {
		s.logger.Warn("Failed to delete comments of removed product", "product_id", id, "error", err)
	}
	s.logger.Info("Product deleted", "product_id", id)
	return nil
}

func (s *CatalogServiceImpl) CreateCategory(ctx context.Context, name, image string) (*catalog.Category, error) {
	c, err := catalog.NewCategory(name, image)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogServiceImpl) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *CatalogServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}

	refs, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return catalog.ErrCategoryInUse{CategoryID: id, References: refs}
	}

	return s.categoryRepo.Delete(ctx, id)
}

// AddComment stores the comment, then links it to the product.
func (s *CatalogServiceImpl) AddComment(ctx context.Context, productID, author, message string) (*catalog.Comment, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	c, err := catalog.NewComment(productID, author, message)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	if err := s.productRepo.AddComment(ctx, productID, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}
