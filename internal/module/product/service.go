package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements product catalog operations.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new product service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create adds a product to the catalog.
func (s *Service) Create(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	if !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Category:    req.Category,
		ModelNumber: req.ModelNumber,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Active:      true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateModelNumber
		}
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", p.ID.String()),
		zap.String("model_number", p.ModelNumber),
	)
	return p, nil
}

// Get returns a single product.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.Get(ctx, id)
}

// List returns products matching the filter plus a total count.
func (s *Service) List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*Product, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, filter, limit, offset)
}

// Update applies a partial update to a product.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, ErrInvalidPrice
		}
		p.Price = *req.Price
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// isDuplicateKey reports whether err is a unique constraint violation.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
