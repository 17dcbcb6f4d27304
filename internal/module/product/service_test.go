package product

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*Product, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) Update(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func TestProductServiceCreate(t *testing.T) {
	t.Run("creates active product", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil)
		svc := NewService(repo, zap.NewNop())

		p, err := svc.Create(context.Background(), &CreateProductRequest{
			Name:        "Cabin 42",
			Category:    "cabins",
			ModelNumber: "CB-42",
			Price:       decimal.NewFromInt(85000),
		})
		require.NoError(t, err)

		assert.True(t, p.Active)
		assert.Equal(t, "CB-42", p.ModelNumber)
		repo.AssertExpectations(t)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo, zap.NewNop())

		_, err := svc.Create(context.Background(), &CreateProductRequest{
			Name:        "Cabin 42",
			ModelNumber: "CB-42",
			Price:       decimal.Zero,
		})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("maps duplicate key to model number conflict", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", mock.Anything, mock.Anything).
			Return(errors.New(`duplicate key value violates unique constraint "idx_products_model_number"`))
		svc := NewService(repo, zap.NewNop())

		_, err := svc.Create(context.Background(), &CreateProductRequest{
			Name:        "Cabin 42",
			ModelNumber: "CB-42",
			Price:       decimal.NewFromInt(85000),
		})
		assert.ErrorIs(t, err, ErrDuplicateModelNumber)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	existing := func() *Product {
		return &Product{
			ID:          uuid.New(),
			Name:        "Cabin 42",
			Category:    "cabins",
			ModelNumber: "CB-42",
			Price:       decimal.NewFromInt(85000),
			Active:      true,
		}
	}

	t.Run("applies only the provided fields", func(t *testing.T) {
		p := existing()
		repo := new(mockRepository)
		repo.On("Get", mock.Anything, p.ID).Return(p, nil)
		repo.On("Update", mock.Anything, p).Return(nil)
		svc := NewService(repo, zap.NewNop())

		newPrice := decimal.NewFromInt(90000)
		inactive := false
		updated, err := svc.Update(context.Background(), p.ID, &UpdateProductRequest{
			Price:  &newPrice,
			Active: &inactive,
		})
		require.NoError(t, err)

		assert.True(t, newPrice.Equal(updated.Price))
		assert.False(t, updated.Active)
		assert.Equal(t, "Cabin 42", updated.Name)
		assert.Equal(t, "CB-42", updated.ModelNumber)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		p := existing()
		repo := new(mockRepository)
		repo.On("Get", mock.Anything, p.ID).Return(p, nil)
		svc := NewService(repo, zap.NewNop())

		bad := decimal.NewFromInt(-1)
		_, err := svc.Update(context.Background(), p.ID, &UpdateProductRequest{Price: &bad})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("unknown product surfaces not found", func(t *testing.T) {
		id := uuid.New()
		repo := new(mockRepository)
		repo.On("Get", mock.Anything, id).Return(nil, ErrProductNotFound)
		svc := NewService(repo, zap.NewNop())

		_, err := svc.Update(context.Background(), id, &UpdateProductRequest{})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
