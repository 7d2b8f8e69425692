package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Data-Science-Wallah/pdf-to-doc/internal/model"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/repository"
)

type MockConversionRepository struct {
	mock.Mock
}

func (m *MockConversionRepository) Create(ctx context.Context, conv *model.Conversion) (*model.Conversion, error) {
	args := m.Called(ctx, conv)
	if f, ok := args.Get(0).(func(context.Context, *model.Conversion) *model.Conversion); ok {
		return f(ctx, conv), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversion), args.Error(1)
}

func (m *MockConversionRepository) FindByID(ctx context.Context, id string) (*model.Conversion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversion), args.Error(1)
}

func (m *MockConversionRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Conversion], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Conversion]), args.Error(1)
}

func (m *MockConversionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
