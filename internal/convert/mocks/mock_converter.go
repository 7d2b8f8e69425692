package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Convert(ctx context.Context, pdfPath string) ([]byte, error) {
	args := m.Called(ctx, pdfPath)
	if f, ok := args.Get(0).(func(context.Context, string) []byte); ok {
		return f(ctx, pdfPath), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
