package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Data-Science-Wallah/pdf-to-doc/internal/model"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/service"
)

type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, pdf []byte, originalFilename string) (*service.Result, error) {
	args := m.Called(ctx, pdf, originalFilename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Result), args.Error(1)
}

func (m *MockConversionService) ConvertAndArchive(ctx context.Context, pdf []byte, originalFilename string) (*model.Conversion, *service.Result, error) {
	args := m.Called(ctx, pdf, originalFilename)
	var conv *model.Conversion
	var res *service.Result
	if args.Get(0) != nil {
		conv = args.Get(0).(*model.Conversion)
	}
	if args.Get(1) != nil {
		res = args.Get(1).(*service.Result)
	}
	return conv, res, args.Error(2)
}

func (m *MockConversionService) List(ctx context.Context, limit, offset int) (*service.ConversionListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConversionListResult), args.Error(1)
}

func (m *MockConversionService) Get(ctx context.Context, id string) (*model.Conversion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversion), args.Error(1)
}

func (m *MockConversionService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Conversion, error) {
	args := m.Called(ctx, id)
	var rc io.ReadCloser
	var conv *model.Conversion
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	if args.Get(1) != nil {
		conv = args.Get(1).(*model.Conversion)
	}
	return rc, conv, args.Error(2)
}

func (m *MockConversionService) DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, id, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockConversionService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
