package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Data-Science-Wallah/pdf-to-doc/internal/config"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/convert"
	convertMocks "github.com/Data-Science-Wallah/pdf-to-doc/internal/convert/mocks"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/model"
	repoMocks "github.com/Data-Science-Wallah/pdf-to-doc/internal/repository/mocks"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/storage"
	storeMocks "github.com/Data-Science-Wallah/pdf-to-doc/internal/storage/mocks"
)

func docxWith(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	w := docx.New().WithDefaultTheme()
	for _, p := range paragraphs {
		w.AddParagraph().AddText(p)
	}
	var buf bytes.Buffer
	_, err := w.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func testConfig() config.ConverterConfig {
	return config.ConverterConfig{
		MaxUploadBytes:       1 << 20,
		MaxPreviewParagraphs: 20,
	}
}

func newTestService(t *testing.T, conv convert.Converter, store storage.Storage, repo *repoMocks.MockConversionRepository) ConversionService {
	t.Helper()
	svc, err := NewConversionService(convert.NewStager(t.TempDir()), conv, store, repo, testConfig(), nil)
	require.NoError(t, err)
	return svc
}

func TestConversionService_Convert(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mConv := new(convertMocks.MockConverter)
		mConv.On("Convert", ctx, mock.Anything).Return(docxWith(t, "hello", "world"), nil)

		svc := newTestService(t, mConv, nil, nil)
		res, err := svc.Convert(ctx, []byte("%PDF fake"), "report.pdf")

		require.NoError(t, err)
		assert.Equal(t, "report.docx", res.OutputFilename)
		assert.NotEmpty(t, res.DocxBytes)
		assert.Equal(t, "Converted with layout analysis and post-processing", res.StatusMessage)
		assert.Equal(t, "hello\nworld", res.Preview)
		mConv.AssertExpectations(t)
	})

	t.Run("preview is deterministic across runs", func(t *testing.T) {
		mConv := new(convertMocks.MockConverter)
		mConv.On("Convert", ctx, mock.Anything).Return(docxWith(t, "same", "content"), nil)

		svc := newTestService(t, mConv, nil, nil)
		first, err := svc.Convert(ctx, []byte("%PDF fake"), "a.pdf")
		require.NoError(t, err)
		second, err := svc.Convert(ctx, []byte("%PDF fake"), "a.pdf")
		require.NoError(t, err)

		assert.Equal(t, first.Preview, second.Preview)
	})

	t.Run("empty input", func(t *testing.T) {
		svc := newTestService(t, new(convertMocks.MockConverter), nil, nil)
		_, err := svc.Convert(ctx, nil, "report.pdf")
		assert.ErrorIs(t, err, convert.ErrEmptyInput)
	})

	t.Run("oversized input", func(t *testing.T) {
		svc := newTestService(t, new(convertMocks.MockConverter), nil, nil)
		_, err := svc.Convert(ctx, make([]byte, 2<<20), "report.pdf")
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("conversion failure yields no output", func(t *testing.T) {
		mConv := new(convertMocks.MockConverter)
		mConv.On("Convert", ctx, mock.Anything).Return(nil, convert.ErrConversion)

		svc := newTestService(t, mConv, nil, nil)
		res, err := svc.Convert(ctx, []byte("junk"), "report.pdf")

		assert.ErrorIs(t, err, convert.ErrConversion)
		assert.Nil(t, res)
	})

	t.Run("post-process failure degrades but delivers", func(t *testing.T) {
		// Bytes that are not a parseable DOCX: round trip and preview both
		// fail, the document is still delivered with a caveat.
		notDocx := []byte("opaque converter output")
		mConv := new(convertMocks.MockConverter)
		mConv.On("Convert", ctx, mock.Anything).Return(notDocx, nil)

		svc := newTestService(t, mConv, nil, nil)
		res, err := svc.Convert(ctx, []byte("%PDF fake"), "report.pdf")

		require.NoError(t, err)
		assert.Equal(t, notDocx, res.DocxBytes)
		assert.Contains(t, res.StatusMessage, "post-processing check failed")
		assert.Contains(t, res.StatusMessage, "preview unavailable")
		assert.Empty(t, res.Preview)
	})

	t.Run("staged file removed after run", func(t *testing.T) {
		dir := t.TempDir()
		mConv := new(convertMocks.MockConverter)
		mConv.On("Convert", ctx, mock.Anything).Return(docxWith(t, "x"), nil)

		svc, err := NewConversionService(convert.NewStager(dir), mConv, nil, nil, testConfig(), nil)
		require.NoError(t, err)

		_, err = svc.Convert(ctx, []byte("%PDF fake"), "a.pdf")
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("staged file removed after conversion failure", func(t *testing.T) {
		dir := t.TempDir()
		mConv := new(convertMocks.MockConverter)
		mConv.On("Convert", ctx, mock.Anything).Return(nil, convert.ErrConversion)

		svc, err := NewConversionService(convert.NewStager(dir), mConv, nil, nil, testConfig(), nil)
		require.NoError(t, err)

		_, err = svc.Convert(ctx, []byte("junk"), "a.pdf")
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

// Two simultaneous runs with different inputs must not contaminate each
// other's staged files or results. The converter echoes the staged bytes
// back as a paragraph so the preview proves which input was converted.
func TestConversionService_ConcurrentConvert(t *testing.T) {
	ctx := context.Background()

	mConv := new(convertMocks.MockConverter)
	mConv.On("Convert", ctx, mock.Anything).Return(func(_ context.Context, pdfPath string) []byte {
		data, err := os.ReadFile(pdfPath)
		if err != nil {
			return nil
		}
		w := docx.New().WithDefaultTheme()
		w.AddParagraph().AddText(string(data))
		var buf bytes.Buffer
		if _, err := w.WriteTo(&buf); err != nil {
			return nil
		}
		return buf.Bytes()
	}, nil)

	svc := newTestService(t, mConv, nil, nil)

	var wg sync.WaitGroup
	for _, input := range []string{"input-alpha", "input-beta"} {
		wg.Add(1)
		go func(input string) {
			defer wg.Done()
			res, err := svc.Convert(ctx, []byte(input), input+".pdf")
			if assert.NoError(t, err) {
				assert.Equal(t, input, res.Preview)
			}
		}(input)
	}
	wg.Wait()
}

func TestConversionService_ConvertAndArchive(t *testing.T) {
	ctx := context.Background()
	output := func(t *testing.T) []byte { return docxWith(t, "archived") }

	t.Run("happy path", func(t *testing.T) {
		mConv := new(convertMocks.MockConverter)
		mConv.On("Convert", ctx, mock.Anything).Return(output(t), nil)

		mStore := new(storeMocks.MockStorage)
		mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "conversions/") && strings.HasSuffix(key, ".docx")
		}), mock.Anything, mock.Anything).Return(storage.ObjectInfo{Key: "conversions/x.docx", Size: 42}, nil)

		mRepo := new(repoMocks.MockConversionRepository)
		mRepo.On("Create", ctx, mock.MatchedBy(func(c *model.Conversion) bool {
			return c.SourceFilename == "report.pdf" && c.OutputFilename == "report.docx" &&
				c.StoragePath == "conversions/x.docx" && c.Preview == "archived"
		})).Return(&model.Conversion{ID: "gen-id"}, nil)

		svc := newTestService(t, mConv, mStore, mRepo)
		stored, res, err := svc.ConvertAndArchive(ctx, []byte("%PDF fake"), "report.pdf")

		require.NoError(t, err)
		assert.Equal(t, "gen-id", stored.ID)
		assert.NotNil(t, res)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("record save failure rolls back storage", func(t *testing.T) {
		mConv := new(convertMocks.MockConverter)
		mConv.On("Convert", ctx, mock.Anything).Return(output(t), nil)

		mStore := new(storeMocks.MockStorage)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "conversions/x.docx"}, nil)
		mStore.On("Delete", ctx, mock.Anything).Return(nil)

		mRepo := new(repoMocks.MockConversionRepository)
		mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		svc := newTestService(t, mConv, mStore, mRepo)
		_, _, err := svc.ConvertAndArchive(ctx, []byte("%PDF fake"), "report.pdf")

		assert.ErrorContains(t, err, "record save failed")
		mStore.AssertCalled(t, "Delete", ctx, mock.Anything)
	})
}

func TestConversionService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("missing id", func(t *testing.T) {
		svc := newTestService(t, new(convertMocks.MockConverter), nil, new(repoMocks.MockConversionRepository))
		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockConversionRepository)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := newTestService(t, new(convertMocks.MockConverter), nil, mRepo)
		_, err := svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestConversionService_Delete(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockConversionRepository)
	mRepo.On("FindByID", ctx, "id-1").Return(&model.Conversion{ID: "id-1", StoragePath: "conversions/id-1.docx"}, nil)
	mRepo.On("Delete", ctx, "id-1").Return(nil)

	mStore := new(storeMocks.MockStorage)
	mStore.On("Delete", ctx, "conversions/id-1.docx").Return(nil)

	svc := newTestService(t, new(convertMocks.MockConverter), mStore, mRepo)
	assert.NoError(t, svc.Delete(ctx, "id-1"))
	mStore.AssertExpectations(t)
	mRepo.AssertExpectations(t)
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.docx"},
		{"dir/nested/report.pdf", "report.docx"},
		{"no-extension", "no-extension.docx"},
		{"archive.tar.pdf", "archive.tar.docx"},
		{"", "document.docx"},
		{".pdf", "document.docx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputFilename(tt.in), "input %q", tt.in)
	}
}
