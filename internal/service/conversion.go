package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Data-Science-Wallah/pdf-to-doc/internal/config"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/convert"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/model"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/repository"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("conversion not found")
	ErrTooLarge   = errors.New("upload exceeds size limit")
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Status messages paired with delivered output. A degraded message still
// means the document is delivered; it just carries a caveat.
const (
	statusConverted     = "Converted with layout analysis and post-processing"
	statusUnvalidated   = "Converted; post-processing check failed, delivering unvalidated output"
	statusPreviewSuffix = " (text preview unavailable)"
)

// Result is the outcome of one conversion: exactly one output document with
// its status message and bounded text preview. Nothing in it is retained
// server-side unless the caller archives it.
type Result struct {
	OutputFilename string
	DocxBytes      []byte
	StatusMessage  string
	Preview        string
}

// ConversionListResult is the service-level DTO for paginated history.
type ConversionListResult struct {
	Items []model.Conversion `json:"data"`
	Total int                `json:"total"`
}

// ConversionService defines the use cases around PDF to DOCX conversion.
type ConversionService interface {
	// Convert runs the full pipeline on uploaded PDF bytes and returns the
	// resulting document without retaining anything server-side.
	Convert(ctx context.Context, pdf []byte, originalFilename string) (*Result, error)

	// ConvertAndArchive converts, then stores the DOCX in object storage
	// and records the conversion, rolling back storage if the record save fails.
	ConvertAndArchive(ctx context.Context, pdf []byte, originalFilename string) (*model.Conversion, *Result, error)

	// List returns archived conversions using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*ConversionListResult, error)

	// Get returns a single archived conversion by its ID.
	Get(ctx context.Context, id string) (*model.Conversion, error)

	// Download streams an archived DOCX by conversion ID.
	Download(ctx context.Context, id string) (io.ReadCloser, *model.Conversion, error)

	// DownloadURL returns a pre-signed URL for an archived DOCX.
	DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error)

	// Delete removes an archived conversion from both storage and the repository.
	Delete(ctx context.Context, id string) error
}

// conversionService is a concrete implementation of ConversionService.
// The pipeline is strictly sequential: staging, conversion, post-processing,
// preview. Only staging and conversion failures abort the request;
// post-processing and preview failures degrade the status instead.
type conversionService struct {
	stager      *convert.Stager
	converter   convert.Converter
	store       storage.Storage
	repo        repository.ConversionRepository
	cfg         config.ConverterConfig
	conversions *prometheus.CounterVec
}

// NewConversionService constructs a new ConversionService. reg may be nil to
// skip metric registration (tests).
func NewConversionService(
	stager *convert.Stager,
	converter convert.Converter,
	store storage.Storage,
	repo repository.ConversionRepository,
	cfg config.ConverterConfig,
	reg prometheus.Registerer,
) (ConversionService, error) {
	s := &conversionService{
		stager:    stager,
		converter: converter,
		store:     store,
		repo:      repo,
		cfg:       cfg,
	}
	if reg != nil {
		s.conversions = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdf_conversions_total",
				Help: "Total number of conversion pipeline runs by outcome.",
			},
			[]string{"outcome"},
		)
		if err := reg.Register(s.conversions); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *conversionService) observe(outcome string) {
	if s.conversions != nil {
		s.conversions.WithLabelValues(outcome).Inc()
	}
}

// Convert runs the pipeline once. The staged file is removed on every exit
// path; on failure no output bytes are returned.
func (s *conversionService) Convert(ctx context.Context, pdf []byte, originalFilename string) (*Result, error) {
	if len(pdf) == 0 {
		return nil, convert.ErrEmptyInput
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(pdf)) > s.cfg.MaxUploadBytes {
		return nil, ErrTooLarge
	}

	pdfPath, cleanup, err := s.stager.Stage(pdf)
	if err != nil {
		s.observe("failed_staging")
		return nil, fmt.Errorf("staging: %w", err)
	}
	defer cleanup()

	docxBytes, err := s.converter.Convert(ctx, pdfPath)
	if err != nil {
		s.observe("failed_conversion")
		return nil, fmt.Errorf("converting: %w", err)
	}

	status := statusConverted
	out, ok := convert.RoundTrip(docxBytes)
	if !ok {
		status = statusUnvalidated
	}

	preview, err := convert.Preview(out, s.cfg.MaxPreviewParagraphs)
	if err != nil {
		// Preview is best-effort and never blocks delivery.
		preview = ""
		status += statusPreviewSuffix
	}

	if ok {
		s.observe("success")
	} else {
		s.observe("degraded")
	}
	return &Result{
		OutputFilename: OutputFilename(originalFilename),
		DocxBytes:      out,
		StatusMessage:  status,
		Preview:        preview,
	}, nil
}

// ConvertAndArchive converts and then persists the output: object first,
// record second, with storage rollback if the record save fails.
func (s *conversionService) ConvertAndArchive(ctx context.Context, pdf []byte, originalFilename string) (*model.Conversion, *Result, error) {
	res, err := s.Convert(ctx, pdf, originalFilename)
	if err != nil {
		return nil, nil, err
	}

	id := uuid.New().String()
	key := filepath.ToSlash(filepath.Join("conversions", id+".docx"))

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(res.DocxBytes), storage.PutObjectOptions{
		Size:        int64(len(res.DocxBytes)),
		ContentType: docxContentType,
		Metadata: map[string]string{
			"source-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("archive to storage: %w", err)
	}

	conv := &model.Conversion{
		ID:             id,
		SourceFilename: filepath.Base(originalFilename),
		OutputFilename: res.OutputFilename,
		StoragePath:    objInfo.Key,
		Size:           objInfo.Size,
		StatusMessage:  res.StatusMessage,
		Preview:        res.Preview,
		CreatedAt:      time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, conv)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, nil, fmt.Errorf("record save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, nil, fmt.Errorf("record save failed: %w", err)
	}
	return stored, res, nil
}

// List returns paginated conversions without exposing repository types.
func (s *conversionService) List(ctx context.Context, limit, offset int) (*ConversionListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ConversionListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a conversion by ID.
func (s *conversionService) Get(ctx context.Context, id string) (*model.Conversion, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	conv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return conv, nil
}

// Download streams the archived DOCX for a conversion.
func (s *conversionService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Conversion, error) {
	conv, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, conv.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch from storage: %w", err)
	}
	return rc, conv, nil
}

// DownloadURL returns a pre-signed URL for the archived DOCX.
func (s *conversionService) DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	conv, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, conv.StoragePath, expiry)
}

// Delete removes a conversion from storage, then deletes its record.
func (s *conversionService) Delete(ctx context.Context, id string) error {
	conv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	// Delete from storage first; if this fails, keep the record to avoid losing the reference
	if err := s.store.Delete(ctx, conv.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	// Delete record (repository ignores missing row errors as per contract)
	return s.repo.Delete(ctx, id)
}

// OutputFilename derives the download name from the uploaded name: the base
// name with its extension swapped for .docx (report.pdf -> report.docx).
func OutputFilename(originalFilename string) string {
	base := filepath.Base(originalFilename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." {
		stem = "document"
	}
	return stem + ".docx"
}
