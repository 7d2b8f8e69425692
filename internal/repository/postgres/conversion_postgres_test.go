package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/Data-Science-Wallah/pdf-to-doc/internal/model"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/repository"
)

var conversionColumns = []string{
	"id", "source_filename", "output_filename", "storage_path",
	"size", "status_message", "preview", "created_at",
}

func TestConversionPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewConversionPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	conv := &model.Conversion{
		ID:             "test-uuid",
		SourceFilename: "report.pdf",
		OutputFilename: "report.docx",
		StoragePath:    "conversions/test-uuid.docx",
		Size:           2048,
		StatusMessage:  "converted with layout analysis",
		Preview:        "first paragraph",
		CreatedAt:      now,
	}

	rows := sqlmock.NewRows(conversionColumns).
		AddRow(conv.ID, conv.SourceFilename, conv.OutputFilename, conv.StoragePath,
			conv.Size, conv.StatusMessage, conv.Preview, conv.CreatedAt)

	mock.ExpectQuery("INSERT INTO conversions").
		WithArgs(conv.ID, conv.SourceFilename, conv.OutputFilename, conv.StoragePath,
			conv.Size, conv.StatusMessage, conv.Preview, conv.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, conv)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, conv.ID, result.ID)
	assert.Equal(t, conv.OutputFilename, result.OutputFilename)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversionPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewConversionPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(conversionColumns).
			AddRow("test-id", "a.pdf", "a.docx", "conversions/a.docx", 100, "ok", "", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM conversions WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		conv, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, conv)
		assert.Equal(t, "test-id", conv.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM conversions WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		conv, err := repo.FindByID(ctx, "missing")

		assert.Nil(t, conv)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversionPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewConversionPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows(conversionColumns).
		AddRow("id-1", "a.pdf", "a.docx", "conversions/a.docx", 100, "ok", "", time.Now()).
		AddRow("id-2", "b.pdf", "b.docx", "conversions/b.docx", 200, "ok", "", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM conversions ORDER BY created_at").
		WithArgs(10, 0).
		WillReturnRows(rows)

	res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 2, res.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversionPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewConversionPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM conversions").
		WithArgs("test-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(ctx, "test-id"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
