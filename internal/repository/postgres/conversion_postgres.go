package postgres

import (
	"context"
	"database/sql"

	"github.com/Data-Science-Wallah/pdf-to-doc/internal/model"
	"github.com/Data-Science-Wallah/pdf-to-doc/internal/repository"
)

// ConversionPostgres is a PostgreSQL implementation of repository.ConversionRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ConversionPostgres struct {
	db *sql.DB
}

// NewConversionPostgres creates a new ConversionPostgres repository.
func NewConversionPostgres(db *sql.DB) *ConversionPostgres {
	return &ConversionPostgres{db: db}
}

var _ repository.ConversionRepository = (*ConversionPostgres)(nil)

// Create inserts a new conversion row and returns the stored record.
func (r *ConversionPostgres) Create(ctx context.Context, conv *model.Conversion) (*model.Conversion, error) {
	const q = `
		INSERT INTO conversions (id, source_filename, output_filename, storage_path, size, status_message, preview, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, source_filename, output_filename, storage_path, size, status_message, preview, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		conv.ID,
		conv.SourceFilename,
		conv.OutputFilename,
		conv.StoragePath,
		conv.Size,
		conv.StatusMessage,
		conv.Preview,
		conv.CreatedAt,
	)
	var out model.Conversion
	if err := row.Scan(
		&out.ID,
		&out.SourceFilename,
		&out.OutputFilename,
		&out.StoragePath,
		&out.Size,
		&out.StatusMessage,
		&out.Preview,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single conversion by its ID.
func (r *ConversionPostgres) FindByID(ctx context.Context, id string) (*model.Conversion, error) {
	const q = `
		SELECT id, source_filename, output_filename, storage_path, size, status_message, preview, created_at
		FROM conversions
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var c model.Conversion
	if err := row.Scan(
		&c.ID,
		&c.SourceFilename,
		&c.OutputFilename,
		&c.StoragePath,
		&c.Size,
		&c.StatusMessage,
		&c.Preview,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns conversions using LIMIT/OFFSET pagination and a total count.
func (r *ConversionPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Conversion], error) {
	const countQ = `SELECT COUNT(*) FROM conversions`
	var total int
	if err := r.db.QueryRowContext(ctx, countQ).Scan(&total); err != nil {
		return nil, err
	}

	const q = `
		SELECT id, source_filename, output_filename, storage_path, size, status_message, preview, created_at
		FROM conversions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Conversion, 0, pq.Limit)
	for rows.Next() {
		var c model.Conversion
		if err := rows.Scan(
			&c.ID,
			&c.SourceFilename,
			&c.OutputFilename,
			&c.StoragePath,
			&c.Size,
			&c.StatusMessage,
			&c.Preview,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Conversion]{Items: items, Total: total}, nil
}

// Delete removes a conversion row by ID. Missing rows are not an error.
func (r *ConversionPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM conversions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
