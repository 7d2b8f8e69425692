package repository

import (
	"context"

	"github.com/Data-Science-Wallah/pdf-to-doc/internal/model"
)

// ConversionRepository defines data access for conversion history using SQL queries only.
// No business logic here — strictly persistence operations.
type ConversionRepository interface {
	// Create inserts a new conversion record.
	// The caller provides required fields (ID, CreatedAt); returns the stored
	// record, which may include values set by the database.
	Create(ctx context.Context, conv *model.Conversion) (*model.Conversion, error)

	// FindByID returns a conversion by its ID.
	FindByID(ctx context.Context, id string) (*model.Conversion, error)

	// List returns a paginated list of conversions and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Conversion], error)

	// Delete removes a conversion by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
