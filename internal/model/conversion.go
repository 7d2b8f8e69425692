package model

import "time"

// Conversion represents one archived PDF to DOCX conversion.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Conversion struct {
	ID             string    `json:"id"`
	SourceFilename string    `json:"source_filename"`
	OutputFilename string    `json:"output_filename"`
	StoragePath    string    `json:"storage_path"`
	Size           int64     `json:"size"`
	StatusMessage  string    `json:"status_message"`
	Preview        string    `json:"preview"`
	CreatedAt      time.Time `json:"created_at"`
}
