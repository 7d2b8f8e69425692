package convert

import "errors"

// Pipeline error kinds. Handlers match on these with errors.Is to pick
// status codes; everything else is treated as an internal error.
var (
	// ErrEmptyInput is returned when an upload carries no bytes at all.
	ErrEmptyInput = errors.New("input is empty")

	// ErrStaging covers temp-storage failures while writing the uploaded
	// PDF to disk. Fatal for the request; never retried.
	ErrStaging = errors.New("staging failed")

	// ErrConversion covers malformed or otherwise unconvertible PDFs as
	// well as internal converter failures. Fatal; the user must supply a
	// different input.
	ErrConversion = errors.New("conversion failed")

	// ErrEncrypted marks password-protected input. Kept distinct from
	// ErrConversion so the API can tell the user what to do about it.
	ErrEncrypted = errors.New("document is password protected")

	// ErrPreview covers a DOCX that cannot be re-opened for the text
	// preview. Non-fatal: the document is still delivered without one.
	ErrPreview = errors.New("preview extraction failed")
)
