package convert

import (
	"fmt"
	"os"
)

// Stager writes uploaded PDF bytes to uniquely named temporary files so that
// path-based tooling (the converter) can read them. Staged files live for a
// single request; the returned cleanup func removes them unconditionally.
type Stager struct {
	dir string
}

// NewStager creates a Stager that stages files under dir.
// An empty dir means the OS default temp directory.
func NewStager(dir string) *Stager {
	return &Stager{dir: dir}
}

// Stage writes data to a new temporary file and returns its path together
// with a cleanup func. Callers must defer cleanup on every path; it is safe
// to call even after a partial failure. os.CreateTemp guarantees the name is
// unique, so concurrent requests never share a staged path.
func (s *Stager) Stage(data []byte) (string, func(), error) {
	if len(data) == 0 {
		return "", func() {}, ErrEmptyInput
	}

	f, err := os.CreateTemp(s.dir, "upload-*.pdf")
	if err != nil {
		return "", func() {}, fmt.Errorf("%w: create temp file: %v", ErrStaging, err)
	}
	path := f.Name()
	cleanup := func() {
		// Removal errors are not actionable here; the file is in the temp
		// dir and will be reaped by the OS eventually.
		_ = os.Remove(path)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("%w: write staged file: %v", ErrStaging, err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("%w: close staged file: %v", ErrStaging, err)
	}

	return path, cleanup, nil
}
