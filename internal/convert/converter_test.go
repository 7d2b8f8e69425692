package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutConverter_RejectsCorruptInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 this is not a real pdf"), 0o600))

	c := NewLayoutConverter()
	out, err := c.Convert(context.Background(), path)

	assert.ErrorIs(t, err, ErrConversion)
	assert.Nil(t, out, "no partial output on failure")
}

func TestLayoutConverter_RejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text masquerading as pdf"), 0o600))

	c := NewLayoutConverter()
	_, err := c.Convert(context.Background(), path)
	assert.ErrorIs(t, err, ErrConversion)
}

func TestLayoutConverter_MissingFile(t *testing.T) {
	c := NewLayoutConverter()
	_, err := c.Convert(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestLayoutConverter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewLayoutConverter()
	_, err := c.Convert(ctx, "irrelevant.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsEncryptionErr(t *testing.T) {
	assert.True(t, isEncryptionErr(errors.New("pdfcpu: please provide the correct password")))
	assert.True(t, isEncryptionErr(errors.New("file is encrypted")))
	assert.False(t, isEncryptionErr(errors.New("pdfcpu: no header found")))
}
