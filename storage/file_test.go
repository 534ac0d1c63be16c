package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileBackendRoundTrip(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), discardLogger())
	require.NoError(t, err)

	data := []byte(`{"name":"Vision Transformer","category":"Vision"}`)
	id, err := backend.Store(context.Background(), data, interfaces.ModelCardType)
	require.NoError(t, err)
	assert.Equal(t, interfaces.ComputeID(data), id)

	fetched, err := backend.Fetch(context.Background(), id, interfaces.ModelCardType)
	require.NoError(t, err)
	assert.Equal(t, data, fetched)

	assert.True(t, backend.Available(context.Background()))
}

func TestFileBackendNamespaces(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), discardLogger())
	require.NoError(t, err)

	data := []byte("shared bytes")
	id, err := backend.Store(context.Background(), data, interfaces.ModelCardType)
	require.NoError(t, err)

	// Same content id, different namespace.
	_, err = backend.Fetch(context.Background(), id, interfaces.AttachmentType)
	assert.ErrorIs(t, err, interfaces.ErrContentNotFound)
}

func TestFileBackendNotFound(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), discardLogger())
	require.NoError(t, err)

	_, err = backend.Fetch(context.Background(), interfaces.ComputeID([]byte("missing")), interfaces.ModelCardType)
	assert.ErrorIs(t, err, interfaces.ErrContentNotFound)
}

func TestFileBackendLocationURI(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cards")
	backend, err := NewFileBackend(dir, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "file://"+dir, backend.LocationURI())
	assert.Equal(t, "file-cards", backend.Name())
}
