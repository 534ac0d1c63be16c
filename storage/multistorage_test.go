package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

// fakeBackend is an in-memory backend with switchable availability and
// injectable failures.
type fakeBackend struct {
	name      string
	blobs     map[interfaces.ContentID][]byte
	down      bool
	storeErr  error
	fetchErr  error
	storeOps  int
}

func newFakeBackend(name string) *fakeBackend {
	return &fakeBackend{name: name, blobs: make(map[interfaces.ContentID][]byte)}
}

func (b *fakeBackend) Fetch(ctx context.Context, id interfaces.ContentID, contentType interfaces.ContentType) ([]byte, error) {
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	data, ok := b.blobs[id]
	if !ok {
		return nil, interfaces.ErrContentNotFound
	}
	return data, nil
}

func (b *fakeBackend) Store(ctx context.Context, data []byte, contentType interfaces.ContentType) (interfaces.ContentID, error) {
	b.storeOps++
	if b.storeErr != nil {
		return interfaces.ContentID{}, b.storeErr
	}
	id := interfaces.ComputeID(data)
	b.blobs[id] = data
	return id, nil
}

func (b *fakeBackend) Available(ctx context.Context) bool { return !b.down }
func (b *fakeBackend) Name() string                       { return b.name }
func (b *fakeBackend) LocationURI() string                { return "fake://" + b.name }

func TestMultiStorageReplicatesWrites(t *testing.T) {
	first := newFakeBackend("first")
	second := newFakeBackend("second")
	multi := NewMultiStorageBackend([]interfaces.StorageBackend{first, second}, discardLogger())

	data := []byte("model card")
	id, err := multi.Store(context.Background(), data, interfaces.ModelCardType)
	require.NoError(t, err)

	assert.Contains(t, first.blobs, id)
	assert.Contains(t, second.blobs, id)
}

func TestMultiStorageFetchFallsBack(t *testing.T) {
	first := newFakeBackend("first")
	second := newFakeBackend("second")
	multi := NewMultiStorageBackend([]interfaces.StorageBackend{first, second}, discardLogger())

	data := []byte("model card")
	id, err := multi.Store(context.Background(), data, interfaces.ModelCardType)
	require.NoError(t, err)

	// First backend degrades; the second still serves the content.
	first.fetchErr = errors.New("disk error")
	fetched, err := multi.Fetch(context.Background(), id, interfaces.ModelCardType)
	require.NoError(t, err)
	assert.Equal(t, data, fetched)
}

func TestMultiStorageSkipsUnavailableBackends(t *testing.T) {
	first := newFakeBackend("first")
	first.down = true
	second := newFakeBackend("second")
	multi := NewMultiStorageBackend([]interfaces.StorageBackend{first, second}, discardLogger())

	data := []byte("model card")
	_, err := multi.Store(context.Background(), data, interfaces.ModelCardType)
	require.NoError(t, err)

	assert.Zero(t, first.storeOps)
	assert.Equal(t, 1, second.storeOps)
	assert.True(t, multi.Available(context.Background()))
}

func TestMultiStorageAllBackendsFail(t *testing.T) {
	first := newFakeBackend("first")
	first.storeErr = errors.New("bucket gone")
	second := newFakeBackend("second")
	second.down = true
	multi := NewMultiStorageBackend([]interfaces.StorageBackend{first, second}, discardLogger())

	_, err := multi.Store(context.Background(), []byte("x"), interfaces.ModelCardType)
	assert.Error(t, err)

	_, err = multi.Fetch(context.Background(), interfaces.ComputeID([]byte("x")), interfaces.ModelCardType)
	assert.Error(t, err)
}

func TestMultiStorageLocationURI(t *testing.T) {
	multi := NewMultiStorageBackend([]interfaces.StorageBackend{
		newFakeBackend("a"), newFakeBackend("b"),
	}, discardLogger())

	assert.Equal(t, fmt.Sprintf("multi:[%s,%s]", "fake://a", "fake://b"), multi.LocationURI())
}
