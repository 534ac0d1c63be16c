package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

func TestFactoryFileBackend(t *testing.T) {
	factory := NewFactory(discardLogger())

	backend, err := factory.StorageBackendFor(interfaces.StorageBackendLocation("file://" + t.TempDir()))
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, backend)
}

func TestFactoryS3Backend(t *testing.T) {
	factory := NewFactory(discardLogger())

	backend, err := factory.StorageBackendFor("s3://AKIA:secret@cards-bucket/marketplace/?region=eu-west-1")
	require.NoError(t, err)
	require.IsType(t, &S3Backend{}, backend)
	assert.Equal(t, "s3-cards-bucket", backend.Name())
}

func TestFactoryIPFSBackend(t *testing.T) {
	factory := NewFactory(discardLogger())

	backend, err := factory.StorageBackendFor("ipfs://ipfs.example.com/")
	require.NoError(t, err)
	require.IsType(t, &IPFSBackend{}, backend)

	// Default API port applies when none is given.
	assert.Equal(t, "ipfs-ipfs.example.com-5001", backend.Name())
}

func TestFactoryVaultBackend(t *testing.T) {
	factory := NewFactory(discardLogger())

	backend, err := factory.StorageBackendFor("vault://vault.example.com:8200/secret/marketplace?token=abc")
	require.NoError(t, err)
	require.IsType(t, &VaultBackend{}, backend)
	assert.Equal(t, "vault-secret-marketplace", backend.Name())

	_, err = factory.StorageBackendFor("vault://vault.example.com:8200/secret")
	assert.ErrorIs(t, err, interfaces.ErrInvalidLocationURI)
}

func TestFactoryUnsupportedScheme(t *testing.T) {
	factory := NewFactory(discardLogger())

	_, err := factory.StorageBackendFor("gopher://example.com")
	assert.ErrorIs(t, err, interfaces.ErrInvalidLocationURI)
}

func TestFactoryMultiBackendSkipsInvalid(t *testing.T) {
	factory := NewFactory(discardLogger())

	backend, err := factory.CreateMultiBackend([]interfaces.StorageBackendLocation{
		interfaces.StorageBackendLocation("file://" + t.TempDir()),
		"gopher://bad",
	})
	require.NoError(t, err)
	assert.IsType(t, &MultiStorageBackend{}, backend)

	_, err = factory.CreateMultiBackend([]interfaces.StorageBackendLocation{"gopher://bad"})
	assert.Error(t, err)
}
