package fhe

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

var (
	simTarget = interfaces.ContractAddress{0xaa}
	simOwner  = interfaces.AccountAddress{0xbb}
)

func newReadySim(t *testing.T) *SimService {
	t.Helper()

	sim, err := NewSimService(bytes.Repeat([]byte{3}, 32))
	require.NoError(t, err)
	require.NoError(t, sim.Initialize(context.Background()))
	return sim
}

func TestSimServiceSeedLength(t *testing.T) {
	_, err := NewSimService([]byte("short"))
	assert.Error(t, err)
}

func TestSimServiceNotReady(t *testing.T) {
	sim, err := NewSimService(bytes.Repeat([]byte{3}, 32))
	require.NoError(t, err)
	assert.Equal(t, interfaces.EncryptionNotReady, sim.Status())

	_, err = sim.Encrypt(context.Background(), simTarget, simOwner, 1)
	assert.ErrorIs(t, err, interfaces.ErrServiceNotReady)

	_, err = sim.PrepareDecryption(context.Background(), []interfaces.Handle{{}}, simTarget)
	assert.ErrorIs(t, err, interfaces.ErrServiceNotReady)
}

func TestSimServiceEncryptDecryptRoundTrip(t *testing.T) {
	sim := newReadySim(t)

	encrypted, err := sim.Encrypt(context.Background(), simTarget, simOwner, 87)
	require.NoError(t, err)
	assert.NotEmpty(t, encrypted.CipherBlob)
	assert.NotEmpty(t, encrypted.Proof)

	handle := HandleFor(encrypted.CipherBlob)
	proof, err := sim.PrepareDecryption(context.Background(), []interfaces.Handle{handle}, simTarget)
	require.NoError(t, err)
	assert.Equal(t, uint64(87), proof.ClearValues[handle])
	assert.NotEmpty(t, proof.Proof)

	decoded, err := DecodeClearValues(proof.EncodedValues)
	require.NoError(t, err)
	assert.Equal(t, proof.ClearValues, decoded)
}

func TestSimServiceUnknownHandle(t *testing.T) {
	sim := newReadySim(t)

	_, err := sim.PrepareDecryption(context.Background(), []interfaces.Handle{HandleFor([]byte("never seen"))}, simTarget)
	assert.ErrorIs(t, err, interfaces.ErrEncryption)

	_, err = sim.PrepareDecryption(context.Background(), nil, simTarget)
	assert.ErrorIs(t, err, interfaces.ErrEncryption)
}

func TestSimServiceSeedPlaintext(t *testing.T) {
	sim := newReadySim(t)

	handle := HandleFor([]byte("external ciphertext"))
	sim.SeedPlaintext(handle, 42)

	proof, err := sim.PrepareDecryption(context.Background(), []interfaces.Handle{handle}, simTarget)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), proof.ClearValues[handle])
}

func TestEncodeClearValuesRoundTrip(t *testing.T) {
	values := map[interfaces.Handle]uint64{
		HandleFor([]byte("a")): 1,
		HandleFor([]byte("b")): 2,
		HandleFor([]byte("c")): 0,
	}

	encoded, err := EncodeClearValues(values)
	require.NoError(t, err)

	decoded, err := DecodeClearValues(encoded)
	require.NoError(t, err)
	assert.Equal(t, values, decoded)

	// The encoding is canonical: re-encoding yields identical bytes.
	again, err := EncodeClearValues(decoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, again)
}

func TestDecodeClearValuesMalformed(t *testing.T) {
	_, err := DecodeClearValues([]byte{0x01, 0x02})
	assert.Error(t, err)
}
