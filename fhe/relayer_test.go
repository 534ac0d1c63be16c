package fhe

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

func newRelayerTestServer(t *testing.T) (*httptest.Server, *RelayerClient) {
	t.Helper()

	handle := HandleFor([]byte("cipher"))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/keyurl", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /v1/encrypt", func(w http.ResponseWriter, r *http.Request) {
		var req encryptRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, uint64(87), req.Value)

		json.NewEncoder(w).Encode(encryptResponse{
			CipherBlob: hexutil.Bytes("cipher"),
			Proof:      hexutil.Bytes("proof"),
		})
	})
	mux.HandleFunc("POST /v1/public-decrypt", func(w http.ResponseWriter, r *http.Request) {
		var req publicDecryptRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Handles, 1)
		assert.Equal(t, handle.String(), req.Handles[0])

		json.NewEncoder(w).Encode(publicDecryptResponse{
			ClearValues:   map[string]uint64{handle.String(): 87},
			EncodedValues: hexutil.Bytes("encoded"),
			Proof:         hexutil.Bytes("proof"),
		})
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	client := NewRelayerClient(ts.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return ts, client
}

func TestRelayerClientLifecycle(t *testing.T) {
	_, client := newRelayerTestServer(t)

	// Calls before Initialize are refused.
	_, err := client.Encrypt(context.Background(), interfaces.ContractAddress{1}, interfaces.AccountAddress{2}, 87)
	assert.ErrorIs(t, err, interfaces.ErrServiceNotReady)

	require.NoError(t, client.Initialize(context.Background()))
	assert.Equal(t, interfaces.EncryptionReady, client.Status())

	encrypted, err := client.Encrypt(context.Background(), interfaces.ContractAddress{1}, interfaces.AccountAddress{2}, 87)
	require.NoError(t, err)
	assert.Equal(t, []byte("cipher"), encrypted.CipherBlob)
	assert.Equal(t, []byte("proof"), encrypted.Proof)

	handle := HandleFor([]byte("cipher"))
	proof, err := client.PrepareDecryption(context.Background(), []interfaces.Handle{handle}, interfaces.ContractAddress{1})
	require.NoError(t, err)
	assert.Equal(t, uint64(87), proof.ClearValues[handle])
	assert.Equal(t, []byte("encoded"), proof.EncodedValues)
}

func TestRelayerClientInitializeFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewRelayerClient(ts.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := client.Initialize(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrServiceUnavailable)
	assert.Equal(t, interfaces.EncryptionNotReady, client.Status())
}

func TestRelayerClientErrorResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/keyurl" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewRelayerClient(ts.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, client.Initialize(context.Background()))

	_, err := client.Encrypt(context.Background(), interfaces.ContractAddress{1}, interfaces.AccountAddress{2}, 1)
	assert.ErrorIs(t, err, interfaces.ErrEncryption)
}
