package fhe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/atomic"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

// RelayerClient implements interfaces.EncryptionService against an FHE
// coprocessor relayer's HTTP API.
type RelayerClient struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger

	ready atomic.Bool
}

// NewRelayerClient creates a client for the relayer at baseURL.
func NewRelayerClient(baseURL string, log *slog.Logger) *RelayerClient {
	return &RelayerClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
		log:     log,
	}
}

type encryptRequest struct {
	Target string `json:"target"`
	Owner  string `json:"owner"`
	Value  uint64 `json:"value"`
}

type encryptResponse struct {
	CipherBlob hexutil.Bytes `json:"cipher_blob"`
	Proof      hexutil.Bytes `json:"proof"`
}

type publicDecryptRequest struct {
	Target  string   `json:"target"`
	Handles []string `json:"handles"`
}

type publicDecryptResponse struct {
	ClearValues   map[string]uint64 `json:"clear_values"`
	EncodedValues hexutil.Bytes     `json:"encoded_values"`
	Proof         hexutil.Bytes     `json:"proof"`
}

// Initialize probes the relayer's key endpoint. The client refuses Encrypt
// and PrepareDecryption calls until this succeeds.
func (c *RelayerClient) Initialize(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/keyurl", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: relayer unreachable: %v", interfaces.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: relayer key endpoint returned %d", interfaces.ErrServiceUnavailable, resp.StatusCode)
	}

	c.ready.Store(true)
	c.log.Info("FHE relayer initialized", "url", c.baseURL)
	return nil
}

// Status reports readiness.
func (c *RelayerClient) Status() interfaces.EncryptionStatus {
	if c.ready.Load() {
		return interfaces.EncryptionReady
	}
	return interfaces.EncryptionNotReady
}

// Encrypt asks the relayer to encrypt value under the target contract's
// context for the given owner.
func (c *RelayerClient) Encrypt(ctx context.Context, target interfaces.ContractAddress, owner interfaces.AccountAddress, value uint64) (*interfaces.EncryptedInput, error) {
	if !c.ready.Load() {
		return nil, interfaces.ErrServiceNotReady
	}

	var out encryptResponse
	err := c.post(ctx, "/v1/encrypt", encryptRequest{
		Target: target.String(),
		Owner:  owner.String(),
		Value:  value,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrEncryption, err)
	}

	return &interfaces.EncryptedInput{
		CipherBlob: out.CipherBlob,
		Proof:      out.Proof,
	}, nil
}

// PrepareDecryption asks the relayer for a public decryption of the handles.
func (c *RelayerClient) PrepareDecryption(ctx context.Context, handles []interfaces.Handle, target interfaces.ContractAddress) (*interfaces.DecryptionProof, error) {
	if !c.ready.Load() {
		return nil, interfaces.ErrServiceNotReady
	}

	req := publicDecryptRequest{Target: target.String()}
	for _, h := range handles {
		req.Handles = append(req.Handles, h.String())
	}

	var out publicDecryptResponse
	if err := c.post(ctx, "/v1/public-decrypt", req, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrEncryption, err)
	}

	clear := make(map[interfaces.Handle]uint64, len(out.ClearValues))
	for hexHandle, value := range out.ClearValues {
		h, err := interfaces.NewHandleFromHex(hexHandle)
		if err != nil {
			return nil, fmt.Errorf("%w: relayer returned malformed handle %q", interfaces.ErrEncryption, hexHandle)
		}
		clear[h] = value
	}

	return &interfaces.DecryptionProof{
		ClearValues:   clear,
		EncodedValues: out.EncodedValues,
		Proof:         out.Proof,
	}, nil
}

func (c *RelayerClient) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("relayer %s returned %d: %s", path, resp.StatusCode, string(msg))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
