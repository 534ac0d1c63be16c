package fhe

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

// SimService is a deterministic, in-process encryption service. It derives a
// per-contract cipher key from a master seed, remembers every plaintext it
// encrypted, and produces digest proofs. Suitable for tests and local
// development only.
type SimService struct {
	seed []byte

	mu         sync.RWMutex
	plaintexts map[interfaces.Handle]uint64

	ready atomic.Bool
}

// NewSimService creates a sim service from a master seed.
// The seed must be at least 32 bytes long.
func NewSimService(seed []byte) (*SimService, error) {
	if len(seed) < 32 {
		return nil, errors.New("seed must be at least 32 bytes")
	}

	s := &SimService{
		seed:       append([]byte(nil), seed...),
		plaintexts: make(map[interfaces.Handle]uint64),
	}
	return s, nil
}

// Initialize marks the service ready. There is no remote key material to
// fetch in the sim.
func (s *SimService) Initialize(ctx context.Context) error {
	s.ready.Store(true)
	return nil
}

// Status reports readiness.
func (s *SimService) Status() interfaces.EncryptionStatus {
	if s.ready.Load() {
		return interfaces.EncryptionReady
	}
	return interfaces.EncryptionNotReady
}

// Encrypt encrypts value under the target contract's derived key and records
// the plaintext so a later PrepareDecryption can resolve the handle.
func (s *SimService) Encrypt(ctx context.Context, target interfaces.ContractAddress, owner interfaces.AccountAddress, value uint64) (*interfaces.EncryptedInput, error) {
	if !s.ready.Load() {
		return nil, interfaces.ErrServiceNotReady
	}

	key, err := s.deriveKey(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrEncryption, err)
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrEncryption, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrEncryption, err)
	}

	plaintext := make([]byte, 8+len(owner))
	binary.BigEndian.PutUint64(plaintext[:8], value)
	copy(plaintext[8:], owner.Bytes())

	blob := append(nonce, aead.Seal(nil, nonce, plaintext, target.Bytes())...)
	handle := HandleFor(blob)

	s.mu.Lock()
	s.plaintexts[handle] = value
	s.mu.Unlock()

	return &interfaces.EncryptedInput{
		CipherBlob: blob,
		Proof:      inputProof(target, owner, blob),
	}, nil
}

// PrepareDecryption resolves the clear value for each handle and produces
// the encoded payload with its validity proof. Handles the sim never
// encrypted (or was not seeded with) are an error.
func (s *SimService) PrepareDecryption(ctx context.Context, handles []interfaces.Handle, target interfaces.ContractAddress) (*interfaces.DecryptionProof, error) {
	if !s.ready.Load() {
		return nil, interfaces.ErrServiceNotReady
	}
	if len(handles) == 0 {
		return nil, fmt.Errorf("%w: no handles requested", interfaces.ErrEncryption)
	}

	clear := make(map[interfaces.Handle]uint64, len(handles))
	s.mu.RLock()
	for _, h := range handles {
		v, ok := s.plaintexts[h]
		if !ok {
			s.mu.RUnlock()
			return nil, fmt.Errorf("%w: unknown ciphertext handle %s", interfaces.ErrEncryption, h)
		}
		clear[h] = v
	}
	s.mu.RUnlock()

	encoded, err := EncodeClearValues(clear)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrEncryption, err)
	}

	return &interfaces.DecryptionProof{
		ClearValues:   clear,
		EncodedValues: encoded,
		Proof:         decryptionProof(target, encoded),
	}, nil
}

// SeedPlaintext registers a handle-to-plaintext mapping directly, for tests
// that construct ledger state without going through Encrypt.
func (s *SimService) SeedPlaintext(handle interfaces.Handle, value uint64) {
	s.mu.Lock()
	s.plaintexts[handle] = value
	s.mu.Unlock()
}

func (s *SimService) deriveKey(target interfaces.ContractAddress) ([]byte, error) {
	r := hkdf.New(sha256.New, s.seed, target.Bytes(), []byte("model-cipher"))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

func inputProof(target interfaces.ContractAddress, owner interfaces.AccountAddress, blob []byte) []byte {
	h := sha256.New()
	h.Write([]byte("input-proof"))
	h.Write(target.Bytes())
	h.Write(owner.Bytes())
	h.Write(blob)
	return h.Sum(nil)
}

func decryptionProof(target interfaces.ContractAddress, encoded []byte) []byte {
	h := sha256.New()
	h.Write([]byte("decryption-proof"))
	h.Write(target.Bytes())
	h.Write(encoded)
	return h.Sum(nil)
}
