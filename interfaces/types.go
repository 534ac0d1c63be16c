package interfaces

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// AssetID is the opaque unique identifier of a published asset. IDs are
// assigned by the workflow core at creation time and never reused.
type AssetID string

// Handle is an opaque 32-byte reference into the encryption service's
// ciphertext space. Only the encryption service can resolve it.
type Handle [32]byte

// NewHandleFromBytes creates a handle from a raw 32-byte slice.
func NewHandleFromBytes(source []byte) (Handle, error) {
	if len(source) != 32 {
		return Handle{}, errors.New("invalid handle length: must be 32 bytes")
	}

	var h Handle
	copy(h[:], source)
	return h, nil
}

// NewHandleFromHex creates a handle from a 64-character hex string,
// with or without a 0x prefix.
func NewHandleFromHex(source string) (Handle, error) {
	clean := strings.TrimPrefix(source, "0x")
	if len(clean) != 64 {
		return Handle{}, errors.New("invalid handle length: hex string must be 64 characters")
	}

	raw, err := hex.DecodeString(clean)
	if err != nil {
		return Handle{}, fmt.Errorf("invalid hex format: %w", err)
	}

	return NewHandleFromBytes(raw)
}

// String returns the hex representation of the handle.
func (h Handle) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns the raw 32-byte handle.
func (h Handle) Bytes() []byte {
	return h[:]
}

// ContractAddress represents the marketplace contract address. Ciphertexts
// and decryption proofs are bound to it (the "target context").
type ContractAddress [20]byte

// NewContractAddressFromBytes creates a contract address from a 20-byte slice.
func NewContractAddressFromBytes(addr []byte) (ContractAddress, error) {
	if len(addr) != 20 {
		return ContractAddress{}, errors.New("invalid address length: must be 20 bytes")
	}

	var res ContractAddress
	copy(res[:], addr)
	return res, nil
}

// NewContractAddressFromHex creates a contract address from a 40-character
// hex string, with or without a 0x prefix.
func NewContractAddressFromHex(addr string) (ContractAddress, error) {
	clean := strings.TrimPrefix(addr, "0x")
	if len(clean) != 40 {
		return ContractAddress{}, errors.New("invalid address length: hex string must be 40 characters")
	}

	addrBytes, err := hex.DecodeString(clean)
	if err != nil {
		return ContractAddress{}, fmt.Errorf("invalid hex format: %w", err)
	}

	return NewContractAddressFromBytes(addrBytes)
}

// String returns the hex string representation of the contract address.
func (addr ContractAddress) String() string {
	return hex.EncodeToString(addr[:])
}

// Bytes returns the raw 20-byte address.
func (addr ContractAddress) Bytes() []byte {
	return addr[:]
}

// AccountAddress identifies a user of the marketplace: an asset creator or a
// reveal requester. The zero value means "not authenticated".
type AccountAddress [20]byte

// NewAccountAddressFromHex creates an account address from a 40-character hex
// string, with or without a 0x prefix.
func NewAccountAddressFromHex(addr string) (AccountAddress, error) {
	a, err := NewContractAddressFromHex(addr)
	return AccountAddress(a), err
}

// String returns the hex string representation of the account address.
func (addr AccountAddress) String() string {
	return hex.EncodeToString(addr[:])
}

// Bytes returns the raw 20-byte address.
func (addr AccountAddress) Bytes() []byte {
	return addr[:]
}

// IsZero reports whether the address is the zero address.
func (addr AccountAddress) IsZero() bool {
	return addr == AccountAddress{}
}

// AssetRecord is one published encrypted asset as stored by the ledger.
// Records held by the client are value copies of the confirmed on-chain
// state; every refresh re-fetches truth from the ledger.
type AssetRecord struct {
	// ID is the unique asset identifier, assigned at creation.
	ID AssetID `json:"id"`

	// DisplayName is the owner-supplied free-text name.
	DisplayName string `json:"display_name"`

	// ProtectedValueHandle references the encrypted quality score.
	// Immutable after creation.
	ProtectedValueHandle Handle `json:"protected_value_handle"`

	// PublicMetric1 is the plaintext price, doubling as the download
	// counter in marketplace statistics.
	PublicMetric1 uint64 `json:"public_metric1"`

	// PublicMetric2 is the plaintext quality hint, a cleartext replica of
	// the encrypted score published deliberately for display.
	PublicMetric2 uint64 `json:"public_metric2"`

	// IsVerified transitions to true exactly once, via a successful
	// decryption-verification transaction, and never reverts.
	IsVerified bool `json:"is_verified"`

	// RevealedValue is meaningless until IsVerified. It is set by the
	// ledger at verification time, never computed or cached locally.
	RevealedValue uint64 `json:"revealed_value"`

	// CreatorIdentity and CreationTimestamp are immutable, set at creation.
	CreatorIdentity   AccountAddress `json:"creator_identity"`
	CreationTimestamp int64          `json:"creation_timestamp"`

	// CategoryTag is the free-form category descriptor stored on chain.
	CategoryTag string `json:"category_tag"`
}
