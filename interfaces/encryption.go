package interfaces

import "context"

// EncryptionStatus reports whether the encryption service is ready for use.
type EncryptionStatus int

const (
	// EncryptionNotReady means Initialize has not completed.
	EncryptionNotReady EncryptionStatus = iota

	// EncryptionReady means the service accepts Encrypt and
	// PrepareDecryption calls.
	EncryptionReady
)

// String returns the status name.
func (s EncryptionStatus) String() string {
	switch s {
	case EncryptionNotReady:
		return "not-ready"
	case EncryptionReady:
		return "ready"
	default:
		return "unknown"
	}
}

// EncryptedInput is the result of encrypting a plaintext value for a target
// contract: the ciphertext and the input proof the ledger verifies on write.
type EncryptedInput struct {
	CipherBlob []byte
	Proof      []byte
}

// DecryptionProof carries the clear values for a set of handles together
// with the validity proof the ledger verifies on commit. ClearValues maps
// each requested handle to its decrypted integer; EncodedValues is the same
// mapping in the ledger's wire encoding, ready for submission.
type DecryptionProof struct {
	ClearValues   map[Handle]uint64
	EncodedValues []byte
	Proof         []byte
}

// EncryptionService is the FHE coprocessor surface consumed by the workflow
// core. It is an explicit two-step protocol: PrepareDecryption computes the
// proof, and the caller commits it to the ledger. Implementations must not
// submit ledger transactions themselves.
type EncryptionService interface {
	// Initialize prepares the service (key material, relayer session).
	// Operations fail with ErrServiceNotReady until it completes.
	Initialize(ctx context.Context) error

	// Status reports readiness without blocking.
	Status() EncryptionStatus

	// Encrypt encrypts a plaintext integer under the target contract's
	// context for the given owner.
	Encrypt(ctx context.Context, target ContractAddress, owner AccountAddress, value uint64) (*EncryptedInput, error)

	// PrepareDecryption computes clear values and a validity proof for the
	// given ciphertext handles. It does not touch the ledger.
	PrepareDecryption(ctx context.Context, handles []Handle, target ContractAddress) (*DecryptionProof, error)
}
