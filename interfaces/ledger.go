package interfaces

import "context"

// TxWaiter represents a submitted ledger transaction whose confirmation can
// be awaited. Wait blocks until the transaction is confirmed or the context
// is cancelled.
type TxWaiter interface {
	// Hash returns the transaction hash for logging.
	Hash() string

	// Wait blocks until the transaction is confirmed by the ledger.
	Wait(ctx context.Context) error
}

// VerifyOutcome is the tagged result of the conditional
// decryption-verification write.
type VerifyOutcome int

const (
	// VerifyApplied means our transaction set the verified flag.
	VerifyApplied VerifyOutcome = iota

	// VerifyAlreadyApplied means a concurrent actor verified the asset
	// first; the write was a no-op and the revealed value is available
	// through a fresh read.
	VerifyAlreadyApplied
)

// String returns the outcome name.
func (o VerifyOutcome) String() string {
	switch o {
	case VerifyApplied:
		return "applied"
	case VerifyAlreadyApplied:
		return "already-applied"
	default:
		return "unknown"
	}
}

// CreateAssetParams carries everything the ledger needs to create a new
// asset record.
type CreateAssetParams struct {
	ID          AssetID
	DisplayName string

	// CipherBlob and InputProof come from EncryptionService.Encrypt.
	CipherBlob []byte
	InputProof []byte

	// PublicPrice and PublicHint are published in cleartext. The hint is a
	// deliberate plaintext replica of the encrypted score.
	PublicPrice uint64
	PublicHint  uint64

	CategoryTag string
}

// LedgerGateway is the marketplace contract surface consumed by the workflow
// core. Read operations never create transactions. Write operations return
// once submitted; confirmation is awaited separately where the interface
// exposes a TxWaiter, or internally where it does not.
type LedgerGateway interface {
	// AllAssetIDs returns every asset id in ledger enumeration order.
	AllAssetIDs(ctx context.Context) ([]AssetID, error)

	// AssetRecord fetches the confirmed record for an asset.
	// Returns ErrAssetNotFound for unknown ids.
	AssetRecord(ctx context.Context, id AssetID) (*AssetRecord, error)

	// ProtectedValueHandle fetches the opaque ciphertext handle of an asset.
	ProtectedValueHandle(ctx context.Context, id AssetID) (Handle, error)

	// IsAvailable probes contract liveness.
	IsAvailable(ctx context.Context) (bool, error)

	// CreateAssetRecord submits the asset creation transaction and returns
	// a waiter for its confirmation.
	CreateAssetRecord(ctx context.Context, params CreateAssetParams) (TxWaiter, error)

	// VerifyDecryption commits clear values and their validity proof for an
	// asset. The write is conditional on the asset being unverified: if a
	// concurrent verification won, the outcome is VerifyAlreadyApplied and
	// the error is nil. The call blocks until the transaction is confirmed.
	VerifyDecryption(ctx context.Context, id AssetID, clearValues []byte, proof []byte) (VerifyOutcome, error)
}
