// Package interfaces defines the core types and component contracts for the
// FHE model marketplace client. It is the boundary between the workflow core
// and its collaborators: the on-chain ledger gateway, the encryption service,
// and the model-card storage backends.
//
// The package deliberately contains no implementation. Packages ledger, fhe,
// storage and workflow depend on it; it depends on nothing but the standard
// library, so every component can be replaced in tests with the mocks and
// in-memory implementations shipped alongside the real clients.
//
// # Component contracts
//
// LedgerGateway covers the marketplace contract surface: enumerating assets,
// fetching records and ciphertext handles, a liveness probe, and the two
// write operations. CreateAssetRecord splits submission from confirmation via
// TxWaiter so callers can report the pending phase in between. Verification
// is a conditional write with exchange-if-unset semantics: the gateway
// reports VerifyApplied or VerifyAlreadyApplied instead of surfacing the
// underlying revert, which makes the duplicate-verification race an explicit,
// testable outcome.
//
// EncryptionService is a two-phase protocol: Encrypt produces ciphertext and
// an input proof for publication, PrepareDecryption produces clear values and
// a validity proof which the caller then commits to the ledger. The service
// never talks to the ledger itself; the orchestration boundary between
// "compute proof" and "commit" belongs to the workflow core.
//
// # Error taxonomy
//
// Failures that reach the user are classified into the sentinel errors
// declared in errors.go. Gateway and service implementations are expected to
// wrap their transport-level errors into this taxonomy so the workflow core
// never inspects error strings.
package interfaces
