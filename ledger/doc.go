// Package ledger provides the on-chain gateway to the ModelMarketplace
// contract, implementing interfaces.LedgerGateway.
//
// # Clients
//
// OnchainLedgerClient wraps the generated contract binding. Reads go through
// bind.CallOpts with the caller's context and never create transactions.
// CreateAssetRecord submits and returns a TxWaiter so the caller can report
// the pending phase before blocking on confirmation. VerifyDecryption is the
// conditional verification write: rather than pattern-matching revert
// strings, the client classifies every write failure by re-reading the
// authoritative record: if the asset turned verified underneath us, the
// outcome is VerifyAlreadyApplied and no error is returned.
//
// Transactions require transaction options to be set via SetTransactOpts
// before any write method is used; reads work without them.
//
// # Test doubles
//
// MockLedger is a testify mock of the gateway interface. InMemoryLedger is a
// complete in-memory implementation with the same conditional-write
// semantics as the contract, plus per-asset fault injection and write
// counters, for exercising the workflow core without a chain.
package ledger
