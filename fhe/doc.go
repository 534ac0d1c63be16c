// Package fhe implements the client side of the encryption service consumed
// by the workflow core.
//
// Two implementations of interfaces.EncryptionService are provided:
//
//   - RelayerClient talks HTTP to an FHE coprocessor relayer. Encrypt asks
//     the relayer to encrypt a plaintext integer under the marketplace
//     contract's context and returns the ciphertext with its input proof.
//     PrepareDecryption asks for a public decryption of a set of ciphertext
//     handles and returns the clear values with a validity proof. The
//     relayer never submits ledger transactions; committing the proof is the
//     caller's job.
//
//   - SimService is a deterministic in-process stand-in used by tests and by
//     the daemon's --fhe-sim mode. Ciphertexts are ChaCha20-Poly1305 blobs
//     under an HKDF-derived per-contract key, handles are the SHA-256 of the
//     ciphertext, and proofs are digests over the material they attest to.
//     It keeps the plaintexts it encrypted, so a decryption prepared in the
//     same process round-trips exactly.
//
// The clear-value wire encoding shared with the ledger is ABI packing of
// (bytes32[] handles, uint64[] values) in ascending handle order; see
// EncodeClearValues and DecodeClearValues.
package fhe
