// Package workflow implements the encrypted-asset lifecycle coordinator.
//
// The Coordinator drives the two lifecycles of the marketplace client:
// publishing a new asset with an encrypted quality score, and revealing a
// published score through on-chain verified decryption. It owns the shared
// workflow state the presentation layer renders from: the single-slot status
// register, the bounded action history, and the display cache of asset
// records with aggregate statistics.
//
// Status writes are tagged with per-operation generation ids so that a slow
// operation finishing late cannot overwrite the status of a newer one, and
// terminal statuses clear themselves back to idle after a display window.
// Asset-list refreshes carry sequence numbers with the same supersession
// rule: an older refresh never replaces the cache written by a newer one.
package workflow
