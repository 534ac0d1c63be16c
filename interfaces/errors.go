package interfaces

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation requiring a
	// connected identity is invoked without one. No network call is made.
	ErrNotAuthenticated = errors.New("no identity connected")

	// ErrEncryption is returned when the encryption service fails before
	// any ledger write was attempted, leaving no partial state.
	ErrEncryption = errors.New("encryption service call failed")

	// ErrTransactionRejected is returned when the signer declined to sign
	// a transaction. Reported distinctly from other transaction failures.
	ErrTransactionRejected = errors.New("transaction rejected by signer")

	// ErrTransactionFailed is returned for submission or confirmation
	// failures other than signer rejection.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrAlreadyVerified signals the success-equivalent race outcome: the
	// asset was verified by a concurrent actor before our write landed.
	ErrAlreadyVerified = errors.New("asset already verified")

	// ErrAssetNotFound is returned when the ledger has no record for the
	// requested asset id.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrServiceUnavailable is returned when a liveness check against the
	// ledger or the encryption service fails.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrServiceNotReady is returned when the encryption service is used
	// before Initialize completed.
	ErrServiceNotReady = errors.New("encryption service not initialized")
)
