package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/modelmart/fhe-marketplace-client/fhe"
	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

// InMemoryLedger implements interfaces.LedgerGateway entirely in memory,
// with the same conditional-write semantics as the marketplace contract.
// It is intended for tests and local development.
//
// Faults can be injected per call site: RecordErrs fails reads of specific
// assets, RejectNextCreate / RejectNextVerify simulate a signer refusing to
// sign, FailCreate / FailVerify fail the respective write outright, and
// BeforeVerify runs at the start of every verification write (useful for
// interleaving a concurrent verification in race tests).
type InMemoryLedger struct {
	mu      sync.Mutex
	order   []interfaces.AssetID
	records map[interfaces.AssetID]*interfaces.AssetRecord

	createWrites int
	verifyWrites int

	// Fault injection. Zero values mean no fault.
	RecordErrs       map[interfaces.AssetID]error
	Unavailable      bool
	RejectNextCreate bool
	RejectNextVerify bool
	FailCreate       error
	FailVerify       error
	BeforeVerify     func()

	now func() time.Time
}

// NewInMemoryLedger creates an empty in-memory ledger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		records:    make(map[interfaces.AssetID]*interfaces.AssetRecord),
		RecordErrs: make(map[interfaces.AssetID]error),
		now:        time.Now,
	}
}

// WithClock replaces the timestamp source, for deterministic tests.
func (l *InMemoryLedger) WithClock(now func() time.Time) *InMemoryLedger {
	l.now = now
	return l
}

// AllAssetIDs returns asset ids in creation order.
func (l *InMemoryLedger) AllAssetIDs(ctx context.Context) ([]interfaces.AssetID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Unavailable {
		return nil, interfaces.ErrServiceUnavailable
	}
	return append([]interfaces.AssetID(nil), l.order...), nil
}

// AssetRecord returns a value copy of the stored record.
func (l *InMemoryLedger) AssetRecord(ctx context.Context, id interfaces.AssetID) (*interfaces.AssetRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err, ok := l.RecordErrs[id]; ok {
		return nil, err
	}

	record, ok := l.records[id]
	if !ok {
		return nil, interfaces.ErrAssetNotFound
	}

	copied := *record
	return &copied, nil
}

// ProtectedValueHandle returns the asset's ciphertext handle.
func (l *InMemoryLedger) ProtectedValueHandle(ctx context.Context, id interfaces.AssetID) (interfaces.Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.records[id]
	if !ok {
		return interfaces.Handle{}, interfaces.ErrAssetNotFound
	}
	return record.ProtectedValueHandle, nil
}

// IsAvailable reports liveness, honoring the Unavailable fault.
func (l *InMemoryLedger) IsAvailable(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Unavailable {
		return false, interfaces.ErrServiceUnavailable
	}
	return true, nil
}

// CreateAssetRecord stores a new record. The ciphertext handle is derived
// from the cipher blob the same way the contract derives it.
func (l *InMemoryLedger) CreateAssetRecord(ctx context.Context, params interfaces.CreateAssetParams) (interfaces.TxWaiter, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.RejectNextCreate {
		l.RejectNextCreate = false
		return nil, fmt.Errorf("%w: user rejected transaction", interfaces.ErrTransactionRejected)
	}
	if l.FailCreate != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrTransactionFailed, l.FailCreate)
	}
	if _, exists := l.records[params.ID]; exists {
		return nil, fmt.Errorf("%w: duplicate asset id %s", interfaces.ErrTransactionFailed, params.ID)
	}

	l.records[params.ID] = &interfaces.AssetRecord{
		ID:                   params.ID,
		DisplayName:          params.DisplayName,
		ProtectedValueHandle: fhe.HandleFor(params.CipherBlob),
		PublicMetric1:        params.PublicPrice,
		PublicMetric2:        params.PublicHint,
		CreationTimestamp:    l.now().Unix(),
		CategoryTag:          params.CategoryTag,
	}
	l.order = append(l.order, params.ID)
	l.createWrites++

	return instantWaiter{id: string(params.ID)}, nil
}

// VerifyDecryption applies the conditional verification write. If the asset
// is already verified the write is a no-op reported as VerifyAlreadyApplied.
func (l *InMemoryLedger) VerifyDecryption(ctx context.Context, id interfaces.AssetID, clearValues []byte, proof []byte) (interfaces.VerifyOutcome, error) {
	if hook := l.BeforeVerify; hook != nil {
		hook()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.RejectNextVerify {
		l.RejectNextVerify = false
		return interfaces.VerifyApplied, fmt.Errorf("%w: user rejected transaction", interfaces.ErrTransactionRejected)
	}
	if l.FailVerify != nil {
		return interfaces.VerifyApplied, fmt.Errorf("%w: %v", interfaces.ErrTransactionFailed, l.FailVerify)
	}

	record, ok := l.records[id]
	if !ok {
		return interfaces.VerifyApplied, fmt.Errorf("%w: %v", interfaces.ErrTransactionFailed, interfaces.ErrAssetNotFound)
	}

	// Exchange-if-unset: the CAS on the verified flag.
	if record.IsVerified {
		return interfaces.VerifyAlreadyApplied, nil
	}

	if len(proof) == 0 {
		return interfaces.VerifyApplied, fmt.Errorf("%w: empty decryption proof", interfaces.ErrTransactionFailed)
	}

	values, err := fhe.DecodeClearValues(clearValues)
	if err != nil {
		return interfaces.VerifyApplied, fmt.Errorf("%w: %v", interfaces.ErrTransactionFailed, err)
	}

	value, ok := values[record.ProtectedValueHandle]
	if !ok {
		return interfaces.VerifyApplied, fmt.Errorf("%w: clear values do not cover asset handle", interfaces.ErrTransactionFailed)
	}

	record.IsVerified = true
	record.RevealedValue = value
	l.verifyWrites++

	return interfaces.VerifyApplied, nil
}

// ForceVerify marks an asset verified directly, bypassing the workflow.
// Used by tests to simulate a concurrent actor winning the race.
func (l *InMemoryLedger) ForceVerify(id interfaces.AssetID, value uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if record, ok := l.records[id]; ok && !record.IsVerified {
		record.IsVerified = true
		record.RevealedValue = value
	}
}

// SeedAsset installs a record directly, for test setup.
func (l *InMemoryLedger) SeedAsset(record interfaces.AssetRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	copied := record
	l.records[record.ID] = &copied
	l.order = append(l.order, record.ID)
}

// CreateWrites returns the number of applied creation writes.
func (l *InMemoryLedger) CreateWrites() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.createWrites
}

// VerifyWrites returns the number of applied verification writes.
func (l *InMemoryLedger) VerifyWrites() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verifyWrites
}

// instantWaiter confirms immediately; in-memory writes are synchronous.
type instantWaiter struct {
	id string
}

func (w instantWaiter) Hash() string {
	return "inmem-" + w.id
}

func (w instantWaiter) Wait(ctx context.Context) error {
	return ctx.Err()
}
