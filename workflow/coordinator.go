package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
	"github.com/modelmart/fhe-marketplace-client/metrics"
)

// Display windows for terminal statuses, matching the marketplace UI.
const (
	DefaultSuccessWindow = 2 * time.Second
	DefaultErrorWindow   = 3 * time.Second
)

// Stats aggregates the display cache.
type Stats struct {
	TotalAssets    int     `json:"totalModels"`
	VerifiedAssets int     `json:"verifiedModels"`
	TotalDownloads uint64  `json:"totalDownloads"`
	AvgRating      float64 `json:"avgRating"`
}

// PublishInput is the seller's draft. Accuracy and Price arrive as free-form
// strings and coerce to 0 when unparseable.
type PublishInput struct {
	DisplayName string `json:"name"`
	Accuracy    string `json:"accuracy"`
	Price       string `json:"price"`
	Category    string `json:"category"`
}

// ModelCard is the off-chain document stored alongside a published asset.
type ModelCard struct {
	AssetID     interfaces.AssetID `json:"assetId"`
	DisplayName string             `json:"name"`
	Category    string             `json:"category"`
	AccuracyHint uint64            `json:"accuracyHint"`
	Price       uint64             `json:"price"`
	CreatedAt   int64              `json:"createdAt"`
}

// Config assembles a Coordinator. Ledger and Encryption are required;
// CardStore and Metrics are optional.
type Config struct {
	Ledger     interfaces.LedgerGateway
	Encryption interfaces.EncryptionService
	Contract   interfaces.ContractAddress
	Identity   interfaces.AccountAddress
	CardStore  interfaces.StorageBackend
	Metrics    *metrics.WorkflowMetrics
	Log        *slog.Logger

	SuccessWindow time.Duration
	ErrorWindow   time.Duration
}

// Coordinator drives the publish and reveal lifecycles and owns the shared
// workflow state: status board, history log, and the display cache.
type Coordinator struct {
	ledger     interfaces.LedgerGateway
	encryption interfaces.EncryptionService
	contract   interfaces.ContractAddress
	identity   interfaces.AccountAddress
	cardStore  interfaces.StorageBackend
	metrics    *metrics.WorkflowMetrics
	log        *slog.Logger

	status  *StatusBoard
	history *HistoryLog

	refreshSeq atomic.Uint64

	mu             sync.RWMutex
	assets         []interfaces.AssetRecord
	stats          Stats
	cards          map[interfaces.AssetID]interfaces.ContentID
	appliedRefresh uint64

	now func() time.Time
}

// New validates cfg and creates a Coordinator.
func New(cfg Config) (*Coordinator, error) {
	if cfg.Ledger == nil {
		return nil, errors.New("ledger gateway is required")
	}
	if cfg.Encryption == nil {
		return nil, errors.New("encryption service is required")
	}

	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	successWindow := cfg.SuccessWindow
	if successWindow == 0 {
		successWindow = DefaultSuccessWindow
	}
	errorWindow := cfg.ErrorWindow
	if errorWindow == 0 {
		errorWindow = DefaultErrorWindow
	}

	return &Coordinator{
		ledger:     cfg.Ledger,
		encryption: cfg.Encryption,
		contract:   cfg.Contract,
		identity:   cfg.Identity,
		cardStore:  cfg.CardStore,
		metrics:    cfg.Metrics,
		log:        log,
		status:     NewStatusBoard(successWindow, errorWindow),
		history:    NewHistoryLog(),
		cards:      make(map[interfaces.AssetID]interfaces.ContentID),
		now:        time.Now,
	}, nil
}

// Init brings up the encryption service and loads the initial asset list.
func (c *Coordinator) Init(ctx context.Context) error {
	if err := c.encryption.Initialize(ctx); err != nil {
		gen := c.status.Begin()
		c.status.Set(gen, PhaseError, "FHE initialization failed")
		c.countError("encryption")
		return fmt.Errorf("encryption service init: %w", err)
	}

	if err := c.Refresh(ctx); err != nil {
		c.log.Warn("initial asset-list refresh failed", "err", err)
	}
	return nil
}

// Publish encrypts the draft's accuracy score and creates the asset record
// on the ledger. The accuracy is also published in cleartext as a public
// hint; that replica is part of the marketplace's display contract, not an
// accident. Returns the new asset id.
func (c *Coordinator) Publish(ctx context.Context, input PublishInput) (interfaces.AssetID, error) {
	gen := c.status.Begin()

	if c.identity.IsZero() {
		c.status.Set(gen, PhaseError, "Please connect wallet first")
		c.countError("not_authenticated")
		return "", interfaces.ErrNotAuthenticated
	}

	if c.encryption.Status() != interfaces.EncryptionReady {
		c.status.Set(gen, PhaseError, "Encryption service not ready")
		c.countError("unavailable")
		return "", interfaces.ErrServiceNotReady
	}

	c.status.Set(gen, PhasePending, "Encrypting model...")

	accuracy := parseUintDefault(input.Accuracy)
	price := parseUintDefault(input.Price)
	id := interfaces.AssetID(fmt.Sprintf("model-%d", c.now().UnixMilli()))

	encrypted, err := c.encryption.Encrypt(ctx, c.contract, c.identity, accuracy)
	if err != nil {
		c.status.Set(gen, PhaseError, "Upload failed: "+err.Error())
		c.countError("encryption")
		return "", fmt.Errorf("%w: %v", interfaces.ErrEncryption, err)
	}

	waiter, err := c.ledger.CreateAssetRecord(ctx, interfaces.CreateAssetParams{
		ID:          id,
		DisplayName: input.DisplayName,
		CipherBlob:  encrypted.CipherBlob,
		InputProof:  encrypted.Proof,
		PublicPrice: price,
		PublicHint:  accuracy,
		CategoryTag: "AI Model: " + input.Category,
	})
	if err != nil {
		c.failSubmit(gen, "Upload failed", err)
		return "", err
	}

	c.status.Set(gen, PhasePending, "Waiting for transaction confirmation...")
	c.log.Info("asset creation submitted", "asset_id", id, "tx", waiter.Hash())

	if err := waiter.Wait(ctx); err != nil {
		c.status.Set(gen, PhaseError, "Upload failed: "+err.Error())
		c.countError("tx_failed")
		return "", fmt.Errorf("%w: %v", interfaces.ErrTransactionFailed, err)
	}

	c.history.Append("Upload", input.DisplayName, "Pending")
	c.status.Set(gen, PhaseSuccess, "Model uploaded successfully!")
	c.count(func(m *metrics.WorkflowMetrics) { m.Publishes.Inc() })

	c.storeModelCard(ctx, id, input, accuracy, price)

	if err := c.Refresh(ctx); err != nil {
		c.log.Warn("post-publish refresh failed", "err", err)
	}
	return id, nil
}

// Reveal triggers verified decryption of an asset's protected score.
//
// Revealing an already-verified asset is a pure read and returns the stored
// value. When a concurrent actor wins the verification race the outcome is
// success-equivalent: the return value is nil and the refreshed list carries
// the revealed value.
func (c *Coordinator) Reveal(ctx context.Context, id interfaces.AssetID) (*uint64, error) {
	gen := c.status.Begin()

	if c.identity.IsZero() {
		c.status.Set(gen, PhaseError, "Please connect wallet first")
		c.countError("not_authenticated")
		return nil, interfaces.ErrNotAuthenticated
	}

	record, err := c.ledger.AssetRecord(ctx, id)
	if err != nil {
		c.status.Set(gen, PhaseError, "Decryption failed")
		c.countError("tx_failed")
		return nil, err
	}

	if record.IsVerified {
		value := record.RevealedValue
		c.status.Set(gen, PhaseSuccess, "Model already verified")
		return &value, nil
	}

	if c.encryption.Status() != interfaces.EncryptionReady {
		c.status.Set(gen, PhaseError, "Encryption service not ready")
		c.countError("unavailable")
		return nil, interfaces.ErrServiceNotReady
	}

	handle, err := c.ledger.ProtectedValueHandle(ctx, id)
	if err != nil {
		c.status.Set(gen, PhaseError, "Decryption failed")
		c.countError("tx_failed")
		return nil, err
	}

	c.status.Set(gen, PhasePending, "Verifying decryption...")

	proof, err := c.encryption.PrepareDecryption(ctx, []interfaces.Handle{handle}, c.contract)
	if err != nil {
		c.status.Set(gen, PhaseError, "Decryption failed")
		c.countError("encryption")
		return nil, fmt.Errorf("%w: %v", interfaces.ErrEncryption, err)
	}

	outcome, err := c.ledger.VerifyDecryption(ctx, id, proof.EncodedValues, proof.Proof)
	if err != nil {
		c.failSubmit(gen, "Decryption failed", err)
		return nil, err
	}

	if outcome == interfaces.VerifyAlreadyApplied {
		if err := c.Refresh(ctx); err != nil {
			c.log.Warn("post-reveal refresh failed", "err", err)
		}
		c.status.Set(gen, PhaseSuccess, "Model already verified")
		c.count(func(m *metrics.WorkflowMetrics) { m.Reveals.Inc() })
		return nil, nil
	}

	value, ok := proof.ClearValues[handle]
	if !ok {
		c.status.Set(gen, PhaseError, "Decryption failed")
		c.countError("encryption")
		return nil, fmt.Errorf("%w: clear values missing asset handle", interfaces.ErrEncryption)
	}

	if err := c.Refresh(ctx); err != nil {
		c.log.Warn("post-reveal refresh failed", "err", err)
	}
	c.history.Append("Download", string(id), "Decrypted")
	c.status.Set(gen, PhaseSuccess, "Model decrypted successfully!")
	c.count(func(m *metrics.WorkflowMetrics) { m.Reveals.Inc() })

	return &value, nil
}

// Refresh re-fetches every asset record and recomputes statistics. Records
// that fail to load are skipped; the cache is built from what was fetched.
// A refresh that finishes after a newer one leaves the cache untouched.
func (c *Coordinator) Refresh(ctx context.Context) error {
	seq := c.refreshSeq.Add(1)

	ids, err := c.ledger.AllAssetIDs(ctx)
	if err != nil {
		gen := c.status.Begin()
		c.status.Set(gen, PhaseError, "Failed to load models")
		c.countError("unavailable")
		return fmt.Errorf("listing assets: %w", err)
	}

	fetched := make([]interfaces.AssetRecord, 0, len(ids))
	var totalDownloads, totalRating uint64
	for _, id := range ids {
		record, err := c.ledger.AssetRecord(ctx, id)
		if err != nil {
			c.log.Warn("skipping unreadable asset record", "asset_id", id, "err", err)
			continue
		}
		totalDownloads += record.PublicMetric1
		totalRating += record.PublicMetric2
		fetched = append(fetched, *record)
	}

	stats := Stats{
		TotalAssets:    len(fetched),
		TotalDownloads: totalDownloads,
	}
	for _, record := range fetched {
		if record.IsVerified {
			stats.VerifiedAssets++
		}
	}
	if len(fetched) > 0 {
		stats.AvgRating = float64(totalRating) / float64(len(fetched))
	}

	c.mu.Lock()
	if seq > c.appliedRefresh {
		c.appliedRefresh = seq
		c.assets = fetched
		c.stats = stats
		if c.metrics != nil {
			c.metrics.CachedAssets.Set(float64(len(fetched)))
		}
	}
	c.mu.Unlock()

	c.count(func(m *metrics.WorkflowMetrics) { m.Refreshes.Inc() })
	return nil
}

// CheckAvailability probes ledger liveness and reports it on the status
// board.
func (c *Coordinator) CheckAvailability(ctx context.Context) (bool, error) {
	gen := c.status.Begin()

	available, err := c.ledger.IsAvailable(ctx)
	if err != nil || !available {
		c.status.Set(gen, PhaseError, "Availability check failed")
		c.countError("unavailable")
		if err == nil {
			err = interfaces.ErrServiceUnavailable
		}
		return false, err
	}

	c.status.Set(gen, PhaseSuccess, "Contract is available!")
	return true, nil
}

// Assets returns a copy of the display cache.
func (c *Coordinator) Assets() []interfaces.AssetRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]interfaces.AssetRecord(nil), c.assets...)
}

// Stats returns the statistics of the last applied refresh.
func (c *Coordinator) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Status returns the displayed workflow status.
func (c *Coordinator) Status() Status {
	return c.status.Current()
}

// History returns the action log, newest first.
func (c *Coordinator) History() []HistoryEntry {
	return c.history.Entries()
}

// ModelCardFor fetches the off-chain card stored for an asset published in
// this session.
func (c *Coordinator) ModelCardFor(ctx context.Context, id interfaces.AssetID) (*ModelCard, error) {
	if c.cardStore == nil {
		return nil, interfaces.ErrContentNotFound
	}

	c.mu.RLock()
	contentID, ok := c.cards[id]
	c.mu.RUnlock()
	if !ok {
		return nil, interfaces.ErrContentNotFound
	}

	data, err := c.cardStore.Fetch(ctx, contentID, interfaces.ModelCardType)
	if err != nil {
		return nil, err
	}

	var card ModelCard
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("decoding model card: %w", err)
	}
	return &card, nil
}

// storeModelCard writes the card after the creation transaction confirmed.
// Storage failures never fail the publish.
func (c *Coordinator) storeModelCard(ctx context.Context, id interfaces.AssetID, input PublishInput, accuracy, price uint64) {
	if c.cardStore == nil {
		return
	}

	data, err := json.Marshal(ModelCard{
		AssetID:      id,
		DisplayName:  input.DisplayName,
		Category:     input.Category,
		AccuracyHint: accuracy,
		Price:        price,
		CreatedAt:    c.now().Unix(),
	})
	if err != nil {
		c.log.Warn("encoding model card failed", "asset_id", id, "err", err)
		return
	}

	contentID, err := c.cardStore.Store(ctx, data, interfaces.ModelCardType)
	if err != nil {
		c.log.Warn("storing model card failed", "asset_id", id, "err", err)
		return
	}

	c.mu.Lock()
	c.cards[id] = contentID
	c.mu.Unlock()

	c.log.Info("model card stored", "asset_id", id, "content_id", contentID.String())
}

// failSubmit maps a write-submission failure onto the status board,
// distinguishing a signer refusal from everything else.
func (c *Coordinator) failSubmit(gen uint64, prefix string, err error) {
	if errors.Is(err, interfaces.ErrTransactionRejected) {
		c.status.Set(gen, PhaseError, "Transaction rejected")
		c.countError("rejected")
		return
	}
	c.status.Set(gen, PhaseError, prefix+": "+err.Error())
	c.countError("tx_failed")
}

func (c *Coordinator) count(record func(*metrics.WorkflowMetrics)) {
	if c.metrics != nil {
		record(c.metrics)
	}
}

func (c *Coordinator) countError(kind string) {
	if c.metrics != nil {
		c.metrics.Errors.WithLabelValues(kind).Inc()
	}
}

// parseUintDefault coerces free-form numeric input, defaulting to 0. This is
// a deliberate default, not an error.
func parseUintDefault(s string) uint64 {
	value, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return value
}
