package workflow

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelmart/fhe-marketplace-client/fhe"
	"github.com/modelmart/fhe-marketplace-client/interfaces"
	"github.com/modelmart/fhe-marketplace-client/ledger"
)

var (
	testContract = interfaces.ContractAddress{0x11}
	testIdentity = interfaces.AccountAddress{0x22}
)

func newTestSim(t *testing.T) *fhe.SimService {
	t.Helper()

	sim, err := fhe.NewSimService(bytes.Repeat([]byte{7}, 32))
	require.NoError(t, err)
	require.NoError(t, sim.Initialize(context.Background()))
	return sim
}

func newTestCoordinator(t *testing.T, gateway interfaces.LedgerGateway, sim *fhe.SimService) *Coordinator {
	t.Helper()

	coordinator, err := New(Config{
		Ledger:        gateway,
		Encryption:    sim,
		Contract:      testContract,
		Identity:      testIdentity,
		Log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		SuccessWindow: time.Minute,
		ErrorWindow:   time.Minute,
	})
	require.NoError(t, err)
	return coordinator
}

func TestPublishLifecycle(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	coordinator := newTestCoordinator(t, inmem, newTestSim(t))

	id, err := coordinator.Publish(context.Background(), PublishInput{
		DisplayName: "Vision Transformer",
		Accuracy:    "95",
		Price:       "100",
		Category:    "Vision",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(id), "model-"))

	record, err := inmem.AssetRecord(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Vision Transformer", record.DisplayName)
	assert.Equal(t, uint64(100), record.PublicMetric1)
	assert.Equal(t, uint64(95), record.PublicMetric2)
	assert.Equal(t, "AI Model: Vision", record.CategoryTag)
	assert.NotEqual(t, interfaces.Handle{}, record.ProtectedValueHandle)
	assert.False(t, record.IsVerified)

	status := coordinator.Status()
	assert.Equal(t, PhaseSuccess, status.Phase)
	assert.Equal(t, "Model uploaded successfully!", status.Message)

	history := coordinator.History()
	require.Len(t, history, 1)
	assert.Equal(t, "Upload", history[0].Action)
	assert.Equal(t, "Vision Transformer", history[0].AssetName)
	assert.Equal(t, "Pending", history[0].Status)

	// The post-publish refresh populated the cache.
	assert.Len(t, coordinator.Assets(), 1)
	assert.Equal(t, 1, coordinator.Stats().TotalAssets)
}

func TestPublishCoercesUnparseableNumbers(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	coordinator := newTestCoordinator(t, inmem, newTestSim(t))

	id, err := coordinator.Publish(context.Background(), PublishInput{
		DisplayName: "Sloppy Draft",
		Accuracy:    "abc",
		Price:       "",
		Category:    "NLP",
	})
	require.NoError(t, err)

	record, err := inmem.AssetRecord(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), record.PublicMetric1)
	assert.Equal(t, uint64(0), record.PublicMetric2)
}

func TestPublishRequiresIdentity(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	coordinator, err := New(Config{
		Ledger:     inmem,
		Encryption: newTestSim(t),
		Contract:   testContract,
		Log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	_, err = coordinator.Publish(context.Background(), PublishInput{DisplayName: "x"})
	assert.ErrorIs(t, err, interfaces.ErrNotAuthenticated)

	status := coordinator.Status()
	assert.Equal(t, PhaseError, status.Phase)
	assert.Equal(t, "Please connect wallet first", status.Message)
	assert.Equal(t, 0, inmem.CreateWrites())
}

func TestPublishRequiresReadyEncryption(t *testing.T) {
	sim, err := fhe.NewSimService(bytes.Repeat([]byte{7}, 32))
	require.NoError(t, err)

	// Not initialized.
	coordinator := newTestCoordinator(t, ledger.NewInMemoryLedger(), sim)

	_, err = coordinator.Publish(context.Background(), PublishInput{DisplayName: "x"})
	assert.ErrorIs(t, err, interfaces.ErrServiceNotReady)
	assert.Equal(t, "Encryption service not ready", coordinator.Status().Message)
}

func TestPublishRejectedSignature(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	inmem.RejectNextCreate = true
	coordinator := newTestCoordinator(t, inmem, newTestSim(t))

	_, err := coordinator.Publish(context.Background(), PublishInput{DisplayName: "x", Accuracy: "1"})
	assert.ErrorIs(t, err, interfaces.ErrTransactionRejected)

	status := coordinator.Status()
	assert.Equal(t, PhaseError, status.Phase)
	assert.Equal(t, "Transaction rejected", status.Message)
	assert.Empty(t, coordinator.History())
}

func TestRevealLifecycle(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	coordinator := newTestCoordinator(t, inmem, newTestSim(t))

	id, err := coordinator.Publish(context.Background(), PublishInput{
		DisplayName: "Neural Network Pro",
		Accuracy:    "87",
		Price:       "50",
		Category:    "NLP",
	})
	require.NoError(t, err)

	value, err := coordinator.Reveal(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, uint64(87), *value)

	record, err := inmem.AssetRecord(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, record.IsVerified)
	assert.Equal(t, uint64(87), record.RevealedValue)
	assert.Equal(t, 1, inmem.VerifyWrites())

	status := coordinator.Status()
	assert.Equal(t, PhaseSuccess, status.Phase)
	assert.Equal(t, "Model decrypted successfully!", status.Message)

	history := coordinator.History()
	assert.Equal(t, "Download", history[0].Action)
	assert.Equal(t, "Decrypted", history[0].Status)
}

func TestRevealIdempotence(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	coordinator := newTestCoordinator(t, inmem, newTestSim(t))

	id, err := coordinator.Publish(context.Background(), PublishInput{DisplayName: "m", Accuracy: "42"})
	require.NoError(t, err)

	first, err := coordinator.Reveal(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Repeated reveals are pure reads: same value, no further writes.
	for i := 0; i < 3; i++ {
		again, err := coordinator.Reveal(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, again)
		assert.Equal(t, *first, *again)
		assert.Equal(t, "Model already verified", coordinator.Status().Message)
	}
	assert.Equal(t, 1, inmem.VerifyWrites())
}

func TestRevealRaceSuccessEquivalence(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	coordinator := newTestCoordinator(t, inmem, newTestSim(t))

	id, err := coordinator.Publish(context.Background(), PublishInput{DisplayName: "m", Accuracy: "87"})
	require.NoError(t, err)

	// A concurrent actor verifies between our record read and our write.
	inmem.BeforeVerify = func() { inmem.ForceVerify(id, 87) }

	value, err := coordinator.Reveal(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, value)

	status := coordinator.Status()
	assert.Equal(t, PhaseSuccess, status.Phase)
	assert.Equal(t, "Model already verified", status.Message)
	assert.Equal(t, 0, inmem.VerifyWrites())

	// The refreshed cache carries the now-available value.
	assets := coordinator.Assets()
	require.Len(t, assets, 1)
	assert.True(t, assets[0].IsVerified)
	assert.Equal(t, uint64(87), assets[0].RevealedValue)
}

func TestRevealFailure(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	coordinator := newTestCoordinator(t, inmem, newTestSim(t))

	id, err := coordinator.Publish(context.Background(), PublishInput{DisplayName: "m", Accuracy: "87"})
	require.NoError(t, err)

	inmem.FailVerify = errors.New("gas estimation failed")
	value, err := coordinator.Reveal(context.Background(), id)
	assert.ErrorIs(t, err, interfaces.ErrTransactionFailed)
	assert.Nil(t, value)

	status := coordinator.Status()
	assert.Equal(t, PhaseError, status.Phase)
	assert.Equal(t, "Decryption failed", status.Message)

	// The system stays usable for the next operation.
	inmem.FailVerify = nil
	value, err = coordinator.Reveal(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, uint64(87), *value)
}

func TestRefreshSkipsUnreadableRecords(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	inmem.SeedAsset(interfaces.AssetRecord{ID: "m1", PublicMetric1: 5, PublicMetric2: 80})
	inmem.SeedAsset(interfaces.AssetRecord{ID: "m2", PublicMetric1: 100, PublicMetric2: 10})
	inmem.SeedAsset(interfaces.AssetRecord{ID: "m3", PublicMetric1: 10, PublicMetric2: 90, IsVerified: true})
	inmem.RecordErrs["m2"] = errors.New("rpc timeout")

	coordinator := newTestCoordinator(t, inmem, newTestSim(t))
	require.NoError(t, coordinator.Refresh(context.Background()))

	assets := coordinator.Assets()
	require.Len(t, assets, 2)
	assert.Equal(t, interfaces.AssetID("m1"), assets[0].ID)
	assert.Equal(t, interfaces.AssetID("m3"), assets[1].ID)

	// Statistics cover fetched records only.
	stats := coordinator.Stats()
	assert.Equal(t, 2, stats.TotalAssets)
	assert.Equal(t, 1, stats.VerifiedAssets)
	assert.Equal(t, uint64(15), stats.TotalDownloads)
	assert.InDelta(t, 85.0, stats.AvgRating, 0.001)
}

func TestRefreshEmptyLedger(t *testing.T) {
	coordinator := newTestCoordinator(t, ledger.NewInMemoryLedger(), newTestSim(t))
	require.NoError(t, coordinator.Refresh(context.Background()))

	stats := coordinator.Stats()
	assert.Equal(t, 0, stats.TotalAssets)
	assert.Equal(t, 0.0, stats.AvgRating)
}

func TestRefreshListFailure(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	inmem.Unavailable = true
	coordinator := newTestCoordinator(t, inmem, newTestSim(t))

	err := coordinator.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "Failed to load models", coordinator.Status().Message)
}

// gatedLedger lets a test hold an asset-list refresh inside its listing call.
type gatedLedger struct {
	*ledger.InMemoryLedger

	mu         sync.Mutex
	calls      int
	beforeList func(call int)
}

func (g *gatedLedger) AllAssetIDs(ctx context.Context) ([]interfaces.AssetID, error) {
	g.mu.Lock()
	g.calls++
	call := g.calls
	g.mu.Unlock()

	if g.beforeList != nil {
		g.beforeList(call)
	}
	return g.InMemoryLedger.AllAssetIDs(ctx)
}

func TestRefreshStaleRunDoesNotOverwrite(t *testing.T) {
	gated := &gatedLedger{InMemoryLedger: ledger.NewInMemoryLedger()}
	gated.SeedAsset(interfaces.AssetRecord{ID: "m1"})

	coordinator := newTestCoordinator(t, gated, newTestSim(t))

	entered := make(chan struct{})
	release := make(chan struct{})
	gated.beforeList = func(call int) {
		if call == 1 {
			close(entered)
			<-release
		}
	}

	slowDone := make(chan error, 1)
	go func() { slowDone <- coordinator.Refresh(context.Background()) }()
	<-entered

	// A newer refresh completes while the first is stalled.
	require.NoError(t, coordinator.Refresh(context.Background()))
	require.Len(t, coordinator.Assets(), 1)

	// The stalled refresh now observes more assets but must not apply them.
	gated.SeedAsset(interfaces.AssetRecord{ID: "m2"})
	close(release)
	require.NoError(t, <-slowDone)

	assert.Len(t, coordinator.Assets(), 1)
	assert.Equal(t, 1, coordinator.Stats().TotalAssets)
}

func TestCheckAvailability(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	coordinator := newTestCoordinator(t, inmem, newTestSim(t))

	available, err := coordinator.CheckAvailability(context.Background())
	require.NoError(t, err)
	assert.True(t, available)
	assert.Equal(t, "Contract is available!", coordinator.Status().Message)

	inmem.Unavailable = true
	available, err = coordinator.CheckAvailability(context.Background())
	assert.Error(t, err)
	assert.False(t, available)
	assert.Equal(t, "Availability check failed", coordinator.Status().Message)
}

// memCardStore is a minimal in-process backend for card tests.
type memCardStore struct {
	mu       sync.Mutex
	blobs    map[interfaces.ContentID][]byte
	storeErr error
}

func newMemCardStore() *memCardStore {
	return &memCardStore{blobs: make(map[interfaces.ContentID][]byte)}
}

func (s *memCardStore) Store(ctx context.Context, data []byte, contentType interfaces.ContentType) (interfaces.ContentID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storeErr != nil {
		return interfaces.ContentID{}, s.storeErr
	}
	id := interfaces.ComputeID(data)
	s.blobs[id] = data
	return id, nil
}

func (s *memCardStore) Fetch(ctx context.Context, id interfaces.ContentID, contentType interfaces.ContentType) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.blobs[id]
	if !ok {
		return nil, interfaces.ErrContentNotFound
	}
	return data, nil
}

func (s *memCardStore) Available(ctx context.Context) bool { return true }
func (s *memCardStore) Name() string                       { return "mem" }
func (s *memCardStore) LocationURI() string                { return "mem://" }

func TestPublishStoresModelCard(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	store := newMemCardStore()

	coordinator, err := New(Config{
		Ledger:     inmem,
		Encryption: newTestSim(t),
		Contract:   testContract,
		Identity:   testIdentity,
		CardStore:  store,
		Log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	id, err := coordinator.Publish(context.Background(), PublishInput{
		DisplayName: "Vision Transformer",
		Accuracy:    "95",
		Price:       "100",
		Category:    "Vision",
	})
	require.NoError(t, err)

	card, err := coordinator.ModelCardFor(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, card.AssetID)
	assert.Equal(t, "Vision Transformer", card.DisplayName)
	assert.Equal(t, "Vision", card.Category)
	assert.Equal(t, uint64(95), card.AccuracyHint)
	assert.Equal(t, uint64(100), card.Price)
}

func TestPublishCardStorageFailureIsNonFatal(t *testing.T) {
	inmem := ledger.NewInMemoryLedger()
	store := newMemCardStore()
	store.storeErr = errors.New("bucket gone")

	coordinator, err := New(Config{
		Ledger:     inmem,
		Encryption: newTestSim(t),
		Contract:   testContract,
		Identity:   testIdentity,
		CardStore:  store,
		Log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	id, err := coordinator.Publish(context.Background(), PublishInput{DisplayName: "m", Accuracy: "1"})
	require.NoError(t, err)
	assert.Equal(t, PhaseSuccess, coordinator.Status().Phase)

	_, err = coordinator.ModelCardFor(context.Background(), id)
	assert.ErrorIs(t, err, interfaces.ErrContentNotFound)
}
