package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/modelmart/fhe-marketplace-client/bindings/market"
	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

// ErrNoTransactOpts is returned when a write is attempted without first
// setting transaction options.
var ErrNoTransactOpts = errors.New("no authorized transactor available")

// OnchainLedgerClient implements interfaces.LedgerGateway against a
// ModelMarketplace contract deployed on a blockchain.
type OnchainLedgerClient struct {
	contract *market.ModelMarketplace
	backend  bind.DeployBackend
	address  common.Address
	auth     *bind.TransactOpts
}

// NewOnchainLedgerClient creates a gateway for the marketplace contract at
// the given address. It requires a ContractBackend for reads and a
// DeployBackend for awaiting transaction confirmations.
func NewOnchainLedgerClient(client bind.ContractBackend, backend bind.DeployBackend, address common.Address) (*OnchainLedgerClient, error) {
	contract, err := market.NewModelMarketplace(address, client)
	if err != nil {
		return nil, err
	}

	return &OnchainLedgerClient{
		contract: contract,
		backend:  backend,
		address:  address,
	}, nil
}

// SetTransactOpts sets the transaction options required for write methods.
// This must be called before CreateAssetRecord or VerifyDecryption.
func (c *OnchainLedgerClient) SetTransactOpts(auth *bind.TransactOpts) {
	c.auth = auth
}

// AllAssetIDs returns every asset id in contract enumeration order.
func (c *OnchainLedgerClient) AllAssetIDs(ctx context.Context) ([]interfaces.AssetID, error) {
	opts := &bind.CallOpts{Context: ctx}

	raw, err := c.contract.GetAllAssetIds(opts)
	if err != nil {
		return nil, err
	}

	ids := make([]interfaces.AssetID, len(raw))
	for i, id := range raw {
		ids[i] = interfaces.AssetID(id)
	}
	return ids, nil
}

// AssetRecord fetches the confirmed record for an asset id.
func (c *OnchainLedgerClient) AssetRecord(ctx context.Context, id interfaces.AssetID) (*interfaces.AssetRecord, error) {
	opts := &bind.CallOpts{Context: ctx}

	raw, err := c.contract.GetAssetRecord(opts, string(id))
	if err != nil {
		return nil, err
	}

	// The contract returns a zero struct for unknown ids.
	if raw.Name == "" && (raw.CreatedAt == nil || raw.CreatedAt.Sign() == 0) {
		return nil, interfaces.ErrAssetNotFound
	}

	record := &interfaces.AssetRecord{
		ID:                   id,
		DisplayName:          raw.Name,
		ProtectedValueHandle: interfaces.Handle(raw.EncryptedValue),
		PublicMetric1:        raw.PublicMetric1,
		PublicMetric2:        raw.PublicMetric2,
		IsVerified:           raw.IsVerified,
		RevealedValue:        raw.RevealedValue,
		CreatorIdentity:      interfaces.AccountAddress(raw.Creator),
		CategoryTag:          raw.CategoryTag,
	}
	if raw.CreatedAt != nil {
		record.CreationTimestamp = raw.CreatedAt.Int64()
	}
	return record, nil
}

// ProtectedValueHandle fetches the opaque ciphertext handle for an asset.
func (c *OnchainLedgerClient) ProtectedValueHandle(ctx context.Context, id interfaces.AssetID) (interfaces.Handle, error) {
	opts := &bind.CallOpts{Context: ctx}

	raw, err := c.contract.GetEncryptedValue(opts, string(id))
	if err != nil {
		return interfaces.Handle{}, err
	}
	return interfaces.Handle(raw), nil
}

// IsAvailable probes contract liveness via the contract's own check.
func (c *OnchainLedgerClient) IsAvailable(ctx context.Context) (bool, error) {
	opts := &bind.CallOpts{Context: ctx}

	ok, err := c.contract.IsAvailable(opts)
	if err != nil {
		return false, fmt.Errorf("%w: %v", interfaces.ErrServiceUnavailable, err)
	}
	return ok, nil
}

// CreateAssetRecord submits the asset creation transaction and returns a
// waiter for its confirmation.
func (c *OnchainLedgerClient) CreateAssetRecord(ctx context.Context, params interfaces.CreateAssetParams) (interfaces.TxWaiter, error) {
	if c.auth == nil {
		return nil, ErrNoTransactOpts
	}

	opts := *c.auth
	opts.Context = ctx

	tx, err := c.contract.CreateAssetRecord(&opts,
		string(params.ID),
		params.DisplayName,
		params.CipherBlob,
		params.InputProof,
		params.PublicPrice,
		params.PublicHint,
		params.CategoryTag,
	)
	if err != nil {
		return nil, classifySubmitError(err)
	}

	return &txWaiter{tx: tx, backend: c.backend}, nil
}

// VerifyDecryption commits clear values and their proof for an asset and
// blocks until the transaction is confirmed. Any write failure is classified
// by re-reading the record: if the asset is verified by then, a concurrent
// verification won and the outcome is VerifyAlreadyApplied with no error.
func (c *OnchainLedgerClient) VerifyDecryption(ctx context.Context, id interfaces.AssetID, clearValues []byte, proof []byte) (interfaces.VerifyOutcome, error) {
	if c.auth == nil {
		return interfaces.VerifyApplied, ErrNoTransactOpts
	}

	opts := *c.auth
	opts.Context = ctx

	tx, err := c.contract.VerifyDecryption(&opts, string(id), clearValues, proof)
	if err != nil {
		if isSignerRejection(err) {
			return interfaces.VerifyApplied, fmt.Errorf("%w: %v", interfaces.ErrTransactionRejected, err)
		}
		return c.classifyVerifyFailure(ctx, id, err)
	}

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return interfaces.VerifyApplied, fmt.Errorf("%w: %v", interfaces.ErrTransactionFailed, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return c.classifyVerifyFailure(ctx, id, fmt.Errorf("transaction %s reverted", tx.Hash().Hex()))
	}

	return interfaces.VerifyApplied, nil
}

// classifyVerifyFailure distinguishes the lost-race outcome from genuine
// failures by consulting the authoritative record instead of matching revert
// messages.
func (c *OnchainLedgerClient) classifyVerifyFailure(ctx context.Context, id interfaces.AssetID, cause error) (interfaces.VerifyOutcome, error) {
	record, readErr := c.AssetRecord(ctx, id)
	if readErr == nil && record.IsVerified {
		return interfaces.VerifyAlreadyApplied, nil
	}
	return interfaces.VerifyApplied, fmt.Errorf("%w: %v", interfaces.ErrTransactionFailed, cause)
}

func classifySubmitError(err error) error {
	if isSignerRejection(err) {
		return fmt.Errorf("%w: %v", interfaces.ErrTransactionRejected, err)
	}
	return fmt.Errorf("%w: %v", interfaces.ErrTransactionFailed, err)
}

// isSignerRejection recognizes a signer refusing to sign. External signers
// surface this as an error from TransactOpts.Signer before anything hits the
// network.
func isSignerRejection(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rejected") || strings.Contains(msg, "denied")
}

// txWaiter awaits confirmation of a submitted transaction.
type txWaiter struct {
	tx      *types.Transaction
	backend bind.DeployBackend
}

// Hash returns the transaction hash.
func (w *txWaiter) Hash() string {
	return w.tx.Hash().Hex()
}

// Wait blocks until the transaction is mined, and fails if it reverted.
func (w *txWaiter) Wait(ctx context.Context) error {
	receipt, err := bind.WaitMined(ctx, w.backend, w.tx)
	if err != nil {
		return fmt.Errorf("%w: %v", interfaces.ErrTransactionFailed, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: transaction %s reverted", interfaces.ErrTransactionFailed, w.tx.Hash().Hex())
	}
	return nil
}

// GatewayFactory creates ledger gateways for different contract addresses.
type GatewayFactory struct {
	client  bind.ContractBackend
	backend bind.DeployBackend
}

// NewGatewayFactory creates a factory over the given backends.
func NewGatewayFactory(client bind.ContractBackend, backend bind.DeployBackend) *GatewayFactory {
	return &GatewayFactory{client: client, backend: backend}
}

// GatewayFor returns a ledger gateway for the given contract address.
func (f *GatewayFactory) GatewayFor(address interfaces.ContractAddress) (interfaces.LedgerGateway, error) {
	return NewOnchainLedgerClient(f.client, f.backend, common.Address(address))
}
