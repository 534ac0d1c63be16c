package ledger

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

// MockLedger mocks the LedgerGateway interface
type MockLedger struct {
	mock.Mock
}

// AllAssetIDs mocks the AllAssetIDs method
func (m *MockLedger) AllAssetIDs(ctx context.Context) ([]interfaces.AssetID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.AssetID), args.Error(1)
}

// AssetRecord mocks the AssetRecord method
func (m *MockLedger) AssetRecord(ctx context.Context, id interfaces.AssetID) (*interfaces.AssetRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.AssetRecord), args.Error(1)
}

// ProtectedValueHandle mocks the ProtectedValueHandle method
func (m *MockLedger) ProtectedValueHandle(ctx context.Context, id interfaces.AssetID) (interfaces.Handle, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(interfaces.Handle), args.Error(1)
}

// IsAvailable mocks the IsAvailable method
func (m *MockLedger) IsAvailable(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// CreateAssetRecord mocks the CreateAssetRecord method
func (m *MockLedger) CreateAssetRecord(ctx context.Context, params interfaces.CreateAssetParams) (interfaces.TxWaiter, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(interfaces.TxWaiter), args.Error(1)
}

// VerifyDecryption mocks the VerifyDecryption method
func (m *MockLedger) VerifyDecryption(ctx context.Context, id interfaces.AssetID, clearValues []byte, proof []byte) (interfaces.VerifyOutcome, error) {
	args := m.Called(ctx, id, clearValues, proof)
	return args.Get(0).(interfaces.VerifyOutcome), args.Error(1)
}
