package fhe

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

// MockService mocks the EncryptionService interface
type MockService struct {
	mock.Mock
}

// Initialize mocks the Initialize method
func (m *MockService) Initialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Status mocks the Status method
func (m *MockService) Status() interfaces.EncryptionStatus {
	args := m.Called()
	return args.Get(0).(interfaces.EncryptionStatus)
}

// Encrypt mocks the Encrypt method
func (m *MockService) Encrypt(ctx context.Context, target interfaces.ContractAddress, owner interfaces.AccountAddress, value uint64) (*interfaces.EncryptedInput, error) {
	args := m.Called(ctx, target, owner, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.EncryptedInput), args.Error(1)
}

// PrepareDecryption mocks the PrepareDecryption method
func (m *MockService) PrepareDecryption(ctx context.Context, handles []interfaces.Handle, target interfaces.ContractAddress) (*interfaces.DecryptionProof, error) {
	args := m.Called(ctx, handles, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.DecryptionProof), args.Error(1)
}
