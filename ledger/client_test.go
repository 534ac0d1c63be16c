package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

func TestClassifySubmitError(t *testing.T) {
	err := classifySubmitError(errors.New("user rejected transaction"))
	assert.ErrorIs(t, err, interfaces.ErrTransactionRejected)

	err = classifySubmitError(errors.New("Request denied by signer"))
	assert.ErrorIs(t, err, interfaces.ErrTransactionRejected)

	err = classifySubmitError(errors.New("insufficient funds for gas"))
	assert.ErrorIs(t, err, interfaces.ErrTransactionFailed)
	assert.NotErrorIs(t, err, interfaces.ErrTransactionRejected)
}

func TestIsSignerRejection(t *testing.T) {
	assert.False(t, isSignerRejection(nil))
	assert.False(t, isSignerRejection(errors.New("nonce too low")))
	assert.True(t, isSignerRejection(errors.New("user rejected transaction")))
	assert.True(t, isSignerRejection(errors.New("permission DENIED")))
}

func TestMockLedgerImplementsGateway(t *testing.T) {
	var gateway interfaces.LedgerGateway = new(MockLedger)
	require.NotNil(t, gateway)

	var inmem interfaces.LedgerGateway = NewInMemoryLedger()
	require.NotNil(t, inmem)
}
