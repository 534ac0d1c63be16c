package fhe

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
)

// clearValuesArgs is the ABI layout of the clear-value payload submitted to
// the ledger's verifyDecryption: (bytes32[] handles, uint64[] values).
var clearValuesArgs = func() abi.Arguments {
	bytes32Arr, err := abi.NewType("bytes32[]", "", nil)
	if err != nil {
		panic(err)
	}
	uint64Arr, err := abi.NewType("uint64[]", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{{Type: bytes32Arr}, {Type: uint64Arr}}
}()

// HandleFor derives the ciphertext handle for a cipher blob. Both the ledger
// and the encryption service identify a ciphertext by this digest.
func HandleFor(cipherBlob []byte) interfaces.Handle {
	return interfaces.Handle(sha256.Sum256(cipherBlob))
}

// EncodeClearValues packs a clear-value mapping into the ledger's wire
// encoding. Handles are sorted so the encoding is deterministic.
func EncodeClearValues(values map[interfaces.Handle]uint64) ([]byte, error) {
	if len(values) == 0 {
		return nil, errors.New("no clear values to encode")
	}

	handles := make([]interfaces.Handle, 0, len(values))
	for h := range values {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool {
		return handles[i].String() < handles[j].String()
	})

	rawHandles := make([][32]byte, len(handles))
	rawValues := make([]uint64, len(handles))
	for i, h := range handles {
		rawHandles[i] = h
		rawValues[i] = values[h]
	}

	return clearValuesArgs.Pack(rawHandles, rawValues)
}

// DecodeClearValues unpacks the ledger wire encoding back into a mapping.
func DecodeClearValues(data []byte) (map[interfaces.Handle]uint64, error) {
	unpacked, err := clearValuesArgs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack clear values: %w", err)
	}

	rawHandles, ok := unpacked[0].([][32]byte)
	if !ok {
		return nil, errors.New("unexpected handle array type in clear values")
	}
	rawValues, ok := unpacked[1].([]uint64)
	if !ok {
		return nil, errors.New("unexpected value array type in clear values")
	}
	if len(rawHandles) != len(rawValues) {
		return nil, errors.New("handle and value arrays differ in length")
	}

	values := make(map[interfaces.Handle]uint64, len(rawHandles))
	for i, raw := range rawHandles {
		values[interfaces.Handle(raw)] = rawValues[i]
	}
	return values, nil
}
