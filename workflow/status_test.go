package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusBoardSupersession(t *testing.T) {
	board := NewStatusBoard(time.Minute, time.Minute)

	older := board.Begin()
	newer := board.Begin()

	assert.True(t, board.Set(newer, PhasePending, "Verifying decryption..."))
	assert.False(t, board.Set(older, PhaseError, "Decryption failed"))

	got := board.Current()
	assert.Equal(t, PhasePending, got.Phase)
	assert.Equal(t, "Verifying decryption...", got.Message)

	// Same generation may keep writing its own transitions.
	assert.True(t, board.Set(newer, PhaseSuccess, "Model decrypted successfully!"))
	assert.Equal(t, PhaseSuccess, board.Current().Phase)
}

func TestStatusBoardAutoClear(t *testing.T) {
	board := NewStatusBoard(20*time.Millisecond, 30*time.Millisecond)

	gen := board.Begin()
	board.Set(gen, PhaseSuccess, "Model uploaded successfully!")
	assert.Equal(t, PhaseSuccess, board.Current().Phase)

	assert.Eventually(t, func() bool {
		return board.Current().Phase == PhaseIdle
	}, time.Second, 5*time.Millisecond)

	gen = board.Begin()
	board.Set(gen, PhaseError, "Upload failed: boom")
	assert.Eventually(t, func() bool {
		return board.Current().Phase == PhaseIdle
	}, time.Second, 5*time.Millisecond)
}

func TestStatusBoardAutoClearSuperseded(t *testing.T) {
	board := NewStatusBoard(10*time.Millisecond, 10*time.Millisecond)

	first := board.Begin()
	board.Set(first, PhaseSuccess, "Model uploaded successfully!")

	// A newer operation takes the slot before the window elapses. The old
	// generation's clear must not wipe it.
	second := board.Begin()
	board.Set(second, PhasePending, "Encrypting model...")

	time.Sleep(50 * time.Millisecond)
	got := board.Current()
	assert.Equal(t, PhasePending, got.Phase)
	assert.Equal(t, "Encrypting model...", got.Message)
}

func TestStatusBoardPendingNeverClears(t *testing.T) {
	board := NewStatusBoard(5*time.Millisecond, 5*time.Millisecond)

	gen := board.Begin()
	board.Set(gen, PhasePending, "Waiting for transaction confirmation...")

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, PhasePending, board.Current().Phase)
}
