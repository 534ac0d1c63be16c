package workflow

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Phase is the coarse state of the in-flight operation.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePending Phase = "pending"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// Status is the last-write-wins workflow indicator shared by all lifecycles.
type Status struct {
	Phase   Phase  `json:"phase"`
	Message string `json:"message"`
}

func (s Status) terminal() bool {
	return s.Phase == PhaseSuccess || s.Phase == PhaseError
}

// StatusBoard is a single-slot status register with explicit supersession.
// Every operation obtains a generation id from Begin and tags its writes
// with it; writes from a generation older than the last applied one are
// dropped. Terminal statuses revert to idle after their display window
// unless a newer generation has written in the meantime.
type StatusBoard struct {
	lastGen atomic.Uint64

	mu      sync.Mutex
	applied uint64
	current Status
	timer   *time.Timer

	successWindow time.Duration
	errorWindow   time.Duration
}

// NewStatusBoard creates a board with the given auto-clear windows.
func NewStatusBoard(successWindow, errorWindow time.Duration) *StatusBoard {
	return &StatusBoard{
		current:       Status{Phase: PhaseIdle},
		successWindow: successWindow,
		errorWindow:   errorWindow,
	}
}

// Begin allocates a generation id for a new operation.
func (b *StatusBoard) Begin() uint64 {
	return b.lastGen.Add(1)
}

// Set applies a status write for the given generation. It reports whether
// the write was applied or dropped as stale.
func (b *StatusBoard) Set(gen uint64, phase Phase, message string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen < b.applied {
		return false
	}

	b.applied = gen
	b.current = Status{Phase: phase, Message: message}

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}

	if !b.current.terminal() {
		return true
	}

	window := b.successWindow
	if phase == PhaseError {
		window = b.errorWindow
	}
	b.timer = time.AfterFunc(window, func() { b.clear(gen) })
	return true
}

// clear reverts a terminal status to idle, unless superseded.
func (b *StatusBoard) clear(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.applied != gen || !b.current.terminal() {
		return
	}
	b.current = Status{Phase: PhaseIdle}
}

// Current returns the displayed status.
func (b *StatusBoard) Current() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}
