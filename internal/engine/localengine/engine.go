// Package localengine implements the session engine contract in-process,
// with no peer discovery. It maintains the authoritative timeline and
// transport state for a single participant; a networked engine plugged in
// through the same contract replaces it transparently.
package localengine

import (
	"sync"

	"github.com/docwilco/linksync/internal/hostclock"
	"github.com/docwilco/linksync/sdk/contracts"
)

// Engine manages the shared session state for a process with no peers.
// Capture and Commit are guarded by a mutex so snapshots taken from
// different goroutines each see a consistent timeline.
type Engine struct {
	logger contracts.Logger

	mu            sync.Mutex
	enabled       bool
	startStopSync bool
	timeline      contracts.Timeline
	transport     contracts.TransportState
}

// New creates an engine whose timeline starts at beat zero, now, at the
// given tempo.
func New(bpm float64, logger contracts.Logger) *Engine {
	return &Engine{
		logger: logger,
		timeline: contracts.Timeline{
			Tempo:      bpm,
			BeatOrigin: 0,
			TimeOrigin: hostclock.Micros(),
		},
	}
}

// Enable starts or stops participation. With no peers this only toggles the
// flag, but the lifecycle matches what a networked engine goes through.
func (e *Engine) Enable(enable bool) {
	e.mu.Lock()
	changed := e.enabled != enable
	e.enabled = enable
	e.mu.Unlock()

	if changed {
		e.logger.Info("session participation changed",
			e.logger.Field().Bool("enabled", enable))
	}
}

// IsEnabled reports whether the engine is participating.
func (e *Engine) IsEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// EnableStartStopSync starts or stops sharing of transport state.
func (e *Engine) EnableStartStopSync(enable bool) {
	e.mu.Lock()
	e.startStopSync = enable
	e.mu.Unlock()
}

// IsStartStopSyncEnabled reports whether transport state is shared.
func (e *Engine) IsStartStopSyncEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startStopSync
}

// NumPeers returns 0: the local engine never discovers peers.
func (e *Engine) NumPeers() uint64 {
	return 0
}

// Capture snapshots the current shared state.
func (e *Engine) Capture() (contracts.Timeline, contracts.TransportState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timeline, e.transport
}

// Commit adopts the submitted snapshot wholesale. With no peers there is
// nothing to reconcile, so the last commit wins.
func (e *Engine) Commit(tl contracts.Timeline, ts contracts.TransportState) {
	e.mu.Lock()
	e.timeline = tl
	e.transport = ts
	e.mu.Unlock()

	e.logger.Debug("session state committed",
		e.logger.Field().Float64("tempo", tl.Tempo),
		e.logger.Field().Bool("playing", ts.IsPlaying))
}

// Close disables the engine. It never fails; the error return satisfies the
// engine contract for implementations that release real resources.
func (e *Engine) Close() error {
	e.Enable(false)
	return nil
}
