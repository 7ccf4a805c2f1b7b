package link

import (
	"github.com/docwilco/linksync/sdk/contracts"
)

// Session is a live participant in a shared tempo/transport synchronization
// group. It delegates peer discovery and conflict resolution to its engine
// and exposes the capture/commit cycle plus a simplified single-call facade.
//
// A Session is not safe for concurrent calls on the same value; callers
// serialize access themselves. Every method is safe on a nil *Session and
// returns the documented default (false, 0, 0.0, or 120.0 for tempo).
type Session struct {
	engine contracts.Engine
	logger contracts.Logger
}

// Close releases the session's engine. Safe to call on a nil session.
func (s *Session) Close() error {
	if s == nil || s.engine == nil {
		return nil
	}
	s.logger.Info("session closed")
	return s.engine.Close()
}

// Enable starts or stops participation in peer discovery and clock exchange.
// Sessions start disabled.
func (s *Session) Enable(enable bool) {
	if s == nil || s.engine == nil {
		return
	}
	s.engine.Enable(enable)
}

// IsEnabled reports whether the session is participating. A nil session
// reports false; callers cannot distinguish "disabled" from "invalid" from
// this call alone.
func (s *Session) IsEnabled() bool {
	if s == nil || s.engine == nil {
		return false
	}
	return s.engine.IsEnabled()
}

// EnableStartStopSync starts or stops sharing of transport play/stop state
// with peers.
func (s *Session) EnableStartStopSync(enable bool) {
	if s == nil || s.engine == nil {
		return
	}
	s.engine.EnableStartStopSync(enable)
}

// IsStartStopSyncEnabled reports whether transport state is shared with
// peers. A nil session reports false.
func (s *Session) IsStartStopSyncEnabled() bool {
	if s == nil || s.engine == nil {
		return false
	}
	return s.engine.IsStartStopSyncEnabled()
}

// NumPeers returns the number of currently discovered peers. A nil session
// reports 0.
func (s *Session) NumPeers() uint64 {
	if s == nil || s.engine == nil {
		return 0
	}
	return s.engine.NumPeers()
}

// CaptureSessionState snapshots the current shared tempo/transport state as
// observed by this session. The snapshot is an independent copy: mutations
// stay local until committed. Returns nil for a nil session.
func (s *Session) CaptureSessionState() *SessionState {
	if s == nil || s.engine == nil {
		return nil
	}
	tl, ts := s.engine.Capture()
	return &SessionState{
		timeline:  tl,
		transport: ts,
		peers:     s.engine.NumPeers(),
	}
}

// CommitSessionState publishes a snapshot back into the shared session. The
// snapshot is not consumed: the caller retains ownership and may keep
// mutating and re-committing it, though a fresh capture is preferable since
// snapshots go stale. No-op if either the session or the state is nil.
func (s *Session) CommitSessionState(state *SessionState) {
	if s == nil || s.engine == nil || state == nil {
		return
	}
	s.engine.Commit(state.timeline, state.transport)
}

// Tempo returns the current tempo through an implicit capture. Part of the
// simplified facade: two calls in sequence may observe different snapshots.
// A nil session reports DefaultTempo.
func (s *Session) Tempo() float64 {
	if s == nil || s.engine == nil {
		return DefaultTempo
	}
	return s.CaptureSessionState().Tempo()
}

// SetTempo changes the tempo, pivoting at the current clock reading, through
// an implicit capture and commit. Non-positive tempo values are ignored.
func (s *Session) SetTempo(bpm float64) {
	if s == nil || s.engine == nil {
		return
	}
	if bpm <= 0 {
		s.logger.Warn("ignoring non-positive tempo",
			s.logger.Field().Float64("bpm", bpm))
		return
	}
	state := s.CaptureSessionState()
	state.SetTempo(bpm, ClockMicros())
	s.CommitSessionState(state)
}

// BeatAtTime returns the beat value at the given time through an implicit
// capture. A nil session reports 0.
func (s *Session) BeatAtTime(micros int64, quantum float64) float64 {
	if s == nil || s.engine == nil {
		return 0
	}
	return s.CaptureSessionState().BeatAtTime(micros, quantum)
}

// PhaseAtTime returns the phase at the given time through an implicit
// capture. A nil session reports 0.
func (s *Session) PhaseAtTime(micros int64, quantum float64) float64 {
	if s == nil || s.engine == nil {
		return 0
	}
	return s.CaptureSessionState().PhaseAtTime(micros, quantum)
}
