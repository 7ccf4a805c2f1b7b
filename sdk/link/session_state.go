package link

import (
	"github.com/docwilco/linksync/internal/timeline"
	"github.com/docwilco/linksync/sdk/contracts"
)

// DefaultTempo is the tempo reported by a nil snapshot, in beats per minute.
const DefaultTempo = 120.0

// SessionState is an owned snapshot of the shared tempo/transport state at
// the moment of capture. It is not a live view: mutations are local until
// published with Session.CommitSessionState. Snapshots go stale; capture a
// fresh one when current values are needed.
//
// A snapshot holds no engine resources, so dropping the value releases it.
// Every method is safe on a nil *SessionState and returns the documented
// default.
type SessionState struct {
	timeline  contracts.Timeline
	transport contracts.TransportState
	peers     uint64
}

// Tempo returns the snapshot's tempo in beats per minute. A nil snapshot
// reports DefaultTempo.
func (s *SessionState) Tempo() float64 {
	if s == nil {
		return DefaultTempo
	}
	return s.timeline.Tempo
}

// SetTempo changes the tempo with atTimeMicros as pivot: the beat value at
// that time is preserved while beats at all other times are recalculated for
// the new tempo. The change covers the whole timeline once committed, and
// Tempo reflects it immediately on this snapshot.
func (s *SessionState) SetTempo(bpm float64, atTimeMicros int64) {
	if s == nil {
		return
	}
	s.timeline = timeline.SetTempo(s.timeline, bpm, atTimeMicros)
}

// BeatAtTime returns the continuous beat value at the given time for the
// given quantum. The magnitude is local to this participant; the phase with
// respect to the quantum is shared with peers. A nil snapshot reports 0.
func (s *SessionState) BeatAtTime(micros int64, quantum float64) float64 {
	if s == nil {
		return 0
	}
	return timeline.BeatAtTime(s.timeline, micros)
}

// PhaseAtTime returns the position within the current bar at the given time,
// in [0, quantum). A nil snapshot reports 0.
func (s *SessionState) PhaseAtTime(micros int64, quantum float64) float64 {
	if s == nil {
		return 0
	}
	return timeline.PhaseAtTime(s.timeline, micros, quantum)
}

// TimeAtBeat returns the time at which the given beat occurs, the inverse of
// BeatAtTime under constant tempo. A nil snapshot reports 0.
func (s *SessionState) TimeAtBeat(beat, quantum float64) int64 {
	if s == nil {
		return 0
	}
	return timeline.TimeAtBeat(s.timeline, beat)
}

// RequestBeatAtTime maps the given beat to the given time. When the snapshot
// was captured with peers present, the beat is instead mapped to the first
// time at or after atTimeMicros whose session phase matches the beat's
// phase, so the shared bar grid is preserved (quantized launch). Mapping
// beat 0 ahead of now yields a negative current beat, a count-in.
func (s *SessionState) RequestBeatAtTime(beat float64, atTimeMicros int64, quantum float64) {
	if s == nil {
		return
	}
	s.timeline = timeline.RequestBeatAtTime(s.timeline, s.peers, beat, atTimeMicros, quantum)
}

// ForceBeatAtTime maps the given beat to the given time unconditionally,
// shifting the session phase for every peer. Intended for bridging an
// external clock source; most callers want RequestBeatAtTime.
func (s *SessionState) ForceBeatAtTime(beat float64, atTimeMicros int64, quantum float64) {
	if s == nil {
		return
	}
	s.timeline = timeline.ForceBeatAtTime(s.timeline, beat, atTimeMicros, quantum)
}

// IsPlaying reports the target transport state, which may already be in
// effect or scheduled; TimeForIsPlaying tells which. A nil snapshot reports
// false.
func (s *SessionState) IsPlaying() bool {
	if s == nil {
		return false
	}
	return s.transport.IsPlaying
}

// SetIsPlaying schedules a play/stop transition at the given time. The
// change is visible on this snapshot immediately and shared once committed.
func (s *SessionState) SetIsPlaying(isPlaying bool, atTimeMicros int64) {
	if s == nil {
		return
	}
	s.transport = contracts.TransportState{IsPlaying: isPlaying, Time: atTimeMicros}
}

// TimeForIsPlaying returns the time at which the current transport state
// took or takes effect, 0 if transport state was never set.
func (s *SessionState) TimeForIsPlaying() int64 {
	if s == nil {
		return 0
	}
	return s.transport.Time
}

// RequestBeatAtStartPlayingTime requests that the given beat hold at the
// transport start time, for quantized launches that begin a piece at a known
// beat. No-op when transport is stopped.
func (s *SessionState) RequestBeatAtStartPlayingTime(beat, quantum float64) {
	if s == nil || !s.transport.IsPlaying {
		return
	}
	s.RequestBeatAtTime(beat, s.transport.Time, quantum)
}

// SetIsPlayingAndRequestBeatAtTime schedules a transport transition and maps
// the given beat to the transition time in one operation.
func (s *SessionState) SetIsPlayingAndRequestBeatAtTime(isPlaying bool, atTimeMicros int64, beat, quantum float64) {
	if s == nil {
		return
	}
	s.SetIsPlaying(isPlaying, atTimeMicros)
	if isPlaying {
		s.RequestBeatAtTime(beat, atTimeMicros, quantum)
	}
}
