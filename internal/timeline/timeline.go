// Package timeline implements the beat/time mapping of a tempo timeline:
// conversions between clock microseconds and continuous beat positions,
// phase within a bar quantum, pivoted tempo changes, and beat remapping.
package timeline

import (
	"math"

	"github.com/docwilco/linksync/sdk/contracts"
)

const microsPerMinute = 60e6

// BeatAtTime returns the continuous beat value at the given clock time.
func BeatAtTime(tl contracts.Timeline, micros int64) float64 {
	return tl.BeatOrigin + float64(micros-tl.TimeOrigin)*tl.Tempo/microsPerMinute
}

// TimeAtBeat returns the clock time at which the given beat occurs. It is
// the inverse of BeatAtTime under constant tempo.
func TimeAtBeat(tl contracts.Timeline, beat float64) int64 {
	if tl.Tempo <= 0 {
		return tl.TimeOrigin
	}
	return tl.TimeOrigin + int64(math.Round((beat-tl.BeatOrigin)*microsPerMinute/tl.Tempo))
}

// PhaseAtTime returns the position within the current bar at the given time,
// in the interval [0, quantum). Quantum values <= 0 yield 0.
func PhaseAtTime(tl contracts.Timeline, micros int64, quantum float64) float64 {
	return Phase(BeatAtTime(tl, micros), quantum)
}

// Phase reduces a beat value to [0, quantum), handling negative beats.
// Quantum values <= 0 yield 0.
func Phase(beat, quantum float64) float64 {
	if quantum <= 0 {
		return 0
	}
	p := math.Mod(beat, quantum)
	if p < 0 {
		p += quantum
	}
	return p
}

// SetTempo changes the tempo with the given time as pivot: the beat value at
// that time is preserved while the rest of the mapping is re-sloped.
func SetTempo(tl contracts.Timeline, bpm float64, micros int64) contracts.Timeline {
	return contracts.Timeline{
		Tempo:      bpm,
		BeatOrigin: BeatAtTime(tl, micros),
		TimeOrigin: micros,
	}
}

// ForceBeatAtTime shifts the mapping so that the given beat value holds at
// the given time, unconditionally.
func ForceBeatAtTime(tl contracts.Timeline, beat float64, micros int64, quantum float64) contracts.Timeline {
	tl.BeatOrigin += beat - BeatAtTime(tl, micros)
	return tl
}

// RequestBeatAtTime maps the given beat to the given time when the session
// has no peers. With peers present the beat is instead mapped to the first
// time at or after micros whose session phase matches the phase of beat, so
// the shared bar grid is not disturbed (quantized launch).
func RequestBeatAtTime(tl contracts.Timeline, peers uint64, beat float64, micros int64, quantum float64) contracts.Timeline {
	if peers == 0 || quantum <= 0 || tl.Tempo <= 0 {
		return ForceBeatAtTime(tl, beat, micros, quantum)
	}
	want := Phase(beat, quantum)
	have := PhaseAtTime(tl, micros, quantum)
	ahead := Phase(want-have, quantum)
	at := micros + int64(math.Round(ahead*microsPerMinute/tl.Tempo))
	return ForceBeatAtTime(tl, beat, at, quantum)
}
