package contracts

// Timeline describes the mapping between the shared clock and beat time.
// A beat value for a time t is BeatOrigin + (t - TimeOrigin) * Tempo / 60e6.
type Timeline struct {
	Tempo      float64 // Tempo in beats per minute.
	BeatOrigin float64 // Beat value at TimeOrigin.
	TimeOrigin int64   // Reference point on the clock, in microseconds.
}

// TransportState describes the shared play/stop state and the time at which
// the most recent transition takes (or took) effect.
type TransportState struct {
	IsPlaying bool  // Whether transport is playing or scheduled to play.
	Time      int64 // Transition timestamp in microseconds, 0 if never set.
}
