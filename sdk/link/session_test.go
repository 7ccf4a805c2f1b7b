package link_test

import (
	"errors"
	"testing"

	"github.com/docwilco/linksync/internal/logger"
	"github.com/docwilco/linksync/sdk/contracts"
	"github.com/docwilco/linksync/sdk/link"
)

func newTestSession(t *testing.T, bpm float64, opts ...contracts.Option) *link.Session {
	t.Helper()
	opts = append([]contracts.Option{contracts.WithLogger(logger.NewNop())}, opts...)
	s, err := link.NewSession(bpm, opts...)
	if err != nil {
		t.Fatalf("NewSession(%v): %v", bpm, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewSessionValidatesTempo(t *testing.T) {
	for _, bpm := range []float64{0, -1, -120} {
		s, err := link.NewSession(bpm, contracts.WithLogger(logger.NewNop()))
		if !errors.Is(err, link.ErrInvalidTempo) {
			t.Fatalf("NewSession(%v) err = %v, want ErrInvalidTempo", bpm, err)
		}
		if s != nil {
			t.Fatalf("NewSession(%v) returned a session alongside an error", bpm)
		}
	}

	s := newTestSession(t, 120.0)
	if s.IsEnabled() {
		t.Fatal("sessions must start disabled")
	}
}

func TestNilSessionDefaults(t *testing.T) {
	var s *link.Session

	cases := []struct {
		name string
		got  any
		want any
	}{
		{"IsEnabled", s.IsEnabled(), false},
		{"IsStartStopSyncEnabled", s.IsStartStopSyncEnabled(), false},
		{"NumPeers", s.NumPeers(), uint64(0)},
		{"Tempo", s.Tempo(), 120.0},
		{"BeatAtTime", s.BeatAtTime(1_000_000, 4.0), 0.0},
		{"PhaseAtTime", s.PhaseAtTime(1_000_000, 4.0), 0.0},
		{"Close", s.Close(), error(nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("nil session %s = %v, want %v", tc.name, tc.got, tc.want)
			}
		})
	}

	// Mutators must not panic on nil.
	s.Enable(true)
	s.EnableStartStopSync(true)
	s.SetTempo(140.0)
	s.CommitSessionState(nil)
	if state := s.CaptureSessionState(); state != nil {
		t.Fatalf("nil session capture = %v, want nil", state)
	}
}

func TestNilSessionStateDefaults(t *testing.T) {
	var state *link.SessionState

	cases := []struct {
		name string
		got  any
		want any
	}{
		{"Tempo", state.Tempo(), 120.0},
		{"BeatAtTime", state.BeatAtTime(1_000_000, 4.0), 0.0},
		{"PhaseAtTime", state.PhaseAtTime(1_000_000, 4.0), 0.0},
		{"TimeAtBeat", state.TimeAtBeat(4.0, 4.0), int64(0)},
		{"IsPlaying", state.IsPlaying(), false},
		{"TimeForIsPlaying", state.TimeForIsPlaying(), int64(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("nil state %s = %v, want %v", tc.name, tc.got, tc.want)
			}
		})
	}

	// Mutators must not panic on nil.
	state.SetTempo(140.0, 0)
	state.RequestBeatAtTime(0, 0, 4.0)
	state.ForceBeatAtTime(0, 0, 4.0)
	state.SetIsPlaying(true, 0)
	state.RequestBeatAtStartPlayingTime(0, 4.0)
	state.SetIsPlayingAndRequestBeatAtTime(true, 0, 0, 4.0)
}

func TestEnableToggles(t *testing.T) {
	s := newTestSession(t, 120.0)

	s.Enable(true)
	if !s.IsEnabled() {
		t.Fatal("session not enabled after Enable(true)")
	}
	s.Enable(false)
	if s.IsEnabled() {
		t.Fatal("session still enabled after Enable(false)")
	}

	s.EnableStartStopSync(true)
	if !s.IsStartStopSyncEnabled() {
		t.Fatal("start-stop sync not enabled")
	}
}

func TestCaptureCommitCycle(t *testing.T) {
	s := newTestSession(t, 120.0)
	now := link.ClockMicros()

	state := s.CaptureSessionState()
	state.SetTempo(140.0, now)

	// Local mutation is visible on the snapshot before commit,
	// but not on a fresh capture.
	if got := state.Tempo(); got != 140.0 {
		t.Fatalf("snapshot tempo = %v, want 140", got)
	}
	if got := s.CaptureSessionState().Tempo(); got != 120.0 {
		t.Fatalf("uncommitted tempo leaked into session: %v", got)
	}

	s.CommitSessionState(state)
	if got := s.CaptureSessionState().Tempo(); got != 140.0 {
		t.Fatalf("tempo after commit = %v, want 140", got)
	}
}

func TestLastCommitWins(t *testing.T) {
	s := newTestSession(t, 120.0)
	now := link.ClockMicros()

	first := s.CaptureSessionState()
	second := s.CaptureSessionState()

	first.SetTempo(150.0, now)
	first.SetIsPlaying(true, now)
	second.SetTempo(90.0, now)

	s.CommitSessionState(first)
	s.CommitSessionState(second)

	// Commit adopts the snapshot wholesale: the second snapshot never saw
	// the first one's transport change, so that change is overwritten too.
	fresh := s.CaptureSessionState()
	if got := fresh.Tempo(); got != 90.0 {
		t.Fatalf("tempo after sequential commits = %v, want 90", got)
	}
	if fresh.IsPlaying() {
		t.Fatal("transport change from the first commit survived the second")
	}
}

func TestTransportScheduling(t *testing.T) {
	s := newTestSession(t, 120.0)
	at := link.ClockMicros() + 500_000

	state := s.CaptureSessionState()
	state.SetIsPlaying(true, at)

	if !state.IsPlaying() {
		t.Fatal("local transport mutation not visible before commit")
	}
	if got := state.TimeForIsPlaying(); got != at {
		t.Fatalf("TimeForIsPlaying = %d, want %d", got, at)
	}

	s.CommitSessionState(state)
	fresh := s.CaptureSessionState()
	if !fresh.IsPlaying() || fresh.TimeForIsPlaying() != at {
		t.Fatalf("committed transport = (%v, %d), want (true, %d)",
			fresh.IsPlaying(), fresh.TimeForIsPlaying(), at)
	}
}

func TestSimplifiedFacade(t *testing.T) {
	s := newTestSession(t, 120.0)

	if got := s.Tempo(); got != 120.0 {
		t.Fatalf("facade tempo = %v, want 120", got)
	}

	s.SetTempo(100.0)
	if got := s.Tempo(); got != 100.0 {
		t.Fatalf("facade tempo after set = %v, want 100", got)
	}

	// Non-positive tempo is ignored rather than committed.
	s.SetTempo(-10.0)
	if got := s.Tempo(); got != 100.0 {
		t.Fatalf("facade accepted non-positive tempo: %v", got)
	}

	// Facade reads agree with an explicit capture of the same state.
	now := link.ClockMicros()
	state := s.CaptureSessionState()
	if got, want := s.BeatAtTime(now, 4.0), state.BeatAtTime(now, 4.0); got != want {
		t.Fatalf("facade beat = %v, capture beat = %v", got, want)
	}
	if got, want := s.PhaseAtTime(now, 4.0), state.PhaseAtTime(now, 4.0); got != want {
		t.Fatalf("facade phase = %v, capture phase = %v", got, want)
	}
}

func TestClockMicrosMonotonic(t *testing.T) {
	prev := link.ClockMicros()
	for i := 0; i < 10_000; i++ {
		now := link.ClockMicros()
		if now < prev {
			t.Fatalf("clock went backwards: %d -> %d", prev, now)
		}
		prev = now
	}
}
