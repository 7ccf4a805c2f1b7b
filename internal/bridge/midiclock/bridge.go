// Package midiclock drives a MIDI clock from a session timeline. It emits
// the real-time messages Start, Stop and TimingClock (24 pulses per beat)
// through a caller-supplied sender, aligned to the session's beat grid, so
// MIDI-clock hardware follows the shared tempo.
package midiclock

import (
	"errors"
	"math"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"

	"github.com/docwilco/linksync/sdk/contracts"
	"github.com/docwilco/linksync/sdk/link"
)

// PulsesPerBeat is the MIDI clock rate of 24 pulses per quarter note.
const PulsesPerBeat = 24

// idlePoll is how often a stopped bridge re-checks the transport state.
const idlePoll = 10 * time.Millisecond

// Error definitions for bridge construction.
var (
	ErrNilSession = errors.New("bridge requires a session")
	ErrNilSender  = errors.New("bridge requires a sender")
)

// Sender delivers a MIDI message to its destination, typically a driver
// output port.
type Sender func(msg midi.Message) error

// Bridge emits MIDI clock messages for one session.
type Bridge struct {
	session *link.Session
	quantum float64
	send    Sender
	logger  contracts.Logger

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// New creates a bridge for the given session. The quantum sets the bar
// length used when reading the timeline.
func New(session *link.Session, quantum float64, send Sender, log contracts.Logger) (*Bridge, error) {
	if session == nil {
		return nil, ErrNilSession
	}
	if send == nil {
		return nil, ErrNilSender
	}
	if quantum <= 0 {
		quantum = 4.0
	}
	return &Bridge{
		session: session,
		quantum: quantum,
		send:    send,
		logger:  log,
	}, nil
}

// Start begins emitting clock messages on a background goroutine. Starting
// an already running bridge is a no-op.
func (b *Bridge) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		b.logger.Warn("MIDI clock bridge already running")
		return
	}
	b.logger.Info("starting MIDI clock bridge",
		b.logger.Field().Float64("quantum", b.quantum))

	b.stop = make(chan struct{})
	b.running = true
	b.wg.Add(1)
	go b.run(b.stop)
}

// Stop halts the bridge and waits for the emitter goroutine to finish. A
// final Stop message is sent if transport was playing.
func (b *Bridge) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	close(b.stop)
	b.mu.Unlock()

	b.wg.Wait()
	b.logger.Info("MIDI clock bridge stopped")
}

func (b *Bridge) run(stop chan struct{}) {
	defer b.wg.Done()

	playing := false
	for {
		state := b.session.CaptureSessionState()
		now := link.ClockMicros()

		if state.IsPlaying() != playing {
			playing = state.IsPlaying()
			if playing {
				b.emit(midi.Start())
			} else {
				b.emit(midi.Stop())
			}
		}

		if !playing {
			select {
			case <-stop:
				return
			case <-time.After(idlePoll):
			}
			continue
		}

		wait := time.Duration(nextPulseMicros(state, now, b.quantum)-now) * time.Microsecond
		select {
		case <-stop:
			b.emit(midi.Stop())
			return
		case <-time.After(wait):
			b.emit(midi.TimingClock())
		}
	}
}

func (b *Bridge) emit(msg midi.Message) {
	if err := b.send(msg); err != nil {
		b.logger.Error("failed to send MIDI clock message",
			b.logger.Field().Error("error", err))
	}
}

// nextPulseMicros returns the time of the first clock pulse strictly after
// now on the snapshot's beat grid.
func nextPulseMicros(state *link.SessionState, now int64, quantum float64) int64 {
	beat := state.BeatAtTime(now, quantum)
	pulse := math.Floor(beat*PulsesPerBeat) + 1
	return state.TimeAtBeat(pulse/PulsesPerBeat, quantum)
}
