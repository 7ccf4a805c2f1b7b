// linkctl joins a tempo synchronization session and reports its state, for
// verifying that clock, beat grid and transport behave as expected. It can
// feed MIDI clock to a raw MIDI device while running.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlab.com/gomidi/midi/v2"

	"github.com/docwilco/linksync/internal/bridge/midiclock"
	"github.com/docwilco/linksync/internal/logger"
	"github.com/docwilco/linksync/sdk/contracts"
	"github.com/docwilco/linksync/sdk/link"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "linkctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to linkctl config.toml")
	flag.Parse()

	cfg := defaultRunConfig()
	if *configPath != "" {
		loaded, err := loadRunConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	log := logger.NewZapLogger()
	session, err := link.NewSession(cfg.Tempo,
		contracts.WithLogger(log),
		contracts.WithLogLevel(cfg.LogLevel),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer session.Close()

	session.Enable(cfg.Enable)
	session.EnableStartStopSync(cfg.StartStopSync)

	if cfg.MIDIClockDevice != "" {
		stopClock, err := startMIDIClock(session, cfg, log)
		if err != nil {
			return err
		}
		defer stopClock()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.StatusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			log.Info("shutting down")
			return nil
		case <-ticker.C:
			reportStatus(session, cfg.Quantum, log)
		}
	}
}

// startMIDIClock wires the session's beat grid to a raw MIDI device, such as
// an OSS /dev/midi* node, which accepts MIDI bytes directly.
func startMIDIClock(session *link.Session, cfg runConfig, log contracts.Logger) (func(), error) {
	dev, err := os.OpenFile(cfg.MIDIClockDevice, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open MIDI clock device: %w", err)
	}

	send := func(msg midi.Message) error {
		_, err := dev.Write(msg)
		return err
	}
	bridge, err := midiclock.New(session, cfg.Quantum, send, log)
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("create MIDI clock bridge: %w", err)
	}

	bridge.Start()
	return func() {
		bridge.Stop()
		dev.Close()
	}, nil
}

func reportStatus(session *link.Session, quantum float64, log contracts.Logger) {
	state := session.CaptureSessionState()
	now := link.ClockMicros()

	log.Info("session status",
		log.Field().Float64("tempo", state.Tempo()),
		log.Field().Float64("beat", state.BeatAtTime(now, quantum)),
		log.Field().Float64("phase", state.PhaseAtTime(now, quantum)),
		log.Field().Uint64("peers", session.NumPeers()),
		log.Field().Bool("playing", state.IsPlaying()),
		log.Field().Bool("enabled", session.IsEnabled()),
	)
}
