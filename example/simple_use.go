package main

import (
	"fmt"
	"time"

	"github.com/docwilco/linksync/internal/logger"
	"github.com/docwilco/linksync/sdk/contracts"
	"github.com/docwilco/linksync/sdk/link"
)

func main() {
	log := logger.NewZapLogger()

	session, err := link.NewSession(120.0,
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
	)
	if err != nil {
		log.Error("Failed to create session", log.Field().Error("error", err))
		return
	}
	defer session.Close()

	session.Enable(true)
	session.EnableStartStopSync(true)

	fmt.Println("Session enabled:", session.IsEnabled())

	quantum := 4.0
	for i := 0; i < 30; i++ {
		state := session.CaptureSessionState()
		now := link.ClockMicros()

		log.Info("Session status",
			log.Field().Int64("time", now),
			log.Field().Float64("tempo", state.Tempo()),
			log.Field().Float64("beat", state.BeatAtTime(now, quantum)),
			log.Field().Float64("phase", state.PhaseAtTime(now, quantum)),
			log.Field().Uint64("peers", session.NumPeers()),
			log.Field().Bool("playing", state.IsPlaying()),
		)

		if i == 5 {
			fmt.Println("Changing tempo to 130 BPM...")
			state.SetTempo(130.0, now)
			session.CommitSessionState(state)
		}

		if i == 10 && !state.IsPlaying() {
			fmt.Println("Starting transport at the next downbeat...")
			state.SetIsPlayingAndRequestBeatAtTime(true, now, 0.0, quantum)
			session.CommitSessionState(state)
		}

		if i == 20 && state.IsPlaying() {
			fmt.Println("Stopping transport...")
			state.SetIsPlaying(false, now)
			session.CommitSessionState(state)
		}

		time.Sleep(1 * time.Second)
	}

	fmt.Println("Example completed.")
}
