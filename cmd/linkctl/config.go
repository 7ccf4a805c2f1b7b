package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/docwilco/linksync/sdk/contracts"
)

// linkctl config.toml key mapping to runtime settings.
type fileConfig struct {
	Tempo            float64 `toml:"tempo"`
	Quantum          float64 `toml:"quantum"`
	Enable           bool    `toml:"enable"`
	StartStopSync    bool    `toml:"start_stop_sync"`
	StatusIntervalMS int     `toml:"status_interval_ms"`
	LogLevel         string  `toml:"log_level"`
	MIDIClockDevice  string  `toml:"midi_clock_device"`
}

// runConfig holds the resolved linkctl settings.
type runConfig struct {
	Tempo           float64
	Quantum         float64
	Enable          bool
	StartStopSync   bool
	StatusInterval  time.Duration
	LogLevel        contracts.LogLevel
	MIDIClockDevice string
}

func defaultRunConfig() runConfig {
	return runConfig{
		Tempo:          120.0,
		Quantum:        4.0,
		Enable:         true,
		StatusInterval: time.Second,
		LogLevel:       contracts.InfoLevel,
	}
}

var logLevels = map[string]contracts.LogLevel{
	"debug": contracts.DebugLevel,
	"info":  contracts.InfoLevel,
	"warn":  contracts.WarnLevel,
	"error": contracts.ErrorLevel,
}

// linkctl loader for TOML config with default overlay.
func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load linkctl config: %w", err)
	}

	if meta.IsDefined("tempo") {
		cfg.Tempo = raw.Tempo
	}
	if meta.IsDefined("quantum") {
		cfg.Quantum = raw.Quantum
	}
	if meta.IsDefined("enable") {
		cfg.Enable = raw.Enable
	}
	if meta.IsDefined("start_stop_sync") {
		cfg.StartStopSync = raw.StartStopSync
	}
	if meta.IsDefined("status_interval_ms") {
		cfg.StatusInterval = time.Duration(raw.StatusIntervalMS) * time.Millisecond
	}
	if meta.IsDefined("log_level") {
		level, ok := logLevels[strings.ToLower(strings.TrimSpace(raw.LogLevel))]
		if !ok {
			return runConfig{}, fmt.Errorf(
				"load linkctl config: unsupported log level %q (expected debug, info, warn or error)",
				raw.LogLevel,
			)
		}
		cfg.LogLevel = level
	}
	if meta.IsDefined("midi_clock_device") {
		cfg.MIDIClockDevice = strings.TrimSpace(raw.MIDIClockDevice)
	}

	if cfg.Tempo <= 0 {
		return runConfig{}, fmt.Errorf("load linkctl config: tempo must be positive, got %v", cfg.Tempo)
	}
	if cfg.Quantum <= 0 {
		return runConfig{}, fmt.Errorf("load linkctl config: quantum must be positive, got %v", cfg.Quantum)
	}
	if cfg.StatusInterval <= 0 {
		return runConfig{}, fmt.Errorf("load linkctl config: status_interval_ms must be positive")
	}

	return cfg, nil
}
