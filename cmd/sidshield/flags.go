package main

import "github.com/coreman2200/funtimes-sidshield/internal/config"

// cliFlags holds parsed flag values; set records which ones were given on the command line.
type cliFlags struct {
	debug       bool
	disableGPIO bool
	demo        bool
	demoProgram string
	progress    int
	clockHz     int64
	set         map[string]bool
}

// applyFlags lays command-line values over cfg. Flags not given leave the file's values alone.
func applyFlags(cfg *config.Config, f cliFlags) {
	if f.set["d"] || f.set["debug"] {
		cfg.Debug = f.debug
	}
	if f.set["g"] || f.set["disable-gpio"] {
		cfg.DisableGPIO = f.disableGPIO
	}
	if f.set["demo"] {
		cfg.Demo = f.demo
	}
	if f.demoProgram != "" {
		cfg.DemoProgram = f.demoProgram
		cfg.Demo = true
	}
	if f.set["progress"] {
		cfg.ProgressEvery = f.progress
	}
	if f.clockHz > 0 {
		cfg.ClockHz = f.clockHz
	}
}
