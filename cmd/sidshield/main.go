package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-sidshield/internal/app"
	"github.com/coreman2200/funtimes-sidshield/internal/config"
	"github.com/coreman2200/funtimes-sidshield/internal/demo"
	"github.com/coreman2200/funtimes-sidshield/internal/pin"
	"github.com/coreman2200/funtimes-sidshield/internal/sid"
)

func main() {
	// ---- Flags (config file fills whatever is not given on the command line) ----
	var cli cliFlags
	configPath := flag.String("config", config.DefaultPath, "path to config yaml")
	flag.BoolVar(&cli.debug, "d", false, "print every raw frame")
	flag.BoolVar(&cli.debug, "debug", false, "print every raw frame")
	flag.BoolVar(&cli.disableGPIO, "g", false, "use the no-op pin backend")
	flag.BoolVar(&cli.disableGPIO, "disable-gpio", false, "use the no-op pin backend")
	flag.BoolVar(&cli.demo, "demo", false, "play the built-in demo sequence instead of reading stdin")
	flag.StringVar(&cli.demoProgram, "demo-program", "", "YAML demo program to play (implies -demo)")
	flag.IntVar(&cli.progress, "progress", 0, "log counters every N frames (0 = off)")
	flag.Int64Var(&cli.clockHz, "clock-hz", 0, "chip master clock in Hz (0 = config/default)")
	flag.Parse()

	cli.set = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { cli.set[f.Name] = true })

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// ---- Config ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		if cli.set["config"] || !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		}
		cfg = config.Default()
	}
	applyFlags(cfg, cli)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	pins, err := pin.DefaultMap().Merge(cfg.Pins)
	if err != nil {
		log.Fatal().Err(err).Msg("bad pin map")
	}

	// ---- Pin backend: hardware unless disabled ----
	drv := openDriver(pins, cfg.DisableGPIO)
	defer drv.Close()

	// ---- Release the pins (and stop the clock) on Ctrl-C / kill ----
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go exitOnSignal(sigs, drv, log.Logger, os.Exit)

	var debugOut io.Writer
	if cfg.Debug {
		debugOut = os.Stdout
	}
	core, err := app.InitCore(sid.New(drv), app.Options{
		Log:           log.Logger,
		Debug:         debugOut,
		ProgressEvery: cfg.ProgressEvery,
	})
	if err != nil {
		drv.Close()
		log.Fatal().Err(err).Msg("chip init failed")
	}

	// ---- Master clock, configured once ----
	if cs, ok := drv.(pin.ClockSource); ok {
		f := physic.Frequency(cfg.ClockHz) * physic.Hertz
		if err := cs.StartClock(pin.ChipClock, f); err != nil {
			drv.Close()
			log.Fatal().Err(err).Str("pin", pins[pin.ChipClock]).Msg("failed to start chip clock")
		}
		log.Info().Str("freq", f.String()).Str("pin", pins[pin.ChipClock]).Msg("chip clock running")
	}

	if cfg.Demo {
		prog := demo.Builtin()
		if cfg.DemoProgram != "" {
			if prog, err = demo.Load(cfg.DemoProgram); err != nil {
				drv.Close()
				log.Fatal().Err(err).Msg("demo program")
			}
		}
		if err := core.RunDemo(prog); err != nil {
			drv.Close()
			log.Fatal().Err(err).Msg("demo failed")
		}
		return
	}

	log.Info().Msg("reading frames from stdin")
	if err := core.Run(os.Stdin); err != nil {
		drv.Close()
		log.Fatal().Err(err).
			Uint64("frames", core.Stats.Frames).
			Uint64("writes", core.Stats.Writes).
			Msg("stopped")
	}
}

func openDriver(pins pin.Map, disable bool) pin.Driver {
	if disable {
		log.Info().Msg("GPIO disabled; pin output is discarded")
		return pin.NewNop()
	}
	drv, err := pin.OpenPeriph(pins)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize GPIO (use -disable-gpio to run without hardware)")
	}
	log.Info().Interface("pins", pins).Msg("GPIO ready")
	return drv
}
