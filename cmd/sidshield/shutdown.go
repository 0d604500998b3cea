package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-sidshield/internal/pin"
)

// exitOnSignal waits for a signal, halts the pins and exits with status 1.
func exitOnSignal(ch <-chan os.Signal, drv pin.Driver, l zerolog.Logger, exit func(int)) {
	s := <-ch
	l.Info().Str("signal", s.String()).Msg("shutting down")
	if err := drv.Close(); err != nil {
		l.Warn().Err(err).Msg("pin release failed")
	}
	exit(1)
}
