package pin

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

var (
	ErrHardwareUnavailable = errors.New("pin: hardware unavailable")
	ErrUnknownSignal       = errors.New("pin: unknown signal")
	ErrNotConfigured       = errors.New("pin: signal not configured as output")
)

// Signal names one logical line of the shield, independent of the board's pin numbering.
type Signal string

const (
	AddrData   Signal = "addr_data"
	Data       Signal = "data"
	ShiftClock Signal = "shift_clock"
	ShiftLatch Signal = "shift_latch"
	ShiftReset Signal = "shift_reset" // master clear, active low
	ChipClock  Signal = "chip_clock"
	ChipSelect Signal = "chip_select" // active low
	ChipReset  Signal = "chip_reset"  // active low
)

// Signals lists every signal in the order they are configured at startup.
var Signals = []Signal{AddrData, Data, ShiftClock, ShiftLatch, ShiftReset, ChipClock, ChipSelect, ChipReset}

// IdleLevel is the level a signal is parked at when it is configured.
// Active-low lines start deasserted.
func IdleLevel(s Signal) gpio.Level {
	switch s {
	case ShiftReset, ChipSelect, ChipReset:
		return gpio.High
	}
	return gpio.Low
}

type Mode int

const (
	Output Mode = iota
)

func (m Mode) String() string {
	if m == Output {
		return "output"
	}
	return "unknown"
}

// Driver abstracts the pin controller.
type Driver interface {
	// SetMode configures a signal's pin. Called once per signal during initialization.
	SetMode(s Signal, m Mode) error
	// Write drives a signal to the given level and returns once the pin has changed.
	Write(s Signal, l gpio.Level) error
	// Close releases resources.
	Close() error
}

// ClockSource is implemented by drivers that can generate the chip's master clock.
type ClockSource interface {
	StartClock(s Signal, f physic.Frequency) error
}
