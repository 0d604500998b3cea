package sid

import (
	"fmt"
	"time"

	"github.com/coreman2200/funtimes-sidshield/internal/pin"
	"periph.io/x/conn/v3/gpio"
)

// Minimum hold times from the 6581 datasheet. Sleeps may overshoot, never undershoot.
const (
	SelectPulse = 2 * time.Microsecond
	ResetPulse  = time.Millisecond
)

// Chip owns the pin driver for the lifetime of the process. It is not safe for concurrent use.
type Chip struct {
	pins  pin.Driver
	sleep func(time.Duration)
}

type Option func(*Chip)

// WithSleep replaces time.Sleep for the select and reset holds.
func WithSleep(f func(time.Duration)) Option {
	return func(c *Chip) { c.sleep = f }
}

func New(d pin.Driver, opts ...Option) *Chip {
	c := &Chip{pins: d, sleep: time.Sleep}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Chip) write(s pin.Signal, l gpio.Level) error {
	if err := c.pins.Write(s, l); err != nil {
		return fmt.Errorf("sid: %w", err)
	}
	return nil
}

func (c *Chip) pulse(s pin.Signal) error {
	if err := c.write(s, gpio.High); err != nil {
		return err
	}
	return c.write(s, gpio.Low)
}

// WriteRegister shifts addr and data out MSB first on the shared clock, latches
// both registers onto the chip's buses and strobes chip select.
// addr must already be validated; only its low 5 bits are wired.
func (c *Chip) WriteRegister(addr, data uint8) error {
	for i := 7; i >= 0; i-- {
		if err := c.write(pin.AddrData, LevelForBit(addr, uint(i))); err != nil {
			return err
		}
		if err := c.write(pin.Data, LevelForBit(data, uint(i))); err != nil {
			return err
		}
		if err := c.pulse(pin.ShiftClock); err != nil {
			return err
		}
	}
	if err := c.pulse(pin.ShiftLatch); err != nil {
		return err
	}
	return c.strobe()
}

// Write drives a validated RegisterWrite.
func (c *Chip) Write(w RegisterWrite) error {
	return c.WriteRegister(w.Address, w.Data)
}

// strobe holds chip select low long enough for the chip to sample the buses.
func (c *Chip) strobe() error {
	if err := c.write(pin.ChipSelect, gpio.Low); err != nil {
		return err
	}
	c.sleep(SelectPulse)
	return c.write(pin.ChipSelect, gpio.High)
}

// Reset pulses the chip's reset line and leaves chip select deasserted.
func (c *Chip) Reset() error {
	if err := c.write(pin.ChipReset, gpio.Low); err != nil {
		return err
	}
	c.sleep(ResetPulse)
	if err := c.write(pin.ChipReset, gpio.High); err != nil {
		return err
	}
	return c.write(pin.ChipSelect, gpio.High)
}

// Initialize configures every pin as output, resets the chip and clears the
// shift registers. It must run once before the first WriteRegister.
func (c *Chip) Initialize() error {
	for _, s := range pin.Signals {
		if err := c.pins.SetMode(s, pin.Output); err != nil {
			return fmt.Errorf("sid: configure %s: %w", s, err)
		}
	}
	if err := c.Reset(); err != nil {
		return err
	}
	for _, s := range []pin.Signal{pin.ShiftReset, pin.ShiftClock, pin.ShiftLatch} {
		if err := c.write(s, gpio.Low); err != nil {
			return err
		}
	}
	return c.write(pin.ShiftReset, gpio.High)
}
