package pin

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// Periph drives the shield through periph.io's GPIO registry.
type Periph struct {
	mu         sync.Mutex
	pins       map[Signal]gpio.PinIO
	configured map[Signal]bool
}

// OpenPeriph initializes the host drivers and resolves every signal in m to a pin.
// It fails with ErrHardwareUnavailable when the controller or any pin cannot be found.
func OpenPeriph(m Map) (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: host init: %v", ErrHardwareUnavailable, err)
	}
	return NewPeriph(m, gpioreg.ByName)
}

// NewPeriph resolves pins with lookup instead of the global registry.
func NewPeriph(m Map, lookup func(name string) gpio.PinIO) (*Periph, error) {
	p := &Periph{
		pins:       make(map[Signal]gpio.PinIO, len(m)),
		configured: make(map[Signal]bool, len(m)),
	}
	for _, s := range Signals {
		name, ok := m[s]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no pin assigned", ErrUnknownSignal, s)
		}
		io := lookup(name)
		if io == nil {
			return nil, fmt.Errorf("%w: pin %s (%s) not found", ErrHardwareUnavailable, name, s)
		}
		p.pins[s] = io
	}
	return p, nil
}

func (p *Periph) pin(s Signal) (gpio.PinIO, error) {
	io, ok := p.pins[s]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSignal, s)
	}
	return io, nil
}

// SetMode switches the pin to output. periph has no separate direction call,
// so the pin is driven to IdleLevel(s) as part of the switch.
func (p *Periph) SetMode(s Signal, m Mode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	io, err := p.pin(s)
	if err != nil {
		return err
	}
	if m != Output {
		return fmt.Errorf("pin: %s: unsupported mode %s", s, m)
	}
	if err := io.Out(IdleLevel(s)); err != nil {
		return fmt.Errorf("pin: %s (%s) set output: %w", s, io.Name(), err)
	}
	p.configured[s] = true
	return nil
}

func (p *Periph) Write(s Signal, l gpio.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	io, err := p.pin(s)
	if err != nil {
		return err
	}
	if !p.configured[s] {
		return fmt.Errorf("%w: %s", ErrNotConfigured, s)
	}
	if err := io.Out(l); err != nil {
		return fmt.Errorf("pin: %s (%s) write %s: %w", s, io.Name(), l, err)
	}
	return nil
}

// StartClock starts a 50% duty cycle PWM at f on the signal's pin.
func (p *Periph) StartClock(s Signal, f physic.Frequency) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	io, err := p.pin(s)
	if err != nil {
		return err
	}
	if err := io.PWM(gpio.DutyHalf, f); err != nil {
		return fmt.Errorf("pin: %s (%s) pwm %s: %w", s, io.Name(), f, err)
	}
	return nil
}

// Close halts every configured pin, which also stops a running clock.
// Writes after Close fail with ErrNotConfigured.
func (p *Periph) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var first error
	for s := range p.configured {
		if err := p.pins[s].Halt(); err != nil && first == nil {
			first = fmt.Errorf("pin: %s halt: %w", s, err)
		}
	}
	p.configured = map[Signal]bool{}
	return first
}
