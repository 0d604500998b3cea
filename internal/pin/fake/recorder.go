package fake

import (
	"fmt"

	"github.com/coreman2200/funtimes-sidshield/internal/pin"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

type Kind string

const (
	SetMode Kind = "mode"
	Write   Kind = "write"
	Clock   Kind = "clock"
)

// Op is one recorded driver call.
type Op struct {
	Kind   Kind
	Signal pin.Signal
	Level  gpio.Level
	Freq   physic.Frequency
}

func (o Op) String() string {
	switch o.Kind {
	case Write:
		return fmt.Sprintf("%s=%s", o.Signal, o.Level)
	case Clock:
		return fmt.Sprintf("%s~%s", o.Signal, o.Freq)
	default:
		return fmt.Sprintf("%s:%s", o.Signal, o.Kind)
	}
}

// Recorder keeps every call in order, for asserting wire sequences in tests.
// FailOn makes Write return an error for that signal.
type Recorder struct {
	Ops    []Op
	Closed bool
	FailOn pin.Signal
}

func (r *Recorder) SetMode(s pin.Signal, m pin.Mode) error {
	r.Ops = append(r.Ops, Op{Kind: SetMode, Signal: s})
	return nil
}

func (r *Recorder) Write(s pin.Signal, l gpio.Level) error {
	if r.FailOn != "" && s == r.FailOn {
		return fmt.Errorf("fake: write %s failed", s)
	}
	r.Ops = append(r.Ops, Op{Kind: Write, Signal: s, Level: l})
	return nil
}

func (r *Recorder) StartClock(s pin.Signal, f physic.Frequency) error {
	r.Ops = append(r.Ops, Op{Kind: Clock, Signal: s, Freq: f})
	return nil
}

func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

// Writes returns only the Write ops.
func (r *Recorder) Writes() []Op {
	var out []Op
	for _, o := range r.Ops {
		if o.Kind == Write {
			out = append(out, o)
		}
	}
	return out
}

// Pulses counts Low->High->Low transitions on s among the recorded writes.
func (r *Recorder) Pulses(s pin.Signal) int {
	n := 0
	high := false
	for _, o := range r.Writes() {
		if o.Signal != s {
			continue
		}
		if o.Level == gpio.High {
			high = true
		} else if high {
			n++
			high = false
		}
	}
	return n
}

// Reset drops the recorded ops.
func (r *Recorder) Reset() { r.Ops = nil }
