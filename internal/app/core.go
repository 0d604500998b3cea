package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-sidshield/internal/demo"
	"github.com/coreman2200/funtimes-sidshield/internal/frame"
	"github.com/coreman2200/funtimes-sidshield/internal/sid"
)

var ErrProtocolViolation = errors.New("app: protocol violation")

// Stats counts what the loop has processed so far.
type Stats struct {
	Frames   uint64
	Writes   uint64
	Dangling uint64
}

// Core owns the chip and runs the steady-state loop. Everything happens on the calling goroutine.
type Core struct {
	Chip  *sid.Chip
	Stats Stats

	log           zerolog.Logger
	debug         io.Writer
	progressEvery int
}

type Options struct {
	Log zerolog.Logger
	// Debug receives each raw frame after it has been driven; nil disables the dump.
	Debug io.Writer
	// ProgressEvery logs counters every N frames; 0 disables.
	ProgressEvery int
}

// InitCore initializes the chip and returns a Core ready to run.
func InitCore(chip *sid.Chip, opts Options) (*Core, error) {
	if err := chip.Initialize(); err != nil {
		return nil, fmt.Errorf("app: initialize chip: %w", err)
	}
	return &Core{
		Chip:          chip,
		log:           opts.Log,
		debug:         opts.Debug,
		progressEvery: opts.ProgressEvery,
	}, nil
}

// Run drives every frame read from r until the stream closes, which returns nil.
// A read error, a pin failure or an address outside the bus stops the loop with an error.
func (c *Core) Run(r io.Reader) error {
	fr := frame.NewReader(r)
	for {
		f, err := fr.Next()
		if errors.Is(err, io.EOF) {
			c.log.Info().
				Uint64("frames", c.Stats.Frames).
				Uint64("writes", c.Stats.Writes).
				Msg("input closed")
			return nil
		}
		if err != nil {
			return err
		}
		if err := c.HandleFrame(f); err != nil {
			return err
		}
	}
}

// HandleFrame decodes f and drives its writes in order. A frame holding an
// out-of-range address is rejected whole before any of it reaches the chip.
func (c *Core) HandleFrame(f frame.Frame) error {
	writes, diags, err := frame.Decode(f)
	if err != nil {
		var oe *frame.OffsetError
		var ae *sid.AddressError
		if errors.As(err, &oe) && errors.As(err, &ae) {
			frame.AddressRange(ae.Address, oe.Offset).Log(c.log)
		}
		return fmt.Errorf("%w: frame %d: %w", ErrProtocolViolation, c.Stats.Frames, err)
	}
	for _, w := range writes {
		if err := c.Chip.Write(w); err != nil {
			return fmt.Errorf("app: write %s: %w", w, err)
		}
		c.Stats.Writes++
	}
	for _, d := range diags {
		c.Stats.Dangling++
		d.Log(c.log)
	}
	c.Stats.Frames++

	if c.debug != nil {
		fmt.Fprintf(c.debug, "Frame: % X\n", []byte(f))
	}
	if c.progressEvery > 0 && c.Stats.Frames%uint64(c.progressEvery) == 0 {
		c.log.Info().
			Uint64("frames", c.Stats.Frames).
			Uint64("writes", c.Stats.Writes).
			Uint64("dangling", c.Stats.Dangling).
			Msg("progress")
	}
	return nil
}

// RunDemo plays prog through the chip instead of reading a stream.
func (c *Core) RunDemo(prog demo.Program) error {
	p := demo.NewPlayer(demo.Hooks{
		Write: func(w sid.RegisterWrite) error {
			if err := c.Chip.Write(w); err != nil {
				return err
			}
			c.Stats.Writes++
			return nil
		},
		StepDone: func(i int, s demo.Step) {
			c.log.Debug().Int("step", i).Str("name", s.Name).Int("writes", len(s.Writes)).Msg("demo step")
		},
	})
	c.log.Info().Str("version", prog.Version).Int("steps", len(prog.Steps)).Msg("demo starting")
	if err := p.Play(prog); err != nil {
		return err
	}
	c.log.Info().Uint64("writes", c.Stats.Writes).Msg("demo done")
	return nil
}
