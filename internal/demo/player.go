package demo

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-sidshield/internal/sid"
)

// Hooks connect the player to the chip.
type Hooks struct {
	// Write drives one validated register write.
	Write func(w sid.RegisterWrite) error
	// Hold pauses between steps.
	Hold func(d time.Duration)
	// StepDone is optional and called after each step's writes.
	StepDone func(i int, s Step)
}

type Player struct {
	State PlayerState
	hooks Hooks
}

func NewPlayer(h Hooks) *Player {
	if h.Hold == nil {
		h.Hold = time.Sleep
	}
	return &Player{State: Idle, hooks: h}
}

// Validate checks every address before anything is played.
func (p Program) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("demo: program has no steps")
	}
	for i, s := range p.Steps {
		for _, w := range s.Writes {
			if _, err := sid.NewRegisterWrite(w.Addr, w.Data); err != nil {
				return fmt.Errorf("demo: step %d (%s): %w", i, s.Name, err)
			}
		}
		if s.HoldMS < 0 {
			return fmt.Errorf("demo: step %d (%s): negative hold", i, s.Name)
		}
	}
	return nil
}

// Play runs prog to completion. It stops at the first failed write.
func (pl *Player) Play(prog Program) error {
	if err := prog.Validate(); err != nil {
		return err
	}
	pl.State = Running
	defer func() { pl.State = Idle }()

	n := prog.Repeat
	if n < 1 {
		n = 1
	}
	for r := 0; r < n; r++ {
		for i, s := range prog.Steps {
			for _, w := range s.Writes {
				if err := pl.hooks.Write(sid.RegisterWrite{Address: w.Addr, Data: w.Data}); err != nil {
					return fmt.Errorf("demo: step %d (%s): %w", i, s.Name, err)
				}
			}
			if pl.hooks.StepDone != nil {
				pl.hooks.StepDone(i, s)
			}
			if s.HoldMS > 0 {
				pl.hooks.Hold(time.Duration(s.HoldMS) * time.Millisecond)
			}
		}
	}
	return nil
}

// Load reads a YAML program from path.
func Load(path string) (Program, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Program{}, err
	}
	var p Program
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Program{}, fmt.Errorf("demo: %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Program{}, err
	}
	return p, nil
}
