package demo

// Write is one register assignment inside a step.
type Write struct {
	Addr uint8 `yaml:"addr"`
	Data uint8 `yaml:"data"`
}

// Step applies its writes back to back, then holds for HoldMS.
type Step struct {
	Name   string  `yaml:"name,omitempty"`
	Writes []Write `yaml:"writes"`
	HoldMS int     `yaml:"hold_ms,omitempty"`
}

// Program is a fixed sequence of steps, played Repeat times (at least once).
type Program struct {
	Version string `yaml:"version"` // e.g., "demo.v1"
	Repeat  int    `yaml:"repeat,omitempty"`
	Steps   []Step `yaml:"steps"`
}

// PlayerState enumerates player states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
)
