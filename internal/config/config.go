package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "sidshield.yaml"

type Config struct {
	Pins          map[string]string `yaml:"pins,omitempty"` // signal -> board pin, e.g. chip_select: GPIO4
	ClockHz       int64             `yaml:"clock_hz"`
	Debug         bool              `yaml:"debug"`
	DisableGPIO   bool              `yaml:"disable_gpio"`
	Demo          bool              `yaml:"demo"`
	DemoProgram   string            `yaml:"demo_program,omitempty"`
	ProgressEvery int               `yaml:"progress_every"` // frames between progress logs; 0 = off
}

// Default returns the settings used when no file is present. 1 MHz is the 6581's nominal clock.
func Default() *Config {
	return &Config{
		ClockHz:       1000000,
		ProgressEvery: 0,
	}
}

// Load reads path on top of Default.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
