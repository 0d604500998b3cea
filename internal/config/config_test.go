package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sidshield.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pins:
  chip_select: GPIO5
debug: true
progress_every: 250
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.Debug)
	assert.False(t, c.DisableGPIO)
	assert.Equal(t, 250, c.ProgressEvery)
	assert.Equal(t, int64(1000000), c.ClockHz, "unset keys keep defaults")
	assert.Equal(t, "GPIO5", c.Pins["chip_select"])
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	in := Default()
	in.Demo = true
	in.DemoProgram = "demo.yaml"
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
