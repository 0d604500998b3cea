package pin_test

import (
	"testing"

	"github.com/coreman2200/funtimes-sidshield/internal/pin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

func testPins(m pin.Map) (map[string]*gpiotest.Pin, func(string) gpio.PinIO) {
	pins := map[string]*gpiotest.Pin{}
	for _, name := range m {
		pins[name] = &gpiotest.Pin{N: name}
	}
	return pins, func(name string) gpio.PinIO {
		p, ok := pins[name]
		if !ok {
			return nil
		}
		return p
	}
}

func TestPeriph_WriteDrivesMappedPin(t *testing.T) {
	m := pin.DefaultMap()
	pins, lookup := testPins(m)
	p, err := pin.NewPeriph(m, lookup)
	require.NoError(t, err)

	require.NoError(t, p.SetMode(pin.Data, pin.Output))
	assert.Equal(t, gpio.Low, pins["GPIO24"].L)

	require.NoError(t, p.Write(pin.Data, gpio.High))
	assert.Equal(t, gpio.High, pins["GPIO24"].L)
	assert.Equal(t, gpio.Low, pins["GPIO10"].L, "other pins untouched")
}

func TestPeriph_ActiveLowLinesStartDeasserted(t *testing.T) {
	m := pin.DefaultMap()
	pins, lookup := testPins(m)
	p, err := pin.NewPeriph(m, lookup)
	require.NoError(t, err)

	for _, s := range pin.Signals {
		require.NoError(t, p.SetMode(s, pin.Output))
	}
	assert.Equal(t, gpio.High, pins[m[pin.ChipSelect]].L, "chip select not asserted during setup")
	assert.Equal(t, gpio.High, pins[m[pin.ChipReset]].L)
	assert.Equal(t, gpio.High, pins[m[pin.ShiftReset]].L)
	assert.Equal(t, gpio.Low, pins[m[pin.ShiftClock]].L)
	assert.Equal(t, gpio.Low, pins[m[pin.AddrData]].L)
}

func TestPeriph_WriteAfterClose(t *testing.T) {
	m := pin.DefaultMap()
	_, lookup := testPins(m)
	p, err := pin.NewPeriph(m, lookup)
	require.NoError(t, err)

	require.NoError(t, p.SetMode(pin.ChipSelect, pin.Output))
	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.Write(pin.ChipSelect, gpio.Low), pin.ErrNotConfigured)
}

func TestPeriph_WriteBeforeSetMode(t *testing.T) {
	m := pin.DefaultMap()
	_, lookup := testPins(m)
	p, err := pin.NewPeriph(m, lookup)
	require.NoError(t, err)

	err = p.Write(pin.Data, gpio.High)
	assert.ErrorIs(t, err, pin.ErrNotConfigured)
}

func TestPeriph_MissingPinIsHardwareUnavailable(t *testing.T) {
	m := pin.DefaultMap()
	_, lookup := testPins(m)
	m2, err := m.Merge(map[string]string{string(pin.ChipReset): "GPIO99"})
	require.NoError(t, err)

	_, err = pin.NewPeriph(m2, lookup)
	assert.ErrorIs(t, err, pin.ErrHardwareUnavailable)
}

func TestPeriph_StartClock(t *testing.T) {
	m := pin.DefaultMap()
	_, lookup := testPins(m)
	p, err := pin.NewPeriph(m, lookup)
	require.NoError(t, err)

	assert.NoError(t, p.StartClock(pin.ChipClock, physic.MegaHertz))
	assert.NoError(t, p.Close())
}

func TestMap_MergeRejectsUnknownSignal(t *testing.T) {
	_, err := pin.DefaultMap().Merge(map[string]string{"sid_volume": "GPIO5"})
	assert.ErrorIs(t, err, pin.ErrUnknownSignal)
}

func TestNop_AcceptsEverything(t *testing.T) {
	var d pin.Driver = pin.NewNop()
	for _, s := range pin.Signals {
		assert.NoError(t, d.SetMode(s, pin.Output))
		assert.NoError(t, d.Write(s, gpio.High))
	}
	assert.NoError(t, d.(pin.ClockSource).StartClock(pin.ChipClock, physic.MegaHertz))
	assert.NoError(t, d.Close())
}
