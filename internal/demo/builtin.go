package demo

import "github.com/coreman2200/funtimes-sidshield/internal/sid"

// freq splits a 16-bit oscillator value for a note at a 1 MHz chip clock.
func freq(fn uint16) []Write {
	return []Write{
		{Addr: sid.V1FreqLo, Data: uint8(fn)},
		{Addr: sid.V1FreqHi, Data: uint8(fn >> 8)},
	}
}

func note(name string, fn uint16, wave uint8) []Step {
	return []Step{
		{Name: name, Writes: append(freq(fn), Write{Addr: sid.V1Ctrl, Data: wave | sid.CtrlGate}), HoldMS: 400},
		{Name: name + " release", Writes: []Write{{Addr: sid.V1Ctrl, Data: wave}}, HoldMS: 200},
	}
}

// Builtin plays a short arpeggio on voice 1 and leaves the chip silent.
func Builtin() Program {
	zero := Step{Name: "clear"}
	for a := uint8(0); a <= sid.ModeVol; a++ {
		zero.Writes = append(zero.Writes, Write{Addr: a})
	}

	steps := []Step{
		zero,
		{Name: "volume", Writes: []Write{{Addr: sid.ModeVol, Data: 0x0F}}},
		{Name: "envelope", Writes: []Write{{Addr: sid.V1AD, Data: 0x09}, {Addr: sid.V1SR, Data: 0xA0}}},
		{Name: "pulse width", Writes: []Write{{Addr: sid.V1PWLo, Data: 0x00}, {Addr: sid.V1PWHi, Data: 0x08}}},
	}
	steps = append(steps, note("A4", 0x1CD6, sid.CtrlTri)...)
	steps = append(steps, note("E5", 0x2B34, sid.CtrlSaw)...)
	steps = append(steps, note("A5", 0x39AC, sid.CtrlPulse)...)
	steps = append(steps, Step{Name: "silence", Writes: []Write{{Addr: sid.ModeVol, Data: 0x00}}})

	return Program{Version: "demo.v1", Repeat: 1, Steps: steps}
}
