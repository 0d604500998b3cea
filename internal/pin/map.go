package pin

import "fmt"

// Map assigns a board pin name (as known to periph's gpioreg, e.g. "GPIO10") to each signal.
type Map map[Signal]string

// DefaultMap is the shield's reference wiring on a Raspberry Pi (BCM numbering).
// The chip clock sits on GPIO18 since only GPIO18/19 carry hardware PWM.
func DefaultMap() Map {
	return Map{
		AddrData:   "GPIO10",
		Data:       "GPIO24",
		ShiftClock: "GPIO16",
		ShiftLatch: "GPIO12",
		ShiftReset: "GPIO9",
		ChipClock:  "GPIO18",
		ChipSelect: "GPIO4",
		ChipReset:  "GPIO23",
	}
}

// Merge returns a copy of m with entries from o overriding it. Empty names in o are ignored.
func (m Map) Merge(o map[string]string) (Map, error) {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range o {
		s := Signal(k)
		if _, ok := m[s]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, k)
		}
		if v != "" {
			out[s] = v
		}
	}
	return out, nil
}
