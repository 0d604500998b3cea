// Package sid drives a 6581 SID through the shield's pair of shift registers.
package sid

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// AddressCount is the number of registers reachable on the chip's 5-bit address bus.
const AddressCount = 0x20

var ErrAddressOutOfRange = errors.New("sid: address out of range")

// AddressError reports an address that does not fit the 5-bit bus.
type AddressError struct {
	Address uint8
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("sid: address 0x%02X out of range (max 0x%02X)", e.Address, AddressCount-1)
}

func (e *AddressError) Unwrap() error { return ErrAddressOutOfRange }

// RegisterWrite is a single (address, data) command for the chip.
type RegisterWrite struct {
	Address uint8
	Data    uint8
}

// NewRegisterWrite validates addr before building the command.
func NewRegisterWrite(addr, data uint8) (RegisterWrite, error) {
	if addr >= AddressCount {
		return RegisterWrite{}, &AddressError{Address: addr}
	}
	return RegisterWrite{Address: addr, Data: data}, nil
}

func (w RegisterWrite) String() string {
	return fmt.Sprintf("%02X=%02X", w.Address, w.Data)
}

// LevelForBit returns the level of bit i of v.
func LevelForBit(v uint8, i uint) gpio.Level {
	return gpio.Level((v>>i)&1 == 1)
}

// 6581 register offsets.
const (
	V1FreqLo  uint8 = 0x00
	V1FreqHi  uint8 = 0x01
	V1PWLo    uint8 = 0x02
	V1PWHi    uint8 = 0x03
	V1Ctrl    uint8 = 0x04
	V1AD      uint8 = 0x05
	V1SR      uint8 = 0x06
	V2FreqLo  uint8 = 0x07
	V2FreqHi  uint8 = 0x08
	V2Ctrl    uint8 = 0x0B
	V2AD      uint8 = 0x0C
	V2SR      uint8 = 0x0D
	V3FreqLo  uint8 = 0x0E
	V3FreqHi  uint8 = 0x0F
	V3Ctrl    uint8 = 0x12
	V3AD      uint8 = 0x13
	V3SR      uint8 = 0x14
	FCLo      uint8 = 0x15
	FCHi      uint8 = 0x16
	ResFilt   uint8 = 0x17
	ModeVol   uint8 = 0x18
	CtrlGate  uint8 = 0x01
	CtrlTri   uint8 = 0x10
	CtrlSaw   uint8 = 0x20
	CtrlPulse uint8 = 0x40
	CtrlNoise uint8 = 0x80
)
