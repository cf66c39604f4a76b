// Package expander reads a bank of up to eight buttons through a
// PCF8574-class I2C GPIO expander.
//
// The expander's pins are quasi-bidirectional: written high they float
// behind a weak pullup and can be read, written low they sink current. The
// buttons ground their pins, so a pressed button reads as 0 on the wire. The
// driver keeps that detail to itself and reports samples asserted-high.
//
// The chip has no registers; a bare read returns the port, a bare write sets
// it. Datasheet: https://www.ti.com/lit/ds/symlink/pcf8574.pdf
package expander

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// DefaultAddress is the PCF8574 base address with A0..A2 strapped low.
const DefaultAddress = 0x20

// Device is a button port behind a PCF8574 on an I2C bus.
type Device struct {
	bus  drivers.I2C
	addr uint16
}

// Config holds the device configuration.
type Config struct {
	// Address is the 7-bit I2C address; 0 means DefaultAddress.
	Address uint8
}

// New creates a driver on the given preconfigured bus. The chip tops out at
// 100 kHz.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus}
}

// Configure sets the address and releases all pins to their pullups so they
// are readable as inputs. Must be called before ReadButtons.
func (d *Device) Configure(c Config) error {
	if c.Address == 0 {
		c.Address = DefaultAddress
	}
	d.addr = uint16(c.Address)

	buf := [1]byte{0xFF}
	if err := d.bus.Tx(d.addr, buf[:], nil); err != nil {
		return fmt.Errorf("expander: release pins: %w", err)
	}
	return nil
}

// ReadButtons samples all eight lines and returns them asserted-high: bit i
// set means button i is electrically pressed right now.
func (d *Device) ReadButtons() (uint8, error) {
	var buf [1]byte
	if err := d.bus.Tx(d.addr, nil, buf[:]); err != nil {
		return 0, fmt.Errorf("expander: read port: %w", err)
	}
	return ^buf[0], nil
}
