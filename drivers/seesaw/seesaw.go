// Package seesaw provides a driver for Adafruit seesaw-style I2C
// coprocessors, covering the pieces the quad rotary breakout needs: the
// status module (probe/reset), bulk GPIO inputs and incremental encoders.
//
// Register addressing is two-level: every transaction names a module base
// and a function within it. A read is a write of [module, function]
// followed by a short conversion delay and a plain read.
//
// NOTE: I2C.Tx MUST perform a write followed by a stop (or repeated start)
// before the read phase; the seesaw firmware needs the delay between the
// register select and the data fetch, so the two phases are issued as
// separate transactions here.
package seesaw

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// Module base registers.
const (
	moduleStatus  = 0x00
	moduleGPIO    = 0x01
	moduleEncoder = 0x11
)

// Status module functions.
const (
	statusHWID    = 0x01
	statusVersion = 0x02
	statusSwRst   = 0x7F
)

// GPIO module functions. Pin state travels as a 32-bit big-endian mask.
const (
	gpioDirClrBulk = 0x03
	gpioBulk       = 0x04
	gpioBulkSet    = 0x05
	gpioPullEnSet  = 0x0B
)

// Encoder module functions. For slots above zero the slot number is added
// to the function byte, mirroring the breakout firmware's register layout.
const (
	encoderStatus   = 0x00
	encoderPosition = 0x30
	encoderDelta    = 0x40
)

// Hardware IDs reported by known seesaw parts.
const (
	hwIDSAMD09    = 0x55
	hwIDATtiny806 = 0x84
	hwIDATtiny807 = 0x85
	hwIDATtiny816 = 0x86
	hwIDATtiny817 = 0x87 // quad rotary breakout
)

// Errors returned by the driver.
var (
	ErrNoDevice = errors.New("seesaw: no device")
	ErrBadID    = errors.New("seesaw: unexpected hardware id")
)

// Device wraps an I2C connection to one seesaw coprocessor.
type Device struct {
	bus     drivers.I2C
	Address uint16

	readDelay time.Duration
	buf       [6]byte // reuse buffer to avoid allocations
}

// New creates a seesaw connection at the given bus address. The I2C bus
// must already be configured. No transaction is issued; call Probe.
func New(bus drivers.I2C, addr uint16) *Device {
	return &Device{
		bus:       bus,
		Address:   addr,
		readDelay: 250 * time.Microsecond,
	}
}

// Probe verifies a seesaw answers at the configured address by reading the
// hardware-ID register. A transaction fault is reported as ErrNoDevice; an
// answer with an unknown ID as ErrBadID.
func (d *Device) Probe() error {
	id, err := d.readByte(moduleStatus, statusHWID)
	if err != nil {
		return ErrNoDevice
	}
	switch id {
	case hwIDSAMD09, hwIDATtiny806, hwIDATtiny807, hwIDATtiny816, hwIDATtiny817:
		return nil
	}
	return ErrBadID
}

// SoftReset restarts the coprocessor firmware. Give it ~10ms afterwards.
func (d *Device) SoftReset() error {
	return d.write(moduleStatus, statusSwRst, []byte{0xFF})
}

// Version reads the firmware version/date word.
func (d *Device) Version() (uint32, error) {
	buf := d.buf[:4]
	if err := d.read(moduleStatus, statusVersion, buf); err != nil {
		return 0, err
	}
	return be32(buf), nil
}

// ---- low-level register access ----

func (d *Device) read(module, function byte, into []byte) error {
	if err := d.bus.Tx(d.Address, []byte{module, function}, nil); err != nil {
		return err
	}
	time.Sleep(d.readDelay)
	return d.bus.Tx(d.Address, nil, into)
}

func (d *Device) readByte(module, function byte) (byte, error) {
	buf := d.buf[:1]
	if err := d.read(module, function, buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (d *Device) write(module, function byte, data []byte) error {
	buf := d.buf[:0]
	buf = append(buf, module, function)
	buf = append(buf, data...)
	return d.bus.Tx(d.Address, buf, nil)
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
