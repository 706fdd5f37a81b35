package seesaw

import (
	"errors"
	"testing"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeSeesaw)(nil)

// fakeSeesaw is a scripted register-level fake of the breakout firmware.
type fakeSeesaw struct {
	hwID      byte
	positions [4]int32
	pins      uint32 // current bulk GPIO levels

	pending [2]byte // last register select
	writes  [][]byte

	dead bool // NAK everything
}

func (f *fakeSeesaw) Tx(addr uint16, w, r []byte) error {
	if f.dead {
		return errors.New("i2c: no ack")
	}
	if len(w) == 2 && len(r) == 0 {
		f.pending = [2]byte{w[0], w[1]}
		return nil
	}
	if len(w) > 2 {
		f.writes = append(f.writes, append([]byte(nil), w...))
		return nil
	}
	if len(w) == 0 && len(r) > 0 {
		mod, fn := f.pending[0], f.pending[1]
		switch {
		case mod == moduleStatus && fn == statusHWID:
			r[0] = f.hwID
		case mod == moduleEncoder && fn >= encoderPosition && fn < encoderPosition+4:
			putBE32(r, uint32(f.positions[fn-encoderPosition]))
		case mod == moduleGPIO && fn == gpioBulk:
			putBE32(r, f.pins)
		default:
			return errors.New("i2c: unknown register")
		}
		return nil
	}
	return errors.New("i2c: unexpected transaction")
}

func putBE32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func TestProbe(t *testing.T) {
	f := &fakeSeesaw{hwID: hwIDATtiny817}
	d := New(f, 0x49)
	if err := d.Probe(); err != nil {
		t.Fatalf("probe: %v", err)
	}
}

func TestProbeNoDevice(t *testing.T) {
	d := New(&fakeSeesaw{dead: true}, 0x36)
	if err := d.Probe(); !errors.Is(err, ErrNoDevice) {
		t.Fatalf("want ErrNoDevice, got %v", err)
	}
}

func TestProbeBadID(t *testing.T) {
	d := New(&fakeSeesaw{hwID: 0x12}, 0x36)
	if err := d.Probe(); !errors.Is(err, ErrBadID) {
		t.Fatalf("want ErrBadID, got %v", err)
	}
}

func TestEncoderPositionSigned(t *testing.T) {
	f := &fakeSeesaw{hwID: hwIDSAMD09}
	f.positions[2] = -7
	d := New(f, 0x49)

	got, err := d.EncoderPosition(2)
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	if got != -7 {
		t.Fatalf("position = %d, want -7", got)
	}
}

func TestDigitalRead(t *testing.T) {
	f := &fakeSeesaw{pins: 1 << 14}
	d := New(f, 0x49)

	hi, err := d.DigitalRead(14)
	if err != nil {
		t.Fatalf("read pin 14: %v", err)
	}
	if !hi {
		t.Fatal("pin 14 should read high")
	}
	lo, err := d.DigitalRead(12)
	if err != nil {
		t.Fatalf("read pin 12: %v", err)
	}
	if lo {
		t.Fatal("pin 12 should read low")
	}
}

func TestConfigureInputPullup(t *testing.T) {
	f := &fakeSeesaw{}
	d := New(f, 0x49)
	if err := d.ConfigureInputPullup(12); err != nil {
		t.Fatalf("configure: %v", err)
	}

	want := [][2]byte{
		{moduleGPIO, gpioDirClrBulk},
		{moduleGPIO, gpioPullEnSet},
		{moduleGPIO, gpioBulkSet},
	}
	if len(f.writes) != len(want) {
		t.Fatalf("got %d writes, want %d", len(f.writes), len(want))
	}
	for i, w := range f.writes {
		if w[0] != want[i][0] || w[1] != want[i][1] {
			t.Fatalf("write %d to %#02x/%#02x, want %#02x/%#02x", i, w[0], w[1], want[i][0], want[i][1])
		}
		if be32(w[2:]) != 1<<12 {
			t.Fatalf("write %d mask = %#x, want %#x", i, be32(w[2:]), uint32(1)<<12)
		}
	}
}
