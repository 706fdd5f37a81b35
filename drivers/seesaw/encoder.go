package seesaw

// Encoder slot access. The quad rotary breakout exposes four incremental
// encoders; position is a signed 32-bit big-endian accumulator maintained
// by the coprocessor, so the host never misses ticks between polls.

// ConfigureEncoder verifies the given encoder slot answers by reading its
// position register once. The breakout needs no explicit enable.
func (d *Device) ConfigureEncoder(slot int) error {
	_, err := d.EncoderPosition(slot)
	return err
}

// EncoderPosition reads the raw absolute count of one encoder slot.
func (d *Device) EncoderPosition(slot int) (int32, error) {
	buf := d.buf[:4]
	if err := d.read(moduleEncoder, encoderPosition+byte(slot), buf); err != nil {
		return 0, err
	}
	return int32(be32(buf)), nil
}

// EncoderDelta reads and clears the accumulated count since the last
// delta read. The polling loop works on absolute positions instead, but
// the register is exposed for callers that prefer device-side differencing.
func (d *Device) EncoderDelta(slot int) (int32, error) {
	buf := d.buf[:4]
	if err := d.read(moduleEncoder, encoderDelta+byte(slot), buf); err != nil {
		return 0, err
	}
	return int32(be32(buf)), nil
}
