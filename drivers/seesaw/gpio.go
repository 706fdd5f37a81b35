package seesaw

// Virtual GPIO access. Pins live on the coprocessor and are addressed by
// bit position in a 32-bit bulk mask.

// ConfigureInputPullup switches a pin to input with the internal pull-up
// enabled (set direction in, enable pull, drive the output latch high so
// the pull resolves up rather than down).
func (d *Device) ConfigureInputPullup(pin int) error {
	mask := pinMask(pin)
	if err := d.write(moduleGPIO, gpioDirClrBulk, mask[:]); err != nil {
		return err
	}
	if err := d.write(moduleGPIO, gpioPullEnSet, mask[:]); err != nil {
		return err
	}
	return d.write(moduleGPIO, gpioBulkSet, mask[:])
}

// DigitalRead returns the current logic level of a pin. With pull-up
// wiring, true means not pressed.
func (d *Device) DigitalRead(pin int) (bool, error) {
	buf := d.buf[:4]
	if err := d.read(moduleGPIO, gpioBulk, buf); err != nil {
		return false, err
	}
	return be32(buf)&(1<<uint(pin)) != 0, nil
}

func pinMask(pin int) [4]byte {
	m := uint32(1) << uint(pin)
	return [4]byte{byte(m >> 24), byte(m >> 16), byte(m >> 8), byte(m)}
}
