// Package deck is the runtime core for the quad rotary breakout: it
// resolves the coprocessor's bus address and per-channel pin mapping at
// startup, then runs a fixed-cadence polling loop that turns raw encoder
// counts and button levels into a deduplicated line-protocol event stream.
package deck

// NumChannels is the number of encoder+button units on the breakout.
const NumChannels = 4

// Peripheral is the slice of the seesaw driver the resolver and channel
// set depend on. *seesaw.Device satisfies it; tests use scripted fakes.
type Peripheral interface {
	Probe() error
	ConfigureEncoder(slot int) error
	EncoderPosition(slot int) (int32, error)
	ConfigureInputPullup(pin int) error
	DigitalRead(pin int) (bool, error)
}

// Channels is what the polling loop needs from a resolved channel set.
type Channels interface {
	// Position reads channel i's raw absolute encoder count.
	// ok is false when the encoder half has been disabled.
	Position(i int) (pos int32, ok bool, err error)

	// ButtonLevel reads channel i's logic level (true = not pressed,
	// pull-up wiring). ok is false when the button half is disabled.
	ButtonLevel(i int) (level bool, ok bool, err error)

	// DisableEncoder and DisableButton are idempotent and one-way.
	DisableEncoder(i int)
	DisableButton(i int)
}
