package deck

import (
	"encoderdeck-go/errcode"
	"encoderdeck-go/x/conv"
)

// PinPair binds one channel's encoder slot and button pin candidate.
type PinPair struct {
	Encoder int
	Button  int
}

// Config is the compile-time configuration surface: candidate bus
// addresses and, per channel, candidate pin pairs, both in priority order.
type Config struct {
	Addresses []uint16
	Pins      [NumChannels][]PinPair
}

// DefaultAddresses is the probe order for known breakout addresses. 0x49
// is where the quad rotary board usually lands; 0x36 first matches the
// jumper-default probe order used in the field.
var DefaultAddresses = []uint16{0x36, 0x49, 0x3A, 0x3B, 0x60}

// DefaultConfig returns the candidate tables for the Adafruit quad rotary
// breakout. The primary pair per channel is the board's real layout
// (encoder slots 0..3, buttons on 12/14/17/9); the alternates are legacy
// pinouts still found on reworked boards.
func DefaultConfig() Config {
	primary := [NumChannels]PinPair{
		{Encoder: 0, Button: 12},
		{Encoder: 1, Button: 14},
		{Encoder: 2, Button: 17},
		{Encoder: 3, Button: 9},
	}
	alternates := [][NumChannels]PinPair{
		{{12, 24}, {14, 25}, {17, 26}, {9, 27}},
		{{5, 0}, {6, 1}, {7, 2}, {8, 3}},
		{{1, 10}, {2, 11}, {3, 12}, {4, 13}},
	}

	var cfg Config
	cfg.Addresses = DefaultAddresses
	for i := 0; i < NumChannels; i++ {
		cfg.Pins[i] = append(cfg.Pins[i], primary[i])
		for _, alt := range alternates {
			cfg.Pins[i] = append(cfg.Pins[i], alt[i])
		}
	}
	return cfg
}

// Opener opens a peripheral handle at one candidate address. It must
// return an error when nothing answers there (a probe failure).
type Opener func(addr uint16) (Peripheral, error)

// Resolve tries candidate addresses in priority order, then resolves each
// channel's encoder and button independently through the candidate pin
// pairs. It returns a ChannelSet bound to the first answering address.
//
// Failure modes: errcode.NoPeripheral when no address answers, and
// errcode.NoChannels when the peripheral answers but zero halves resolve.
// Both are terminal startup conditions for the caller.
func Resolve(cfg Config, open Opener) (*ChannelSet, uint16, error) {
	var dev Peripheral
	var addr uint16
	for _, a := range cfg.Addresses {
		println("Info: probing seesaw at", conv.Hex8String(uint8(a)))
		d, err := open(a)
		if err != nil {
			println("Info:", conv.Hex8String(uint8(a)), "no answer")
			continue
		}
		println("Info: found seesaw at", conv.Hex8String(uint8(a)))
		dev, addr = d, a
		break
	}
	if dev == nil {
		return nil, 0, errcode.NoPeripheral
	}

	set := &ChannelSet{dev: dev}
	for i := 0; i < NumChannels; i++ {
		set.ch[i] = resolveChannel(dev, i, cfg.Pins[i])
	}

	encoders, buttons := set.Working()
	println("Info: working halves:", encoders, "encoders,", buttons, "buttons")
	if encoders == 0 && buttons == 0 {
		return nil, 0, errcode.NoChannels
	}
	return set, addr, nil
}

// resolveChannel walks the candidate pairs twice, once per half, so a
// channel can end up with its encoder from one candidate and its button
// from another, or with only one half at all.
func resolveChannel(dev Peripheral, i int, pairs []PinPair) Channel {
	c := Channel{Index: i + 1, EncSlot: -1, BtnPin: -1}

	for _, p := range pairs {
		if err := dev.ConfigureEncoder(p.Encoder); err == nil {
			c.EncSlot = p.Encoder
			break
		}
	}
	for _, p := range pairs {
		if err := dev.ConfigureInputPullup(p.Button); err != nil {
			continue
		}
		if _, err := dev.DigitalRead(p.Button); err == nil {
			c.BtnPin = p.Button
			break
		}
	}

	switch {
	case c.EncSlot >= 0 && c.BtnPin >= 0:
		println("Info: channel", c.Index, "ready (encoder", c.EncSlot, "button", c.BtnPin, ")")
	case c.EncSlot >= 0:
		println("Warn: channel", c.Index, "encoder only (slot", c.EncSlot, ")")
	case c.BtnPin >= 0:
		println("Warn: channel", c.Index, "button only (pin", c.BtnPin, ")")
	default:
		println("Warn: channel", c.Index, "not responding on any candidate pins")
	}
	return c
}
