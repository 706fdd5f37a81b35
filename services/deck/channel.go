package deck

import (
	"errors"

	"encoderdeck-go/drivers/seesaw"
	"encoderdeck-go/errcode"
)

// Channel is one encoder+button unit. The two halves are independently
// optional: a channel with a working encoder and a failed button (or the
// reverse) keeps operating on whichever half still works.
type Channel struct {
	Index   int // 1-based, stable identity in emitted events
	EncSlot int // resolved encoder slot, -1 when absent/disabled
	BtnPin  int // resolved button pin, -1 when absent/disabled
}

func (c *Channel) encoderOK() bool { return c.EncSlot >= 0 }
func (c *Channel) buttonOK() bool  { return c.BtnPin >= 0 }

// ChannelSet owns the four channels bound to one resolved peripheral.
// It is used by exactly one polling loop; no locking.
type ChannelSet struct {
	dev Peripheral
	ch  [NumChannels]Channel
}

var _ Channels = (*ChannelSet)(nil)

// Channel returns a copy of channel i's binding, for diagnostics.
func (s *ChannelSet) Channel(i int) Channel { return s.ch[i] }

// Working counts the enabled halves.
func (s *ChannelSet) Working() (encoders, buttons int) {
	for i := range s.ch {
		if s.ch[i].encoderOK() {
			encoders++
		}
		if s.ch[i].buttonOK() {
			buttons++
		}
	}
	return
}

func (s *ChannelSet) Position(i int) (int32, bool, error) {
	c := &s.ch[i]
	if !c.encoderOK() {
		return 0, false, nil
	}
	pos, err := s.dev.EncoderPosition(c.EncSlot)
	if err != nil {
		return 0, true, s.classify("encoder_read", err)
	}
	return pos, true, nil
}

func (s *ChannelSet) ButtonLevel(i int) (bool, bool, error) {
	c := &s.ch[i]
	if !c.buttonOK() {
		return false, false, nil
	}
	level, err := s.dev.DigitalRead(c.BtnPin)
	if err != nil {
		return false, true, s.classify("button_read", err)
	}
	return level, true, nil
}

func (s *ChannelSet) DisableEncoder(i int) { s.ch[i].EncSlot = -1 }
func (s *ChannelSet) DisableButton(i int)  { s.ch[i].BtnPin = -1 }

// classify converts a raw bus fault into a typed one. A read fault with
// the peripheral still answering its ID register is transient; a fault
// with the peripheral gone is device-absent.
func (s *ChannelSet) classify(op string, err error) error {
	if errors.Is(err, seesaw.ErrNoDevice) {
		return &errcode.E{C: errcode.DeviceAbsent, Op: op, Err: err}
	}
	if perr := s.dev.Probe(); perr != nil {
		return &errcode.E{C: errcode.DeviceAbsent, Op: op, Err: err}
	}
	return &errcode.E{C: errcode.Transient, Op: op, Err: err}
}
