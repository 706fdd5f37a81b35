package deck

import (
	"io"

	"encoderdeck-go/x/conv"
)

// Emitter writes the line protocol, one newline-terminated event per
// observed transition, synchronously onto the sink. The machine-readable
// stream never carries error text; diagnostics go elsewhere.
//
//	E<index>:<delta>   e.g. "E1:-2", "E3:+1"
//	B<index>:PRESS
//	B<index>:RELEASE
type Emitter struct {
	w    io.Writer
	plus bool // '+' prefix on positive deltas
	buf  [24]byte
}

func NewEmitter(w io.Writer, explicitPlus bool) *Emitter {
	return &Emitter{w: w, plus: explicitPlus}
}

// Delta emits one encoder movement event. index is 1-based.
func (e *Emitter) Delta(index int, delta int32) error {
	line := e.buf[:0]
	line = append(line, 'E')
	line = append(line, conv.Itoa(e.buf[20:], int64(index))...)
	line = append(line, ':')
	if e.plus {
		line = append(line, conv.ItoaSigned(e.buf[8:20], int64(delta))...)
	} else {
		line = append(line, conv.Itoa(e.buf[8:20], int64(delta))...)
	}
	line = append(line, '\n')
	_, err := e.w.Write(line)
	return err
}

// Press emits one button press event. index is 1-based.
func (e *Emitter) Press(index int) error { return e.button(index, "PRESS") }

// Release emits one button release event. index is 1-based.
func (e *Emitter) Release(index int) error { return e.button(index, "RELEASE") }

func (e *Emitter) button(index int, what string) error {
	line := e.buf[:0]
	line = append(line, 'B')
	line = append(line, conv.Itoa(e.buf[20:], int64(index))...)
	line = append(line, ':')
	line = append(line, what...)
	line = append(line, '\n')
	_, err := e.w.Write(line)
	return err
}
