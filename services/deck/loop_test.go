package deck

import (
	"bytes"
	"strings"
	"testing"

	"encoderdeck-go/errcode"
)

// fakeChannels lets tests set the observable state between cycles and
// inject classified faults.
type fakeChannels struct {
	pos    [NumChannels]int32
	posErr [NumChannels]error
	lvl    [NumChannels]bool
	lvlErr [NumChannels]error
	encOff [NumChannels]bool
	btnOff [NumChannels]bool
}

func newFakeChannels() *fakeChannels {
	f := &fakeChannels{}
	for i := range f.lvl {
		f.lvl[i] = true // resting level, pull-up
	}
	return f
}

func (f *fakeChannels) Position(i int) (int32, bool, error) {
	if f.encOff[i] {
		return 0, false, nil
	}
	if f.posErr[i] != nil {
		return 0, true, f.posErr[i]
	}
	return f.pos[i], true, nil
}

func (f *fakeChannels) ButtonLevel(i int) (bool, bool, error) {
	if f.btnOff[i] {
		return false, false, nil
	}
	if f.lvlErr[i] != nil {
		return false, true, f.lvlErr[i]
	}
	return f.lvl[i], true, nil
}

func (f *fakeChannels) DisableEncoder(i int) { f.encOff[i] = true }
func (f *fakeChannels) DisableButton(i int)  { f.btnOff[i] = true }

func runCycles(l *Loop, ch *fakeChannels, positions []int32) {
	for _, p := range positions {
		ch.pos[0] = p
		l.Cycle()
	}
}

func TestLoopDivisorEndToEnd(t *testing.T) {
	// Raw positions [0,0,4,4,8] over 5 cycles with divisor 4: one +1 at
	// the transition to step 1 and one +1 at step 2; baseline ends at 2.
	ch := newFakeChannels()
	var out bytes.Buffer
	l := NewLoop(ch, NewEmitter(&out, PolicyDivisor.ExplicitPlus()), LoopConfig{Policy: PolicyDivisor, Divisor: 4}, nil)

	runCycles(l, ch, []int32{0, 0, 4, 4, 8})

	want := "E1:+1\nE1:+1\n"
	if out.String() != want {
		t.Fatalf("stream %q, want %q", out.String(), want)
	}
	if l.tr[0].lastPos != 2 {
		t.Fatalf("post-division baseline = %d, want 2", l.tr[0].lastPos)
	}
}

func TestLoopButtonEdges(t *testing.T) {
	// Levels [true,true,false,false,true]: one PRESS, one RELEASE.
	ch := newFakeChannels()
	var out bytes.Buffer
	l := NewLoop(ch, NewEmitter(&out, false), LoopConfig{Policy: PolicyRaw}, nil)

	for _, lvl := range []bool{true, true, false, false, true} {
		ch.lvl[0] = lvl
		l.Cycle()
	}

	want := "B1:PRESS\nB1:RELEASE\n"
	if out.String() != want {
		t.Fatalf("stream %q, want %q", out.String(), want)
	}
}

func TestLoopRawDeltas(t *testing.T) {
	ch := newFakeChannels()
	var out bytes.Buffer
	l := NewLoop(ch, NewEmitter(&out, PolicyRaw.ExplicitPlus()), LoopConfig{Policy: PolicyRaw}, nil)

	runCycles(l, ch, []int32{0, 3, 3, -2})

	want := "E1:3\nE1:-5\n"
	if out.String() != want {
		t.Fatalf("stream %q, want %q", out.String(), want)
	}
}

func TestLoopSignNormalized(t *testing.T) {
	ch := newFakeChannels()
	var out bytes.Buffer
	l := NewLoop(ch, NewEmitter(&out, PolicySign.ExplicitPlus()), LoopConfig{Policy: PolicySign}, nil)

	runCycles(l, ch, []int32{0, 7, 7, 6})

	want := "E1:+1\nE1:-1\n"
	if out.String() != want {
		t.Fatalf("stream %q, want %q", out.String(), want)
	}
}

func TestLoopDeviceAbsentDisablesHalfOnly(t *testing.T) {
	ch := newFakeChannels()
	var out bytes.Buffer
	l := NewLoop(ch, NewEmitter(&out, false), LoopConfig{Policy: PolicyRaw}, nil)

	// Channel 2's encoder goes away; its button and every other channel
	// keep working.
	ch.posErr[1] = &errcode.E{C: errcode.DeviceAbsent, Op: "encoder_read"}
	l.Cycle()

	if !ch.encOff[1] {
		t.Fatal("channel 2 encoder not disabled")
	}
	if ch.btnOff[1] {
		t.Fatal("channel 2 button must not be disabled")
	}
	if ch.encOff[0] || ch.encOff[2] || ch.encOff[3] {
		t.Fatal("other channels must be unaffected")
	}

	// Button edge on channel 2 still emits; encoder movement on the
	// disabled half is skipped.
	ch.posErr[1] = nil
	ch.pos[1] = 50
	ch.lvl[1] = false
	l.Cycle()

	got := out.String()
	if !strings.Contains(got, "B2:PRESS") {
		t.Fatalf("button on faulted channel silent: %q", got)
	}
	if strings.Contains(got, "E2:") {
		t.Fatalf("disabled encoder emitted: %q", got)
	}
}

func TestLoopTransientFaultKeepsChannel(t *testing.T) {
	ch := newFakeChannels()
	var out bytes.Buffer
	l := NewLoop(ch, NewEmitter(&out, false), LoopConfig{Policy: PolicyRaw}, nil)

	ch.posErr[0] = &errcode.E{C: errcode.Transient, Op: "encoder_read"}
	l.Cycle()
	if ch.encOff[0] {
		t.Fatal("transient fault must not disable the channel")
	}

	// Next cycle is the retry; the read succeeds again.
	ch.posErr[0] = nil
	ch.pos[0] = 2
	l.Cycle()
	if out.String() != "E1:2\n" {
		t.Fatalf("stream %q after recovery", out.String())
	}
}

func TestLoopNoEventsWhenIdle(t *testing.T) {
	ch := newFakeChannels()
	var out bytes.Buffer
	l := NewLoop(ch, NewEmitter(&out, false), LoopConfig{Policy: PolicyRaw}, nil)

	for n := 0; n < 5; n++ {
		l.Cycle()
	}
	if out.Len() != 0 {
		t.Fatalf("idle deck emitted %q", out.String())
	}
}
