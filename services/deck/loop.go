package deck

import (
	"context"
	"time"

	"encoderdeck-go/bus"
	"encoderdeck-go/errcode"
	"encoderdeck-go/types"
	"encoderdeck-go/x/timex"
)

// DefaultCadence is the fixed inter-cycle sleep. It is also the implicit
// retry interval for transient faults.
const DefaultCadence = 10 * time.Millisecond

// track is the loop's private per-channel delta/edge state. Baselines
// live in the policy's own space (divided steps under PolicyDivisor).
type track struct {
	lastPos   int32
	lastLevel bool
	encLink   types.Link
	btnLink   types.Link
}

// Loop drives one ChannelSet on a fixed cadence and emits protocol
// events. It is the only actor touching the peripheral once started; all
// faults are handled locally and never escape Run.
type Loop struct {
	ch      Channels
	em      *Emitter
	policy  Policy
	divisor int32
	cadence time.Duration

	conn *bus.Connection // optional status topics; nil disables

	tr [NumChannels]track
}

// LoopConfig carries the compile-time knobs of the polling loop.
type LoopConfig struct {
	Policy  Policy
	Divisor int32         // only meaningful under PolicyDivisor
	Cadence time.Duration // zero means DefaultCadence
}

// NewLoop builds a loop over a resolved channel set. conn may be nil.
func NewLoop(ch Channels, em *Emitter, cfg LoopConfig, conn *bus.Connection) *Loop {
	if cfg.Cadence <= 0 {
		cfg.Cadence = DefaultCadence
	}
	if cfg.Divisor <= 0 {
		cfg.Divisor = 1
	}
	l := &Loop{
		ch:      ch,
		em:      em,
		policy:  cfg.Policy,
		divisor: cfg.Divisor,
		cadence: cfg.Cadence,
		conn:    conn,
	}
	for i := range l.tr {
		// Pull-up wiring: resting level reads true (not pressed).
		l.tr[i].lastLevel = true
		l.tr[i].encLink = types.LinkUp
		l.tr[i].btnLink = types.LinkUp
	}
	return l
}

// Run polls until the context is cancelled. The fixed sleep is the sole
// scheduling primitive; a slow bus transaction stalls the whole cycle.
func (l *Loop) Run(ctx context.Context) error {
	l.publishState("ready", "")
	timer := time.NewTimer(l.cadence)
	defer timer.Stop()

	for {
		l.Cycle()
		timer.Reset(l.cadence)
		select {
		case <-ctx.Done():
			l.publishState("stopped", "context_cancelled")
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Cycle runs one poll of every enabled half of every channel. Exported so
// tests can drive the loop without real time.
func (l *Loop) Cycle() {
	for i := 0; i < NumChannels; i++ {
		l.encoderStep(i)
		l.buttonStep(i)
	}
}

func (l *Loop) encoderStep(i int) {
	pos, ok, err := l.ch.Position(i)
	if !ok {
		return
	}
	if err != nil {
		l.fault(i, "encoder", err)
		return
	}
	tr := &l.tr[i]
	next, delta, changed := l.policy.step(l.divisor, tr.lastPos, pos)
	if !changed {
		return
	}
	_ = l.em.Delta(i+1, delta)
	tr.lastPos = next
	l.markUp(i, "encoder")
}

func (l *Loop) buttonStep(i int) {
	level, ok, err := l.ch.ButtonLevel(i)
	if !ok {
		return
	}
	if err != nil {
		l.fault(i, "button", err)
		return
	}
	tr := &l.tr[i]
	if level == tr.lastLevel {
		return
	}
	if !level {
		_ = l.em.Press(i + 1) // pulled low = pressed
	} else {
		_ = l.em.Release(i + 1)
	}
	tr.lastLevel = level
	l.markUp(i, "button")
}

// fault applies the taxonomy: device-absent faults disable the affected
// half only; transient faults are logged and retried next cycle with no
// backoff and no retry limit.
func (l *Loop) fault(i int, half string, err error) {
	switch errcode.Of(err) {
	case errcode.DeviceAbsent:
		if half == "encoder" {
			l.ch.DisableEncoder(i)
			l.tr[i].encLink = types.LinkDown
		} else {
			l.ch.DisableButton(i)
			l.tr[i].btnLink = types.LinkDown
		}
		println("Warn: channel", i+1, half, "disabled:", err.Error())
		l.publishChannel(i, string(errcode.DeviceAbsent))
	default:
		if half == "encoder" {
			l.tr[i].encLink = types.LinkDegraded
		} else {
			l.tr[i].btnLink = types.LinkDegraded
		}
		println("Warn: channel", i+1, half, "read fault:", err.Error())
		l.publishChannel(i, string(errcode.Transient))
	}
}

func (l *Loop) markUp(i int, half string) {
	tr := &l.tr[i]
	if half == "encoder" && tr.encLink == types.LinkDegraded {
		tr.encLink = types.LinkUp
		l.publishChannel(i, "")
	}
	if half == "button" && tr.btnLink == types.LinkDegraded {
		tr.btnLink = types.LinkUp
		l.publishChannel(i, "")
	}
}

// ---- status topics (diagnostics only; never on the protocol stream) ----

func (l *Loop) publishChannel(i int, errCode string) {
	if l.conn == nil {
		return
	}
	tr := &l.tr[i]
	l.conn.Publish(l.conn.NewMessage(
		channelStatusTopic(i+1),
		types.ChannelStatus{Encoder: tr.encLink, Button: tr.btnLink, TSms: timex.NowMs(), Error: errCode},
		true,
	))
}

func (l *Loop) publishState(level, status string) {
	if l.conn == nil {
		return
	}
	l.conn.Publish(l.conn.NewMessage(
		bus.T("deck", "state"),
		types.DeckState{Level: level, Status: status, TSms: timex.NowMs()},
		true,
	))
}

func channelStatusTopic(index int) bus.Topic {
	return bus.T("deck", "channel", string(rune('0'+index)), "status")
}
