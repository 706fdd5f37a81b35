// Command deck: firmware entry for the quad rotary breakout.
//
// Build/flash (TinyGo):
//
//	tinygo flash -target pico ./cmd/deck
//
// Wiring assumptions (edit platform_rp2040.go as needed):
// - I2C0 @ 400 kHz on Pico defaults: SDA=GP4, SCL=GP5.
// - Breakout on one of the candidate addresses (0x36 jumper-default,
//   0x49 as shipped).
// - Event stream on UART0 @ 115200.
//
// A host build (plain `go build`) wires an inert I2C bus and stdout, for
// bring-up of everything but the bus itself.
package main

import (
	"context"
	"time"

	"encoderdeck-go/bus"
	"encoderdeck-go/drivers/seesaw"
	"encoderdeck-go/errcode"
	"encoderdeck-go/services/deck"
	"encoderdeck-go/types"
	"encoderdeck-go/x/conv"
)

// ----------------------------------------------------------------------------
// EDITABLE CONFIGURATION
// ----------------------------------------------------------------------------

const (
	// deltaPolicy selects the emitted delta shape; see deck.Policy.
	deltaPolicy = deck.PolicyDivisor

	// encoderDivisor coarsens raw ticks into detents under PolicyDivisor.
	encoderDivisor = 4
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("== encoderdeck: quad rotary controller ==")

	b := bus.NewBus(16)
	conn := b.NewConnection("deck")
	statusSub := conn.Subscribe(bus.T("deck", "#"))
	go printStatus(statusSub)

	i2c := openI2C()
	set, addr, err := deck.Resolve(deck.DefaultConfig(), func(a uint16) (deck.Peripheral, error) {
		d := seesaw.New(i2c, a)
		if perr := d.Probe(); perr != nil {
			return nil, perr
		}
		return d, nil
	})
	if err != nil {
		idleHold(err)
	}
	println("Info: deck online at", conv.Hex8String(uint8(addr)))

	em := deck.NewEmitter(openSink(), deltaPolicy.ExplicitPlus())
	loop := deck.NewLoop(set, em, deck.LoopConfig{
		Policy:  deltaPolicy,
		Divisor: encoderDivisor,
	}, conn)

	println("Ready! Turn encoders or press buttons...")
	_ = loop.Run(context.Background())
}

// idleHold is the terminal startup state: the operator has to fix wiring
// or addressing and power-cycle. Deliberately not a crash loop.
func idleHold(err error) {
	switch errcode.Of(err) {
	case errcode.NoPeripheral:
		println("Error: no seesaw found at any candidate address")
		println("Check wiring: SDA, SCL, 3V, GND")
	case errcode.NoChannels:
		println("Error: seesaw found but no channel responded")
		println("Check the breakout's pin configuration")
	default:
		println("Error:", err.Error())
	}
	for {
		time.Sleep(time.Second)
	}
}

func printStatus(sub *bus.Subscription) {
	for msg := range sub.Channel() {
		switch v := msg.Payload.(type) {
		case types.DeckState:
			println("Info: deck", v.Level, v.Status)
		case types.ChannelStatus:
			println("Info:", msg.Topic.String(), "encoder", string(v.Encoder), "button", string(v.Button), v.Error)
		}
	}
}
