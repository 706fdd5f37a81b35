//go:build rp2040 || rp2350

package main

import (
	"io"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
)

// openI2C configures I2C0 on the Pico defaults.
func openI2C() drivers.I2C {
	sda := machine.GP4
	scl := machine.GP5
	sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
	scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
	_ = machine.I2C0.Configure(machine.I2CConfig{
		SDA:       sda,
		SCL:       scl,
		Frequency: 400_000,
	})
	return machine.I2C0
}

// openSink configures UART0 as the event stream. Host software reads the
// line protocol from here.
func openSink() io.Writer {
	_ = uartx.UART0.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	return uartx.UART0
}
