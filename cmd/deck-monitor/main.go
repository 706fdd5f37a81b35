// Command deck-monitor: host-side consumer of the deck's event stream.
// It opens the serial port, parses the line protocol and logs events;
// wire your own handler where events are dispatched.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dikkadev/prettyslog"
	"go.bug.st/serial"

	"encoderdeck-go/protocol"
	"encoderdeck-go/services/monitor"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(prettyslog.NewPrettyslogHandler("deck",
		prettyslog.WithLevel(slog.LevelDebug),
	))
	slog.SetDefault(logger)

	cfg, err := monitor.Load(*configFile)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	port, err := serial.Open(cfg.PortName, &serial.Mode{BaudRate: cfg.BaudRate})
	if err != nil {
		slog.Error("open port", "port", cfg.PortName, "err", err)
		os.Exit(1)
	}
	defer port.Close()
	slog.Info("listening", "port", cfg.PortName, "baud", cfg.BaudRate)

	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
		// Unblock the pending read.
		_ = port.Close()
	}()

	m := monitor.New(port, logger, cfg.ShowDiagnostics, handleEvent)
	if err := m.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("stream", "err", err)
		os.Exit(1)
	}
	slog.Info("stopped")
}

func handleEvent(e protocol.Event) {
	switch e.Type {
	case protocol.EVENT_TYPE_DELTA:
		slog.Info("turn", "channel", e.Channel, "delta", e.Delta)
	case protocol.EVENT_TYPE_PRESS:
		slog.Info("press", "channel", e.Channel)
	case protocol.EVENT_TYPE_RELEASE:
		slog.Info("release", "channel", e.Channel)
	}
}
