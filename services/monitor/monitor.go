// Package monitor consumes the deck's event stream on the host: it reads
// newline-terminated lines, parses the protocol grammar, and hands parsed
// events to a handler. Non-protocol lines (the deck's startup and fault
// diagnostics) are logged or dropped, never treated as errors.
package monitor

import (
	"bufio"
	"context"
	"io"
	"log/slog"

	"encoderdeck-go/protocol"
)

// Handler receives each parsed event in stream order.
type Handler func(protocol.Event)

type Monitor struct {
	r    io.Reader
	log  *slog.Logger
	h    Handler
	diag bool
}

func New(r io.Reader, log *slog.Logger, showDiagnostics bool, h Handler) *Monitor {
	return &Monitor{r: r, log: log, h: h, diag: showDiagnostics}
}

// Run reads until EOF, a read error, or context cancellation. The caller
// is expected to close the underlying port to unblock a pending read.
func (m *Monitor) Run(ctx context.Context) error {
	sc := bufio.NewScanner(m.r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Text()
		if line == "" {
			continue
		}
		ev, ok := protocol.Unmarshal(line)
		if !ok {
			if m.diag {
				m.log.Info("deck", "line", line)
			}
			continue
		}
		m.log.Debug("event", "event", ev.String())
		m.h(ev)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return nil
}
