// Package protocol parses and formats the deck's textual event stream.
//
// One event per newline-terminated line, channel index 1-based:
//
//	E<index>:<signed delta>   "E1:-2", "E3:+1" or "E3:1"
//	B<index>:PRESS
//	B<index>:RELEASE
//
// Positive deltas appear both bare and '+'-prefixed depending on the
// deck's configured policy; consumers accept either form.
package protocol

import (
	"strconv"
	"strings"
)

type EventType uint8

const (
	EVENT_TYPE_DELTA EventType = iota + 1
	EVENT_TYPE_PRESS
	EVENT_TYPE_RELEASE
)

type Event struct {
	Type    EventType
	Channel int // 1-based
	Delta   int // only for EVENT_TYPE_DELTA
}

// Unmarshal parses one line (without the trailing newline). ok is false
// for anything outside the grammar, including the deck's human-readable
// diagnostic prints.
func Unmarshal(line string) (Event, bool) {
	if len(line) < 4 {
		return Event{}, false
	}
	kind := line[0]
	if kind != 'E' && kind != 'B' {
		return Event{}, false
	}
	sep := strings.IndexByte(line, ':')
	if sep < 2 {
		return Event{}, false
	}
	ch, err := strconv.Atoi(line[1:sep])
	if err != nil || ch < 1 {
		return Event{}, false
	}
	body := line[sep+1:]

	if kind == 'B' {
		switch body {
		case "PRESS":
			return Event{Type: EVENT_TYPE_PRESS, Channel: ch}, true
		case "RELEASE":
			return Event{Type: EVENT_TYPE_RELEASE, Channel: ch}, true
		}
		return Event{}, false
	}

	// strconv accepts both "2" and "+2".
	delta, err := strconv.Atoi(body)
	if err != nil || delta == 0 {
		return Event{}, false
	}
	return Event{Type: EVENT_TYPE_DELTA, Channel: ch, Delta: delta}, true
}

// Marshal renders an event in the canonical form the deck emits.
// explicitPlus selects the '+'-prefixed spelling for positive deltas.
func Marshal(e Event, explicitPlus bool) string {
	idx := strconv.Itoa(e.Channel)
	switch e.Type {
	case EVENT_TYPE_PRESS:
		return "B" + idx + ":PRESS"
	case EVENT_TYPE_RELEASE:
		return "B" + idx + ":RELEASE"
	case EVENT_TYPE_DELTA:
		if explicitPlus && e.Delta > 0 {
			return "E" + idx + ":+" + strconv.Itoa(e.Delta)
		}
		return "E" + idx + ":" + strconv.Itoa(e.Delta)
	default:
		return ""
	}
}

func (e Event) String() string {
	switch e.Type {
	case EVENT_TYPE_PRESS:
		return "press ch" + strconv.Itoa(e.Channel)
	case EVENT_TYPE_RELEASE:
		return "release ch" + strconv.Itoa(e.Channel)
	case EVENT_TYPE_DELTA:
		return "turn ch" + strconv.Itoa(e.Channel) + " " + strconv.Itoa(e.Delta)
	default:
		return "unknown"
	}
}
