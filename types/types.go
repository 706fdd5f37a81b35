package types

// ------------------------
// Deck state (retained)
// ------------------------

type DeckState struct {
	Level  string `json:"level"`  // "resolving", "ready", "idle_hold", "stopped"
	Status string `json:"status"` // freeform short code
	TSms   int64  `json:"ts_ms"`
}

// Link is the health reported for one half of a channel.
type Link string

const (
	LinkUp       Link = "up"
	LinkDegraded Link = "degraded" // transient fault observed, still active
	LinkDown     Link = "down"     // disabled, terminal
)

// ChannelStatus is published retained per channel half.
type ChannelStatus struct {
	Encoder Link   `json:"encoder"`
	Button  Link   `json:"button"`
	TSms    int64  `json:"ts_ms"`
	Error   string `json:"error,omitempty"` // machine-readable short code
}

// ------------------------
// Resolution summary
// ------------------------

type ResolveInfo struct {
	Address  uint16 `json:"address"`
	Encoders int    `json:"encoders"` // working encoder halves
	Buttons  int    `json:"buttons"`  // working button halves
}
