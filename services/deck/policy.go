package deck

import "encoderdeck-go/x/mathx"

// Policy selects how raw encoder movement becomes an emitted delta.
// All three appear in deployed configurations and are kept as distinct,
// testable strategies rather than one guessed blend.
type Policy uint8

const (
	// PolicyRaw emits the raw count difference verbatim; deltas over a
	// session sum exactly to finalPosition - initialPosition.
	PolicyRaw Policy = iota

	// PolicyDivisor coarsens the raw count by an integer divisor before
	// differencing, then clamps the step to ±1: one event per detent no
	// matter how many underlying ticks the detent produced.
	PolicyDivisor

	// PolicySign ignores magnitude entirely: any change emits exactly
	// +1 or -1 by direction.
	PolicySign
)

func (p Policy) String() string {
	switch p {
	case PolicyRaw:
		return "raw"
	case PolicyDivisor:
		return "divisor"
	case PolicySign:
		return "sign"
	default:
		return "unknown"
	}
}

// ExplicitPlus reports whether positive deltas carry a '+' prefix on the
// wire under this policy. Consumers must accept both spellings.
func (p Policy) ExplicitPlus() bool { return p != PolicyRaw }

// step maps a new raw position onto (baseline', delta). last is the
// previous baseline in the policy's own space: raw counts for PolicyRaw
// and PolicySign, divided steps for PolicyDivisor. changed is false when
// the position is unchanged in that space and nothing is emitted.
func (p Policy) step(divisor, last, raw int32) (next, delta int32, changed bool) {
	switch p {
	case PolicyDivisor:
		if divisor <= 0 {
			divisor = 1
		}
		next = mathx.FloorDiv(raw, divisor)
		if next == last {
			return last, 0, false
		}
		return next, mathx.Clamp(next-last, -1, 1), true

	case PolicySign:
		if raw == last {
			return last, 0, false
		}
		if raw > last {
			return raw, 1, true
		}
		return raw, -1, true

	default: // PolicyRaw
		if raw == last {
			return last, 0, false
		}
		return raw, raw - last, true
	}
}
