package errcode

// Code is a stable fault identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Transient is a one-off bus fault. The channel stays active and the
	// polling cadence itself is the retry interval.
	Transient Code = "transient"

	// DeviceAbsent is a persistent device-gone fault. The affected half of
	// the channel is disabled and never re-enabled.
	DeviceAbsent Code = "device_absent"

	// NoPeripheral means no candidate bus address answered at startup.
	NoPeripheral Code = "no_peripheral"

	// NoChannels means the peripheral answered but zero channels resolved.
	NoChannels Code = "no_channels"

	InvalidParams Code = "invalid_params"
	Unsupported   Code = "unsupported"

	Error Code = "error" // generic fallback
)

// E is an optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	if e.Op != "" {
		return string(e.C) + ": " + e.Op
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
