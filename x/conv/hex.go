package conv

// Hex8 writes a two-digit lowercase hex byte without 0x, zero-padded.
// Used for bus-address diagnostics.
func Hex8(buf []byte, n uint8) []byte {
	if len(buf) < 2 {
		return buf[:0]
	}
	const hexd = "0123456789abcdef"
	buf[0] = hexd[n>>4]
	buf[1] = hexd[n&0xF]
	return buf[:2]
}

// Hex8String is a convenience wrapper for log lines off the hot path.
func Hex8String(n uint8) string {
	var b [2]byte
	return "0x" + string(Hex8(b[:], n))
}
