package conv

// Itoa writes base-10 representation of n into buf and returns the used slice.
// buf should be length >= 12 for int32. Negative numbers supported.
// No allocations; no fmt/strconv dependency.
func Itoa(buf []byte, n int64) []byte {
	return itoa(buf, n, false)
}

// ItoaSigned is Itoa with an explicit '+' on positive numbers, the form the
// step-normalised event stream uses.
func ItoaSigned(buf []byte, n int64) []byte {
	return itoa(buf, n, true)
}

func itoa(buf []byte, n int64, plus bool) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	neg := n < 0
	var u uint64
	if neg {
		u = uint64(-n)
	} else {
		u = uint64(n)
	}
	// Write digits backwards.
	if u == 0 {
		i--
		buf[i] = '0'
	} else {
		for u > 0 && i > 0 {
			i--
			buf[i] = byte('0' + (u % 10))
			u /= 10
		}
	}
	if i > 0 {
		if neg {
			i--
			buf[i] = '-'
		} else if plus && n > 0 {
			i--
			buf[i] = '+'
		}
	}
	return buf[i:]
}
