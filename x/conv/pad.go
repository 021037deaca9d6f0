package conv

// Pad2 writes n as at least two decimal digits (leading zero below 10) into
// buf and returns the used slice. buf should be length >= 3 for uint8.
func Pad2(buf []byte, n uint8) []byte {
	out := Utoa(buf, uint64(n))
	if len(out) >= 2 || len(buf) < 2 {
		return out
	}
	i := len(buf) - len(out) - 1
	buf[i] = '0'
	return buf[i:]
}

// AppendClock appends "H:MM:SS" to dst. With padHours the hour field is
// zero-padded to two digits as well ("HH:MM:SS").
func AppendClock(dst []byte, h, m, s uint8, padHours bool) []byte {
	var b [3]byte
	if padHours {
		dst = append(dst, Pad2(b[:], h)...)
	} else {
		dst = append(dst, Utoa(b[:], uint64(h))...)
	}
	dst = append(dst, ':')
	dst = append(dst, Pad2(b[:], m)...)
	dst = append(dst, ':')
	return append(dst, Pad2(b[:], s)...)
}
