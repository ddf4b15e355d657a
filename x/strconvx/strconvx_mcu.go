//go:build tinygo

package strconvx

// Decimal only. Keeps strconv and fmt out of the firmware image.

func FormatUint32(u uint32) string {
	var buf [10]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
		if u == 0 {
			break
		}
	}
	return string(buf[i:])
}

func ParseUint32(s string) (uint32, bool) {
	if len(s) == 0 {
		return 0, false
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint64(c-'0')
		if v > 1<<32-1 {
			return 0, false
		}
	}
	return uint32(v), true
}

func FormatInt(i int) string {
	if i < 0 {
		return "-" + FormatUint32(uint32(-int64(i)))
	}
	return FormatUint32(uint32(i))
}
