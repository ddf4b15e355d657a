//go:build !tinygo

package strconvx

import "strconv"

// Host builds delegate to strconv.

func FormatUint32(u uint32) string { return strconv.FormatUint(uint64(u), 10) }

func ParseUint32(s string) (uint32, bool) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err == nil
}

func FormatInt(i int) string { return strconv.Itoa(i) }
