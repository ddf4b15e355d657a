package trace

import (
	"strings"

	"blinky-go/x/strconvx"
)

// Kind classifies a trace line.
type Kind uint8

const (
	KindOther Kind = iota
	KindGreeting
	KindClock
	KindSecond
)

func (k Kind) String() string {
	switch k {
	case KindGreeting:
		return "greeting"
	case KindClock:
		return "clock"
	case KindSecond:
		return "second"
	default:
		return "other"
	}
}

// Record is one parsed trace line.
type Record struct {
	Kind  Kind
	Text  string // line without trailing CR/LF
	Value uint32 // Hz for KindClock, n for KindSecond
}

// ParseLine classifies a console line. Unrecognised lines come back as
// KindOther with Text set.
func ParseLine(line string) Record {
	line = strings.TrimRight(line, "\r\n")
	r := Record{Kind: KindOther, Text: line}

	switch {
	case strings.HasPrefix(line, "Hello ") && strings.HasSuffix(line, "!"):
		r.Kind = KindGreeting
	case strings.HasPrefix(line, "System clock: ") && strings.HasSuffix(line, " Hz"):
		v := strings.TrimSuffix(strings.TrimPrefix(line, "System clock: "), " Hz")
		if n, ok := strconvx.ParseUint32(v); ok {
			r.Kind, r.Value = KindClock, n
		}
	case strings.HasPrefix(line, "Second "):
		if n, ok := strconvx.ParseUint32(strings.TrimPrefix(line, "Second ")); ok {
			r.Kind, r.Value = KindSecond, n
		}
	}
	return r
}
