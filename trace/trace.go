// Package trace is the firmware's diagnostic output channel.
package trace

import (
	"io"
	"sync"

	"blinky-go/x/strconvx"
)

// Tracer writes whole lines to every configured writer. Write errors are
// ignored: tracing must never affect control flow.
type Tracer struct {
	mu sync.Mutex
	ws []io.Writer
}

// New returns a Tracer writing to ws. With no writers it discards.
func New(ws ...io.Writer) *Tracer {
	return &Tracer{ws: ws}
}

// Puts writes s followed by a newline.
func (t *Tracer) Puts(s string) { t.write(s + "\n") }

func (t *Tracer) write(s string) {
	if t == nil {
		return
	}
	b := []byte(s)
	t.mu.Lock()
	for _, w := range t.ws {
		_, _ = w.Write(b)
	}
	t.mu.Unlock()
}

// Greeting, Clock and Second emit the three standard trace lines.
func (t *Tracer) Greeting(s string) { t.Puts(s) }
func (t *Tracer) Clock(hz uint32)   { t.Puts("System clock: " + strconvx.FormatUint32(hz) + " Hz") }
func (t *Tracer) Second(n uint32)   { t.Puts("Second " + strconvx.FormatUint32(n)) }
