//go:build !tinygo

package platform

import (
	"testing"

	"blinky-go/hal/halcore"
)

func TestFakePin_IRQOnMatchingEdge(t *testing.T) {
	f := NewHostPinFactory()
	p, ok := f.Get(18)
	if !ok {
		t.Fatal("pin 18 missing")
	}
	_ = p.ConfigureInput(halcore.PullUp)
	if !p.Get() {
		t.Fatal("pulled-up input should idle high")
	}

	var calls int
	_ = p.SetIRQ(halcore.EdgeFalling, func() { calls++ })
	p.Set(false) // falling
	p.Set(true)  // rising, not armed
	p.Set(true)  // no change
	if calls != 1 {
		t.Fatalf("irq calls = %d, want 1", calls)
	}

	_ = p.ClearIRQ()
	p.Set(false)
	if calls != 1 {
		t.Fatal("irq fired after ClearIRQ")
	}
}

func TestFakePin_OnChange(t *testing.T) {
	f := NewHostPinFactory()
	gp, _ := f.ByNumber(22)
	p, _ := f.Get(22)
	if gp != halcore.GPIOPin(p) {
		t.Fatal("factory must return stable pins")
	}
	var seen []bool
	p.OnChange(func(l bool) { seen = append(seen, l) })
	_ = p.ConfigureOutput(true)
	p.Set(false)
	p.Set(false)
	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Fatalf("changes = %v, want [true false]", seen)
	}
	if !p.IsOutput() || p.Configures() != 1 {
		t.Fatalf("output=%v configures=%d", p.IsOutput(), p.Configures())
	}
}

func TestHostPinFactory_Range(t *testing.T) {
	f := NewHostPinFactory()
	if _, ok := f.ByNumber(-1); ok {
		t.Fatal("negative pin accepted")
	}
	if _, ok := f.ByNumber(maxHostPin + 1); ok {
		t.Fatal("out of range pin accepted")
	}
}

func TestHostPixelChannels(t *testing.T) {
	f := &HostPixelFactory{}
	r, ok := f.Channel(12, 11, halcore.ChannelRed, 40)
	if !ok {
		t.Fatal("red channel missing")
	}
	b, _ := f.Channel(12, 11, halcore.ChannelBlue, 40)
	if _, ok := f.Channel(12, 11, 3, 40); ok {
		t.Fatal("channel 3 accepted")
	}
	_ = r.ConfigureOutput(false)
	_ = b.ConfigureOutput(false)
	r.Set(true)
	b.Set(true)
	r.Set(false)

	px, _ := f.Get(12)
	if got := px.RGB(); got != [3]uint8{0, 0, 40} {
		t.Fatalf("rgb = %v, want [0 0 40]", got)
	}
}
