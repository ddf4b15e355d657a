// hal/halcore/types.go
package halcore

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// GPIOPin is the subset of machine.Pin the firmware needs.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// IRQPin extends GPIOPin with interrupts. The handler runs in interrupt
// context and must not block.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// PinFactory supplies GPIO pins by global GPIO number.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---- Pixel abstractions ----

// PixelChannel is one colour channel of an addressable RGB pixel, driven as
// if it were a single LED.
type PixelChannel interface {
	ConfigureOutput(initial bool) error
	Set(on bool)
}

// Colour channel indices.
const (
	ChannelRed = iota
	ChannelGreen
	ChannelBlue
)

// PixelFactory returns a channel of the pixel on data pin `pin`. power is the
// pixel's supply-enable pin or -1.
type PixelFactory interface {
	Channel(pin, power, channel int, brightness uint8) (PixelChannel, bool)
}

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}
