// Package led drives the LEDs of the blink array.
package led

// Output is the electrical side of one LED: a GPIO pin or a pixel channel.
type Output interface {
	ConfigureOutput(initial bool) error
	Set(level bool)
}

// LED is one addressable LED with its polarity.
type LED struct {
	name      string
	port      int
	offset    int
	activeLow bool
	out       Output

	powered bool
	on      bool
}

// New returns an LED on (port, offset). activeLow LEDs light when the
// output is driven low.
func New(out Output, port, offset int, activeLow bool) *LED {
	return &LED{out: out, port: port, offset: offset, activeLow: activeLow}
}

// Named sets a display name and returns l.
func (l *LED) Named(name string) *LED {
	l.name = name
	return l
}

func (l *LED) Name() string    { return l.name }
func (l *LED) Port() int       { return l.port }
func (l *LED) Offset() int     { return l.offset }
func (l *LED) ActiveLow() bool { return l.activeLow }
func (l *LED) Powered() bool   { return l.powered }
func (l *LED) IsOn() bool      { return l.on }

func (l *LED) level(on bool) bool { return on != l.activeLow }

// PowerUp configures the output with the LED off.
func (l *LED) PowerUp() error {
	if err := l.out.ConfigureOutput(l.level(false)); err != nil {
		return err
	}
	l.powered = true
	l.on = false
	return nil
}

// TurnOn lights the LED. Ignored before PowerUp.
func (l *LED) TurnOn() {
	if !l.powered {
		return
	}
	l.out.Set(l.level(true))
	l.on = true
}

// TurnOff extinguishes the LED. Ignored before PowerUp.
func (l *LED) TurnOff() {
	if !l.powered {
		return
	}
	l.out.Set(l.level(false))
	l.on = false
}

// Array is the ordered LED set; order is the blink order.
type Array []*LED

// PowerUpAll powers every LED, stopping at the first failure.
func (a Array) PowerUpAll() error {
	for _, l := range a {
		if err := l.PowerUp(); err != nil {
			return err
		}
	}
	return nil
}

// Next returns the index after i, wrapping to 0.
func (a Array) Next(i int) int {
	i++
	if i >= len(a) {
		i = 0
	}
	return i
}

// LitCount returns how many LEDs are on.
func (a Array) LitCount() int {
	n := 0
	for _, l := range a {
		if l.on {
			n++
		}
	}
	return n
}
