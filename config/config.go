// Package config holds board descriptors for the blink firmware.
package config

import (
	"blinky-go/errcode"
	"blinky-go/x/strconvx"
)

// PinsPerPort maps (port, offset) pairs onto global GPIO numbers.
const PinsPerPort = 32

// maxPorts bounds the GPIO space accepted by Validate.
const maxPorts = 4

// LED kinds.
const (
	KindGPIO  = "gpio"
	KindPixel = "pixel"
)

// LED describes one entry of the blink array. Order matters: it is the
// round-robin order.
type LED struct {
	Name      string `toml:"name"`
	Kind      string `toml:"kind"` // "gpio" (default) or "pixel"
	Port      int    `toml:"port"`
	Offset    int    `toml:"offset"`
	ActiveLow bool   `toml:"active_low"`

	// Pixel LEDs only.
	Channel    string `toml:"channel"` // "red", "green" or "blue"
	Brightness uint8  `toml:"brightness"`
}

// PinNumber is the global GPIO number of a gpio LED.
func (l LED) PinNumber() int { return l.Port*PinsPerPort + l.Offset }

// IsPixel reports whether the LED is a pixel colour channel.
func (l LED) IsPixel() bool { return l.Kind == KindPixel }

// ChannelIndex maps Channel to 0..2, or -1.
func (l LED) ChannelIndex() int {
	switch l.Channel {
	case "red":
		return 0
	case "green":
		return 1
	case "blue":
		return 2
	}
	return -1
}

// Pixel is the addressable RGB pixel shared by pixel LEDs.
type Pixel struct {
	Pin   int `toml:"pin"`
	Power int `toml:"power"` // -1 when the pixel is always powered
}

type Button struct {
	Port      int    `toml:"port"`
	Offset    int    `toml:"offset"`
	ActiveLow bool   `toml:"active_low"`
	Pull      string `toml:"pull"` // "none", "up", "down"
}

func (b Button) PinNumber() int { return b.Port*PinsPerPort + b.Offset }

type Config struct {
	Board       string `toml:"board"`
	Greeting    string `toml:"greeting"`
	FrequencyHz uint32 `toml:"frequency_hz"`
	LEDs        []LED  `toml:"leds"`
	Pixel       Pixel  `toml:"pixel"`
	Button      Button `toml:"button"`
}

// Validate checks the descriptor before any hardware is touched.
func (c Config) Validate() error {
	const op = "config"
	if c.FrequencyHz == 0 {
		return errcode.Wrap(errcode.InvalidFrequency, op, "frequency_hz must be > 0", nil)
	}
	if len(c.LEDs) == 0 {
		return errcode.Wrap(errcode.NoLEDs, op, c.Board, nil)
	}

	used := map[int]string{}
	claim := func(pin int, who string) error {
		if pin < 0 || pin >= maxPorts*PinsPerPort {
			return errcode.Wrap(errcode.InvalidParams, op, who+": pin "+strconvx.FormatInt(pin)+" out of range", nil)
		}
		if prev, ok := used[pin]; ok {
			return errcode.Wrap(errcode.DuplicatePin, op, who+" and "+prev+" share pin "+strconvx.FormatInt(pin), nil)
		}
		used[pin] = who
		return nil
	}

	pixelUsed := false
	channels := [3]bool{}
	for i, l := range c.LEDs {
		who := "led " + strconvx.FormatInt(i)
		if l.Name != "" {
			who = "led " + l.Name
		}
		switch l.Kind {
		case "", KindGPIO:
			if l.Offset < 0 || l.Offset >= PinsPerPort || l.Port < 0 {
				return errcode.Wrap(errcode.InvalidParams, op, who+": bad port/offset", nil)
			}
			if err := claim(l.PinNumber(), who); err != nil {
				return err
			}
		case KindPixel:
			ch := l.ChannelIndex()
			if ch < 0 {
				return errcode.Wrap(errcode.InvalidParams, op, who+": channel must be red, green or blue", nil)
			}
			if channels[ch] {
				return errcode.Wrap(errcode.DuplicatePin, op, who+": channel "+l.Channel+" used twice", nil)
			}
			channels[ch] = true
			pixelUsed = true
		default:
			return errcode.Wrap(errcode.InvalidParams, op, who+": unknown kind "+quote(l.Kind), nil)
		}
	}

	if pixelUsed {
		if err := claim(c.Pixel.Pin, "pixel"); err != nil {
			return err
		}
		if c.Pixel.Power >= 0 {
			if err := claim(c.Pixel.Power, "pixel power"); err != nil {
				return err
			}
		}
	}

	b := c.Button
	if b.Offset < 0 || b.Offset >= PinsPerPort || b.Port < 0 {
		return errcode.Wrap(errcode.InvalidParams, op, "button: bad port/offset", nil)
	}
	switch b.Pull {
	case "", "none", "up", "down":
	default:
		return errcode.Wrap(errcode.InvalidParams, op, "button: unknown pull "+quote(b.Pull), nil)
	}
	return claim(b.PinNumber(), "button")
}

func quote(s string) string { return `"` + s + `"` }
