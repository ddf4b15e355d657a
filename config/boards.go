package config

import "blinky-go/errcode"

// Built-in board descriptors.

func hifive1b() Config {
	return Config{
		Board:       "hifive1b",
		Greeting:    "Hello RISC-V World!",
		FrequencyHz: 1000,
		LEDs: []LED{
			{Name: "red", Port: 0, Offset: 22, ActiveLow: true},
			{Name: "green", Port: 0, Offset: 19, ActiveLow: true},
			{Name: "blue", Port: 0, Offset: 21, ActiveLow: true},
		},
		Pixel: Pixel{Pin: -1, Power: -1},
		// WAKE must be wired to DIG2 for the button to reach a GPIO.
		Button: Button{Port: 0, Offset: 18, ActiveLow: true, Pull: "up"},
	}
}

func pico() Config {
	return Config{
		Board:       "pico",
		Greeting:    "Hello RP2040 World!",
		FrequencyHz: 1000,
		LEDs: []LED{
			{Name: "onboard", Port: 0, Offset: 25},
			{Name: "red", Port: 0, Offset: 14},
			{Name: "green", Port: 0, Offset: 15},
		},
		Pixel:  Pixel{Pin: -1, Power: -1},
		Button: Button{Port: 0, Offset: 16, ActiveLow: true, Pull: "up"},
	}
}

func xiaoRP2040() Config {
	return Config{
		Board:       "xiao-rp2040",
		Greeting:    "Hello RP2040 World!",
		FrequencyHz: 1000,
		LEDs: []LED{
			{Name: "red", Kind: KindPixel, Channel: "red", Brightness: 32},
			{Name: "green", Kind: KindPixel, Channel: "green", Brightness: 32},
			{Name: "blue", Kind: KindPixel, Channel: "blue", Brightness: 32},
		},
		Pixel:  Pixel{Pin: 12, Power: 11},
		Button: Button{Port: 0, Offset: 26, ActiveLow: true, Pull: "up"},
	}
}

var boards = []struct {
	name string
	make func() Config
}{
	{"hifive1b", hifive1b},
	{"pico", pico},
	{"xiao-rp2040", xiaoRP2040},
}

// Boards lists the built-in descriptor names.
func Boards() []string {
	out := make([]string, 0, len(boards))
	for _, b := range boards {
		out = append(out, b.name)
	}
	return out
}

// Lookup returns a fresh copy of a built-in descriptor.
func Lookup(name string) (Config, error) {
	for _, b := range boards {
		if b.name == name {
			return b.make(), nil
		}
	}
	return Config{}, errcode.Wrap(errcode.UnknownBoard, "config", name, nil)
}
