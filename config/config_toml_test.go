//go:build !tinygo

package config

import (
	"os"
	"path/filepath"
	"testing"

	"blinky-go/errcode"
)

func TestDecodeOverridesBase(t *testing.T) {
	c, err := Decode([]byte(`
frequency_hz = 32
greeting = "hi"

[[leds]]
name = "a"
offset = 1

[[leds]]
name = "b"
offset = 2
active_low = true
`), "hifive1b")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.Board != "hifive1b" || c.FrequencyHz != 32 || c.Greeting != "hi" {
		t.Fatalf("got %+v", c)
	}
	if len(c.LEDs) != 2 || c.LEDs[1].Name != "b" || !c.LEDs[1].ActiveLow {
		t.Fatalf("leds = %+v", c.LEDs)
	}
	// Untouched sections keep the base board's values.
	if c.Button.PinNumber() != 18 {
		t.Fatalf("button = %+v", c.Button)
	}
}

func TestDecodeBoardKey(t *testing.T) {
	c, err := Decode([]byte(`board = "xiao-rp2040"`), "hifive1b")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.Board != "xiao-rp2040" || !c.LEDs[0].IsPixel() {
		t.Fatalf("got %+v", c)
	}
}

func TestDecodeValidates(t *testing.T) {
	_, err := Decode([]byte(`frequency_hz = 0`), "pico")
	if errcode.Of(err) != errcode.InvalidFrequency {
		t.Fatalf("err = %v", err)
	}
	_, err = Decode([]byte(`board = "nope"`), "pico")
	if errcode.Of(err) != errcode.UnknownBoard {
		t.Fatalf("err = %v", err)
	}
	_, err = Decode([]byte(`frequency_hz = [`), "pico")
	if errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("err = %v", err)
	}
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "board.toml")
	if err := os.WriteFile(p, []byte("frequency_hz = 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(p, "pico")
	if err != nil || c.FrequencyHz != 100 || c.Board != "pico" {
		t.Fatalf("Load = %+v, %v", c, err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml"), "pico"); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestDecodePartialButtonKeepsBase(t *testing.T) {
	c, err := Decode([]byte("[button]\noffset = 17\n"), "hifive1b")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := Button{Port: 0, Offset: 17, ActiveLow: true, Pull: "up"}
	if c.Button != want {
		t.Fatalf("button = %+v, want %+v", c.Button, want)
	}
	if len(c.LEDs) != 3 || c.LEDs[0].Name != "red" {
		t.Fatalf("base leds lost: %+v", c.LEDs)
	}
}

func TestDecodePartialPixelKeepsBase(t *testing.T) {
	c, err := Decode([]byte("board = \"xiao-rp2040\"\n[pixel]\npin = 13\n"), "hifive1b")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.Pixel != (Pixel{Pin: 13, Power: 11}) {
		t.Fatalf("pixel = %+v, want pin 13 power 11", c.Pixel)
	}
	if c.Button.PinNumber() != 26 || !c.Button.ActiveLow {
		t.Fatalf("button = %+v", c.Button)
	}
}
