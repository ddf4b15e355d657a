//go:build !tinygo

package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"blinky-go/errcode"
)

// Load reads a TOML board file. The file's `board` key (default
// defaultBoard) picks the built-in descriptor it overrides.
func Load(path, defaultBoard string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errcode.Wrap(errcode.InvalidParams, "config load", path, err)
	}
	return Decode(data, defaultBoard)
}

// Decode is Load without the file system. The file is decoded onto the base
// descriptor, so keys it leaves out, including keys inside [pixel] and
// [button], keep the base values. A [[leds]] list replaces the base list.
func Decode(data []byte, defaultBoard string) (Config, error) {
	var head struct {
		Board string `toml:"board"`
		LEDs  []LED  `toml:"leds"`
	}
	if err := toml.Unmarshal(data, &head); err != nil {
		return Config{}, errcode.Wrap(errcode.InvalidParams, "config decode", "", err)
	}
	name := head.Board
	if name == "" {
		name = defaultBoard
	}
	c, err := Lookup(name)
	if err != nil {
		return Config{}, err
	}

	leds := c.LEDs
	c.LEDs = nil
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, errcode.Wrap(errcode.InvalidParams, "config decode", "", err)
	}
	if head.LEDs == nil {
		c.LEDs = leds
	}
	return c, c.Validate()
}
