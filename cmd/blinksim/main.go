//go:build !tinygo

// Command blinksim runs the blink sequencer against simulated pins on the
// host. The button is driven from a script or from stdin.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
