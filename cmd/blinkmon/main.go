//go:build !tinygo

// Command blinkmon reads the firmware trace from a serial port and checks
// that the Second counter advances without gaps.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
