//go:build pico

package platform

// BoardName selects the built-in board descriptor.
// Raspberry Pi Pico; onboard LED GP25 plus external LEDs.
const BoardName = "pico"
