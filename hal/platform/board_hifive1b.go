//go:build hifive1b

package platform

// BoardName selects the built-in board descriptor.
// HiFive1 rev B; RGB LED on GPIO19/21/22, button WAKE->DIG2 (GPIO18).
const BoardName = "hifive1b"
