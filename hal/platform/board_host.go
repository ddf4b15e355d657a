//go:build !tinygo

package platform

// BoardName on host builds simulates the HiFive1.
const BoardName = "hifive1b"
