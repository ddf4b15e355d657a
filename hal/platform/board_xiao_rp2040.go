//go:build xiao_rp2040

package platform

// BoardName selects the built-in board descriptor.
// Seeed XIAO RP2040; WS2812 pixel on GPIO12, power GPIO11.
const BoardName = "xiao-rp2040"
