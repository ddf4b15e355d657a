//go:build tinygo

package main

import (
	"context"
	"time"

	"blinky-go/config"
	"blinky-go/errcode"
	"blinky-go/hal/platform"
	"blinky-go/services/blink"
	"blinky-go/trace"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)

	cfg, err := config.Lookup(platform.BoardName)
	if err != nil {
		halt(err)
	}

	svc := blink.New(cfg, platform.DefaultPinFactory(),
		blink.WithPixels(platform.DefaultPixelFactory()),
		blink.WithTracer(trace.New(platform.TraceWriters()...)),
		blink.WithCPUFrequency(platform.CPUFrequency()),
	)
	halt(svc.Run(context.Background()))
}

// halt reports a wiring error and parks the core.
func halt(err error) {
	if err != nil {
		println("Error:", string(errcode.Of(err)), err.Error())
	}
	select {}
}
