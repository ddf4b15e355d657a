package types

import (
	"blinky-go/bus"
	"blinky-go/x/strconvx"
)

// ---- Topics ----

func TopicPhase() bus.Topic        { return bus.T("seq", "phase") }
func TopicSecond() bus.Topic       { return bus.T("seq", "second") }
func TopicLED(index int) bus.Topic { return bus.T("seq", "led", strconvx.FormatUint32(uint32(index))) }
func TopicButtonEdge() bus.Topic   { return bus.T("button", "edge") }
func TopicSeqAll() bus.Topic       { return bus.T("seq", bus.MultiWild) }
func TopicButtonAll() bus.Topic    { return bus.T("button", bus.MultiWild) }
