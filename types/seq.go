package types

// ------------------------
// Sequencer
// ------------------------

// Phase is the sequencer's lifetime phase.
type Phase uint8

const (
	PhaseIdle Phase = iota // before Startup
	PhaseAuto
	PhaseManual
)

func (p Phase) String() string {
	switch p {
	case PhaseAuto:
		return "auto"
	case PhaseManual:
		return "manual"
	default:
		return "idle"
	}
}

type PhaseValue struct {
	Phase Phase `json:"phase"`
}

// LEDValue is published on every LED transition made by the sequencer.
type LEDValue struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	On    bool   `json:"on"`
}

// SecondValue counts elapsed AUTO seconds, starting at 1.
type SecondValue struct {
	N uint32 `json:"n"`
}

// ------------------------
// Button
// ------------------------

type ButtonEdge string

const (
	EdgePushed   ButtonEdge = "pushed"
	EdgeReleased ButtonEdge = "released"
)

type ButtonValue struct {
	Edge ButtonEdge `json:"edge"`
}
