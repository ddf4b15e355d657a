package halcore

import "testing"

func TestEdgeString(t *testing.T) {
	for e, want := range map[Edge]string{
		EdgeNone:    "none",
		EdgeRising:  "rising",
		EdgeFalling: "falling",
		EdgeBoth:    "both",
		Edge(42):    "none",
	} {
		if got := e.String(); got != want {
			t.Fatalf("Edge(%d).String() = %q, want %q", uint8(e), got, want)
		}
	}
}
