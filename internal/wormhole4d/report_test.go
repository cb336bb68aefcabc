package wormhole4d

import (
	"strings"
	"testing"
	"time"
)

func TestFormatRenderStats(t *testing.T) {
	out := FormatRenderStats(RenderStats{Width: 64, Height: 48, Workers: 8, Steps: 12345, Halvings: 7, RenderTime: 1500 * time.Millisecond})
	for _, want := range []string{"Render time", "64x48", "12345", "1.5s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatColumnSummary(t *testing.T) {
	out := FormatColumnSummary("ratio", []string{"0.002"}, []Real{2.5, 1.75})
	for _, want := range []string{"Median ratio", "0.002", "2.5", "#1", "1.75"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatEventStats(t *testing.T) {
	out := FormatEventStats([]EventCount{
		{Name: "halved", Count: 3, First: TraceEvent{Point: Point4{X: 0.5, W: -1.25}, Direction: Dir4{Z: 0.01}, Attempts: 2}},
		{Name: "step_failed", Count: 1, First: TraceEvent{Attempts: 8}},
	})
	for _, want := range []string{"halved", "step_failed", "First point", "(0.5, 0, 0, -1.25)", "(0, 0, 0.01, 0)", "Attempts"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
