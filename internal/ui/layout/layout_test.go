package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected narrow terminal to be too small")
	}
	if !IsTooSmall(MinWidth, MinHeight-1) {
		t.Error("expected short terminal to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("expected minimum size to fit")
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Cells", "3/10", 80)
	for _, want := range []string{"MindFlip", "Cells", "3/10"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q:\n%s", want, h)
		}
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "space", Description: "flip"}, {Key: "q", Description: "quit"}}, 80)
	if !strings.Contains(f, "flip") || !strings.Contains(f, "quit") {
		t.Errorf("footer missing hints:\n%s", f)
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Cells", "", 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
}
