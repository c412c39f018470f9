package components

import (
	"strings"
	"testing"
)

func TestProgressBarPercent(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{0, 4, 0},
		{1, 4, 0.25},
		{4, 4, 1},
		{5, 4, 1},
	}
	for _, tt := range tests {
		if got := NewProgressBar(tt.done, tt.total, 40).Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestProgressBarCounter(t *testing.T) {
	if v := NewProgressBar(3, 10, 40).View(); !strings.Contains(v, "3/10") {
		t.Errorf("expected counter in view, got %q", v)
	}
}

func TestFlashcardFaces(t *testing.T) {
	f := Flashcard{Question: "Capital of France?", Answer: "Paris", Width: 80}

	front := f.View()
	if !strings.Contains(front, "QUESTION") || !strings.Contains(front, "Capital of France?") {
		t.Errorf("front face = %q", front)
	}
	if strings.Contains(front, "Paris") {
		t.Error("front face shows the answer")
	}

	f.Flipped = true
	back := f.View()
	if !strings.Contains(back, "ANSWER") || !strings.Contains(back, "Paris") {
		t.Errorf("back face = %q", back)
	}
}
