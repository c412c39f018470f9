package spacedrep

import "testing"

func TestConstants(t *testing.T) {
	if MinEaseFactor != 1.3 {
		t.Errorf("MinEaseFactor = %v, want 1.3", MinEaseFactor)
	}
	if MaxEaseFactor != 2.5 {
		t.Errorf("MaxEaseFactor = %v, want 2.5", MaxEaseFactor)
	}
	if RelearnIntervalDays != 1 {
		t.Errorf("RelearnIntervalDays = %d, want 1", RelearnIntervalDays)
	}
}

func TestIntervalDays(t *testing.T) {
	tests := []struct {
		ease     float64
		expected int
	}{
		{1.3, 3},
		{1.5, 3},
		{2.0, 4},
		{2.15, 5},
		{2.5, 5},
	}
	for _, tt := range tests {
		if got := IntervalDays(tt.ease); got != tt.expected {
			t.Errorf("IntervalDays(%v) = %d, want %d", tt.ease, got, tt.expected)
		}
	}
}
