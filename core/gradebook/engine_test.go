package gradebook

import (
	"math"
	"testing"
)

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantPct float64
		wantOK  bool
	}{
		{name: "no entries"},
		{name: "zero weights", entries: []Entry{{Points: 50, MaxPoints: 100, Weight: 0}}},
		{name: "zero max points skipped", entries: []Entry{{Points: 5, MaxPoints: 0, Weight: 1}}},
		{
			name:    "single entry",
			entries: []Entry{{Points: 100, MaxPoints: 100, Weight: 1}},
			wantPct: 100, wantOK: true,
		},
		{
			name: "two equal weights",
			entries: []Entry{
				{Points: 80, MaxPoints: 100, Weight: 0.5},
				{Points: 60, MaxPoints: 100, Weight: 0.5},
			},
			wantPct: 70, wantOK: true,
		},
		{
			name: "uneven weights",
			entries: []Entry{
				{Points: 90, MaxPoints: 100, Weight: 0.75},
				{Points: 50, MaxPoints: 100, Weight: 0.25},
			},
			wantPct: 80, wantOK: true,
		},
		{
			name: "different scales",
			entries: []Entry{
				{Points: 9, MaxPoints: 10, Weight: 1},
				{Points: 45, MaxPoints: 50, Weight: 1},
			},
			wantPct: 90, wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, ok := WeightedAverage(tt.entries)
			if ok != tt.wantOK {
				t.Fatalf("WeightedAverage() ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(pct-tt.wantPct) > 1e-9 {
				t.Errorf("WeightedAverage() pct = %v, want %v", pct, tt.wantPct)
			}
		})
	}
}

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{110, "A+"},
		{97, "A+"},
		{96.999, "A"},
		{93, "A"},
		{92.999, "A-"},
		{90, "A-"},
		{87, "B+"},
		{83, "B"},
		{80, "B-"},
		{77, "C+"},
		{73, "C"},
		{70, "C-"},
		{67, "D+"},
		{63, "D"},
		{60, "D-"},
		{59.999, "F"},
		{0, "F"},
		{-5, "F"},
	}
	for _, tt := range tests {
		if got := LetterGrade(tt.pct); got != tt.want {
			t.Errorf("LetterGrade(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
