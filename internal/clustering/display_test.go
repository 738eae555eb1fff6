package clustering

import (
	"strings"
	"testing"

	"github.com/justestif/go-moodtune/internal/mood"
)

func TestFormatPhaseSummary(t *testing.T) {
	makePhase := func(label mood.Label, n int) Phase {
		entries := make([]Entry, n)
		for i := range entries {
			entries[i] = Entry{ID: string(rune('a' + i)), Happiness: 80, Calmness: 80, Timestamp: makeDate(2024, 1, 1+i)}
		}
		return Phase{
			Label:     label,
			Centroid:  mood.Input{Happiness: 80, Calmness: 80},
			Color:     mood.ColorOf(80, 80),
			Entries:   entries,
			StartDate: entries[0].Timestamp,
			EndDate:   entries[n-1].Timestamp,
		}
	}

	tests := []struct {
		name           string
		phases         []Phase
		outliers       []Entry
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "no phases no outliers",
			wantContains:   []string{"No mood phases found from 0 entries"},
			wantNotContain: []string{"outliers"},
		},
		{
			name:         "no phases with outliers",
			outliers:     []Entry{{ID: "x"}, {ID: "y"}},
			wantContains: []string{"No mood phases found from 2 entries (2 outliers skipped)"},
		},
		{
			name:   "single phase",
			phases: []Phase{makePhase(mood.LabelJoyfulPeaceful, 3)},
			wantContains: []string{
				"Found 1 mood phase from 3 entries",
				"Phase 1: Joyful & Peaceful, 2024-01-01 to 2024-01-03 (3 entries)",
				"center happiness=80 calmness=80",
			},
			wantNotContain: []string{"more", "outliers"},
		},
		{
			name:     "many entries truncated",
			phases:   []Phase{makePhase(mood.LabelJoyfulPeaceful, 5), makePhase(mood.LabelMelancholy, 3)},
			outliers: []Entry{{ID: "z"}},
			wantContains: []string{
				"Found 2 mood phases from 9 entries (1 outliers skipped)",
				"... and 2 more",
				"Phase 2: Melancholy",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPhaseSummary(tt.phases, tt.outliers)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("summary missing %q:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.wantNotContain {
				if strings.Contains(got, unwanted) {
					t.Errorf("summary unexpectedly contains %q:\n%s", unwanted, got)
				}
			}
		})
	}
}
