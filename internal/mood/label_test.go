package mood

import "testing"

func TestLabelOf(t *testing.T) {
	tests := []struct {
		happiness int
		calmness  int
		want      Label
	}{
		{80, 80, LabelJoyfulPeaceful},
		{20, 20, LabelAnxiousTroubled},
		{50, 50, LabelNeutralStable},
		{70, 70, LabelJoyfulPeaceful},
		{70, 69, LabelHappyContent},
		{70, 40, LabelHappyContent},
		{70, 39, LabelExcitedEnergetic},
		{69, 70, LabelCalmBalanced},
		{40, 40, LabelNeutralStable},
		{40, 39, LabelRestless},
		{39, 70, LabelSadPeaceful},
		{39, 40, LabelMelancholy},
		{39, 39, LabelAnxiousTroubled},
		{0, 100, LabelSadPeaceful},
		{100, 0, LabelExcitedEnergetic},
	}

	for _, tt := range tests {
		if got := LabelOf(tt.happiness, tt.calmness); got != tt.want {
			t.Errorf("LabelOf(%d, %d) = %q, want %q", tt.happiness, tt.calmness, got, tt.want)
		}
	}
}

func TestLabelOfPartition(t *testing.T) {
	known := make(map[Label]bool, len(Labels))
	for _, l := range Labels {
		known[l] = true
	}

	counts := make(map[Label]int)
	total := 0
	for h := 0; h <= 100; h++ {
		for c := 0; c <= 100; c++ {
			l := LabelOf(h, c)
			if !known[l] {
				t.Fatalf("LabelOf(%d, %d) = %q, not a known label", h, c, l)
			}
			if l != LabelOf(h, c) {
				t.Fatalf("LabelOf(%d, %d) not deterministic", h, c)
			}
			counts[l]++
			total++
		}
	}

	if total != 101*101 {
		t.Errorf("classified %d pairs, want %d", total, 101*101)
	}
	if len(counts) != len(Labels) {
		t.Errorf("got %d distinct labels, want %d", len(counts), len(Labels))
	}
	// 40 values below 40, 30 in [40,70), 31 in [70,100].
	if got := counts[LabelJoyfulPeaceful]; got != 31*31 {
		t.Errorf("Joyful & Peaceful covers %d pairs, want %d", got, 31*31)
	}
	if got := counts[LabelAnxiousTroubled]; got != 40*40 {
		t.Errorf("Anxious & Troubled covers %d pairs, want %d", got, 40*40)
	}
}

func TestDescriptionOf(t *testing.T) {
	seen := make(map[string]bool)
	for _, l := range Labels {
		d := DescriptionOf(l)
		if d == "" || d == defaultDescription {
			t.Errorf("DescriptionOf(%q) = %q", l, d)
		}
		if seen[d] {
			t.Errorf("DescriptionOf(%q) duplicates another label", l)
		}
		seen[d] = true
	}

	if got := DescriptionOf(LabelRestless); got != "You might be feeling a bit unsettled or eager for change" {
		t.Errorf("DescriptionOf(Restless) = %q", got)
	}
	if got := DescriptionOf("Unknown"); got != "Your current emotional state" {
		t.Errorf("DescriptionOf(unknown) = %q", got)
	}
}

func TestDescribe(t *testing.T) {
	label, desc := Describe(80, 80)
	if label != LabelJoyfulPeaceful {
		t.Errorf("Describe() label = %q", label)
	}
	if desc != "You're in a wonderful state of happiness and tranquility" {
		t.Errorf("Describe() description = %q", desc)
	}
}
