package mood

import "testing"

func TestMusicMoodTypeOf(t *testing.T) {
	tests := []struct {
		name      string
		happiness int
		calmness  int
		want      MusicMoodType
	}{
		{"rule 1 beats later overlaps", 95, 10, MusicEuphoric},
		{"energetic before playful", 65, 35, MusicEnergetic},
		{"falls through to anxious", 10, 10, MusicAnxious},
		{"empowering", 85, 50, MusicEmpowering},
		{"peaceful", 75, 90, MusicPeaceful},
		{"hopeful", 75, 65, MusicHopeful},
		{"excited", 62, 20, MusicExcited},
		{"playful", 62, 45, MusicPlayful},
		{"happy", 62, 90, MusicHappy},
		{"motivational", 55, 35, MusicMotivational},
		{"calm", 45, 75, MusicCalm},
		{"soothing", 30, 85, MusicSoothing},
		{"contemplative", 50, 60, MusicContemplative},
		{"gentle", 38, 65, MusicGentle},
		{"melancholic", 20, 60, MusicMelancholic},
		{"sad", 20, 45, MusicSad},
		{"mysterious", 47, 45, MusicMysterious},
		{"romantic", 55, 45, MusicRomantic},
		{"romantic edge", 59, 49, MusicRomantic},
		{"default peaceful", 50, 45, MusicPeaceful},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MusicMoodTypeOf(tt.happiness, tt.calmness); got != tt.want {
				t.Errorf("MusicMoodTypeOf(%d, %d) = %q, want %q", tt.happiness, tt.calmness, got, tt.want)
			}
		})
	}
}

func TestMusicMoodTypeOfTotal(t *testing.T) {
	for h := 0; h <= 100; h++ {
		for c := 0; c <= 100; c++ {
			got := MusicMoodTypeOf(h, c)
			if !got.IsKnown() {
				t.Fatalf("MusicMoodTypeOf(%d, %d) = %q, not a known type", h, c, got)
			}
			if got != MusicMoodTypeOf(h, c) {
				t.Fatalf("MusicMoodTypeOf(%d, %d) not deterministic", h, c)
			}
		}
	}
}

func TestCoarseMusicMoodTypeOf(t *testing.T) {
	tests := []struct {
		happiness int
		calmness  int
		want      MusicMoodType
	}{
		{70, 70, MusicPeaceful},
		{70, 69, MusicHappy},
		{39, 39, MusicAnxious},
		{39, 40, MusicSad},
		{20, 90, MusicSad},
		{50, 70, MusicCalm},
		{50, 50, MusicHappy},
		{40, 10, MusicHappy},
	}

	for _, tt := range tests {
		if got := CoarseMusicMoodTypeOf(tt.happiness, tt.calmness); got != tt.want {
			t.Errorf("CoarseMusicMoodTypeOf(%d, %d) = %q, want %q", tt.happiness, tt.calmness, got, tt.want)
		}
	}
}

func TestRequestMusicMoodTypeOf(t *testing.T) {
	tests := []struct {
		happiness, calmness int
		want                MusicMoodType
	}{
		{70, 70, MusicPeaceful},
		{65, 75, MusicHappy},
		{60, 10, MusicHappy},
		{59, 75, MusicCalm},
		{39, 39, MusicAnxious},
		{39, 40, MusicSad},
		{50, 50, MusicHappy},
	}

	for _, tt := range tests {
		if got := RequestMusicMoodTypeOf(tt.happiness, tt.calmness); got != tt.want {
			t.Errorf("RequestMusicMoodTypeOf(%d, %d) = %q, want %q", tt.happiness, tt.calmness, got, tt.want)
		}
	}

	// The coarse classifier only calls 70 and above happy.
	if got := CoarseMusicMoodTypeOf(65, 75); got != MusicCalm {
		t.Errorf("CoarseMusicMoodTypeOf(65, 75) = %q, want calm", got)
	}
}

func TestClassifiersDiffer(t *testing.T) {
	// (95, 10) is euphoric in the fine classifier but only happy in the coarse one.
	if fine, coarse := MusicMoodTypeOf(95, 10), CoarseMusicMoodTypeOf(95, 10); fine == coarse {
		t.Errorf("fine and coarse classifiers agree on (95, 10): %q", fine)
	}
}

func TestIsKnown(t *testing.T) {
	if !MusicNostalgic.IsKnown() {
		t.Error("nostalgic should be known")
	}
	if MusicMoodType("polka").IsKnown() {
		t.Error("polka should not be known")
	}
	if len(MusicMoodTypes) != 22 {
		t.Errorf("len(MusicMoodTypes) = %d, want 22", len(MusicMoodTypes))
	}
}
