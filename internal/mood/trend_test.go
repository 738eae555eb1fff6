package mood

import (
	"errors"
	"testing"
)

func repeat(in Input, n int) []Input {
	out := make([]Input, n)
	for i := range out {
		out[i] = in
	}
	return out
}

func TestTrendOf(t *testing.T) {
	tests := []struct {
		name    string
		samples []Input
		want    Trend
	}{
		{
			name:    "empty",
			samples: nil,
			want:    stableTrend,
		},
		{
			name:    "single sample",
			samples: []Input{{Happiness: 90, Calmness: 90}},
			want:    stableTrend,
		},
		{
			name:    "no older window",
			samples: repeat(Input{Happiness: 90, Calmness: 10}, 5),
			want:    stableTrend,
		},
		{
			name: "improving",
			samples: append(
				repeat(Input{Happiness: 80, Calmness: 70}, 5),
				repeat(Input{Happiness: 40, Calmness: 40}, 5)...,
			),
			want: Trend{Happiness: DirectionUp, Calmness: DirectionUp, Overall: OverallImproving},
		},
		{
			name: "declining",
			samples: append(
				repeat(Input{Happiness: 20, Calmness: 50}, 5),
				repeat(Input{Happiness: 60, Calmness: 50}, 3)...,
			),
			want: Trend{Happiness: DirectionDown, Calmness: DirectionStable, Overall: OverallDeclining},
		},
		{
			name: "small changes are stable",
			samples: append(
				repeat(Input{Happiness: 53, Calmness: 47}, 5),
				repeat(Input{Happiness: 50, Calmness: 50}, 5)...,
			),
			want: stableTrend,
		},
		{
			name: "only the ten newest count",
			samples: append(
				repeat(Input{Happiness: 50, Calmness: 50}, 10),
				repeat(Input{Happiness: 0, Calmness: 0}, 20)...,
			),
			want: stableTrend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrendOf(tt.samples); got != tt.want {
				t.Errorf("TrendOf() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAverages(t *testing.T) {
	h, c := Averages([]Input{{Happiness: 10, Calmness: 20}, {Happiness: 31, Calmness: 40}})
	if h != 20.5 || c != 30 {
		t.Errorf("Averages() = (%v, %v), want (20.5, 30)", h, c)
	}
	if h, c := Averages(nil); h != 0 || c != 0 {
		t.Errorf("Averages(nil) = (%v, %v)", h, c)
	}
}

func TestPresets(t *testing.T) {
	in, ok := PresetFor("calm")
	if !ok || in.Happiness != 60 || in.Calmness != 85 {
		t.Errorf("PresetFor(calm) = %+v, %v", in, ok)
	}
	if _, ok := PresetFor("bored"); ok {
		t.Error("PresetFor(bored) should not exist")
	}

	names := PresetNames()
	if len(names) != 8 || names[0] != "angry" || names[7] != "tired" {
		t.Errorf("PresetNames() = %v", names)
	}
	for _, name := range names {
		if err := Presets[name].Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		happiness, calmness int
		wantErr             bool
	}{
		{0, 0, false},
		{100, 100, false},
		{50, 50, false},
		{-1, 50, true},
		{101, 50, true},
		{50, -1, true},
		{50, 101, true},
	}

	for _, tt := range tests {
		err := Validate(tt.happiness, tt.calmness)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%d, %d) error = %v, wantErr %v", tt.happiness, tt.calmness, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidMood) {
			t.Errorf("Validate(%d, %d) error = %v, want ErrInvalidMood", tt.happiness, tt.calmness, err)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(95, 10)
	if s.MusicMoodType != MusicEuphoric || s.CoarseMusicType != MusicHappy {
		t.Errorf("Summarize() music types = %q, %q", s.MusicMoodType, s.CoarseMusicType)
	}
	if s.Label != LabelExcitedEnergetic || s.Description != DescriptionOf(LabelExcitedEnergetic) {
		t.Errorf("Summarize() label = %q, %q", s.Label, s.Description)
	}
	if s.Color != ColorOf(95, 10) || s.Gradient != GradientOf(95, 10) {
		t.Errorf("Summarize() color mismatch")
	}
}
