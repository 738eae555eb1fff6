// Package mood derives colors, labels and music categories from a
// happiness/calmness pair.
//
// Every function in this package is pure. Callers validate input with
// Validate before classifying; the classifiers assume both axes are in
// [0, 100].
package mood

import (
	"errors"
	"fmt"
)

// Axis bounds for happiness and calmness.
const (
	MinValue = 0
	MaxValue = 100
)

// ErrInvalidMood is returned when happiness or calmness is outside [0, 100].
var ErrInvalidMood = errors.New("invalid mood")

// Input is a single mood sample.
type Input struct {
	Happiness int `json:"happiness"`
	Calmness  int `json:"calmness"`
}

// Validate reports whether the input lies in the valid domain.
func (in Input) Validate() error {
	return Validate(in.Happiness, in.Calmness)
}

// Validate checks both axes and wraps ErrInvalidMood with the offending field.
func Validate(happiness, calmness int) error {
	if happiness < MinValue || happiness > MaxValue {
		return fmt.Errorf("%w: happiness %d outside [%d,%d]", ErrInvalidMood, happiness, MinValue, MaxValue)
	}
	if calmness < MinValue || calmness > MaxValue {
		return fmt.Errorf("%w: calmness %d outside [%d,%d]", ErrInvalidMood, calmness, MinValue, MaxValue)
	}
	return nil
}

// Summary bundles everything the classifiers derive from one sample.
type Summary struct {
	Input
	Color           Color         `json:"color"`
	Gradient        string        `json:"gradient"`
	Label           Label         `json:"label"`
	Description     string        `json:"description"`
	MusicMoodType   MusicMoodType `json:"musicMoodType"`
	CoarseMusicType MusicMoodType `json:"coarseMusicMoodType"`
}

// Summarize runs every classifier over a valid sample.
func Summarize(happiness, calmness int) Summary {
	label := LabelOf(happiness, calmness)
	return Summary{
		Input:           Input{Happiness: happiness, Calmness: calmness},
		Color:           ColorOf(happiness, calmness),
		Gradient:        GradientOf(happiness, calmness),
		Label:           label,
		Description:     DescriptionOf(label),
		MusicMoodType:   MusicMoodTypeOf(happiness, calmness),
		CoarseMusicType: CoarseMusicMoodTypeOf(happiness, calmness),
	}
}
