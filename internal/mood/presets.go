package mood

import "sort"

// Presets are the quick-mood buttons. A tag alone is enough to create an
// entry; the preset supplies both axes.
var Presets = map[string]Input{
	"happy":    {Happiness: 80, Calmness: 70},
	"sad":      {Happiness: 20, Calmness: 40},
	"anxious":  {Happiness: 30, Calmness: 15},
	"calm":     {Happiness: 60, Calmness: 85},
	"excited":  {Happiness: 90, Calmness: 40},
	"tired":    {Happiness: 30, Calmness: 80},
	"angry":    {Happiness: 25, Calmness: 20},
	"peaceful": {Happiness: 70, Calmness: 90},
}

// PresetFor looks up a quick-mood tag.
func PresetFor(tag string) (Input, bool) {
	in, ok := Presets[tag]
	return in, ok
}

// PresetNames returns the quick-mood tags sorted by name.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
