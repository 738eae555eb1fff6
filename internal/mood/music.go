package mood

// MusicMoodType is the catalog key used to look up songs.
type MusicMoodType string

const (
	MusicEuphoric      MusicMoodType = "euphoric"
	MusicEmpowering    MusicMoodType = "empowering"
	MusicPeaceful      MusicMoodType = "peaceful"
	MusicHopeful       MusicMoodType = "hopeful"
	MusicEnergetic     MusicMoodType = "energetic"
	MusicExcited       MusicMoodType = "excited"
	MusicPlayful       MusicMoodType = "playful"
	MusicHappy         MusicMoodType = "happy"
	MusicMotivational  MusicMoodType = "motivational"
	MusicCalm          MusicMoodType = "calm"
	MusicSoothing      MusicMoodType = "soothing"
	MusicContemplative MusicMoodType = "contemplative"
	MusicDreamy        MusicMoodType = "dreamy"
	MusicGentle        MusicMoodType = "gentle"
	MusicMelancholic   MusicMoodType = "melancholic"
	MusicSad           MusicMoodType = "sad"
	MusicAnxious       MusicMoodType = "anxious"
	MusicMysterious    MusicMoodType = "mysterious"
	MusicSpiritual     MusicMoodType = "spiritual"
	MusicDramatic      MusicMoodType = "dramatic"
	MusicRomantic      MusicMoodType = "romantic"
	MusicNostalgic     MusicMoodType = "nostalgic"
)

// MusicMoodTypes lists every known mood type.
var MusicMoodTypes = []MusicMoodType{
	MusicEuphoric, MusicEmpowering, MusicPeaceful, MusicHopeful,
	MusicEnergetic, MusicExcited, MusicPlayful, MusicHappy,
	MusicMotivational, MusicCalm, MusicSoothing, MusicContemplative,
	MusicDreamy, MusicGentle, MusicMelancholic, MusicSad,
	MusicAnxious, MusicMysterious, MusicSpiritual, MusicDramatic,
	MusicRomantic, MusicNostalgic,
}

// IsKnown reports whether t is one of MusicMoodTypes.
func (t MusicMoodType) IsKnown() bool {
	for _, known := range MusicMoodTypes {
		if t == known {
			return true
		}
	}
	return false
}

type musicRule struct {
	match    func(h, c int) bool
	moodType MusicMoodType
}

func between(v, lo, hi int) bool { return v >= lo && v <= hi }

// musicRules overlap; the first match wins, so order matters.
var musicRules = []musicRule{
	{func(h, c int) bool { return h >= 90 && c <= 30 }, MusicEuphoric},
	{func(h, c int) bool { return h >= 80 && between(c, 40, 60) }, MusicEmpowering},
	{func(h, c int) bool { return h >= 70 && c >= 80 }, MusicPeaceful},
	{func(h, c int) bool { return h >= 70 && between(c, 50, 80) }, MusicHopeful},
	{func(h, c int) bool { return h >= 65 && c <= 40 }, MusicEnergetic},
	{func(h, c int) bool { return h >= 60 && c <= 30 }, MusicExcited},
	{func(h, c int) bool { return h >= 60 && between(c, 30, 50) }, MusicPlayful},
	{func(h, c int) bool { return h >= 60 }, MusicHappy},
	{func(h, c int) bool { return h >= 50 && c <= 40 }, MusicMotivational},
	{func(h, c int) bool { return c >= 70 && h >= 40 }, MusicCalm},
	{func(h, c int) bool { return c >= 80 && h < 50 }, MusicSoothing},
	{func(h, c int) bool { return between(h, 40, 60) && between(c, 50, 70) }, MusicContemplative},
	{func(h, c int) bool { return between(h, 45, 65) && c >= 75 }, MusicDreamy},
	{func(h, c int) bool { return between(h, 35, 50) && c >= 60 }, MusicGentle},
	{func(h, c int) bool { return h < 40 && between(c, 50, 70) }, MusicMelancholic},
	{func(h, c int) bool { return h < 40 && c >= 40 }, MusicSad},
	{func(h, c int) bool { return h < 45 && c < 40 }, MusicAnxious},
	{func(h, c int) bool { return h < 50 && c >= 30 && c < 50 }, MusicMysterious},
	{func(h, c int) bool { return between(h, 45, 70) && c >= 80 }, MusicSpiritual},
	{func(h, c int) bool { return (h <= 30 || h >= 80) && c <= 50 }, MusicDramatic},
	{func(h, c int) bool { return between(h, 55, 75) && between(c, 45, 65) }, MusicRomantic},
	{func(h, c int) bool { return between(h, 45, 65) && between(c, 55, 75) }, MusicNostalgic},
}

// MusicMoodTypeOf returns the fine-grained music category for a sample.
// Samples no rule matches are peaceful.
func MusicMoodTypeOf(happiness, calmness int) MusicMoodType {
	for _, rule := range musicRules {
		if rule.match(happiness, calmness) {
			return rule.moodType
		}
	}
	return MusicPeaceful
}

// CoarseMusicMoodTypeOf is the six-branch classifier behind the dashboard
// preview.
func CoarseMusicMoodTypeOf(happiness, calmness int) MusicMoodType {
	switch {
	case happiness >= 70 && calmness >= 70:
		return MusicPeaceful
	case happiness >= 70:
		return MusicHappy
	case happiness < 40 && calmness < 40:
		return MusicAnxious
	case happiness < 40:
		return MusicSad
	case calmness >= 70:
		return MusicCalm
	default:
		return MusicHappy
	}
}

// RequestMusicMoodTypeOf picks the catalog category for a recommendation
// request that names no mood type. It shares the coarse branches but calls
// any sample at 60 or above happy.
func RequestMusicMoodTypeOf(happiness, calmness int) MusicMoodType {
	switch {
	case happiness >= 70 && calmness >= 70:
		return MusicPeaceful
	case happiness >= 60:
		return MusicHappy
	default:
		return CoarseMusicMoodTypeOf(happiness, calmness)
	}
}
