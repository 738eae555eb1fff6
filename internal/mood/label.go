package mood

// Label names a region of the happiness/calmness plane.
type Label string

const (
	LabelJoyfulPeaceful   Label = "Joyful & Peaceful"
	LabelHappyContent     Label = "Happy & Content"
	LabelExcitedEnergetic Label = "Excited & Energetic"
	LabelCalmBalanced     Label = "Calm & Balanced"
	LabelNeutralStable    Label = "Neutral & Stable"
	LabelRestless         Label = "Restless"
	LabelSadPeaceful      Label = "Sad but Peaceful"
	LabelMelancholy       Label = "Melancholy"
	LabelAnxiousTroubled  Label = "Anxious & Troubled"
)

// Labels lists every label in classification order.
var Labels = []Label{
	LabelJoyfulPeaceful,
	LabelHappyContent,
	LabelExcitedEnergetic,
	LabelCalmBalanced,
	LabelNeutralStable,
	LabelRestless,
	LabelSadPeaceful,
	LabelMelancholy,
	LabelAnxiousTroubled,
}

const defaultDescription = "Your current emotional state"

var descriptions = map[Label]string{
	LabelJoyfulPeaceful:   "You're in a wonderful state of happiness and tranquility",
	LabelHappyContent:     "You're feeling positive and satisfied with life",
	LabelExcitedEnergetic: "You're buzzing with enthusiasm and energy",
	LabelCalmBalanced:     "You're in a peaceful and centered state of mind",
	LabelNeutralStable:    "You're feeling balanced and steady",
	LabelRestless:         "You might be feeling a bit unsettled or eager for change",
	LabelSadPeaceful:      "You're experiencing sadness but with inner peace",
	LabelMelancholy:       "You're feeling a gentle sadness or pensiveness",
	LabelAnxiousTroubled:  "You might be feeling overwhelmed or worried",
}

// LabelOf classifies a sample into one of nine labels using thresholds at
// 40 and 70 on the raw values. The branches partition [0,100]².
func LabelOf(happiness, calmness int) Label {
	switch {
	case happiness >= 70 && calmness >= 70:
		return LabelJoyfulPeaceful
	case happiness >= 70 && calmness >= 40:
		return LabelHappyContent
	case happiness >= 70:
		return LabelExcitedEnergetic
	case happiness >= 40 && calmness >= 70:
		return LabelCalmBalanced
	case happiness >= 40 && calmness >= 40:
		return LabelNeutralStable
	case happiness >= 40:
		return LabelRestless
	case calmness >= 70:
		return LabelSadPeaceful
	case calmness >= 40:
		return LabelMelancholy
	default:
		return LabelAnxiousTroubled
	}
}

// DescriptionOf returns the sentence shown under a label.
func DescriptionOf(label Label) string {
	if d, ok := descriptions[label]; ok {
		return d
	}
	return defaultDescription
}

// Describe returns the label and description for a sample.
func Describe(happiness, calmness int) (Label, string) {
	label := LabelOf(happiness, calmness)
	return label, DescriptionOf(label)
}
