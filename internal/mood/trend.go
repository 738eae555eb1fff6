package mood

// Direction of a single axis between two windows.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// Overall direction across both axes.
type Overall string

const (
	OverallImproving Overall = "improving"
	OverallDeclining Overall = "declining"
	OverallStable    Overall = "stable"
)

const (
	trendWindow    = 5
	trendThreshold = 5.0
)

// Trend compares the five most recent samples with the five before them.
type Trend struct {
	Happiness Direction `json:"happinessTrend"`
	Calmness  Direction `json:"calmnessTrend"`
	Overall   Overall   `json:"overallTrend"`
}

var stableTrend = Trend{Happiness: DirectionStable, Calmness: DirectionStable, Overall: OverallStable}

// TrendOf computes the trend over samples ordered newest first.
// Fewer than two samples, or nothing before the recent window, is stable.
func TrendOf(newestFirst []Input) Trend {
	if len(newestFirst) <= trendWindow {
		return stableTrend
	}
	recent := newestFirst[:trendWindow]
	older := newestFirst[trendWindow:min(2*trendWindow, len(newestFirst))]

	recentH, recentC := Averages(recent)
	olderH, olderC := Averages(older)
	dh := recentH - olderH
	dc := recentC - olderC

	t := Trend{
		Happiness: directionOf(dh),
		Calmness:  directionOf(dc),
		Overall:   OverallStable,
	}
	switch sum := dh + dc; {
	case sum > trendThreshold:
		t.Overall = OverallImproving
	case sum < -trendThreshold:
		t.Overall = OverallDeclining
	}
	return t
}

func directionOf(diff float64) Direction {
	switch {
	case diff > trendThreshold:
		return DirectionUp
	case diff < -trendThreshold:
		return DirectionDown
	default:
		return DirectionStable
	}
}

// Averages returns the mean happiness and calmness, or zero for no samples.
func Averages(samples []Input) (happiness, calmness float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	var h, c int
	for _, s := range samples {
		h += s.Happiness
		c += s.Calmness
	}
	n := float64(len(samples))
	return float64(h) / n, float64(c) / n
}
