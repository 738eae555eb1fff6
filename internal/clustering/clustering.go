// Package clustering groups a listener's mood entries into mood phases using
// k-means over the happiness/calmness plane.
package clustering

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-moodtune/internal/mood"
)

// Entry is the part of a mood entry the clustering needs.
type Entry struct {
	ID        string    `json:"id"`
	Happiness int       `json:"happiness"`
	Calmness  int       `json:"calmness"`
	Timestamp time.Time `json:"timestamp"`
}

// Config holds clustering parameters.
type Config struct {
	NumClusters    int // Number of clusters to create (default: 3)
	MinClusterSize int // Minimum entries per phase (smaller clusters become outliers)
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		NumClusters:    3,
		MinClusterSize: 3,
	}
}

// Phase is a cluster of entries with a similar mood.
type Phase struct {
	Name        string     `json:"name"`        // "Calm & Balanced: Jan 15 - Feb 3, 2024"
	Label       mood.Label `json:"label"`       // Label of the centroid
	Description string     `json:"description"` // Description of the label
	Centroid    mood.Input `json:"centroid"`    // Rounded cluster center
	Color       mood.Color `json:"color"`       // Color of the centroid
	Entries     []Entry    `json:"entries"`     // Sorted oldest first
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
}

// entryObservation wraps an Entry to implement clusters.Observation.
type entryObservation struct {
	entry  *Entry
	coords clusters.Coordinates
}

func (o entryObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o entryObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// DetectPhases clusters entries by mood similarity.
// Returns phases sorted by start date (most recent first) and the entries
// that did not fit a phase. The input slice is not modified.
func DetectPhases(entries []Entry, cfg Config) ([]Phase, []Entry, error) {
	if len(entries) == 0 {
		return nil, nil, nil
	}

	if cfg.NumClusters <= 0 {
		cfg.NumClusters = DefaultConfig().NumClusters
	}
	if cfg.MinClusterSize <= 0 {
		cfg.MinClusterSize = DefaultConfig().MinClusterSize
	}

	// Too few entries to cluster: everything is an outlier
	if len(entries) < cfg.NumClusters {
		return nil, slices.Clone(entries), nil
	}

	var obs clusters.Observations
	for i := range entries {
		e := &entries[i]
		obs = append(obs, entryObservation{entry: e, coords: coordinatesOf(e)})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, cfg.NumClusters)
	if err != nil {
		return nil, nil, fmt.Errorf("partitioning %d entries: %w", len(entries), err)
	}

	var phases []Phase
	var outliers []Entry

	for _, cluster := range result {
		var members []Entry
		for _, o := range cluster.Observations {
			if eo, ok := o.(entryObservation); ok {
				members = append(members, *eo.entry)
			}
		}

		if len(members) == 0 {
			continue
		}
		if len(members) < cfg.MinClusterSize {
			outliers = append(outliers, members...)
			continue
		}

		slices.SortFunc(members, func(a, b Entry) int {
			return a.Timestamp.Compare(b.Timestamp)
		})

		centroid := centroidOf(cluster.Center)
		label, description := mood.Describe(centroid.Happiness, centroid.Calmness)
		start := members[0].Timestamp
		end := members[len(members)-1].Timestamp

		phases = append(phases, Phase{
			Name:        formatPhaseName(label, start, end),
			Label:       label,
			Description: description,
			Centroid:    centroid,
			Color:       mood.ColorOf(centroid.Happiness, centroid.Calmness),
			Entries:     members,
			StartDate:   start,
			EndDate:     end,
		})
	}

	slices.SortFunc(phases, func(a, b Phase) int {
		return b.StartDate.Compare(a.StartDate) // Descending
	})

	return phases, outliers, nil
}

// coordinatesOf scales an entry onto the unit square.
func coordinatesOf(e *Entry) clusters.Coordinates {
	return clusters.Coordinates{
		float64(e.Happiness) / 100,
		float64(e.Calmness) / 100,
	}
}

// centroidOf maps a cluster center back onto the [0,100] mood axes.
func centroidOf(center clusters.Coordinates) mood.Input {
	axis := func(v float64) int {
		return min(mood.MaxValue, max(mood.MinValue, int(math.Round(v*100))))
	}
	if len(center) < 2 {
		return mood.Input{}
	}
	return mood.Input{Happiness: axis(center[0]), Calmness: axis(center[1])}
}

// formatPhaseName combines a label with a date range.
func formatPhaseName(label mood.Label, start, end time.Time) string {
	const dateFormat = "Jan 2, 2006"
	startStr := start.Format(dateFormat)
	endStr := end.Format(dateFormat)

	if startStr == endStr {
		return fmt.Sprintf("%s: %s", label, startStr)
	}
	return fmt.Sprintf("%s: %s - %s", label, startStr, endStr)
}
