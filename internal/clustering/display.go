package clustering

import (
	"fmt"
	"strings"
)

const (
	sampleEntryCount = 3
	dateFormat       = "2006-01-02"
)

// FormatPhaseSummary returns a human-readable summary of detected phases.
// Shows date range, entry count, centroid and the first 3 entries of each
// phase. Outliers are summarized by count only.
func FormatPhaseSummary(phases []Phase, outliers []Entry) string {
	var sb strings.Builder

	total := len(outliers)
	for _, p := range phases {
		total += len(p.Entries)
	}

	if len(phases) == 0 {
		sb.WriteString(fmt.Sprintf("No mood phases found from %d entries", total))
		if len(outliers) > 0 {
			sb.WriteString(fmt.Sprintf(" (%d outliers skipped)", len(outliers)))
		}
		sb.WriteString("\n")
		return sb.String()
	}

	phaseWord := "phase"
	if len(phases) > 1 {
		phaseWord = "phases"
	}

	sb.WriteString(fmt.Sprintf("Found %d mood %s from %d entries", len(phases), phaseWord, total))
	if len(outliers) > 0 {
		sb.WriteString(fmt.Sprintf(" (%d outliers skipped)", len(outliers)))
	}
	sb.WriteString("\n")

	for i, p := range phases {
		sb.WriteString("\n")
		sb.WriteString(formatPhase(i+1, p))
	}

	return sb.String()
}

func formatPhase(num int, p Phase) string {
	var sb strings.Builder

	entryWord := "entry"
	if len(p.Entries) > 1 {
		entryWord = "entries"
	}

	sb.WriteString(fmt.Sprintf("Phase %d: %s, %s to %s (%d %s)\n",
		num, p.Label, p.StartDate.Format(dateFormat), p.EndDate.Format(dateFormat), len(p.Entries), entryWord))
	sb.WriteString(fmt.Sprintf("  center happiness=%d calmness=%d %s\n",
		p.Centroid.Happiness, p.Centroid.Calmness, p.Color.Hex))

	for _, e := range p.Entries[:min(sampleEntryCount, len(p.Entries))] {
		sb.WriteString(fmt.Sprintf("  • %s happiness=%d calmness=%d\n",
			e.Timestamp.Format(dateFormat), e.Happiness, e.Calmness))
	}

	if remaining := len(p.Entries) - sampleEntryCount; remaining > 0 {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", remaining))
	}

	return sb.String()
}
