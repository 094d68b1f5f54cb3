package analytics

import (
	"fmt"
	"time"
)

// Granularity selects how far back a reporting window reaches
type Granularity string

const (
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
)

// ParseGranularity parses a string into a Granularity
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityWeek, GranularityMonth, GranularityQuarter:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// start computes the window start for a window ending at end
func (g Granularity) start(end time.Time) time.Time {
	switch g {
	case GranularityMonth:
		return end.AddDate(0, -1, 0)
	case GranularityQuarter:
		return end.AddDate(0, -3, 0)
	default:
		return end.AddDate(0, 0, -7)
	}
}

// ResolveRange returns the current reporting window: week is 7 days back,
// month one calendar month back, quarter three, always ending at now.
func ResolveRange(g Granularity, now time.Time) DateRange {
	return DateRange{Start: g.start(now), End: now}
}

// ResolvePreviousRange returns the equal-width window immediately preceding
// the current one. The width is taken from the current range rather than
// recomputed with calendar arithmetic, so the two windows are contiguous,
// non-overlapping, and exactly the same length even across month boundaries.
func ResolvePreviousRange(g Granularity, now time.Time) DateRange {
	current := ResolveRange(g, now)
	width := current.End.Sub(current.Start)
	return DateRange{Start: current.Start.Add(-width), End: current.Start}
}
