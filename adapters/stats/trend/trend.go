package trend

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"teampulse/domain/analytics"
)

// DisplayWindow caps trend series to the most recent buckets present.
// Days with no activity are absent from the series, not zero-filled.
const DisplayWindow = 7

// slopeThreshold separates up/down from stable
const slopeThreshold = 0.05

// Event is one timestamped observation feeding a daily trend
type Event struct {
	At    time.Time
	Value float64
}

// dayOf truncates t to its UTC calendar day so same-day events share a bucket
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DailyMeans buckets events by calendar day and averages each bucket.
// The result is sorted ascending by date and capped to DisplayWindow.
func DailyMeans(events []Event) []analytics.TrendPoint {
	byDay := make(map[time.Time][]float64)
	for _, e := range events {
		day := dayOf(e.At)
		byDay[day] = append(byDay[day], e.Value)
	}

	points := make([]analytics.TrendPoint, 0, len(byDay))
	for day, values := range byDay {
		mean, err := stats.Mean(values)
		if err != nil {
			continue
		}
		points = append(points, analytics.TrendPoint{Date: day, Value: mean})
	}
	return capWindow(sortByDate(points))
}

// DailyCounts buckets events by calendar day and counts each bucket.
func DailyCounts(times []time.Time) []analytics.TrendPoint {
	byDay := make(map[time.Time]float64)
	for _, t := range times {
		byDay[dayOf(t)]++
	}

	points := make([]analytics.TrendPoint, 0, len(byDay))
	for day, count := range byDay {
		points = append(points, analytics.TrendPoint{Date: day, Value: count})
	}
	return capWindow(sortByDate(points))
}

func sortByDate(points []analytics.TrendPoint) []analytics.TrendPoint {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

func capWindow(points []analytics.TrendPoint) []analytics.TrendPoint {
	if len(points) > DisplayWindow {
		return points[len(points)-DisplayWindow:]
	}
	return points
}

// Slope fits an ordinary least squares line through the series, treating the
// point index as x. Returns 0 for fewer than 2 points or a degenerate fit.
func Slope(points []analytics.TrendPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Value
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return 0
	}
	return beta
}

// Classify maps a series to its direction: slope above +0.05 is up, below
// -0.05 is down, anything else (including short series) is stable.
func Classify(points []analytics.TrendPoint) analytics.TrendDirection {
	if len(points) < 2 {
		return analytics.TrendStable
	}
	slope := Slope(points)
	switch {
	case slope > slopeThreshold:
		return analytics.TrendUp
	case slope < -slopeThreshold:
		return analytics.TrendDown
	default:
		return analytics.TrendStable
	}
}

// Correlate computes the Pearson correlation between two daily series after
// aligning them by calendar date. Points present in only one series are
// dropped; fewer than 2 aligned pairs or a zero-variance side yields 0.
func Correlate(a, b []analytics.TrendPoint) float64 {
	byDay := make(map[time.Time]float64, len(b))
	for _, p := range b {
		byDay[dayOf(p.Date)] = p.Value
	}

	var xs, ys []float64
	for _, p := range a {
		if v, ok := byDay[dayOf(p.Date)]; ok {
			xs = append(xs, p.Value)
			ys = append(ys, v)
		}
	}
	if len(xs) < 2 {
		return 0
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Project extends a metric along its fitted slope, clamped into [min, max].
// Two periods ahead is the dashboard convention.
func Project(current, slope float64, periodsAhead int, min, max float64) float64 {
	projected := current + slope*float64(periodsAhead)
	if projected < min {
		return min
	}
	if projected > max {
		return max
	}
	return projected
}
