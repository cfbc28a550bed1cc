// Package charts converts engine output into the label/series payloads the
// dashboard front-end feeds to Chart.js, plus the formatted scalars shown on
// summary cards. It is purely derivative of the stats package: no math here
// beyond formatting.
package charts

import (
	"math"

	"txboard/internal/core"
	"txboard/internal/stats"
)

// Point is one chart value. Non-finite engine output (NaN, Infinity) is
// carried as null: encoding/json refuses NaN, and Chart.js draws null as a
// gap, which is the documented "no data" rendering.
type Point *float64

// Dataset is one drawable series.
type Dataset struct {
	Label string  `json:"label"`
	Data  []Point `json:"data"`
}

// Series is a Chart.js-shaped payload: ordered labels plus one or more
// aligned numeric series.
type Series struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// DailyVolume charts customer-facing volume per calendar day, with the
// per-day median size as a second series.
func DailyVolume(txns []core.Transaction) Series {
	groups := stats.DailyVolume(txns)
	return Series{
		Labels: summaryLabels(groups),
		Datasets: []Dataset{
			{Label: "Volume", Data: summaryVolumes(groups)},
			{Label: "Median size", Data: summaryMedians(groups)},
		},
	}
}

// HourlyActivity charts count, volume and median size per hour of day.
// Empty hours carry null statistics.
func HourlyActivity(txns []core.Transaction) Series {
	groups := stats.HourlyActivity(txns)
	return Series{
		Labels: summaryLabels(groups),
		Datasets: []Dataset{
			{Label: "Transactions", Data: summaryCounts(groups)},
			{Label: "Volume", Data: summaryVolumes(groups)},
			{Label: "Median size", Data: summaryMedians(groups)},
		},
	}
}

// WeekdayActivity charts count and volume per weekday, Sunday through
// Saturday, with zero-filled slots for quiet days.
func WeekdayActivity(txns []core.Transaction) Series {
	groups := stats.WeekdayActivity(txns)
	return Series{
		Labels: labels(groups),
		Datasets: []Dataset{
			{Label: "Transactions", Data: counts(groups)},
			{Label: "Volume", Data: volumes(groups)},
		},
	}
}

// MonthlyTrend charts settlement volume per month alongside the
// month-over-month growth series. Growth of the first month is NaN or
// Infinity and therefore serialized as null.
func MonthlyTrend(txns []core.Transaction) Series {
	trend := stats.MonthlyTrend(txns)
	s := Series{
		Labels: make([]string, len(trend)),
		Datasets: []Dataset{
			{Label: "Volume", Data: make([]Point, len(trend))},
			{Label: "Growth %", Data: make([]Point, len(trend))},
			{Label: "Median size", Data: make([]Point, len(trend))},
		},
	}
	for i, m := range trend {
		s.Labels[i] = m.Month.Format("Jan 2006")
		s.Datasets[0].Data[i] = point(m.Volume)
		s.Datasets[1].Data[i] = point(m.Growth)
		s.Datasets[2].Data[i] = point(m.Median)
	}
	return s
}

// CurrencyMix charts customer-facing volume per currency, largest first.
func CurrencyMix(txns []core.Transaction) Series {
	return fromGroups(stats.CurrencyMix(txns), "Volume")
}

// ValueDistribution charts how many transactions fall into each value
// segment.
func ValueDistribution(txns []core.Transaction) Series {
	groups := stats.ValueDistribution(txns)
	return Series{
		Labels:   labels(groups),
		Datasets: []Dataset{{Label: "Transactions", Data: counts(groups)}},
	}
}

// LatencyDistribution charts how many transactions settle within each
// processing-time bucket.
func LatencyDistribution(txns []core.Transaction) Series {
	groups := stats.LatencyDistribution(txns)
	return Series{
		Labels:   labels(groups),
		Datasets: []Dataset{{Label: "Transactions", Data: counts(groups)}},
	}
}

// SettlementSpeed charts the fast/medium/slow latency split as counts.
func SettlementSpeed(txns []core.Transaction) Series {
	s := stats.SpeedDistribution(txns)
	return Series{
		Labels: []string{"Fast (≤15m)", "Medium (≤60m)", "Slow (>60m)"},
		Datasets: []Dataset{{
			Label: "Transactions",
			Data: []Point{
				point(float64(s.Fast)),
				point(float64(s.Medium)),
				point(float64(s.Slow)),
			},
		}},
	}
}

// PeakDays charts the five busiest days by customer-facing volume.
func PeakDays(txns []core.Transaction) Series {
	groups := stats.PeakDays(txns, 5)
	return Series{
		Labels: labels(groups),
		Datasets: []Dataset{
			{Label: "Volume", Data: volumes(groups)},
			{Label: "Transactions", Data: counts(groups)},
		},
	}
}

// point carries a finite value through to JSON and turns NaN/Inf into null.
func point(v float64) Point {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func fromGroups(groups []stats.Group, label string) Series {
	return Series{
		Labels:   labels(groups),
		Datasets: []Dataset{{Label: label, Data: volumes(groups)}},
	}
}

func labels(groups []stats.Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

func volumes(groups []stats.Group) []Point {
	out := make([]Point, len(groups))
	for i, g := range groups {
		out[i] = point(g.Volume)
	}
	return out
}

func counts(groups []stats.Group) []Point {
	out := make([]Point, len(groups))
	for i, g := range groups {
		out[i] = point(float64(g.Count))
	}
	return out
}

func summaryLabels(groups []stats.GroupSummary) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

func summaryVolumes(groups []stats.GroupSummary) []Point {
	out := make([]Point, len(groups))
	for i, g := range groups {
		out[i] = point(g.Volume)
	}
	return out
}

func summaryCounts(groups []stats.GroupSummary) []Point {
	out := make([]Point, len(groups))
	for i, g := range groups {
		out[i] = point(float64(g.Count))
	}
	return out
}

func summaryMedians(groups []stats.GroupSummary) []Point {
	out := make([]Point, len(groups))
	for i, g := range groups {
		out[i] = point(g.Median)
	}
	return out
}
