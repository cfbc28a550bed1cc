package stats

import (
	"fmt"
	"sort"
	"time"

	"txboard/internal/core"
)

var weekdayOrder = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// DailyVolume groups customer-facing volume by calendar day of creation,
// in chronological order, with per-day size statistics. Rows without a
// parseable created timestamp are silently excluded.
func DailyVolume(txns []core.Transaction) []GroupSummary {
	return summariesByKey(GroupStats(txns, dayKey, CustomerVolume))
}

// HourlyActivity groups customer-facing volume by hour of day with per-hour
// size statistics. All 24 slots are emitted, ordered lexicographically on
// the "HH:00" label; empty hours carry NaN statistics.
func HourlyActivity(txns []core.Transaction) []GroupSummary {
	keys := make([]string, 24)
	for h := range keys {
		keys[h] = fmt.Sprintf("%02d:00", h)
	}
	return summariesFixedOrder(GroupStats(txns, hourKey, CustomerVolume), keys)
}

// WeekdayActivity groups customer-facing volume by weekday name. The result
// always has exactly 7 entries in Sunday→Saturday order; days with no
// transactions carry count 0, and their AvgSize is NaN by definition.
func WeekdayActivity(txns []core.Transaction) []Group {
	return fixedOrder(GroupBy(txns, weekdayKey, CustomerVolume), weekdayOrder)
}

// MonthStat is one month of the settlement-volume trend, with per-month
// size statistics.
type MonthStat struct {
	GroupSummary
	Month time.Time // first instant of the month, UTC
	// Growth is the month-over-month volume change in percent. The first
	// month and a zero previous month yield NaN/Infinity, rendered as-is.
	Growth float64
}

// MonthlyTrend groups settlement volume by calendar month, chronologically,
// and derives month-over-month growth between adjacent entries.
func MonthlyTrend(txns []core.Transaction) []MonthStat {
	groups := GroupStats(txns, monthKey, SettlementVolume)
	out := make([]MonthStat, 0, len(groups))
	for k, g := range groups {
		month, err := time.Parse("2006-01", k)
		if err != nil {
			continue
		}
		out = append(out, MonthStat{GroupSummary: *g, Month: month})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	for i := range out {
		if i == 0 {
			out[i].Growth = GrowthRate(out[i].Volume, 0) // NaN or Infinity
			continue
		}
		out[i].Growth = GrowthRate(out[i].Volume, out[i-1].Volume)
	}
	return out
}

// PeakDays ranks calendar days by descending customer-facing volume and
// returns at most n of them.
func PeakDays(txns []core.Transaction, n int) []Group {
	ranked := sortedByVolume(GroupBy(txns, dayKey, CustomerVolume))
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// VelocityPerDay is the mean number of transactions per distinct active day.
// NaN when no record carries a parseable created timestamp.
func VelocityPerDay(txns []core.Transaction) float64 {
	groups := GroupBy(txns, dayKey, CustomerVolume)
	var total int
	for _, g := range groups {
		total += g.Count
	}
	return float64(total) / float64(len(groups))
}

func dayKey(t core.Transaction) (string, bool) {
	if !t.HasCreated() {
		return "", false
	}
	return t.Created.Format("2006-01-02"), true
}

func hourKey(t core.Transaction) (string, bool) {
	if !t.HasCreated() {
		return "", false
	}
	return t.Created.Format("15") + ":00", true
}

func weekdayKey(t core.Transaction) (string, bool) {
	if !t.HasCreated() {
		return "", false
	}
	return t.Created.Weekday().String(), true
}

func monthKey(t core.Transaction) (string, bool) {
	if !t.HasCreated() {
		return "", false
	}
	return t.Created.Format("2006-01"), true
}
