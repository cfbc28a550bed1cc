package charts

import (
	"math"
	"strconv"

	"txboard/internal/core"
	"txboard/internal/stats"
)

// SummaryCards carries the formatted scalars the dashboard's stat cards show.
// Everything is pre-formatted: the templates print these verbatim, including
// "$NaN" / "NaN%" for metrics poisoned by malformed rows.
type SummaryCards struct {
	TransactionCount string
	GrossVolume      string
	CustomerVolume   string
	TotalFees        string
	NetVolume        string

	PaymentShare string // percent of records that are payments
	PayoutShare  string

	AvgSize    string
	MedianSize string
	StdDevSize string
	MinSize    string
	MaxSize    string

	AvgLatency    string // minutes
	MedianLatency string

	VelocityPerDay string

	// ExchangeRate is the volume-weighted settlement/customer USD rate.
	// "n/a" when no record qualifies: absence of data, not a zero rate.
	ExchangeRate string

	MonthGrowth string // latest month-over-month volume change

	PeriodFrom string
	PeriodTo   string
}

// BuildSummaryCards folds the dataset once and formats every headline metric.
func BuildSummaryCards(txns []core.Transaction) SummaryCards {
	o := stats.Summarize(txns)

	cards := SummaryCards{
		TransactionCount: core.FormatCount(o.Count),
		GrossVolume:      core.FormatUSD(o.GrossVolume),
		CustomerVolume:   core.FormatUSD(o.CustomerVolume),
		TotalFees:        core.FormatUSD(o.TotalFees),
		NetVolume:        core.FormatUSD(o.NetVolume),
		PaymentShare:     core.FormatPercent(stats.PercentOf(float64(o.PaymentCount), float64(o.Count))),
		PayoutShare:      core.FormatPercent(stats.PercentOf(float64(o.PayoutCount), float64(o.Count))),
		AvgSize:          core.FormatUSD(o.AvgSize),
		MedianSize:       core.FormatUSD(o.MedianSize),
		StdDevSize:       core.FormatUSD(o.StdDevSize),
		MinSize:          core.FormatUSD(o.MinSize),
		MaxSize:          core.FormatUSD(o.MaxSize),
		AvgLatency:       formatMinutes(o.AvgLatency),
		MedianLatency:    formatMinutes(o.MedianLatency),
		VelocityPerDay:   formatFloat(stats.VelocityPerDay(txns)),
		ExchangeRate:     "n/a",
		MonthGrowth:      "n/a",
	}

	if rate, ok := stats.VolumeWeightedUSDRate(txns); ok {
		cards.ExchangeRate = strconv.FormatFloat(rate, 'f', 4, 64)
	}
	if trend := stats.MonthlyTrend(txns); len(trend) >= 2 {
		cards.MonthGrowth = core.FormatPercent(trend[len(trend)-1].Growth)
	}
	if !o.From.IsZero() {
		cards.PeriodFrom = o.From.Format("Jan 2, 2006")
		cards.PeriodTo = o.To.Format("Jan 2, 2006")
	}
	return cards
}

// formatMinutes renders a latency in minutes without a unit suffix; the
// templates attach it.
func formatMinutes(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
