package stats

import (
	"math"
	"time"

	"txboard/internal/core"
)

// Overview is the headline card set: one synchronous pass over the whole
// dataset each time the view renders.
type Overview struct {
	Count int

	// Settlement family.
	GrossVolume float64 // Σ |amount|
	TotalFees   float64 // Σ |fee|
	NetVolume   float64 // Σ net

	// Customer-facing family. Absent amounts count as zero here; rate and
	// currency metrics exclude them instead.
	CustomerVolume float64

	PaymentCount int
	PayoutCount  int

	// Size statistics over |customer-facing amount|.
	AvgSize    float64
	MedianSize float64
	StdDevSize float64
	MinSize    float64
	MaxSize    float64

	// Latency statistics in minutes, zero-filled for rows missing a
	// timestamp (see Transaction.LatencyMinutes).
	AvgLatency    float64
	MedianLatency float64

	// Observed created-timestamp range; zero times when nothing parsed.
	From, To time.Time
}

// Summarize folds the whole dataset once. NaN amounts from unparseable fields
// propagate into the sums unguarded; the UI renders "$NaN" in that case.
func Summarize(txns []core.Transaction) Overview {
	o := Overview{Count: len(txns)}

	sizes := make([]float64, 0, len(txns))
	latencies := make([]float64, 0, len(txns))
	for _, t := range txns {
		o.GrossVolume += math.Abs(t.Amount)
		o.TotalFees += math.Abs(t.Fee)
		o.NetVolume += t.Net
		o.CustomerVolume += math.Abs(t.CustomerAmount())

		switch t.Type {
		case core.Payment:
			o.PaymentCount++
		case core.Payout:
			o.PayoutCount++
		}

		sizes = append(sizes, math.Abs(t.CustomerAmount()))
		latencies = append(latencies, float64(t.LatencyMinutes()))

		if t.HasCreated() {
			if o.From.IsZero() || t.Created.Before(o.From) {
				o.From = t.Created
			}
			if o.To.IsZero() || t.Created.After(o.To) {
				o.To = t.Created
			}
		}
	}

	o.AvgSize = Mean(sizes)
	o.MedianSize = Median(sizes)
	o.StdDevSize = StdDev(sizes)
	o.MinSize, o.MaxSize = MinMax(sizes)
	o.AvgLatency = Mean(latencies)
	o.MedianLatency = Median(latencies)
	return o
}
