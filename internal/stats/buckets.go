package stats

import (
	"math"

	"txboard/internal/core"
)

// Value-segment boundaries for the size-distribution chart. Half-open
// intervals: a record lands in the first bucket whose upper bound its
// absolute customer-facing amount is strictly less than.
var valueBuckets = []struct {
	label string
	upper float64 // exclusive
}{
	{"$0-$100", 100},
	{"$100-$500", 500},
	{"$500-$1K", 1000},
	{"$1K-$5K", 5000},
	{"$5K+", math.Inf(1)},
}

// Latency buckets in minutes, upper bound inclusive to match the ≤ labels.
// The final >120 bucket makes the axis exhaustive.
var latencyBuckets = []struct {
	label string
	upper int // inclusive
}{
	{"≤5m", 5},
	{"≤15m", 15},
	{"≤30m", 30},
	{"≤60m", 60},
	{"≤120m", 120},
	{">120m", math.MaxInt},
}

// ValueDistribution buckets records by abs(customer-facing amount). An absent
// amount counts as zero and therefore lands in the first bucket, the same
// treatment volume sums give it, so the buckets stay a complete partition.
func ValueDistribution(txns []core.Transaction) []Group {
	keys := make([]string, len(valueBuckets))
	for i, b := range valueBuckets {
		keys[i] = b.label
	}
	return fixedOrder(GroupBy(txns, valueBucketKey, CustomerVolume), keys)
}

// LatencyDistribution buckets records by processing latency. Rows missing
// either timestamp contribute latency 0 (first bucket), not an exclusion.
func LatencyDistribution(txns []core.Transaction) []Group {
	keys := make([]string, len(latencyBuckets))
	for i, b := range latencyBuckets {
		keys[i] = b.label
	}
	return fixedOrder(GroupBy(txns, latencyBucketKey, CustomerVolume), keys)
}

// SpeedShare is the fast/medium/slow split of processing latency, as counts
// and percent-of-total. Thresholds: fast ≤15m, medium ≤60m, slow beyond.
type SpeedShare struct {
	Fast, Medium, Slow          int
	FastPct, MediumPct, SlowPct float64
}

// SpeedDistribution classifies every record by latency. Percentages are
// NaN for an empty input rather than an error.
func SpeedDistribution(txns []core.Transaction) SpeedShare {
	var s SpeedShare
	for _, t := range txns {
		switch m := t.LatencyMinutes(); {
		case m <= 15:
			s.Fast++
		case m <= 60:
			s.Medium++
		default:
			s.Slow++
		}
	}
	total := float64(len(txns))
	s.FastPct = PercentOf(float64(s.Fast), total)
	s.MediumPct = PercentOf(float64(s.Medium), total)
	s.SlowPct = PercentOf(float64(s.Slow), total)
	return s
}

func valueBucketKey(t core.Transaction) (string, bool) {
	v := math.Abs(t.CustomerAmount())
	for _, b := range valueBuckets {
		if v < b.upper {
			return b.label, true
		}
	}
	// Only reachable for NaN amounts; a record matching no bucket is dropped
	// rather than erroring.
	return "", false
}

func latencyBucketKey(t core.Transaction) (string, bool) {
	m := t.LatencyMinutes()
	for _, b := range latencyBuckets {
		if m <= b.upper {
			return b.label, true
		}
	}
	return "", false
}
