package stats

import (
	"math"
	"sort"

	"txboard/internal/core"
)

// Group is one accumulator bucket of a grouping: how many records fell under
// the key and how much volume they carried.
type Group struct {
	Key    string
	Count  int
	Volume float64
}

// AvgSize is volume/count. A zero-count group yields NaN, never a panic.
func (g Group) AvgSize() float64 {
	return g.Volume / float64(g.Count)
}

// KeyFunc extracts a grouping key from a record. ok=false excludes the record
// from the grouping entirely (e.g. an unparseable created timestamp for a
// time-bucketed grouping).
type KeyFunc func(core.Transaction) (key string, ok bool)

// VolumeFunc selects which metric family a grouping folds. The export
// carries two families, customer-facing volume and settlement volume, and
// they are not interchangeable; each call site fixes one.
type VolumeFunc func(core.Transaction) float64

// CustomerVolume is the customer-facing family: abs of the customer-facing
// amount, with an absent field counted as zero.
func CustomerVolume(t core.Transaction) float64 {
	return math.Abs(t.CustomerAmount())
}

// SettlementVolume is the settlement family: abs of the settlement amount.
func SettlementVolume(t core.Transaction) float64 {
	return math.Abs(t.Amount)
}

// GroupSummary is a Group plus the distribution statistics of its member
// values. The time-series groupings (day, hour, month) carry these; purely
// categorical groupings only need the plain Group accumulator.
type GroupSummary struct {
	Group
	Mean   float64
	Median float64 // upper-middle element for even-length groups
	StdDev float64 // population, not sample
}

// GroupStats folds like GroupBy but retains every group's member values so
// a second pass can derive the per-group median and std-dev once the fold
// completes.
func GroupStats(txns []core.Transaction, key KeyFunc, volume VolumeFunc) map[string]*GroupSummary {
	values := make(map[string][]float64)
	for _, t := range txns {
		k, ok := key(t)
		if !ok {
			continue
		}
		values[k] = append(values[k], volume(t))
	}
	groups := make(map[string]*GroupSummary, len(values))
	for k, vs := range values {
		var total float64
		for _, v := range vs {
			total += v
		}
		groups[k] = &GroupSummary{
			Group:  Group{Key: k, Count: len(vs), Volume: total},
			Mean:   Mean(vs),
			Median: Median(vs),
			StdDev: StdDev(vs),
		}
	}
	return groups
}

// GroupBy folds records into per-key accumulators. All time-unit groupings
// share this single fold; derived statistics are computed afterwards in a
// second pass by the callers.
func GroupBy(txns []core.Transaction, key KeyFunc, volume VolumeFunc) map[string]*Group {
	groups := make(map[string]*Group)
	for _, t := range txns {
		k, ok := key(t)
		if !ok {
			continue
		}
		g, exists := groups[k]
		if !exists {
			g = &Group{Key: k}
			groups[k] = g
		}
		g.Count++
		g.Volume += volume(t)
	}
	return groups
}

// sortedByVolume flattens a grouping into descending volume order, used for
// peak/top-N rankings. Ties break on key for a stable result.
func sortedByVolume(groups map[string]*Group) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Volume != out[j].Volume {
			return out[i].Volume > out[j].Volume
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// summariesByKey flattens a stats-carrying grouping into natural key order.
func summariesByKey(groups map[string]*GroupSummary) []GroupSummary {
	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// summariesFixedOrder is fixedOrder for stats-carrying groupings. Empty
// slots carry NaN statistics, matching what the primitives return for an
// empty value list.
func summariesFixedOrder(groups map[string]*GroupSummary, keys []string) []GroupSummary {
	out := make([]GroupSummary, 0, len(keys))
	for _, k := range keys {
		if g, ok := groups[k]; ok {
			out = append(out, *g)
		} else {
			out = append(out, GroupSummary{
				Group:  Group{Key: k},
				Mean:   math.NaN(),
				Median: math.NaN(),
				StdDev: math.NaN(),
			})
		}
	}
	return out
}

// fixedOrder flattens a grouping into a caller-supplied key sequence,
// emitting a zero-valued Group for keys with no records so that exhaustive
// axes (weekday, hour of day) always render every slot.
func fixedOrder(groups map[string]*Group, keys []string) []Group {
	out := make([]Group, 0, len(keys))
	for _, k := range keys {
		if g, ok := groups[k]; ok {
			out = append(out, *g)
		} else {
			out = append(out, Group{Key: k})
		}
	}
	return out
}
