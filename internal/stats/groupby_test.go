package stats

import (
	"fmt"
	"math"
	"testing"
	"time"

	"txboard/internal/core"
)

// cf builds a present customer-facing amount.
func cf(v float64) *float64 { return &v }

func at(s string) time.Time {
	ts, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return ts
}

func txn(id string, created string, customerAmount *float64, currency string) core.Transaction {
	t := core.Transaction{
		ID:                     id,
		Type:                   core.Payment,
		Amount:                 100,
		CustomerFacingAmount:   customerAmount,
		CustomerFacingCurrency: currency,
	}
	if created != "" {
		t.Created = at(created)
	}
	return t
}

func TestGroupByPartitionCompleteness(t *testing.T) {
	txns := []core.Transaction{
		txn("t1", "2025-03-03 09:00:00", cf(50), "usd"),
		txn("t2", "2025-03-03 10:00:00", cf(150), "usd"),
		txn("t3", "2025-03-04 09:30:00", cf(700), "eur"),
		txn("t4", "2025-03-05 23:00:00", nil, ""),
		txn("t5", "2025-03-09 01:00:00", cf(4999), "gbp"),
	}

	groupings := map[string][]Group{
		"weekday": WeekdayActivity(txns),
		"value":   ValueDistribution(txns),
		"latency": LatencyDistribution(txns),
	}
	for name, gs := range map[string][]GroupSummary{
		"hourly": HourlyActivity(txns),
		"daily":  DailyVolume(txns),
	} {
		plain := make([]Group, len(gs))
		for i, g := range gs {
			plain[i] = g.Group
		}
		groupings[name] = plain
	}
	for name, groups := range groupings {
		total := 0
		for _, g := range groups {
			total += g.Count
		}
		if total != len(txns) {
			t.Errorf("%s grouping lost records: Σcount = %d, want %d", name, total, len(txns))
		}
	}
}

func TestGroupAvgSizeIdentity(t *testing.T) {
	txns := []core.Transaction{
		txn("t1", "2025-03-03 09:00:00", cf(50), "usd"),
		txn("t2", "2025-03-03 10:00:00", cf(150), "usd"),
		txn("t3", "2025-03-04 09:30:00", cf(700), "eur"),
	}
	for _, g := range DailyVolume(txns) {
		want := g.Volume / float64(g.Count)
		if math.Abs(g.AvgSize()-want) > 1e-9 {
			t.Errorf("group %q: AvgSize = %v, want %v", g.Key, g.AvgSize(), want)
		}
	}
}

func TestGroupStatsPerGroupDistribution(t *testing.T) {
	// Day one carries sizes 2,4,4,4,5,5,7,9; day two carries 10,20,30,40.
	sizes := map[string][]float64{
		"2025-03-03": {2, 4, 4, 4, 5, 5, 7, 9},
		"2025-03-04": {10, 20, 30, 40},
	}
	var txns []core.Transaction
	i := 0
	for day, vs := range sizes {
		for _, v := range vs {
			i++
			txns = append(txns, txn(fmt.Sprintf("t%d", i), day+" 09:00:00", cf(v), "usd"))
		}
	}

	groups := DailyVolume(txns)
	if len(groups) != 2 {
		t.Fatalf("DailyVolume returned %d groups, want 2", len(groups))
	}

	one := groups[0]
	if one.Key != "2025-03-03" {
		t.Fatalf("groups out of order: %q", one.Key)
	}
	if one.Mean != 5 {
		t.Errorf("day one Mean = %v, want 5", one.Mean)
	}
	if one.Median != 5 {
		t.Errorf("day one Median = %v, want 5 (upper-middle of 8 values)", one.Median)
	}
	if one.StdDev != 2 {
		t.Errorf("day one StdDev = %v, want population 2", one.StdDev)
	}

	two := groups[1]
	if two.Median != 30 {
		t.Errorf("day two Median = %v, want upper-middle 30", two.Median)
	}
	if math.Abs(two.StdDev-math.Sqrt(125)) > 1e-9 {
		t.Errorf("day two StdDev = %v, want √125", two.StdDev)
	}
}

func TestHourlyActivityNaNStatisticsForEmptySlots(t *testing.T) {
	txns := []core.Transaction{
		txn("t1", "2025-03-03 09:00:00", cf(10), "usd"),
	}
	groups := HourlyActivity(txns)
	if !math.IsNaN(groups[0].Median) || !math.IsNaN(groups[0].StdDev) {
		t.Errorf("empty 00:00 slot statistics = {%v, %v}, want NaN",
			groups[0].Median, groups[0].StdDev)
	}
	if groups[9].Median != 10 || groups[9].StdDev != 0 {
		t.Errorf("09:00 slot = {median %v, stddev %v}, want {10, 0}",
			groups[9].Median, groups[9].StdDev)
	}
}

func TestMonthlyTrendPerMonthStatistics(t *testing.T) {
	mk := func(id, created string, amount float64) core.Transaction {
		tx := txn(id, created, nil, "")
		tx.Amount = amount
		return tx
	}
	txns := []core.Transaction{
		mk("t1", "2025-01-05 09:00:00", 10),
		mk("t2", "2025-01-15 09:00:00", 20),
		mk("t3", "2025-01-20 09:00:00", 30),
		mk("t4", "2025-01-25 09:00:00", 40),
	}
	trend := MonthlyTrend(txns)
	if len(trend) != 1 {
		t.Fatalf("MonthlyTrend returned %d months, want 1", len(trend))
	}
	if trend[0].Median != 30 {
		t.Errorf("January Median = %v, want upper-middle 30", trend[0].Median)
	}
	if math.Abs(trend[0].StdDev-math.Sqrt(125)) > 1e-9 {
		t.Errorf("January StdDev = %v, want √125", trend[0].StdDev)
	}
}

func TestWeekdayActivityAlwaysSevenEntries(t *testing.T) {
	// All transactions inside one calendar week, on two distinct days.
	txns := []core.Transaction{
		txn("t1", "2025-03-03 09:00:00", cf(10), "usd"), // Monday
		txn("t2", "2025-03-05 09:00:00", cf(20), "usd"), // Wednesday
	}
	groups := WeekdayActivity(txns)
	if len(groups) != 7 {
		t.Fatalf("WeekdayActivity returned %d groups, want 7", len(groups))
	}
	want := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	for i, g := range groups {
		if g.Key != want[i] {
			t.Fatalf("groups[%d].Key = %q, want %q", i, g.Key, want[i])
		}
	}
	// Empty days must not panic; their average degrades to NaN.
	for _, g := range groups {
		if g.Count == 0 && !math.IsNaN(g.AvgSize()) {
			t.Errorf("empty group %q: AvgSize = %v, want NaN", g.Key, g.AvgSize())
		}
	}
	if groups[1].Count != 1 || groups[3].Count != 1 {
		t.Errorf("Monday/Wednesday counts = %d/%d, want 1/1", groups[1].Count, groups[3].Count)
	}
}

func TestHourlyActivityEmitsAllSlots(t *testing.T) {
	txns := []core.Transaction{
		txn("t1", "2025-03-03 09:15:00", cf(10), "usd"),
		txn("t2", "2025-03-03 09:45:00", cf(30), "usd"),
		txn("t3", "2025-03-03 23:59:59", cf(5), "usd"),
	}
	groups := HourlyActivity(txns)
	if len(groups) != 24 {
		t.Fatalf("HourlyActivity returned %d groups, want 24", len(groups))
	}
	if groups[0].Key != "00:00" || groups[23].Key != "23:00" {
		t.Fatalf("unexpected slot labels: first %q, last %q", groups[0].Key, groups[23].Key)
	}
	if groups[9].Count != 2 || groups[9].Volume != 40 {
		t.Errorf("09:00 slot = {count %d, volume %v}, want {2, 40}", groups[9].Count, groups[9].Volume)
	}
}

func TestTimeGroupingsExcludeUnparseableCreated(t *testing.T) {
	txns := []core.Transaction{
		txn("good", "2025-03-03 09:00:00", cf(10), "usd"),
		txn("no-created", "", cf(10), "usd"),
	}
	groups := DailyVolume(txns)
	if len(groups) != 1 {
		t.Fatalf("DailyVolume returned %d groups, want 1", len(groups))
	}
	if groups[0].Count != 1 {
		t.Fatalf("record without created leaked into a time grouping")
	}
}

func TestDailyVolumeChronological(t *testing.T) {
	txns := []core.Transaction{
		txn("t1", "2025-03-05 09:00:00", cf(10), "usd"),
		txn("t2", "2025-03-03 09:00:00", cf(10), "usd"),
		txn("t3", "2025-03-04 09:00:00", cf(10), "usd"),
	}
	groups := DailyVolume(txns)
	want := []string{"2025-03-03", "2025-03-04", "2025-03-05"}
	for i, g := range groups {
		if g.Key != want[i] {
			t.Fatalf("groups[%d].Key = %q, want %q", i, g.Key, want[i])
		}
	}
}

func TestPeakDaysRanksByVolume(t *testing.T) {
	txns := []core.Transaction{
		txn("t1", "2025-03-03 09:00:00", cf(10), "usd"),
		txn("t2", "2025-03-04 09:00:00", cf(500), "usd"),
		txn("t3", "2025-03-05 09:00:00", cf(100), "usd"),
	}
	peaks := PeakDays(txns, 2)
	if len(peaks) != 2 {
		t.Fatalf("PeakDays returned %d entries, want 2", len(peaks))
	}
	if peaks[0].Key != "2025-03-04" || peaks[1].Key != "2025-03-05" {
		t.Fatalf("PeakDays order = %q, %q", peaks[0].Key, peaks[1].Key)
	}
}

func TestVelocityPerDay(t *testing.T) {
	txns := []core.Transaction{
		txn("t1", "2025-03-03 09:00:00", cf(10), "usd"),
		txn("t2", "2025-03-03 10:00:00", cf(10), "usd"),
		txn("t3", "2025-03-04 09:00:00", cf(10), "usd"),
		txn("t4", "2025-03-05 09:00:00", cf(10), "usd"),
	}
	got := VelocityPerDay(txns)
	if math.Abs(got-4.0/3.0) > 1e-9 {
		t.Fatalf("VelocityPerDay = %v, want 4/3", got)
	}
	if !math.IsNaN(VelocityPerDay(nil)) {
		t.Error("VelocityPerDay(nil) should be NaN")
	}
}

func TestMonthlyTrendGrowth(t *testing.T) {
	mk := func(id, created string, amount float64) core.Transaction {
		tx := txn(id, created, nil, "")
		tx.Amount = amount
		return tx
	}
	txns := []core.Transaction{
		mk("t1", "2025-01-10 09:00:00", 100),
		mk("t2", "2025-02-10 09:00:00", 150),
		mk("t3", "2025-03-10 09:00:00", 75),
	}
	trend := MonthlyTrend(txns)
	if len(trend) != 3 {
		t.Fatalf("MonthlyTrend returned %d months, want 3", len(trend))
	}
	if trend[0].Key != "2025-01" || trend[2].Key != "2025-03" {
		t.Fatalf("months out of order: %q .. %q", trend[0].Key, trend[2].Key)
	}
	// First month has no previous period: volume/0 is +Inf here.
	if !math.IsInf(trend[0].Growth, 1) {
		t.Errorf("first month growth = %v, want +Inf", trend[0].Growth)
	}
	if math.Abs(trend[1].Growth-50) > 1e-9 {
		t.Errorf("Feb growth = %v, want 50", trend[1].Growth)
	}
	if math.Abs(trend[2].Growth-(-50)) > 1e-9 {
		t.Errorf("Mar growth = %v, want -50", trend[2].Growth)
	}
}

func TestCustomerAndSettlementFamiliesStayDistinct(t *testing.T) {
	tx := core.Transaction{Amount: -200, CustomerFacingAmount: cf(-50)}
	if got := SettlementVolume(tx); got != 200 {
		t.Errorf("SettlementVolume = %v, want 200", got)
	}
	if got := CustomerVolume(tx); got != 50 {
		t.Errorf("CustomerVolume = %v, want 50", got)
	}
	// Absent customer amount counts as zero volume, never as settlement.
	absent := core.Transaction{Amount: 300}
	if got := CustomerVolume(absent); got != 0 {
		t.Errorf("CustomerVolume(absent) = %v, want 0", got)
	}
}
