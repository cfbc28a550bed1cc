package stats

import (
	"math"
	"strings"

	"txboard/internal/core"
)

// CurrencyMix groups customer-facing volume by customer-facing currency,
// upper-cased, in descending volume order. Rows whose customer-facing amount
// is absent are excluded; the distribution requires both fields. A present
// amount with a blank currency code falls under "UNKNOWN".
func CurrencyMix(txns []core.Transaction) []Group {
	return sortedByVolume(GroupBy(txns, currencyKey, CustomerVolume))
}

// CurrencyShare annotates each currency group with its percent of total
// customer-facing volume. An all-zero mix renders NaN shares.
type CurrencyShare struct {
	Group
	Share float64
}

// CurrencyShares is CurrencyMix plus percent-of-total per currency.
func CurrencyShares(txns []core.Transaction) []CurrencyShare {
	mix := CurrencyMix(txns)
	var total float64
	for _, g := range mix {
		total += g.Volume
	}
	out := make([]CurrencyShare, len(mix))
	for i, g := range mix {
		out[i] = CurrencyShare{Group: g, Share: PercentOf(g.Volume, total)}
	}
	return out
}

// VolumeWeightedUSDRate is the exchange rate between settlement and
// customer-facing amounts, weighted by customer-facing volume:
//
//	Σ(rate_i · volume_i) / Σ(volume_i), rate_i = |amount_i / customerAmount_i|
//
// restricted to records priced to the customer in USD with a present,
// non-zero customer-facing amount. ok is false when no record qualifies,
// instead of a silent 0/0 NaN.
func VolumeWeightedUSDRate(txns []core.Transaction) (rate float64, ok bool) {
	var weighted, volume float64
	for _, t := range txns {
		if !strings.EqualFold(t.CustomerFacingCurrency, "usd") {
			continue
		}
		if !t.HasCustomerAmount() || t.CustomerAmount() == 0 {
			continue
		}
		v := math.Abs(t.CustomerAmount())
		weighted += math.Abs(t.Amount/t.CustomerAmount()) * v
		volume += v
	}
	if volume == 0 {
		return 0, false
	}
	return weighted / volume, true
}

func currencyKey(t core.Transaction) (string, bool) {
	if !t.HasCustomerAmount() {
		return "", false
	}
	code := strings.ToUpper(strings.TrimSpace(t.CustomerFacingCurrency))
	if code == "" {
		code = "UNKNOWN"
	}
	return code, true
}
