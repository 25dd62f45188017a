package metrics

import (
	"github.com/montanaflynn/stats"

	"adpulse/domain/ads"
)

// Options configures metric derivation.
type Options struct {
	// AverageOrderValue is the fallback per-order revenue used for ROAS
	// when no source in the row set reported true revenue.
	AverageOrderValue float64
}

// safeDiv returns a/b, or 0 whenever b <= 0. Every ratio in this package
// goes through it, so the engine never emits NaN or Inf.
func safeDiv(a, b float64) float64 {
	if b <= 0 {
		return 0
	}
	return a / b
}

// pct is safeDiv expressed as a percentage.
func pct(a, b float64) float64 {
	return safeDiv(a, b) * 100
}

// Summarize reduces a row set (already filtered to the desired range and
// entities) to a single MetricSet. Pure and idempotent; an empty row set
// yields all-zero totals and metrics.
func Summarize(rows []ads.Row, opts Options) ads.MetricSet {
	var t ads.Totals
	freqs := make([]float64, 0, len(rows))
	for _, r := range rows {
		t.Impressions += r.Impressions
		t.Clicks += r.Clicks
		t.LPViews += r.LPViews
		t.AddsToCart += r.AddsToCart
		t.Checkouts += r.Checkouts
		t.Purchases += r.Purchases
		t.Reach += r.Reach
		t.Spend += r.Spend
		t.Revenue += r.Revenue
		freqs = append(freqs, r.Frequency)
	}

	impressions := float64(t.Impressions)
	clicks := float64(t.Clicks)
	lpViews := float64(t.LPViews)
	atc := float64(t.AddsToCart)
	checkouts := float64(t.Checkouts)
	purchases := float64(t.Purchases)

	// ROAS uses true revenue when any source reported it; otherwise the
	// documented fallback of purchases x average order value.
	revenueForROAS := t.Revenue
	if revenueForROAS <= 0 {
		revenueForROAS = purchases * opts.AverageOrderValue
	}

	values := map[string]float64{
		ads.MetricCTR:          pct(clicks, impressions),
		ads.MetricLPViewRate:   pct(lpViews, clicks),
		ads.MetricATCRate:      pct(atc, lpViews),
		ads.MetricCheckoutRate: pct(checkouts, atc),
		ads.MetricPurchaseRate: pct(purchases, checkouts),
		ads.MetricOverallCVR:   pct(purchases, clicks),
		ads.MetricCPC:          safeDiv(t.Spend, clicks),
		ads.MetricCPA:          safeDiv(t.Spend, purchases),
		ads.MetricROAS:         safeDiv(revenueForROAS, t.Spend),
		ads.MetricACoS:         pct(t.Spend, t.Revenue),

		// The two frequency definitions in circulation are materially
		// different, so both are exposed under distinct names: Frequency
		// is the mean of upstream-reported per-row values, Frequency_Proxy
		// the impressions-per-click approximation.
		ads.MetricFrequency:      meanOrZero(freqs),
		ads.MetricFrequencyProxy: safeDiv(impressions, clicks),
	}

	return ads.MetricSet{Values: values, Totals: t}
}

// Daily applies the same ratio formulas row by row, with the same
// safe-division rule, to back day-over-day trend charts.
func Daily(rows []ads.Row, opts Options) []ads.DailyRow {
	out := make([]ads.DailyRow, 0, len(rows))
	for _, r := range rows {
		impressions := float64(r.Impressions)
		clicks := float64(r.Clicks)
		lpViews := float64(r.LPViews)
		atc := float64(r.AddsToCart)
		checkouts := float64(r.Checkouts)
		purchases := float64(r.Purchases)

		revenue := r.Revenue
		if revenue <= 0 {
			revenue = purchases * opts.AverageOrderValue
		}

		out = append(out, ads.DailyRow{
			Date:       r.Date,
			EntityName: r.EntityName,
			Spend:      r.Spend,
			Purchases:  r.Purchases,
			Values: map[string]float64{
				ads.MetricCTR:            pct(clicks, impressions),
				ads.MetricLPViewRate:     pct(lpViews, clicks),
				ads.MetricATCRate:        pct(atc, lpViews),
				ads.MetricCheckoutRate:   pct(checkouts, atc),
				ads.MetricPurchaseRate:   pct(purchases, checkouts),
				ads.MetricOverallCVR:     pct(purchases, clicks),
				ads.MetricCPC:            safeDiv(r.Spend, clicks),
				ads.MetricCPA:            safeDiv(r.Spend, purchases),
				ads.MetricROAS:           safeDiv(revenue, r.Spend),
				ads.MetricACoS:           pct(r.Spend, r.Revenue),
				ads.MetricFrequency:      r.Frequency,
				ads.MetricFrequencyProxy: safeDiv(impressions, clicks),
			},
		})
	}
	return out
}

func meanOrZero(data []float64) float64 {
	m, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	return m
}
