package benchmark

import "adpulse/domain/ads"

// table is the process-wide benchmark band table. Values are the industry
// bands the dashboard has always shipped with; CPC/CPA are in account
// currency, the rest percentages or multipliers per Unit.
var table = map[string]ads.Benchmark{
	ads.MetricCTR:          {Min: 0.9, Ideal: 1.5, Max: 3.0, Unit: "%"},
	ads.MetricLPViewRate:   {Min: 80, Ideal: 90, Max: 100, Unit: "%"},
	ads.MetricATCRate:      {Min: 10, Ideal: 20, Max: 30, Unit: "%"},
	ads.MetricCheckoutRate: {Min: 60, Ideal: 75, Max: 85, Unit: "%"},
	ads.MetricPurchaseRate: {Min: 50, Ideal: 65, Max: 80, Unit: "%"},
	ads.MetricOverallCVR:   {Min: 2, Ideal: 5, Max: 10, Unit: "%"},
	ads.MetricCPC:          {Min: 5, Ideal: 10, Max: 15, Unit: "currency"},
	ads.MetricCPA:          {Min: 100, Ideal: 300, Max: 500, Unit: "currency"},
	ads.MetricFrequency:    {Min: 1.0, Ideal: 1.1, Max: 1.3, Unit: "x"},
	ads.MetricROAS:         {Min: 2.0, Ideal: 4.0, Max: 6.0, Unit: "x"},

	// ACoS is the one inverted metric: Max holds the best (lowest)
	// acceptable bound and values above Ideal are critical.
	ads.MetricACoS: {Min: 40, Ideal: 25, Max: 15, Unit: "%", Polarity: ads.LowerIsBetter},
}

// Lookup returns the benchmark entry for a metric name.
func Lookup(metric string) (ads.Benchmark, bool) {
	b, ok := table[metric]
	return b, ok
}

// Table returns a copy of the full benchmark table for display.
func Table() map[string]ads.Benchmark {
	out := make(map[string]ads.Benchmark, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}
