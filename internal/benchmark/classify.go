package benchmark

import "adpulse/domain/ads"

// Classify maps a metric value onto its three-band status. Metrics absent
// from the benchmark table classify as neutral, never an error.
func Classify(metric string, value float64) ads.Status {
	bench, ok := table[metric]
	if !ok {
		return ads.StatusNeutral
	}
	if bench.Polarity == ads.LowerIsBetter {
		switch {
		case value <= bench.Max:
			return ads.StatusExcellent
		case value <= bench.Ideal:
			return ads.StatusGood
		default:
			return ads.StatusCritical
		}
	}
	switch {
	case value >= bench.Ideal:
		return ads.StatusExcellent
	case value >= bench.Min:
		return ads.StatusGood
	default:
		return ads.StatusCritical
	}
}

// GaugeRanges are the colored band edges for a gauge widget, ordered from
// the axis origin outward: [0, Poor) [Poor, Mid) [Mid, Top]. For the
// inverted-polarity metric the floor/ceiling semantics swap so the "good"
// region still renders nearest the origin.
type GaugeRanges struct {
	AxisMax float64 `json:"axis_max"`
	Poor    float64 `json:"poor"`
	Mid     float64 `json:"mid"`
	Top     float64 `json:"top"`
}

// Gauge builds the range edges for a metric's gauge. Returns false for
// metrics with no benchmark entry.
func Gauge(metric string) (GaugeRanges, bool) {
	bench, ok := table[metric]
	if !ok {
		return GaugeRanges{}, false
	}
	if bench.Polarity == ads.LowerIsBetter {
		// Lowest values are best: green up to Max, amber to Ideal, red to Min.
		return GaugeRanges{AxisMax: bench.Min, Poor: bench.Max, Mid: bench.Ideal, Top: bench.Min}, true
	}
	return GaugeRanges{AxisMax: bench.Max, Poor: bench.Min, Mid: bench.Ideal, Top: bench.Max}, true
}

// ClassifyAll classifies every metric in a set.
func ClassifyAll(set ads.MetricSet) map[string]ads.Status {
	out := make(map[string]ads.Status, len(set.Values))
	for name, value := range set.Values {
		out[name] = Classify(name, value)
	}
	return out
}
