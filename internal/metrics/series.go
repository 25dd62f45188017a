package metrics

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"adpulse/domain/ads"
)

// SeriesSummary describes one metric's day series for trend display.
type SeriesSummary struct {
	Metric string  `json:"metric"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	// Slope is the per-day linear trend of the series; positive means the
	// metric is improving day over day (for higher-is-better metrics).
	Slope float64 `json:"slope"`
}

// SummarizeSeries computes summary statistics and a linear trend for one
// metric across a daily table. Rows are assumed to be in date order.
func SummarizeSeries(daily []ads.DailyRow, metric string) SeriesSummary {
	s := SeriesSummary{Metric: metric}
	if len(daily) == 0 {
		return s
	}

	xs := make([]float64, len(daily))
	ys := make([]float64, len(daily))
	for i, d := range daily {
		xs[i] = float64(i)
		ys[i] = d.Values[metric]
	}

	s.Mean = statOrZero(stats.Mean, ys)
	s.Median = statOrZero(stats.Median, ys)
	s.Min = statOrZero(stats.Min, ys)
	s.Max = statOrZero(stats.Max, ys)

	if len(daily) > 1 {
		_, slope := stat.LinearRegression(xs, ys, nil, false)
		s.Slope = slope
	}
	return s
}

func statOrZero(fn func(stats.Float64Data) (float64, error), data []float64) float64 {
	v, err := fn(data)
	if err != nil {
		return 0
	}
	return v
}
