// Package recommend turns a classified metric set into an ordered list of
// actionable issues. Every rule is evaluated independently against the
// benchmark table, so one weak metric never masks another.
package recommend

import (
	"sort"

	"adpulse/domain/ads"
	"adpulse/internal/benchmark"
)

// Evaluate runs the fixed rule list against the metric set and returns
// triggered issues sorted by priority (critical first). Within a priority
// band the rule declaration order is preserved.
func Evaluate(set ads.MetricSet) []ads.Issue {
	issues := make([]ads.Issue, 0, len(rules))
	for _, r := range rules {
		value, ok := set.Get(r.Metric)
		if !ok {
			continue
		}
		bench, ok := benchmark.Lookup(r.Metric)
		if !ok {
			continue
		}
		if !r.Trigger(value, bench) {
			continue
		}
		issues = append(issues, ads.Issue{
			Priority:    r.Priority,
			Metric:      r.Metric,
			MetricLabel: r.Label,
			Current:     value,
			Target:      bench.Ideal,
			Actions:     append([]string(nil), r.Actions...),
		})
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Priority.Rank() < issues[j].Priority.Rank()
	})
	return issues
}
