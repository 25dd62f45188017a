package recommend

import "adpulse/domain/ads"

// rule is one declarative trigger. Trigger receives the metric value and
// its benchmark entry; a triggered rule reports the benchmark ideal as
// the target.
type rule struct {
	Metric   string
	Label    string
	Priority ads.Priority
	Trigger  func(value float64, bench ads.Benchmark) bool
	Actions  []string
}

func belowMin(value float64, bench ads.Benchmark) bool   { return value < bench.Min }
func aboveIdeal(value float64, bench ads.Benchmark) bool { return value > bench.Ideal }

// rules is the fixed rule list. Declaration order is the tie-break within
// a priority band, so output stays deterministic.
var rules = []rule{
	{
		Metric:   ads.MetricCheckoutRate,
		Label:    "Checkout Rate",
		Priority: ads.PriorityCritical,
		Trigger:  belowMin,
		Actions: []string{
			"Enable guest checkout to reduce friction",
			"Add multiple payment options (UPI, COD, Cards)",
			"Display shipping costs earlier in the funnel",
			"Simplify checkout to 1-2 steps maximum",
			"Add trust badges and security indicators",
			"Optimize mobile checkout experience",
		},
	},
	{
		Metric:   ads.MetricLPViewRate,
		Label:    "Landing Page View Rate",
		Priority: ads.PriorityHigh,
		Trigger:  belowMin,
		Actions: []string{
			"Improve page load speed (compress images, use CDN)",
			"Optimize for mobile devices",
			"Check for broken links or redirects",
			"Ensure landing page matches ad promise",
		},
	},
	{
		Metric:   ads.MetricPurchaseRate,
		Label:    "Purchase Completion Rate",
		Priority: ads.PriorityMedium,
		Trigger:  belowMin,
		Actions: []string{
			"Add exit-intent popups with discount offers",
			"Implement cart abandonment email sequence",
			"Show limited stock/urgency indicators",
			"Offer free shipping threshold",
			"Add live chat support during checkout",
		},
	},
	{
		Metric:   ads.MetricCTR,
		Label:    "Click-Through Rate",
		Priority: ads.PriorityMedium,
		Trigger:  belowMin,
		Actions: []string{
			"Test different ad creatives and copy",
			"Improve ad targeting to reach more relevant audience",
			"Use more compelling calls-to-action",
			"A/B test different images and videos",
			"Ensure ad relevance matches landing page",
		},
	},
	{
		Metric:   ads.MetricROAS,
		Label:    "ROAS (Return on Ad Spend)",
		Priority: ads.PriorityCritical,
		Trigger:  belowMin,
		Actions: []string{
			"Increase product prices or average order value",
			"Improve conversion rate throughout funnel",
			"Reduce ad spend on underperforming campaigns",
			"Focus on high-value customer segments",
			"Optimize product mix for profitability",
		},
	},
	{
		// Intentionally compares against Ideal rather than the classifier's
		// Max bound: messaging fires earlier than the status flips.
		Metric:   ads.MetricACoS,
		Label:    "ACoS (Advertising Cost of Sales)",
		Priority: ads.PriorityHigh,
		Trigger:  aboveIdeal,
		Actions: []string{
			"Reduce cost per click through better targeting",
			"Improve conversion rate to lower CPA",
			"Pause underperforming ad sets",
			"Focus on audiences with lower CPAs",
			"Optimize bidding strategy",
		},
	},
}
