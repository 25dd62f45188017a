package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpulse/domain/ads"
	"adpulse/internal/benchmark"
	"adpulse/internal/metrics"
	"adpulse/internal/recommend"
)

func sampleInput() Input {
	rows := []ads.Row{{
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EntityName:  "Campaign A",
		Impressions: 10000, Clicks: 150, LPViews: 135, AddsToCart: 20,
		Checkouts: 14, Purchases: 8, Spend: 1500, Revenue: 6000, Frequency: 1.2,
	}}
	opts := metrics.Options{AverageOrderValue: 600}
	set := metrics.Summarize(rows, opts)

	return Input{
		Title:          "Ad Performance Report",
		Source:         "january.xlsx",
		Metrics:        set,
		Statuses:       benchmark.ClassifyAll(set),
		Issues:         recommend.Evaluate(set),
		Daily:          metrics.Daily(rows, opts),
		Notes:          map[string][]string{"Campaign A": {"Paused for two days"}},
		CurrencySymbol: "₹",
		GeneratedAt:    time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMarkdownSections(t *testing.T) {
	md := Markdown(sampleInput())

	assert.Contains(t, md, "# Ad Performance Report")
	assert.Contains(t, md, "january.xlsx")
	assert.Contains(t, md, "## Summary")
	assert.Contains(t, md, "## Metrics vs Benchmarks")
	assert.Contains(t, md, "## Funnel")
	assert.Contains(t, md, "## Recommendations")
	assert.Contains(t, md, "## Day-wise Performance")
	assert.Contains(t, md, "## Notes")
	assert.Contains(t, md, "Paused for two days")
	assert.Contains(t, md, "**Spend:** ₹1500.00")
	assert.Contains(t, md, "**ROAS:** 4.00x")
}

func TestMarkdownIssueLine(t *testing.T) {
	in := sampleInput()
	in.Issues = []ads.Issue{{
		Priority:    ads.PriorityCritical,
		Metric:      ads.MetricCheckoutRate,
		MetricLabel: "Checkout Rate",
		Current:     45,
		Target:      75,
		Actions:     []string{"Enable guest checkout to reduce friction"},
	}}
	md := Markdown(in)

	assert.Contains(t, md, "### [CRITICAL] Checkout Rate")
	assert.Contains(t, md, "Current: 45.00 / Target: 75.00")
	assert.Contains(t, md, "- Enable guest checkout to reduce friction")
}

func TestMarkdownHealthyHasNoIssueSections(t *testing.T) {
	in := sampleInput()
	in.Issues = nil
	md := Markdown(in)
	assert.Contains(t, md, "No action required")
}

func TestMarkdownSkipsEmptySections(t *testing.T) {
	in := sampleInput()
	in.Daily = nil
	in.Notes = nil
	md := Markdown(in)
	assert.NotContains(t, md, "## Day-wise Performance")
	assert.NotContains(t, md, "## Notes")
}

func TestHTMLRendersTables(t *testing.T) {
	html := HTML(Markdown(sampleInput()))
	require.NotEmpty(t, html)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "Ad Performance Report")
}
