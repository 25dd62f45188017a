// Package report renders an analysis session into a markdown document
// and, via gomarkdown, into HTML for the dashboard.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"adpulse/domain/ads"
	"adpulse/internal/benchmark"
)

// Input bundles everything one report needs. Daily and Notes may be
// empty; the corresponding sections are skipped.
type Input struct {
	Title          string
	Source         string
	Metrics        ads.MetricSet
	Statuses       map[string]ads.Status
	Issues         []ads.Issue
	Daily          []ads.DailyRow
	Notes          map[string][]string
	CurrencySymbol string
	GeneratedAt    time.Time
}

// reportMetrics is the display order of the metric table.
var reportMetrics = []struct {
	Name  string
	Label string
}{
	{ads.MetricCTR, "CTR"},
	{ads.MetricLPViewRate, "Landing Page View Rate"},
	{ads.MetricATCRate, "Add to Cart Rate"},
	{ads.MetricCheckoutRate, "Checkout Rate"},
	{ads.MetricPurchaseRate, "Purchase Rate"},
	{ads.MetricOverallCVR, "Overall CVR"},
	{ads.MetricCPC, "CPC"},
	{ads.MetricCPA, "CPA"},
	{ads.MetricROAS, "ROAS"},
	{ads.MetricACoS, "ACoS"},
	{ads.MetricFrequency, "Frequency"},
}

// Markdown renders the full report as a markdown document.
func Markdown(in Input) string {
	var b strings.Builder

	title := in.Title
	if title == "" {
		title = "Ad Performance Report"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated %s", in.GeneratedAt.Format("2006-01-02 15:04 MST"))
	if in.Source != "" {
		fmt.Fprintf(&b, " from %s", in.Source)
	}
	b.WriteString("\n\n")

	writeSummary(&b, in)
	writeMetricTable(&b, in)
	writeFunnel(&b, in)
	writeIssues(&b, in)
	writeDaily(&b, in)
	writeNotes(&b, in)

	return b.String()
}

func writeSummary(b *strings.Builder, in Input) {
	t := in.Metrics.Totals
	cur := in.CurrencySymbol

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(b, "- **Spend:** %s%.2f\n", cur, t.Spend)
	fmt.Fprintf(b, "- **Revenue:** %s%.2f\n", cur, t.Revenue)
	fmt.Fprintf(b, "- **Impressions:** %d\n", t.Impressions)
	fmt.Fprintf(b, "- **Clicks:** %d\n", t.Clicks)
	fmt.Fprintf(b, "- **Purchases:** %d\n", t.Purchases)
	if roas, ok := in.Metrics.Get(ads.MetricROAS); ok {
		fmt.Fprintf(b, "- **ROAS:** %.2fx\n", roas)
	}
	b.WriteString("\n")
}

func writeMetricTable(b *strings.Builder, in Input) {
	b.WriteString("## Metrics vs Benchmarks\n\n")
	b.WriteString("| Metric | Value | Min | Ideal | Status |\n")
	b.WriteString("|--------|-------|-----|-------|--------|\n")

	for _, m := range reportMetrics {
		value, ok := in.Metrics.Get(m.Name)
		if !ok {
			continue
		}
		status := in.Statuses[m.Name]
		if status == "" {
			status = ads.StatusNeutral
		}

		bench, hasBench := benchmark.Lookup(m.Name)
		minCol, idealCol := "-", "-"
		unit := ""
		if hasBench {
			unit = bench.Unit
			minCol = fmt.Sprintf("%.1f%s", bench.Min, unit)
			idealCol = fmt.Sprintf("%.1f%s", bench.Ideal, unit)
		}

		fmt.Fprintf(b, "| %s | %.2f%s | %s | %s | %s |\n",
			m.Label, value, unit, minCol, idealCol, statusBadge(status))
	}
	b.WriteString("\n")
}

func writeFunnel(b *strings.Builder, in Input) {
	t := in.Metrics.Totals
	stages := []struct {
		Label string
		Count int64
	}{
		{"Impressions", t.Impressions},
		{"Clicks", t.Clicks},
		{"Landing Page Views", t.LPViews},
		{"Adds to Cart", t.AddsToCart},
		{"Checkouts Initiated", t.Checkouts},
		{"Purchases", t.Purchases},
	}

	b.WriteString("## Funnel\n\n")
	b.WriteString("| Stage | Count | Step Conversion |\n")
	b.WriteString("|-------|-------|----------------|\n")
	for i, st := range stages {
		conv := "-"
		if i > 0 && stages[i-1].Count > 0 {
			conv = fmt.Sprintf("%.2f%%", float64(st.Count)/float64(stages[i-1].Count)*100)
		}
		fmt.Fprintf(b, "| %s | %d | %s |\n", st.Label, st.Count, conv)
	}
	b.WriteString("\n")
}

func writeIssues(b *strings.Builder, in Input) {
	b.WriteString("## Recommendations\n\n")
	if len(in.Issues) == 0 {
		b.WriteString("All tracked metrics are within healthy ranges. No action required.\n\n")
		return
	}

	for _, issue := range in.Issues {
		fmt.Fprintf(b, "### [%s] %s\n\n", issue.Priority, issue.MetricLabel)
		fmt.Fprintf(b, "Current: %.2f / Target: %.2f\n\n", issue.Current, issue.Target)
		for _, a := range issue.Actions {
			fmt.Fprintf(b, "- %s\n", a)
		}
		b.WriteString("\n")
	}
}

func writeDaily(b *strings.Builder, in Input) {
	if len(in.Daily) == 0 {
		return
	}

	b.WriteString("## Day-wise Performance\n\n")
	b.WriteString("| Date | Spend | CTR | CVR | ROAS | Purchases |\n")
	b.WriteString("|------|-------|-----|-----|------|----------|\n")
	for _, d := range in.Daily {
		fmt.Fprintf(b, "| %s | %s%.2f | %.2f%% | %.2f%% | %.2fx | %d |\n",
			d.Date.Format("2006-01-02"), in.CurrencySymbol, d.Spend,
			d.Values[ads.MetricCTR], d.Values[ads.MetricOverallCVR],
			d.Values[ads.MetricROAS], d.Purchases)
	}
	b.WriteString("\n")
}

func writeNotes(b *strings.Builder, in Input) {
	if len(in.Notes) == 0 {
		return
	}

	sources := make([]string, 0, len(in.Notes))
	for src := range in.Notes {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	b.WriteString("## Notes\n\n")
	for _, src := range sources {
		lines := in.Notes[src]
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(b, "**%s**\n\n", src)
		for _, line := range lines {
			fmt.Fprintf(b, "- %s\n", line)
		}
		b.WriteString("\n")
	}
}

func statusBadge(s ads.Status) string {
	switch s {
	case ads.StatusExcellent:
		return "🟢 excellent"
	case ads.StatusGood:
		return "🟡 good"
	case ads.StatusCritical:
		return "🔴 critical"
	default:
		return "⚪ n/a"
	}
}
