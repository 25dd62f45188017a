package ui

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"adpulse/adapters/report"
	"adpulse/domain/ads"
	"adpulse/internal/benchmark"
	"adpulse/internal/metrics"
	"adpulse/internal/recommend"
)

func (s *Server) metricsOptions() metrics.Options {
	return metrics.Options{AverageOrderValue: s.cfg.Analytics.AverageOrderValue}
}

func (s *Server) handleSessionList(c *gin.Context) {
	sessions := s.sessions.List()
	out := make([]gin.H, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, gin.H{
			"id":         sess.ID,
			"source":     sess.Source,
			"label":      sess.Label,
			"row_count":  len(sess.Rows),
			"created_at": sess.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

func (s *Server) handleSessionDelete(c *gin.Context) {
	s.sessions.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// handleMetrics returns the aggregate metric set with per-metric status
// and gauge geometry. An empty session still answers 200 with zeros.
func (s *Server) handleMetrics(c *gin.Context) {
	rows, err := s.sessions.Rows(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	set := metrics.Summarize(rows, s.metricsOptions())
	statuses := benchmark.ClassifyAll(set)

	gauges := make(map[string]benchmark.GaugeRanges)
	for name := range set.Values {
		if g, ok := benchmark.Gauge(name); ok {
			gauges[name] = g
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics":  set.Values,
		"totals":   set.Totals,
		"statuses": statuses,
		"gauges":   gauges,
	})
}

// handleDaily returns per-day metric rows sorted by date, plus series
// statistics (mean, median, min, max, trend slope) when ?metric= is set.
func (s *Server) handleDaily(c *gin.Context) {
	rows, err := s.sessions.Rows(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	daily := metrics.Daily(rows, s.metricsOptions())
	sort.SliceStable(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })

	resp := gin.H{"data": daily, "count": len(daily)}
	if metric := c.Query("metric"); metric != "" {
		resp["series"] = metrics.SummarizeSeries(daily, metric)
	}
	c.JSON(http.StatusOK, resp)
}

// handleFunnel returns stage totals with step-by-step conversion rates.
func (s *Server) handleFunnel(c *gin.Context) {
	rows, err := s.sessions.Rows(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	set := metrics.Summarize(rows, s.metricsOptions())
	t := set.Totals

	type stage struct {
		Name       string  `json:"name"`
		Count      int64   `json:"count"`
		Conversion float64 `json:"conversion"`
	}
	counts := []stage{
		{Name: "Impressions", Count: t.Impressions},
		{Name: "Clicks", Count: t.Clicks},
		{Name: "Landing Page Views", Count: t.LPViews},
		{Name: "Adds to Cart", Count: t.AddsToCart},
		{Name: "Checkouts Initiated", Count: t.Checkouts},
		{Name: "Purchases", Count: t.Purchases},
	}
	for i := 1; i < len(counts); i++ {
		if prev := counts[i-1].Count; prev > 0 {
			counts[i].Conversion = float64(counts[i].Count) / float64(prev) * 100
		}
	}

	c.JSON(http.StatusOK, gin.H{"stages": counts})
}

func (s *Server) handleRecommendations(c *gin.Context) {
	rows, err := s.sessions.Rows(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	set := metrics.Summarize(rows, s.metricsOptions())
	issues := recommend.Evaluate(set)
	c.JSON(http.StatusOK, gin.H{"data": issues, "count": len(issues)})
}

func (s *Server) handleBenchmarks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": benchmark.Table()})
}

func (s *Server) handleNotes(c *gin.Context) {
	notes, err := s.sessions.Notes(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notes})
}

func (s *Server) handleRows(c *gin.Context) {
	rows, err := s.sessions.Rows(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "count": len(rows)})
}

// entityReport is one entity's slice of a comparison.
type entityReport struct {
	Entity   string                `json:"entity"`
	RowCount int                   `json:"row_count"`
	Metrics  ads.MetricSet         `json:"metrics"`
	Statuses map[string]ads.Status `json:"statuses"`
	Issues   []ads.Issue           `json:"issues"`
}

// handleCompare analyzes each named entity's rows independently. With no
// ?entities= filter every entity in the session is compared. Unknown
// names yield an empty slice rather than an error.
func (s *Server) handleCompare(c *gin.Context) {
	rows, err := s.sessions.Rows(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	byEntity := make(map[string][]ads.Row)
	for _, r := range rows {
		byEntity[r.EntityName] = append(byEntity[r.EntityName], r)
	}

	var names []string
	if q := c.Query("entities"); q != "" {
		for _, n := range strings.Split(q, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	} else {
		for name := range byEntity {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	reports := make([]entityReport, len(names))
	var mu sync.Mutex
	g, _ := errgroup.WithContext(c.Request.Context())
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			set := metrics.Summarize(byEntity[name], s.metricsOptions())
			rep := entityReport{
				Entity:   name,
				RowCount: len(byEntity[name]),
				Metrics:  set,
				Statuses: benchmark.ClassifyAll(set),
				Issues:   recommend.Evaluate(set),
			}
			mu.Lock()
			reports[i] = rep
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reports, "count": len(reports)})
}

func (s *Server) buildReport(c *gin.Context) (string, error) {
	id := c.Param("id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		return "", err
	}
	rows, err := s.sessions.Rows(id)
	if err != nil {
		return "", err
	}
	notes, err := s.sessions.Notes(id)
	if err != nil {
		return "", err
	}

	set := metrics.Summarize(rows, s.metricsOptions())
	daily := metrics.Daily(rows, s.metricsOptions())
	sort.SliceStable(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })

	return report.Markdown(report.Input{
		Title:          "Ad Performance Report",
		Source:         sess.Label,
		Metrics:        set,
		Statuses:       benchmark.ClassifyAll(set),
		Issues:         recommend.Evaluate(set),
		Daily:          daily,
		Notes:          notes,
		CurrencySymbol: s.cfg.Analytics.CurrencySymbol,
		GeneratedAt:    time.Now().UTC(),
	}), nil
}

func (s *Server) handleReport(c *gin.Context) {
	md, err := s.buildReport(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(report.HTML(md)))
}

func (s *Server) handleReportMarkdown(c *gin.Context) {
	md, err := s.buildReport(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}
