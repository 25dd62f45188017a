package meta

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strconv"
	"time"

	"adpulse/domain/ads"
	"adpulse/internal/normalize"
)

// insightFields lists everything the canonical row needs from the
// insights endpoint. Funnel counts ride in actions; revenue in
// action_values.
const insightFields = "date_start,date_stop,campaign_name,adset_name,ad_name," +
	"impressions,clicks,reach,frequency,spend,actions,action_values"

// InsightsQuery describes one pull of daily insight rows.
type InsightsQuery struct {
	Level             Level
	EntityIDs         []string
	Range             DateRange
	AverageOrderValue float64
}

// Insights fetches daily rows for the query, walking all result pages,
// and converts them into canonical rows sorted as returned by the API.
func (c *Client) Insights(ctx context.Context, q InsightsQuery) ([]ads.Row, error) {
	params := url.Values{}
	params.Set("level", string(q.Level))
	params.Set("fields", insightFields)
	params.Set("time_increment", "1")
	params.Set("limit", "500")

	if q.Range.Since != "" && q.Range.Until != "" {
		timeRange, _ := json.Marshal(map[string]string{
			"since": q.Range.Since,
			"until": q.Range.Until,
		})
		params.Set("time_range", string(timeRange))
	} else {
		preset := q.Range.Preset
		if preset == "" {
			preset = "last_30d"
		}
		params.Set("date_preset", preset)
	}

	if len(q.EntityIDs) > 0 {
		filter, _ := json.Marshal([]map[string]any{{
			"field":    q.Level.filterField(),
			"operator": "IN",
			"value":    q.EntityIDs,
		}})
		params.Set("filtering", string(filter))
	}

	next := c.endpoint(c.accountID+"/insights", params)

	var raw []insightRow
	for next != "" {
		var page insightsPage
		if err := c.get(ctx, next, &page); err != nil {
			return nil, err
		}
		raw = append(raw, page.Data...)
		next = page.Paging.Next
	}

	log.Printf("[MetaClient] Fetched %d insight rows (level=%s, entities=%d)",
		len(raw), q.Level, len(q.EntityIDs))

	rows := make([]ads.Row, 0, len(raw))
	for _, ir := range raw {
		rows = append(rows, c.toRow(ir, q))
	}
	return rows, nil
}

// toRow converts one wire record into the canonical row shape.
func (c *Client) toRow(ir insightRow, q InsightsQuery) ads.Row {
	funnel := normalize.ExtractFunnelActions(toActions(ir.Actions))
	purchases := funnel.Purchases
	revenue := normalize.ExtractRevenue(toActions(ir.ActionValues), purchases, q.AverageOrderValue)

	name := ir.CampaignName
	switch q.Level.nameField() {
	case "adset_name":
		name = ir.AdSetName
	case "ad_name":
		name = ir.AdName
	}

	date, err := time.Parse("2006-01-02", ir.DateStart)
	if err != nil {
		date = time.Time{}
	}

	return ads.Row{
		Date:        date,
		EntityName:  name,
		Impressions: parseCount(ir.Impressions),
		Clicks:      parseCount(ir.Clicks),
		Reach:       parseCount(ir.Reach),
		Frequency:   parseFloat(ir.Frequency),
		Spend:       parseFloat(ir.Spend),
		LPViews:     funnel.LPViews,
		AddsToCart:  funnel.AddsToCart,
		Checkouts:   funnel.Checkouts,
		Purchases:   purchases,
		Revenue:     revenue,
	}
}

func toActions(in []action) []normalize.Action {
	out := make([]normalize.Action, 0, len(in))
	for _, a := range in {
		out = append(out, normalize.Action{Type: a.ActionType, Value: parseFloat(a.Value)})
	}
	return out
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseCount(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
