package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:     srv.URL,
		APIVersion:  "v19.0",
		AccessToken: "test-token",
		AdAccountID: "123",
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)
	return client, srv
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{AdAccountID: "123"})
	assert.Error(t, err, "missing token must be rejected")

	_, err = NewClient(Config{AccessToken: "tok"})
	assert.Error(t, err, "missing account must be rejected")

	client, err := NewClient(Config{AccessToken: "tok", AdAccountID: "act_99"})
	require.NoError(t, err)
	assert.Equal(t, "act_99", client.AccountID(), "act_ prefix not duplicated")
}

func TestListCampaignsFollowsPaging(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/v19.0/act_123/campaigns", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))

		if r.URL.Query().Get("after") == "cursor1" {
			json.NewEncoder(w).Encode(entityPage{
				Data: []Entity{{ID: "c2", Name: "Retarget", Status: "PAUSED"}},
			})
			return
		}
		json.NewEncoder(w).Encode(entityPage{
			Data: []Entity{{ID: "c1", Name: "Prospecting", Status: "ACTIVE"}},
			Paging: paging{
				Next: srvURL + "/v19.0/act_123/campaigns?access_token=test-token&after=cursor1",
			},
		})
	})

	client, srv := newTestClient(t, mux)
	srvURL = srv.URL

	campaigns, err := client.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, "c1", campaigns[0].ID)
	assert.Equal(t, "c2", campaigns[1].ID)
}

func TestListCampaignsGraphError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v19.0/act_123/campaigns", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid OAuth access token","type":"OAuthException","code":190}}`)
	})

	client, _ := newTestClient(t, mux)
	_, err := client.ListCampaigns(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid OAuth access token")
	assert.Contains(t, err.Error(), "190")
}

func TestInsightsConvertsRows(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v19.0/act_123/insights", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "campaign", q.Get("level"))
		assert.Equal(t, "1", q.Get("time_increment"))
		assert.Equal(t, "last_7d", q.Get("date_preset"))
		assert.Contains(t, q.Get("filtering"), "campaign.id")
		assert.Contains(t, q.Get("filtering"), "c1")

		json.NewEncoder(w).Encode(insightsPage{Data: []insightRow{{
			DateStart:    "2024-01-01",
			CampaignName: "Prospecting",
			Impressions:  "1000",
			Clicks:       "50",
			Reach:        "800",
			Frequency:    "1.25",
			Spend:        "500.50",
			Actions: []action{
				{ActionType: "landing_page_view", Value: "45"},
				{ActionType: "add_to_cart", Value: "10"},
				{ActionType: "initiate_checkout", Value: "7"},
				{ActionType: "purchase", Value: "4"},
			},
			ActionValues: []action{
				{ActionType: "purchase", Value: "2400"},
			},
		}}})
	})

	client, _ := newTestClient(t, mux)
	rows, err := client.Insights(context.Background(), InsightsQuery{
		Level:             LevelCampaign,
		EntityIDs:         []string{"c1"},
		Range:             DateRange{Preset: "last_7d"},
		AverageOrderValue: 600,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Prospecting", row.EntityName)
	assert.Equal(t, "2024-01-01", row.Date.Format("2006-01-02"))
	assert.Equal(t, int64(1000), row.Impressions)
	assert.Equal(t, int64(50), row.Clicks)
	assert.Equal(t, int64(800), row.Reach)
	assert.InDelta(t, 1.25, row.Frequency, 1e-9)
	assert.InDelta(t, 500.50, row.Spend, 1e-9)
	assert.Equal(t, int64(45), row.LPViews)
	assert.Equal(t, int64(10), row.AddsToCart)
	assert.Equal(t, int64(7), row.Checkouts)
	assert.Equal(t, int64(4), row.Purchases)
	assert.InDelta(t, 2400.0, row.Revenue, 1e-9)
}

func TestInsightsAOVFallbackAndTimeRange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v19.0/act_123/insights", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Empty(t, q.Get("date_preset"))
		assert.Contains(t, q.Get("time_range"), "2024-01-01")
		assert.Contains(t, q.Get("time_range"), "2024-01-31")
		assert.Equal(t, "adset", q.Get("level"))

		json.NewEncoder(w).Encode(insightsPage{Data: []insightRow{{
			DateStart: "2024-01-05",
			AdSetName: "Lookalike 1%",
			Spend:     "600",
			Actions:   []action{{ActionType: "purchase", Value: "2"}},
		}}})
	})

	client, _ := newTestClient(t, mux)
	rows, err := client.Insights(context.Background(), InsightsQuery{
		Level:             LevelAdSet,
		Range:             DateRange{Since: "2024-01-01", Until: "2024-01-31"},
		AverageOrderValue: 600,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Lookalike 1%", rows[0].EntityName)
	assert.Equal(t, int64(2), rows[0].Purchases)
	assert.InDelta(t, 1200.0, rows[0].Revenue, 1e-9, "2 purchases x 600 AOV")
}
