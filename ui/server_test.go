package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpulse/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Server.GinMode = gin.TestMode
	cfg.Meta.BaseURL = "http://127.0.0.1:0"
	cfg.Meta.APIVersion = "v19.0"
	cfg.Meta.HTTPTimeout = time.Second
	cfg.Analytics.AverageOrderValue = 600
	cfg.Analytics.CurrencySymbol = "₹"
	return NewServer(cfg)
}

const sampleCSV = `Day,Impressions,Link clicks,Landing page views,Adds to cart,Checkouts initiated,Amount spent,Results
2024-01-01,6000,90,80,12,8,900,5
2024-01-02,4000,60,55,8,6,600,3
Note: paused campaign due to inventory,,,,,,,
`

func uploadCSV(t *testing.T, s *Server, body string) string {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "report.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		SessionID string `json:"session_id"`
		RowCount  int    `json:"row_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func getJSON(t *testing.T, s *Server, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestUploadAndMetrics(t *testing.T) {
	s := newTestServer()
	id := uploadCSV(t, s, sampleCSV)

	var resp struct {
		Metrics  map[string]float64 `json:"metrics"`
		Statuses map[string]string  `json:"statuses"`
		Totals   struct {
			Impressions int64 `json:"impressions"`
		} `json:"totals"`
	}
	rec := getJSON(t, s, "/api/sessions/"+id+"/metrics", &resp)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(10000), resp.Totals.Impressions)
	assert.InDelta(t, 1.5, resp.Metrics["CTR"], 0.001)
	assert.InDelta(t, 90.0, resp.Metrics["LP_View_Rate"], 0.001)
	assert.Equal(t, "excellent", resp.Statuses["CTR"])
}

func TestUploadUnusableFileReturns422(t *testing.T) {
	s := newTestServer()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "plan.csv")
	fw.Write([]byte("Campaign,Budget\nSummer,10000\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUploadMissingFileField(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownSessionReturns404(t *testing.T) {
	s := newTestServer()
	rec := getJSON(t, s, "/api/sessions/does-not-exist/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFunnelStages(t *testing.T) {
	s := newTestServer()
	id := uploadCSV(t, s, sampleCSV)

	var resp struct {
		Stages []struct {
			Name       string  `json:"name"`
			Count      int64   `json:"count"`
			Conversion float64 `json:"conversion"`
		} `json:"stages"`
	}
	rec := getJSON(t, s, "/api/sessions/"+id+"/funnel", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Stages, 6)

	assert.Equal(t, "Impressions", resp.Stages[0].Name)
	assert.Equal(t, int64(10000), resp.Stages[0].Count)
	assert.Equal(t, int64(150), resp.Stages[1].Count)
	assert.InDelta(t, 1.5, resp.Stages[1].Conversion, 0.001)
	assert.Equal(t, int64(8), resp.Stages[5].Count)
}

func TestRecommendationsOrdered(t *testing.T) {
	s := newTestServer()
	// Weak CTR and checkout rate: 20 clicks on 10000 impressions, and
	// 1 checkout from 10 carts.
	csv := "Day,Impressions,Link clicks,Landing page views,Adds to cart,Checkouts initiated,Amount spent,Results\n" +
		"2024-01-01,10000,20,18,10,1,900,1\n"
	id := uploadCSV(t, s, csv)

	var resp struct {
		Data []struct {
			Priority string `json:"priority"`
			Metric   string `json:"metric"`
		} `json:"data"`
	}
	rec := getJSON(t, s, "/api/sessions/"+id+"/recommendations", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, resp.Data)

	assert.Equal(t, "CRITICAL", resp.Data[0].Priority)
	assert.Equal(t, "Checkout_Rate", resp.Data[0].Metric)
}

func TestNotesEndpoint(t *testing.T) {
	s := newTestServer()
	id := uploadCSV(t, s, sampleCSV)

	var resp struct {
		Data map[string][]string `json:"data"`
	}
	rec := getJSON(t, s, "/api/sessions/"+id+"/notes", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Note: paused campaign due to inventory"}, resp.Data["report"])
}

func TestDailyWithSeries(t *testing.T) {
	s := newTestServer()
	id := uploadCSV(t, s, sampleCSV)

	var resp struct {
		Count  int `json:"count"`
		Series struct {
			Metric string  `json:"metric"`
			Mean   float64 `json:"mean"`
		} `json:"series"`
	}
	rec := getJSON(t, s, "/api/sessions/"+id+"/daily?metric=CTR", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "CTR", resp.Series.Metric)
	assert.InDelta(t, 1.5, resp.Series.Mean, 0.001)
}

func TestCompareDefaultsToAllEntities(t *testing.T) {
	s := newTestServer()
	id := uploadCSV(t, s, sampleCSV)

	var resp struct {
		Count int `json:"count"`
		Data  []struct {
			Entity   string `json:"entity"`
			RowCount int    `json:"row_count"`
		} `json:"data"`
	}
	rec := getJSON(t, s, "/api/sessions/"+id+"/compare", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "report", resp.Data[0].Entity)
	assert.Equal(t, 2, resp.Data[0].RowCount)
}

func TestBenchmarksEndpoint(t *testing.T) {
	s := newTestServer()

	var resp struct {
		Data map[string]struct {
			Min   float64 `json:"min"`
			Ideal float64 `json:"ideal"`
			Max   float64 `json:"max"`
		} `json:"data"`
	}
	rec := getJSON(t, s, "/api/benchmarks", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 0.9, resp.Data["CTR"].Min, 1e-9)
	assert.InDelta(t, 25.0, resp.Data["ACoS"].Ideal, 1e-9)
}

func TestReportEndpoints(t *testing.T) {
	s := newTestServer()
	id := uploadCSV(t, s, sampleCSV)

	rec := getJSON(t, s, "/api/sessions/"+id+"/report.md", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# Ad Performance Report")
	assert.Contains(t, rec.Body.String(), "## Funnel")

	rec = getJSON(t, s, "/api/sessions/"+id+"/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<h1")
}

func TestMetaEndpointsRequireConnect(t *testing.T) {
	s := newTestServer()
	rec := getJSON(t, s, "/api/meta/campaigns", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/meta/fetch", strings.NewReader(`{"level":"campaign"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionListAndDelete(t *testing.T) {
	s := newTestServer()
	id := uploadCSV(t, s, sampleCSV)

	var resp struct {
		Count int `json:"count"`
	}
	rec := getJSON(t, s, "/api/sessions", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, resp.Count)

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/"+id, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	rec = getJSON(t, s, "/api/sessions/"+id+"/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
