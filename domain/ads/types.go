package ads

import "time"

// Row is one normalized observation: one reporting day for one entity
// (campaign, ad set, ad, or spreadsheet sheet). All sources funnel into
// this shape before any metric is computed.
type Row struct {
	Date       time.Time `json:"date"`
	EntityName string    `json:"entity_name"`

	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
	LPViews     int64 `json:"lp_views"`
	AddsToCart  int64 `json:"adds_to_cart"`
	Checkouts   int64 `json:"checkouts"`
	Purchases   int64 `json:"purchases"`
	Reach       int64 `json:"reach"`

	Spend   float64 `json:"spend"`
	Revenue float64 `json:"revenue"`

	// Frequency is the upstream-reported impressions per unique reached
	// user. Spreadsheet sources do not carry it and leave it zero.
	Frequency float64 `json:"frequency"`
}

// Funnel counters are expected to be non-increasing in this order, but the
// ordering is NOT enforced: real exports violate it (direct purchases
// without a tracked checkout) and downstream ratios simply exceed 100%.
var FunnelStages = []string{
	"impressions",
	"clicks",
	"lp_views",
	"adds_to_cart",
	"checkouts",
	"purchases",
}

// Totals holds the raw summed counters and amounts for a row set.
type Totals struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	LPViews     int64   `json:"lp_views"`
	AddsToCart  int64   `json:"adds_to_cart"`
	Checkouts   int64   `json:"checkouts"`
	Purchases   int64   `json:"purchases"`
	Reach       int64   `json:"reach"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
}

// MetricSet is the computed, never-persisted output of the metrics engine:
// a flat mapping of metric name to value plus the raw totals.
type MetricSet struct {
	Values map[string]float64 `json:"values"`
	Totals Totals             `json:"totals"`
}

// Get returns a metric value and whether it is present.
func (m MetricSet) Get(name string) (float64, bool) {
	v, ok := m.Values[name]
	return v, ok
}

// Metric names. The set is fixed; presentation layers key off these.
const (
	MetricCTR            = "CTR"
	MetricLPViewRate     = "LP_View_Rate"
	MetricATCRate        = "ATC_Rate"
	MetricCheckoutRate   = "Checkout_Rate"
	MetricPurchaseRate   = "Purchase_Rate"
	MetricOverallCVR     = "Overall_CVR"
	MetricCPC            = "CPC"
	MetricCPA            = "CPA"
	MetricROAS           = "ROAS"
	MetricACoS           = "ACoS"
	MetricFrequency      = "Frequency"
	MetricFrequencyProxy = "Frequency_Proxy"
)

// DailyRow is one row of the day-over-day metrics table: the same ratio
// formulas applied to a single Row, no cross-row aggregation.
type DailyRow struct {
	Date       time.Time          `json:"date"`
	EntityName string             `json:"entity_name"`
	Spend      float64            `json:"spend"`
	Purchases  int64              `json:"purchases"`
	Values     map[string]float64 `json:"values"`
}

// Status is the three-band classification of a metric against its
// benchmark entry. Neutral means the metric has no benchmark.
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusCritical  Status = "critical"
	StatusNeutral   Status = "neutral"
)

// Polarity says which direction of a metric is desirable.
type Polarity int

const (
	HigherIsBetter Polarity = iota
	LowerIsBetter
)

// Benchmark is a static three-band entry for one metric. For
// HigherIsBetter, Min is the acceptability floor and Ideal the target.
// For LowerIsBetter the bound semantics swap: Max is the best (lowest)
// acceptable value and Ideal the upper edge of "good".
type Benchmark struct {
	Min      float64  `json:"min"`
	Ideal    float64  `json:"ideal"`
	Max      float64  `json:"max"`
	Unit     string   `json:"unit"`
	Polarity Polarity `json:"-"`
}

// Priority ranks a recommendation issue. Lower rank sorts first.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
)

// Rank returns the sort rank of a priority: CRITICAL=0, HIGH=1, MEDIUM=2.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	default:
		return 2
	}
}

// Issue is one detected performance problem with remediation actions.
// Ephemeral: recomputed on every view change, never cached.
type Issue struct {
	Priority    Priority `json:"priority"`
	Metric      string   `json:"metric"`
	MetricLabel string   `json:"metric_label"`
	Current     float64  `json:"current"`
	Target      float64  `json:"target"`
	Actions     []string `json:"actions"`
}

// SheetResult is the outcome of normalizing one spreadsheet sheet. A
// rejected sheet carries zero rows but keeps its free-text notes.
type SheetResult struct {
	Source string   `json:"source"`
	Rows   []Row    `json:"rows"`
	Notes  []string `json:"notes"`
}
