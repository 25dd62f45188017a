package meta

// Level selects the aggregation granularity of an insights query.
type Level string

const (
	LevelCampaign Level = "campaign"
	LevelAdSet    Level = "adset"
	LevelAd       Level = "ad"
)

// filterField returns the Graph filter field used to narrow an insights
// query to specific entities at this level.
func (l Level) filterField() string {
	switch l {
	case LevelAdSet:
		return "adset.id"
	case LevelAd:
		return "ad.id"
	default:
		return "campaign.id"
	}
}

// nameField returns the insights response field carrying the entity name.
func (l Level) nameField() string {
	switch l {
	case LevelAdSet:
		return "adset_name"
	case LevelAd:
		return "ad_name"
	default:
		return "campaign_name"
	}
}

// Entity is one campaign, ad set or ad from the listing endpoints.
type Entity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// DateRange is either a preset (last_7d, last_30d, this_month) or an
// explicit since/until pair. Since/Until win when both are set.
type DateRange struct {
	Preset string `json:"preset,omitempty"`
	Since  string `json:"since,omitempty"`
	Until  string `json:"until,omitempty"`
}

// action mirrors one entry of the Graph actions / action_values arrays.
type action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// insightRow is one daily record from the insights endpoint. Numeric
// fields arrive as strings on the wire.
type insightRow struct {
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	CampaignName string   `json:"campaign_name"`
	AdSetName    string   `json:"adset_name"`
	AdName       string   `json:"ad_name"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	Reach        string   `json:"reach"`
	Frequency    string   `json:"frequency"`
	Spend        string   `json:"spend"`
	Actions      []action `json:"actions"`
	ActionValues []action `json:"action_values"`
}

// paging mirrors the Graph cursor envelope; Next is a complete URL.
type paging struct {
	Next string `json:"next"`
}

type entityPage struct {
	Data   []Entity `json:"data"`
	Paging paging   `json:"paging"`
}

type insightsPage struct {
	Data   []insightRow `json:"data"`
	Paging paging       `json:"paging"`
}

// apiError mirrors the Graph error envelope.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}
