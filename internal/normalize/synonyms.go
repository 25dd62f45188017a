package normalize

// Canonical field keys used by the column resolver.
const (
	FieldDate        = "date"
	FieldImpressions = "impressions"
	FieldClicks      = "clicks"
	FieldLPViews     = "lp_views"
	FieldAddsToCart  = "adds_to_cart"
	FieldCheckouts   = "checkouts"
	FieldSpend       = "spend"
	FieldPurchases   = "purchases"
)

// columnSynonyms maps each canonical field to an ordered list of
// case-insensitive substrings tested against sheet column names. The first
// synonym that matches any column wins, so more specific strings come
// first ("link clicks" before "clicks").
var columnSynonyms = map[string][]string{
	FieldDate:        {"day", "date"},
	FieldImpressions: {"impressions"},
	FieldClicks:      {"clicks (all)", "link clicks", "clicks"},
	FieldLPViews:     {"landing page views", "landing page view"},
	FieldAddsToCart:  {"adds to cart", "add to cart"},
	FieldCheckouts:   {"checkouts initiated", "checkout"},
	FieldSpend:       {"amount spent"},
	FieldPurchases:   {"results", "website purchase"},
}

// requiredFields are the canonical fields a sheet must resolve beyond the
// date column. A sheet missing any of them is rejected with zero rows.
var requiredFields = []string{
	FieldImpressions,
	FieldClicks,
	FieldLPViews,
	FieldAddsToCart,
	FieldCheckouts,
	FieldSpend,
	FieldPurchases,
}

// Synonyms returns the match strings for a canonical field. Exposed so the
// UI can tell users which column names are accepted.
func Synonyms(field string) []string {
	syns := columnSynonyms[field]
	out := make([]string, len(syns))
	copy(out, syns)
	return out
}
