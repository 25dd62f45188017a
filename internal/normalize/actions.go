package normalize

import "strings"

// Action is one {action_type, value} pair from an insights record.
type Action struct {
	Type  string
	Value float64
}

// FunnelCounts are the funnel sub-counts extracted from an insight's
// action list.
type FunnelCounts struct {
	LPViews    int64
	AddsToCart int64
	Checkouts  int64
	Purchases  int64
}

// Pixel-prefixed variants reported for offsite conversions.
const (
	pixelAddToCart        = "offsite_conversion.fb_pixel_add_to_cart"
	pixelInitiateCheckout = "offsite_conversion.fb_pixel_initiate_checkout"
	pixelPurchase         = "offsite_conversion.fb_pixel_purchase"
)

// ExtractFunnelActions maps an insight's actions onto funnel sub-counts
// using substring/exact matches against the known action-type vocabulary.
// Later entries overwrite earlier ones for the same stage, mirroring how
// the upstream API orders aggregate types last.
func ExtractFunnelActions(actions []Action) FunnelCounts {
	var counts FunnelCounts
	for _, a := range actions {
		switch {
		case strings.Contains(a.Type, "landing_page_view"):
			counts.LPViews = int64(a.Value)
		case strings.Contains(a.Type, "add_to_cart") || a.Type == pixelAddToCart:
			counts.AddsToCart = int64(a.Value)
		case strings.Contains(a.Type, "initiate_checkout") || a.Type == pixelInitiateCheckout:
			counts.Checkouts = int64(a.Value)
		case strings.Contains(a.Type, "purchase") || a.Type == pixelPurchase:
			counts.Purchases = int64(a.Value)
		}
	}
	return counts
}

// ExtractRevenue pulls true purchase revenue out of the action_values
// list. When no purchase value is present, revenue is estimated as
// purchases multiplied by the configured average order value.
func ExtractRevenue(actionValues []Action, purchases int64, averageOrderValue float64) float64 {
	for _, av := range actionValues {
		if strings.Contains(av.Type, "purchase") || av.Type == pixelPurchase {
			return av.Value
		}
	}
	if purchases > 0 {
		return float64(purchases) * averageOrderValue
	}
	return 0
}
