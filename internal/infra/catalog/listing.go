package catalog

import (
	"github.com/shopspring/decimal"

	"cruise-monitor/internal/domain/offer"
	"cruise-monitor/internal/domain/pricing"
)

// listingResponse mirrors the bulk search endpoint. One cruise item groups
// several party-size-specific variants; only the variant level carries the
// journey identifier and the listing amount.
type listingResponse struct {
	CruiseItems []cruiseItem `json:"cruiseItems"`
}

type cruiseItem struct {
	Title          string          `json:"title"`
	Duration       int             `json:"duration"`
	RouteCode      string          `json:"routeCode"`
	RouteGroupCode string          `json:"routeGroupCode"`
	Variants       []cruiseVariant `json:"cruiseItemVariant"`
}

type cruiseVariant struct {
	JourneyIdentifier string             `json:"journeyIdentifier"`
	Ship              shipInfo           `json:"ship"`
	StartDate         string             `json:"startDate"`
	EndDate           string             `json:"endDate"`
	FlightIncluded    bool               `json:"flightIncluded"`
	Amount            *decimal.Decimal   `json:"amount"`
	Campaigns         []pricing.Campaign `json:"campaigns"`
}

type shipInfo struct {
	Name          string `json:"name"`
	MarketingName string `json:"marketingName"`
}

// extractRows flattens the grouped response into listing rows, keeping the
// first occurrence of each journey identifier.
func extractRows(resp *listingResponse, adults int) []offer.ListingRow {
	var out []offer.ListingRow
	seen := map[string]bool{}
	for _, ci := range resp.CruiseItems {
		for _, v := range ci.Variants {
			if v.JourneyIdentifier == "" || seen[v.JourneyIdentifier] {
				continue
			}
			seen[v.JourneyIdentifier] = true

			ship := v.Ship.MarketingName
			if ship == "" {
				ship = v.Ship.Name
			}

			var lastUpdate *string
			for _, camp := range v.Campaigns {
				if cd := camp.Validity.CurrentDate; cd != "" {
					lastUpdate = &cd
					break
				}
			}

			out = append(out, offer.ListingRow{
				JourneyID:       v.JourneyIdentifier,
				Title:           ci.Title,
				RouteCode:       ci.RouteCode,
				RouteGroupCode:  ci.RouteGroupCode,
				ShipName:        ship,
				Duration:        ci.Duration,
				StartDate:       v.StartDate,
				EndDate:         v.EndDate,
				Adults:          adults,
				FlightIncluded:  v.FlightIncluded,
				ListingAmount:   v.Amount,
				LastPriceUpdate: lastUpdate,
			})
		}
	}
	return out
}
