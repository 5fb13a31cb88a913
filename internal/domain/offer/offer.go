package offer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceEpsilon is the smallest price movement (in currency units) treated as
// a real change, both for history de-duplication and drop detection.
var PriceEpsilon = decimal.NewFromFloat(0.001)

// PriceOffer is the best price found for one cabin variant.
type PriceOffer struct {
	Code        string           `json:"code,omitempty"`
	Name        string           `json:"name"`
	Amount      decimal.Decimal  `json:"amount"`
	PNP         *decimal.Decimal `json:"pnp"`
	BookingLink string           `json:"bookingLink,omitempty"`
}

// ListingRow is one party-size-specific variant extracted from the bulk
// listing response. Meta fields here always win over the stored record.
type ListingRow struct {
	JourneyID       string
	Title           string
	RouteCode       string
	RouteGroupCode  string
	ShipName        string
	Duration        int
	StartDate       string
	EndDate         string
	Adults          int
	FlightIncluded  bool
	ListingAmount   *decimal.Decimal
	LastPriceUpdate *string
}

// Offer is the enriched, persisted record for one journey. Detail-derived
// fields (Cheapest, Alternatives, LastPriceUpdate) survive meta-only
// refreshes and are only replaced by a successful detail fetch.
type Offer struct {
	JourneyID       string                `json:"journeyIdentifier"`
	Title           string                `json:"title,omitempty"`
	RouteCode       string                `json:"routeCode,omitempty"`
	RouteGroupCode  string                `json:"routeGroupCode,omitempty"`
	ShipName        string                `json:"shipName,omitempty"`
	Duration        int                   `json:"duration,omitempty"`
	StartDate       string                `json:"startDate,omitempty"`
	EndDate         string                `json:"endDate,omitempty"`
	Adults          int                   `json:"adults,omitempty"`
	FlightIncluded  bool                  `json:"flightIncluded"`
	ListingAmount   *decimal.Decimal      `json:"listAmount,omitempty"`
	AbsoluteLink    string                `json:"absLink,omitempty"`
	Cheapest        *PriceOffer           `json:"cheapest,omitempty"`
	Alternatives    map[string]PriceOffer `json:"alternatives,omitempty"`
	LastPriceUpdate *string               `json:"lastAPIPriceUpdate,omitempty"`
	AddedAt         *time.Time            `json:"addedAt,omitempty"`
}

// CheapestAmount returns the total amount of the selected cheapest variant.
func (o *Offer) CheapestAmount() *decimal.Decimal {
	if o.Cheapest == nil {
		return nil
	}
	amt := o.Cheapest.Amount
	return &amt
}

// CheapestPNP returns the price per night per person of the cheapest variant,
// falling back to amount/duration/adults when the dedicated field is absent.
func (o *Offer) CheapestPNP() *decimal.Decimal {
	if o.Cheapest == nil {
		return nil
	}
	if o.Cheapest.PNP != nil {
		pnp := *o.Cheapest.PNP
		return &pnp
	}
	if o.Duration <= 0 || o.Adults <= 0 {
		return nil
	}
	pnp := o.Cheapest.Amount.
		Div(decimal.NewFromInt(int64(o.Duration))).
		Div(decimal.NewFromInt(int64(o.Adults)))
	return &pnp
}

// Snapshot is the full persisted collection for one party size.
type Snapshot struct {
	UpdatedAt time.Time `json:"updated_at"`
	Count     int       `json:"count"`
	Items     []Offer   `json:"items"`
}

func NewSnapshot(updatedAt time.Time, items []Offer) *Snapshot {
	return &Snapshot{UpdatedAt: updatedAt, Count: len(items), Items: items}
}

// MapByJourney indexes the snapshot items by journey identifier.
func (s *Snapshot) MapByJourney() map[string]Offer {
	m := make(map[string]Offer, len(s.Items))
	for _, it := range s.Items {
		if it.JourneyID != "" {
			m[it.JourneyID] = it
		}
	}
	return m
}

// BuildFindLink derives the deep link into the booking site for one journey.
func BuildFindLink(siteBaseURL, journeyID string, adults int) string {
	return fmt.Sprintf("%s/finden/%s/CLASSIC?pax[adults]=%d&pax[juveniles]=0&pax[children]=0&pax[babies]=0",
		siteBaseURL, journeyID, adults)
}
