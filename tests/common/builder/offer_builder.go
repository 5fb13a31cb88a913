package builder

import (
	"time"

	"github.com/shopspring/decimal"

	"cruise-monitor/internal/domain/offer"
	"cruise-monitor/internal/domain/pricing"
)

func Dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func DecPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func StrPtr(s string) *string {
	return &s
}

// ListingRowBuilder builds listing rows with sensible defaults.
type ListingRowBuilder struct {
	row offer.ListingRow
}

func NewListingRowBuilder() *ListingRowBuilder {
	return &ListingRowBuilder{
		row: offer.ListingRow{
			JourneyID:      "J2609A001",
			Title:          "Kanaren & Madeira",
			RouteCode:      "X14A",
			RouteGroupCode: "KAN",
			ShipName:       "AIDAcosma",
			Duration:       7,
			StartDate:      "2026-09-12",
			EndDate:        "2026-09-19",
			Adults:         2,
			FlightIncluded: false,
			ListingAmount:  DecPtr(1299),
		},
	}
}

func (b *ListingRowBuilder) WithJourneyID(id string) *ListingRowBuilder {
	b.row.JourneyID = id
	return b
}

func (b *ListingRowBuilder) WithTitle(title string) *ListingRowBuilder {
	b.row.Title = title
	return b
}

func (b *ListingRowBuilder) WithShipName(name string) *ListingRowBuilder {
	b.row.ShipName = name
	return b
}

func (b *ListingRowBuilder) WithDuration(nights int) *ListingRowBuilder {
	b.row.Duration = nights
	return b
}

func (b *ListingRowBuilder) WithStartDate(date string) *ListingRowBuilder {
	b.row.StartDate = date
	return b
}

func (b *ListingRowBuilder) WithAdults(adults int) *ListingRowBuilder {
	b.row.Adults = adults
	return b
}

func (b *ListingRowBuilder) WithListingAmount(amount *decimal.Decimal) *ListingRowBuilder {
	b.row.ListingAmount = amount
	return b
}

func (b *ListingRowBuilder) WithLastPriceUpdate(ts *string) *ListingRowBuilder {
	b.row.LastPriceUpdate = ts
	return b
}

func (b *ListingRowBuilder) WithFlightIncluded(included bool) *ListingRowBuilder {
	b.row.FlightIncluded = included
	return b
}

func (b *ListingRowBuilder) Build() offer.ListingRow {
	return b.row
}

// OfferBuilder builds enriched records with detail fields populated.
type OfferBuilder struct {
	o offer.Offer
}

func NewOfferBuilder() *OfferBuilder {
	addedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	pnp := Dec(92.79)
	return &OfferBuilder{
		o: offer.Offer{
			JourneyID:      "J2609A001",
			Title:          "Kanaren & Madeira",
			RouteCode:      "X14A",
			RouteGroupCode: "KAN",
			ShipName:       "AIDAcosma",
			Duration:       7,
			StartDate:      "2026-09-12",
			EndDate:        "2026-09-19",
			Adults:         2,
			ListingAmount:  DecPtr(1299),
			AbsoluteLink:   offer.BuildFindLink("https://aida.de", "J2609A001", 2),
			Cheapest: &offer.PriceOffer{
				Code:   "I",
				Name:   "Innen",
				Amount: Dec(1299),
				PNP:    &pnp,
			},
			Alternatives: map[string]offer.PriceOffer{
				"I": {Name: "Innen", Amount: Dec(1299), PNP: &pnp},
			},
			LastPriceUpdate: StrPtr("2026-08-20T06:00:00Z"),
			AddedAt:         &addedAt,
		},
	}
}

func (b *OfferBuilder) WithJourneyID(id string) *OfferBuilder {
	b.o.JourneyID = id
	return b
}

func (b *OfferBuilder) WithListingAmount(amount *decimal.Decimal) *OfferBuilder {
	b.o.ListingAmount = amount
	return b
}

func (b *OfferBuilder) WithCheapest(cheapest *offer.PriceOffer) *OfferBuilder {
	b.o.Cheapest = cheapest
	return b
}

func (b *OfferBuilder) WithAlternatives(alts map[string]offer.PriceOffer) *OfferBuilder {
	b.o.Alternatives = alts
	return b
}

func (b *OfferBuilder) WithAddedAt(t *time.Time) *OfferBuilder {
	b.o.AddedAt = t
	return b
}

func (b *OfferBuilder) WithoutDetail() *OfferBuilder {
	b.o.Cheapest = nil
	b.o.Alternatives = nil
	b.o.LastPriceUpdate = nil
	return b
}

func (b *OfferBuilder) Build() offer.Offer {
	return b.o
}

// DetailBuilder builds detail payloads cabin by cabin.
type DetailBuilder struct {
	detail pricing.DetailResult
}

func NewDetailBuilder() *DetailBuilder {
	return &DetailBuilder{}
}

// WithCabin appends a cabin whose "cla" tariff carries a direct total amount.
func (b *DetailBuilder) WithCabin(code, name string, amount float64) *DetailBuilder {
	b.detail.Cabins = append(b.detail.Cabins, pricing.CabinVariant{
		CabinCode: code,
		CabinName: name,
		Cla:       &pricing.TariffOffer{Amount: DecPtr(amount)},
	})
	return b
}

func (b *DetailBuilder) WithCabinVariant(c pricing.CabinVariant) *DetailBuilder {
	b.detail.Cabins = append(b.detail.Cabins, c)
	return b
}

func (b *DetailBuilder) Build() *pricing.DetailResult {
	d := b.detail
	return &d
}
