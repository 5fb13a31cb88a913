package response

import (
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"

	"cruise-monitor/internal/domain/offer"
	"cruise-monitor/internal/usecase/queries"
)

type PriceOfferResponse struct {
	Code        string   `json:"code,omitempty"`
	Name        string   `json:"name"`
	Amount      float64  `json:"amount"`
	PNP         *float64 `json:"pnp"`
	BookingLink string   `json:"bookingLink,omitempty"`
}

type OfferResponse struct {
	JourneyID       string                        `json:"journeyIdentifier"`
	Title           string                        `json:"title"`
	RouteCode       string                        `json:"routeCode,omitempty"`
	RouteGroupCode  string                        `json:"routeGroupCode,omitempty"`
	ShipName        string                        `json:"shipName"`
	Duration        int                           `json:"duration"`
	StartDate       string                        `json:"startDate"`
	EndDate         string                        `json:"endDate,omitempty"`
	Adults          int                           `json:"adults"`
	FlightIncluded  bool                          `json:"flightIncluded"`
	AbsoluteLink    string                        `json:"absLink,omitempty"`
	Cheapest        *PriceOfferResponse           `json:"cheapest,omitempty"`
	Alternatives    map[string]PriceOfferResponse `json:"alternatives,omitempty"`
	PNP             *float64                      `json:"pnp,omitempty"`
	Amount          *float64                      `json:"amount,omitempty"`
	PNPDelta        *float64                      `json:"pnpDelta,omitempty"`
	AmountDelta     *float64                      `json:"amountDelta,omitempty"`
	ChangeDate      *string                       `json:"changeDate,omitempty"`
	IsNew           bool                          `json:"isNew"`
	AddedAt         *int64                        `json:"addedAt,omitempty"`
	LastPriceUpdate *string                       `json:"lastAPIPriceUpdate,omitempty"`
}

type OfferListResponse struct {
	UpdatedAt int64           `json:"updated_at"`
	Count     int             `json:"count"`
	Items     []OfferResponse `json:"items"`
}

func FromOfferListView(v *queries.OfferListView) *OfferListResponse {
	items := make([]OfferResponse, len(v.Items))
	for i := range v.Items {
		items[i] = fromOfferView(&v.Items[i])
	}
	return &OfferListResponse{
		UpdatedAt: v.UpdatedAt.Unix(),
		Count:     v.Count,
		Items:     items,
	}
}

func fromOfferView(v *queries.OfferView) OfferResponse {
	var resp OfferResponse
	// Price fields need a decimal-to-float conversion, everything else maps
	// by name.
	_ = copier.Copy(&resp, v)

	resp.Cheapest = fromPriceOffer(v.Cheapest)
	if len(v.Alternatives) > 0 {
		resp.Alternatives = make(map[string]PriceOfferResponse, len(v.Alternatives))
		for code, alt := range v.Alternatives {
			a := alt
			resp.Alternatives[code] = *fromPriceOffer(&a)
		}
	}
	resp.PNP = floatPtr(v.PNP)
	resp.Amount = floatPtr(v.Amount)
	resp.PNPDelta = floatPtr(v.PNPDelta)
	resp.AmountDelta = floatPtr(v.AmountDelta)
	if v.AddedAt != nil {
		ts := v.AddedAt.Unix()
		resp.AddedAt = &ts
	}
	return resp
}

func fromPriceOffer(p *offer.PriceOffer) *PriceOfferResponse {
	if p == nil {
		return nil
	}
	return &PriceOfferResponse{
		Code:        p.Code,
		Name:        p.Name,
		Amount:      p.Amount.InexactFloat64(),
		PNP:         floatPtr(p.PNP),
		BookingLink: p.BookingLink,
	}
}

func floatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	return floatVal(*d)
}

func floatVal(d decimal.Decimal) *float64 {
	f := d.InexactFloat64()
	return &f
}

type HistoryPointResponse struct {
	T      int64    `json:"t"`
	PNP    *float64 `json:"pnp"`
	Amount *float64 `json:"amount,omitempty"`
}

type HistoryResponse struct {
	JourneyID string                            `json:"journeyIdentifier"`
	Labels    map[string]string                 `json:"labels"`
	Series    map[string][]HistoryPointResponse `json:"series"`
}

func FromHistoryView(v *queries.HistoryView) *HistoryResponse {
	series := make(map[string][]HistoryPointResponse, len(v.Series))
	for code, points := range v.Series {
		out := make([]HistoryPointResponse, len(points))
		for i, p := range points {
			out[i] = HistoryPointResponse{
				T:      p.At.Unix(),
				PNP:    floatVal(p.PNP),
				Amount: floatPtr(p.Amount),
			}
		}
		series[code] = out
	}
	return &HistoryResponse{JourneyID: v.JourneyID, Labels: v.Labels, Series: series}
}
