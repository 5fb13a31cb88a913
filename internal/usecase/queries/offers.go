package queries

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cruise-monitor/internal/domain/history"
	"cruise-monitor/internal/domain/offer"
	"cruise-monitor/internal/domain/pricing"
	"cruise-monitor/internal/pkg/clock"
	"cruise-monitor/internal/pkg/config"
	"cruise-monitor/internal/pkg/errs"
)

var ErrJourneyNotFound = errs.New("journey not found")

// Read models (DTO for read side)
type OfferView struct {
	JourneyID       string                      `json:"journeyIdentifier"`
	Title           string                      `json:"title"`
	RouteCode       string                      `json:"routeCode,omitempty"`
	RouteGroupCode  string                      `json:"routeGroupCode,omitempty"`
	ShipName        string                      `json:"shipName"`
	Duration        int                         `json:"duration"`
	StartDate       string                      `json:"startDate"`
	EndDate         string                      `json:"endDate,omitempty"`
	Adults          int                         `json:"adults"`
	FlightIncluded  bool                        `json:"flightIncluded"`
	AbsoluteLink    string                      `json:"absLink,omitempty"`
	Cheapest        *offer.PriceOffer           `json:"cheapest,omitempty"`
	Alternatives    map[string]offer.PriceOffer `json:"alternatives,omitempty"`
	PNP             *decimal.Decimal            `json:"pnp,omitempty"`
	Amount          *decimal.Decimal            `json:"amount,omitempty"`
	PNPDelta        *decimal.Decimal            `json:"pnpDelta,omitempty"`
	AmountDelta     *decimal.Decimal            `json:"amountDelta,omitempty"`
	ChangeDate      *string                     `json:"changeDate,omitempty"`
	IsNew           bool                        `json:"isNew"`
	AddedAt         *time.Time                  `json:"addedAt,omitempty"`
	LastPriceUpdate *string                     `json:"lastAPIPriceUpdate,omitempty"`
}

type OfferListView struct {
	UpdatedAt time.Time   `json:"updated_at"`
	Count     int         `json:"count"`
	Items     []OfferView `json:"items"`
}

type HistoryView struct {
	JourneyID string                     `json:"journeyIdentifier"`
	Labels    map[string]string          `json:"labels"`
	Series    map[string][]history.Point `json:"series"`
}

// ListParams are the web filters. Zero values mean "no restriction"; MinCabin
// names the lowest acceptable cabin category by code.
type ListParams struct {
	Adults   int
	Ship     string
	From     string // inclusive start date bound, YYYY-MM-DD
	To       string // inclusive start date bound, YYYY-MM-DD
	MinDays  int
	MaxDays  int
	MinCabin string
}

type OfferQueries interface {
	List(ctx context.Context, params ListParams) (*OfferListView, error)
	History(ctx context.Context, adults int, journeyID string) (*HistoryView, error)
}

// SnapshotReadStore is the read-side slice of the record store.
type SnapshotReadStore interface {
	LoadSnapshot(adults int) (*offer.Snapshot, error)
	LoadPrevSnapshot(adults int) (*offer.Snapshot, error)
	LoadHistory(adults int) (history.Book, error)
}

type offerQueriesImpl struct {
	store SnapshotReadStore
	cache config.CacheConfig
	clock clock.Clock
}

func NewOfferQueries(store SnapshotReadStore, cache config.CacheConfig, clock clock.Clock) OfferQueries {
	return &offerQueriesImpl{store: store, cache: cache, clock: clock}
}

func (q *offerQueriesImpl) List(_ context.Context, params ListParams) (*OfferListView, error) {
	adults := clampAdults(params.Adults)

	snap, err := q.store.LoadSnapshot(adults)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return &OfferListView{Items: []OfferView{}}, nil
	}

	var prevByID map[string]offer.Offer
	var prevUpdatedAt time.Time
	if prev, err := q.store.LoadPrevSnapshot(adults); err == nil && prev != nil {
		prevByID = prev.MapByJourney()
		prevUpdatedAt = prev.UpdatedAt
	}

	newCutoff := q.clock.Now().AddDate(0, 0, -q.cache.NewBadgeDays)

	items := make([]OfferView, 0, len(snap.Items))
	for i := range snap.Items {
		o := snap.Items[i]
		if !matches(&o, params) {
			continue
		}

		cheapest, alts := applyMinCabin(&o, params.MinCabin)
		if params.MinCabin != "" && cheapest == nil {
			// No cabin of the requested category or better is on sale.
			continue
		}

		view := OfferView{
			JourneyID:       o.JourneyID,
			Title:           o.Title,
			RouteCode:       o.RouteCode,
			RouteGroupCode:  o.RouteGroupCode,
			ShipName:        o.ShipName,
			Duration:        o.Duration,
			StartDate:       o.StartDate,
			EndDate:         o.EndDate,
			Adults:          o.Adults,
			FlightIncluded:  o.FlightIncluded,
			AbsoluteLink:    o.AbsoluteLink,
			Cheapest:        cheapest,
			Alternatives:    alts,
			AddedAt:         o.AddedAt,
			LastPriceUpdate: o.LastPriceUpdate,
			IsNew:           o.AddedAt != nil && !o.AddedAt.Before(newCutoff),
		}
		if cheapest != nil {
			amt := cheapest.Amount
			view.Amount = &amt
			view.PNP = viewPNP(cheapest, o.Duration, o.Adults)
		}

		if prev, ok := prevByID[o.JourneyID]; ok {
			prevCheapest, _ := applyMinCabin(&prev, params.MinCabin)
			q.fillDeltas(&view, prevCheapest, prev.Duration, prev.Adults, prevUpdatedAt)
		}

		items = append(items, view)
	}

	// Cheapest per-night price first; rows without one sink to the end.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PNP, items[j].PNP
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.LessThan(*b)
	})

	return &OfferListView{UpdatedAt: snap.UpdatedAt, Count: len(items), Items: items}, nil
}

func (q *offerQueriesImpl) History(_ context.Context, adults int, journeyID string) (*HistoryView, error) {
	book, err := q.store.LoadHistory(clampAdults(adults))
	if err != nil {
		return nil, err
	}
	series, ok := book[journeyID]
	if !ok {
		return nil, ErrJourneyNotFound
	}

	labels := make(map[string]string, len(series))
	out := make(map[string][]history.Point, len(series))
	for code, s := range series {
		labels[code] = pricing.CabinLabel(code)
		out[code] = s
	}
	return &HistoryView{JourneyID: journeyID, Labels: labels, Series: out}, nil
}

// clampAdults restricts the read side to the two stored party sizes,
// defaulting to single travellers.
func clampAdults(adults int) int {
	if adults != 1 && adults != 2 {
		return 1
	}
	return adults
}

func matches(o *offer.Offer, p ListParams) bool {
	if p.Ship != "" && !shipMatches(o.ShipName, p.Ship) {
		return false
	}
	if p.From != "" && o.StartDate < p.From {
		return false
	}
	if p.To != "" && o.StartDate > p.To {
		return false
	}
	if p.MinDays > 0 && o.Duration < p.MinDays {
		return false
	}
	if p.MaxDays > 0 && o.Duration > p.MaxDays {
		return false
	}
	return true
}

// shipMatches accepts a comma-separated list of ship names and matches
// case-insensitively on substrings, so "cosma,nova" finds both AIDAcosma
// and AIDAnova.
func shipMatches(shipName, filter string) bool {
	name := strings.ToLower(shipName)
	for _, part := range strings.Split(filter, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" && strings.Contains(name, part) {
			return true
		}
	}
	return false
}

// applyMinCabin restricts the alternatives to the requested cabin category or
// better and recomputes the cheapest over what remains. Without a filter the
// stored selection is returned as is.
func applyMinCabin(o *offer.Offer, minCabin string) (*offer.PriceOffer, map[string]offer.PriceOffer) {
	if minCabin == "" {
		return o.Cheapest, o.Alternatives
	}
	minRank := pricing.CabinRank(minCabin)

	filtered := make(map[string]offer.PriceOffer)
	var codes []string
	for code, alt := range o.Alternatives {
		if pricing.CabinRank(code) >= minRank {
			filtered[code] = alt
			codes = append(codes, code)
		}
	}
	if len(filtered) == 0 {
		return nil, nil
	}
	// Deterministic tie-break: lower categories first, then by code.
	sort.Slice(codes, func(i, j int) bool {
		ri, rj := pricing.CabinRank(codes[i]), pricing.CabinRank(codes[j])
		if ri != rj {
			return ri < rj
		}
		return codes[i] < codes[j]
	})
	return pricing.PickCheapest(filtered, codes), filtered
}

func viewPNP(cheapest *offer.PriceOffer, duration, adults int) *decimal.Decimal {
	if cheapest.PNP != nil {
		pnp := *cheapest.PNP
		return &pnp
	}
	if duration <= 0 || adults <= 0 {
		return nil
	}
	pnp := cheapest.Amount.
		Div(decimal.NewFromInt(int64(duration))).
		Div(decimal.NewFromInt(int64(adults)))
	return &pnp
}

// fillDeltas annotates a view with the price movement against the previous
// snapshot. The change date prefers the upstream price timestamp and falls
// back to when the previous snapshot was captured.
func (q *offerQueriesImpl) fillDeltas(view *OfferView, prevCheapest *offer.PriceOffer, prevDuration, prevAdults int, prevUpdatedAt time.Time) {
	if view.Amount == nil || prevCheapest == nil {
		return
	}
	amtDelta := view.Amount.Sub(prevCheapest.Amount)
	if amtDelta.Abs().LessThan(offer.PriceEpsilon) {
		return
	}
	view.AmountDelta = &amtDelta

	if view.PNP != nil {
		if prevPNP := viewPNP(prevCheapest, prevDuration, prevAdults); prevPNP != nil {
			pnpDelta := view.PNP.Sub(*prevPNP)
			view.PNPDelta = &pnpDelta
		}
	}

	if view.LastPriceUpdate != nil {
		view.ChangeDate = view.LastPriceUpdate
	} else if !prevUpdatedAt.IsZero() {
		d := prevUpdatedAt.Format(time.RFC3339)
		view.ChangeDate = &d
	}
}
