package history

import (
	"time"

	"github.com/shopspring/decimal"

	"cruise-monitor/internal/domain/offer"
)

// MaxPoints bounds every series; the oldest points are dropped first.
const MaxPoints = 400

// Point is one recorded price observation for a cabin variant.
type Point struct {
	At     time.Time        `json:"t"`
	PNP    decimal.Decimal  `json:"pnp"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// Series is an insertion-ordered sequence of price points for one
// (journey, cabin code) pair.
type Series []Point

// Append adds a point unless it repeats the last recorded per-night price
// within the epsilon, then trims to the most recent MaxPoints. Append and
// trim are one operation so a series can never exceed the cap.
func (s Series) Append(p Point) Series {
	if len(s) > 0 {
		last := s[len(s)-1]
		if last.PNP.Sub(p.PNP).Abs().LessThanOrEqual(offer.PriceEpsilon) {
			return s
		}
	}
	s = append(s, p)
	if len(s) > MaxPoints {
		s = s[len(s)-MaxPoints:]
	}
	return s
}

// Book holds all series for one party size, keyed by journey identifier and
// cabin code.
type Book map[string]map[string]Series

// Record appends one point per variant in the alternatives map. The per-night
// price is the variant's own when present, else amount/duration/partySize;
// variants without a derivable price are skipped.
func (b Book) Record(journeyID string, alts map[string]offer.PriceOffer, duration, adults int, now time.Time) {
	if journeyID == "" || len(alts) == 0 {
		return
	}
	for code, info := range alts {
		pnp := info.PNP
		if pnp == nil {
			if duration <= 0 || adults <= 0 {
				continue
			}
			p := info.Amount.
				Div(decimal.NewFromInt(int64(duration))).
				Div(decimal.NewFromInt(int64(adults)))
			pnp = &p
		}

		series := b[journeyID][code]
		amt := info.Amount
		next := series.Append(Point{At: now, PNP: *pnp, Amount: &amt})

		if b[journeyID] == nil {
			b[journeyID] = map[string]Series{}
		}
		b[journeyID][code] = next
	}
}

// Prune drops series for journeys that are no longer part of the snapshot.
func (b Book) Prune(keep map[string]bool) {
	for id := range b {
		if !keep[id] {
			delete(b, id)
		}
	}
}
