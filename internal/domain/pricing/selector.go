package pricing

import (
	"github.com/shopspring/decimal"

	"cruise-monitor/internal/domain/offer"
)

// Selection is the outcome of the cheapest-option computation for one journey.
// Absence of data yields a nil Cheapest and an empty alternatives map, never
// an error.
type Selection struct {
	Cheapest        *offer.PriceOffer
	Alternatives    map[string]offer.PriceOffer
	LastPriceUpdate *string
}

// Select computes the best price per cabin variant and the global cheapest
// variant from a detail result.
//
// Per variant, tariffs are scanned in TariffKeys order; the amount is the
// direct total or the per-person rate times the party size (minimum 1), and
// the lowest amount wins with ties kept by scan order. Tariffs without a
// usable amount are skipped. The per-night-per-person price is derived only
// when duration and party size are both positive.
//
// The global cheapest is the variant with the lowest per-night price over the
// variants in source order; a variant without a derivable per-night price can
// never win. LastPriceUpdate comes from the listing row when present, else
// from the first tariff carrying campaign validity metadata.
func Select(row offer.ListingRow, detail *DetailResult, siteBaseURL string) Selection {
	sel := Selection{
		Alternatives:    map[string]offer.PriceOffer{},
		LastPriceUpdate: row.LastPriceUpdate,
	}
	if detail == nil || len(detail.Cabins) == 0 {
		return sel
	}

	if sel.LastPriceUpdate == nil {
		sel.LastPriceUpdate = firstCampaignDate(detail)
	}

	adults := row.Adults
	if adults < 1 {
		adults = 1
	}

	var order []string // first-occurrence order of cabin codes
	for i := range detail.Cabins {
		c := &detail.Cabins[i]
		code := c.CabinCode
		name := c.CabinName
		if name == "" {
			name = CabinLabel(code)
		}

		var bestAmt *decimal.Decimal
		var bestLink string
		for _, key := range TariffKeys {
			t := c.Tariff(key)
			if !t.HasPrice() {
				continue
			}
			var amt decimal.Decimal
			if t.Amount != nil {
				amt = *t.Amount
			} else {
				amt = t.AmountPerPerson.Mul(decimal.NewFromInt(int64(adults)))
			}
			if bestAmt == nil || amt.LessThan(*bestAmt) {
				a := amt
				bestAmt = &a
				bestLink = absoluteBookingLink(siteBaseURL, t.BookingLink)
			}
		}
		if bestAmt == nil {
			continue
		}

		var pnp *decimal.Decimal
		if row.Duration > 0 && row.Adults > 0 {
			p := bestAmt.
				Div(decimal.NewFromInt(int64(row.Duration))).
				Div(decimal.NewFromInt(int64(row.Adults)))
			pnp = &p
		}

		if _, seen := sel.Alternatives[code]; !seen {
			order = append(order, code)
		}
		sel.Alternatives[code] = offer.PriceOffer{
			Name:        name,
			Amount:      *bestAmt,
			PNP:         pnp,
			BookingLink: bestLink,
		}
	}

	sel.Cheapest = PickCheapest(sel.Alternatives, order)
	return sel
}

// PickCheapest selects the variant with the lowest per-night price, iterating
// codes in the given order so ties keep the first variant encountered. A nil
// per-night price compares as infinite.
func PickCheapest(alts map[string]offer.PriceOffer, order []string) *offer.PriceOffer {
	var best *offer.PriceOffer
	for _, code := range order {
		info, ok := alts[code]
		if !ok || info.PNP == nil {
			continue
		}
		if best == nil || info.PNP.LessThan(*best.PNP) {
			candidate := info
			candidate.Code = code
			best = &candidate
		}
	}
	return best
}

func firstCampaignDate(detail *DetailResult) *string {
	for i := range detail.Cabins {
		c := &detail.Cabins[i]
		for _, key := range TariffKeys {
			t := c.Tariff(key)
			if t == nil || len(t.Campaigns) == 0 {
				continue
			}
			if cd := t.Campaigns[0].Validity.CurrentDate; cd != "" {
				return &cd
			}
		}
	}
	return nil
}

func absoluteBookingLink(siteBaseURL, link string) string {
	// The upstream occasionally serializes the literal string "null".
	if link == "" || link == "null" {
		return ""
	}
	return siteBaseURL + link
}
