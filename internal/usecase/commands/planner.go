package commands

import (
	"github.com/shopspring/decimal"

	"cruise-monitor/internal/domain/offer"
)

// PlannedRow is the per-journey decision of one planning pass.
type PlannedRow struct {
	Row         offer.ListingRow
	IsNew       bool
	NeedsDetail bool
}

// PlanChanges decides, per listing row, whether a detail fetch is required.
// A journey needs detail when it is new, when its listing amount moved, or
// when a full scan is in effect. A listing amount missing on either side
// counts as moved; skipping the fetch on incomplete evidence could let a
// price change pass unnoticed.
func PlanChanges(rows []offer.ListingRow, existing map[string]offer.Offer, fullScan bool) []PlannedRow {
	planned := make([]PlannedRow, 0, len(rows))
	for _, row := range rows {
		prev, known := existing[row.JourneyID]
		p := PlannedRow{Row: row, IsNew: !known}
		switch {
		case fullScan, !known:
			p.NeedsDetail = true
		default:
			p.NeedsDetail = listingAmountMoved(prev.ListingAmount, row.ListingAmount)
		}
		planned = append(planned, p)
	}
	return planned
}

func listingAmountMoved(prev, cur *decimal.Decimal) bool {
	if prev == nil || cur == nil {
		return true
	}
	return prev.Sub(*cur).Abs().GreaterThanOrEqual(offer.PriceEpsilon)
}
