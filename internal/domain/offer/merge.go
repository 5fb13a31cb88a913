package offer

// Merge produces the next enriched record for one journey from up to three
// inputs: the base record (an already-computed-this-run record if one exists,
// else the previous enriched record, else nil), a fresh detail-derived record
// (non-nil only when a detail fetch succeeded this run), and the current
// listing row.
//
// Precedence:
//   - base provides everything the other two inputs do not replace,
//     in particular AddedAt and previously computed detail fields
//   - fresh replaces the detail-derived fields
//   - row replaces the meta fields unconditionally, and the listing amount
//     when it carries one
//
// Detail fields are never cleared here: a nil fresh leaves whatever the base
// carried untouched.
func Merge(base *Offer, fresh *Offer, row ListingRow, siteBaseURL string) Offer {
	var dst Offer
	switch {
	case base != nil:
		dst = *base
	case fresh != nil:
		dst = *fresh
	}

	if row.JourneyID != "" {
		dst.JourneyID = row.JourneyID
	} else if dst.JourneyID == "" && fresh != nil {
		dst.JourneyID = fresh.JourneyID
	}

	dst.Title = row.Title
	dst.RouteCode = row.RouteCode
	dst.RouteGroupCode = row.RouteGroupCode
	dst.ShipName = row.ShipName
	dst.Duration = row.Duration
	dst.StartDate = row.StartDate
	dst.EndDate = row.EndDate
	dst.Adults = row.Adults
	dst.FlightIncluded = row.FlightIncluded

	if fresh != nil {
		dst.Cheapest = fresh.Cheapest
		dst.Alternatives = fresh.Alternatives
		dst.LastPriceUpdate = fresh.LastPriceUpdate
		if dst.AddedAt == nil {
			dst.AddedAt = fresh.AddedAt
		}
	}

	if row.ListingAmount != nil {
		amt := *row.ListingAmount
		dst.ListingAmount = &amt
	}

	if dst.AbsoluteLink == "" && dst.JourneyID != "" && dst.Adults > 0 {
		dst.AbsoluteLink = BuildFindLink(siteBaseURL, dst.JourneyID, dst.Adults)
	}

	return dst
}
