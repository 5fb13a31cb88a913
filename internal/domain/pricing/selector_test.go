//go:build unit

package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cruise-monitor/internal/domain/offer"
	"cruise-monitor/internal/domain/pricing"
	"cruise-monitor/tests/common/builder"
)

const siteBaseURL = "https://aida.de"

func TestSelect_CheapestByPerNightPrice(t *testing.T) {
	// duration 7, adults 2: amount 700 => pnp 50, 560 => 40
	row := builder.NewListingRowBuilder().WithDuration(7).WithAdults(2).Build()
	detail := builder.NewDetailBuilder().
		WithCabin("I", "Innen", 700).
		WithCabin("B", "Balkon", 560).
		WithCabinVariant(pricing.CabinVariant{CabinCode: "S", CabinName: "Suite"}). // no priced tariff
		Build()

	sel := pricing.Select(row, detail, siteBaseURL)

	require.NotNil(t, sel.Cheapest)
	assert.Equal(t, "B", sel.Cheapest.Code)
	assert.True(t, sel.Cheapest.PNP.Equal(builder.Dec(40)))
	// Unpriced cabins are not recorded as alternatives.
	assert.Len(t, sel.Alternatives, 2)
	assert.NotContains(t, sel.Alternatives, "S")
}

func TestSelect_NilPerNightPriceNeverWins(t *testing.T) {
	// duration 0 keeps every pnp nil: no cheapest even with priced cabins
	row := builder.NewListingRowBuilder().WithDuration(0).Build()
	detail := builder.NewDetailBuilder().
		WithCabin("I", "Innen", 700).
		WithCabin("B", "Balkon", 560).
		Build()

	sel := pricing.Select(row, detail, siteBaseURL)

	assert.Nil(t, sel.Cheapest)
	assert.Len(t, sel.Alternatives, 2)
	assert.Nil(t, sel.Alternatives["I"].PNP)
}

func TestSelect_TariffScanOrderBreaksTies(t *testing.T) {
	row := builder.NewListingRowBuilder().WithDuration(7).WithAdults(2).Build()
	detail := builder.NewDetailBuilder().
		WithCabinVariant(pricing.CabinVariant{
			CabinCode: "I",
			CabinName: "Innen",
			Lig:       &pricing.TariffOffer{Amount: builder.DecPtr(700), BookingLink: "/buchen/lig"},
			Cla:       &pricing.TariffOffer{Amount: builder.DecPtr(700), BookingLink: "/buchen/cla"},
		}).
		Build()

	sel := pricing.Select(row, detail, siteBaseURL)

	require.Contains(t, sel.Alternatives, "I")
	assert.Equal(t, siteBaseURL+"/buchen/lig", sel.Alternatives["I"].BookingLink)
}

func TestSelect_PerPersonAmountScaledByPartySize(t *testing.T) {
	row := builder.NewListingRowBuilder().WithDuration(7).WithAdults(2).Build()
	detail := builder.NewDetailBuilder().
		WithCabinVariant(pricing.CabinVariant{
			CabinCode: "M",
			CabinName: "Meerblick",
			Cla:       &pricing.TariffOffer{AmountPerPerson: builder.DecPtr(350)},
		}).
		Build()

	sel := pricing.Select(row, detail, siteBaseURL)

	require.Contains(t, sel.Alternatives, "M")
	assert.True(t, sel.Alternatives["M"].Amount.Equal(builder.Dec(700)))
	assert.True(t, sel.Alternatives["M"].PNP.Equal(builder.Dec(50)))
}

func TestSelect_PerPersonUsesMinimumPartySizeOfOne(t *testing.T) {
	row := builder.NewListingRowBuilder().WithDuration(7).WithAdults(0).Build()
	detail := builder.NewDetailBuilder().
		WithCabinVariant(pricing.CabinVariant{
			CabinCode: "I",
			Cla:       &pricing.TariffOffer{AmountPerPerson: builder.DecPtr(350)},
		}).
		Build()

	sel := pricing.Select(row, detail, siteBaseURL)

	require.Contains(t, sel.Alternatives, "I")
	assert.True(t, sel.Alternatives["I"].Amount.Equal(builder.Dec(350)))
	// adults is 0, so no per-night price is derivable
	assert.Nil(t, sel.Alternatives["I"].PNP)
}

func TestSelect_EmptyDetailYieldsNoSelection(t *testing.T) {
	row := builder.NewListingRowBuilder().Build()

	sel := pricing.Select(row, nil, siteBaseURL)

	assert.Nil(t, sel.Cheapest)
	assert.Empty(t, sel.Alternatives)
	assert.Equal(t, row.LastPriceUpdate, sel.LastPriceUpdate)
}

func TestSelect_LastPriceUpdateRecovery(t *testing.T) {
	t.Run("listing row value wins", func(t *testing.T) {
		row := builder.NewListingRowBuilder().
			WithLastPriceUpdate(builder.StrPtr("2026-08-28T06:00:00Z")).
			Build()
		detail := builder.NewDetailBuilder().WithCabin("I", "Innen", 700).Build()

		sel := pricing.Select(row, detail, siteBaseURL)

		require.NotNil(t, sel.LastPriceUpdate)
		assert.Equal(t, "2026-08-28T06:00:00Z", *sel.LastPriceUpdate)
	})

	t.Run("falls back to first campaign validity", func(t *testing.T) {
		row := builder.NewListingRowBuilder().WithLastPriceUpdate(nil).Build()
		detail := builder.NewDetailBuilder().
			WithCabinVariant(pricing.CabinVariant{
				CabinCode: "I",
				Cla: &pricing.TariffOffer{
					Amount:    builder.DecPtr(700),
					Campaigns: []pricing.Campaign{{Validity: pricing.CampaignValidity{CurrentDate: "2026-08-27T12:00:00Z"}}},
				},
			}).
			Build()

		sel := pricing.Select(row, detail, siteBaseURL)

		require.NotNil(t, sel.LastPriceUpdate)
		assert.Equal(t, "2026-08-27T12:00:00Z", *sel.LastPriceUpdate)
	})

	t.Run("nil when nothing carries validity metadata", func(t *testing.T) {
		row := builder.NewListingRowBuilder().WithLastPriceUpdate(nil).Build()
		detail := builder.NewDetailBuilder().WithCabin("I", "Innen", 700).Build()

		sel := pricing.Select(row, detail, siteBaseURL)

		assert.Nil(t, sel.LastPriceUpdate)
	})
}

func TestSelect_NullBookingLinkLiteral(t *testing.T) {
	row := builder.NewListingRowBuilder().Build()
	detail := builder.NewDetailBuilder().
		WithCabinVariant(pricing.CabinVariant{
			CabinCode: "I",
			Cla:       &pricing.TariffOffer{Amount: builder.DecPtr(700), BookingLink: "null"},
		}).
		Build()

	sel := pricing.Select(row, detail, siteBaseURL)

	assert.Empty(t, sel.Alternatives["I"].BookingLink)
}

func TestPickCheapest_SpecifiedOrderKeepsFirstOnTie(t *testing.T) {
	pnp := builder.Dec(40)
	alts := map[string]offer.PriceOffer{
		"I": {Name: "Innen", Amount: builder.Dec(560), PNP: &pnp},
		"B": {Name: "Balkon", Amount: builder.Dec(560), PNP: &pnp},
	}

	got := pricing.PickCheapest(alts, []string{"I", "B"})

	require.NotNil(t, got)
	assert.Equal(t, "I", got.Code)
}

func TestCabinCatalog(t *testing.T) {
	assert.Equal(t, 1, pricing.CabinRank("I"))
	assert.Equal(t, 9, pricing.CabinRank("S"))
	assert.Equal(t, 0, pricing.CabinRank("Z"))
	assert.True(t, pricing.KnownCabin("V"))
	assert.False(t, pricing.KnownCabin("Z"))
	assert.Equal(t, "Balkon", pricing.CabinLabel("B"))
	assert.Equal(t, "Z9", pricing.CabinLabel("Z9"))
}
