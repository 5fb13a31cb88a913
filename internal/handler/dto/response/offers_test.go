//go:build unit

package response_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cruise-monitor/internal/domain/history"
	resdto "cruise-monitor/internal/handler/dto/response"
	"cruise-monitor/internal/usecase/queries"
	"cruise-monitor/tests/common/builder"
)

func TestFromHistoryView_ConvertsPoints(t *testing.T) {
	at := time.Date(2026, 8, 25, 6, 0, 0, 0, time.UTC)
	amount := builder.Dec(1299)
	view := &queries.HistoryView{
		JourneyID: "J2609A001",
		Labels:    map[string]string{"I": "Innen"},
		Series: map[string][]history.Point{
			"I": {
				{At: at, PNP: builder.Dec(92.79), Amount: &amount},
				{At: at.Add(24 * time.Hour), PNP: builder.Dec(85.64)},
			},
		},
	}

	resp := resdto.FromHistoryView(view)

	assert.Equal(t, "J2609A001", resp.JourneyID)
	assert.Equal(t, "Innen", resp.Labels["I"])
	points := resp.Series["I"]
	require.Len(t, points, 2)

	assert.Equal(t, at.Unix(), points[0].T)
	require.NotNil(t, points[0].PNP)
	assert.InDelta(t, 92.79, *points[0].PNP, 0.0001)
	require.NotNil(t, points[0].Amount)
	assert.InDelta(t, 1299, *points[0].Amount, 0.0001)

	require.NotNil(t, points[1].PNP)
	assert.InDelta(t, 85.64, *points[1].PNP, 0.0001)
	assert.Nil(t, points[1].Amount, "points without an absolute amount stay open")
}

func TestFromOfferListView_ConvertsDecimals(t *testing.T) {
	pnp := builder.Dec(92.79)
	delta := builder.Dec(-100)
	o := builder.NewOfferBuilder().Build()
	view := &queries.OfferListView{
		UpdatedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		Count:     1,
		Items: []queries.OfferView{{
			JourneyID:   o.JourneyID,
			Title:       o.Title,
			ShipName:    o.ShipName,
			Duration:    o.Duration,
			StartDate:   o.StartDate,
			Adults:      o.Adults,
			Cheapest:    o.Cheapest,
			PNP:         &pnp,
			AmountDelta: &delta,
		}},
	}

	resp := resdto.FromOfferListView(view)

	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.Equal(t, o.JourneyID, item.JourneyID)
	require.NotNil(t, item.Cheapest)
	assert.InDelta(t, 1299, item.Cheapest.Amount, 0.0001)
	require.NotNil(t, item.PNP)
	assert.InDelta(t, 92.79, *item.PNP, 0.0001)
	require.NotNil(t, item.AmountDelta)
	assert.InDelta(t, -100, *item.AmountDelta, 0.0001)
	assert.Nil(t, item.PNPDelta)
}
