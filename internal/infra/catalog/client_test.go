//go:build unit

package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cruise-monitor/internal/infra"
	"cruise-monitor/internal/pkg/config"
)

type memoryCache struct {
	entries map[string][]byte
	puts    int
}

func (m *memoryCache) GetDetail(adults int, journeyID string, _ time.Duration) ([]byte, bool) {
	raw, ok := m.entries[journeyID]
	return raw, ok
}

func (m *memoryCache) PutDetail(adults int, journeyID string, raw []byte) {
	if m.entries == nil {
		m.entries = map[string][]byte{}
	}
	m.entries[journeyID] = raw
	m.puts++
}

const listingBody = `{
  "cruiseItems": [
    {
      "title": "Kanaren & Madeira",
      "duration": 7,
      "routeCode": "X14A",
      "routeGroupCode": "KAN",
      "cruiseItemVariant": [
        {
          "journeyIdentifier": "J2609A001",
          "ship": {"name": "Cosma", "marketingName": "AIDAcosma"},
          "startDate": "2026-09-12",
          "endDate": "2026-09-19",
          "flightIncluded": false,
          "amount": 1299,
          "campaigns": [{"validity": {"currentDate": "2026-08-20T06:00:00Z"}}]
        },
        {
          "journeyIdentifier": "J2609A001",
          "ship": {"name": "Cosma"},
          "startDate": "2026-09-12",
          "amount": 1399
        },
        {
          "journeyIdentifier": "J2609B001",
          "ship": {"name": "Nova"},
          "startDate": "2026-09-20",
          "amount": null
        }
      ]
    }
  ]
}`

const detailBody = `{
  "cabinItemsVariant": [
    {"cabinCode": "I", "cabinName": "Innen", "cla": {"amount": 1299}}
  ]
}`

func newTestClient(t *testing.T, handler http.Handler, cache DetailCache) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NewTestConfig().Catalog
	cfg.SiteBaseURL = srv.URL
	cfg.ListBaseURL = srv.URL + "/list"
	cfg.DetailBaseURL = srv.URL + "/detail"

	client, err := NewClient(cfg, cache, slog.Default())
	require.NoError(t, err)
	return client
}

func TestFetchListing(t *testing.T) {
	var listingHits int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/list/") {
			listingHits++
			assert.Contains(t, r.URL.Path, "pax[adults]=2")
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(listingBody))
			return
		}
		w.WriteHeader(http.StatusOK)
	}), &memoryCache{})

	rows, err := client.FetchListing(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, rows, 2, "duplicate journey identifiers collapse to the first variant")
	assert.Equal(t, 1, listingHits)

	first := rows[0]
	assert.Equal(t, "J2609A001", first.JourneyID)
	assert.Equal(t, "Kanaren & Madeira", first.Title)
	assert.Equal(t, "AIDAcosma", first.ShipName, "marketing name wins over the technical name")
	assert.Equal(t, 7, first.Duration)
	assert.Equal(t, 2, first.Adults)
	require.NotNil(t, first.ListingAmount)
	assert.Equal(t, "1299", first.ListingAmount.String())
	require.NotNil(t, first.LastPriceUpdate)
	assert.Equal(t, "2026-08-20T06:00:00Z", *first.LastPriceUpdate)

	second := rows[1]
	assert.Equal(t, "Nova", second.ShipName, "technical name is the fallback")
	assert.Nil(t, second.ListingAmount)
	assert.Nil(t, second.LastPriceUpdate)
}

func TestFetchListing_UpstreamErrorIsFatal(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/list/") {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
	}), &memoryCache{})

	_, err := client.FetchListing(context.Background(), 2)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindUpstreamFailure))
}

func TestFetchDetail_CachesRawPayload(t *testing.T) {
	var detailHits int
	cache := &memoryCache{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/detail/") {
			detailHits++
			assert.Contains(t, r.URL.Path, "JourneyIdentifier=J2609A001")
			_, _ = w.Write([]byte(detailBody))
			return
		}
	}), cache)

	detail, err := client.FetchDetail(context.Background(), "J2609A001", 2)
	require.NoError(t, err)
	require.Len(t, detail.Cabins, 1)
	assert.Equal(t, "I", detail.Cabins[0].CabinCode)
	assert.Equal(t, 1, detailHits)
	assert.Equal(t, 1, cache.puts)

	// Second call is answered from the cache.
	detail, err = client.FetchDetail(context.Background(), "J2609A001", 2)
	require.NoError(t, err)
	require.Len(t, detail.Cabins, 1)
	assert.Equal(t, 1, detailHits)
}

func TestFetchDetail_CorruptCacheEntryFallsThrough(t *testing.T) {
	var detailHits int
	cache := &memoryCache{entries: map[string][]byte{"J2609A001": []byte("{broken")}}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/detail/") {
			detailHits++
			_, _ = w.Write([]byte(detailBody))
			return
		}
	}), cache)

	detail, err := client.FetchDetail(context.Background(), "J2609A001", 2)
	require.NoError(t, err)
	require.Len(t, detail.Cabins, 1)
	assert.Equal(t, 1, detailHits)
}

func TestFetchDetail_UpstreamErrorReturnsError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/detail/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
	}), &memoryCache{})

	_, err := client.FetchDetail(context.Background(), "MISSING", 2)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindUpstreamFailure))
}
