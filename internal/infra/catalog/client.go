package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"cruise-monitor/internal/domain/offer"
	"cruise-monitor/internal/domain/pricing"
	"cruise-monitor/internal/infra"
	"cruise-monitor/internal/pkg/config"
	"cruise-monitor/internal/pkg/errs"
)

// DetailCache holds raw detail payloads for the short validity window so
// closely spaced runs for different party sizes reuse each other's fetches.
type DetailCache interface {
	GetDetail(adults int, journeyID string, ttl time.Duration) ([]byte, bool)
	PutDetail(adults int, journeyID string, raw []byte)
}

// Client talks to the listing and detail endpoints. The upstream expects
// browser-like headers and a warmed-up cookie session before answering.
type Client struct {
	cfg    config.CatalogConfig
	http   *http.Client
	cache  DetailCache
	logger *slog.Logger
}

func NewClient(cfg config.CatalogConfig, cache DetailCache, logger *slog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create cookie jar")
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
			},
		},
		cache:  cache,
		logger: logger,
	}, nil
}

// FetchListing retrieves the full offer list for one party size. Any failure
// here is fatal for the run.
func (c *Client) FetchListing(ctx context.Context, adults int) ([]offer.ListingRow, error) {
	c.warmUp(ctx)

	u := fmt.Sprintf("%s/size=%d/p=%d/sortCriteria=DepartureDate/sortDirection=Asc/pax[adults]=%d/pax[juveniles]=0/pax[children]=0/pax[babies]=0.json",
		c.cfg.ListBaseURL, c.cfg.PageSize, 1, adults)

	raw, err := c.getJSON(ctx, u)
	if err != nil {
		return nil, infra.WrapStoreErr(c.logger, infra.KindUpstreamFailure, "listing fetch failed", err)
	}

	var resp listingResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, infra.WrapStoreErr(c.logger, infra.KindUpstreamFailure, "listing response is not valid JSON", err)
	}
	return extractRows(&resp, adults), nil
}

// FetchDetail retrieves cabin pricing for one journey, serving from the
// short-lived cache when possible. Errors are returned for the caller to
// degrade on; a detail failure never aborts a run.
func (c *Client) FetchDetail(ctx context.Context, journeyID string, adults int) (*pricing.DetailResult, error) {
	if raw, ok := c.cache.GetDetail(adults, journeyID, c.cfg.DetailCacheTTL); ok {
		var detail pricing.DetailResult
		if err := json.Unmarshal(raw, &detail); err == nil {
			return &detail, nil
		}
		// fall through to a live fetch on a corrupt cache entry
	}

	c.warmUp(ctx)

	u := fmt.Sprintf("%s/language=%s/adults=%d/juveniles=0/children=0/babies=0/TariffType=%s/JourneyIdentifier=%s.json",
		c.cfg.DetailBaseURL, c.cfg.Language, adults, c.cfg.TariffType, url.PathEscape(journeyID))

	raw, err := c.getJSON(ctx, u)
	if err != nil {
		return nil, infra.WrapStoreErr(c.logger, infra.KindUpstreamFailure, "detail fetch failed", err)
	}

	var detail pricing.DetailResult
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, infra.WrapStoreErr(c.logger, infra.KindUpstreamFailure, "detail response is not valid JSON", err)
	}

	c.cache.PutDetail(adults, journeyID, raw)
	return &detail, nil
}

// warmUp loads the site root once to pick up session cookies. Failures are
// ignored; the real request decides whether the session works.
func (c *Client) warmUp(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.SiteBaseURL+"/", nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("warm-up request failed", "error", err)
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func (c *Client) getJSON(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build request")
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.8")
	req.Header.Set("Referer", c.cfg.SiteBaseURL+"/")
	req.Header.Set("Origin", c.cfg.SiteBaseURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.New(fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
	return body, nil
}
