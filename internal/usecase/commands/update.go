package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"cruise-monitor/internal/domain/history"
	"cruise-monitor/internal/domain/offer"
	"cruise-monitor/internal/domain/pricing"
	"cruise-monitor/internal/infra"
	"cruise-monitor/internal/pkg/clock"
	"cruise-monitor/internal/pkg/config"
	"cruise-monitor/internal/pkg/errs"
)

var (
	ErrEmptyListing     = errs.New("listing returned no offers")
	ErrUpdateInProgress = errs.New("another update run holds the lock")
)

var updateRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "update_runs_total",
	Help: "Completed update runs by outcome.",
}, []string{"outcome"})

// UpdateResult summarizes one completed update run.
type UpdateResult struct {
	Adults        int
	Total         int
	NewOffers     int
	DetailFetched int
	DetailFailed  int
	Events        int
	Notified      int
	FullScan      bool
	Elapsed       time.Duration
}

type UpdateCommands interface {
	Run(ctx context.Context, adults int) (*UpdateResult, error)
}

type updateUseCaseImpl struct {
	store   SnapshotStore
	listing ListingProvider
	detail  DetailProvider
	sender  *EventSender
	catalog config.CatalogConfig
	cache   config.CacheConfig
	notify  config.NotifyConfig
	clock   clock.Clock
	logger  *slog.Logger
}

func NewUpdateUseCase(
	store SnapshotStore,
	listing ListingProvider,
	detail DetailProvider,
	sender *EventSender,
	cfg config.Config,
	clock clock.Clock,
	logger *slog.Logger,
) UpdateCommands {
	return &updateUseCaseImpl{
		store:   store,
		listing: listing,
		detail:  detail,
		sender:  sender,
		catalog: cfg.Catalog,
		cache:   cfg.Cache,
		notify:  cfg.Notify,
		clock:   clock,
		logger:  logger,
	}
}

// Run executes one full update pass for a party size: fetch the listing, plan
// which journeys need a detail fetch, enrich and merge, persist snapshot and
// history, then notify. The run is exclusive per party size; a second caller
// gets ErrUpdateInProgress.
func (u *updateUseCaseImpl) Run(ctx context.Context, adults int) (result *UpdateResult, err error) {
	started := u.clock.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "failed"
		}
		updateRuns.WithLabelValues(outcome).Inc()
	}()

	release, err := u.store.AcquireLock(adults)
	if err != nil {
		if infra.IsKind(err, infra.KindLocked) {
			return nil, errs.Mark(err, ErrUpdateInProgress)
		}
		return nil, err
	}
	defer release()

	existing, err := u.loadExisting(adults)
	if err != nil {
		return nil, err
	}

	rows, err := u.listing.FetchListing(ctx, adults)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		// An empty listing is indistinguishable from an upstream outage, so
		// the stored records must survive untouched.
		return nil, ErrEmptyListing
	}

	now := u.clock.Now()
	fullScan := false
	if u.cache.DailyFullScan {
		due, err := u.store.DailyRefreshDue(adults, now)
		if err != nil {
			u.logger.Warn("daily marker unreadable, forcing full scan", "error", err)
		}
		fullScan = due
	}

	planned := PlanChanges(rows, existing, fullScan)

	book, err := u.loadHistory(adults)
	if err != nil {
		return nil, err
	}

	result = &UpdateResult{Adults: adults, Total: len(planned), FullScan: fullScan}
	items := make([]offer.Offer, 0, len(planned))
	keep := make(map[string]bool, len(planned))

	for i, p := range planned {
		row := p.Row
		keep[row.JourneyID] = true
		u.logger.Debug("processing journey",
			"index", i+1, "total", len(planned),
			"journey", row.JourneyID, "detail_needed", p.NeedsDetail)
		if p.IsNew {
			result.NewOffers++
		}

		var base *offer.Offer
		if prev, ok := existing[row.JourneyID]; ok {
			b := prev
			base = &b
		}

		var fresh *offer.Offer
		if p.NeedsDetail {
			detail, err := u.detail.FetchDetail(ctx, row.JourneyID, adults)
			switch {
			case err != nil:
				// Degrade to the stored record plus refreshed meta fields.
				result.DetailFailed++
				u.logger.Warn("detail fetch failed, keeping stored prices",
					"journey", row.JourneyID, "error", err)
			default:
				sel := pricing.Select(row, detail, u.catalog.SiteBaseURL)
				if len(sel.Alternatives) == 0 {
					// A payload without priced variants degrades like a
					// failed fetch, keeping the stored detail fields.
					result.DetailFailed++
					u.logger.Warn("detail returned no usable prices, keeping stored prices",
						"journey", row.JourneyID)
					break
				}
				result.DetailFetched++
				u.logger.Debug("journey enriched",
					"journey", row.JourneyID, "cabins", len(sel.Alternatives))
				fresh = &offer.Offer{
					Cheapest:        sel.Cheapest,
					Alternatives:    sel.Alternatives,
					LastPriceUpdate: sel.LastPriceUpdate,
				}
				book.Record(row.JourneyID, sel.Alternatives, row.Duration, row.Adults, now)
			}
		}

		merged := offer.Merge(base, fresh, row, u.catalog.SiteBaseURL)
		// First observation stamps AddedAt whether or not the detail fetch
		// succeeded; it is never touched again.
		if p.IsNew && merged.AddedAt == nil {
			addedAt := now
			merged.AddedAt = &addedAt
		}
		items = append(items, merged)
	}

	// Journeys gone from the listing drop out of the snapshot; the previous
	// copy below is what keeps their last known prices comparable.
	if cheapestChanged(existing, items) {
		if err := u.store.CopyPrevSnapshot(adults); err != nil {
			return nil, err
		}
	}

	if err := u.store.SaveSnapshot(adults, offer.NewSnapshot(now, items)); err != nil {
		return nil, err
	}

	book.Prune(keep)
	if err := u.store.SaveHistory(adults, book); err != nil {
		return nil, err
	}

	if fullScan {
		if err := u.store.MarkFullRefresh(adults, now); err != nil {
			u.logger.Warn("failed to write daily marker", "error", err)
		}
	}

	events := BuildEvents(existing, items)
	result.Events = len(events)
	result.Notified = u.sender.SendEvents(ctx, events, u.sendPause())
	result.Elapsed = u.clock.Now().Sub(started)

	u.logger.Info("update run complete",
		"adults", adults,
		"total", result.Total,
		"new", result.NewOffers,
		"detail_fetched", result.DetailFetched,
		"detail_failed", result.DetailFailed,
		"events", result.Events,
		"notified", result.Notified,
		"full_scan", result.FullScan,
		"elapsed", result.Elapsed,
	)
	return result, nil
}

// loadExisting reads the current snapshot, treating a corrupt record like an
// empty one so a damaged file cannot permanently wedge the pipeline.
func (u *updateUseCaseImpl) loadExisting(adults int) (map[string]offer.Offer, error) {
	snap, err := u.store.LoadSnapshot(adults)
	if err != nil {
		if infra.IsKind(err, infra.KindDecodeFailure) {
			u.logger.Warn("corrupt snapshot, starting from empty", "adults", adults)
			return map[string]offer.Offer{}, nil
		}
		return nil, err
	}
	if snap == nil {
		return map[string]offer.Offer{}, nil
	}
	return snap.MapByJourney(), nil
}

func (u *updateUseCaseImpl) loadHistory(adults int) (history.Book, error) {
	book, err := u.store.LoadHistory(adults)
	if err != nil {
		if infra.IsKind(err, infra.KindDecodeFailure) {
			u.logger.Warn("corrupt history, starting from empty", "adults", adults)
			return history.Book{}, nil
		}
		return nil, err
	}
	return book, nil
}

func (u *updateUseCaseImpl) sendPause() func(context.Context) {
	if u.notify.SendDelay <= 0 {
		return nil
	}
	delay := u.notify.SendDelay
	return func(ctx context.Context) {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
}

// cheapestChanged reports whether any journey's cheapest total moved between
// the pre-run records and the new items, including journeys appearing with a
// price or disappearing while having one. Two absent prices are equal.
func cheapestChanged(before map[string]offer.Offer, after []offer.Offer) bool {
	seen := make(map[string]bool, len(after))
	for i := range after {
		cur := &after[i]
		seen[cur.JourneyID] = true
		prev, known := before[cur.JourneyID]
		if !known {
			if cur.Cheapest != nil {
				return true
			}
			continue
		}
		if amountsDiffer(prev.CheapestAmount(), cur.CheapestAmount()) {
			return true
		}
	}
	for id, prev := range before {
		if !seen[id] && prev.Cheapest != nil {
			return true
		}
	}
	return false
}

func amountsDiffer(a, b *decimal.Decimal) bool {
	if a == nil && b == nil {
		return false
	}
	if a == nil || b == nil {
		return true
	}
	return a.Sub(*b).Abs().GreaterThanOrEqual(offer.PriceEpsilon)
}
