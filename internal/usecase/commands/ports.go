package commands

import (
	"context"
	"time"

	"cruise-monitor/internal/domain/history"
	"cruise-monitor/internal/domain/offer"
	"cruise-monitor/internal/domain/pricing"
)

// ListingProvider delivers the bulk listing for one party size.
type ListingProvider interface {
	FetchListing(ctx context.Context, adults int) ([]offer.ListingRow, error)
}

// DetailProvider delivers per-journey cabin pricing. Failures degrade a single
// journey, never the whole run.
type DetailProvider interface {
	FetchDetail(ctx context.Context, journeyID string, adults int) (*pricing.DetailResult, error)
}

// SnapshotStore is the durable record layer the update pipeline writes
// through. All writes are atomic replacements.
type SnapshotStore interface {
	AcquireLock(adults int) (func(), error)
	LoadSnapshot(adults int) (*offer.Snapshot, error)
	SaveSnapshot(adults int, snap *offer.Snapshot) error
	CopyPrevSnapshot(adults int) error
	LoadHistory(adults int) (history.Book, error)
	SaveHistory(adults int, book history.Book) error
	DailyRefreshDue(adults int, now time.Time) (bool, error)
	MarkFullRefresh(adults int, now time.Time) error
}

// Notifier delivers one rendered message, optionally without an audible alert.
type Notifier interface {
	Send(ctx context.Context, text string, silent bool) error
}
