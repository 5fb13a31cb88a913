package snapshotstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cruise-monitor/internal/domain/history"
	"cruise-monitor/internal/domain/offer"
	"cruise-monitor/internal/infra"
	"cruise-monitor/internal/pkg/config"
	"cruise-monitor/internal/pkg/errs"
)

// staleLockAfter is how long a leftover lock file is honored before a new run
// takes it over. A full update pass stays well below this.
const staleLockAfter = 30 * time.Minute

var ErrUpdateInProgress = errs.New("another update holds the snapshot lock")

// Store keeps every durable record of the monitor as one JSON file per key
// under the cache directory. Every write goes to a temporary file first and
// is renamed into place, so a reader never observes a half-written record.
type Store struct {
	dir    string
	loc    *time.Location
	logger *slog.Logger
}

func New(cfg config.CacheConfig, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o775); err != nil {
		return nil, infra.WrapStoreErr(logger, infra.KindIOFailure, "failed to create cache dir", err)
	}
	return &Store{dir: cfg.Dir, loc: cfg.Location(), logger: logger}, nil
}

func (s *Store) snapshotPath(adults int) string {
	return filepath.Join(s.dir, fmt.Sprintf("offers_adults%d.json", adults))
}

func (s *Store) prevSnapshotPath(adults int) string {
	return filepath.Join(s.dir, fmt.Sprintf("offers_adults%d_prev.json", adults))
}

func (s *Store) dailyMarkerPath(adults int) string {
	return filepath.Join(s.dir, fmt.Sprintf("offers_adults%d_daily.json", adults))
}

func (s *Store) historyPath(adults int) string {
	return filepath.Join(s.dir, fmt.Sprintf("history_adults%d.json", adults))
}

func (s *Store) lockPath(adults int) string {
	return filepath.Join(s.dir, fmt.Sprintf("offers_adults%d.lock", adults))
}

func (s *Store) detailCachePath(adults int, journeyID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("detail_%d_%s.json", adults, sanitizeName(journeyID)))
}

// LoadSnapshot returns the current snapshot for one party size, nil when none
// has been written yet.
func (s *Store) LoadSnapshot(adults int) (*offer.Snapshot, error) {
	return s.loadSnapshotFile(s.snapshotPath(adults))
}

// LoadPrevSnapshot returns the copy-on-price-change previous snapshot, nil
// when none exists.
func (s *Store) LoadPrevSnapshot(adults int) (*offer.Snapshot, error) {
	return s.loadSnapshotFile(s.prevSnapshotPath(adults))
}

func (s *Store) loadSnapshotFile(path string) (*offer.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to read snapshot", err)
	}
	var snap offer.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindDecodeFailure, "corrupt snapshot record", err)
	}
	return &snap, nil
}

// SaveSnapshot atomically replaces the current snapshot record.
func (s *Store) SaveSnapshot(adults int, snap *offer.Snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to encode snapshot", err)
	}
	return s.writeAtomic(s.snapshotPath(adults), raw)
}

// CopyPrevSnapshot captures the current main record as the new previous
// snapshot. A missing main record is not an error; there is simply nothing to
// capture yet.
func (s *Store) CopyPrevSnapshot(adults int) error {
	raw, err := os.ReadFile(s.snapshotPath(adults))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to read snapshot for prev copy", err)
	}
	return s.writeAtomic(s.prevSnapshotPath(adults), raw)
}

// LoadHistory returns the price-history book for one party size; a missing or
// corrupt record yields an empty book so one bad file cannot stall updates.
func (s *Store) LoadHistory(adults int) (history.Book, error) {
	raw, err := os.ReadFile(s.historyPath(adults))
	if os.IsNotExist(err) {
		return history.Book{}, nil
	}
	if err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to read history", err)
	}
	var book history.Book
	if err := json.Unmarshal(raw, &book); err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindDecodeFailure, "corrupt history record", err)
	}
	if book == nil {
		book = history.Book{}
	}
	return book, nil
}

func (s *Store) SaveHistory(adults int, book history.Book) error {
	raw, err := json.Marshal(book)
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to encode history", err)
	}
	return s.writeAtomic(s.historyPath(adults), raw)
}

type dailyMarker struct {
	LastFullRefresh string `json:"last_full_refresh"`
}

// DailyRefreshDue reports whether no full detail refresh has completed on the
// current calendar day yet, in the configured time zone.
func (s *Store) DailyRefreshDue(adults int, now time.Time) (bool, error) {
	raw, err := os.ReadFile(s.dailyMarkerPath(adults))
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return true, infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to read daily marker", err)
	}
	var m dailyMarker
	if err := json.Unmarshal(raw, &m); err != nil {
		// An unreadable marker forces a refresh, never suppresses one.
		return true, nil
	}
	return m.LastFullRefresh != now.In(s.loc).Format(time.DateOnly), nil
}

// MarkFullRefresh records that the daily full refresh completed today.
func (s *Store) MarkFullRefresh(adults int, now time.Time) error {
	raw, err := json.Marshal(dailyMarker{LastFullRefresh: now.In(s.loc).Format(time.DateOnly)})
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to encode daily marker", err)
	}
	return s.writeAtomic(s.dailyMarkerPath(adults), raw)
}

// GetDetail returns the cached raw detail payload for one journey when it is
// still within the validity window.
func (s *Store) GetDetail(adults int, journeyID string, ttl time.Duration) ([]byte, bool) {
	path := s.detailCachePath(adults, journeyID)
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) >= ttl {
		return nil, false
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// PutDetail caches a raw detail payload. Failures are logged only; the cache
// is an optimization, not a correctness requirement.
func (s *Store) PutDetail(adults int, journeyID string, raw []byte) {
	if err := s.writeAtomic(s.detailCachePath(adults, journeyID), raw); err != nil {
		s.logger.Warn("failed to cache detail payload", "journey_id", journeyID, "error", err)
	}
}

// AcquireLock serializes updates per party size via an advisory lock file.
// A lock older than staleLockAfter is treated as leftover from a crashed run
// and taken over.
func (s *Store) AcquireLock(adults int) (func(), error) {
	path := s.lockPath(adults)
	release := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to release snapshot lock", "path", path, "error", err)
		}
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			_ = f.Close()
			return release, nil
		}
		if !os.IsExist(err) {
			return nil, infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to create lock file", err)
		}
		info, statErr := os.Stat(path)
		if statErr == nil && time.Since(info.ModTime()) < staleLockAfter {
			return nil, errs.Mark(
				infra.WrapStoreErr(s.logger, infra.KindLocked, "snapshot lock held", nil),
				ErrUpdateInProgress,
			)
		}
		s.logger.Warn("taking over stale snapshot lock", "path", path)
		_ = os.Remove(path)
	}
	return nil, errs.Mark(
		infra.WrapStoreErr(s.logger, infra.KindLocked, "snapshot lock held", nil),
		ErrUpdateInProgress,
	)
}

// ReplicableFiles lists the snapshot record names worth mirroring to another
// host: the main, previous and history records that exist on disk.
func (s *Store) ReplicableFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "offers_adults*.json"))
	if err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to list snapshot files", err)
	}
	hist, err := filepath.Glob(filepath.Join(s.dir, "history_adults*.json"))
	if err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to list history files", err)
	}
	var names []string
	for _, m := range append(matches, hist...) {
		names = append(names, filepath.Base(m))
	}
	return names, nil
}

// ReadRaw returns the raw bytes of one named record.
func (s *Store) ReadRaw(name string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, sanitizeName(name)))
	if os.IsNotExist(err) {
		return nil, infra.WrapStoreErr(s.logger, infra.KindNotFound, "record not found", err)
	}
	if err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to read record", err)
	}
	return raw, nil
}

// ReceiveFile stores a replicated record pushed from another host, keeping a
// sha256 sidecar to answer "no change" cheaply. Returns false when the body
// matches what is already stored.
func (s *Store) ReceiveFile(name string, body []byte, bodyHash string) (bool, error) {
	name = sanitizeName(name)
	target := filepath.Join(s.dir, name)
	sidecar := target + ".sha256"

	old, err := os.ReadFile(sidecar)
	if err == nil && strings.TrimSpace(string(old)) == bodyHash {
		return false, nil
	}

	if err := s.writeAtomic(target, body); err != nil {
		return false, err
	}
	if err := s.writeAtomic(sidecar, []byte(bodyHash)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) writeAtomic(path string, raw []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to write temp record", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to rename record into place", err)
	}
	return nil
}

// sanitizeName keeps record names inside the cache directory.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	return name
}
