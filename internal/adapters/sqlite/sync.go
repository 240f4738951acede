package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"fonoteca/internal/domain"
)

// MirrorSource is the remote catalog a Store can mirror
type MirrorSource interface {
	List(ctx context.Context) ([]domain.Asset, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// MirrorStats reports what a mirror run changed
type MirrorStats struct {
	Fetched   int           `json:"fetched"`
	Added     int           `json:"added"`
	Updated   int           `json:"updated"`
	Removed   int           `json:"removed"`
	Unchanged int           `json:"unchanged"`
	Remote    domain.Stats  `json:"remote"`
	Duration  time.Duration `json:"duration_ns"`
}

func (s MirrorStats) String() string {
	return fmt.Sprintf("%d fetched: %d added, %d updated, %d removed, %d unchanged (%s)",
		s.Fetched, s.Added, s.Updated, s.Removed, s.Unchanged, s.Duration.Round(time.Millisecond))
}

// Fingerprint hashes the content of an asset for change detection
func Fingerprint(a domain.Asset) uint64 {
	b, err := json.Marshal(a)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(b)
}

// Mirror makes the store an exact copy of src, keeping remote ids. Rows
// whose content did not change are left alone. The whole sync runs in one
// transaction, so a failure leaves the previous mirror intact.
func (s *Store) Mirror(ctx context.Context, src MirrorSource) (*MirrorStats, error) {
	start := time.Now()
	stats := &MirrorStats{}

	var remote []domain.Asset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		assets, err := src.List(gctx)
		if err != nil {
			return fmt.Errorf("fetch remote collection: %w", err)
		}
		remote = assets
		return nil
	})
	g.Go(func() error {
		st, err := src.Stats(gctx)
		if err != nil {
			// stats are informational only
			s.log.Warn().Err(err).Msg("failed to fetch remote stats")
			return nil
		}
		stats.Remote = st
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	stats.Fetched = len(remote)

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	existing, err := tx.Fingerprints()
	if err != nil {
		return nil, fmt.Errorf("read local fingerprints: %w", err)
	}

	seen := make(map[int64]bool, len(remote))
	for _, a := range remote {
		seen[a.ID] = true
		fp, ok := existing[a.ID]
		switch {
		case !ok:
			stats.Added++
		case fp == Fingerprint(a):
			stats.Unchanged++
			continue
		default:
			stats.Updated++
		}
		if err := tx.UpsertAsset(a); err != nil {
			return nil, fmt.Errorf("mirror asset %d: %w", a.ID, err)
		}
	}

	for id := range existing {
		if seen[id] {
			continue
		}
		if err := tx.DeleteAsset(id); err != nil {
			return nil, fmt.Errorf("remove asset %d: %w", id, err)
		}
		stats.Removed++
	}

	if err := tx.SetMeta("last_mirror_time", strconv.FormatInt(time.Now().Unix(), 10)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit mirror: %w", err)
	}

	stats.Duration = time.Since(start)
	s.log.Info().
		Int("fetched", stats.Fetched).
		Int("added", stats.Added).
		Int("updated", stats.Updated).
		Int("removed", stats.Removed).
		Dur("duration", stats.Duration).
		Msg("mirror complete")
	return stats, nil
}

// LastMirror returns when the store was last mirrored, or the zero time
func (s *Store) LastMirror(ctx context.Context) (time.Time, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'last_mirror_time'`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read last mirror time: %w", err)
	}
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad last_mirror_time %q: %w", v, err)
	}
	return time.Unix(sec, 0), nil
}
