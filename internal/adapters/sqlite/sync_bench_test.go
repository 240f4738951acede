package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"fonoteca/internal/domain"
)

func benchRemote(n int) *fakeRemote {
	assets := make([]domain.Asset, n)
	for i := range assets {
		assets[i] = remoteAsset(int64(i+1), fmt.Sprintf("take_%d", i))
	}
	return &fakeRemote{assets: assets}
}

// BenchmarkMirrorCold benchmarks mirroring into an empty database
func BenchmarkMirrorCold(b *testing.B) {
	remote := benchRemote(2000)
	dir := b.TempDir()
	ctx := context.Background()

	i := 0
	for b.Loop() {
		s, err := Open(filepath.Join(dir, fmt.Sprintf("cold-%d.db", i)))
		if err != nil {
			b.Fatalf("failed to open store: %v", err)
		}
		if _, err := s.Mirror(ctx, remote); err != nil {
			b.Fatalf("mirror failed: %v", err)
		}
		if err := s.Close(); err != nil {
			b.Fatalf("failed to close store: %v", err)
		}
		i++
	}
}

// BenchmarkMirrorWarm benchmarks re-mirroring an unchanged collection
func BenchmarkMirrorWarm(b *testing.B) {
	remote := benchRemote(2000)
	ctx := context.Background()

	s, err := Open(filepath.Join(b.TempDir(), "warm.db"))
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	if _, err := s.Mirror(ctx, remote); err != nil {
		b.Fatalf("initial mirror failed: %v", err)
	}

	for b.Loop() {
		if _, err := s.Mirror(ctx, remote); err != nil {
			b.Fatalf("mirror failed: %v", err)
		}
	}
}

// BenchmarkRank benchmarks local search ranking
func BenchmarkRank(b *testing.B) {
	assets := benchRemote(5000).assets
	for b.Loop() {
		Rank(assets, "tk_4", domain.DefaultSearchLimit)
	}
}
