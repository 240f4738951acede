package sqlite

import (
	"context"
	"errors"
	"slices"
	"testing"

	"fonoteca/internal/domain"
)

type fakeRemote struct {
	assets   []domain.Asset
	listErr  error
	statsErr error
}

func (f *fakeRemote) List(ctx context.Context) ([]domain.Asset, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.assets, nil
}

func (f *fakeRemote) Stats(ctx context.Context) (domain.Stats, error) {
	if f.statsErr != nil {
		return domain.Stats{}, f.statsErr
	}
	return domain.Stats{CollectionName: "audio_materials", TotalCount: len(f.assets)}, nil
}

func remoteAsset(id int64, desc string) domain.Asset {
	return domain.Asset{
		ID:          id,
		Type:        domain.AssetTypeAmbient,
		Description: desc,
		Tags:        []string{"field recording"},
		Duration:    120,
		Path:        "/remote/" + desc + ".wav",
	}
}

func TestStore_Mirror(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	remote := &fakeRemote{assets: []domain.Asset{
		remoteAsset(10, "rain"),
		remoteAsset(20, "wind"),
		remoteAsset(30, "waves"),
	}}

	stats, err := s.Mirror(ctx, remote)
	if err != nil {
		t.Fatalf("Mirror: %v", err)
	}
	if stats.Fetched != 3 || stats.Added != 3 || stats.Remote.CollectionName != "audio_materials" {
		t.Errorf("first mirror stats = %+v", stats)
	}

	// second run: one changed, one removed, one new
	remote.assets = []domain.Asset{
		remoteAsset(10, "rain"),
		remoteAsset(20, "gusty wind"),
		remoteAsset(40, "birds"),
	}
	stats, err = s.Mirror(ctx, remote)
	if err != nil {
		t.Fatalf("Mirror: %v", err)
	}
	if stats.Added != 1 || stats.Updated != 1 || stats.Removed != 1 || stats.Unchanged != 1 {
		t.Errorf("second mirror stats = %+v", stats)
	}

	assets, _ := s.List(ctx)
	if !slices.Equal(idsOf(assets), []int64{10, 20, 40}) {
		t.Errorf("mirrored ids = %v", idsOf(assets))
	}
	if assets[1].Description != "gusty wind" {
		t.Errorf("update not mirrored: %+v", assets[1])
	}

	last, err := s.LastMirror(ctx)
	if err != nil || last.IsZero() {
		t.Errorf("LastMirror() = %v, %v", last, err)
	}
}

func TestStore_MirrorFailureKeepsPreviousCopy(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	remote := &fakeRemote{assets: []domain.Asset{remoteAsset(1, "rain")}}
	if _, err := s.Mirror(ctx, remote); err != nil {
		t.Fatal(err)
	}

	unreachable := errors.New("connection refused")
	remote.listErr = unreachable
	if _, err := s.Mirror(ctx, remote); !errors.Is(err, unreachable) {
		t.Fatalf("expected wrapped list error, got %v", err)
	}

	assets, _ := s.List(ctx)
	if len(assets) != 1 {
		t.Errorf("failed mirror changed local copy: %+v", assets)
	}
}

func TestStore_MirrorToleratesStatsFailure(t *testing.T) {
	s := openTestStore(t)
	remote := &fakeRemote{
		assets:   []domain.Asset{remoteAsset(1, "rain")},
		statsErr: errors.New("stats unavailable"),
	}

	stats, err := s.Mirror(context.Background(), remote)
	if err != nil {
		t.Fatalf("Mirror: %v", err)
	}
	if stats.Added != 1 || stats.Remote.TotalCount != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestFingerprint(t *testing.T) {
	a := remoteAsset(1, "rain")
	b := a.Clone()
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("equal assets hash differently")
	}
	b.Tags = append(b.Tags, "loop")
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("tag change not detected")
	}
}
