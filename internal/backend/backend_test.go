package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"fonoteca/internal/adapters/httpapi"
	"fonoteca/internal/catalog"
	"fonoteca/internal/config"
	"fonoteca/internal/domain"
)

func TestOpen_SQLite(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Backend = config.BackendSQLite
	cfg.DBPath = filepath.Join(dir, "fonoteca.db")
	cfg.MediaDir = filepath.Join(dir, "media")
	cfg.PageSize = 2

	b, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer b.Close()

	if b.Store == nil || b.Store.Path() != cfg.DBPath {
		t.Fatalf("store not opened at %s", cfg.DBPath)
	}

	ctx := context.Background()
	for _, name := range []string{"rain.wav", "wind.wav", "sea.wav"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("RIFF"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := b.API.Create(ctx, domain.NewAsset{Path: p, Type: domain.AssetTypeAmbient, Duration: 120}); err != nil {
			t.Fatalf("Create(%s): %v", p, err)
		}
	}
	if err := b.Engine.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	snap := b.Engine.Snapshot()
	if snap.CacheSize != 3 || snap.Pagination.ItemsPerPage != 2 || snap.Pagination.TotalPages != 2 {
		t.Errorf("engine not configured from cfg: %+v", snap.Pagination)
	}
}

func TestOpen_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"type":"music","tags":["theme"],"duration":95,"path":"/music/theme.ogg"}]`))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.APIURL = srv.URL

	b, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer b.Close()

	if b.Store != nil {
		t.Error("http backend should not open a local store")
	}
	if c, ok := b.API.(*httpapi.Client); !ok || c.BaseURL() != srv.URL {
		t.Fatalf("API = %T", b.API)
	}
	if err := b.Engine.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s := b.Engine.Snapshot(); s.CacheSize != 1 || s.State.Kind() != catalog.KindUnfiltered {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = "ftp"

	if _, err := Open(cfg, zerolog.Nop()); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

func TestBackend_CloseNil(t *testing.T) {
	var b *Backend
	if err := b.Close(); err != nil {
		t.Errorf("Close on nil backend: %v", err)
	}
}
