package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

// testEnv is a local catalog in a temp directory
type testEnv struct {
	dir string
	db  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, k := range []string{
		"FONOTECA_API_URL", "FONOTECA_BACKEND", "FONOTECA_DB", "FONOTECA_LOG_FILE",
		"FONOTECA_PLAYER", "FONOTECA_PAGE_SIZE",
	} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Setenv("FONOTECA_MEDIA_DIR", filepath.Join(dir, "media"))
	t.Setenv("FONOTECA_LOG_LEVEL", "error")
	return &testEnv{dir: dir, db: filepath.Join(dir, "fonoteca.db")}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	base := []string{"--config", filepath.Join(e.dir, "absent.yaml"), "--backend", "sqlite", "--db", e.db}

	var out bytes.Buffer
	root, cleanup := NewRootCmd(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(base, args...))
	err := root.Execute()
	cleanup()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

func (e *testEnv) audioFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.dir, "src", name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCLI_AssetLifecycle(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun(t, "create", e.audioFile(t, "door_slam.wav"), "--duration", "2")
	if !strings.Contains(out, "Created asset 1: door slam") {
		t.Errorf("create output = %q", out)
	}

	out = e.mustRun(t, "show", "1")
	if !strings.Contains(out, "type:        action") || !strings.Contains(out, "duration:    0:02 (2s)") {
		t.Errorf("show output:\n%s", out)
	}

	out = e.mustRun(t, "update", "1", "--description", "heavy door", "--tags", "door,wood")
	if !strings.Contains(out, "Updated asset 1: heavy door") {
		t.Errorf("update output = %q", out)
	}

	out = e.mustRun(t, "list")
	for _, want := range []string{"heavy door", "#door #wood", "all assets: 1 assets, page 1/1"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output is missing %q:\n%s", want, out)
		}
	}

	out = e.mustRun(t, "update", "1", "--tags", "")
	if !strings.Contains(out, "Updated asset 1") {
		t.Errorf("clearing tags: %q", out)
	}
	if out := e.mustRun(t, "list"); strings.Contains(out, "#door") {
		t.Errorf("tags not cleared:\n%s", out)
	}

	out = e.mustRun(t, "delete", "1")
	if strings.TrimSpace(out) != "Deleted asset 1" {
		t.Errorf("delete output = %q", out)
	}
	if _, err := e.run(t, "show", "1"); err == nil {
		t.Error("deleted asset still shown")
	}
	if out := e.mustRun(t, "list"); !strings.Contains(out, "No results found") {
		t.Errorf("list after delete:\n%s", out)
	}
}

func TestCLI_ListFiltersAndJSON(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun(t, "create", e.audioFile(t, "heavy_rain.wav"), "--duration", "300", "--tags", "rain")
	e.mustRun(t, "create", e.audioFile(t, "light_rain.wav"), "--duration", "90", "--tags", "rain")
	e.mustRun(t, "create", e.audioFile(t, "door_slam.wav"), "--duration", "2")

	out := e.mustRun(t, "--json", "list", "--type", "ambient", "--min", "100")
	var page pageJSON
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if page.TotalItems != 1 || len(page.Items) != 1 || page.Items[0].Description != "heavy rain" {
		t.Errorf("filtered page = %+v", page)
	}
	if !strings.HasPrefix(page.View, "filtered") {
		t.Errorf("view = %q", page.View)
	}

	out = e.mustRun(t, "--json", "list", "--page-size", "2", "--page", "2")
	page = pageJSON{}
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatal(err)
	}
	if page.Page != 2 || page.TotalPages != 2 || len(page.Items) != 1 {
		t.Errorf("second page = %+v", page)
	}

	out = e.mustRun(t, "search", "rain", "--max", "120")
	if !strings.Contains(out, "light rain") || strings.Contains(out, "heavy rain") || strings.Contains(out, "door") {
		t.Errorf("search output:\n%s", out)
	}

	out = e.mustRun(t, "stats")
	if !strings.Contains(out, "total: 3") || !strings.Contains(out, "ambient") {
		t.Errorf("stats output:\n%s", out)
	}
}

func TestCLI_InvalidInput(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"unknown type", []string{"list", "--type", "voice"}, "unknown asset type"},
		{"inverted bounds", []string{"list", "--min", "90", "--max", "10"}, "duration"},
		{"page out of range", []string{"list", "--page", "3"}, "out of range"},
		{"bad id", []string{"show", "abc"}, "invalid ID"},
		{"unknown backend", []string{"--backend", "ftp", "list"}, "unknown backend"},
		{"no type for file name", []string{"create", "/tmp/x.wav", "--duration", "5"}, "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("err = %v, want %q", err, tt.errMsg)
			}
		})
	}
}

func TestCLI_Mirror(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/audio":
			w.Write([]byte(`[
				{"id":7,"type":"music","description":"main theme","tags":["theme"],"duration":95,"path":"/music/theme.ogg"},
				{"id":9,"type":"action","description":"door slam","tags":[],"duration":2,"path":"/sfx/door.wav"}
			]`))
		case "/audio/stats":
			w.Write([]byte(`{"total_count":2,"type_counts":{"music":1,"action":1}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	e := newTestEnv(t)
	out := e.mustRun(t, "mirror", "--api-url", srv.URL)
	if !strings.Contains(out, "2 fetched: 2 added") {
		t.Errorf("mirror output = %q", out)
	}

	out = e.mustRun(t, "--json", "mirror", "--api-url", srv.URL)
	var stats struct {
		Unchanged int `json:"unchanged"`
	}
	if err := json.Unmarshal([]byte(out), &stats); err != nil || stats.Unchanged != 2 {
		t.Errorf("second mirror = %q (%v)", out, err)
	}

	out = e.mustRun(t, "show", "7")
	if !strings.Contains(out, "main theme") {
		t.Errorf("mirrored asset keeps its remote id:\n%s", out)
	}
}

func TestCLI_Health(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun(t, "health")
	if !strings.Contains(out, "sqlite backend is healthy") {
		t.Errorf("health output = %q", out)
	}
}
