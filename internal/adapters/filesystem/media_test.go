package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestImport_CopiesIntoStore(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "incoming", "rain.wav")
	writeFile(t, src, "RIFF")

	store := NewMediaStore(filepath.Join(tmp, "media"))
	dst, err := store.Import(src)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if want := filepath.Join(tmp, "media", "rain.wav"); dst != want {
		t.Errorf("expected %s, got %s", want, dst)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "RIFF" {
		t.Errorf("imported content = %q, %v", data, err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source should be kept: %v", err)
	}
}

func TestImport_AvoidsNameClashes(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "rain.wav")
	writeFile(t, src, "x")

	store := NewMediaStore(filepath.Join(tmp, "media"))
	want := []string{"rain.wav", "rain-2.wav", "rain-3.wav"}
	for _, name := range want {
		dst, err := store.Import(src)
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if filepath.Base(dst) != name {
			t.Errorf("expected %s, got %s", name, filepath.Base(dst))
		}
	}

	entries, _ := os.ReadDir(store.Dir())
	if len(entries) != len(want) {
		t.Errorf("expected %d files (no temp leftovers), got %d", len(want), len(entries))
	}
}

func TestImport_Errors(t *testing.T) {
	tmp := t.TempDir()
	store := NewMediaStore(filepath.Join(tmp, "media"))

	tests := []struct {
		name string
		src  string
	}{
		{"missing file", filepath.Join(tmp, "nope.wav")},
		{"directory", tmp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Import(tt.src); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRemove(t *testing.T) {
	tmp := t.TempDir()
	store := NewMediaStore(filepath.Join(tmp, "media"))

	src := filepath.Join(tmp, "door.wav")
	writeFile(t, src, "x")
	dst, err := store.Import(src)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Remove(dst); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("imported file should be gone")
	}

	// already gone
	if err := store.Remove(dst); err != nil {
		t.Errorf("removing a missing file should succeed, got %v", err)
	}

	// outside the store
	if err := store.Remove(src); err != nil {
		t.Errorf("Remove(outside) = %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("file outside the store must not be touched")
	}
}

func TestNewMediaStore_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	store := NewMediaStore("~/fonoteca/media")
	if want := filepath.Join(home, "fonoteca", "media"); store.Dir() != want {
		t.Errorf("expected %s, got %s", want, store.Dir())
	}
}
