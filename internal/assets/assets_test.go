package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestLoadPriority(t *testing.T) {
	m := NewManager()
	m.Mount("base", fstest.MapFS{
		"data/models/map.model.yaml": {Data: []byte("base")},
		"data/only-base.txt":         {Data: []byte("b")},
	})
	m.Mount("patch", fstest.MapFS{
		"data/models/map.model.yaml": {Data: []byte("patch")},
	})

	data, err := m.Load("data/models/map.model.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(data) != "patch" {
		t.Errorf("Load() = %q, want last mounted source to win", data)
	}

	if _, err := m.Load("data/only-base.txt"); err != nil {
		t.Errorf("Load() fallback error = %v", err)
	}
}

func TestLoadNormalizesPath(t *testing.T) {
	m := NewManager()
	m.Mount("mem", fstest.MapFS{"data/a.txt": {Data: []byte("a")}})

	for _, p := range []string{"data/a.txt", "./data/a.txt", "/data/a.txt", `data\a.txt`} {
		if _, err := m.Load(p); err != nil {
			t.Errorf("Load(%q) error = %v", p, err)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	m := NewManager()
	m.Mount("mem", fstest.MapFS{})

	_, err := m.Load("data/nope.bin")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
	if m.Exists("data/nope.bin") {
		t.Error("Exists() = true for missing file")
	}
}

func TestLoadCaches(t *testing.T) {
	m := NewManager()
	m.Mount("mem", fstest.MapFS{"a": {Data: []byte("1")}})

	m.Load("a")
	m.Load("a")
	hits, misses := m.CacheStats()
	if hits != 1 || misses != 1 {
		t.Errorf("CacheStats() = %d hits %d misses, want 1, 1", hits, misses)
	}

	m.Close()
	if _, err := m.Load("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after Close error = %v, want ErrNotFound", err)
	}
}

func TestMountDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data", "x.txt"), []byte("disk"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.MountDir(dir); err != nil {
		t.Fatalf("MountDir() error = %v", err)
	}
	data, err := m.Load("data/x.txt")
	if err != nil || string(data) != "disk" {
		t.Errorf("Load() = %q, %v; want disk", data, err)
	}

	if err := m.MountDir(filepath.Join(dir, "data", "x.txt")); err == nil {
		t.Error("MountDir() on a file succeeded")
	}
	if err := m.MountDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("MountDir() on a missing dir succeeded")
	}
}
