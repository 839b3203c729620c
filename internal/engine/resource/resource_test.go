package resource

import (
	"errors"
	"testing"
	"testing/fstest"

	"go.uber.org/multierr"

	"github.com/Faultbox/gorge/internal/assets"
)

func newTestManager(t *testing.T) (*Manager, *assets.Manager) {
	t.Helper()
	src := assets.NewManager()
	if err := src.MountDir("testdata"); err != nil {
		t.Fatalf("MountDir() error = %v", err)
	}
	src.Mount("mem", fstest.MapFS{
		"textures/ground.png":   {Data: []byte{0x89, 'P', 'N', 'G'}},
		"sounds/step.wav":       {Data: []byte("RIFF")},
		"models/bad.model.yaml": {Data: []byte("nodes: []\n")},
	})
	return NewManager(src, nil), src
}

func TestRequest_Model(t *testing.T) {
	m, _ := newTestManager(t)

	h, err := m.Request("map.model.yaml")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	r, ok := m.Borrow(h)
	if !ok {
		t.Fatal("Borrow() ok = false")
	}
	model, ok := r.Model()
	if !ok {
		t.Fatalf("Kind = %T, want ModelKind", r.Kind)
	}
	if model.Name != "map" {
		t.Errorf("model Name = %q, want map", model.Name)
	}
}

func TestRequest_CachedByPath(t *testing.T) {
	m, _ := newTestManager(t)

	a, err := m.Request("ripper.model.yaml")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	b, err := m.Request("./ripper.model.yaml")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if a != b {
		t.Errorf("Request() handles differ: %v vs %v", a, b)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestRequest_Texture(t *testing.T) {
	m, _ := newTestManager(t)

	h, err := m.Request("textures/ground.png")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	r, _ := m.Borrow(h)
	tex, ok := r.Kind.(TextureKind)
	if !ok {
		t.Fatalf("Kind = %T, want TextureKind", r.Kind)
	}
	if len(tex.Data) != 4 {
		t.Errorf("len(Data) = %d, want 4", len(tex.Data))
	}
	if _, ok := r.Model(); ok {
		t.Error("Model() ok = true for texture")
	}
}

func TestRequest_Errors(t *testing.T) {
	tests := []struct {
		path string
		want error
	}{
		{"missing.model.yaml", ErrNotFound},
		{"sounds/step.wav", ErrUnsupported},
		{"models/bad.model.yaml", ErrMalformed},
	}

	m, _ := newTestManager(t)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			h, err := m.Request(tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("Request() error = %v, want %v", err, tt.want)
			}
			if !h.IsNone() {
				t.Errorf("Request() handle = %v, want zero", h)
			}
		})
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestUnload(t *testing.T) {
	m, _ := newTestManager(t)

	h, _ := m.Request("ripper.model.yaml")
	if !m.Unload(h) {
		t.Fatal("Unload() = false")
	}
	if _, ok := m.Borrow(h); ok {
		t.Error("Borrow() after Unload ok = true")
	}
	if m.Unload(h) {
		t.Error("second Unload() = true")
	}

	h2, err := m.Request("ripper.model.yaml")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if h2 == h {
		t.Error("reloaded resource reused the stale handle")
	}
}

func TestPreload(t *testing.T) {
	m, _ := newTestManager(t)

	err := m.Preload("map.model.yaml", "missing.model.yaml", "ripper.model.yaml", "sounds/step.wav")
	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("Preload() errors = %d, want 2: %v", len(errs), err)
	}
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, ErrUnsupported) {
		t.Errorf("Preload() error = %v, want ErrNotFound and ErrUnsupported", err)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}

	if err := m.Preload("map.model.yaml"); err != nil {
		t.Errorf("Preload() of cached path error = %v", err)
	}
}
