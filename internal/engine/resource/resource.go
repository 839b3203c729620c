// Package resource resolves asset paths into typed, cached resources.
package resource

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/gorge/internal/assets"
	"github.com/Faultbox/gorge/internal/engine/pool"
)

var (
	// ErrNotFound is returned when no asset source holds the path.
	ErrNotFound = assets.ErrNotFound
	// ErrUnsupported is returned for paths whose extension maps to no kind.
	ErrUnsupported = errors.New("unsupported resource type")
)

// Source supplies raw asset bytes. assets.Manager implements it.
type Source interface {
	Load(name string) ([]byte, error)
}

// Kind is the typed payload of a resource. The set is closed: ModelKind
// and TextureKind.
type Kind interface {
	resourceKind()
}

// ModelKind holds a decoded model.
type ModelKind struct {
	Model *Model
}

// TextureKind holds encoded image bytes; decoding is the renderer's job.
type TextureKind struct {
	Data []byte
}

func (ModelKind) resourceKind()   {}
func (TextureKind) resourceKind() {}

// Resource is a loaded asset.
type Resource struct {
	Path string
	Kind Kind
}

// Model returns the model payload if the resource is a model.
func (r *Resource) Model() (*Model, bool) {
	if k, ok := r.Kind.(ModelKind); ok {
		return k.Model, true
	}
	return nil, false
}

// Handle addresses a resource in a Manager.
type Handle = pool.Handle[Resource]

// Manager loads resources once per path and hands out handles.
// It is meant to be used from the loading thread only.
type Manager struct {
	source    Source
	resources *pool.Pool[Resource]
	byPath    map[string]Handle
	log       *zap.Logger
}

// NewManager creates a resource manager reading from src.
func NewManager(src Source, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		source:    src,
		resources: pool.New[Resource](),
		byPath:    make(map[string]Handle),
		log:       log,
	}
}

// Request returns the handle for path, loading it on first use.
func (m *Manager) Request(p string) (Handle, error) {
	key := normalize(p)
	if h, ok := m.byPath[key]; ok && m.resources.Alive(h) {
		return h, nil
	}

	kind, err := m.load(key)
	if err != nil {
		m.log.Warn("resource request failed", zap.String("path", key), zap.Error(err))
		return Handle{}, fmt.Errorf("loading resource %s: %w", key, err)
	}

	h := m.resources.Spawn(Resource{Path: key, Kind: kind})
	m.byPath[key] = h
	m.log.Debug("resource loaded", zap.String("path", key), zap.String("kind", kindName(kind)))
	return h, nil
}

// Borrow returns the resource behind h.
func (m *Manager) Borrow(h Handle) (*Resource, bool) {
	return m.resources.Borrow(h)
}

// Preload requests every path and reports all failures together.
func (m *Manager) Preload(paths ...string) error {
	var errs error
	for _, p := range paths {
		if _, err := m.Request(p); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// Unload drops a resource. Scenes already instantiated from it keep working.
func (m *Manager) Unload(h Handle) bool {
	r, ok := m.resources.Free(h)
	if !ok {
		return false
	}
	delete(m.byPath, r.Path)
	return true
}

// Len returns the number of loaded resources.
func (m *Manager) Len() int {
	return m.resources.Len()
}

func (m *Manager) load(key string) (Kind, error) {
	ext := extension(key)
	switch ext {
	case ".model.yaml", ".model.yml":
	case ".png", ".tga", ".bmp", ".jpg", ".jpeg":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	data, err := m.source.Load(key)
	if err != nil {
		return nil, err
	}

	switch ext {
	case ".model.yaml", ".model.yml":
		model, err := DecodeModel(data)
		if err != nil {
			return nil, err
		}
		if model.Name == "" {
			model.Name = strings.TrimSuffix(path.Base(key), ext)
		}
		return ModelKind{Model: model}, nil
	default:
		return TextureKind{Data: data}, nil
	}
}

func normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// extension returns the lower-cased extension, keeping the ".model" infix.
func extension(p string) string {
	lower := strings.ToLower(path.Base(p))
	for _, ext := range []string{".model.yaml", ".model.yml"} {
		if strings.HasSuffix(lower, ext) {
			return ext
		}
	}
	return path.Ext(lower)
}

func kindName(k Kind) string {
	switch k.(type) {
	case ModelKind:
		return "model"
	case TextureKind:
		return "texture"
	default:
		return "unknown"
	}
}
