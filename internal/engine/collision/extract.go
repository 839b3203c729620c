// Package collision turns rendered mesh data into static collision geometry.
package collision

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gorge/internal/engine/mesh"
	"github.com/Faultbox/gorge/internal/engine/physics"
	"github.com/Faultbox/gorge/internal/engine/scene"
	"github.com/Faultbox/gorge/pkg/math"
)

var (
	ErrNodeNotFound       = errors.New("collision node not found")
	ErrNotMesh            = errors.New("collision node is not a mesh")
	ErrSurfaceUnavailable = errors.New("surface data unavailable")
)

// BufferAccessor resolves a surface's shared vertex/index buffers.
// mesh.Storage implements it.
type BufferAccessor interface {
	Surface(h mesh.DataHandle) (*mesh.SurfaceData, bool)
}

// NodeResolver finds nodes by name and resolves their world transforms.
// *scene.Scene implements it.
type NodeResolver interface {
	FindNodeByName(root scene.NodeHandle, name string) (scene.NodeHandle, bool)
	Node(h scene.NodeHandle) (*scene.Node, bool)
	GlobalTransform(h scene.NodeHandle) (math.Mat4, bool)
}

// Stats summarizes one extraction.
type Stats struct {
	Surfaces   int
	Triples    int // complete index triples visited
	Triangles  int // triangles added to the geometry
	Degenerate int // triples rejected as zero-area
	Invalid    int // triples referencing a vertex out of range
}

// Extractor builds static geometry from mesh surfaces.
type Extractor struct {
	buffers BufferAccessor
	log     *zap.Logger
}

// NewExtractor creates an extractor reading buffers through b.
// A nil logger discards diagnostics.
func NewExtractor(b BufferAccessor, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{buffers: b, log: log}
}

// Extract transforms every complete index triple of every surface into world
// space and keeps the non-degenerate ones. Trailing indices past the last
// full triple are never read.
//
// All surface handles are resolved before any triangle is built; if one is
// unavailable no geometry is produced.
func (e *Extractor) Extract(transform math.Mat4, surfaces []mesh.Surface) (*physics.StaticGeometry, Stats, error) {
	stats := Stats{Surfaces: len(surfaces)}

	data := make([]*mesh.SurfaceData, len(surfaces))
	for i, s := range surfaces {
		d, ok := e.buffers.Surface(s.Data)
		if !ok {
			return nil, stats, fmt.Errorf("surface %d (%s): %w", i, s.Material, ErrSurfaceUnavailable)
		}
		data[i] = d
	}

	geom := physics.NewStaticGeometry()

	for si, d := range data {
		last := len(d.Indices) - len(d.Indices)%3
		for i := 0; i < last; i += 3 {
			stats.Triples++

			i0, i1, i2 := d.Indices[i], d.Indices[i+1], d.Indices[i+2]
			n := uint32(len(d.Vertices))
			if i0 >= n || i1 >= n || i2 >= n {
				stats.Invalid++
				e.log.Warn("index out of range",
					zap.Int("surface", si),
					zap.Int("triple", i/3),
					zap.Uint32s("indices", []uint32{i0, i1, i2}),
					zap.Int("vertices", len(d.Vertices)))
				continue
			}

			a := transform.TransformVec3(d.Vertices[i0].Position)
			b := transform.TransformVec3(d.Vertices[i1].Position)
			c := transform.TransformVec3(d.Vertices[i2].Position)

			tri, ok := physics.NewStaticTriangle(a, b, c)
			if !ok {
				stats.Degenerate++
				e.log.Debug("degenerate triangle",
					zap.Int("surface", si),
					zap.Int("triple", i/3))
				continue
			}
			geom.Add(tri)
			stats.Triangles++
		}
	}

	return geom, stats, nil
}

// ExtractNode looks up name in the subtree of root and extracts the node's
// mesh using its world transform.
func (e *Extractor) ExtractNode(sc NodeResolver, root scene.NodeHandle, name string) (*physics.StaticGeometry, Stats, error) {
	h, ok := sc.FindNodeByName(root, name)
	if !ok {
		return nil, Stats{}, fmt.Errorf("%q: %w", name, ErrNodeNotFound)
	}

	node, ok := sc.Node(h)
	if !ok {
		return nil, Stats{}, fmt.Errorf("%q: %w", name, ErrNodeNotFound)
	}
	var surfaces []mesh.Surface
	switch k := node.Kind.(type) {
	case scene.MeshKind:
		surfaces = k.Mesh.Surfaces
	default:
		return nil, Stats{}, fmt.Errorf("%q is %s: %w", name, scene.KindName(k), ErrNotMesh)
	}

	transform, _ := sc.GlobalTransform(h)
	geom, stats, err := e.Extract(transform, surfaces)
	if err != nil {
		return nil, stats, fmt.Errorf("%q: %w", name, err)
	}
	return geom, stats, nil
}
