// Package mesh holds renderable mesh data: per-surface vertex and index
// buffers kept in a shared Storage and referenced from scene nodes by handle.
package mesh

import (
	"github.com/Faultbox/gorge/internal/engine/pool"
	"github.com/Faultbox/gorge/pkg/math"
)

// Vertex is a mesh vertex. Collision only reads Position.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// SurfaceData is the shared vertex/index buffer pair of one surface.
// Indices are grouped in triangles; a trailing partial triple is ignored
// by every consumer.
type SurfaceData struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of complete index triples.
func (d *SurfaceData) TriangleCount() int {
	return len(d.Indices) / 3
}

// DataHandle addresses a SurfaceData inside a Storage.
type DataHandle = pool.Handle[SurfaceData]

// Surface is a mesh subset sharing one buffer pair and material.
type Surface struct {
	Data     DataHandle
	Material string
}

// Mesh is the payload of a mesh scene node.
type Mesh struct {
	Surfaces []Surface
}
