// Package debug provides debug visualization utilities for static collision.
package debug

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/gorge/internal/engine/physics"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// BBoxWireframe creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
// padding expands the box by the given amount on all sides.
func BBoxWireframe(b physics.AABB, padding float32) []float32 {
	minX, minY, minZ := b.Min.X-padding, b.Min.Y-padding, b.Min.Z-padding
	maxX, maxY, maxZ := b.Max.X+padding, b.Max.Y+padding, b.Max.Z+padding

	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// TriangleWireframe creates line vertices for every edge of every triangle,
// 6 vertices per triangle.
func TriangleWireframe(g *physics.StaticGeometry) []float32 {
	tris := g.Triangles()
	out := make([]float32, 0, len(tris)*18)
	for _, t := range tris {
		out = append(out,
			t.A.X, t.A.Y, t.A.Z, t.B.X, t.B.Y, t.B.Z,
			t.B.X, t.B.Y, t.B.Z, t.C.X, t.C.Y, t.C.Z,
			t.C.X, t.C.Y, t.C.Z, t.A.X, t.A.Y, t.A.Z,
		)
	}
	return out
}

// WriteOBJ writes the geometry as a Wavefront OBJ mesh with one face normal
// per triangle, so it can be opened in any model viewer.
func WriteOBJ(w io.Writer, name string, g *physics.StaticGeometry) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# static collision, %d triangles\n", g.Len())
	fmt.Fprintf(bw, "o %s\n", name)
	for _, t := range g.Triangles() {
		fmt.Fprintf(bw, "v %g %g %g\n", t.A.X, t.A.Y, t.A.Z)
		fmt.Fprintf(bw, "v %g %g %g\n", t.B.X, t.B.Y, t.B.Z)
		fmt.Fprintf(bw, "v %g %g %g\n", t.C.X, t.C.Y, t.C.Z)
	}
	for _, t := range g.Triangles() {
		fmt.Fprintf(bw, "vn %g %g %g\n", t.Normal.X, t.Normal.Y, t.Normal.Z)
	}
	for i, n := 0, g.Len(); i < n; i++ {
		v := i*3 + 1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", v, i+1, v+1, i+1, v+2, i+1)
	}

	return bw.Flush()
}

// WriteWireOBJ writes the triangle edges and the padded bounding box as OBJ
// line elements, one object each.
func WriteWireOBJ(w io.Writer, name string, g *physics.StaticGeometry, padding float32) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# static collision wireframe, %d triangles\n", g.Len())
	next := 1
	writeLines := func(object string, verts []float32) {
		fmt.Fprintf(bw, "o %s\n", object)
		for i := 0; i+2 < len(verts); i += 3 {
			fmt.Fprintf(bw, "v %g %g %g\n", verts[i], verts[i+1], verts[i+2])
		}
		for i := 0; i < len(verts)/6; i++ {
			fmt.Fprintf(bw, "l %d %d\n", next, next+1)
			next += 2
		}
	}

	writeLines(name, TriangleWireframe(g))
	if g.Len() > 0 {
		writeLines(name+"_bounds", BBoxWireframe(g.Bounds(), padding))
	}

	return bw.Flush()
}
