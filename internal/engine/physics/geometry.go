package physics

// StaticGeometry is an ordered, append-only set of static triangles for one
// mesh. It trusts its caller: triangles come from NewStaticTriangle. Once
// registered with a World it must not be modified.
type StaticGeometry struct {
	triangles []StaticTriangle
	bounds    AABB
}

// NewStaticGeometry creates empty static geometry.
func NewStaticGeometry() *StaticGeometry {
	return &StaticGeometry{bounds: emptyAABB()}
}

// Add appends a triangle.
func (g *StaticGeometry) Add(tri StaticTriangle) {
	g.triangles = append(g.triangles, tri)
	g.bounds.extend(tri.A)
	g.bounds.extend(tri.B)
	g.bounds.extend(tri.C)
}

// Len returns the number of triangles.
func (g *StaticGeometry) Len() int {
	return len(g.triangles)
}

// Triangles returns the triangles in insertion order. Callers must treat the
// slice as read-only.
func (g *StaticGeometry) Triangles() []StaticTriangle {
	return g.triangles
}

// Bounds returns the box around every triangle.
func (g *StaticGeometry) Bounds() AABB {
	return g.bounds
}
