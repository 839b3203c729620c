// Package physics owns the collision data of a scene: static triangle
// geometry built at level load, and the simple bodies that move against it.
package physics

import (
	"github.com/Faultbox/gorge/pkg/math"
)

// DegenerateEpsilon is the smallest accepted |(B-A)x(C-A)| relative to
// |B-A|*|C-A|, i.e. the sine of the angle at A. Being dimensionless, the
// classification of a triangle does not change under uniform scaling.
const DegenerateEpsilon = 1e-5

// StaticTriangle is a validated, non-degenerate triangle in world space.
// Only NewStaticTriangle produces one.
type StaticTriangle struct {
	A, B, C math.Vec3
	// Normal is the unit plane normal, following A->B->C winding.
	Normal math.Vec3
	EdgeAB math.Vec3
	EdgeAC math.Vec3
}

// NewStaticTriangle validates a candidate triangle. ok is false when the
// points are collinear, two of them coincide, or the angle at A is too
// thin for DegenerateEpsilon; that is not an error, the triangle is just
// unusable.
func NewStaticTriangle(a, b, c math.Vec3) (tri StaticTriangle, ok bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	n := ab.Cross(ac)

	mag := n.Length()
	if !(mag > DegenerateEpsilon*ab.Length()*ac.Length()) { // also rejects NaN and zero edges
		return StaticTriangle{}, false
	}

	return StaticTriangle{
		A:      a,
		B:      b,
		C:      c,
		Normal: n.Scale(1 / mag),
		EdgeAB: ab,
		EdgeAC: ac,
	}, true
}

// Area returns the triangle area.
func (t *StaticTriangle) Area() float32 {
	return t.EdgeAB.Cross(t.EdgeAC).Length() / 2
}

// Centroid returns the average of the three points.
func (t *StaticTriangle) Centroid() math.Vec3 {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3.0)
}

// IntersectRay runs Moller-Trumbore against the triangle. dir need not be
// normalized; the returned distance is in units of dir. Both faces are hit.
func (t *StaticTriangle) IntersectRay(origin, dir math.Vec3) (dist float32, hit bool) {
	const eps = 1e-7

	p := dir.Cross(t.EdgeAC)
	det := t.EdgeAB.Dot(p)
	if det > -eps && det < eps {
		return 0, false // parallel to the plane
	}
	inv := 1 / det

	s := origin.Sub(t.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(t.EdgeAB)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist = t.EdgeAC.Dot(q) * inv
	if dist < 0 {
		return 0, false
	}
	return dist, true
}
