package physics

import (
	"sync"

	"github.com/Faultbox/gorge/internal/engine/pool"
	"github.com/Faultbox/gorge/pkg/math"
)

// GeometryHandle identifies static geometry registered with a World.
type GeometryHandle = pool.Handle[*StaticGeometry]

// BodyHandle identifies a body inside a World.
type BodyHandle = pool.Handle[Body]

// Body is a sphere that falls under gravity and rests on static geometry.
type Body struct {
	Position math.Vec3
	Velocity math.Vec3
	Radius   float32
	Grounded bool
}

// Hit describes the closest static triangle along a ray.
type Hit struct {
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
	Geometry GeometryHandle
	Triangle int
}

// World is the physics world of one scene.
//
// Static geometry is write-once: AddStaticGeometry takes ownership and the
// world never mutates it. Queries may run from a different goroutine than
// level assembly.
type World struct {
	// Gravity is applied to every body on Step.
	Gravity math.Vec3
	// MaxStep is how far above a body's feet a surface may be and still be
	// stepped onto.
	MaxStep float32

	mu         sync.RWMutex
	geometries *pool.Pool[*StaticGeometry]
	bodies     *pool.Pool[Body]
}

// NewWorld creates a world with earth gravity.
func NewWorld() *World {
	return &World{
		Gravity:    math.Vec3{Y: -9.81},
		MaxStep:    0.3,
		geometries: pool.New[*StaticGeometry](),
		bodies:     pool.New[Body](),
	}
}

// AddStaticGeometry registers geometry and takes ownership of it.
func (w *World) AddStaticGeometry(g *StaticGeometry) GeometryHandle {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.geometries.Spawn(g)
}

// RemoveStaticGeometry unregisters geometry. Changing static collision means
// building a new StaticGeometry and registering it again.
func (w *World) RemoveStaticGeometry(h GeometryHandle) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.geometries.Free(h)
	return ok
}

// StaticGeometryCount returns the number of registered geometries.
func (w *World) StaticGeometryCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.geometries.Len()
}

// TriangleCount returns the number of triangles over all static geometry.
func (w *World) TriangleCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	n := 0
	w.geometries.Each(func(_ GeometryHandle, g **StaticGeometry) {
		n += (*g).Len()
	})
	return n
}

// CastRay returns the closest static triangle hit within maxDist.
func (w *World) CastRay(origin, dir math.Vec3, maxDist float32) (Hit, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.castRay(origin, dir, maxDist)
}

func (w *World) castRay(origin, dir math.Vec3, maxDist float32) (Hit, bool) {
	dir = dir.Normalize()
	if dir == (math.Vec3{}) {
		return Hit{}, false
	}

	best := Hit{Distance: maxDist}
	found := false

	w.geometries.Each(func(h GeometryHandle, gp **StaticGeometry) {
		g := *gp
		if t, ok := g.bounds.IntersectRay(origin, dir); !ok || t > best.Distance {
			return
		}
		for i := range g.triangles {
			tri := &g.triangles[i]
			d, ok := tri.IntersectRay(origin, dir)
			if !ok || d > best.Distance {
				continue
			}
			best = Hit{
				Point:    origin.Add(dir.Scale(d)),
				Normal:   tri.Normal,
				Distance: d,
				Geometry: h,
				Triangle: i,
			}
			found = true
		}
	})

	if !found {
		return Hit{}, false
	}
	return best, true
}

// AddBody adds a body to the world.
func (w *World) AddBody(b Body) BodyHandle {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bodies.Spawn(b)
}

// RemoveBody removes a body.
func (w *World) RemoveBody(h BodyHandle) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.bodies.Free(h)
	return ok
}

// Body returns a copy of the body behind h.
func (w *World) Body(h BodyHandle) (Body, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.bodies.Borrow(h)
	if !ok {
		return Body{}, false
	}
	return *b, true
}

// UpdateBody runs fn on the body behind h under the world lock.
func (w *World) UpdateBody(h BodyHandle, fn func(*Body)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bodies.Borrow(h)
	if !ok {
		return false
	}
	fn(b)
	return true
}

// Step advances every body by dt seconds: gravity, integration, then ground
// snapping against static geometry.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.bodies.Each(func(_ BodyHandle, b *Body) {
		if !b.Grounded {
			b.Velocity = b.Velocity.Add(w.Gravity.Scale(dt))
		}
		next := b.Position.Add(b.Velocity.Scale(dt))

		// Sweep from MaxStep above the higher of the old and new feet down
		// to just below the new feet, so a long fall cannot skip the floor.
		top := b.Position.Y
		if next.Y > top {
			top = next.Y
		}
		top += w.MaxStep - b.Radius
		dist := top - (next.Y - b.Radius) + contactSlop
		origin := math.Vec3{X: next.X, Y: top, Z: next.Z}
		if hit, ok := w.castRay(origin, down, dist); ok {
			next.Y = origin.Y - hit.Distance + b.Radius
			if b.Velocity.Y < 0 {
				b.Velocity.Y = 0
			}
			b.Grounded = true
		} else {
			b.Grounded = false
		}
		b.Position = next
	})
}

// contactSlop keeps a resting body grounded despite float drift.
const contactSlop = 1e-3

var down = math.Vec3{Y: -1}
