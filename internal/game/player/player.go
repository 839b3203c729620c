// Package player implements the local player: a physics body walking on the
// level's static geometry and a camera node following it.
package player

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gorge/internal/config"
	"github.com/Faultbox/gorge/internal/engine/clock"
	"github.com/Faultbox/gorge/internal/engine/physics"
	"github.com/Faultbox/gorge/internal/engine/scene"
	"github.com/Faultbox/gorge/pkg/math"
)

// CameraName is the name of the player's camera node.
const CameraName = "PlayerCamera"

// DefaultFOV is the vertical field of view of the player camera, radians.
const DefaultFOV = 75 * gomath.Pi / 180

// maxPitch keeps the view from flipping over the poles.
const maxPitch = 89 * gomath.Pi / 180

// Player is bound to the scene it was created in.
type Player struct {
	body   physics.BodyHandle
	camera scene.NodeHandle

	eyeHeight float32
	moveSpeed float32

	move  math.Vec2 // X strafes right, Y walks forward
	yaw   float32   // radians, counter-clockwise seen from above
	pitch float32   // radians, positive looks up
}

// New spawns the player's body and camera into sc.
func New(sc *scene.Scene, cfg config.PlayerConfig) *Player {
	p := &Player{
		eyeHeight: cfg.EyeHeight,
		moveSpeed: cfg.MoveSpeed,
	}

	p.body = sc.Physics().AddBody(physics.Body{
		Position: math.Vec3FromArray(cfg.Spawn),
		Radius:   cfg.Radius,
	})
	p.camera = sc.AddNode(scene.NewNode(CameraName, scene.CameraKind{FOV: DefaultFOV}))
	p.Sync(sc)
	return p
}

// Body returns the physics body handle.
func (p *Player) Body() physics.BodyHandle {
	return p.body
}

// Camera returns the camera node handle.
func (p *Player) Camera() scene.NodeHandle {
	return p.camera
}

// SetInput sets the movement vector and view angles used by the next Update.
// Movement longer than 1 is normalized; pitch is clamped short of straight
// up or down.
func (p *Player) SetInput(move math.Vec2, yaw, pitch float32) {
	if move.Length() > 1 {
		move = move.Normalize()
	}
	p.move = move
	p.yaw = yaw
	p.pitch = mgl32.Clamp(pitch, -maxPitch, maxPitch)
}

// Orientation returns the view rotation: yaw about +Y, then pitch about +X.
func (p *Player) Orientation() mgl32.Quat {
	return mgl32.AnglesToQuat(p.yaw, p.pitch, 0, mgl32.YXZ)
}

// Forward returns the horizontal walking direction.
func (p *Player) Forward() math.Vec3 {
	f := mgl32.QuatRotate(p.yaw, mgl32.Vec3{0, 1, 0}).Rotate(mgl32.Vec3{0, 0, -1})
	return math.Vec3{X: f.X(), Y: f.Y(), Z: f.Z()}
}

// LookDirection returns the unit vector the camera looks along.
func (p *Player) LookDirection() math.Vec3 {
	d := p.Orientation().Rotate(mgl32.Vec3{0, 0, -1})
	return math.Vec3{X: d.X(), Y: d.Y(), Z: d.Z()}
}

// Position returns the body position.
func (p *Player) Position(sc *scene.Scene) (math.Vec3, bool) {
	b, ok := sc.Physics().Body(p.body)
	return b.Position, ok
}

// Grounded reports whether the body rests on static geometry.
func (p *Player) Grounded(sc *scene.Scene) bool {
	b, ok := sc.Physics().Body(p.body)
	return ok && b.Grounded
}

// Update turns the current input into horizontal body velocity. Vertical
// velocity belongs to the physics step.
func (p *Player) Update(sc *scene.Scene, _ clock.GameTime) {
	forward := mgl32.Vec3{0, 0, -1}
	right := mgl32.Vec3{1, 0, 0}
	q := mgl32.QuatRotate(p.yaw, mgl32.Vec3{0, 1, 0})
	wish := q.Rotate(right).Mul(p.move.X).Add(q.Rotate(forward).Mul(p.move.Y)).Mul(p.moveSpeed)

	sc.Physics().UpdateBody(p.body, func(b *physics.Body) {
		b.Velocity.X = wish.X()
		b.Velocity.Z = wish.Z()
	})
}

// Sync moves the camera node to eye height above the body and applies the
// view orientation.
func (p *Player) Sync(sc *scene.Scene) {
	b, ok := sc.Physics().Body(p.body)
	if !ok {
		return
	}
	n, ok := sc.Node(p.camera)
	if !ok {
		return
	}
	n.Position = b.Position.Add(math.Vec3{Y: p.eyeHeight - b.Radius})
	q := p.Orientation()
	n.Rotation = math.Quat{X: q.V.X(), Y: q.V.Y(), Z: q.V.Z(), W: q.W}
}

// Remove takes the player out of sc.
func (p *Player) Remove(sc *scene.Scene) {
	sc.Physics().RemoveBody(p.body)
	sc.Remove(p.camera)
}
