package player

import (
	gomath "math"
	"testing"
	"time"

	"github.com/Faultbox/gorge/internal/config"
	"github.com/Faultbox/gorge/internal/engine/clock"
	"github.com/Faultbox/gorge/internal/engine/physics"
	"github.com/Faultbox/gorge/internal/engine/scene"
	"github.com/Faultbox/gorge/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func floorScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc := scene.New()
	g := physics.NewStaticGeometry()
	a := math.Vec3{X: -50, Z: -50}
	b := math.Vec3{X: -50, Z: 50}
	c := math.Vec3{X: 50, Z: 50}
	d := math.Vec3{X: 50, Z: -50}
	for _, pts := range [][3]math.Vec3{{a, b, c}, {a, c, d}} {
		tri, ok := physics.NewStaticTriangle(pts[0], pts[1], pts[2])
		if !ok {
			t.Fatal("floor triangle degenerate")
		}
		g.Add(tri)
	}
	sc.Physics().AddStaticGeometry(g)
	return sc
}

// run advances player and physics for n ticks of 1/60s.
func run(sc *scene.Scene, p *Player, n int) {
	clk := clock.New(time.Second / 60)
	for i := 0; i < n; i++ {
		gt := clk.Tick()
		p.Update(sc, gt)
		sc.Physics().Step(gt.Seconds())
		p.Sync(sc)
	}
}

func TestNew(t *testing.T) {
	sc := scene.New()
	cfg := config.Default().Player
	p := New(sc, cfg)

	pos, ok := p.Position(sc)
	if !ok {
		t.Fatal("Position() ok = false")
	}
	if pos != math.Vec3FromArray(cfg.Spawn) {
		t.Errorf("Position() = %v, want %v", pos, cfg.Spawn)
	}

	n, ok := sc.Node(p.Camera())
	if !ok {
		t.Fatal("camera node missing")
	}
	if n.Name != CameraName {
		t.Errorf("camera Name = %q, want %q", n.Name, CameraName)
	}
	if _, ok := n.Kind.(scene.CameraKind); !ok {
		t.Errorf("camera Kind = %T, want CameraKind", n.Kind)
	}
	wantY := cfg.Spawn[1] + cfg.EyeHeight - cfg.Radius
	if !approx(n.Position.Y, wantY) {
		t.Errorf("camera Y = %v, want %v", n.Position.Y, wantY)
	}
}

func TestLandsOnFloor(t *testing.T) {
	sc := floorScene(t)
	cfg := config.Default().Player
	p := New(sc, cfg)

	run(sc, p, 120)

	if !p.Grounded(sc) {
		t.Fatal("Grounded() = false after falling for 2s")
	}
	pos, _ := p.Position(sc)
	if !approx(pos.Y, cfg.Radius) {
		t.Errorf("rest height = %v, want %v", pos.Y, cfg.Radius)
	}
}

func TestFallsWithoutGeometry(t *testing.T) {
	sc := scene.New()
	p := New(sc, config.Default().Player)

	run(sc, p, 30)

	if p.Grounded(sc) {
		t.Error("Grounded() = true with no static geometry")
	}
	pos, _ := p.Position(sc)
	if pos.Y >= 2 {
		t.Errorf("Y = %v, want below spawn height", pos.Y)
	}
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name  string
		move  math.Vec2
		yaw   float32
		wantX float32
		wantZ float32
	}{
		{"forward", math.Vec2{Y: 1}, 0, 0, -4},
		{"strafe right", math.Vec2{X: 1}, 0, 4, 0},
		{"forward turned left", math.Vec2{Y: 1}, gomath.Pi / 2, -4, 0},
		{"diagonal normalized", math.Vec2{X: 1, Y: 1}, 0, 4 / gomath.Sqrt2, -4 / gomath.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := floorScene(t)
			cfg := config.Default().Player
			cfg.Spawn = [3]float32{0, cfg.Radius, 0}
			p := New(sc, cfg)

			p.SetInput(tt.move, tt.yaw, 0)
			run(sc, p, 60)

			pos, _ := p.Position(sc)
			if !approx(pos.X, tt.wantX) || !approx(pos.Z, tt.wantZ) {
				t.Errorf("after 1s at (%v, %v), want (%v, %v)", pos.X, pos.Z, tt.wantX, tt.wantZ)
			}
			if !p.Grounded(sc) {
				t.Error("Grounded() = false while walking on floor")
			}
		})
	}
}

func TestLookDirection(t *testing.T) {
	p := &Player{}

	p.SetInput(math.Vec2{}, 0, gomath.Pi/4)
	d := p.LookDirection()
	s := float32(gomath.Sqrt2 / 2)
	if !approx(d.X, 0) || !approx(d.Y, s) || !approx(d.Z, -s) {
		t.Errorf("LookDirection() = %v, want (0, %v, %v)", d, s, -s)
	}

	f := p.Forward()
	if !approx(f.Y, 0) || !approx(f.Z, -1) {
		t.Errorf("Forward() = %v, want (0, 0, -1) regardless of pitch", f)
	}
}

func TestSetInputClampsPitch(t *testing.T) {
	p := &Player{}
	p.SetInput(math.Vec2{}, 0, 3)
	if p.pitch >= gomath.Pi/2 {
		t.Errorf("pitch = %v, want below pi/2", p.pitch)
	}
	p.SetInput(math.Vec2{}, 0, -3)
	if p.pitch <= -gomath.Pi/2 {
		t.Errorf("pitch = %v, want above -pi/2", p.pitch)
	}
}

func TestRemove(t *testing.T) {
	sc := scene.New()
	p := New(sc, config.Default().Player)
	p.Remove(sc)

	if _, ok := p.Position(sc); ok {
		t.Error("Position() ok = true after Remove")
	}
	if sc.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", sc.NodeCount())
	}
}
