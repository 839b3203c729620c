package debug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Faultbox/gorge/internal/engine/physics"
	"github.com/Faultbox/gorge/pkg/math"
)

func testGeometry(t *testing.T) *physics.StaticGeometry {
	t.Helper()
	g := physics.NewStaticGeometry()
	tri, ok := physics.NewStaticTriangle(
		math.Vec3{X: 0, Y: 0, Z: 0},
		math.Vec3{X: 0, Y: 0, Z: 1},
		math.Vec3{X: 1, Y: 0, Z: 0},
	)
	if !ok {
		t.Fatal("NewStaticTriangle() ok = false")
	}
	g.Add(tri)
	return g
}

func TestBBoxWireframe(t *testing.T) {
	b := physics.AABB{Min: math.Vec3{X: -1, Y: 0, Z: -1}, Max: math.Vec3{X: 1, Y: 2, Z: 1}}
	v := BBoxWireframe(b, 0.5)

	if len(v) != BBoxWireframeVertexCount*3 {
		t.Fatalf("len = %d, want %d", len(v), BBoxWireframeVertexCount*3)
	}
	if v[0] != -1.5 || v[1] != -0.5 || v[2] != -1.5 {
		t.Errorf("first vertex = (%v, %v, %v), want (-1.5, -0.5, -1.5)", v[0], v[1], v[2])
	}
}

func TestTriangleWireframe(t *testing.T) {
	v := TriangleWireframe(testGeometry(t))
	if len(v) != 18 {
		t.Fatalf("len = %d, want 18", len(v))
	}
	// last edge ends where the first began
	if v[15] != v[0] || v[16] != v[1] || v[17] != v[2] {
		t.Errorf("wireframe not closed: %v", v)
	}
}

func TestWriteOBJ(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, "Polygon", testGeometry(t)); err != nil {
		t.Fatalf("WriteOBJ() error = %v", err)
	}

	want := []string{
		"o Polygon",
		"v 0 0 1",
		"vn 0 1 0",
		"f 1//1 2//1 3//1",
	}
	for _, line := range want {
		if !strings.Contains(buf.String(), line+"\n") {
			t.Errorf("output missing %q:\n%s", line, buf.String())
		}
	}
}

func TestWriteWireOBJ(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWireOBJ(&buf, "Polygon", testGeometry(t), 0.1); err != nil {
		t.Fatalf("WriteWireOBJ() error = %v", err)
	}
	out := buf.String()

	if got := strings.Count(out, "\nv "); got != 6+BBoxWireframeVertexCount {
		t.Errorf("vertices = %d, want %d", got, 6+BBoxWireframeVertexCount)
	}
	if got := strings.Count(out, "\nl "); got != 3+BBoxWireframeVertexCount/2 {
		t.Errorf("lines = %d, want %d", got, 3+BBoxWireframeVertexCount/2)
	}
	for _, line := range []string{"o Polygon", "o Polygon_bounds", "l 1 2", "l 29 30"} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}
}

func TestWriteWireOBJ_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWireOBJ(&buf, "Empty", physics.NewStaticGeometry(), 0); err != nil {
		t.Fatalf("WriteWireOBJ() error = %v", err)
	}
	if strings.Contains(buf.String(), "_bounds") || strings.Contains(buf.String(), "\nl ") {
		t.Errorf("empty geometry produced lines:\n%s", buf.String())
	}
}
