package scene

import (
	"math"
	"testing"

	"github.com/Faultbox/gorge/internal/engine/mesh"
	gmath "github.com/Faultbox/gorge/pkg/math"
)

// buildTree creates root -> (arm -> hand, Polygon).
func buildTree(t *testing.T, s *Scene) (root, arm, hand, poly NodeHandle) {
	t.Helper()
	root = s.AddNode(NewNode("root", nil))
	arm = s.AddNode(NewNode("arm", nil))
	hand = s.AddNode(NewNode("hand", nil))
	poly = s.AddNode(NewNode("Polygon", MeshKind{}))
	for _, l := range [][2]NodeHandle{{arm, root}, {hand, arm}, {poly, root}} {
		if !s.Link(l[0], l[1]) {
			t.Fatalf("Link(%v, %v) failed", l[0], l[1])
		}
	}
	return
}

func TestFindNodeByName(t *testing.T) {
	s := New()
	root, arm, hand, poly := buildTree(t, s)

	tests := []struct {
		name   string
		from   NodeHandle
		search string
		want   NodeHandle
		found  bool
	}{
		{"self", root, "root", root, true},
		{"deep child", root, "hand", hand, true},
		{"sibling branch", root, "Polygon", poly, true},
		{"exact match only", root, "polygon", NodeHandle{}, false},
		{"outside subtree", arm, "Polygon", NodeHandle{}, false},
		{"absent", root, "Missing", NodeHandle{}, false},
		{"stale root", NodeHandle{}, "root", NodeHandle{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.FindNodeByName(tt.from, tt.search)
			if ok != tt.found || got != tt.want {
				t.Errorf("FindNodeByName(%q) = %v, %v; want %v, %v", tt.search, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestNodeKind(t *testing.T) {
	s := New()
	_, arm, _, poly := buildTree(t, s)

	n, _ := s.Node(poly)
	if _, ok := n.Mesh(); !ok {
		t.Error("Polygon node Mesh() ok = false")
	}
	if KindName(n.Kind) != "mesh" {
		t.Errorf("KindName() = %q, want mesh", KindName(n.Kind))
	}

	a, _ := s.Node(arm)
	if _, ok := a.Mesh(); ok {
		t.Error("base node Mesh() ok = true")
	}
	if KindName(CameraKind{}) != "camera" {
		t.Error("KindName(CameraKind) != camera")
	}
}

func TestGlobalTransformComposesAncestors(t *testing.T) {
	s := New()
	root, arm, hand, _ := buildTree(t, s)

	r, _ := s.Node(root)
	r.Position = gmath.Vec3{X: 10}
	r.Scale = gmath.Vec3{X: 2, Y: 2, Z: 2}
	a, _ := s.Node(arm)
	a.Rotation = gmath.QuatFromAxisAngle(gmath.Up, math.Pi/2)
	h, _ := s.Node(hand)
	h.Position = gmath.Vec3{X: 1}

	m, ok := s.GlobalTransform(hand)
	if !ok {
		t.Fatal("GlobalTransform() ok = false")
	}
	// hand origin: (1,0,0) -> arm rot -> (0,0,-1) -> root scale -> (0,0,-2) -> +10x
	got := m.TransformVec3(gmath.Vec3{})
	want := gmath.Vec3{X: 10, Z: -2}
	if got.Sub(want).Length() > 1e-4 {
		t.Errorf("hand origin = %v, want %v", got, want)
	}

	s.UpdateTransforms()
	h, _ = s.Node(hand)
	if cached := h.Global().TransformVec3(gmath.Vec3{}); cached.Sub(want).Length() > 1e-4 {
		t.Errorf("cached global origin = %v, want %v", cached, want)
	}
}

func TestLinkRefusesCycles(t *testing.T) {
	s := New()
	root, arm, hand, _ := buildTree(t, s)

	if s.Link(root, hand) {
		t.Error("Link(root, hand) created a cycle")
	}
	if s.Link(arm, arm) {
		t.Error("Link(arm, arm) accepted")
	}
}

func TestLinkReparents(t *testing.T) {
	s := New()
	root, arm, hand, _ := buildTree(t, s)

	if !s.Link(hand, root) {
		t.Fatal("Link(hand, root) failed")
	}
	a, _ := s.Node(arm)
	if len(a.Children()) != 0 {
		t.Errorf("arm still has %d children", len(a.Children()))
	}
	h, _ := s.Node(hand)
	if h.Parent() != root {
		t.Error("hand parent is not root")
	}
}

func TestRemoveSubtree(t *testing.T) {
	s := New()
	root, arm, hand, poly := buildTree(t, s)

	if !s.Remove(arm) {
		t.Fatal("Remove(arm) = false")
	}
	if _, ok := s.Node(hand); ok {
		t.Error("hand survived removal of its parent")
	}
	if s.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", s.NodeCount())
	}
	r, _ := s.Node(root)
	if len(r.Children()) != 1 || r.Children()[0] != poly {
		t.Errorf("root children = %v, want [Polygon]", r.Children())
	}
}

func TestRoots(t *testing.T) {
	s := New()
	root, _, _, _ := buildTree(t, s)
	other := s.AddNode(NewNode("other", MeshKind{Mesh: mesh.Mesh{}}))

	roots := s.Roots()
	if len(roots) != 2 || roots[0] != root || roots[1] != other {
		t.Errorf("Roots() = %v, want [%v %v]", roots, root, other)
	}
	if s.Physics() == nil {
		t.Error("Physics() = nil")
	}
}
