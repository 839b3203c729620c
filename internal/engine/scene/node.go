package scene

import (
	"github.com/Faultbox/gorge/internal/engine/mesh"
	"github.com/Faultbox/gorge/internal/engine/pool"
	"github.com/Faultbox/gorge/pkg/math"
)

// NodeHandle addresses a node inside a Scene.
type NodeHandle = pool.Handle[Node]

// NodeKind is the payload of a node. The set of kinds is closed: BaseKind,
// MeshKind and CameraKind.
type NodeKind interface {
	nodeKind()
}

// BaseKind is a plain transform node.
type BaseKind struct{}

// MeshKind is a node that renders a mesh.
type MeshKind struct {
	Mesh mesh.Mesh
}

// CameraKind is a node the renderer looks through.
type CameraKind struct {
	FOV float32 // vertical, radians
}

func (BaseKind) nodeKind()   {}
func (MeshKind) nodeKind()   {}
func (CameraKind) nodeKind() {}

// KindName returns a short name for logs.
func KindName(k NodeKind) string {
	switch k.(type) {
	case MeshKind:
		return "mesh"
	case CameraKind:
		return "camera"
	default:
		return "base"
	}
}

// Node is a scene graph node with a local TRS transform.
type Node struct {
	Name string
	Kind NodeKind

	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3

	parent   NodeHandle
	children []NodeHandle
	global   math.Mat4
}

// NewNode creates a node with an identity transform. A nil kind means BaseKind.
func NewNode(name string, kind NodeKind) Node {
	if kind == nil {
		kind = BaseKind{}
	}
	return Node{
		Name:     name,
		Kind:     kind,
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		global:   math.Identity(),
	}
}

// Local returns the node's local transform.
func (n *Node) Local() math.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// Global returns the world transform computed by the last UpdateTransforms.
func (n *Node) Global() math.Mat4 {
	return n.global
}

// Parent returns the parent handle; zero for top-level nodes.
func (n *Node) Parent() NodeHandle {
	return n.parent
}

// Children returns the child handles. Read-only.
func (n *Node) Children() []NodeHandle {
	return n.children
}

// Mesh returns the mesh payload if the node is of mesh kind.
func (n *Node) Mesh() (mesh.Mesh, bool) {
	if k, ok := n.Kind.(MeshKind); ok {
		return k.Mesh, true
	}
	return mesh.Mesh{}, false
}
