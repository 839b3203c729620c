// Package scene implements the scene graph: named nodes with local
// transforms, parent/child links, world transform resolution and the
// physics world that belongs to the scene.
package scene

import (
	"github.com/Faultbox/gorge/internal/engine/physics"
	"github.com/Faultbox/gorge/internal/engine/pool"
	"github.com/Faultbox/gorge/pkg/math"
)

// Scene owns its nodes and its physics world.
type Scene struct {
	nodes   *pool.Pool[Node]
	physics *physics.World
}

// New creates an empty scene with a fresh physics world.
func New() *Scene {
	return &Scene{
		nodes:   pool.New[Node](),
		physics: physics.NewWorld(),
	}
}

// Physics returns the scene's physics world.
func (s *Scene) Physics() *physics.World {
	return s.physics
}

// AddNode inserts a top-level node.
func (s *Scene) AddNode(n Node) NodeHandle {
	n.parent = NodeHandle{}
	n.children = nil
	if n.Kind == nil {
		n.Kind = BaseKind{}
	}
	return s.nodes.Spawn(n)
}

// Node borrows a node. The pointer is invalidated by the next AddNode.
func (s *Scene) Node(h NodeHandle) (*Node, bool) {
	return s.nodes.Borrow(h)
}

// NodeCount returns the number of live nodes.
func (s *Scene) NodeCount() int {
	return s.nodes.Len()
}

// Link makes child a child of parent, detaching it from its old parent.
// Linking a node under itself or one of its descendants is refused.
func (s *Scene) Link(child, parent NodeHandle) bool {
	if !s.nodes.Alive(child) || !s.nodes.Alive(parent) {
		return false
	}
	for h := parent; !h.IsNone(); {
		if h == child {
			return false
		}
		n, _ := s.nodes.Borrow(h)
		h = n.parent
	}

	s.unlink(child)
	c, _ := s.nodes.Borrow(child)
	c.parent = parent
	p, _ := s.nodes.Borrow(parent)
	p.children = append(p.children, child)
	return true
}

func (s *Scene) unlink(h NodeHandle) {
	n, ok := s.nodes.Borrow(h)
	if !ok || n.parent.IsNone() {
		return
	}
	if p, ok := s.nodes.Borrow(n.parent); ok {
		for i, c := range p.children {
			if c == h {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	n.parent = NodeHandle{}
}

// Remove deletes a node and its whole subtree.
func (s *Scene) Remove(h NodeHandle) bool {
	if !s.nodes.Alive(h) {
		return false
	}
	s.unlink(h)
	s.removeTree(h)
	return true
}

func (s *Scene) removeTree(h NodeHandle) {
	n, ok := s.nodes.Free(h)
	if !ok {
		return
	}
	for _, c := range n.children {
		s.removeTree(c)
	}
}

// FindNodeByName searches the subtree rooted at root depth-first, root
// included, for the first node whose name matches exactly.
func (s *Scene) FindNodeByName(root NodeHandle, name string) (NodeHandle, bool) {
	n, ok := s.nodes.Borrow(root)
	if !ok {
		return NodeHandle{}, false
	}
	if n.Name == name {
		return root, true
	}
	for _, c := range n.children {
		if found, ok := s.FindNodeByName(c, name); ok {
			return found, true
		}
	}
	return NodeHandle{}, false
}

// Roots returns the top-level nodes in slot order.
func (s *Scene) Roots() []NodeHandle {
	var roots []NodeHandle
	s.nodes.Each(func(h NodeHandle, n *Node) {
		if n.parent.IsNone() {
			roots = append(roots, h)
		}
	})
	return roots
}

// GlobalTransform composes the local transforms from the top-level ancestor
// down to h. It does not depend on UpdateTransforms having run.
func (s *Scene) GlobalTransform(h NodeHandle) (math.Mat4, bool) {
	n, ok := s.nodes.Borrow(h)
	if !ok {
		return math.Mat4{}, false
	}
	m := n.Local()
	for p := n.parent; !p.IsNone(); {
		pn, ok := s.nodes.Borrow(p)
		if !ok {
			break
		}
		m = pn.Local().Mul(m)
		p = pn.parent
	}
	return m, true
}

// UpdateTransforms recomputes and caches the world transform of every node.
func (s *Scene) UpdateTransforms() {
	for _, r := range s.Roots() {
		s.updateTree(r, math.Identity())
	}
}

func (s *Scene) updateTree(h NodeHandle, parent math.Mat4) {
	n, ok := s.nodes.Borrow(h)
	if !ok {
		return
	}
	n.global = parent.Mul(n.Local())
	global := n.global
	for _, c := range n.children {
		s.updateTree(c, global)
	}
}
