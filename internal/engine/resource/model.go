package resource

import (
	"errors"
	"fmt"
	gomath "math"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gorge/internal/engine/mesh"
	"github.com/Faultbox/gorge/internal/engine/scene"
	"github.com/Faultbox/gorge/pkg/math"
)

// ErrMalformed is returned for model files that decode but do not describe
// a usable node tree.
var ErrMalformed = errors.New("malformed model")

// modelFile is the YAML layout of a .model.yaml asset.
type modelFile struct {
	Name  string     `yaml:"name"`
	Nodes []nodeFile `yaml:"nodes"`
}

type nodeFile struct {
	Name     string        `yaml:"name"`
	Parent   string        `yaml:"parent"`
	Kind     string        `yaml:"kind"` // base (default), mesh, camera
	Position [3]float32    `yaml:"position"`
	Rotation [3]float32    `yaml:"rotation"` // Euler degrees: pitch, yaw, roll
	Scale    *[3]float32   `yaml:"scale"`
	FOV      float32       `yaml:"fov"` // camera only, degrees
	Surfaces []surfaceFile `yaml:"surfaces"`
}

type surfaceFile struct {
	Material  string       `yaml:"material"`
	Vertices  [][3]float32 `yaml:"vertices"`
	Normals   [][3]float32 `yaml:"normals"`
	TexCoords [][2]float32 `yaml:"uvs"`
	Indices   []uint32     `yaml:"indices"`
}

// Model is a decoded model asset: a node tree template that can be
// instantiated into any number of scenes.
type Model struct {
	Name  string
	Nodes []NodeTemplate

	// Surface buffers are uploaded on first instantiation and shared by
	// every instance made against the same storage.
	storage  *mesh.Storage
	uploaded [][]mesh.DataHandle
}

// NodeTemplate is one node of a model. Parent indexes Nodes, -1 for roots.
// Parents always precede their children.
type NodeTemplate struct {
	Name     string
	Parent   int
	Kind     NodeTemplateKind
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
	FOV      float32
	Surfaces []SurfaceTemplate
}

// NodeTemplateKind mirrors scene node kinds.
type NodeTemplateKind uint8

const (
	TemplateBase NodeTemplateKind = iota
	TemplateMesh
	TemplateCamera
)

// SurfaceTemplate is the source buffer pair of one mesh surface.
type SurfaceTemplate struct {
	Material string
	Data     mesh.SurfaceData
}

// DecodeModel parses a .model.yaml document.
func DecodeModel(data []byte) (*Model, error) {
	var f modelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	if len(f.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrMalformed)
	}

	m := &Model{Name: f.Name, Nodes: make([]NodeTemplate, 0, len(f.Nodes))}
	index := make(map[string]int, len(f.Nodes))

	for i, n := range f.Nodes {
		if n.Name == "" {
			return nil, fmt.Errorf("%w: node %d has no name", ErrMalformed, i)
		}

		parent := -1
		if n.Parent != "" {
			p, ok := index[n.Parent]
			if !ok {
				return nil, fmt.Errorf("%w: node %q references unknown or later parent %q", ErrMalformed, n.Name, n.Parent)
			}
			parent = p
		}

		kind, err := parseKind(n.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Name, err)
		}
		if kind != TemplateMesh && len(n.Surfaces) > 0 {
			return nil, fmt.Errorf("%w: node %q has surfaces but kind %q", ErrMalformed, n.Name, n.Kind)
		}

		scale := math.Vec3{X: 1, Y: 1, Z: 1}
		if n.Scale != nil {
			scale = math.Vec3FromArray(*n.Scale)
		}

		tmpl := NodeTemplate{
			Name:     n.Name,
			Parent:   parent,
			Kind:     kind,
			Position: math.Vec3FromArray(n.Position),
			Rotation: math.QuatFromEuler(radians(n.Rotation[0]), radians(n.Rotation[1]), radians(n.Rotation[2])),
			Scale:    scale,
			FOV:      radians(n.FOV),
		}
		for si, s := range n.Surfaces {
			st, err := decodeSurface(s)
			if err != nil {
				return nil, fmt.Errorf("node %q surface %d: %w", n.Name, si, err)
			}
			tmpl.Surfaces = append(tmpl.Surfaces, st)
		}

		// First definition wins for parent lookups; later duplicates are kept
		// as nodes but cannot be referenced as parents.
		if _, dup := index[n.Name]; !dup {
			index[n.Name] = i
		}
		m.Nodes = append(m.Nodes, tmpl)
	}

	return m, nil
}

func parseKind(s string) (NodeTemplateKind, error) {
	switch s {
	case "", "base":
		return TemplateBase, nil
	case "mesh":
		return TemplateMesh, nil
	case "camera":
		return TemplateCamera, nil
	default:
		return 0, fmt.Errorf("%w: unknown node kind %q", ErrMalformed, s)
	}
}

func decodeSurface(s surfaceFile) (SurfaceTemplate, error) {
	if len(s.Normals) > 0 && len(s.Normals) != len(s.Vertices) {
		return SurfaceTemplate{}, fmt.Errorf("%w: %d normals for %d vertices", ErrMalformed, len(s.Normals), len(s.Vertices))
	}
	if len(s.TexCoords) > 0 && len(s.TexCoords) != len(s.Vertices) {
		return SurfaceTemplate{}, fmt.Errorf("%w: %d uvs for %d vertices", ErrMalformed, len(s.TexCoords), len(s.Vertices))
	}

	verts := make([]mesh.Vertex, len(s.Vertices))
	for i, p := range s.Vertices {
		verts[i].Position = math.Vec3FromArray(p)
		if len(s.Normals) > 0 {
			verts[i].Normal = math.Vec3FromArray(s.Normals[i])
		}
		if len(s.TexCoords) > 0 {
			verts[i].TexCoord = math.Vec2{X: s.TexCoords[i][0], Y: s.TexCoords[i][1]}
		}
	}

	// Index validity is left to consumers; the collision extractor skips
	// out-of-range triples instead of rejecting the whole model.
	return SurfaceTemplate{
		Material: s.Material,
		Data:     mesh.SurfaceData{Vertices: verts, Indices: s.Indices},
	}, nil
}

func radians(deg float32) float32 {
	return deg * gomath.Pi / 180
}

// Instantiate copies the node tree into sc under a new instance root named
// after the model and returns that root.
func (m *Model) Instantiate(sc *scene.Scene, storage *mesh.Storage) scene.NodeHandle {
	surfaces := m.upload(storage)

	root := sc.AddNode(scene.NewNode(m.Name, nil))
	handles := make([]scene.NodeHandle, len(m.Nodes))

	for i, t := range m.Nodes {
		var kind scene.NodeKind
		switch t.Kind {
		case TemplateMesh:
			ms := make([]mesh.Surface, len(t.Surfaces))
			for si, s := range t.Surfaces {
				ms[si] = mesh.Surface{Data: surfaces[i][si], Material: s.Material}
			}
			kind = scene.MeshKind{Mesh: mesh.Mesh{Surfaces: ms}}
		case TemplateCamera:
			kind = scene.CameraKind{FOV: t.FOV}
		default:
			kind = scene.BaseKind{}
		}

		n := scene.NewNode(t.Name, kind)
		n.Position = t.Position
		n.Rotation = t.Rotation
		n.Scale = t.Scale
		handles[i] = sc.AddNode(n)

		parent := root
		if t.Parent >= 0 {
			parent = handles[t.Parent]
		}
		sc.Link(handles[i], parent)
	}

	return root
}

// upload pushes every surface into storage once and returns the handles,
// indexed by node then surface. Stale handles (released by someone else)
// trigger a fresh upload.
func (m *Model) upload(storage *mesh.Storage) [][]mesh.DataHandle {
	if m.storage == storage && m.uploaded != nil && m.allAlive() {
		return m.uploaded
	}

	m.storage = storage
	m.uploaded = make([][]mesh.DataHandle, len(m.Nodes))
	for i, t := range m.Nodes {
		for _, s := range t.Surfaces {
			m.uploaded[i] = append(m.uploaded[i], storage.Upload(s.Data))
		}
	}
	return m.uploaded
}

func (m *Model) allAlive() bool {
	for _, hs := range m.uploaded {
		for _, h := range hs {
			if _, ok := m.storage.Surface(h); !ok {
				return false
			}
		}
	}
	return true
}

// SurfaceCount returns the total number of surfaces in the model.
func (m *Model) SurfaceCount() int {
	n := 0
	for _, t := range m.Nodes {
		n += len(t.Surfaces)
	}
	return n
}
