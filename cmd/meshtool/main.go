// meshtool is a CLI utility for inspecting model assets and the static
// collision derived from them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/gorge/internal/engine/collision"
	"github.com/Faultbox/gorge/internal/engine/debug"
	"github.com/Faultbox/gorge/internal/engine/mesh"
	"github.com/Faultbox/gorge/internal/engine/resource"
	"github.com/Faultbox/gorge/internal/engine/scene"
	"github.com/Faultbox/gorge/internal/logger"
)

const defaultNode = "Polygon"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "collide":
		err = cmdCollide(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - model and collision inspection utility

Usage:
  meshtool <command> [options]

Commands:
  info <file.model.yaml>                    Show the node tree
  collide [-v] [-obj out.obj] [-wire out.obj] <file.model.yaml> [node]
                                            Extract static collision from a mesh node

Examples:
  meshtool info data/models/map.model.yaml
  meshtool collide data/models/map.model.yaml Polygon
  meshtool collide -v -obj polygon.obj data/models/map.model.yaml
  meshtool collide -wire polygon_wire.obj data/models/map.model.yaml`)
}

func loadModel(path string) (*resource.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := resource.DecodeModel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func cmdInfo(w io.Writer, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: meshtool info <file.model.yaml>")
	}

	m, err := loadModel(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Model:    %s\n", m.Name)
	fmt.Fprintf(w, "Nodes:    %d\n", len(m.Nodes))
	fmt.Fprintf(w, "Surfaces: %d\n\n", m.SurfaceCount())

	depth := make([]int, len(m.Nodes))
	for i, n := range m.Nodes {
		if n.Parent >= 0 {
			depth[i] = depth[n.Parent] + 1
		}
		indent := strings.Repeat("  ", depth[i])
		switch n.Kind {
		case resource.TemplateMesh:
			tris := 0
			for _, s := range n.Surfaces {
				tris += s.Data.TriangleCount()
			}
			fmt.Fprintf(w, "%s%s [mesh] surfaces=%d triangles=%d\n", indent, n.Name, len(n.Surfaces), tris)
		case resource.TemplateCamera:
			fmt.Fprintf(w, "%s%s [camera]\n", indent, n.Name)
		default:
			fmt.Fprintf(w, "%s%s\n", indent, n.Name)
		}
	}
	return nil
}

func cmdCollide(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("collide", flag.ContinueOnError)
	fs.SetOutput(w)
	verbose := fs.Bool("v", false, "Log every skipped triangle")
	objPath := fs.String("obj", "", "Write the extracted triangles to an OBJ file")
	wirePath := fs.String("wire", "", "Write triangle edges and bounds as OBJ lines")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: meshtool collide [-v] [-obj out.obj] [-wire out.obj] <file.model.yaml> [node]")
	}
	node := defaultNode
	if fs.NArg() > 1 {
		node = fs.Arg(1)
	}

	log := zap.NewNop()
	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			return err
		}
		defer logger.Sync()
		log = logger.Named("collision")
	}

	m, err := loadModel(fs.Arg(0))
	if err != nil {
		return err
	}

	sc := scene.New()
	storage := mesh.NewStorage()
	root := m.Instantiate(sc, storage)

	geom, stats, err := collision.NewExtractor(storage, log).ExtractNode(sc, root, node)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Node:       %s\n", node)
	fmt.Fprintf(w, "Surfaces:   %d\n", stats.Surfaces)
	fmt.Fprintf(w, "Triples:    %d\n", stats.Triples)
	fmt.Fprintf(w, "Triangles:  %d\n", stats.Triangles)
	fmt.Fprintf(w, "Degenerate: %d\n", stats.Degenerate)
	fmt.Fprintf(w, "Invalid:    %d\n", stats.Invalid)
	if geom.Len() > 0 {
		b := geom.Bounds()
		fmt.Fprintf(w, "Bounds:     (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	}

	if *objPath != "" {
		err := writeFile(*objPath, func(f io.Writer) error {
			return debug.WriteOBJ(f, node, geom)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s\n", *objPath)
	}
	if *wirePath != "" {
		err := writeFile(*wirePath, func(f io.Writer) error {
			return debug.WriteWireOBJ(f, node, geom, wirePadding)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s\n", *wirePath)
	}
	return nil
}

// wirePadding keeps the bounds box off coplanar geometry in viewers.
const wirePadding = 0.05

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
