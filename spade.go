// Quality mesh generation for polygons with holes.
//
// This package converts a simple outer polygon and a set of hole polygons
// into a constrained Delaunay triangulation, optionally refined with Steiner
// points until every triangle satisfies edge-length and minimum-angle bounds.
package spade

import "github.com/dtcc-platform/spade/internal"

type Point = internal.Point

// Options controls mesh quality. The zero value requests a plain constrained
// Delaunay triangulation of the input points with no refinement.
type Options struct {
	// Maximum allowed edge length in input units. Zero means unbounded.
	MaxEdgeLength float64
	// Minimum allowed triangle angle in degrees, at most 33.9. Zero means
	// unbounded.
	MinAngle float64
	// Mesh the hole interiors too, instead of leaving them empty. Hole
	// triangles are still separated from the rest by constrained edges.
	TriangulateHoles bool
}

// Mesh is the triangulation output. Vertices hold the input points followed
// by any Steiner points, as (x, y, 0) triples. Triangles are index triples in
// counterclockwise order. Edges are the undirected constrained edges, one
// (i, j) pair with i < j per input or refined boundary segment.
type Mesh struct {
	Vertices  [][3]float64
	Triangles [][3]int
	Edges     [][2]int
}

// Triangulate meshes the region bounded by outer, minus the holes.
//
// The rings must be simple, non-degenerate and pairwise disjoint; either
// winding order is accepted. Each hole must lie inside the outer polygon.
// Invalid geometry or unachievable quality bounds return an error and a nil
// mesh.
func Triangulate(outer []Point, holes [][]Point, opts *Options) (result *Mesh, err error) {
	defer func() {
		recoveredErr := internal.HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	if opts == nil {
		opts = &Options{}
	}
	params := internal.Params{
		Outer:            internal.Polygon{Points: outer},
		MaxEdgeLength:    opts.MaxEdgeLength,
		MinAngle:         opts.MinAngle,
		TriangulateHoles: opts.TriangulateHoles,
	}
	for _, hole := range holes {
		params.Holes = append(params.Holes, internal.Polygon{Points: hole})
	}
	raw := internal.TriangulatePolygon(params)
	return &Mesh{
		Vertices:  raw.Vertices,
		Triangles: raw.Triangles,
		Edges:     raw.Edges,
	}, nil
}
