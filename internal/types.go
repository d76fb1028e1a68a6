package internal

import "fmt"

// References between vertices and half-edges are integer indices into the
// mesh arena, never pointers. This keeps the cyclic twin/next structure free
// of ownership concerns and makes topology edits plain index reassignments.
type VertexIndex int
type EdgeIndex int

const (
	EmptyVertex = VertexIndex(-1)
	EmptyEdge   = EdgeIndex(-1)
)

type Point struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

type Polygon struct {
	Points []Point
}

// Shoelace formula. Positive for counterclockwise rings.
func (poly Polygon) SignedArea() float64 {
	var sum float64
	for i, p := range poly.Points {
		q := poly.Points[(i+1)%len(poly.Points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Region labels for triangles. Faces start unset; classification assigns a
// label to every face once constraints are complete, and the mesh primitives
// propagate labels to the faces they create after that.
type Region uint8

const (
	RegionUnset Region = iota
	RegionExterior
	RegionInterior
	RegionHole
)

func (r Region) String() string {
	switch r {
	case RegionExterior:
		return "exterior"
	case RegionInterior:
		return "interior"
	case RegionHole:
		return "hole"
	}
	return "unset"
}

// A point this close to an existing vertex is treated as that vertex on
// insertion rather than becoming a near-duplicate triangulation vertex.
const Tolerance = 1e-9

func sqDist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
