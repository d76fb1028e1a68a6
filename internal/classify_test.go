package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildConstrained inserts each ring's vertices and constrains its edges.
func buildConstrained(t *testing.T, c *CDT, rings ...Polygon) {
	for _, ring := range rings {
		ids := make([]VertexIndex, len(ring.Points))
		for i, p := range ring.Points {
			ids[i] = c.Insert(p)
		}
		for i, v := range ids {
			c.InsertConstraint(v, ids[(i+1)%len(ids)])
		}
	}
	c.M.check()
}

func inSquare(p Point, x, y, side float64) bool {
	return p.X > x && p.X < x+side && p.Y > y && p.Y < y+side
}

func faceCentroid(m *Mesh, f EdgeIndex) Point {
	a := m.Verts[m.Edges[f].Origin].Pos
	b := m.Verts[m.dest(f)].Pos
	c := m.Verts[m.apex(f)].Pos
	return Point{(a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3}
}

func TestClassifySquare(t *testing.T) {
	c := NewCDT(Point{0, 0}, Point{10, 10})
	buildConstrained(t, c, square(0, 0, 10))
	c.ClassifyRegions()

	interior, exterior := 0, 0
	c.M.Faces(func(f EdgeIndex) {
		if c.M.isOuterEdge(f) {
			return
		}
		label := c.M.Edges[f].Label
		require.NotEqual(t, RegionUnset, label)
		switch {
		case inSquare(faceCentroid(c.M, f), 0, 0, 10):
			assert.Equal(t, RegionInterior, label)
			interior++
		default:
			assert.Equal(t, RegionExterior, label)
			exterior++
		}
	})
	assert.Equal(t, 2, interior)
	assert.Greater(t, exterior, 0)
}

func TestClassifySquareWithHole(t *testing.T) {
	c := NewCDT(Point{0, 0}, Point{10, 10})
	buildConstrained(t, c, square(0, 0, 10), square(4, 4, 2))
	c.ClassifyRegions()

	holes := 0
	c.M.Faces(func(f EdgeIndex) {
		if c.M.isOuterEdge(f) {
			return
		}
		centroid := faceCentroid(c.M, f)
		label := c.M.Edges[f].Label
		switch {
		case inSquare(centroid, 4, 4, 2):
			assert.Equal(t, RegionHole, label)
			holes++
		case inSquare(centroid, 0, 0, 10):
			assert.Equal(t, RegionInterior, label)
		default:
			assert.Equal(t, RegionExterior, label)
		}
	})
	assert.Equal(t, 2, holes)
}

func TestClassifyNestedIsland(t *testing.T) {
	// Square in a hole in a square: the innermost region is interior again,
	// one toggle per crossed loop.
	c := NewCDT(Point{0, 0}, Point{12, 12})
	buildConstrained(t, c, square(0, 0, 12), square(3, 3, 6), square(5, 5, 2))
	c.ClassifyRegions()

	c.M.Faces(func(f EdgeIndex) {
		if c.M.isOuterEdge(f) {
			return
		}
		centroid := faceCentroid(c.M, f)
		label := c.M.Edges[f].Label
		switch {
		case inSquare(centroid, 5, 5, 2):
			assert.Equal(t, RegionInterior, label, "island face at %v", centroid)
		case inSquare(centroid, 3, 3, 6):
			assert.Equal(t, RegionHole, label, "hole face at %v", centroid)
		case inSquare(centroid, 0, 0, 12):
			assert.Equal(t, RegionInterior, label, "outer face at %v", centroid)
		default:
			assert.Equal(t, RegionExterior, label, "exterior face at %v", centroid)
		}
	})
}
