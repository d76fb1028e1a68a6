package spade

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitSquare = []Point{
	{X: 0, Y: 0},
	{X: 10, Y: 0},
	{X: 10, Y: 10},
	{X: 0, Y: 10},
}

var innerSquare = []Point{
	{X: 4, Y: 4},
	{X: 6, Y: 4},
	{X: 6, Y: 6},
	{X: 4, Y: 6},
}

func triangleArea(mesh *Mesh, tri [3]int) float64 {
	a := mesh.Vertices[tri[0]]
	b := mesh.Vertices[tri[1]]
	c := mesh.Vertices[tri[2]]
	return ((b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])) / 2
}

func totalArea(t *testing.T, mesh *Mesh) float64 {
	var total float64
	for _, tri := range mesh.Triangles {
		area := triangleArea(mesh, tri)
		require.Greater(t, area, 0.0, "triangle %v is not counterclockwise", tri)
		total += area
	}
	return total
}

func TestTriangulateSquare(t *testing.T) {
	mesh, err := Triangulate(unitSquare, nil, nil)
	require.NoError(t, err)

	assert.Len(t, mesh.Vertices, 4)
	assert.Len(t, mesh.Triangles, 2)
	assert.Len(t, mesh.Edges, 4)
	assert.InDelta(t, 100, totalArea(t, mesh), 1e-9)

	for i, p := range unitSquare {
		assert.Equal(t, [3]float64{p.X, p.Y, 0}, mesh.Vertices[i])
	}
}

func TestTriangulateSquareWithHole(t *testing.T) {
	mesh, err := Triangulate(unitSquare, [][]Point{innerSquare}, nil)
	require.NoError(t, err)

	assert.Len(t, mesh.Vertices, 8)
	assert.Len(t, mesh.Edges, 8)
	// The hole's area is missing from the cover
	assert.InDelta(t, 100-4, totalArea(t, mesh), 1e-9)

	// No triangle centroid falls inside the hole
	for _, tri := range mesh.Triangles {
		a := mesh.Vertices[tri[0]]
		b := mesh.Vertices[tri[1]]
		c := mesh.Vertices[tri[2]]
		cx := (a[0] + b[0] + c[0]) / 3
		cy := (a[1] + b[1] + c[1]) / 3
		assert.False(t, cx > 4 && cx < 6 && cy > 4 && cy < 6,
			"triangle %v is inside the hole", tri)
	}
}

func TestTriangulateHolesIncluded(t *testing.T) {
	mesh, err := Triangulate(unitSquare, [][]Point{innerSquare}, &Options{TriangulateHoles: true})
	require.NoError(t, err)

	// The hole is meshed too, so the triangles cover the full square, and the
	// hole boundary is still present as constrained edges.
	assert.InDelta(t, 100, totalArea(t, mesh), 1e-9)
	assert.Len(t, mesh.Edges, 8)
}

func TestTriangulateEdgeLengthBound(t *testing.T) {
	mesh, err := Triangulate(unitSquare, nil, &Options{MaxEdgeLength: 1})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(mesh.Triangles), 100)
	assert.InDelta(t, 100, totalArea(t, mesh), 1e-6)

	for _, tri := range mesh.Triangles {
		for i := 0; i < 3; i++ {
			a := mesh.Vertices[tri[i]]
			b := mesh.Vertices[tri[(i+1)%3]]
			dx := b[0] - a[0]
			dy := b[1] - a[1]
			require.LessOrEqual(t, math.Sqrt(dx*dx+dy*dy), 1+1e-9,
				"edge of %v exceeds the bound", tri)
		}
	}
}

func TestTriangulateMinAngleBound(t *testing.T) {
	mesh, err := Triangulate(unitSquare, [][]Point{innerSquare}, &Options{MinAngle: 25})
	require.NoError(t, err)
	assert.InDelta(t, 100-4, totalArea(t, mesh), 1e-6)

	for _, tri := range mesh.Triangles {
		require.GreaterOrEqual(t, triMinAngle(mesh, tri), 25-1e-9,
			"triangle %v breaks the angle bound", tri)
	}
}

func triMinAngle(mesh *Mesh, tri [3]int) float64 {
	min := 180.0
	for i := 0; i < 3; i++ {
		p := mesh.Vertices[tri[i]]
		q := mesh.Vertices[tri[(i+1)%3]]
		r := mesh.Vertices[tri[(i+2)%3]]
		ux, uy := q[0]-p[0], q[1]-p[1]
		vx, vy := r[0]-p[0], r[1]-p[1]
		cos := (ux*vx + uy*vy) / math.Sqrt((ux*ux+uy*uy)*(vx*vx+vy*vy))
		if cos > 1 {
			cos = 1
		} else if cos < -1 {
			cos = -1
		}
		angle := math.Acos(cos) * 180 / math.Pi
		if angle < min {
			min = angle
		}
	}
	return min
}

func TestTriangulateDeterministic(t *testing.T) {
	opts := &Options{MaxEdgeLength: 1.5, MinAngle: 20}
	first, err := Triangulate(unitSquare, [][]Point{innerSquare}, opts)
	require.NoError(t, err)
	second, err := Triangulate(unitSquare, [][]Point{innerSquare}, opts)
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first, second), "same input must produce the same mesh")
}

func TestTriangulateErrors(t *testing.T) {
	// Angle bound beyond the refinement guarantee
	_, err := Triangulate(unitSquare, nil, &Options{MinAngle: 40})
	assert.Error(t, err)

	_, err = Triangulate(unitSquare, nil, &Options{MaxEdgeLength: -1})
	assert.Error(t, err)

	// Bowtie
	_, err = Triangulate([]Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}}, nil, nil)
	assert.Error(t, err)

	// Too few vertices
	_, err = Triangulate([]Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, nil, nil)
	assert.Error(t, err)

	// Hole crossing the outer boundary
	_, err = Triangulate(unitSquare, [][]Point{{{X: 8, Y: 8}, {X: 12, Y: 8}, {X: 12, Y: 12}, {X: 8, Y: 12}}}, nil)
	assert.Error(t, err)
}

func TestTriangulateClockwiseInput(t *testing.T) {
	cw := make([]Point, len(unitSquare))
	for i, p := range unitSquare {
		cw[len(unitSquare)-1-i] = p
	}
	mesh, err := Triangulate(cw, nil, nil)
	require.NoError(t, err)
	assert.Len(t, mesh.Triangles, 2)
	assert.InDelta(t, 100, totalArea(t, mesh), 1e-9)
}
