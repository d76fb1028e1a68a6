package internal

import "math/rand"

// Incremental constrained Delaunay triangulation. Points go in one at a
// time: locate the containing face by an oriented walk, star it (or split
// the containing edge), then restore the Delaunay property by flipping
// illegal unconstrained edges off an explicit worklist.

type CDT struct {
	M *Mesh
	// Walk start cache; points arrive with spatial locality often enough
	// that starting near the last insertion pays off.
	recent EdgeIndex
	// Tie-breaking for the walk. Deterministic (fixed seed) so identical
	// input always produces identical meshes.
	r *rand.Rand
}

func NewCDT(lo, hi Point) *CDT {
	return &CDT{
		M:      NewMesh(lo, hi),
		recent: 0,
		r:      rand.New(rand.NewSource(0)),
	}
}

type locKind int

const (
	locVertex locKind = iota // point coincides with the edge's origin
	locEdge                  // point lies on the edge's interior
	locFace                  // point lies strictly inside the edge's face
)

// locate walks from the cached edge toward p until the containing face is
// found.
func (c *CDT) locate(p Point) (EdgeIndex, locKind) {
	e, kind, _ := c.walkFrom(c.recent, p)
	return e, kind
}

// walkFrom walks from start's face toward p, crossing each edge that has p
// strictly on its far side, until the containing face is found. It also
// reports the first constrained edge crossed on the way (EmptyEdge when the
// path crosses none). Crossing candidates are picked at random when there is
// a choice; a deterministic pick can cycle on cocircular configurations, the
// random one cannot.
func (c *CDT) walkFrom(start EdgeIndex, p Point) (EdgeIndex, locKind, EdgeIndex) {
	m := c.M
	e := start
	if m.isOuterEdge(e) {
		e = m.Edges[e].Twin
	}
	crossed := EmptyEdge

	maxSteps := 4*len(m.Edges) + 64
	for step := 0; step < maxSteps; step++ {
		sides := [3]EdgeIndex{e, m.next(e), m.prev(e)}

		for _, x := range sides {
			if sqDist(m.Verts[m.Edges[x].Origin].Pos, p) <= Tolerance*Tolerance {
				return x, locVertex, crossed
			}
		}

		var crossing []EdgeIndex
		var dirs [3]Direction
		for i, x := range sides {
			o := m.Verts[m.Edges[x].Origin].Pos
			d := m.Verts[m.dest(x)].Pos
			dirs[i] = Orientation(o, d, p)
			if dirs[i] == Clockwise {
				crossing = append(crossing, x)
			}
		}
		if len(crossing) > 0 {
			x := crossing[0]
			if len(crossing) > 1 {
				x = crossing[c.r.Intn(len(crossing))]
			}
			t := m.Edges[x].Twin
			if m.isOuterEdge(t) {
				fatalf("point %v lies outside the bounding triangle", p)
			}
			if crossed == EmptyEdge && m.Edges[x].Constrained {
				crossed = x
			}
			e = t
			continue
		}

		// No edge rejects p: it is in this face, possibly on one of its
		// edges.
		for i, x := range sides {
			if dirs[i] == Collinear {
				return x, locEdge, crossed
			}
		}
		return e, locFace, crossed
	}
	fatalf("point location did not terminate for %v", p)
	return EmptyEdge, locFace, crossed
}

// Insert adds p to the triangulation and returns its vertex. A point within
// tolerance of an existing vertex is a no-op returning that vertex. The
// caller gets a Delaunay mesh back: every unconstrained edge is locally
// legal when this returns.
func (c *CDT) Insert(p Point) VertexIndex {
	e, kind := c.locate(p)
	return c.insertLocated(e, kind, p)
}

func (c *CDT) insertLocated(e EdgeIndex, kind locKind, p Point) VertexIndex {
	m := c.M
	switch kind {
	case locVertex:
		return m.Edges[e].Origin

	case locEdge:
		// Capture the edges that will end up opposite the new vertex before
		// the split rewires them.
		t := m.Edges[e].Twin
		suspects := []EdgeIndex{m.next(e), m.prev(e), m.next(t), m.prev(t)}
		v := m.splitEdge(e, p)
		c.legalize(v, suspects)
		c.recent = m.Verts[v].Edge
		return v

	default:
		suspects := []EdgeIndex{e, m.next(e), m.prev(e)}
		v := m.insertPointInFace(e, p)
		c.legalize(v, suspects)
		c.recent = m.Verts[v].Edge
		return v
	}
}

// legalize restores the Delaunay property around a freshly inserted vertex.
// Every edge on the worklist is opposite v; if the vertex across it sits
// inside the circumcircle of the face containing v, the edge is flipped and
// the two edges newly exposed opposite v take its place on the list. The
// worklist form keeps the recursion depth bounded and auditable. Constrained
// edges and the bounding triangle's rim are never flipped.
func (c *CDT) legalize(v VertexIndex, suspects []EdgeIndex) {
	m := c.M
	stack := suspects
	maxIters := 8*len(m.Edges) + 64
	for iter := 0; len(stack) > 0; iter++ {
		if iter > maxIters {
			fatalf("legalization did not terminate around vertex %d", v)
		}
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if m.Edges[e].Constrained {
			continue
		}
		t := m.Edges[e].Twin
		if m.isOuterEdge(e) || m.isOuterEdge(t) {
			continue
		}

		a := m.Verts[m.Edges[e].Origin].Pos
		b := m.Verts[m.Edges[t].Origin].Pos
		apex := m.Verts[m.apex(e)].Pos
		far := m.Verts[m.apex(t)].Pos

		if InCircumcircle(a, b, apex, far) > 0 {
			m.flipEdge(e)
			// After the flip the faces are (e, prev-of-e) and (twin,
			// next-of-twin); the edges opposite v are prev(e) and next(t).
			stack = append(stack, m.prev(e), m.next(t))
		}
	}
}

// findEdge returns the half-edge from a to b, scanning a's star. Panics if
// the vertices are not adjacent; callers use this only where adjacency is
// guaranteed by construction.
func (c *CDT) findEdge(a, b VertexIndex) EdgeIndex {
	m := c.M
	start := m.Verts[a].Edge
	e := start
	for i := 0; i <= len(m.Edges); i++ {
		if m.dest(e) == b {
			return e
		}
		e = m.onext(e)
		if e == start {
			break
		}
	}
	fatalf("no edge between vertices %d and %d", a, b)
	return EmptyEdge
}
