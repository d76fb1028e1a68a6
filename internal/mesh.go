package internal

// The half-edge mesh. Every undirected edge is a pair of directed half-edges
// allocated together; a half-edge knows its origin vertex, its twin, and the
// next half-edge counterclockwise around its face. All bounded faces are
// triangles. The only operations that touch the twin/next links are the
// three primitives below (flipEdge, splitEdge, insertPointInFace); everything
// else in the engine goes through them.

type Vertex struct {
	Pos Point
	// An arbitrary outgoing half-edge, kept valid across topology edits.
	Edge EdgeIndex
}

type HalfEdge struct {
	Origin VertexIndex
	Twin   EdgeIndex
	Next   EdgeIndex
	// Constrained edges are caller-supplied boundary/hole segments (or
	// pieces of them). They are never flipped and never removed.
	Constrained bool
	// Region of the face this half-edge borders. Meaningful only after
	// classification; maintained incrementally by the primitives afterward.
	Label Region
}

type Mesh struct {
	Verts []Vertex
	Edges []HalfEdge
	// The three half-edges of the unbounded outer face, fixed at creation.
	// Nothing is ever inserted beyond the bounding triangle, so these links
	// never change.
	outer [3]EdgeIndex
}

// The first three vertices of every mesh are the corners of the bounding
// triangle and are excluded from all output.
const boundingVertexCount = 3

// NewMesh creates a mesh consisting of a single triangle large enough that
// every point in the bounding box lo..hi is comfortably interior. Starting
// from an all-enclosing triangle means point location never has to handle
// a point outside the hull.
func NewMesh(lo, hi Point) *Mesh {
	cx := (lo.X + hi.X) / 2
	cy := (lo.Y + hi.Y) / 2
	d := hi.X - lo.X
	if hi.Y-lo.Y > d {
		d = hi.Y - lo.Y
	}
	if d <= 0 {
		d = 1
	}
	r := 20 * d

	m := &Mesh{}
	v0 := m.newVertex(Point{cx - 3*r, cy - r})
	v1 := m.newVertex(Point{cx + 3*r, cy - r})
	v2 := m.newVertex(Point{cx, cy + 3*r})

	e0, t0 := m.newEdgePair(v0, v1)
	e1, t1 := m.newEdgePair(v1, v2)
	e2, t2 := m.newEdgePair(v2, v0)

	// Inner face v0-v1-v2 is counterclockwise; the twins form the outer face.
	m.Edges[e0].Next = e1
	m.Edges[e1].Next = e2
	m.Edges[e2].Next = e0
	m.Edges[t0].Next = t2
	m.Edges[t2].Next = t1
	m.Edges[t1].Next = t0
	m.outer = [3]EdgeIndex{t0, t1, t2}

	m.Verts[v0].Edge = e0
	m.Verts[v1].Edge = e1
	m.Verts[v2].Edge = e2
	return m
}

func (m *Mesh) newVertex(p Point) VertexIndex {
	m.Verts = append(m.Verts, Vertex{Pos: p, Edge: EmptyEdge})
	return VertexIndex(len(m.Verts) - 1)
}

// newEdgePair allocates the half-edge pair for an undirected edge from a to
// b, returning (a->b, b->a). Next links are left unset for the caller.
func (m *Mesh) newEdgePair(a, b VertexIndex) (EdgeIndex, EdgeIndex) {
	e := EdgeIndex(len(m.Edges))
	t := e + 1
	m.Edges = append(m.Edges,
		HalfEdge{Origin: a, Twin: t, Next: EmptyEdge},
		HalfEdge{Origin: b, Twin: e, Next: EmptyEdge})
	return e, t
}

func (m *Mesh) next(e EdgeIndex) EdgeIndex { return m.Edges[e].Next }

// prev relies on every face being a 3-cycle, which holds for bounded faces
// and for the outer face alike.
func (m *Mesh) prev(e EdgeIndex) EdgeIndex { return m.Edges[m.Edges[e].Next].Next }

func (m *Mesh) dest(e EdgeIndex) VertexIndex { return m.Edges[m.Edges[e].Twin].Origin }

// apex is the third vertex of e's face, opposite e.
func (m *Mesh) apex(e EdgeIndex) VertexIndex { return m.Edges[m.prev(e)].Origin }

// onext rotates counterclockwise around e's origin to the next outgoing
// half-edge.
func (m *Mesh) onext(e EdgeIndex) EdgeIndex { return m.Edges[m.prev(e)].Twin }

func (m *Mesh) isOuterEdge(e EdgeIndex) bool {
	return e == m.outer[0] || e == m.outer[1] || e == m.outer[2]
}

func (m *Mesh) isBoundingVertex(v VertexIndex) bool { return v < boundingVertexCount }

// canonical returns the lowest half-edge index in e's face cycle, used as
// the face's identity for iteration and bookkeeping.
func (m *Mesh) canonical(e EdgeIndex) EdgeIndex {
	min := e
	for _, x := range [2]EdgeIndex{m.next(e), m.prev(e)} {
		if x < min {
			min = x
		}
	}
	return min
}

// Faces calls fn once per face (including the outer face), identified by its
// canonical half-edge, in increasing index order.
func (m *Mesh) Faces(fn func(e EdgeIndex)) {
	for e := EdgeIndex(0); int(e) < len(m.Edges); e++ {
		if m.canonical(e) == e {
			fn(e)
		}
	}
}

func (m *Mesh) markConstrained(e EdgeIndex) {
	m.Edges[e].Constrained = true
	m.Edges[m.Edges[e].Twin].Constrained = true
}

// linkFace closes x -> y -> z -> x into a face cycle and stamps the region
// label on all three half-edges.
func (m *Mesh) linkFace(x, y, z EdgeIndex, label Region) {
	m.Edges[x].Next = y
	m.Edges[y].Next = z
	m.Edges[z].Next = x
	m.Edges[x].Label = label
	m.Edges[y].Label = label
	m.Edges[z].Label = label
}

// flipEdge replaces the diagonal a-b of the quadrilateral formed by the two
// faces (a,b,c) and (b,a,d) with the opposite diagonal d-c, reusing the same
// half-edge pair. Refuses constrained edges: those are exactly the edges a
// flip must never touch. Both faces lie in the same region (regions are
// walled off by constrained edges), so the label is preserved.
func (m *Mesh) flipEdge(ei EdgeIndex) {
	if m.Edges[ei].Constrained {
		fatalf("attempted to flip constrained edge %d", ei)
	}
	ti := m.Edges[ei].Twin
	if m.isOuterEdge(ei) || m.isOuterEdge(ti) {
		fatalf("attempted to flip outer face edge %d", ei)
	}

	e1 := m.next(ei) // b->c
	e2 := m.next(e1) // c->a
	t1 := m.next(ti) // a->d
	t2 := m.next(t1) // d->b

	a := m.Edges[ei].Origin
	b := m.Edges[ti].Origin
	c := m.Edges[e2].Origin
	d := m.Edges[t2].Origin

	label := m.Edges[e1].Label

	// ei becomes d->c, ti becomes c->d.
	m.Edges[ei].Origin = d
	m.Edges[ti].Origin = c
	m.linkFace(ei, e2, t1, label) // face (d, c, a)
	m.linkFace(ti, t2, e1, label) // face (c, d, b)

	// a and b may have pointed at the half-edges we repurposed.
	if m.Verts[a].Edge == ei {
		m.Verts[a].Edge = t1
	}
	if m.Verts[b].Edge == ti {
		m.Verts[b].Edge = e1
	}
}

// splitEdge inserts a new vertex at p on the edge a-b, subdividing the two
// adjacent faces (a,b,c) and (b,a,d) into four. The original pair is reused
// for the a-v half and keeps its constrained flag; the v-b half copies it.
// Each new face inherits the label of the side it came from. Returns the new
// vertex.
func (m *Mesh) splitEdge(ei EdgeIndex, p Point) VertexIndex {
	ti := m.Edges[ei].Twin
	if m.isOuterEdge(ei) || m.isOuterEdge(ti) {
		fatalf("attempted to split outer face edge %d", ei)
	}

	e1 := m.next(ei) // b->c
	e2 := m.next(e1) // c->a
	t1 := m.next(ti) // a->d
	t2 := m.next(t1) // d->b

	b := m.Edges[ti].Origin
	c := m.Edges[e2].Origin
	d := m.Edges[t2].Origin

	constrained := m.Edges[ei].Constrained
	labelE := m.Edges[ei].Label
	labelT := m.Edges[ti].Label

	v := m.newVertex(p)
	vb, bv := m.newEdgePair(v, b)
	vc, cv := m.newEdgePair(v, c)
	vd, dv := m.newEdgePair(v, d)
	m.Edges[vb].Constrained = constrained
	m.Edges[bv].Constrained = constrained

	// ei is now a->v, ti is v->a.
	m.Edges[ti].Origin = v

	m.linkFace(ei, vc, e2, labelE) // face (a, v, c)
	m.linkFace(vb, e1, cv, labelE) // face (v, b, c)
	m.linkFace(ti, t1, dv, labelT) // face (v, a, d)
	m.linkFace(bv, vd, t2, labelT) // face (b, v, d)

	if m.Verts[b].Edge == ti {
		m.Verts[b].Edge = bv
	}
	m.Verts[v].Edge = vb
	return v
}

// insertPointInFace stars the face of ei from a new vertex at p, replacing
// one face (a,b,c) with three. All three inherit the face's label. Returns
// the new vertex.
func (m *Mesh) insertPointInFace(ei EdgeIndex, p Point) VertexIndex {
	if m.isOuterEdge(ei) {
		fatalf("attempted to insert point in the outer face")
	}
	ea := ei         // a->b
	eb := m.next(ea) // b->c
	ec := m.next(eb) // c->a

	a := m.Edges[ea].Origin
	b := m.Edges[eb].Origin
	c := m.Edges[ec].Origin
	label := m.Edges[ea].Label

	v := m.newVertex(p)
	av, va := m.newEdgePair(a, v)
	bv, vb := m.newEdgePair(b, v)
	cv, vc := m.newEdgePair(c, v)

	m.linkFace(ea, bv, va, label) // face (a, b, v)
	m.linkFace(eb, cv, vb, label) // face (b, c, v)
	m.linkFace(ec, av, vc, label) // face (c, a, v)

	m.Verts[v].Edge = va
	return v
}

// check validates the half-edge invariants: twins are mutual with opposite
// endpoints, every face cycle has exactly three edges, the constrained flag
// is symmetric, and every vertex's edge points back at it. Used by tests and
// cheap enough to sprinkle into debugging sessions.
func (m *Mesh) check() {
	for i := range m.Edges {
		e := EdgeIndex(i)
		t := m.Edges[e].Twin
		if t < 0 || int(t) >= len(m.Edges) || m.Edges[t].Twin != e {
			fatalf("edge %d has broken twin link", e)
		}
		if m.Edges[e].Constrained != m.Edges[t].Constrained {
			fatalf("edge %d constrained flag differs from its twin", e)
		}
		if m.next(m.next(m.next(e))) != e {
			fatalf("edge %d is not part of a 3-cycle", e)
		}
		if m.Edges[m.next(e)].Origin != m.dest(e) {
			fatalf("edge %d next does not start at its destination", e)
		}
	}
	for i := range m.Verts {
		v := VertexIndex(i)
		e := m.Verts[v].Edge
		if e == EmptyEdge || m.Edges[e].Origin != v {
			fatalf("vertex %d edge pointer does not originate at it", v)
		}
	}
}
