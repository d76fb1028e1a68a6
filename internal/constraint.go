package internal

// Constraint enforcement. A constraint is realized as a chain of constrained
// edges from p to q. Whenever the next stretch of the segment is blocked by
// an existing unconstrained edge, that edge is split at the exact crossing
// point, which always exposes a direct edge from the chain's current anchor
// to the new vertex. One split per crossing edge, so the loop is bounded by
// the number of edges the segment crosses.

// InsertConstraint forces the segment between two existing vertices to be
// present in the mesh as a chain of constrained edges. Constrained edges are
// never flipped or removed afterward; they survive into the output exactly.
func (c *CDT) InsertConstraint(p, q VertexIndex) {
	if p == q {
		fatalf("degenerate constraint from vertex %d to itself", p)
	}
	a := p
	for a != q {
		a = c.constrainToward(a, q)
	}
}

// constrainToward realizes the next link of the chain from a toward q and
// returns the link's far endpoint: q itself if directly reachable, an
// existing vertex that happens to lie exactly on the segment, or a new
// vertex created by splitting the first crossing edge.
func (c *CDT) constrainToward(a, q VertexIndex) VertexIndex {
	m := c.M
	pa := m.Verts[a].Pos
	pq := m.Verts[q].Pos

	start := m.Verts[a].Edge
	e := start
	for i := 0; i <= len(m.Edges); i++ {
		b := m.dest(e)
		if b == q {
			m.markConstrained(e)
			return q
		}

		pb := m.Verts[b].Pos
		dirB := Orientation(pa, pb, pq)
		if dirB == Collinear && (pb.X-pa.X)*(pq.X-pa.X)+(pb.Y-pa.Y)*(pq.Y-pa.Y) > 0 {
			// b sits exactly on the open segment a-q: it becomes a chain
			// joint. (b cannot lie beyond q, or a-b would pass through
			// vertex q, which triangulations never contain.)
			m.markConstrained(e)
			return b
		}

		// The segment leaves a through this face's far edge b-apex when q
		// lies strictly inside the wedge the face spans at a: left of a->b
		// and right of a->apex.
		if !m.isOuterEdge(e) {
			apex := m.apex(e)
			pc := m.Verts[apex].Pos
			if dirB == CounterClockwise && Orientation(pa, pc, pq) == Clockwise {
				return c.cutThrough(a, q, m.next(e))
			}
		}

		e = m.onext(e)
		if e == start {
			break
		}
	}
	fatalf("constraint direction from vertex %d toward %d not found", a, q)
	return EmptyVertex
}

// cutThrough splits the crossing edge at its intersection with the open
// segment a-q. The split stars the crossing edge's two adjacent faces from
// the new vertex, one of which has a as its apex, so the chain link a-v
// exists immediately; it is marked constrained before legalization so no
// flip can take it away.
func (c *CDT) cutThrough(a, q VertexIndex, cross EdgeIndex) VertexIndex {
	m := c.M
	if m.Edges[cross].Constrained {
		fatalf("constraint %d-%d crosses another constrained edge; input polygons must not intersect", a, q)
	}

	pa := m.Verts[a].Pos
	pq := m.Verts[q].Pos
	po := m.Verts[m.Edges[cross].Origin].Pos
	pd := m.Verts[m.dest(cross)].Pos
	x := SegmentIntersection(pa, pq, po, pd)

	t := m.Edges[cross].Twin
	suspects := []EdgeIndex{m.next(cross), m.prev(cross), m.next(t), m.prev(t)}
	v := m.splitEdge(cross, x)
	m.markConstrained(c.findEdge(a, v))
	c.legalize(v, suspects)
	c.recent = m.Verts[v].Edge
	return v
}
