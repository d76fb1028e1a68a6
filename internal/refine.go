package internal

import "math"

// Ruppert-style Delaunay refinement. The loop alternates between two kinds
// of fix, with segment fixes always taking priority: an encroached or
// over-long constrained segment is split at its midpoint, and a bad triangle
// is fixed by inserting its circumcenter. A circumcenter that would encroach
// a segment, or that lies beyond one, is discarded in favor of splitting
// that segment. Triangle fixes must never be undone by a later segment fix,
// hence the ordering.
//
// Encroachment is the diametral lens test (angle subtended at the point of
// at least 120 degrees), not the full diametral circle. The circle splits
// segments so eagerly that midpoint and circumcenter insertions can feed
// each other at ever shrinking scales once the angle bound passes roughly
// 20 degrees; the lens keeps refinement terminating across the whole
// accepted bound range.

type RefineParams struct {
	// Maximum allowed edge length, in input units. Zero means unbounded.
	MaxEdgeLength float64
	// Minimum allowed triangle angle in degrees. Zero means unbounded.
	MinAngle float64
	// Refine hole regions too (when holes are being meshed).
	IncludeHoles bool
}

// MaxMinAngle is the largest accepted MinAngle, in degrees. Delaunay
// refinement is only guaranteed to terminate below roughly this threshold;
// larger requests are a configuration error, not something to clamp.
const MaxMinAngle = 33.9

// Safety ceilings. Hitting either means the requested bounds are not
// achievable for this input and the whole call fails; a partially refined
// mesh that silently violates the bounds would mislead the caller.
const (
	maxSteinerPoints    = 1 << 17
	maxRefineIterations = 1 << 20
)

// A queued bad triangle. Faces have no stable identity across flips, so the
// triangle is remembered as a representative edge plus its vertex triple and
// revalidated when popped.
type triRef struct {
	e  EdgeIndex
	vs [3]VertexIndex
}

func (t triRef) alive(m *Mesh) bool {
	a := m.Edges[t.e].Origin
	b := m.dest(t.e)
	c := m.apex(t.e)
	for _, v := range t.vs {
		if v != a && v != b && v != c {
			return false
		}
	}
	return true
}

// Refine inserts Steiner points until every retained triangle satisfies the
// bounds, or panics as unachievable when the safety ceiling is reached.
// Region labels are maintained incrementally by the mesh primitives, so new
// triangles inherit the label of the face they subdivide.
func (c *CDT) Refine(params RefineParams) {
	m := c.M

	var segQueue []EdgeIndex
	segHead := 0
	var triQueue []triRef
	triHead := 0

	// Seed from a full scan: every encroached or over-long segment, every
	// bad retained triangle.
	for e := EdgeIndex(0); int(e) < len(m.Edges); e++ {
		if m.Edges[e].Constrained && e < m.Edges[e].Twin && c.segmentNeedsSplit(e, params) {
			segQueue = append(segQueue, e)
		}
	}
	m.Faces(func(f EdgeIndex) {
		c.scanFace(f, params, &segQueue, &triQueue)
	})

	baseVerts := len(m.Verts)
	for iter := 0; ; iter++ {
		if iter > maxRefineIterations || len(m.Verts)-baseVerts > maxSteinerPoints {
			fatalf("refinement did not converge: quality bounds (max edge %g, min angle %g) are unachievable for this input",
				params.MaxEdgeLength, params.MinAngle)
		}

		if segHead < len(segQueue) {
			s := segQueue[segHead]
			segHead++
			if !c.segmentNeedsSplit(s, params) {
				continue
			}
			a := m.Verts[m.Edges[s].Origin].Pos
			b := m.Verts[m.dest(s)].Pos
			mid := Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
			v := c.insertLocated(s, locEdge, mid)
			c.requeueAround(v, params, &segQueue, &triQueue)
			continue
		}

		if triHead < len(triQueue) {
			t := triQueue[triHead]
			triHead++
			if !t.alive(m) || !c.faceViolates(t.e, params) {
				continue
			}

			a := m.Verts[m.Edges[t.e].Origin].Pos
			b := m.Verts[m.dest(t.e)].Pos
			apex := m.Verts[m.apex(t.e)].Pos
			cc := Circumcenter(a, b, apex)

			encroached := c.segmentsEncroachedBy(cc)
			if len(encroached) > 0 {
				segQueue = append(segQueue, encroached...)
				triQueue = append(triQueue, t)
				continue
			}

			e, kind, blocked := c.walkFrom(t.e, cc)
			if blocked != EmptyEdge {
				// The circumcenter lies beyond a segment, so the straight
				// path out of the triangle's region is what needs fixing:
				// split the segment in the way. Since the walk never leaves
				// the region otherwise, inserted circumcenters always land
				// in a refinable face.
				segQueue = append(segQueue, blocked)
				triQueue = append(triQueue, t)
				continue
			}
			if kind == locVertex {
				// The circumcenter already exists as a vertex; there is
				// nothing further insertion can do for this triangle.
				continue
			}
			if kind == locEdge && m.Edges[e].Constrained {
				// Landing exactly on a segment is the degenerate limit of
				// encroachment: split the segment at its midpoint instead.
				segQueue = append(segQueue, e)
				triQueue = append(triQueue, t)
				continue
			}
			v := c.insertLocated(e, kind, cc)
			c.requeueAround(v, params, &segQueue, &triQueue)
			continue
		}

		return
	}
}

func (c *CDT) refinable(label Region, params RefineParams) bool {
	return label == RegionInterior || (params.IncludeHoles && label == RegionHole)
}

// requeueAround rechecks everything insertion of v may have perturbed: the
// faces of v's star and the constrained edges on them. Anything already
// queued shows up again harmlessly; entries are revalidated when popped.
func (c *CDT) requeueAround(v VertexIndex, params RefineParams, segQueue *[]EdgeIndex, triQueue *[]triRef) {
	m := c.M
	start := m.Verts[v].Edge
	e := start
	for i := 0; i <= len(m.Edges); i++ {
		if !m.isOuterEdge(e) {
			f := m.canonical(e)
			c.scanFace(f, params, segQueue, triQueue)
			for _, x := range [3]EdgeIndex{f, m.next(f), m.prev(f)} {
				if m.Edges[x].Constrained && c.segmentNeedsSplit(x, params) {
					*segQueue = append(*segQueue, x)
				}
			}
		}
		e = m.onext(e)
		if e == start {
			return
		}
	}
	fatalf("star traversal of vertex %d did not close", v)
}

// scanFace queues the face if it violates the bounds. Over-long constrained
// edges are segment work, not triangle work, and are routed accordingly.
func (c *CDT) scanFace(f EdgeIndex, params RefineParams, segQueue *[]EdgeIndex, triQueue *[]triRef) {
	m := c.M
	if m.isOuterEdge(f) || !c.refinable(m.Edges[f].Label, params) {
		return
	}
	if c.faceViolates(f, params) {
		*triQueue = append(*triQueue, triRef{
			e:  f,
			vs: [3]VertexIndex{m.Edges[f].Origin, m.dest(f), m.apex(f)},
		})
	}
	if params.MaxEdgeLength > 0 {
		for _, x := range [3]EdgeIndex{f, m.next(f), m.prev(f)} {
			if m.Edges[x].Constrained && c.segmentNeedsSplit(x, params) {
				*segQueue = append(*segQueue, x)
			}
		}
	}
}

// faceViolates reports whether the triangle breaks an edge-length or angle
// bound in a way circumcenter insertion can fix. A minimum angle pinched
// between two constrained edges is an input corner sharper than the bound;
// no amount of splitting can widen it, so it is exempt rather than a reason
// to loop forever.
func (c *CDT) faceViolates(f EdgeIndex, params RefineParams) bool {
	m := c.M
	edges := [3]EdgeIndex{f, m.next(f), m.prev(f)}
	var pts [3]Point
	for i, e := range edges {
		pts[i] = m.Verts[m.Edges[e].Origin].Pos
	}

	if params.MaxEdgeLength > 0 {
		for i, e := range edges {
			if m.Edges[e].Constrained {
				continue // handled as segment work
			}
			if math.Sqrt(sqDist(pts[i], pts[(i+1)%3])) > params.MaxEdgeLength {
				return true
			}
		}
	}

	if params.MinAngle > 0 {
		angle, at := minAngleDeg(pts[0], pts[1], pts[2])
		if angle < params.MinAngle {
			// Edges incident to vertex `at` are edges[at] and edges[(at+2)%3].
			if !(m.Edges[edges[at]].Constrained && m.Edges[edges[(at+2)%3]].Constrained) {
				return true
			}
		}
	}
	return false
}

// segmentNeedsSplit reports whether a constrained edge is encroached (a
// neighboring apex lies inside its diametral lens) or longer than the
// edge-length bound. In a constrained Delaunay mesh it is sufficient to test
// the two adjacent apexes: any encroaching vertex implies an encroaching
// apex.
func (c *CDT) segmentNeedsSplit(s EdgeIndex, params RefineParams) bool {
	m := c.M
	if !m.Edges[s].Constrained {
		return false
	}
	a := m.Verts[m.Edges[s].Origin].Pos
	b := m.Verts[m.dest(s)].Pos

	if params.MaxEdgeLength > 0 && math.Sqrt(sqDist(a, b)) > params.MaxEdgeLength {
		return true
	}
	for _, side := range [2]EdgeIndex{s, m.Edges[s].Twin} {
		if m.isOuterEdge(side) || m.isOuterEdge(m.next(side)) {
			continue
		}
		v := m.apex(side)
		if m.isBoundingVertex(v) {
			continue
		}
		if inDiametralLens(a, b, m.Verts[v].Pos) {
			return true
		}
	}
	return false
}

// segmentsEncroachedBy returns every constrained edge whose diametral lens
// contains p. A linear scan over the segments; segment counts stay small
// enough that this is not worth an index.
func (c *CDT) segmentsEncroachedBy(p Point) []EdgeIndex {
	m := c.M
	var result []EdgeIndex
	for e := EdgeIndex(0); int(e) < len(m.Edges); e++ {
		if !m.Edges[e].Constrained || e >= m.Edges[e].Twin {
			continue
		}
		a := m.Verts[m.Edges[e].Origin].Pos
		b := m.Verts[m.dest(e)].Pos
		if inDiametralLens(a, b, p) {
			result = append(result, e)
		}
	}
	return result
}

// p is inside the diametral lens of a-b when the angle a-p-b is at least 120
// degrees. (The full diametral circle is the same test with 90 degrees.)
// Comparing cos(a-p-b) <= -1/2 without the square roots: the dot product
// must be negative with its square at least a quarter of the product of the
// squared distances.
func inDiametralLens(a, b, p Point) bool {
	dot := (a.X-p.X)*(b.X-p.X) + (a.Y-p.Y)*(b.Y-p.Y)
	if dot >= 0 {
		return false
	}
	return 4*dot*dot >= sqDist(a, p)*sqDist(b, p)
}

// minAngleDeg returns the smallest interior angle of the triangle in
// degrees, and the index (0, 1 or 2) of the vertex it occurs at. Angles are
// measured with the dot-product formula in input units.
func minAngleDeg(a, b, c Point) (float64, int) {
	angleAt := func(p, q, r Point) float64 {
		ux := q.X - p.X
		uy := q.Y - p.Y
		vx := r.X - p.X
		vy := r.Y - p.Y
		dot := ux*vx + uy*vy
		norm := math.Sqrt((ux*ux + uy*uy) * (vx*vx + vy*vy))
		if norm == 0 {
			return 0
		}
		cos := dot / norm
		if cos > 1 {
			cos = 1
		} else if cos < -1 {
			cos = -1
		}
		return math.Acos(cos) * 180 / math.Pi
	}

	min := angleAt(a, b, c)
	at := 0
	if ab := angleAt(b, c, a); ab < min {
		min, at = ab, 1
	}
	if ac := angleAt(c, a, b); ac < min {
		min, at = ac, 2
	}
	return min, at
}
