package internal

import "math"

// Top-level engine driver: validate, build the constrained triangulation,
// classify regions, refine, and extract the caller-facing mesh. Each call
// owns its mesh arena exclusively, so independent calls are safe to run
// concurrently with no shared state.

type Params struct {
	Outer Polygon
	Holes []Polygon
	// Zero means unbounded.
	MaxEdgeLength float64
	// Degrees, zero means unbounded. At most MaxMinAngle.
	MinAngle float64
	// Mesh the hole interiors instead of excluding them.
	TriangulateHoles bool
}

type Result struct {
	// Input and Steiner vertices, z fixed at 0.
	Vertices [][3]float64
	// Counterclockwise vertex index triples.
	Triangles [][3]int
	// Undirected constrained edges as vertex index pairs.
	Edges [][2]int
}

// TriangulatePolygon runs the whole pipeline. Failures panic with a
// TriangulateError; the public API recovers them into errors.
func TriangulatePolygon(params Params) *Result {
	validateParams(params.MaxEdgeLength, params.MinAngle)
	rings := append([]Polygon{params.Outer}, params.Holes...)
	validateRings(rings)

	lo := Point{math.Inf(1), math.Inf(1)}
	hi := Point{math.Inf(-1), math.Inf(-1)}
	for _, ring := range rings {
		for _, p := range ring.Points {
			lo.X = math.Min(lo.X, p.X)
			lo.Y = math.Min(lo.Y, p.Y)
			hi.X = math.Max(hi.X, p.X)
			hi.Y = math.Max(hi.Y, p.Y)
		}
	}

	c := NewCDT(lo, hi)

	// Insert every ring vertex, then force every ring edge. Validation has
	// ruled out coincident vertices, so each insertion creates a fresh
	// vertex.
	var ids [][]VertexIndex
	for _, ring := range rings {
		ringIDs := make([]VertexIndex, len(ring.Points))
		for i, p := range ring.Points {
			ringIDs[i] = c.Insert(p)
		}
		ids = append(ids, ringIDs)
	}
	for _, ringIDs := range ids {
		for i, v := range ringIDs {
			c.InsertConstraint(v, ringIDs[(i+1)%len(ringIDs)])
		}
	}

	c.ClassifyRegions()

	if params.MaxEdgeLength > 0 || params.MinAngle > 0 {
		c.Refine(RefineParams{
			MaxEdgeLength: params.MaxEdgeLength,
			MinAngle:      params.MinAngle,
			IncludeHoles:  params.TriangulateHoles,
		})
	}

	return extract(c.M, params.TriangulateHoles)
}

// extract produces the compacted output. The bounding triangle's vertices
// are dropped and every remaining vertex is remapped to a 0-based index in
// creation order, which keeps the output deterministic.
func extract(m *Mesh, includeHoles bool) *Result {
	result := &Result{
		Vertices: make([][3]float64, 0, len(m.Verts)-boundingVertexCount),
	}
	for _, v := range m.Verts[boundingVertexCount:] {
		result.Vertices = append(result.Vertices, [3]float64{v.Pos.X, v.Pos.Y, 0})
	}
	remap := func(v VertexIndex) int { return int(v) - boundingVertexCount }

	m.Faces(func(f EdgeIndex) {
		a := m.Edges[f].Origin
		b := m.dest(f)
		c := m.apex(f)
		if m.isBoundingVertex(a) || m.isBoundingVertex(b) || m.isBoundingVertex(c) {
			return
		}
		label := m.Edges[f].Label
		if label == RegionInterior || (includeHoles && label == RegionHole) {
			result.Triangles = append(result.Triangles, [3]int{remap(a), remap(b), remap(c)})
		}
	})

	for e := EdgeIndex(0); int(e) < len(m.Edges); e++ {
		if !m.Edges[e].Constrained || e >= m.Edges[e].Twin {
			continue
		}
		i := remap(m.Edges[e].Origin)
		j := remap(m.dest(e))
		if i > j {
			i, j = j, i
		}
		result.Edges = append(result.Edges, [2]int{i, j})
	}
	return result
}
