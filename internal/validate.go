package internal

import "math"

// Input validation. Everything here runs before the first mesh mutation, so
// a rejected call has no side effects. The policy for bad geometry is to
// reject, never to repair: silently auto-correcting caller geometry trades a
// loud error now for a quiet wrong mesh later.

func validateParams(maxEdgeLength, minAngle float64) {
	if maxEdgeLength < 0 {
		fatalf("max edge length must be positive, got %g", maxEdgeLength)
	}
	if minAngle < 0 || minAngle > MaxMinAngle {
		fatalf("min angle must be between 0 and %g degrees, got %g", MaxMinAngle, minAngle)
	}
}

// validateRings checks each polygon individually and all of them against
// each other. Rings must be simple, non-degenerate, and pairwise disjoint;
// a hole touching or crossing the outer boundary (or another hole) is a
// caller error.
func validateRings(rings []Polygon) {
	for ri, ring := range rings {
		n := len(ring.Points)
		if n < 3 {
			fatalf("polygon %d has %d vertices; at least 3 required", ri, n)
		}
		for i, p := range ring.Points {
			q := ring.Points[(i+1)%n]
			if sqDist(p, q) <= Tolerance*Tolerance {
				fatalf("polygon %d has duplicate consecutive vertices at %v", ri, p)
			}
		}
		// A spike (the boundary doubling back on itself) is degenerate even
		// when the total area is not zero.
		for i := range ring.Points {
			prev := ring.Points[(i+n-1)%n]
			cur := ring.Points[i]
			next := ring.Points[(i+1)%n]
			if Orientation(prev, cur, next) == Collinear &&
				(prev.X-cur.X)*(next.X-cur.X)+(prev.Y-cur.Y)*(next.Y-cur.Y) > 0 {
				fatalf("polygon %d has a degenerate spike at %v", ri, cur)
			}
		}
		if math.Abs(ring.SignedArea()) <= Tolerance {
			fatalf("polygon %d is degenerate: zero area", ri)
		}
	}

	// Pairwise segment check, O(n^2). Adjacent segments of the same ring
	// legitimately share a vertex; every other contact is an intersection.
	type seg struct {
		ring, idx int
		a, b      Point
	}
	var segs []seg
	for ri, ring := range rings {
		n := len(ring.Points)
		for i := 0; i < n; i++ {
			segs = append(segs, seg{ri, i, ring.Points[i], ring.Points[(i+1)%n]})
		}
	}
	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			s, t := segs[i], segs[j]
			if s.ring == t.ring {
				n := len(rings[s.ring].Points)
				if t.idx == (s.idx+1)%n || s.idx == (t.idx+1)%n {
					continue
				}
			}
			if segmentsConflict(s.a, s.b, t.a, t.b) {
				fatalf("polygon %d intersects polygon %d near segment %v-%v", s.ring, t.ring, s.a, s.b)
			}
		}
	}
}

// segmentsConflict reports whether two segments cross, touch, or overlap.
// Any contact at all between non-adjacent segments disqualifies the input.
func segmentsConflict(p1, p2, q1, q2 Point) bool {
	d1 := Orientation(q1, q2, p1)
	d2 := Orientation(q1, q2, p2)
	d3 := Orientation(p1, p2, q1)
	d4 := Orientation(p1, p2, q2)

	if d1 != d2 && d3 != d4 {
		return true
	}
	if d1 == Collinear && onSegment(q1, q2, p1) {
		return true
	}
	if d2 == Collinear && onSegment(q1, q2, p2) {
		return true
	}
	if d3 == Collinear && onSegment(p1, p2, q1) {
		return true
	}
	if d4 == Collinear && onSegment(p1, p2, q2) {
		return true
	}
	return false
}

// onSegment assumes p is collinear with a-b and reports whether it lies
// within the segment's bounding box.
func onSegment(a, b Point, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
