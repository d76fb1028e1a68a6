package internal

import (
	"math"
	"math/big"
)

// Geometric predicates that are guaranteed to produce correct, consistent
// results. The fast path evaluates the determinant in ordinary floating
// point and accepts the sign only when its magnitude clears a conservative
// error bound; uncertain cases fall back to exact big.Float arithmetic. A
// single wrong predicate result can leave the mesh with crossing edges or
// inverted triangles that no later stage can repair, so "almost always
// right" is not good enough here.

const (
	// Unit roundoff of float64 (half the spacing between 1.0 and the next
	// representable value). The bounds below come from Shewchuk's "Adaptive
	// Precision Floating-Point Arithmetic and Fast Robust Geometric
	// Predicates"; if the determinant magnitude exceeds the bound times the
	// sum of the magnitudes of its terms, its sign is certain.
	roundoff = 1.1102230246251565e-16

	orientErrBound   = (3.0 + 16.0*roundoff) * roundoff
	inCircleErrBound = (10.0 + 96.0*roundoff) * roundoff
)

// Direction is an indication of the ordering of three points.
type Direction int

const (
	Clockwise        Direction = -1
	Collinear        Direction = 0
	CounterClockwise Direction = 1
)

// newBigFloat constructs a new big.Float with maximum precision. Differences
// and products of float64 values are computed exactly at this precision.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

// Orientation reports whether c lies to the left of the directed line a->b
// (CounterClockwise), to the right (Clockwise), or exactly on it (Collinear).
// Exact collinearity is its own outcome and is never rounded to a side.
func Orientation(a, b, c Point) Direction {
	detLeft := (b.X - a.X) * (c.Y - a.Y)
	detRight := (b.Y - a.Y) * (c.X - a.X)
	det := detLeft - detRight

	detSum := math.Abs(detLeft) + math.Abs(detRight)
	errBound := orientErrBound * detSum
	if det > errBound {
		return CounterClockwise
	}
	if det < -errBound {
		return Clockwise
	}
	return exactOrientation(a, b, c)
}

func exactOrientation(a, b, c Point) Direction {
	ax := newBigFloat().SetFloat64(a.X)
	ay := newBigFloat().SetFloat64(a.Y)

	abx := newBigFloat().Sub(newBigFloat().SetFloat64(b.X), ax)
	aby := newBigFloat().Sub(newBigFloat().SetFloat64(b.Y), ay)
	acx := newBigFloat().Sub(newBigFloat().SetFloat64(c.X), ax)
	acy := newBigFloat().Sub(newBigFloat().SetFloat64(c.Y), ay)

	det := newBigFloat().Sub(
		newBigFloat().Mul(abx, acy),
		newBigFloat().Mul(aby, acx))
	return Direction(det.Sign())
}

// InCircumcircle reports whether d lies strictly inside (+1), exactly on (0),
// or outside (-1) the circle through a, b and c. The triangle (a, b, c) must
// be in counterclockwise order; the sign convention then matches Orientation.
func InCircumcircle(a, b, c, d Point) int {
	adx := a.X - d.X
	ady := a.Y - d.Y
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	cdx := c.X - d.X
	cdy := c.Y - d.Y

	bdxcdy := bdx * cdy
	cdxbdy := cdx * bdy
	alift := adx*adx + ady*ady

	cdxady := cdx * ady
	adxcdy := adx * cdy
	blift := bdx*bdx + bdy*bdy

	adxbdy := adx * bdy
	bdxady := bdx * ady
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)

	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*alift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*blift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*clift
	errBound := inCircleErrBound * permanent
	if det > errBound {
		return 1
	}
	if det < -errBound {
		return -1
	}
	return exactInCircumcircle(a, b, c, d)
}

func exactInCircumcircle(a, b, c, d Point) int {
	dx := newBigFloat().SetFloat64(d.X)
	dy := newBigFloat().SetFloat64(d.Y)

	adx := newBigFloat().Sub(newBigFloat().SetFloat64(a.X), dx)
	ady := newBigFloat().Sub(newBigFloat().SetFloat64(a.Y), dy)
	bdx := newBigFloat().Sub(newBigFloat().SetFloat64(b.X), dx)
	bdy := newBigFloat().Sub(newBigFloat().SetFloat64(b.Y), dy)
	cdx := newBigFloat().Sub(newBigFloat().SetFloat64(c.X), dx)
	cdy := newBigFloat().Sub(newBigFloat().SetFloat64(c.Y), dy)

	lift := func(x, y *big.Float) *big.Float {
		return newBigFloat().Add(newBigFloat().Mul(x, x), newBigFloat().Mul(y, y))
	}
	cross := func(x1, y1, x2, y2 *big.Float) *big.Float {
		return newBigFloat().Sub(newBigFloat().Mul(x1, y2), newBigFloat().Mul(x2, y1))
	}

	det := newBigFloat().Add(
		newBigFloat().Add(
			newBigFloat().Mul(lift(adx, ady), cross(bdx, bdy, cdx, cdy)),
			newBigFloat().Mul(lift(bdx, bdy), cross(cdx, cdy, adx, ady))),
		newBigFloat().Mul(lift(cdx, cdy), cross(adx, ady, bdx, bdy)))
	return det.Sign()
}

// Circumcenter of the triangle (a, b, c). The triangle must not be
// degenerate; collinear input is a bug in the caller, not a recoverable
// condition.
func Circumcenter(a, b, c Point) Point {
	bx := b.X - a.X
	by := b.Y - a.Y
	cx := c.X - a.X
	cy := c.Y - a.Y

	d := 2 * (bx*cy - by*cx)
	if d == 0 {
		fatalf("circumcenter of degenerate triangle %v %v %v", a, b, c)
	}
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	return Point{
		X: a.X + (cy*b2-by*c2)/d,
		Y: a.Y + (bx*c2-cx*b2)/d,
	}
}

// SegmentIntersection returns the intersection of the lines through p-q and
// a-b. Callers are responsible for having established that the segments
// actually cross; parallel input is a caller bug.
func SegmentIntersection(p, q, a, b Point) Point {
	dx := q.X - p.X
	dy := q.Y - p.Y
	ex := b.X - a.X
	ey := b.Y - a.Y

	denom := dx*ey - dy*ex
	if denom == 0 {
		fatalf("intersection of parallel segments %v-%v and %v-%v", p, q, a, b)
	}
	t := ((a.X-p.X)*ey - (a.Y-p.Y)*ex) / denom
	return Point{X: p.X + t*dx, Y: p.Y + t*dy}
}
