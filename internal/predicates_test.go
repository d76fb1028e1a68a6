package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrientation(t *testing.T) {
	a := Point{0, 0}
	b := Point{4, 0}

	assert.Equal(t, CounterClockwise, Orientation(a, b, Point{2, 1}))
	assert.Equal(t, Clockwise, Orientation(a, b, Point{2, -1}))
	assert.Equal(t, Collinear, Orientation(a, b, Point{2, 0}))
	// Collinear beyond the segment is still collinear
	assert.Equal(t, Collinear, Orientation(a, b, Point{100, 0}))
}

func TestOrientationAntisymmetry(t *testing.T) {
	a := Point{0.1, 0.7}
	b := Point{3.3, -2.9}
	c := Point{-1.5, 4.2}
	assert.Equal(t, CounterClockwise, Orientation(a, b, c))
	assert.Equal(t, Clockwise, Orientation(b, a, c))
}

// A perturbation of one ulp is far below the float determinant's error bound,
// so this answer can only come from the exact fallback.
func TestOrientationExactFallback(t *testing.T) {
	a := Point{0, 0}
	b := Point{1, 1}

	assert.Equal(t, Collinear, Orientation(a, b, Point{2, 2}))
	assert.Equal(t, CounterClockwise, Orientation(a, b, Point{2, math.Nextafter(2, 3)}))
	assert.Equal(t, Clockwise, Orientation(a, b, Point{2, math.Nextafter(2, 1)}))
}

func TestInCircumcircle(t *testing.T) {
	// Right triangle with circumcircle centered at (1, 1), radius sqrt(2)
	a := Point{0, 0}
	b := Point{2, 0}
	c := Point{0, 2}

	assert.Equal(t, 1, InCircumcircle(a, b, c, Point{1, 1}))
	assert.Equal(t, -1, InCircumcircle(a, b, c, Point{3, 3}))
	// (2, 2) is the fourth corner of the square, exactly on the circle
	assert.Equal(t, 0, InCircumcircle(a, b, c, Point{2, 2}))
}

func TestCircumcenter(t *testing.T) {
	cc := Circumcenter(Point{0, 0}, Point{2, 0}, Point{0, 2})
	assert.InDelta(t, 1, cc.X, 1e-12)
	assert.InDelta(t, 1, cc.Y, 1e-12)

	assert.Panics(t, func() {
		Circumcenter(Point{0, 0}, Point{1, 1}, Point{2, 2})
	})
}

func TestSegmentIntersection(t *testing.T) {
	x := SegmentIntersection(Point{0, 0}, Point{2, 2}, Point{0, 2}, Point{2, 0})
	assert.InDelta(t, 1, x.X, 1e-12)
	assert.InDelta(t, 1, x.Y, 1e-12)

	assert.Panics(t, func() {
		SegmentIntersection(Point{0, 0}, Point{1, 0}, Point{0, 1}, Point{1, 1})
	})
}
