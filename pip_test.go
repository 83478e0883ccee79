package tzfinder

import "testing"

// square returns an unclosed CCW ring for the int32 box [x0,x1] x [y0,y1].
func square(x0, y0, x1, y1 int32) (xs, ys []int32) {
	return []int32{x0, x1, x1, x0}, []int32{y0, y0, y1, y1}
}

func TestInsidePolygonBasic(t *testing.T) {
	xs, ys := square(0, 0, 100, 100)

	cases := []struct {
		x, y int32
		want bool
	}{
		{50, 50, true},   // center
		{-10, 50, false}, // outside, left
		{150, 50, false}, // outside, right
		{50, -10, false}, // outside, below
		{50, 150, false}, // outside, above
	}
	for _, c := range cases {
		got := insidePolygon(c.x, c.y, xs, ys)
		if got != c.want {
			t.Errorf("insidePolygon(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestInsidePolygonEdgesAndVertices(t *testing.T) {
	xs, ys := square(0, 0, 100, 100)

	// A point on an edge or coincident with a vertex counts as inside.
	onEdge := []struct{ x, y int32 }{
		{0, 0}, {100, 0}, {100, 100}, {0, 100}, // vertices
		{50, 0}, {0, 50}, {100, 50}, {50, 100}, // edge midpoints
	}
	for _, p := range onEdge {
		if !insidePolygon(p.x, p.y, xs, ys) {
			t.Errorf("insidePolygon(%d,%d) on boundary = false, want true", p.x, p.y)
		}
	}
}

func TestInsidePolygonRotationalInvariance(t *testing.T) {
	xs, ys := square(0, 0, 100, 100)
	// an irregular pentagon, more interesting than a square for rotation checks.
	xs = []int32{0, 80, 120, 60, -40}
	ys = []int32{0, -20, 60, 140, 70}

	queryPoints := [][2]int32{
		{40, 40}, {0, 0}, {-40, 70}, {200, 200}, {60, -5}, {100, 100},
	}

	n := len(xs)
	base := make([]bool, len(queryPoints))
	for i, q := range queryPoints {
		base[i] = insidePolygon(q[0], q[1], xs, ys)
	}

	for k := 1; k < n; k++ {
		rxs := make([]int32, n)
		rys := make([]int32, n)
		for i := 0; i < n; i++ {
			rxs[i] = xs[(i+k)%n]
			rys[i] = ys[(i+k)%n]
		}
		for i, q := range queryPoints {
			got := insidePolygon(q[0], q[1], rxs, rys)
			if got != base[i] {
				t.Errorf("rotation k=%d changed result for point %v: got %v, want %v", k, q, got, base[i])
			}
		}
	}
}

func TestInsidePolygonLargeMagnitude(t *testing.T) {
	// near the documented coordinate bounds (±180e7 / ±90e7): the cross
	// products in the PIP primitive must not overflow int64.
	const maxLng = 180 * 10_000_000
	const maxLat = 90 * 10_000_000
	xs := []int32{-maxLng, maxLng, maxLng, -maxLng}
	ys := []int32{-maxLat, -maxLat, maxLat, maxLat}

	if !insidePolygon(0, 0, xs, ys) {
		t.Error("expected (0,0) inside a polygon spanning the full valid coordinate range")
	}
	if insidePolygon(maxLng+1, maxLat+1, xs, ys) {
		t.Error("expected a point outside the max-magnitude polygon to be rejected")
	}
}
