package tzfinder

// insidePolygon is an integer ray-casting point-in-polygon test. xs/ys
// describe an unclosed ring (no duplicate point at the end; the edge from
// N-1 back to 0 is implicit). All arithmetic that could overflow a 32-bit
// product is done in int64, since scaled coordinates (±180e7 / ±90e7)
// exceed what fits in a 32-bit product.
//
// A point exactly on an edge or coincident with a vertex is classified as
// inside.
func insidePolygon(x, y int32, xs, ys []int32) bool {
	n := len(xs)
	inside := false

	x1, y1 := xs[n-1], ys[n-1]
	yGtY1 := y > y1

	for i := 0; i < n; i++ {
		x2, y2 := xs[i], ys[i]
		yGtY2 := y > y2

		// a point on the edge (x1,y1)-(x2,y2) is inside, whatever the ray
		// crossing count below would make of it.
		ex, ey := int64(x2)-int64(x1), int64(y2)-int64(y1)
		if ex*(int64(y)-int64(y1)) == ey*(int64(x)-int64(x1)) &&
			min(x1, x2) <= x && x <= max(x1, x2) && min(y1, y2) <= y && y <= max(y1, y2) {
			return true
		}

		if yGtY1 != yGtY2 {
			switch {
			case x1 < x && x2 < x:
				// edge strictly left of the query point: cannot cross the ray to the right
			case x1 >= x && x2 >= x:
				inside = !inside
			default:
				s1 := (int64(y2) - int64(y)) * (int64(x2) - int64(x1))
				s2 := (int64(y2) - int64(y1)) * (int64(x2) - int64(x))
				if yGtY1 {
					if s1 <= s2 {
						inside = !inside
					}
				} else {
					if s1 >= s2 {
						inside = !inside
					}
				}
			}
		}

		x1, y1 = x2, y2
		yGtY1 = yGtY2
	}

	return inside
}
