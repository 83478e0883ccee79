// Package geovalidate performs structural validation of boundary and hole
// rings at store-open time, surfacing malformed rings as the DataCorrupt
// error kind instead of letting them fail silently or panic during a
// later query.
//
// It reuses golang/geo's s2.Loop, the same ring representation the
// teacher's conversion.go builds via s2.LoopFromPoints, purely as a
// structural checker: s2.Loop.Validate catches degenerate and
// self-intersecting rings that the integer PIP primitive has no way to
// detect on its own.
package geovalidate

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// int2coordFactor mirrors fixedpoint.go's scale; kept local to avoid an
// import cycle back into the root package.
const int2coordFactor = 1e-7

// Ring validates one polygon ring given as parallel scaled-integer
// coordinate arrays (an unclosed ring). It returns a descriptive error if
// the ring cannot form a valid s2.Loop.
func Ring(xs, ys []int32) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("ring has mismatched xs/ys lengths: %d vs %d", len(xs), len(ys))
	}
	if len(xs) < 3 {
		return fmt.Errorf("ring has fewer than 3 points: %d", len(xs))
	}

	pts := make([]s2.Point, len(xs))
	for i := range xs {
		lng := float64(xs[i]) * int2coordFactor
		lat := float64(ys[i]) * int2coordFactor
		pts[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
	}

	loop := s2.LoopFromPoints(pts)
	if err := loop.Validate(); err != nil {
		return fmt.Errorf("invalid ring: %w", err)
	}
	return nil
}

// Polygon validates a boundary (or hole) ring together with its holes, all
// given as parallel scaled-integer coordinate arrays.
func Polygon(boundary [2][]int32, holes [][2][]int32) error {
	if err := Ring(boundary[0], boundary[1]); err != nil {
		return fmt.Errorf("boundary: %w", err)
	}
	for i, h := range holes {
		if err := Ring(h[0], h[1]); err != nil {
			return fmt.Errorf("hole %d: %w", i, err)
		}
	}
	return nil
}
