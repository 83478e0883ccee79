// Command tzbuild converts a GeoJSON FeatureCollection of timezone
// boundary polygons (one feature per boundary, a string property naming
// its zone) into the on-disk data directory layout the core engine reads.
// It is a thin offline tool, not part of the core's stability contract.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	h3 "github.com/uber/h3-go/v4"
	geom "github.com/peterstace/simplefeatures/geom"

	tzfinder "github.com/tzpoly/tzfinder"
	"github.com/tzpoly/tzfinder/internal/flatbuf/polygons"
	"github.com/tzpoly/tzfinder/internal/flatbuf/shortcuts"
	"github.com/tzpoly/tzfinder/internal/npyfile"
)

// ring is one decoded polygon ring in scaled-integer coordinates.
type ring struct {
	xs []int32
	ys []int32
}

// boundary is one parsed feature: its zone name, exterior ring, and holes.
type boundary struct {
	zone    string
	outer   ring
	holes   []ring
}

func main() {
	inputFile := flag.String("in", "timezones.geojson", "input GeoJSON FeatureCollection of timezone boundaries")
	outDir := flag.String("out", "tzdata", "output data directory")
	tzidProp := flag.String("tzid-prop", "tzid", "GeoJSON feature property naming the boundary's zone")
	dtypeFlag := flag.String("dtype", "", "zone id dtype: uint8 or uint16 (default from TIMEZONEFINDER_ZONE_ID_DTYPE)")
	flag.Parse()

	dtype := *dtypeFlag
	if dtype == "" {
		dtype = tzfinder.DefaultZoneIDDtype()
	}
	if dtype != "uint8" && dtype != "uint16" {
		log.Fatalf("invalid -dtype %q: must be uint8 or uint16", dtype)
	}

	raw, err := os.ReadFile(*inputFile)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}

	var fc geom.GeoJSONFeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		log.Fatalf("failed to parse geojson: %v", err)
	}

	boundaries, err := parseFeatures(fc, *tzidProp)
	if err != nil {
		log.Fatalf("failed to parse features: %v", err)
	}
	fmt.Printf("parsed %d boundaries\n", len(boundaries))

	zoneOf := make(map[string]int)
	var zoneNames []string
	for _, b := range boundaries {
		if _, ok := zoneOf[b.zone]; !ok {
			zoneOf[b.zone] = len(zoneNames)
			zoneNames = append(zoneNames, b.zone)
		}
	}

	sort.SliceStable(boundaries, func(i, j int) bool {
		return zoneOf[boundaries[i].zone] < zoneOf[boundaries[j].zone]
	})

	if err := os.MkdirAll(filepath.Join(*outDir, "boundaries"), 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(*outDir, "holes"), 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	zoneIDs := make([]int, len(boundaries))
	zonePositions := make([]int32, len(zoneNames)+1)
	for i, b := range boundaries {
		zoneIDs[i] = zoneOf[b.zone]
		zonePositions[zoneOf[b.zone]+1]++
	}
	for i := 1; i < len(zonePositions); i++ {
		zonePositions[i] += zonePositions[i-1]
	}

	if err := writeNames(filepath.Join(*outDir, "timezone_names.txt"), zoneNames); err != nil {
		log.Fatalf("failed to write timezone_names.txt: %v", err)
	}
	if err := npyfile.WriteInt32Vector(filepath.Join(*outDir, "zone_positions.npy"), zonePositions); err != nil {
		log.Fatalf("failed to write zone_positions.npy: %v", err)
	}
	if err := writeZoneIDs(filepath.Join(*outDir, "zone_ids.npy"), zoneIDs, dtype); err != nil {
		log.Fatalf("failed to write zone_ids.npy: %v", err)
	}

	holeRegistry := make(map[string][2]int)
	var holeRings []ring
	var boundaryRings []ring
	for bIdx, b := range boundaries {
		boundaryRings = append(boundaryRings, b.outer)
		if len(b.holes) > 0 {
			holeRegistry[fmt.Sprint(bIdx)] = [2]int{len(b.holes), len(holeRings)}
			holeRings = append(holeRings, b.holes...)
		}
	}

	if err := writeRingStore(filepath.Join(*outDir, "boundaries"), boundaryRings); err != nil {
		log.Fatalf("failed to write boundaries: %v", err)
	}
	if err := writeRingStore(filepath.Join(*outDir, "holes"), holeRings); err != nil {
		log.Fatalf("failed to write holes: %v", err)
	}

	holeJSON, err := json.Marshal(holeRegistry)
	if err != nil {
		log.Fatalf("failed to marshal hole registry: %v", err)
	}
	if err := os.WriteFile(filepath.Join(*outDir, "hole_registry.json"), holeJSON, 0o644); err != nil {
		log.Fatalf("failed to write hole_registry.json: %v", err)
	}

	if err := writeShortcuts(*outDir, boundaryRings, zoneIDs, dtype); err != nil {
		log.Fatalf("failed to build shortcut index: %v", err)
	}

	fmt.Printf("wrote data directory %s (%d zones, %d boundaries, %d holes)\n",
		*outDir, len(zoneNames), len(boundaries), len(holeRings))
}

func parseFeatures(fc geom.GeoJSONFeatureCollection, tzidProp string) ([]boundary, error) {
	var out []boundary
	for _, feat := range fc.Features {
		zoneVal, ok := feat.Properties[tzidProp]
		if !ok {
			return nil, fmt.Errorf("feature missing %q property", tzidProp)
		}
		zone := fmt.Sprintf("%v", zoneVal)

		switch feat.Geometry.Type() {
		case geom.TypePolygon:
			b, err := polygonToBoundary(zone, feat.Geometry.MustAsPolygon())
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		case geom.TypeMultiPolygon:
			mp := feat.Geometry.MustAsMultiPolygon()
			for i := 0; i < mp.NumPolygons(); i++ {
				b, err := polygonToBoundary(zone, mp.PolygonN(i))
				if err != nil {
					return nil, err
				}
				out = append(out, b)
			}
		default:
			return nil, fmt.Errorf("zone %s: unsupported geometry type %s", zone, feat.Geometry.Type())
		}
	}
	return out, nil
}

func polygonToBoundary(zone string, poly geom.Polygon) (boundary, error) {
	outer, err := lineStringToRing(poly.ExteriorRing())
	if err != nil {
		return boundary{}, fmt.Errorf("zone %s: %w", zone, err)
	}
	b := boundary{zone: zone, outer: outer}
	for i := 0; i < poly.NumInteriorRings(); i++ {
		hole, err := lineStringToRing(poly.InteriorRingN(i))
		if err != nil {
			return boundary{}, fmt.Errorf("zone %s hole %d: %w", zone, i, err)
		}
		b.holes = append(b.holes, hole)
	}
	return b, nil
}

// lineStringToRing converts a closed geom.LineString ring into the
// unclosed scaled-integer representation stored on disk (duplicate
// closing point dropped).
func lineStringToRing(ls geom.LineString) (ring, error) {
	seq := ls.Coordinates()
	n := seq.Length()
	if n > 0 {
		first := seq.GetXY(0)
		last := seq.GetXY(n - 1)
		if first == last {
			n--
		}
	}
	if n < 3 {
		return ring{}, fmt.Errorf("ring has fewer than 3 points")
	}

	r := ring{xs: make([]int32, n), ys: make([]int32, n)}
	for i := 0; i < n; i++ {
		xy := seq.GetXY(i)
		lng, lat, err := validateForBuild(xy.X, xy.Y)
		if err != nil {
			return ring{}, err
		}
		r.xs[i] = tzfinder.CoordToInt(lng)
		r.ys[i] = tzfinder.CoordToInt(lat)
	}
	return r, nil
}

func validateForBuild(lng, lat float64) (float64, float64, error) {
	if lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("longitude %v out of range", lng)
	}
	if lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("latitude %v out of range", lat)
	}
	return lng, lat, nil
}

func writeNames(path string, names []string) error {
	var buf []byte
	for _, name := range names {
		buf = append(buf, name...)
		buf = append(buf, '\n')
	}
	return os.WriteFile(path, buf, 0o644)
}

func writeZoneIDs(path string, zoneIDs []int, dtype string) error {
	if dtype == "uint8" {
		ids := make([]uint8, len(zoneIDs))
		for i, z := range zoneIDs {
			if z > 255 {
				return fmt.Errorf("zone id %d does not fit in uint8; use -dtype uint16", z)
			}
			ids[i] = uint8(z)
		}
		return npyfile.WriteZoneIDsUint8(path, ids)
	}
	ids := make([]uint16, len(zoneIDs))
	for i, z := range zoneIDs {
		ids[i] = uint16(z)
	}
	return npyfile.WriteZoneIDsUint16(path, ids)
}

func writeRingStore(dir string, rings []ring) error {
	flatCoords := make([][]int32, len(rings))
	xmin := make([]int32, len(rings))
	xmax := make([]int32, len(rings))
	ymin := make([]int32, len(rings))
	ymax := make([]int32, len(rings))

	for i, r := range rings {
		flat := make([]int32, 0, len(r.xs)*2)
		lo, hi := r.xs[0], r.xs[0]
		loy, hiy := r.ys[0], r.ys[0]
		for j := range r.xs {
			flat = append(flat, r.xs[j], r.ys[j])
			if r.xs[j] < lo {
				lo = r.xs[j]
			}
			if r.xs[j] > hi {
				hi = r.xs[j]
			}
			if r.ys[j] < loy {
				loy = r.ys[j]
			}
			if r.ys[j] > hiy {
				hiy = r.ys[j]
			}
		}
		flatCoords[i] = flat
		xmin[i], xmax[i], ymin[i], ymax[i] = lo, hi, loy, hiy
	}

	if err := os.WriteFile(filepath.Join(dir, "coordinates.fbs"), polygons.WriteCollection(flatCoords), 0o644); err != nil {
		return err
	}
	if err := npyfile.WriteInt32Vector(filepath.Join(dir, "xmin.npy"), xmin); err != nil {
		return err
	}
	if err := npyfile.WriteInt32Vector(filepath.Join(dir, "xmax.npy"), xmax); err != nil {
		return err
	}
	if err := npyfile.WriteInt32Vector(filepath.Join(dir, "ymin.npy"), ymin); err != nil {
		return err
	}
	return npyfile.WriteInt32Vector(filepath.Join(dir, "ymax.npy"), ymax)
}

const shortcutH3Res = 3

// writeShortcuts builds the HybridShortcutCollection by covering each
// boundary's ring with H3 cells at shortcutH3Res and grouping candidate
// boundary IDs per cell, ordering each cell's PolygonList so that the
// zone with the most candidate boundaries in that cell comes last (the
// "most common zone" rule the Finder's early exit at §4.6 relies on).
func writeShortcuts(outDir string, boundaries []ring, zoneIDs []int, dtype string) error {
	candidates := make(map[uint64][]int)
	for bID, b := range boundaries {
		loop := make([]h3.LatLng, len(b.xs))
		for i := range b.xs {
			loop[i] = h3.LatLng{Lat: tzfinder.IntToCoord(b.ys[i]), Lng: tzfinder.IntToCoord(b.xs[i])}
		}
		poly := h3.GeoPolygon{GeoLoop: loop}
		cells, err := h3.PolygonToCells(poly, shortcutH3Res)
		if err != nil {
			return fmt.Errorf("boundary %d: polygon to cells: %w", bID, err)
		}
		for _, cell := range cells {
			hex := uint64(cell)
			candidates[hex] = append(candidates[hex], bID)
		}
	}

	entries := make([]shortcuts.RawEntry, 0, len(candidates))
	for hex, ids := range candidates {
		if len(ids) == 1 {
			entries = append(entries, shortcuts.RawEntry{
				HexID:    hex,
				IsUnique: true,
				ZoneID:   uint32(zoneIDs[ids[0]]),
			})
			continue
		}

		counts := make(map[int]int)
		for _, id := range ids {
			counts[zoneIDs[id]]++
		}
		mostCommonZone, best := -1, -1
		for z, c := range counts {
			if c > best {
				mostCommonZone, best = z, c
			}
		}

		var rest, common []uint16
		for _, id := range ids {
			if zoneIDs[id] == mostCommonZone {
				common = append(common, uint16(id))
			} else {
				rest = append(rest, uint16(id))
			}
		}
		polyIDs := append(rest, common...)

		entries = append(entries, shortcuts.RawEntry{
			HexID:    hex,
			IsUnique: false,
			PolyIDs:  polyIDs,
		})
	}

	name := "hybrid_shortcuts_uint16.fbs"
	if dtype == "uint8" {
		name = "hybrid_shortcuts_uint8.fbs"
	}
	return os.WriteFile(filepath.Join(outDir, name), shortcuts.WriteCollection(entries), 0o644)
}
