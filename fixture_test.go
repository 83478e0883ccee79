package tzfinder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/tzpoly/tzfinder/internal/flatbuf/polygons"
	"github.com/tzpoly/tzfinder/internal/flatbuf/shortcuts"
	"github.com/tzpoly/tzfinder/internal/npyfile"
)

// fixtureBuilder assembles a minimal but structurally valid on-disk data
// directory in memory, then writes it out with the same encoders the
// production readers consume (npyfile, internal/flatbuf/*). This mirrors
// cmd/tzbuild's own output path, kept small and hand-assembled here so each
// test can exercise one specific Finder behavior without pulling in a real
// tzdata GeoJSON file.
type fixtureBuilder struct {
	t   *testing.T
	dir string

	zoneNames []string

	boundaryRings [][2][]int32 // [xs, ys] per boundary, in declaration order
	boundaryZone  []int

	holeRings [][2][]int32
	holesOf   map[int][2]int // boundary id -> [count, firstHoleID]

	shortcuts []shortcuts.RawEntry
}

func newFixtureBuilder(t *testing.T) *fixtureBuilder {
	return &fixtureBuilder{
		t:       t,
		dir:     t.TempDir(),
		holesOf: make(map[int][2]int),
	}
}

// zone registers a zone name (if new) and returns its zone ID.
func (b *fixtureBuilder) zone(name string) int {
	for i, n := range b.zoneNames {
		if n == name {
			return i
		}
	}
	b.zoneNames = append(b.zoneNames, name)
	return len(b.zoneNames) - 1
}

// ring converts a list of (lng, lat) degree pairs (no duplicate closing
// point) into the scaled-integer unclosed ring stored on disk.
func ring(points [][2]float64) [2][]int32 {
	xs := make([]int32, len(points))
	ys := make([]int32, len(points))
	for i, p := range points {
		xs[i] = coord2int(p[0])
		ys[i] = coord2int(p[1])
	}
	return [2][]int32{xs, ys}
}

// box builds a rectangular ring from opposite corners, in degrees.
func box(lng0, lat0, lng1, lat1 float64) [2][]int32 {
	return ring([][2]float64{
		{lng0, lat0}, {lng1, lat0}, {lng1, lat1}, {lng0, lat1},
	})
}

// addBoundary appends a boundary ring owned by zone and returns its boundary ID.
func (b *fixtureBuilder) addBoundary(zoneID int, r [2][]int32) int {
	id := len(b.boundaryRings)
	b.boundaryRings = append(b.boundaryRings, r)
	b.boundaryZone = append(b.boundaryZone, zoneID)
	return id
}

// addHole appends a hole ring excluded from boundary b.
func (b *fixtureBuilder) addHole(boundaryID int, r [2][]int32) {
	id := len(b.holeRings)
	b.holeRings = append(b.holeRings, r)
	entry := b.holesOf[boundaryID]
	if entry[0] == 0 {
		entry[1] = id
	}
	entry[0]++
	b.holesOf[boundaryID] = entry
}

// uniqueShortcut registers a UniqueZone shortcut entry for the H3 cell
// covering (lng, lat).
func (b *fixtureBuilder) uniqueShortcut(lng, lat float64, zoneID int) {
	hex, err := h3CellForPoint(lng, lat)
	if err != nil {
		b.t.Fatalf("h3CellForPoint: %v", err)
	}
	b.shortcuts = append(b.shortcuts, shortcuts.RawEntry{HexID: hex, IsUnique: true, ZoneID: uint32(zoneID)})
}

// polygonListShortcut registers a PolygonList shortcut entry for the H3
// cell covering (lng, lat), with boundaryIDs in the given order (last
// entry is the "most common zone").
func (b *fixtureBuilder) polygonListShortcut(lng, lat float64, boundaryIDs ...int) {
	hex, err := h3CellForPoint(lng, lat)
	if err != nil {
		b.t.Fatalf("h3CellForPoint: %v", err)
	}
	ids := make([]uint16, len(boundaryIDs))
	for i, id := range boundaryIDs {
		ids[i] = uint16(id)
	}
	b.shortcuts = append(b.shortcuts, shortcuts.RawEntry{HexID: hex, IsUnique: false, PolyIDs: ids})
}

func bboxOf(r [2][]int32) (xmin, xmax, ymin, ymax int32) {
	xs, ys := r[0], r[1]
	xmin, xmax = xs[0], xs[0]
	ymin, ymax = ys[0], ys[0]
	for i := 1; i < len(xs); i++ {
		if xs[i] < xmin {
			xmin = xs[i]
		}
		if xs[i] > xmax {
			xmax = xs[i]
		}
		if ys[i] < ymin {
			ymin = ys[i]
		}
		if ys[i] > ymax {
			ymax = ys[i]
		}
	}
	return
}

func writeRingStore(t *testing.T, dir string, rings [][2][]int32) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	flat := make([][]int32, len(rings))
	xmin := make([]int32, len(rings))
	xmax := make([]int32, len(rings))
	ymin := make([]int32, len(rings))
	ymax := make([]int32, len(rings))
	for i, r := range rings {
		xs, ys := r[0], r[1]
		interleaved := make([]int32, 0, len(xs)*2)
		for j := range xs {
			interleaved = append(interleaved, xs[j], ys[j])
		}
		flat[i] = interleaved
		xmin[i], xmax[i], ymin[i], ymax[i] = bboxOf(r)
	}

	if err := os.WriteFile(filepath.Join(dir, "coordinates.fbs"), polygons.WriteCollection(flat), 0o644); err != nil {
		t.Fatalf("write coordinates.fbs: %v", err)
	}
	writeI32(t, filepath.Join(dir, "xmin.npy"), xmin)
	writeI32(t, filepath.Join(dir, "xmax.npy"), xmax)
	writeI32(t, filepath.Join(dir, "ymin.npy"), ymin)
	writeI32(t, filepath.Join(dir, "ymax.npy"), ymax)
}

func writeI32(t *testing.T, path string, data []int32) {
	t.Helper()
	if err := npyfile.WriteInt32Vector(path, data); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// build writes the full data directory and returns its path. dtype selects
// the zone-id width ("uint8" or "uint16").
func (b *fixtureBuilder) build(dtype string) string {
	t := b.t

	namesPath := filepath.Join(b.dir, "timezone_names.txt")
	var namesBuf []byte
	for _, n := range b.zoneNames {
		namesBuf = append(namesBuf, n...)
		namesBuf = append(namesBuf, '\n')
	}
	if err := os.WriteFile(namesPath, namesBuf, 0o644); err != nil {
		t.Fatalf("write timezone_names.txt: %v", err)
	}

	positions := make([]int32, len(b.zoneNames)+1)
	for _, z := range b.boundaryZone {
		positions[z+1]++
	}
	for i := 1; i < len(positions); i++ {
		positions[i] += positions[i-1]
	}
	// boundaryZone must already be sorted by zone for the contiguous-range
	// invariant to hold; the builder helpers above append in call order, so
	// callers must add boundaries zone-by-zone.
	writeI32(t, filepath.Join(b.dir, "zone_positions.npy"), positions)

	if dtype == "uint8" {
		ids := make([]uint8, len(b.boundaryZone))
		for i, z := range b.boundaryZone {
			ids[i] = uint8(z)
		}
		if err := npyfile.WriteZoneIDsUint8(filepath.Join(b.dir, "zone_ids.npy"), ids); err != nil {
			t.Fatalf("write zone_ids.npy: %v", err)
		}
	} else {
		ids := make([]uint16, len(b.boundaryZone))
		for i, z := range b.boundaryZone {
			ids[i] = uint16(z)
		}
		if err := npyfile.WriteZoneIDsUint16(filepath.Join(b.dir, "zone_ids.npy"), ids); err != nil {
			t.Fatalf("write zone_ids.npy: %v", err)
		}
	}

	writeRingStore(t, filepath.Join(b.dir, "boundaries"), b.boundaryRings)
	writeRingStore(t, filepath.Join(b.dir, "holes"), b.holeRings)

	holeJSON := make(map[string][2]int, len(b.holesOf))
	for bID, entry := range b.holesOf {
		holeJSON[strconv.Itoa(bID)] = entry
	}
	raw, err := json.Marshal(holeJSON)
	if err != nil {
		t.Fatalf("marshal hole_registry.json: %v", err)
	}
	if err := os.WriteFile(filepath.Join(b.dir, "hole_registry.json"), raw, 0o644); err != nil {
		t.Fatalf("write hole_registry.json: %v", err)
	}

	name := "hybrid_shortcuts_uint16.fbs"
	if dtype == "uint8" {
		name = "hybrid_shortcuts_uint8.fbs"
	}
	if err := os.WriteFile(filepath.Join(b.dir, name), shortcuts.WriteCollection(b.shortcuts), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}

	return b.dir
}
