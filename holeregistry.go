package tzfinder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// holeRange is a half-open [start, end) range of hole IDs.
type holeRange struct {
	Start int
	End   int
}

// holeRegistry is the per-boundary hole-range table. Absence of a boundary
// ID in the map means zero holes.
type holeRegistry struct {
	ranges map[int]holeRange
	holes  *polygonStore
}

// rawHoleEntry is the on-disk shape of hole_registry.json: boundary ID
// (as a JSON string key) -> [count, first_hole_id].
type rawHoleEntry = [2]int

// openHoleRegistry reads hole_registry.json from dir and opens the hole
// coordinate/bbox store under dir/"holes".
func openHoleRegistry(dir string, mode backingMode, validate bool) (*holeRegistry, error) {
	path := filepath.Join(dir, "hole_registry.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErrorErr(fmt.Sprintf("read %s", path), err)
	}

	var parsed map[string]rawHoleEntry
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, dataCorruptErr(fmt.Sprintf("%s: invalid JSON: %v", path, err))
	}

	ranges := make(map[int]holeRange, len(parsed))
	for key, entry := range parsed {
		boundaryID, err := strconv.Atoi(key)
		if err != nil {
			return nil, dataCorruptErr(fmt.Sprintf("%s: non-integer boundary key %q", path, key))
		}
		count, first := entry[0], entry[1]
		if count < 0 || first < 0 {
			return nil, dataCorruptErr(fmt.Sprintf("%s: negative count/first for boundary %d", path, boundaryID))
		}
		ranges[boundaryID] = holeRange{Start: first, End: first + count}
	}

	holes, err := openPolygonStore(filepath.Join(dir, "holes"), mode, validate)
	if err != nil {
		return nil, err
	}

	return &holeRegistry{ranges: ranges, holes: holes}, nil
}

// holesOf returns the hole-ID range for boundary b, or the zero range if b
// has no holes.
func (r *holeRegistry) holesOf(b int) holeRange {
	return r.ranges[b]
}

// anyHoleContains reports whether any hole of boundary b contains (x, y).
func (r *holeRegistry) anyHoleContains(b int, x, y int32) bool {
	rng := r.holesOf(b)
	for id := rng.Start; id < rng.End; id++ {
		if r.holes.pipChecked(id, x, y) {
			return true
		}
	}
	return false
}

func (r *holeRegistry) Close() error {
	if r.holes == nil {
		return nil
	}
	return r.holes.Close()
}
