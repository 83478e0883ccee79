package tzfinder

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/peterstace/simplefeatures/geom"

	"github.com/tzpoly/tzfinder/internal/npyfile"
)

// Finder is the full query engine: exact point-in-polygon resolution with
// hole support, backed by a mapped or resident PolygonStore. A Finder is
// single-threaded per handle; it holds mmap'd regions for its lifetime and
// Close is idempotent.
type Finder struct {
	// HandleID identifies this opened handle for diagnostics (e.g. the CLI's
	// verbose output); it has no bearing on lookup results.
	HandleID uuid.UUID

	zones      *zoneRegistry
	boundaries *polygonStore
	holes      *holeRegistry
	shortcuts  *hybridShortcutIndex
	zoneIDs    []uint16 // per-boundary zone ID, length == boundaries.len()
	closed     bool
}

// Open builds a Finder over the data directory layout, using the requested
// PolygonStore backing mode for both boundaries and holes. Every structural
// invariant is checked at open time; a failure here unwinds every resource
// already acquired.
func Open(dir string, mode backingMode) (*Finder, error) {
	zones, err := openZoneRegistry(dir)
	if err != nil {
		return nil, err
	}

	zoneIDs, width, err := npyfile.ReadZoneIDs(filepath.Join(dir, "zone_ids.npy"))
	if err != nil {
		return nil, ioErrorErr("read zone_ids.npy", err)
	}

	boundaries, err := openPolygonStore(filepath.Join(dir, "boundaries"), mode, true)
	if err != nil {
		return nil, err
	}
	if len(zoneIDs) != boundaries.len() {
		boundaries.Close()
		return nil, dataCorruptErr(fmt.Sprintf(
			"zone_ids.npy has %d entries, boundaries store has %d polygons", len(zoneIDs), boundaries.len()))
	}
	for b, z := range zoneIDs {
		if int(z) >= zones.numZones() {
			boundaries.Close()
			return nil, dataCorruptErr(fmt.Sprintf("boundary %d has zone id %d, but only %d zones exist", b, z, zones.numZones()))
		}
		rng, err := zones.boundariesOf(int(z))
		if err != nil {
			boundaries.Close()
			return nil, err
		}
		if b < rng.Start || b >= rng.End {
			boundaries.Close()
			return nil, dataCorruptErr(fmt.Sprintf(
				"boundary %d's zone id %d disagrees with zone_positions range [%d,%d)", b, z, rng.Start, rng.End))
		}
	}

	holes, err := openHoleRegistry(dir, mode, true)
	if err != nil {
		boundaries.Close()
		return nil, err
	}

	shortcuts, err := openHybridShortcutIndex(dir, width, boundaries.len(), zones.numZones())
	if err != nil {
		boundaries.Close()
		holes.Close()
		return nil, err
	}

	return &Finder{
		HandleID:   uuid.New(),
		zones:      zones,
		boundaries: boundaries,
		holes:      holes,
		shortcuts:  shortcuts,
		zoneIDs:    zoneIDs,
	}, nil
}

// Close releases the mmap'd regions and file handles. Double close is a
// no-op.
func (f *Finder) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	err := f.boundaries.Close()
	if herr := f.holes.Close(); err == nil {
		err = herr
	}
	return err
}

// insideOfBoundary bbox-rejects boundary b, then excludes points inside any
// of its holes, then falls back to full PIP.
func (f *Finder) insideOfBoundary(b int, x, y int32) bool {
	if !f.boundaries.bboxContains(b, x, y) {
		return false
	}
	if f.holes.anyHoleContains(b, x, y) {
		return false
	}
	return f.boundaries.pip(b, x, y)
}

// lookupCandidate validates the point and resolves its shortcut entry,
// shared by every Finder query method.
func (f *Finder) lookupCandidate(lng, lat float64) (shortcutEntry, int32, int32, bool, error) {
	lng, lat, err := validateCoordinates(lng, lat)
	if err != nil {
		return shortcutEntry{}, 0, 0, false, err
	}
	hexID, err := h3CellForPoint(lng, lat)
	if err != nil {
		return shortcutEntry{}, 0, 0, false, err
	}
	entry, ok := f.shortcuts.lookup(hexID)
	if !ok {
		return shortcutEntry{}, 0, 0, false, nil
	}
	x, y := coord2int(lng), coord2int(lat)
	return entry, x, y, true, nil
}

// TimezoneAt resolves the exact timezone containing (lng, lat), using the
// last-change early-exit optimization to avoid running PIP against every
// candidate when the trailing candidates are all the same zone.
func (f *Finder) TimezoneAt(lng, lat float64) (string, error) {
	entry, x, y, ok, err := f.lookupCandidate(lng, lat)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	if entry.Kind == shortcutUniqueZone {
		return f.zones.nameOf(entry.ZoneID)
	}

	ids := entry.PolyIDs
	if len(ids) == 0 {
		return "", nil
	}
	zs := make([]int, len(ids))
	for i, id := range ids {
		zs[i] = int(f.zoneIDs[id])
	}

	k := lastChangeIndex(zs)
	for i := 0; i < k; i++ {
		if f.insideOfBoundary(int(ids[i]), x, y) {
			return f.zones.nameOf(zs[i])
		}
	}
	return f.zones.nameOf(zs[len(zs)-1])
}

// TimezoneAtLand is TimezoneAt with ocean zones masked out to empty.
func (f *Finder) TimezoneAtLand(lng, lat float64) (string, error) {
	name, err := f.TimezoneAt(lng, lat)
	if err != nil || name == "" {
		return name, err
	}
	if isOceanTimezone(name) {
		return "", nil
	}
	return name, nil
}

// CertainTimezoneAt resolves the timezone with no early exit: every
// candidate is PIP-confirmed. For a UniqueZone entry, every boundary of
// that zone is enumerated via the ZoneRegistry and tried in order.
func (f *Finder) CertainTimezoneAt(lng, lat float64) (string, error) {
	entry, x, y, ok, err := f.lookupCandidate(lng, lat)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	if entry.Kind == shortcutUniqueZone {
		rng, err := f.zones.boundariesOf(entry.ZoneID)
		if err != nil {
			return "", err
		}
		for b := rng.Start; b < rng.End; b++ {
			if f.insideOfBoundary(b, x, y) {
				return f.zones.nameOf(entry.ZoneID)
			}
		}
		return "", nil
	}

	for _, id := range entry.PolyIDs {
		if f.insideOfBoundary(int(id), x, y) {
			return f.zones.nameOf(int(f.zoneIDs[id]))
		}
	}
	return "", nil
}

// UniqueTimezoneAt returns a result only when the shortcut cell is known
// to belong to a single zone outright; it never runs PIP.
func (f *Finder) UniqueTimezoneAt(lng, lat float64) (string, error) {
	entry, _, _, ok, err := f.lookupCandidate(lng, lat)
	if err != nil {
		return "", err
	}
	if !ok || entry.Kind != shortcutUniqueZone {
		return "", nil
	}
	return f.zones.nameOf(entry.ZoneID)
}

// NumZones reports how many timezones are known.
func (f *Finder) NumZones() int { return f.zones.numZones() }

// NumPolygons reports how many boundary polygons are known.
func (f *Finder) NumPolygons() int { return f.boundaries.len() }

// NumHoles reports how many hole polygons are known.
func (f *Finder) NumHoles() int { return f.holes.holes.len() }

// ZoneIDOf returns the zone ID owning boundary b.
func (f *Finder) ZoneIDOf(b int) (int, error) {
	if b < 0 || b >= len(f.zoneIDs) {
		return 0, invalidBoundaryIDErr(b)
	}
	return int(f.zoneIDs[b]), nil
}

// ZoneIDsOf returns the zone IDs owning each boundary in bs.
func (f *Finder) ZoneIDsOf(bs []int) ([]int, error) {
	out := make([]int, len(bs))
	for i, b := range bs {
		z, err := f.ZoneIDOf(b)
		if err != nil {
			return nil, err
		}
		out[i] = z
	}
	return out, nil
}

// ZoneNameFromID returns the zone name for zone ID z.
func (f *Finder) ZoneNameFromID(z int) (string, error) {
	return f.zones.nameOf(z)
}

// ZoneNameFromBoundaryID returns the zone name owning boundary b.
func (f *Finder) ZoneNameFromBoundaryID(b int) (string, error) {
	z, err := f.ZoneIDOf(b)
	if err != nil {
		return "", err
	}
	return f.ZoneNameFromID(z)
}

// GetGeometry enumerates a zone's boundary polygons and, for each, the
// boundary coordinates followed by each hole's coordinates, decoded to
// floating-point degrees. zone may be a zone name or, via GetGeometryByID,
// a zone ID.
func (f *Finder) GetGeometry(zone string) ([]PolygonGeometry, error) {
	id, err := f.zones.idOfName(zone)
	if err != nil {
		return nil, err
	}
	return f.GetGeometryByID(id)
}

// GetGeometryByID is GetGeometry addressed by zone ID instead of name.
func (f *Finder) GetGeometryByID(zoneID int) ([]PolygonGeometry, error) {
	rng, err := f.zones.boundariesOf(zoneID)
	if err != nil {
		return nil, err
	}

	out := make([]PolygonGeometry, 0, rng.End-rng.Start)
	for b := rng.Start; b < rng.End; b++ {
		geom := PolygonGeometry{}
		geom.BoundaryLng, geom.BoundaryLat = f.decodedCoordsOf(f.boundaries, b)

		hr := f.holes.holesOf(b)
		for h := hr.Start; h < hr.End; h++ {
			lng, lat := f.decodedCoordsOf(f.holes.holes, h)
			geom.HoleLng = append(geom.HoleLng, lng)
			geom.HoleLat = append(geom.HoleLat, lat)
		}
		out = append(out, geom)
	}
	return out, nil
}

// GetGeometryAsGeom is GetGeometry's output reshaped into a real
// simplefeatures geom.Geometry (a geom.Polygon for a single-boundary zone,
// a geom.MultiPolygon otherwise), for callers that want GeoJSON encoding
// rather than the plain coordinate-slice shapes GetGeometry returns. Each
// ring is closed and built from flat XY coordinate pairs via
// geom.NewSequence/geom.NewLineString.
func (f *Finder) GetGeometryAsGeom(zone string) (geom.Geometry, error) {
	polys, err := f.GetGeometry(zone)
	if err != nil {
		return geom.Geometry{}, err
	}

	var geomPolys []geom.Polygon
	for _, p := range polys {
		rings := []geom.LineString{closedRing(p.BoundaryLng, p.BoundaryLat)}
		for i := range p.HoleLng {
			rings = append(rings, closedRing(p.HoleLng[i], p.HoleLat[i]))
		}
		geomPolys = append(geomPolys, geom.NewPolygon(rings))
	}

	switch len(geomPolys) {
	case 0:
		return geom.NewPolygon(nil).AsGeometry(), nil
	case 1:
		return geomPolys[0].AsGeometry(), nil
	default:
		return geom.NewMultiPolygon(geomPolys).AsGeometry(), nil
	}
}

func closedRing(lng, lat []float64) geom.LineString {
	coords := make([]float64, 0, (len(lng)+1)*2)
	for i := range lng {
		coords = append(coords, lng[i], lat[i])
	}
	if len(lng) > 0 {
		coords = append(coords, lng[0], lat[0])
	}
	return geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
}

func (f *Finder) decodedCoordsOf(store *polygonStore, idx int) (lng, lat []float64) {
	xs, ys := store.coordsOf(idx)
	lng = make([]float64, len(xs))
	lat = make([]float64, len(ys))
	for i := range xs {
		lng[i] = int2coord(xs[i])
		lat[i] = int2coord(ys[i])
	}
	return lng, lat
}

// PolygonGeometry is one boundary's decoded geometry: the boundary ring
// plus each of its holes, all in floating-point degrees.
type PolygonGeometry struct {
	BoundaryLng []float64
	BoundaryLat []float64
	HoleLng     [][]float64
	HoleLat     [][]float64
}

// Points flattens BoundaryLng/BoundaryLat into (x, y) pairs, an
// alternate output shape for callers that want coordinate pairs directly.
func (g PolygonGeometry) Points() [][2]float64 {
	pts := make([][2]float64, len(g.BoundaryLng))
	for i := range g.BoundaryLng {
		pts[i] = [2]float64{g.BoundaryLng[i], g.BoundaryLat[i]}
	}
	return pts
}
