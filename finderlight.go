package tzfinder

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tzpoly/tzfinder/internal/npyfile"
)

// FinderLight is the fast approximate variant: it never opens the
// PolygonStore or HoleRegistry at all — only the ZoneRegistry and the
// shortcut index are needed, since no PIP or hole check is ever performed.
type FinderLight struct {
	// HandleID identifies this opened handle for diagnostics, as Finder.HandleID does.
	HandleID uuid.UUID

	zones           *zoneRegistry
	shortcuts       *hybridShortcutIndex
	boundaryZoneIDs []uint16
}

// OpenLight builds a FinderLight over the same data directory layout as
// Finder, but skips loading boundary/hole coordinates and bboxes entirely.
func OpenLight(dir string) (*FinderLight, error) {
	zones, err := openZoneRegistry(dir)
	if err != nil {
		return nil, err
	}

	zoneIDs, width, err := npyfile.ReadZoneIDs(filepath.Join(dir, "zone_ids.npy"))
	if err != nil {
		return nil, ioErrorErr("read zone_ids.npy", err)
	}

	shortcuts, err := openHybridShortcutIndex(dir, width, len(zoneIDs), zones.numZones())
	if err != nil {
		return nil, err
	}

	return &FinderLight{HandleID: uuid.New(), zones: zones, shortcuts: shortcuts, boundaryZoneIDs: zoneIDs}, nil
}

// Close is a no-op: FinderLight holds no file handles or mappings after
// open, but is provided for symmetry with Finder and io.Closer callers.
func (f *FinderLight) Close() error { return nil }

// TimezoneAt resolves a UniqueZone entry directly; a PolygonList entry
// resolves to the zone of its last (most common) polygon ID, with no PIP
// or hole check at all.
func (f *FinderLight) TimezoneAt(lng, lat float64) (string, error) {
	lng, lat, err := validateCoordinates(lng, lat)
	if err != nil {
		return "", err
	}
	hexID, err := h3CellForPoint(lng, lat)
	if err != nil {
		return "", err
	}
	entry, ok := f.shortcuts.lookup(hexID)
	if !ok {
		return "", nil
	}

	switch entry.Kind {
	case shortcutUniqueZone:
		return f.zones.nameOf(entry.ZoneID)
	case shortcutPolygonList:
		if len(entry.PolyIDs) == 0 {
			return "", nil
		}
		// The list is ordered by popularity; the last entry is the "most
		// common" zone, resolved without decoding any boundary.
		lastID := entry.PolyIDs[len(entry.PolyIDs)-1]
		return f.zones.nameOf(int(f.zoneIDForBoundary(lastID)))
	default:
		return "", nil
	}
}

// NumZones reports how many timezones are known.
func (f *FinderLight) NumZones() int { return f.zones.numZones() }

// zoneIDForBoundary looks up the zone ID for boundary b in the per-boundary
// table FinderLight reads from zone_ids.npy at open time, the same file
// Finder reads; FinderLight never opens a PolygonStore.
func (f *FinderLight) zoneIDForBoundary(b uint16) uint16 {
	return f.boundaryZoneIDs[b]
}
