package tzfinder

import (
	"fmt"
	"os"
	"path/filepath"

	flatbuffers "github.com/google/flatbuffers/go"

	fbshortcuts "github.com/tzpoly/tzfinder/internal/flatbuf/shortcuts"
	"github.com/tzpoly/tzfinder/internal/npyfile"
)

// shortcutValueKind is the tagged-union discriminant for a shortcutEntry,
// modeled as a sum type rather than subclassing.
type shortcutValueKind int

const (
	shortcutUniqueZone shortcutValueKind = iota
	shortcutPolygonList
)

// shortcutEntry is the decoded form of a HybridShortcutEntry.
type shortcutEntry struct {
	Kind    shortcutValueKind
	ZoneID  int      // valid iff Kind == shortcutUniqueZone
	PolyIDs []uint16 // valid iff Kind == shortcutPolygonList
}

// hybridShortcutIndex is the loaded in-memory form of the shortcut file: a
// hash map keyed by H3 cell ID. Absence of a key means "no candidate
// polygons here".
type hybridShortcutIndex struct {
	entries map[uint64]shortcutEntry
}

// shortcutFileName picks the filename carrying the matching zone-ID width:
// the filename itself encodes the width.
func shortcutFileName(width npyfile.ZoneIDWidth) (string, error) {
	switch width {
	case npyfile.ZoneIDWidthUint8:
		return "hybrid_shortcuts_uint8.fbs", nil
	case npyfile.ZoneIDWidthUint16:
		return "hybrid_shortcuts_uint16.fbs", nil
	default:
		return "", fmt.Errorf("unsupported zone id width %d", width)
	}
}

// openHybridShortcutIndex reads the hybrid shortcut FlatBuffers file whose
// name matches width, and decodes every entry into the in-memory map.
// numBoundaries/numZones bound-check PolygonList IDs and UniqueZone IDs
// respectively at open time: an out-of-range index is DataCorrupt, not a
// query-time failure.
func openHybridShortcutIndex(dir string, width npyfile.ZoneIDWidth, numBoundaries, numZones int) (*hybridShortcutIndex, error) {
	name, err := shortcutFileName(width)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)
	maxZoneID := 0xFFFF
	if width == npyfile.ZoneIDWidthUint8 {
		maxZoneID = 0xFF
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErrorErr(fmt.Sprintf("read shortcut file %s", path), err)
	}
	if len(data) == 0 {
		return nil, dataCorruptErr(fmt.Sprintf("%s is empty", path))
	}

	coll := fbshortcuts.GetRootAsHybridShortcutCollection(data, 0)
	n := coll.EntriesLength()

	entries := make(map[uint64]shortcutEntry, n)
	var entry fbshortcuts.HybridShortcutEntry
	var uniqueZone fbshortcuts.UniqueZone
	var polyList fbshortcuts.PolygonList
	var valueTab flatbuffers.Table

	for i := 0; i < n; i++ {
		if !coll.Entries(&entry, i) {
			return nil, dataCorruptErr(fmt.Sprintf("%s: missing entry %d", path, i))
		}
		hexID := entry.HexId()

		switch entry.ValueType() {
		case fbshortcuts.ShortcutValueUniqueZone:
			if !entry.Value(&valueTab) {
				return nil, dataCorruptErr(fmt.Sprintf("%s: entry %d missing union payload", path, i))
			}
			uniqueZone.Init(valueTab.Bytes, valueTab.Pos)
			zoneID := int(uniqueZone.ZoneId())
			if zoneID > maxZoneID {
				return nil, dataCorruptErr(fmt.Sprintf("%s: entry %d zone id %d does not fit the width of %s", path, i, zoneID, name))
			}
			if zoneID < 0 || zoneID >= numZones {
				return nil, dataCorruptErr(fmt.Sprintf("%s: entry %d zone id %d out of range", path, i, zoneID))
			}
			entries[hexID] = shortcutEntry{Kind: shortcutUniqueZone, ZoneID: zoneID}

		case fbshortcuts.ShortcutValuePolygonList:
			if !entry.Value(&valueTab) {
				return nil, dataCorruptErr(fmt.Sprintf("%s: entry %d missing union payload", path, i))
			}
			polyList.Init(valueTab.Bytes, valueTab.Pos)
			ids := polyList.PolyIdsAsSlice()
			for _, id := range ids {
				if int(id) >= numBoundaries {
					return nil, dataCorruptErr(fmt.Sprintf(
						"%s: entry %d polygon id %d exceeds boundary count %d", path, i, id, numBoundaries))
				}
			}
			entries[hexID] = shortcutEntry{Kind: shortcutPolygonList, PolyIDs: ids}

		default:
			return nil, dataCorruptErr(fmt.Sprintf("%s: entry %d has no union value set", path, i))
		}
	}

	return &hybridShortcutIndex{entries: entries}, nil
}

// lookup returns the decoded entry for hexID and whether it was present.
func (idx *hybridShortcutIndex) lookup(hexID uint64) (shortcutEntry, bool) {
	e, ok := idx.entries[hexID]
	return e, ok
}
