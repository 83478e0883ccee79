package tzfinder

import "testing"

// TestFinderLightUniqueZone mirrors TestFinderUniqueZone but through the
// fast approximate path, which must agree with the full Finder whenever
// the shortcut entry is a UniqueZone.
func TestFinderLightUniqueZone(t *testing.T) {
	b := newFixtureBuilder(t)
	zoneID := b.zone("Europe/Berlin")
	b.addBoundary(zoneID, box(5, 45, 15, 55))
	b.uniqueShortcut(10, 50, zoneID)
	dir := b.build("uint16")

	full, err := Open(dir, BackingMapped)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer full.Close()

	light, err := OpenLight(dir)
	if err != nil {
		t.Fatalf("OpenLight: %v", err)
	}
	defer light.Close()

	wantFull, err := full.TimezoneAt(10, 50)
	if err != nil {
		t.Fatalf("Finder.TimezoneAt: %v", err)
	}
	gotLight, err := light.TimezoneAt(10, 50)
	if err != nil {
		t.Fatalf("FinderLight.TimezoneAt: %v", err)
	}
	if gotLight != wantFull || gotLight != "Europe/Berlin" {
		t.Errorf("FinderLight.TimezoneAt = %q, Finder.TimezoneAt = %q, want both Europe/Berlin", gotLight, wantFull)
	}

	if got := light.NumZones(); got != 1 {
		t.Errorf("NumZones() = %d, want 1", got)
	}
}

// TestFinderLightPolygonListMostCommon exercises the approximate path's
// PolygonList handling: it resolves to the zone of the *last* polygon ID
// with no PIP at all, even when that zone's boundary doesn't actually
// cover the query point.
func TestFinderLightPolygonListMostCommon(t *testing.T) {
	b := newFixtureBuilder(t)
	zoneA := b.zone("Africa/Zone_A")
	zoneB := b.zone("Asia/Zone_B")

	// boundaryA would actually win a PIP test; FinderLight must not care.
	boundaryA := b.addBoundary(zoneA, box(19, 19, 21, 21))
	boundaryB := b.addBoundary(zoneB, box(150, 70, 151, 71)) // far from the query point

	b.polygonListShortcut(20, 20, boundaryA, boundaryB)
	dir := b.build("uint16")

	light, err := OpenLight(dir)
	if err != nil {
		t.Fatalf("OpenLight: %v", err)
	}
	defer light.Close()

	got, err := light.TimezoneAt(20, 20)
	if err != nil || got != "Asia/Zone_B" {
		t.Errorf("FinderLight.TimezoneAt = %q, %v, want Asia/Zone_B (last polygon id, no PIP)", got, err)
	}
}

// TestFinderLightNoShortcutEntry mirrors TestFinderNoShortcutEntry.
func TestFinderLightNoShortcutEntry(t *testing.T) {
	b := newFixtureBuilder(t)
	zoneID := b.zone("Europe/Berlin")
	b.addBoundary(zoneID, box(5, 45, 15, 55))
	b.uniqueShortcut(10, 50, zoneID)
	dir := b.build("uint16")

	light, err := OpenLight(dir)
	if err != nil {
		t.Fatalf("OpenLight: %v", err)
	}
	defer light.Close()

	got, err := light.TimezoneAt(-150, -60)
	if err != nil || got != "" {
		t.Errorf("FinderLight.TimezoneAt(far point) = %q, %v, want empty", got, err)
	}
}

// TestFinderLightOutOfRange mirrors TestFinderOutOfRange.
func TestFinderLightOutOfRange(t *testing.T) {
	b := newFixtureBuilder(t)
	zoneID := b.zone("Europe/Berlin")
	b.addBoundary(zoneID, box(5, 45, 15, 55))
	b.uniqueShortcut(10, 50, zoneID)
	dir := b.build("uint16")

	light, err := OpenLight(dir)
	if err != nil {
		t.Fatalf("OpenLight: %v", err)
	}
	defer light.Close()

	_, err = light.TimezoneAt(0, 90.1)
	if err == nil {
		t.Fatal("expected OutOfRange error for latitude 90.1")
	}
	if terr, ok := err.(*Error); !ok || terr.Kind != KindOutOfRange {
		t.Errorf("error = %v, want KindOutOfRange", err)
	}
}

// TestFinderLightCloseIsNoOp: FinderLight holds no resources after open
// (no PolygonStore/HoleRegistry is ever opened), so Close must always
// succeed, repeatedly.
func TestFinderLightCloseIsNoOp(t *testing.T) {
	b := newFixtureBuilder(t)
	zoneID := b.zone("Europe/Berlin")
	b.addBoundary(zoneID, box(5, 45, 15, 55))
	b.uniqueShortcut(10, 50, zoneID)
	dir := b.build("uint16")

	light, err := OpenLight(dir)
	if err != nil {
		t.Fatalf("OpenLight: %v", err)
	}
	if err := light.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := light.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
