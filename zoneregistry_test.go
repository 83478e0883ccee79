package tzfinder

import "testing"

func TestZoneRegistry(t *testing.T) {
	b := newFixtureBuilder(t)
	berlin := b.zone("Europe/Berlin")
	tokyo := b.zone("Asia/Tokyo")
	b.addBoundary(berlin, box(5, 45, 15, 55))
	b.addBoundary(berlin, box(16, 45, 17, 46)) // a second Berlin boundary (exclave)
	b.addBoundary(tokyo, box(135, 30, 145, 40))
	b.uniqueShortcut(10, 50, berlin) // shortcut index is irrelevant here; openZoneRegistry never reads it
	dir := b.build("uint16")

	zones, err := openZoneRegistry(dir)
	if err != nil {
		t.Fatalf("openZoneRegistry: %v", err)
	}

	if zones.numZones() != 2 {
		t.Fatalf("numZones() = %d, want 2", zones.numZones())
	}

	name, err := zones.nameOf(berlin)
	if err != nil || name != "Europe/Berlin" {
		t.Errorf("nameOf(berlin) = %q, %v, want Europe/Berlin", name, err)
	}

	id, err := zones.idOfName("Asia/Tokyo")
	if err != nil || id != tokyo {
		t.Errorf("idOfName(Asia/Tokyo) = %d, %v, want %d", id, err, tokyo)
	}

	_, err = zones.idOfName("Nowhere/Nothing")
	if err == nil {
		t.Error("expected an error for an unknown zone name")
	}

	rng, err := zones.boundariesOf(berlin)
	if err != nil {
		t.Fatalf("boundariesOf(berlin): %v", err)
	}
	if rng.Start != 0 || rng.End != 2 {
		t.Errorf("boundariesOf(berlin) = %+v, want [0,2)", rng)
	}

	rng, err = zones.boundariesOf(tokyo)
	if err != nil {
		t.Fatalf("boundariesOf(tokyo): %v", err)
	}
	if rng.Start != 2 || rng.End != 3 {
		t.Errorf("boundariesOf(tokyo) = %+v, want [2,3)", rng)
	}

	if _, err := zones.boundariesOf(99); err == nil {
		t.Error("expected an error for an out-of-range zone id")
	}
	if _, err := zones.nameOf(99); err == nil {
		t.Error("expected an error for an out-of-range zone id")
	}
}
