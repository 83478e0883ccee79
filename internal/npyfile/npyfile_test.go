package npyfile

import (
	"path/filepath"
	"testing"
)

func TestInt32VectorRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "v.npy")
	want := []int32{-180_000_000, -1, 0, 1, 180_000_000}

	if err := WriteInt32Vector(path, want); err != nil {
		t.Fatalf("WriteInt32Vector: %v", err)
	}
	got, err := ReadInt32Vector(path)
	if err != nil {
		t.Fatalf("ReadInt32Vector: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestZoneIDsUint8RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zone_ids.npy")
	want := []uint8{0, 1, 2, 255}

	if err := WriteZoneIDsUint8(path, want); err != nil {
		t.Fatalf("WriteZoneIDsUint8: %v", err)
	}
	got, width, err := ReadZoneIDs(path)
	if err != nil {
		t.Fatalf("ReadZoneIDs: %v", err)
	}
	if width != ZoneIDWidthUint8 {
		t.Errorf("width = %v, want ZoneIDWidthUint8", width)
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != uint16(want[i]) {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestZoneIDsUint16RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zone_ids.npy")
	want := []uint16{0, 1, 300, 65535}

	if err := WriteZoneIDsUint16(path, want); err != nil {
		t.Fatalf("WriteZoneIDsUint16: %v", err)
	}
	got, width, err := ReadZoneIDs(path)
	if err != nil {
		t.Fatalf("ReadZoneIDs: %v", err)
	}
	if width != ZoneIDWidthUint16 {
		t.Errorf("width = %v, want ZoneIDWidthUint16", width)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
