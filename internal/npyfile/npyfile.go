// Package npyfile reads and writes the per-polygon / per-zone vectors
// (bbox coordinates, zone IDs, zone positions) stored as plain .npy files,
// using the same gonpy library arvados/lightning uses in
// internal_examples/arvados-lightning/slicenumpy.go for its own numpy
// vector I/O.
package npyfile

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/kshedden/gonpy"
)

// nopCloser adapts a bufio.Writer (which only implements io.Writer) to the
// io.WriteCloser gonpy.NewWriter expects, the same trick slicenumpy.go uses.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// ReadInt32Vector reads a flat int32 vector (used for xmin/xmax/ymin/ymax
// and the coordinate-adjacent arrays) from an .npy file.
func ReadInt32Vector(path string) ([]int32, error) {
	r, err := gonpy.NewFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("open npy %s: %w", path, err)
	}
	data, err := r.GetInt32()
	if err != nil {
		return nil, fmt.Errorf("read npy %s: %w", path, err)
	}
	return data, nil
}

// WriteInt32Vector writes a flat int32 vector to an .npy file.
func WriteInt32Vector(path string, data []int32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create npy %s: %w", path, err)
	}
	defer f.Close()

	bufw := bufio.NewWriter(f)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return fmt.Errorf("new npy writer %s: %w", path, err)
	}
	npw.Shape = []int{len(data)}
	if err := npw.WriteInt32(data); err != nil {
		return fmt.Errorf("write npy %s: %w", path, err)
	}
	return bufw.Flush()
}

// ZoneIDWidth is the byte width of the stored zone-id dtype, authoritative
// for selecting the matching hybrid-shortcut FlatBuffer variant.
type ZoneIDWidth int

const (
	ZoneIDWidthUint8  ZoneIDWidth = 1
	ZoneIDWidthUint16 ZoneIDWidth = 2
)

// ReadZoneIDs reads zone_ids.npy, auto-detecting whether it was stored as
// uint8 or uint16, and returns the values widened to uint16 plus the
// detected width so callers can pick the matching hybrid shortcut file.
func ReadZoneIDs(path string) (ids []uint16, width ZoneIDWidth, err error) {
	r, err := gonpy.NewFileReader(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open npy %s: %w", path, err)
	}
	switch r.Dtype {
	case "<u1", "|u1", "u1":
		raw, err := r.GetUint8()
		if err != nil {
			return nil, 0, fmt.Errorf("read npy %s: %w", path, err)
		}
		ids = make([]uint16, len(raw))
		for i, v := range raw {
			ids[i] = uint16(v)
		}
		return ids, ZoneIDWidthUint8, nil
	case "<u2", "u2":
		raw, err := r.GetUint16()
		if err != nil {
			return nil, 0, fmt.Errorf("read npy %s: %w", path, err)
		}
		return raw, ZoneIDWidthUint16, nil
	default:
		return nil, 0, fmt.Errorf("unsupported zone_ids dtype %q in %s", r.Dtype, path)
	}
}

// WriteZoneIDsUint8 writes zone_ids.npy using the narrow uint8 dtype.
func WriteZoneIDsUint8(path string, ids []uint8) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create npy %s: %w", path, err)
	}
	defer f.Close()
	bufw := bufio.NewWriter(f)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return fmt.Errorf("new npy writer %s: %w", path, err)
	}
	npw.Shape = []int{len(ids)}
	if err := npw.WriteUint8(ids); err != nil {
		return fmt.Errorf("write npy %s: %w", path, err)
	}
	return bufw.Flush()
}

// WriteZoneIDsUint16 writes zone_ids.npy using the wide uint16 dtype.
func WriteZoneIDsUint16(path string, ids []uint16) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create npy %s: %w", path, err)
	}
	defer f.Close()
	bufw := bufio.NewWriter(f)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return fmt.Errorf("new npy writer %s: %w", path, err)
	}
	npw.Shape = []int{len(ids)}
	if err := npw.WriteUint16(ids); err != nil {
		return fmt.Errorf("write npy %s: %w", path, err)
	}
	return bufw.Flush()
}
