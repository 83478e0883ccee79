package tzfinder

import (
	"fmt"
	"path/filepath"

	"github.com/tzpoly/tzfinder/internal/coordfile"
	"github.com/tzpoly/tzfinder/internal/geovalidate"
	"github.com/tzpoly/tzfinder/internal/npyfile"
)

// backingMode selects how a polygonStore accesses its coordinate data:
// Mapped is zero-copy over an mmap, Resident decodes everything once at
// open time. Both satisfy coordfile.Accessor.
type backingMode int

const (
	// BackingMapped memory-maps the coordinate file.
	BackingMapped backingMode = iota
	// BackingResident decodes every polygon into owned memory at open time.
	BackingResident
)

// polygonStore is the random-access container over all boundary (or hole)
// polygons: coordinates plus axis-aligned bounding boxes, behind a single
// coords_of/bbox_of/len/pip capability surface regardless of backing mode.
type polygonStore struct {
	coords coordfile.Accessor
	xmin   []int32
	xmax   []int32
	ymin   []int32
	ymax   []int32
}

// openPolygonStore opens the coordinate file and the four bbox vectors
// that live alongside it in dir, using the requested backing mode. Rings
// are structurally validated against geovalidate before being trusted by
// the PIP primitive; a malformed ring is DataCorrupt, not a panic.
func openPolygonStore(dir string, mode backingMode, validate bool) (*polygonStore, error) {
	coordsPath := filepath.Join(dir, "coordinates.fbs")

	var acc coordfile.Accessor
	var err error
	switch mode {
	case BackingMapped:
		acc, err = coordfile.OpenMapped(coordsPath)
	case BackingResident:
		acc, err = coordfile.OpenResident(coordsPath)
	default:
		return nil, fmt.Errorf("unknown polygon store backing mode %d", mode)
	}
	if err != nil {
		return nil, ioErrorErr(fmt.Sprintf("open coordinate file under %s", dir), err)
	}

	xmin, err := npyfile.ReadInt32Vector(filepath.Join(dir, "xmin.npy"))
	if err != nil {
		acc.Close()
		return nil, ioErrorErr("read xmin.npy", err)
	}
	xmax, err := npyfile.ReadInt32Vector(filepath.Join(dir, "xmax.npy"))
	if err != nil {
		acc.Close()
		return nil, ioErrorErr("read xmax.npy", err)
	}
	ymin, err := npyfile.ReadInt32Vector(filepath.Join(dir, "ymin.npy"))
	if err != nil {
		acc.Close()
		return nil, ioErrorErr("read ymin.npy", err)
	}
	ymax, err := npyfile.ReadInt32Vector(filepath.Join(dir, "ymax.npy"))
	if err != nil {
		acc.Close()
		return nil, ioErrorErr("read ymax.npy", err)
	}

	n := acc.Len()
	if len(xmin) != n || len(xmax) != n || len(ymin) != n || len(ymax) != n {
		acc.Close()
		return nil, dataCorruptErr(fmt.Sprintf(
			"%s: bbox vector length mismatch (polygons=%d xmin=%d xmax=%d ymin=%d ymax=%d)",
			dir, n, len(xmin), len(xmax), len(ymin), len(ymax)))
	}

	store := &polygonStore{coords: acc, xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax}

	if validate {
		for idx := 0; idx < n; idx++ {
			xs, ys := acc.CoordsOf(idx)
			if err := geovalidate.Ring(xs, ys); err != nil {
				store.Close()
				return nil, dataCorruptErr(fmt.Sprintf("%s: polygon %d: %v", dir, idx, err))
			}
		}
	}

	return store, nil
}

func (s *polygonStore) len() int { return s.coords.Len() }

func (s *polygonStore) coordsOf(idx int) (xs, ys []int32) { return s.coords.CoordsOf(idx) }

func (s *polygonStore) bboxContains(idx int, x, y int32) bool {
	return x >= s.xmin[idx] && x <= s.xmax[idx] && y >= s.ymin[idx] && y <= s.ymax[idx]
}

func (s *polygonStore) pip(idx int, x, y int32) bool {
	xs, ys := s.coords.CoordsOf(idx)
	return insidePolygon(x, y, xs, ys)
}

func (s *polygonStore) pipChecked(idx int, x, y int32) bool {
	return s.bboxContains(idx, x, y) && s.pip(idx, x, y)
}

// inAny short-circuits on the first polygon ID in ids that contains (x, y).
func (s *polygonStore) inAny(ids []int, x, y int32) bool {
	for _, id := range ids {
		if s.pipChecked(id, x, y) {
			return true
		}
	}
	return false
}

func (s *polygonStore) Close() error {
	if s.coords == nil {
		return nil
	}
	err := s.coords.Close()
	s.coords = nil
	return err
}
