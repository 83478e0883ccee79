// Package coordfile implements the two PolygonStore coordinate backings:
// Mapped, a zero-copy view over an mmap'd PolygonCollection FlatBuffer,
// and Resident, every polygon decoded once at open time into owned int32
// arrays. Both satisfy the same Accessor interface so the PIP primitive
// (pip.go, at the module root) never sees which one it's talking to.
//
// The mmap handling follows the same os.File-backed, cleanup-on-every-
// error-path shape as a bolt.Open store, using golang.org/x/sys/unix.Mmap
// directly rather than through a database layer.
package coordfile

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/tzpoly/tzfinder/internal/flatbuf/polygons"
)

// Accessor is the capability interface both backings implement; callers
// never branch on which one they hold.
type Accessor interface {
	Len() int
	CoordsOf(idx int) (xs, ys []int32)
	Close() error
}

// Mapped is a memory-mapped, zero-copy PolygonStore coordinate backing.
type Mapped struct {
	file *os.File
	data []byte
	coll *polygons.PolygonCollection
}

// OpenMapped mmaps path (a PolygonCollection FlatBuffer file) and wraps it
// for zero-copy coords_of access.
func OpenMapped(path string) (*Mapped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open coordinate file %s: %w", path, err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat coordinate file %s: %w", path, err)
	}
	size := int(st.Size())
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("coordinate file %s is empty", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap coordinate file %s: %w", path, err)
	}

	coll := polygons.GetRootAsPolygonCollection(data, 0)
	return &Mapped{file: f, data: data, coll: coll}, nil
}

func (m *Mapped) Len() int { return m.coll.PolygonsLength() }

// CoordsOf returns xs/ys views built from the mapping. The coordinate
// vector is stored interleaved ([x0, y0, x1, y1, ...]), so de-interleaving
// still requires copying into two owned arrays even in the Mapped
// backing; only the read from the mapping itself is zero-copy.
func (m *Mapped) CoordsOf(idx int) (xs, ys []int32) {
	var poly polygons.Polygon
	if !m.coll.Polygons(&poly, idx) {
		return nil, nil
	}
	off, n := poly.CoordsOffset()
	if n == 0 {
		return nil, nil
	}
	buf := poly.Bytes()
	flat := unsafe.Slice((*int32)(unsafe.Pointer(&buf[off])), n)
	half := n / 2
	xs = make([]int32, half)
	ys = make([]int32, half)
	for i := 0; i < half; i++ {
		xs[i] = flat[2*i]
		ys[i] = flat[2*i+1]
	}
	return xs, ys
}

func (m *Mapped) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	if cerr := m.file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("close mapped coordinate file: %w", err)
	}
	return nil
}

// Resident is a fully in-memory PolygonStore coordinate backing: every
// polygon is decoded once, at open time, into owned int32 pairs.
type Resident struct {
	xs [][]int32
	ys [][]int32
}

// OpenResident reads path (a PolygonCollection FlatBuffer file) fully into
// memory and decodes every polygon up front.
func OpenResident(path string) (*Resident, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read coordinate file %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("coordinate file %s is empty", path)
	}

	coll := polygons.GetRootAsPolygonCollection(data, 0)
	count := coll.PolygonsLength()
	r := &Resident{
		xs: make([][]int32, count),
		ys: make([][]int32, count),
	}

	var poly polygons.Polygon
	for i := 0; i < count; i++ {
		if !coll.Polygons(&poly, i) {
			return nil, fmt.Errorf("coordinate file %s: missing polygon %d", path, i)
		}
		flat := poly.CoordsAsSlice()
		half := len(flat) / 2
		xs := make([]int32, half)
		ys := make([]int32, half)
		for j := 0; j < half; j++ {
			xs[j] = flat[2*j]
			ys[j] = flat[2*j+1]
		}
		r.xs[i] = xs
		r.ys[i] = ys
	}
	return r, nil
}

func (r *Resident) Len() int { return len(r.xs) }

func (r *Resident) CoordsOf(idx int) (xs, ys []int32) {
	if idx < 0 || idx >= len(r.xs) {
		return nil, nil
	}
	return r.xs[idx], r.ys[idx]
}

func (r *Resident) Close() error { return nil }
