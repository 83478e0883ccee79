// Package polygons is hand-written in the style flatc would generate for
// the PolygonCollection schema: a vector of polygons, each holding a
// single int32 vector of interleaved coordinates in Fortran order
// [x0, y0, x1, y1, ...], reshaped to (2, N) — i.e. parallel xs/ys arrays —
// by the caller.
//
// The shape of this code (Table embedding, Start/End/Vector builder
// functions, GetRootAs entry points) follows
// github.com/google/flatbuffers/go as used by evanoberholster/timezoneLookup's
// generated fb package.
package polygons

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// Polygon is a single polygon's flat coordinate vector.
type Polygon struct {
	_tab flatbuffers.Table
}

func GetRootAsPolygon(buf []byte, offset flatbuffers.UOffsetT) *Polygon {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &Polygon{}
	x.Init(buf, n+offset)
	return x
}

func (rcv *Polygon) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *Polygon) Table() flatbuffers.Table { return rcv._tab }

// Coords returns the j-th value of the interleaved [x0, y0, x1, y1, ...] vector.
func (rcv *Polygon) Coords(j int) int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetInt32(a + flatbuffers.UOffsetT(j*4))
	}
	return 0
}

func (rcv *Polygon) CoordsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

// CoordsAsSlice copies out the full interleaved coordinate vector.
func (rcv *Polygon) CoordsAsSlice() []int32 {
	n := rcv.CoordsLength()
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = rcv.Coords(i)
	}
	return out
}

// CoordsOffset returns the absolute byte offset into the backing buffer
// where the coordinate vector's int32 elements begin, and how many
// elements it holds. Used by the Mapped PolygonStore backing to build a
// zero-copy []int32 view directly over the mmap without going through
// Coords/CoordsAsSlice.
func (rcv *Polygon) CoordsOffset() (offset int, n int) {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o == 0 {
		return 0, 0
	}
	a := rcv._tab.Vector(o)
	return int(a), rcv._tab.VectorLen(o)
}

// Bytes exposes the backing buffer so a zero-copy slice can be built over
// the bytes CoordsOffset points into.
func (rcv *Polygon) Bytes() []byte { return rcv._tab.Bytes }

func PolygonStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func PolygonAddCoords(builder *flatbuffers.Builder, coords flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, coords, 0)
}

func PolygonStartCoordsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func PolygonEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

// PolygonCollection is the root table: a vector of Polygon.
type PolygonCollection struct {
	_tab flatbuffers.Table
}

func GetRootAsPolygonCollection(buf []byte, offset flatbuffers.UOffsetT) *PolygonCollection {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &PolygonCollection{}
	x.Init(buf, n+offset)
	return x
}

func (rcv *PolygonCollection) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *PolygonCollection) Polygons(obj *Polygon, j int) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		x := rcv._tab.Vector(o)
		x += flatbuffers.UOffsetT(j) * 4
		x = rcv._tab.Indirect(x)
		obj.Init(rcv._tab.Bytes, x)
		return true
	}
	return false
}

func (rcv *PolygonCollection) PolygonsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func PolygonCollectionStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func PolygonCollectionAddPolygons(builder *flatbuffers.Builder, polygons flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, polygons, 0)
}

func PolygonCollectionStartPolygonsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func PolygonCollectionEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

// WriteCollection encodes a set of polygons (each a flat interleaved
// [x0, y0, x1, y1, ...] coordinate slice, length 2N) into a
// PolygonCollection FlatBuffer.
func WriteCollection(polys [][]int32) []byte {
	builder := flatbuffers.NewBuilder(1024)

	offsets := make([]flatbuffers.UOffsetT, len(polys))
	for i, coords := range polys {
		PolygonStartCoordsVector(builder, len(coords))
		for j := len(coords) - 1; j >= 0; j-- {
			builder.PrependInt32(coords[j])
		}
		coordsOff := builder.EndVector(len(coords))

		PolygonStart(builder)
		PolygonAddCoords(builder, coordsOff)
		offsets[i] = PolygonEnd(builder)
	}

	PolygonCollectionStartPolygonsVector(builder, len(offsets))
	for i := len(offsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(offsets[i])
	}
	polysOff := builder.EndVector(len(offsets))

	PolygonCollectionStart(builder)
	PolygonCollectionAddPolygons(builder, polysOff)
	root := PolygonCollectionEnd(builder)

	builder.Finish(root)
	return builder.FinishedBytes()
}
