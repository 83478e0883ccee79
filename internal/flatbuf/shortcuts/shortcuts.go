// Package shortcuts is hand-written in the style flatc would generate for
// the HybridShortcutCollection schema: each entry maps an H3 cell ID to a
// tagged union, either a UniqueZone (a single zone ID) or a PolygonList
// (an ordered list of candidate boundary IDs).
//
// The zone ID is stored here at full uint32 width regardless of the
// on-disk dtype (uint8 vs uint16); the caller (shortcuts.go at the module
// root) is the one generic path parameterized by zone-ID width — it
// validates the width against the filename-selected dtype and rejects
// values that don't fit as DataCorrupt.
package shortcuts

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

type ShortcutValue byte

const (
	ShortcutValueNONE        ShortcutValue = 0
	ShortcutValueUniqueZone  ShortcutValue = 1
	ShortcutValuePolygonList ShortcutValue = 2
)

// UniqueZone -----------------------------------------------------------

type UniqueZone struct{ _tab flatbuffers.Table }

func (rcv *UniqueZone) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *UniqueZone) ZoneId() uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetUint32(o + rcv._tab.Pos)
	}
	return 0
}

func UniqueZoneStart(b *flatbuffers.Builder)                  { b.StartObject(1) }
func UniqueZoneAddZoneId(b *flatbuffers.Builder, v uint32)    { b.PrependUint32Slot(0, v, 0) }
func UniqueZoneEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

// PolygonList ------------------------------------------------------------

type PolygonList struct{ _tab flatbuffers.Table }

func (rcv *PolygonList) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *PolygonList) PolyIds(j int) uint16 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetUint16(a + flatbuffers.UOffsetT(j*2))
	}
	return 0
}

func (rcv *PolygonList) PolyIdsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *PolygonList) PolyIdsAsSlice() []uint16 {
	n := rcv.PolyIdsLength()
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = rcv.PolyIds(i)
	}
	return out
}

func PolygonListStart(b *flatbuffers.Builder) { b.StartObject(1) }
func PolygonListAddPolyIds(b *flatbuffers.Builder, v flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(0, v, 0)
}
func PolygonListStartPolyIdsVector(b *flatbuffers.Builder, n int) flatbuffers.UOffsetT {
	return b.StartVector(2, n, 2)
}
func PolygonListEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

// HybridShortcutEntry ----------------------------------------------------

type HybridShortcutEntry struct{ _tab flatbuffers.Table }

func (rcv *HybridShortcutEntry) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *HybridShortcutEntry) HexId() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *HybridShortcutEntry) ValueType() ShortcutValue {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return ShortcutValue(rcv._tab.GetByte(o + rcv._tab.Pos))
	}
	return ShortcutValueNONE
}

// Value initializes obj (a raw flatbuffers.Table) to point at the union
// payload; the caller re-Inits a UniqueZone or PolygonList over the same
// Bytes/Pos depending on ValueType(), matching the Python reader's
// `unique_zone.Init(value.Bytes, value.Pos)` pattern.
func (rcv *HybridShortcutEntry) Value(obj *flatbuffers.Table) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		rcv._tab.Union(obj, o)
		return true
	}
	return false
}

func HybridShortcutEntryStart(b *flatbuffers.Builder) { b.StartObject(3) }
func HybridShortcutEntryAddHexId(b *flatbuffers.Builder, v uint64) {
	b.PrependUint64Slot(0, v, 0)
}
func HybridShortcutEntryAddValueType(b *flatbuffers.Builder, v ShortcutValue) {
	b.PrependByteSlot(1, byte(v), 0)
}
func HybridShortcutEntryAddValue(b *flatbuffers.Builder, v flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(2, v, 0)
}
func HybridShortcutEntryEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

// HybridShortcutCollection ------------------------------------------------

type HybridShortcutCollection struct{ _tab flatbuffers.Table }

func GetRootAsHybridShortcutCollection(buf []byte, offset flatbuffers.UOffsetT) *HybridShortcutCollection {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &HybridShortcutCollection{}
	x.Init(buf, n+offset)
	return x
}

func (rcv *HybridShortcutCollection) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *HybridShortcutCollection) Entries(obj *HybridShortcutEntry, j int) bool {
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

func (rcv *HybridShortcutCollection) EntriesLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func HybridShortcutCollectionStart(b *flatbuffers.Builder) { b.StartObject(1) }
func HybridShortcutCollectionAddEntries(b *flatbuffers.Builder, v flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(0, v, 0)
}
func HybridShortcutCollectionStartEntriesVector(b *flatbuffers.Builder, n int) flatbuffers.UOffsetT {
	return b.StartVector(4, n, 4)
}
func HybridShortcutCollectionEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

// RawEntry is the writer-side input: either IsUnique (a UniqueZone entry)
// or a PolyIDs list (a PolygonList entry).
type RawEntry struct {
	HexID    uint64
	IsUnique bool
	ZoneID   uint32
	PolyIDs  []uint16
}

// WriteCollection builds the bit-exact HybridShortcutCollection FlatBuffer
// for a set of entries, following the Builder usage in
// evanoberholster/timezoneLookup's fb.Polygon.ToFB (NewBuilder, Start/End
// vector, Finish).
func WriteCollection(entries []RawEntry) []byte {
	builder := flatbuffers.NewBuilder(1024)

	entryOffsets := make([]flatbuffers.UOffsetT, len(entries))
	for i, e := range entries {
		var valueOff flatbuffers.UOffsetT
		var valueType ShortcutValue
		if e.IsUnique {
			UniqueZoneStart(builder)
			UniqueZoneAddZoneId(builder, e.ZoneID)
			valueOff = UniqueZoneEnd(builder)
			valueType = ShortcutValueUniqueZone
		} else {
			PolygonListStartPolyIdsVector(builder, len(e.PolyIDs))
			for j := len(e.PolyIDs) - 1; j >= 0; j-- {
				builder.PrependUint16(e.PolyIDs[j])
			}
			polyIdsOff := builder.EndVector(len(e.PolyIDs))

			PolygonListStart(builder)
			PolygonListAddPolyIds(builder, polyIdsOff)
			valueOff = PolygonListEnd(builder)
			valueType = ShortcutValuePolygonList
		}

		HybridShortcutEntryStart(builder)
		HybridShortcutEntryAddHexId(builder, e.HexID)
		HybridShortcutEntryAddValueType(builder, valueType)
		HybridShortcutEntryAddValue(builder, valueOff)
		entryOffsets[i] = HybridShortcutEntryEnd(builder)
	}

	HybridShortcutCollectionStartEntriesVector(builder, len(entryOffsets))
	for i := len(entryOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(entryOffsets[i])
	}
	entriesOff := builder.EndVector(len(entryOffsets))

	HybridShortcutCollectionStart(builder)
	HybridShortcutCollectionAddEntries(builder, entriesOff)
	root := HybridShortcutCollectionEnd(builder)

	builder.Finish(root)
	return builder.FinishedBytes()
}
