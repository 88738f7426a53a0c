package format

import "github.com/andyturk/ummkit/internal/buf"

// CellCount returns the number of whole cells that fit in n bytes.
func CellCount(n int) int {
	return n / CellSize
}

// CellsFor returns the cell budget for a request of n payload bytes: the
// link words are paid on top of the request, rounded up to whole cells.
// The minimum is one cell (CellsFor(0) == 1).
func CellsFor(n int) int {
	return (n + CellOverhead + CellSize - 1) / CellSize
}

// Prev returns the physical predecessor index of cell c, with the free flag
// masked off.
func Prev(b []byte, c int) int {
	return int(buf.U16LE(b[c*CellSize+prevOff:]) & IndexMask)
}

// Next returns the physical successor index of cell c. Zero means c is the
// terminal cell.
func Next(b []byte, c int) int {
	return int(buf.U16LE(b[c*CellSize+nextOff:]))
}

// IsFree reports whether cell c carries the free flag.
func IsFree(b []byte, c int) bool {
	return buf.U16LE(b[c*CellSize+prevOff:])&FreeBit != 0
}

// PutPrev writes the back link of cell c, setting or clearing the free flag.
func PutPrev(b []byte, c, prev int, free bool) {
	v := uint16(prev)
	if free {
		v |= FreeBit
	}
	buf.PutU16LE(b[c*CellSize+prevOff:], v)
}

// SetFree toggles the free flag of cell c without disturbing its back link.
func SetFree(b []byte, c int, free bool) {
	v := buf.U16LE(b[c*CellSize+prevOff:])
	if free {
		v |= FreeBit
	} else {
		v &= IndexMask
	}
	buf.PutU16LE(b[c*CellSize+prevOff:], v)
}

// PutNext writes the forward link of cell c.
func PutNext(b []byte, c, next int) {
	buf.PutU16LE(b[c*CellSize+nextOff:], uint16(next))
}

// PrevFree returns the free-ring predecessor of free cell c.
func PrevFree(b []byte, c int) int {
	return int(buf.U16LE(b[c*CellSize+prevFreeOff:]))
}

// NextFree returns the free-ring successor of free cell c.
func NextFree(b []byte, c int) int {
	return int(buf.U16LE(b[c*CellSize+nextFreeOff:]))
}

// PutPrevFree writes the free-ring back link of cell c.
func PutPrevFree(b []byte, c, prev int) {
	buf.PutU16LE(b[c*CellSize+prevFreeOff:], uint16(prev))
}

// PutNextFree writes the free-ring forward link of cell c.
func PutNextFree(b []byte, c, next int) {
	buf.PutU16LE(b[c*CellSize+nextFreeOff:], uint16(next))
}

// SizeInCells returns the extent of cell c in cells. The terminal cell
// conventionally has size zero even though it occupies one cell.
func SizeInCells(b []byte, c int) int {
	next := Next(b, c)
	if next == 0 {
		return 0
	}
	return next - c
}

// PayloadLen returns the number of payload bytes belonging to cell c.
func PayloadLen(b []byte, c int) int {
	return SizeInCells(b, c)*CellSize - CellOverhead
}

// Payload returns the caller-visible data area of used cell c, aliasing the
// arena storage. The slice spans from the end of the link words to the start
// of the physical successor.
func Payload(b []byte, c int) []byte {
	return b[c*CellSize+PayloadOffset : Next(b, c)*CellSize]
}
