// Package format houses the low-level cell layout of an arena. The goal is to
// keep the byte-level encoding focused, allocation-free, and independent from
// the public API so higher-level packages can orchestrate the data in a more
// ergonomic form.
//
// An arena is an array of 8-byte cells. Every cell starts with two 16-bit
// little-endian link words:
//
//	Offset  Size  Description
//	0x00    2     prev: index of the previous physical cell.
//	              Bit 15 is the free flag of *this* cell.
//	0x02    2     next: index of the next physical cell (0 = terminal).
//	0x04    4     payload (used cells), or prev_free/next_free (free cells).
//
// Free cells reuse the first four payload bytes as two more 16-bit indices
// threading the free ring. Because indices carry the free flag in bit 15,
// an arena is limited to 2^15 cells (256 KiB).
package format

const (
	// CellSize is the size of a single cell in bytes. It is also the
	// allocation granularity. Payloads start PayloadOffset bytes into a
	// cell, so they sit 4 bytes past an 8-byte boundary of the arena.
	CellSize = 8

	// CellOverhead is the number of bytes consumed by the two link words at
	// the head of every cell. The payload of a used cell begins here.
	CellOverhead = 4

	// PayloadOffset is the byte offset of the payload within a used cell.
	PayloadOffset = CellOverhead

	// FreeBit marks a cell as free when set in its prev word.
	FreeBit = 0x8000

	// IndexMask extracts the cell index from a prev word.
	IndexMask = 0x7FFF

	// MinCells is the smallest arena that can be stamped: sentinel, two
	// usable cells, and the terminal.
	MinCells = 4

	// MaxCells bounds the arena to what 15-bit indices can address.
	MaxCells = IndexMask + 1
)

// Field offsets within a cell.
const (
	prevOff     = 0
	nextOff     = 2
	prevFreeOff = 4
	nextFreeOff = 6
)
