package heap

import (
	"fmt"

	"github.com/andyturk/ummkit/internal/format"
)

// Ref is a handle to an allocated block: the index of its first cell.
// The zero Ref is the null reference.
type Ref uint16

// Heap manages a contiguous byte buffer as an arena of 8-byte cells.
type Heap struct {
	data  []byte
	cells int
}

// New wraps buf as an arena of floor(len(buf)/8) cells. The arena is not
// stamped: call Init on fresh storage, or skip it when buf already holds an
// initialized arena image. Trailing bytes beyond the last whole cell are
// never touched.
func New(buf []byte) (*Heap, error) {
	cells := format.CellCount(len(buf))
	if cells < format.MinCells {
		return nil, fmt.Errorf("%w: have %d", ErrArenaTooSmall, cells)
	}
	if cells > format.MaxCells {
		return nil, fmt.Errorf("%w: have %d", ErrArenaTooLarge, cells)
	}
	return &Heap{
		data:  buf[:cells*format.CellSize],
		cells: cells,
	}, nil
}

// NewSized returns an initialized heap owning its own storage of the given
// byte size. It panics when bytes is out of range; the size is a
// compile-time choice in the intended use, so a bad one is a programming
// error rather than a runtime condition.
func NewSized(bytes int) *Heap {
	h, err := New(make([]byte, bytes))
	if err != nil {
		panic(err)
	}
	h.Init()
	return h
}

// Init stamps the arena into its starting shape: the sentinel at cell 0, a
// single free block covering every usable cell, and the terminal at the
// end. Any previous arena contents are forgotten.
func (h *Heap) Init() {
	last := h.cells - 1
	b := h.data

	// Cell 0 heads both rings; after Init the free ring holds only cell 1.
	format.PutPrev(b, 0, 0, false)
	format.PutNext(b, 0, 1)
	format.PutPrevFree(b, 0, 1)
	format.PutNextFree(b, 0, 1)

	// Cell 1 gets all the space that can be allocated.
	format.PutPrev(b, 1, 0, true)
	format.PutNext(b, 1, last)
	format.PutPrevFree(b, 1, 0)
	format.PutNextFree(b, 1, 0)

	format.PutPrev(b, last, 1, false)
	format.PutNext(b, last, 0)
}

// Bytes exposes the raw arena for the verify and printer packages and for
// persistence. Mutating it outside the allocator voids every guarantee.
func (h *Heap) Bytes() []byte { return h.data }

// Cells returns the number of cells in the arena, sentinels included.
func (h *Heap) Cells() int { return h.cells }

// Cap returns the largest single request the arena can ever satisfy.
func (h *Heap) Cap() int {
	return (h.cells-2)*format.CellSize - format.CellOverhead
}

// TotalBytes returns the cell bytes available for blocks: free and used
// together, sentinels excluded.
func (h *Heap) TotalBytes() int {
	return (h.cells - 2) * format.CellSize
}

// FreeBytes returns the cell bytes currently held by free blocks.
func (h *Heap) FreeBytes() int {
	total := 0
	for c := format.Next(h.data, 0); format.Next(h.data, c) != 0; c = format.Next(h.data, c) {
		if format.IsFree(h.data, c) {
			total += format.SizeInCells(h.data, c) * format.CellSize
		}
	}
	return total
}

// UsedBytes returns the cell bytes currently held by allocated blocks.
func (h *Heap) UsedBytes() int {
	return h.TotalBytes() - h.FreeBytes()
}

// LargestFree returns the biggest request that would currently succeed, or
// zero when the free ring is empty.
func (h *Heap) LargestFree() int {
	best := 0
	for c := format.NextFree(h.data, 0); c != 0; c = format.NextFree(h.data, c) {
		if s := format.SizeInCells(h.data, c); s > best {
			best = s
		}
	}
	if best == 0 {
		return 0
	}
	return best*format.CellSize - format.CellOverhead
}

// Payload returns the data area of the block at ref, aliasing the arena.
// The slice is valid until the block is freed or relocated. The null
// reference yields nil.
func (h *Heap) Payload(ref Ref) []byte {
	if ref == 0 {
		return nil
	}
	return format.Payload(h.data, int(ref))
}
