package heap

import "github.com/andyturk/ummkit/internal/format"

// The primitives below each perform one mutation of the physical ring or the
// free ring while keeping back links and the free flag consistent. Policy
// code in alloc.go composes them; none of them touch both rings at once.

// splitHead divides block b so that its first k cells keep the label (and
// free flag) of b, and returns the index of the new block holding the rest.
// The new block is marked used. The free ring is not touched, so a free b
// keeps its ring position with its size reduced.
func (h *Heap) splitHead(b, k int) int {
	d := h.data
	b1 := b + k
	next := format.Next(d, b)

	format.PutPrev(d, b1, b, false)
	format.PutNext(d, b1, next)
	format.PutNext(d, b, b1)

	// The block after the original b points back to b1 and keeps its own
	// free flag.
	format.PutPrev(d, next, b1, format.IsFree(d, next))
	return b1
}

// splitTail divides block b so that its last k cells become a new used
// block, returned by index. b keeps its flag and the leading cells; the
// free ring is not touched.
func (h *Heap) splitTail(b, k int) int {
	d := h.data
	next := format.Next(d, b)
	b1 := next - k

	format.PutPrev(d, b1, b, false)
	format.PutNext(d, b1, next)
	format.PutNext(d, b, b1)

	format.PutPrev(d, next, b1, format.IsFree(d, next))
	return b1
}

// join merges hi into its physical predecessor lo, which keeps its free
// flag and simply grows. The caller must have detached hi from the free
// ring first if hi was free.
func (h *Heap) join(lo, hi int) {
	d := h.data
	next := format.Next(d, hi)

	format.PutNext(d, lo, next)
	format.PutPrev(d, next, lo, format.IsFree(d, next))
}

// unfree detaches block b from the free ring and clears its free flag. The
// physical ring is not touched.
func (h *Heap) unfree(b int) {
	d := h.data
	pf := format.PrevFree(d, b)
	nf := format.NextFree(d, b)

	format.PutNextFree(d, pf, nf)
	format.PutPrevFree(d, nf, pf)
	format.SetFree(d, b, false)
}

// pushFree inserts block b at the head of the free ring and sets its free
// flag. The previous head's back link is rewritten so the ring stays
// closed in both directions.
func (h *Heap) pushFree(b int) {
	d := h.data
	head := format.NextFree(d, 0)

	format.PutPrevFree(d, b, 0)
	format.PutNextFree(d, b, head)
	format.PutPrevFree(d, head, b)
	format.PutNextFree(d, 0, b)
	format.SetFree(d, b, true)
}

// findFirstFit walks the free ring from the most recently freed block and
// returns the first one of at least k cells, or 0 when none qualifies.
func (h *Heap) findFirstFit(k int) int {
	d := h.data
	for c := format.NextFree(d, 0); c != 0; c = format.NextFree(d, c) {
		if format.SizeInCells(d, c) >= k {
			return c
		}
	}
	return 0
}
