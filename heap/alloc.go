package heap

import "github.com/andyturk/ummkit/internal/format"

// Alloc obtains a block of at least size bytes and returns its reference,
// or the null Ref when size is zero or the request cannot be satisfied.
// The arena is unchanged on failure.
func (h *Heap) Alloc(size int) Ref {
	if size <= 0 {
		return 0
	}
	k := format.CellsFor(size)
	b := h.findFirstFit(k)
	if b == 0 {
		return 0
	}
	// Split only when the remainder is at least two cells; a single-cell
	// sliver could only ever hold empty allocations.
	if format.SizeInCells(h.data, b) > k+1 {
		return Ref(h.splitTail(b, k))
	}
	h.unfree(b)
	return Ref(b)
}

// Free returns the block at ref to the free pool, coalescing with free
// physical neighbours. The null Ref is a no-op. Double-free and freeing a
// reference that was never allocated are programming errors.
func (h *Heap) Free(ref Ref) {
	if ref == 0 {
		return
	}
	h.freeBlock(int(ref))
}

// freeBlock releases block b. The successor is merged first: the second
// join may swallow the grown b into its predecessor, so the order of the
// two checks matters.
func (h *Heap) freeBlock(b int) {
	d := h.data

	if succ := format.Next(d, b); format.IsFree(d, succ) {
		h.unfree(succ)
		h.join(b, succ)
	}

	if pred := format.Prev(d, b); format.IsFree(d, pred) {
		// The merged block is the predecessor, which already sits in the
		// free ring with its flag intact.
		h.join(pred, b)
	} else {
		h.pushFree(b)
	}
}

// Realloc resizes the block at ref to at least size bytes, in place when it
// can, by relocation when it must. It returns the new reference, which may
// differ from ref; the old reference is then invalid. A null ref delegates
// to Alloc, size zero delegates to Free. When a grow cannot be satisfied
// Realloc returns the null Ref and the original block is left intact.
func (h *Heap) Realloc(ref Ref, size int) Ref {
	if ref == 0 {
		return h.Alloc(size)
	}
	if size <= 0 {
		h.Free(ref)
		return 0
	}

	d := h.data
	b := int(ref)
	k := format.CellsFor(size)
	cur := format.SizeInCells(d, b)

	switch {
	case k < cur-1:
		return h.shrink(b, k, size)
	case k > cur:
		return h.grow(b, k, cur)
	default:
		// Within one cell of the current size: keep the block. The slack
		// mirrors the split threshold in Alloc.
		return ref
	}
}

// shrink reduces block b to k cells, steering the surplus toward a free
// neighbour to avoid fragmentation.
func (h *Heap) shrink(b, k, size int) Ref {
	d := h.data
	succ := format.Next(d, b)
	pred := format.Prev(d, b)

	switch {
	case format.IsFree(d, succ):
		// Merge the surplus with the free successor. The payload stays put.
		h.unfree(succ)
		tail := h.splitHead(b, k)
		h.join(tail, succ)
		h.freeBlock(tail)
		return Ref(b)

	case format.IsFree(d, pred):
		// Shift the kept bytes to the tail end of b, carve them off as the
		// surviving block, and let the free predecessor absorb the head.
		// The caller's data moves.
		dst := succ - k
		copy(d[dst*format.CellSize+format.PayloadOffset:succ*format.CellSize], h.Payload(Ref(b))[:size])
		tail := h.splitTail(b, k)
		h.join(pred, b)
		return Ref(tail)

	default:
		// No free neighbour: split and release the surplus.
		tail := h.splitHead(b, k)
		h.freeBlock(tail)
		return Ref(b)
	}
}

// grow relocates block b (currently cur cells) into a free block of at
// least k cells. Returns the null Ref, leaving b untouched, when no block
// qualifies.
func (h *Heap) grow(b, k, cur int) Ref {
	nb := h.findFirstFit(k)
	if nb == 0 {
		return 0
	}
	h.unfree(nb)
	n := cur*format.CellSize - format.CellOverhead
	copy(format.Payload(h.data, nb)[:n], format.Payload(h.data, b))
	h.freeBlock(b)
	return Ref(nb)
}
