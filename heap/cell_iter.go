package heap

import "github.com/andyturk/ummkit/internal/format"

// Block describes one allocated block during iteration.
type Block struct {
	Ref  Ref    // first cell of the block
	Size int    // payload bytes
	Data []byte // payload, aliasing the arena
}

// BlockIterator walks the allocated blocks of a heap in physical order.
// Allocator calls invalidate the iterator.
type BlockIterator struct {
	h *Heap
	c int
}

// Blocks returns an iterator over the allocated blocks, lowest address
// first. Free blocks and the sentinels are skipped.
func (h *Heap) Blocks() *BlockIterator {
	return &BlockIterator{h: h, c: format.Next(h.data, 0)}
}

// Next returns the next allocated block. The second result is false once
// the terminal cell has been reached.
func (it *BlockIterator) Next() (Block, bool) {
	d := it.h.data
	for format.Next(d, it.c) != 0 {
		c := it.c
		it.c = format.Next(d, c)
		if format.IsFree(d, c) {
			continue
		}
		return Block{
			Ref:  Ref(c),
			Size: format.PayloadLen(d, c),
			Data: format.Payload(d, c),
		}, true
	}
	return Block{}, false
}
