// Package heap implements a fixed-arena dynamic memory allocator over a
// caller-supplied byte buffer.
//
// # Overview
//
// The arena is viewed as an array of 8-byte cells addressed by 16-bit
// indices. Cell 0 is the sentinel heading both the physical-order ring and
// the free ring; the last cell is a terminal that only carries the back link
// of the final real cell. All allocator metadata lives inside the arena
// itself, so the allocator is suitable for environments without a host heap.
//
// # Operations
//
// The classic three operations are provided:
//
//   - Alloc(size): obtain a block of at least size bytes
//   - Realloc(ref, size): resize a block in place or by relocation
//   - Free(ref): return a block to the free pool
//
// Blocks are addressed by Ref, a 16-bit cell index. Ref 0 is the null
// reference: Alloc returns it on failure, Free ignores it, and Realloc
// treats it as a fresh allocation. Payload bytes are reached through
// Payload, which aliases the arena storage.
//
// # Allocation policy
//
// Allocation is first-fit over the free ring, which is maintained in LIFO
// order: the most recently freed block is considered first. A free block is
// split only when the remainder would be at least two cells; otherwise the
// whole block is consumed, so single-cell slivers that could only hold empty
// allocations are never created. Released blocks coalesce with free physical
// neighbours immediately, so no two adjacent free blocks ever exist.
//
// # Cell layout
//
// Each cell spends 4 of its 8 bytes on two 16-bit link words; the payload of
// a used cell starts at byte 4. Free cells reuse the first 4 payload bytes
// for the free-ring links. The free flag of a cell is bit 15 of its back
// link, which limits an arena to 2^15 cells (256 KiB). See internal/format
// for the exact encoding.
//
// # Thread safety
//
// A Heap is not thread-safe and not reentrant. Callers must serialize
// access externally; mutations temporarily break the ring invariants while
// an operation is in progress.
//
// # Related packages
//
//   - github.com/andyturk/ummkit/heap/verify: structural invariant checks
//   - github.com/andyturk/ummkit/heap/printer: human-readable arena dumps
//   - github.com/andyturk/ummkit/heap/mapped: file-backed arenas
package heap
