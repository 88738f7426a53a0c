package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyturk/ummkit/heap/verify"
	"github.com/andyturk/ummkit/internal/format"
)

// newArena returns an initialized heap over the given byte size.
func newArena(t *testing.T, bytes int) *Heap {
	t.Helper()
	h, err := New(make([]byte, bytes))
	require.NoError(t, err)
	h.Init()
	return h
}

// mustValidate fails the test when any structural invariant is violated.
func mustValidate(t *testing.T, h *Heap) {
	t.Helper()
	require.NoError(t, verify.AllInvariants(h.Bytes()))
}

// snapshot copies the arena for byte-identical comparisons.
func snapshot(h *Heap) []byte {
	return append([]byte(nil), h.Bytes()...)
}

func TestNew(t *testing.T) {
	h, err := New(make([]byte, 8192))
	require.NoError(t, err)
	assert.Equal(t, 1024, h.Cells())
	assert.Equal(t, 1022*8, h.TotalBytes())
	assert.Equal(t, 1022*8-4, h.Cap())
}

func TestNewTruncatesToWholeCells(t *testing.T) {
	h, err := New(make([]byte, 100))
	require.NoError(t, err)
	assert.Equal(t, 12, h.Cells())
	assert.Len(t, h.Bytes(), 96)
}

func TestNewTooSmall(t *testing.T) {
	for _, n := range []int{0, 7, 8, 24, 31} {
		_, err := New(make([]byte, n))
		assert.ErrorIs(t, err, ErrArenaTooSmall, "size %d", n)
	}

	// Four cells is the smallest workable arena.
	h, err := New(make([]byte, 32))
	require.NoError(t, err)
	h.Init()
	mustValidate(t, h)
}

func TestNewTooLarge(t *testing.T) {
	_, err := New(make([]byte, (format.MaxCells+1)*format.CellSize))
	assert.ErrorIs(t, err, ErrArenaTooLarge)

	h, err := New(make([]byte, format.MaxCells*format.CellSize))
	require.NoError(t, err)
	h.Init()
	mustValidate(t, h)
}

func TestInitState(t *testing.T) {
	h := newArena(t, 8192)
	b := h.Bytes()
	last := 1023

	assert.Equal(t, 0, format.Prev(b, 0))
	assert.Equal(t, 1, format.Next(b, 0))
	assert.Equal(t, 1, format.PrevFree(b, 0))
	assert.Equal(t, 1, format.NextFree(b, 0))
	assert.False(t, format.IsFree(b, 0))

	assert.Equal(t, 0, format.Prev(b, 1))
	assert.Equal(t, last, format.Next(b, 1))
	assert.True(t, format.IsFree(b, 1))
	assert.Equal(t, 0, format.PrevFree(b, 1))
	assert.Equal(t, 0, format.NextFree(b, 1))

	assert.Equal(t, 1, format.Prev(b, last))
	assert.Equal(t, 0, format.Next(b, last))
	assert.False(t, format.IsFree(b, last))

	mustValidate(t, h)
	assert.Equal(t, h.TotalBytes(), h.FreeBytes())
	assert.Equal(t, 0, h.UsedBytes())
}

func TestInitReclaimsEverything(t *testing.T) {
	h := newArena(t, 4096)
	for range 3 {
		require.NotZero(t, h.Alloc(64))
	}
	h.Init()
	mustValidate(t, h)
	assert.Equal(t, h.TotalBytes(), h.FreeBytes())
}

func TestNewSized(t *testing.T) {
	h := NewSized(1024)
	mustValidate(t, h)
	assert.Equal(t, 128, h.Cells())
	require.NotZero(t, h.Alloc(16))
}

func TestNewSizedPanics(t *testing.T) {
	assert.Panics(t, func() { NewSized(16) })
}

func TestPayloadNull(t *testing.T) {
	h := newArena(t, 4096)
	assert.Nil(t, h.Payload(0))
}

func TestPayloadLength(t *testing.T) {
	h := newArena(t, 4096)
	ref := h.Alloc(27)
	require.NotZero(t, ref)

	// 27 bytes needs 4 cells; the payload spans the whole extent.
	assert.Len(t, h.Payload(ref), 4*format.CellSize-format.CellOverhead)
}

func TestLargestFree(t *testing.T) {
	h := newArena(t, 8192)
	assert.Equal(t, h.Cap(), h.LargestFree())

	ref := h.Alloc(h.Cap())
	require.NotZero(t, ref)
	assert.Equal(t, 0, h.LargestFree())

	h.Free(ref)
	assert.Equal(t, h.Cap(), h.LargestFree())
}

func TestAccountingConservation(t *testing.T) {
	h := newArena(t, 8192)
	refs := make([]Ref, 0, 8)
	for _, n := range []int{1, 27, 64, 200, 38, 100} {
		if ref := h.Alloc(n); ref != 0 {
			refs = append(refs, ref)
		}
		assert.Equal(t, h.TotalBytes(), h.FreeBytes()+h.UsedBytes())
	}
	for _, ref := range refs {
		h.Free(ref)
		assert.Equal(t, h.TotalBytes(), h.FreeBytes()+h.UsedBytes())
	}
	assert.Equal(t, h.TotalBytes(), h.FreeBytes())
	mustValidate(t, h)
}
