package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellsFor(t *testing.T) {
	cases := []struct {
		bytes, cells int
	}{
		{0, 1},
		{1, 1},
		{4, 1},
		{5, 2},
		{12, 2},
		{13, 3},
		{100, 13},
		{8172, 1022},
	}
	for _, c := range cases {
		assert.Equal(t, c.cells, CellsFor(c.bytes), "CellsFor(%d)", c.bytes)
	}
}

func TestCellCount(t *testing.T) {
	assert.Equal(t, 1024, CellCount(8192))
	assert.Equal(t, 1024, CellCount(8199))
	assert.Equal(t, 0, CellCount(7))
}

func TestFreeBitPacking(t *testing.T) {
	b := make([]byte, 4*CellSize)

	PutPrev(b, 2, 0x7FFF, true)
	assert.Equal(t, 0x7FFF, Prev(b, 2))
	assert.True(t, IsFree(b, 2))

	SetFree(b, 2, false)
	assert.Equal(t, 0x7FFF, Prev(b, 2))
	assert.False(t, IsFree(b, 2))

	SetFree(b, 2, true)
	assert.True(t, IsFree(b, 2))
	assert.Equal(t, 0x7FFF, Prev(b, 2))

	// Neighbouring cells are untouched.
	assert.False(t, IsFree(b, 1))
	assert.False(t, IsFree(b, 3))
}

func TestLinkWords(t *testing.T) {
	b := make([]byte, 8*CellSize)

	PutNext(b, 1, 5)
	PutPrev(b, 1, 0, false)
	PutPrevFree(b, 1, 0)
	PutNextFree(b, 1, 3)

	assert.Equal(t, 5, Next(b, 1))
	assert.Equal(t, 0, Prev(b, 1))
	assert.Equal(t, 0, PrevFree(b, 1))
	assert.Equal(t, 3, NextFree(b, 1))

	assert.Equal(t, 4, SizeInCells(b, 1))
	assert.Equal(t, 4*CellSize-CellOverhead, PayloadLen(b, 1))
}

func TestSizeInCellsTerminal(t *testing.T) {
	b := make([]byte, 4*CellSize)
	PutNext(b, 3, 0)
	assert.Equal(t, 0, SizeInCells(b, 3))
}

func TestPayload(t *testing.T) {
	b := make([]byte, 8*CellSize)
	PutNext(b, 2, 4)

	p := Payload(b, 2)
	require.Len(t, p, 2*CellSize-CellOverhead)

	// The payload aliases the arena.
	p[0] = 0xAB
	assert.Equal(t, byte(0xAB), b[2*CellSize+PayloadOffset])
}
