package mapped

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyturk/ummkit/heap"
	"github.com/andyturk/ummkit/heap/verify"
	"github.com/andyturk/ummkit/internal/testutil"
)

func TestCreateAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.umm")

	a, err := Create(path, 8192)
	require.NoError(t, err)

	h := a.Heap()
	ref := h.Alloc(100)
	require.NotZero(t, ref)
	testutil.Fill(h.Payload(ref)[:100], 3)
	require.NoError(t, verify.AllInvariants(h.Bytes()))
	require.NoError(t, a.Close())

	// Reopen: the image round-trips, links and payload intact.
	b, err := Open(path)
	require.NoError(t, err)
	defer b.Close()

	h2 := b.Heap()
	require.NoError(t, verify.AllInvariants(h2.Bytes()))
	assert.True(t, testutil.Matches(h2.Payload(ref)[:100], 3))
	assert.Equal(t, h2.TotalBytes(), h2.FreeBytes()+h2.UsedBytes())

	// And it still allocates.
	require.NotZero(t, h2.Alloc(64))
	require.NoError(t, verify.AllInvariants(h2.Bytes()))
}

func TestCreateTruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.umm")
	require.NoError(t, os.WriteFile(path, make([]byte, 123), 0o644))

	a, err := Create(path, 4096)
	require.NoError(t, err)
	defer a.Close()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(4096), info.Size())
	assert.Equal(t, 512, a.Heap().Cells())
}

func TestCreateBadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.umm")
	_, err := Create(path, 16)
	assert.ErrorIs(t, err, ErrBadSize)

	_, err = Create(path, 1<<22)
	assert.ErrorIs(t, err, ErrBadSize)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.umm"))
	assert.Error(t, err)
}

func TestOpenTooSmall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.umm")
	require.NoError(t, os.WriteFile(path, make([]byte, 24), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrBadSize)
}

func TestFlushPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.umm")

	a, err := Create(path, 8192)
	require.NoError(t, err)
	defer a.Close()

	ref := a.Heap().Alloc(64)
	require.NotZero(t, ref)
	testutil.Fill(a.Heap().Payload(ref)[:64], 9)
	require.NoError(t, a.Flush())

	// Read the raw file: the image on disk reflects the allocation.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	h, err := heap.New(raw)
	require.NoError(t, err)
	require.NoError(t, verify.AllInvariants(h.Bytes()))
	assert.True(t, testutil.Matches(h.Payload(ref)[:64], 9))
}

func TestCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.umm")
	a, err := Create(path, 4096)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	assert.NoError(t, a.Close())
}
