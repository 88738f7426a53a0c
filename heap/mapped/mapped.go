// Package mapped persists arenas in files. On unix the file is mapped into
// memory and flushed with msync; elsewhere the file is read into a buffer
// and written back on Flush. The arena format is position independent (all
// links are cell indices), so an image written by one process is reopenable
// as-is by another.
package mapped

import (
	"errors"
	"fmt"
	"os"

	"github.com/andyturk/ummkit/heap"
	"github.com/andyturk/ummkit/internal/format"
)

// ErrBadSize indicates a requested arena size outside the representable
// range.
var ErrBadSize = errors.New("mapped: arena size out of range")

// Arena is a heap backed by a file.
type Arena struct {
	h    *heap.Heap
	f    *os.File
	data []byte
}

// Create makes a file of the given byte size at path, stamps a fresh arena
// into it, and returns the open arena. An existing file is truncated.
func Create(path string, bytes int) (*Arena, error) {
	cells := format.CellCount(bytes)
	if cells < format.MinCells || cells > format.MaxCells {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadSize, bytes)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mapped: create: %w", err)
	}
	if err := f.Truncate(int64(bytes)); err != nil {
		f.Close()
		return nil, fmt.Errorf("mapped: truncate: %w", err)
	}

	a, err := open(f, bytes)
	if err != nil {
		f.Close()
		return nil, err
	}
	a.h.Init()
	return a, nil
}

// Open maps the existing arena image at path. The image is not validated
// beyond its size; run verify.AllInvariants when the file is untrusted.
func Open(path string) (*Arena, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("mapped: open: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mapped: stat: %w", err)
	}
	size := int(info.Size())
	if cells := format.CellCount(size); cells < format.MinCells || cells > format.MaxCells {
		f.Close()
		return nil, fmt.Errorf("%w: %d bytes", ErrBadSize, size)
	}

	a, err := open(f, size)
	if err != nil {
		f.Close()
		return nil, err
	}
	return a, nil
}

// open maps f and wraps the mapping in a heap. Takes ownership of f on
// success.
func open(f *os.File, size int) (*Arena, error) {
	data, err := mapFile(f, size)
	if err != nil {
		return nil, fmt.Errorf("mapped: map: %w", err)
	}
	h, err := heap.New(data)
	if err != nil {
		unmapFile(data)
		return nil, err
	}
	return &Arena{h: h, f: f, data: data}, nil
}

// Heap returns the allocator over the mapped storage.
func (a *Arena) Heap() *heap.Heap { return a.h }

// Flush forces the current arena state to stable storage.
func (a *Arena) Flush() error {
	if err := flushMap(a.f, a.data); err != nil {
		return fmt.Errorf("mapped: flush: %w", err)
	}
	return nil
}

// Close flushes, unmaps, and closes the backing file. The heap and any
// payload slices obtained from it are invalid afterwards.
func (a *Arena) Close() error {
	if a.f == nil {
		return nil
	}
	flushErr := a.Flush()
	unmapErr := unmapFile(a.data)
	closeErr := a.f.Close()
	a.f = nil
	a.data = nil

	if flushErr != nil {
		return flushErr
	}
	if unmapErr != nil {
		return fmt.Errorf("mapped: unmap: %w", unmapErr)
	}
	return closeErr
}
