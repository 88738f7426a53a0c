package verify

import (
	"fmt"

	"github.com/andyturk/ummkit/internal/format"
)

// ValidationError describes the first violated invariant found in an arena.
type ValidationError struct {
	Type    string
	Message string
	Cell    int // offending cell index, -1 when not cell-specific
}

func (e *ValidationError) Error() string {
	if e.Cell >= 0 {
		return fmt.Sprintf("%s at cell %d: %s", e.Type, e.Cell, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates every arena invariant in one call. Returns the
// first error encountered, or nil when all checks pass.
func AllInvariants(data []byte) error {
	if err := PhysicalRing(data); err != nil {
		return err
	}
	if err := LayoutClosure(data); err != nil {
		return err
	}
	if err := NoAdjacentFree(data); err != nil {
		return err
	}
	return FreeRing(data)
}

// walkBlocks visits every block of the physical ring in address order,
// stopping with an error when the links run off the arena or fail to
// terminate. Each check can therefore run standalone on untrusted images.
func walkBlocks(kind string, data []byte, visit func(c int) error) error {
	cells := format.CellCount(len(data))
	if cells < format.MinCells {
		return &ValidationError{
			Type:    kind,
			Message: fmt.Sprintf("arena too small: %d cells", cells),
			Cell:    -1,
		}
	}

	steps := 0
	for c := format.Next(data, 0); c != 0 && c < cells && format.Next(data, c) != 0; c = format.Next(data, c) {
		if steps++; steps > cells {
			return &ValidationError{
				Type:    kind,
				Message: "physical walk does not terminate",
				Cell:    -1,
			}
		}
		if format.Next(data, c) >= cells {
			return &ValidationError{
				Type:    kind,
				Message: fmt.Sprintf("link beyond arena (%d cells)", cells),
				Cell:    c,
			}
		}
		if err := visit(c); err != nil {
			return err
		}
	}
	return nil
}

// PhysicalRing validates the address-ordered ring: links advance strictly,
// every forward link is answered by the matching back link, and the walk
// ends exactly at the terminal cell.
func PhysicalRing(data []byte) error {
	cells := format.CellCount(len(data))
	if cells < format.MinCells {
		return &ValidationError{
			Type:    "PhysicalRing",
			Message: fmt.Sprintf("arena too small: %d cells", cells),
			Cell:    -1,
		}
	}

	if next := format.Next(data, 0); next != 1 {
		return &ValidationError{
			Type:    "PhysicalRing",
			Message: fmt.Sprintf("sentinel next = %d, want 1", next),
			Cell:    0,
		}
	}

	prev := 0
	c := 1
	for {
		if c >= cells {
			return &ValidationError{
				Type:    "PhysicalRing",
				Message: fmt.Sprintf("link beyond arena (%d cells)", cells),
				Cell:    c,
			}
		}
		if got := format.Prev(data, c); got != prev {
			return &ValidationError{
				Type:    "PhysicalRing",
				Message: fmt.Sprintf("back link = %d, want %d", got, prev),
				Cell:    c,
			}
		}
		next := format.Next(data, c)
		if next == 0 {
			if c != cells-1 {
				return &ValidationError{
					Type:    "PhysicalRing",
					Message: fmt.Sprintf("terminal marker before last cell (%d)", cells-1),
					Cell:    c,
				}
			}
			return nil
		}
		if next <= c {
			return &ValidationError{
				Type:    "PhysicalRing",
				Message: fmt.Sprintf("forward link %d does not advance", next),
				Cell:    c,
			}
		}
		prev, c = c, next
	}
}

// LayoutClosure validates that the block extents tile the usable region
// exactly: sizes sum to the cell count minus the two sentinels.
func LayoutClosure(data []byte) error {
	cells := format.CellCount(len(data))
	sum := 0
	err := walkBlocks("LayoutClosure", data, func(c int) error {
		sum += format.SizeInCells(data, c)
		return nil
	})
	if err != nil {
		return err
	}
	if sum != cells-2 {
		return &ValidationError{
			Type:    "LayoutClosure",
			Message: fmt.Sprintf("block sizes sum to %d, want %d", sum, cells-2),
			Cell:    -1,
		}
	}
	return nil
}

// NoAdjacentFree validates that coalescing has left no two physically
// consecutive free blocks.
func NoAdjacentFree(data []byte) error {
	prevFree := false
	return walkBlocks("NoAdjacentFree", data, func(c int) error {
		free := format.IsFree(data, c)
		if free && prevFree {
			return &ValidationError{
				Type:    "NoAdjacentFree",
				Message: "free block follows a free block",
				Cell:    c,
			}
		}
		prevFree = free
		return nil
	})
}

// FreeRing validates the free ring: it is closed in both directions, every
// member carries the free flag, and the members are exactly the flagged
// cells of the physical ring.
func FreeRing(data []byte) error {
	cells := format.CellCount(len(data))

	// Collect the flagged cells from the physical ring.
	flagged := make(map[int]bool)
	err := walkBlocks("FreeRing", data, func(c int) error {
		if format.IsFree(data, c) {
			flagged[c] = true
		}
		return nil
	})
	if err != nil {
		return err
	}

	seen := make(map[int]bool)
	c := format.NextFree(data, 0)
	prev := 0
	for steps := 0; c != 0; steps++ {
		if steps > cells {
			return &ValidationError{
				Type:    "FreeRing",
				Message: "ring does not close",
				Cell:    -1,
			}
		}
		if c >= cells {
			return &ValidationError{
				Type:    "FreeRing",
				Message: fmt.Sprintf("link beyond arena (%d cells)", cells),
				Cell:    c,
			}
		}
		if seen[c] {
			return &ValidationError{
				Type:    "FreeRing",
				Message: "cell visited twice",
				Cell:    c,
			}
		}
		if !flagged[c] {
			return &ValidationError{
				Type:    "FreeRing",
				Message: "ring member is not marked free",
				Cell:    c,
			}
		}
		if got := format.PrevFree(data, c); got != prev {
			return &ValidationError{
				Type:    "FreeRing",
				Message: fmt.Sprintf("free back link = %d, want %d", got, prev),
				Cell:    c,
			}
		}
		seen[c] = true
		prev, c = c, format.NextFree(data, c)
	}

	if got := format.PrevFree(data, 0); got != prev {
		return &ValidationError{
			Type:    "FreeRing",
			Message: fmt.Sprintf("head back link = %d, want %d", got, prev),
			Cell:    0,
		}
	}

	for c := range flagged {
		if !seen[c] {
			return &ValidationError{
				Type:    "FreeRing",
				Message: "marked free but unreachable from the ring head",
				Cell:    c,
			}
		}
	}
	return nil
}
