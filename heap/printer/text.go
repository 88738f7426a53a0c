package printer

import (
	"fmt"

	"github.com/andyturk/ummkit/internal/format"
)

// printText renders the dump table: the sentinel row first, then one row
// per block in physical order, then the terminal row. The sentinel and
// terminal rows are printed only when ShowLinks is set. Free blocks are
// prefixed with '*' and show their free-ring links.
func (p *Printer) printText(data []byte) error {
	cells := format.CellCount(len(data))
	if cells < format.MinCells {
		return fmt.Errorf("printer: arena too small (%d cells)", cells)
	}

	if p.opts.ShowLinks {
		fmt.Fprintf(p.writer, " %04d: [%04d, %04d] [%04d, %04d] free list\n",
			0, format.Prev(data, 0), format.Next(data, 0),
			format.PrevFree(data, 0), format.NextFree(data, 0))
	}

	c := format.Next(data, 0)
	for c != 0 && format.Next(data, c) != 0 {
		free := format.IsFree(data, c)
		bytes := format.SizeInCells(data, c) * format.CellSize

		switch {
		case free && !p.opts.ShowFree:
		case free && p.opts.ShowLinks:
			fmt.Fprintf(p.writer, "*%04d: [%04d, %04d] [%04d, %04d] %d bytes\n",
				c, format.Prev(data, c), format.Next(data, c),
				format.PrevFree(data, c), format.NextFree(data, c), bytes)
		case free:
			fmt.Fprintf(p.writer, "*%04d: %d bytes\n", c, bytes)
		case p.opts.ShowLinks:
			fmt.Fprintf(p.writer, " %04d: [%04d, %04d] %d bytes\n",
				c, format.Prev(data, c), format.Next(data, c), bytes)
		default:
			fmt.Fprintf(p.writer, " %04d: %d bytes\n", c, bytes)
		}
		c = format.Next(data, c)
	}

	if p.opts.ShowLinks && c != 0 {
		fmt.Fprintf(p.writer, " %04d: [%04d, %04d] terminal\n",
			c, format.Prev(data, c), format.Next(data, c))
	}
	return nil
}
